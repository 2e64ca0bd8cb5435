package server

import (
	"context"
	"net/http"
	"time"

	controllers "github.com/CPU-commits/Intranet_BAcademix/api/controllers"
	"github.com/CPU-commits/Intranet_BAcademix/middlewares"
	"github.com/CPU-commits/Intranet_BAcademix/res"
	"github.com/CPU-commits/Intranet_BAcademix/services"
	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/secure"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"
)

const LIVENESS_MESSAGE = "📘 Course API Server Running!"

type RouterConfig struct {
	Services *services.Services
	Logger   *zap.Logger
	// Ping checks the database for /healthz
	Ping       func(ctx context.Context) error
	ClientURL  string
	RateLimit  uint
	Production bool
}

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func ErrorHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, &res.Response{
		Success: false,
		Message: "Too many requests. Try again in " + time.Until(info.ResetTime).String(),
	})
}

// recoveryHandler answers a recovered panic, ginzap has already logged it
// with its stack.
func recoveryHandler(c *gin.Context, recovered interface{}) {
	response := res.Response{
		Success: false,
		Message: "Server Internal Error",
	}
	if err, ok := recovered.(string); ok {
		response.Error = err
	} else if err, ok := recovered.(error); ok {
		response.Error = err.Error()
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, response)
}

func corsConfig(clientURL string) cors.Config {
	config := cors.Config{
		AllowMethods:     []string{"GET", "OPTIONS", "PUT", "DELETE", "POST"},
		AllowHeaders:     []string{"*"},
		AllowCredentials: clientURL != "",
		MaxAge:           12 * time.Hour,
	}
	if clientURL == "" {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = []string{
			"http://" + clientURL,
			"https://" + clientURL,
		}
	}
	return config
}

func NewRouter(config RouterConfig) *gin.Engine {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	InitValidators()
	router := gin.New()
	// Proxies
	router.SetTrustedProxies([]string{"localhost"})
	router.Use(middlewares.RequestID())
	// Zap logger
	router.Use(ginzap.GinzapWithConfig(logger, &ginzap.Config{
		TimeFormat: time.RFC3339,
		UTC:        true,
		SkipPaths:  []string{"/", "/healthz"},
	}))
	router.Use(ginzap.CustomRecoveryWithZap(logger, true, recoveryHandler))
	router.Use(middlewares.ErrorHandler(logger))
	// CORS
	router.Use(cors.New(corsConfig(config.ClientURL)))
	// Secure
	router.Use(secure.New(secure.Config{
		STSSeconds:           315360000,
		STSIncludeSubdomains: true,
		FrameDeny:            true,
		ContentTypeNosniff:   true,
		BrowserXssFilter:     true,
		IENoOpen:             true,
		ReferrerPolicy:       "strict-origin-when-cross-origin",
		IsDevelopment:        !config.Production,
		SSLProxyHeaders: map[string]string{
			"X-Forwarded-Proto": "https",
		},
	}))
	// Rate limit
	if config.RateLimit > 0 {
		store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
			Rate:  time.Second,
			Limit: config.RateLimit,
		})
		router.Use(ratelimit.RateLimiter(store, &ratelimit.Options{
			ErrorHandler: ErrorHandler,
			KeyFunc:      keyFunc,
		}))
	}
	// Routes
	coursesController := controllers.NewCoursesController(config.Services)
	enrollmentsController := controllers.NewEnrollmentsController(config.Services)
	instructorsController := controllers.NewInstructorsController(config.Services)

	// Courses
	router.GET("/courses", coursesController.GetCourses)
	router.POST("/courses", coursesController.NewCourse)
	router.POST("/courses/image", coursesController.UploadImage)
	router.PUT("/courses/:id", coursesController.UpdateCourse)
	router.DELETE("/courses/:id", coursesController.DeleteCourse)
	router.GET("/courseDetails/:id", coursesController.GetCourse)
	// Enrollments
	router.GET("/enrollments", enrollmentsController.GetEnrollments)
	router.POST("/enroll", enrollmentsController.Enroll)

	api := router.Group("/api")
	{
		api.GET("/courses", coursesController.GetCoursesLimited)
		api.GET("/courses/search", coursesController.Search)
		api.GET("/my-popular-courses", enrollmentsController.GetPopularCourses)
		api.GET("/my-enrollments/export", enrollmentsController.ExportEnrollments)
		api.DELETE("/my-enrollments/:id", enrollmentsController.DeleteEnrollment)
		api.GET("/instructors", instructorsController.GetInstructors)
	}
	// Route liveness
	router.GET("/", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, LIVENESS_MESSAGE)
	})
	// Route healthz
	router.GET("/healthz", func(ctx *gin.Context) {
		if config.Ping != nil {
			if err := config.Ping(ctx.Request.Context()); err != nil {
				ctx.Error(res.Unavailable(err, "Database unavailable"))
				return
			}
		}
		ctx.JSON(http.StatusOK, &res.Response{
			Success: true,
			Data: map[string]interface{}{
				"database": "up",
				"search":   config.Services.Search.Enabled(),
				"images":   config.Services.Images.Enabled(),
			},
		})
	})
	// No route
	router.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, res.Response{
			Success: false,
			Message: "Not found",
		})
	})
	return router
}

// NewHandler is the router behind gzip compression.
func NewHandler(config RouterConfig) http.Handler {
	return gzhttp.GzipHandler(NewRouter(config))
}
