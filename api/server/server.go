package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CPU-commits/Intranet_BAcademix/aws_s3"
	"github.com/CPU-commits/Intranet_BAcademix/db"
	"github.com/CPU-commits/Intranet_BAcademix/services"
	"github.com/CPU-commits/Intranet_BAcademix/settings"
	"github.com/CPU-commits/Intranet_BAcademix/stack"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const SHUTDOWN_TIMEOUT = 10 * time.Second

var settingsData = settings.GetSettings()

func newLogger() (*zap.Logger, error) {
	if settingsData.IsProd() {
		gin.SetMode(gin.ReleaseMode)
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func newSearch(logger *zap.Logger) *services.SearchService {
	if settingsData.ELS_HOST == "" {
		logger.Info("ELS_HOST not set, search disabled")
		return nil
	}
	es, err := db.NewConnectionEs()
	if err != nil {
		logger.Warn("elasticsearch unavailable, search disabled", zap.Error(err))
		return nil
	}
	return services.NewSearchService(es, logger)
}

func newImages(logger *zap.Logger) *services.ImagesService {
	if settingsData.AWS_BUCKET == "" {
		logger.Info("AWS_BUCKET not set, image upload disabled")
		return nil
	}
	s3, err := aws_s3.NewAWSS3(settingsData.AWS_BUCKET, settingsData.AWS_REGION)
	if err != nil {
		logger.Warn("s3 unavailable, image upload disabled", zap.Error(err))
		return nil
	}
	return services.NewImagesService(s3)
}

func Init() {
	logger, err := newLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx := context.Background()
	client, err := db.NewConnectionMongo(ctx)
	if err != nil {
		logger.Fatal("connect mongo", zap.Error(err))
	}
	logger.Info("connected to MongoDB", zap.String("db", settingsData.MONGO_DB))
	database := client.Database(settingsData.MONGO_DB)

	nats, err := stack.NewNats(settingsData.NATS_HOST, logger)
	if err != nil {
		logger.Warn("nats unavailable, change events disabled", zap.Error(err))
		nats = nil
	}
	svc := services.NewServices(services.Deps{
		Database: database,
		Search:   newSearch(logger),
		Images:   newImages(logger),
		Nats:     nats,
		Logger:   logger,
	})
	if svc.Search.Enabled() {
		go func() {
			if errRes := svc.Courses.ReindexCourses(ctx); errRes != nil {
				logger.Warn("reindex courses", zap.Error(errRes))
			}
		}()
	}

	handler := NewHandler(RouterConfig{
		Services: svc,
		Logger:   logger,
		Ping: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
		ClientURL:  settingsData.CLIENT_URL,
		RateLimit:  settingsData.RATE_LIMIT,
		Production: settingsData.IsProd(),
	})
	srv := &http.Server{
		Addr:              ":" + settingsData.PORT,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), SHUTDOWN_TIMEOUT)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		logger.Error("disconnect mongo", zap.Error(err))
	}
	nats.Close()
	logger.Info("server exited")
}
