package middlewares

import (
	"github.com/CPU-commits/Intranet_BAcademix/res"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler is the one place a failed request gets its body. Controllers
// only call c.Error and return.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Next()

		if len(ctx.Errors) == 0 {
			return
		}
		errRes := res.AsErrorRes(ctx.Errors.Last().Err)

		fields := []zap.Field{
			zap.String("req_id", GetRequestID(ctx)),
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.Request.URL.Path),
			zap.Int("status", errRes.StatusCode),
			zap.Error(errRes.Err),
		}
		if errRes.StatusCode >= 500 {
			logger.Error(errRes.Message, fields...)
		} else {
			logger.Info(errRes.Message, fields...)
		}

		if ctx.Writer.Written() {
			return
		}
		response := res.Response{
			Success: false,
			Message: errRes.Message,
		}
		if errRes.Err != nil && errRes.Err.Error() != errRes.Message {
			response.Error = errRes.Err.Error()
		}
		ctx.AbortWithStatusJSON(errRes.StatusCode, response)
	}
}
