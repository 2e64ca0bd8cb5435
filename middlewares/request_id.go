package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const REQUEST_ID_HEADER = "X-Request-Id"
const REQUEST_ID_LIMIT = 128

const requestIDKey = "request_id"

func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(REQUEST_ID_HEADER)
		if id == "" {
			id = uuid.NewString()
		} else if len(id) > REQUEST_ID_LIMIT {
			id = id[:REQUEST_ID_LIMIT]
		}
		ctx.Set(requestIDKey, id)
		ctx.Header(REQUEST_ID_HEADER, id)
		ctx.Next()
	}
}

func GetRequestID(ctx *gin.Context) string {
	return ctx.GetString(requestIDKey)
}
