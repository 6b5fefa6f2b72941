package logger

import (
	"time"

	"github.com/gin-gonic/gin"
)

// LogWithWriter logs one line per request once the handler chain returns.
func LogWithWriter() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		path := ctx.Request.URL.Path
		if raw := ctx.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}

		ctx.Next()

		status := ctx.Writer.Status()
		logf := Infof
		if status >= 500 {
			logf = Errorf
		}
		logf(ctx.Request.Context(), "%s %s %d %s %s",
			ctx.Request.Method, path, status, time.Since(start), ctx.ClientIP())
	}
}
