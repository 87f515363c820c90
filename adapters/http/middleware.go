package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/careerone/portfolio/pkg/apperror"
	"github.com/careerone/portfolio/pkg/logger"
)

// ErrorMiddleware turns the last error a handler pushed with c.Error into
// the JSON error response.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			appErr = apperror.NewInternal("unexpected error", err)
		}
		status := apperror.ToHTTPStatus(appErr)

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", status),
		}
		if status >= http.StatusInternalServerError {
			log.Error(appErr.Details, appErr.Cause(), fields...)
		} else {
			log.Warn(appErr.Message, append(fields, zap.String("details", appErr.Details))...)
		}

		if c.Writer.Written() {
			return
		}
		c.AbortWithStatusJSON(status, appErr.ToJSON())
	}
}

func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
