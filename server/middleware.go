package server

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skrylabs/skry/di"
	"github.com/skrylabs/skry/errors"
	"github.com/skrylabs/skry/logger"
)

// Recovery returns a Gin middleware that recovers from panics and logs the
// stack.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error("panic recovered", map[string]interface{}{
					"error":  fmt.Sprintf("%v", err),
					"stack":  string(debug.Stack()),
					"path":   c.Request.URL.Path,
					"method": c.Request.Method,
				})
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
			}
		}()
		c.Next()
	}
}

// RequestID injects a unique X-Request-Id header into every request/response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Header("X-Request-Id", id)
		c.Next()
	}
}

// RequestLogger logs each request with method, path, status and latency.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request handled", map[string]interface{}{
			"method":              c.Request.Method,
			"path":                c.Request.URL.Path,
			"status":              c.Writer.Status(),
			logger.FieldRequestID: c.GetString("request_id"),
			logger.FieldDuration:  time.Since(start).Milliseconds(),
		})
	}
}

// Scope opens a DI scope for the request before any handler runs and closes
// it exactly once when the request finishes. The close runs on every exit
// path, including panics, so scoped resources (sessions, transactions) are
// always released.
func Scope(container *di.Container, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, scope := container.EnterScope(c.Request.Context())
		c.Request = c.Request.WithContext(ctx)
		defer func() {
			if err := scope.Close(); err != nil {
				log.Error("scope disposal failed", map[string]interface{}{
					logger.FieldScopeID: scope.ID(),
					"error":             err.Error(),
				})
			}
		}()
		c.Next()
	}
}

// ResolveFromContext resolves tok against the scope opened for this request.
func ResolveFromContext(c *gin.Context, container *di.Container, tok di.Token) (any, error) {
	return container.Resolve(c.Request.Context(), tok)
}

// Resolve resolves tok with type safety against the request's scope.
func Resolve[T any](c *gin.Context, container *di.Container, tok di.Token) (T, error) {
	return di.Resolve[T](c.Request.Context(), container, tok)
}

// AbortWithDIError translates a DI engine error into the standard error
// response and aborts the request.
func AbortWithDIError(c *gin.Context, err error) {
	appErr := errors.FromDI(err)
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}
