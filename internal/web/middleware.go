package web

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/logging"
)

const headerRequestID = "X-Request-ID"

type APIError struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

func writeError(c *gin.Context, status int, code, message string) {
	var e APIError
	e.Error.Code = code
	e.Error.Message = message
	e.Error.RequestID = c.GetString(logging.RequestIDKey)
	c.AbortWithStatusJSON(status, e)
}

// requestID reuses a sane incoming X-Request-ID or mints a UUID.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(headerRequestID))
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(logging.RequestIDKey, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}

// recovery turns a panic into a 500: JSON for API paths, the error page
// otherwise.
func recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error("panic",
					zap.String("request_id", c.GetString(logging.RequestIDKey)),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.Any("err", rec),
					zap.Stack("stack"),
				)
				if wantsJSON(c) {
					writeError(c, http.StatusInternalServerError, "internal_error", "internal server error")
					return
				}
				c.HTML(http.StatusInternalServerError, "error.html", gin.H{
					"title":   "Something went wrong",
					"message": "Sorry, something went wrong on our side. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

func wantsJSON(c *gin.Context) bool {
	p := c.Request.URL.Path
	return strings.HasPrefix(p, "/api/") || strings.HasPrefix(p, "/admin/api/") ||
		strings.Contains(c.GetHeader("Accept"), "application/json")
}
