package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chupohan/brigade-duty/pkg/db"
)

const (
	userKey      = "user"
	requestIDKey = "request_id"
)

// RequestID tags every request with an ID for log correlation.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// Authenticate resolves the acting user from the X-User-ID header set by
// the session-terminating proxy in front of this service. Session and
// password handling live there, not here.
func (s *Server) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("X-User-ID")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, envelope{
				Error: &apiError{Status: http.StatusUnauthorized, Message: "not authenticated"},
			})
			return
		}

		userID, err := strconv.ParseInt(header, 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, envelope{
				Error: &apiError{Status: http.StatusUnauthorized, Message: "invalid user id"},
			})
			return
		}

		user, err := s.store.GetUser(c.Request.Context(), userID)
		if err != nil {
			respondError(c, s.logger, err, http.StatusInternalServerError, "failed to resolve user")
			c.Abort()
			return
		}
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, envelope{
				Error: &apiError{Status: http.StatusUnauthorized, Message: "unknown user"},
			})
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// RequireAdmin rejects non-admin users.
func (s *Server) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet(userKey).(*db.User)
		if user.Role != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, envelope{
				Error: &apiError{Status: http.StatusForbidden, Message: "admin role required"},
			})
			return
		}
		c.Next()
	}
}

// RequestLogger logs completed requests with their correlation ID.
func (s *Server) RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		s.logger.Debug("Request completed",
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()))
	}
}
