package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"todoapi/internal/models"
)

// HeaderAuth is the request header carrying the auth token.
const HeaderAuth = "x-auth"

const (
	ctxUserKey  = "user"
	ctxTokenKey = "token"
)

// RequireAuth resolves the x-auth header to a live user via the user store
// and rejects the request with a bare 401 otherwise. Resolution failures of
// any kind are rejections, never server errors.
func RequireAuth(users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(HeaderAuth)
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		user, err := users.FindByToken(c.Request.Context(), token)
		if err != nil || user == nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set(ctxUserKey, user)
		c.Set(ctxTokenKey, token)
		c.Next()
	}
}

func currentUser(c *gin.Context) (*models.User, string, bool) {
	value, ok := c.Get(ctxUserKey)
	if !ok {
		return nil, "", false
	}

	user, ok := value.(*models.User)
	if !ok {
		return nil, "", false
	}

	return user, c.GetString(ctxTokenKey), true
}

// RequestLogger tags every request with a generated id and emits one
// structured log line when it finishes.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Writer.Header().Set("X-Request-Id", requestID)

		start := time.Now()
		c.Next()

		logger.Info("request",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}
