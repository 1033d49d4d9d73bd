package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sarojnow24/smart-budget-tracker/internal/common"
	"github.com/sarojnow24/smart-budget-tracker/internal/logging"
	"github.com/sarojnow24/smart-budget-tracker/internal/server/auth"
)

const userIDKey = "userID"

// authMiddleware verifies the bearer access token and stores the user id in
// the request context. Expired tokens surface a distinct message so clients
// can trigger a refresh instead of forcing a re-login.
func authMiddleware(secretKey string) gin.HandlerFunc {
	secret := []byte(secretKey)
	return func(c *gin.Context) {
		var tokenStr string

		header := c.GetHeader(common.AuthorizationHeaderName)
		if header != "" {
			parts := strings.SplitN(header, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenStr = parts[1]
			}
		}

		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": common.ErrorUnauthorized.Error()})
			return
		}

		userID, err := auth.GetUserIDFromToken(tokenStr, secret)
		if err != nil {
			msg := common.ErrInvalidToken.Error()
			if errors.Is(err, common.ErrTokenExpired) {
				msg = common.ErrTokenExpired.Error()
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

func requestLogMiddleware(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}

func currentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
