package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"game-concierge/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BearerAuth Authorization ヘッダの Bearer トークンを共有シークレットと照合する
func BearerAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		incoming := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))

		if token == "" || incoming == "" ||
			subtle.ConstantTimeCompare([]byte(incoming), []byte(token)) != 1 {
			common.LogWarn("認証失敗",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "unauthorized",
				"code":  common.ErrCodeUnauthorized,
			})
			return
		}

		c.Next()
	}
}
