package middleware

import (
	"errors"
	"net/http"
	"strings"

	"anoa.com/langanalytics/pkg/response"
	"anoa.com/langanalytics/pkg/token"
	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	tokens *token.JWTService
}

func NewAuthMiddleware(tokens *token.JWTService) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// RequireAuth accepts "Authorization: Bearer <token>" and stores the token subject under "subject".
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenString = strings.TrimSpace(parts[1])
			}
		}

		if tokenString == "" {
			response.Detail(c, http.StatusUnauthorized, "Not authenticated")
			return
		}

		claims, err := m.tokens.Validate(tokenString)
		if err != nil {
			if errors.Is(err, token.ErrExpiredToken) {
				response.Detail(c, http.StatusUnauthorized, "Token has expired")
				return
			}
			response.Detail(c, http.StatusUnauthorized, "Could not validate credentials")
			return
		}

		c.Set("subject", claims.Subject)
		c.Next()
	}
}
