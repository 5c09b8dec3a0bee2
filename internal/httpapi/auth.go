package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// RequireAdmin validates the Bearer JWT and aborts unless the token carries
// an isAdmin claim. Token issuance happens elsewhere; this service only
// verifies HS256 signatures against the shared secret.
func RequireAdmin(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"error": errorBody{Message: "missing bearer token", Status: http.StatusUnauthorized}})
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(ah, "Bearer "))

		tok, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
			if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, jwt.ErrTokenUnverifiable
			}
			return secret, nil
		})
		if err != nil || !tok.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"error": errorBody{Message: "invalid token", Status: http.StatusUnauthorized}})
			return
		}

		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"error": errorBody{Message: "invalid claims", Status: http.StatusUnauthorized}})
			return
		}

		if isAdmin, _ := claims["isAdmin"].(bool); !isAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden,
				gin.H{"error": errorBody{Message: "admin privileges required", Status: http.StatusForbidden}})
			return
		}

		if sub, _ := claims["sub"].(string); sub != "" {
			c.Set("username", sub)
		}
		c.Next()
	}
}
