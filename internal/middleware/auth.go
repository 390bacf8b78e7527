package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jengzang/neuronav-backend-go/pkg/response"
)

// SubjectKey is the gin context key of the authenticated token subject
const SubjectKey = "subject"

// Auth verifies an HS256 bearer token minted by the identity provider.
// With required=false requests without a token pass through, but a token
// that is present must still be valid.
func Auth(secret string, required bool) gin.HandlerFunc {
	key := []byte(secret)
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			if required {
				response.Error(c, http.StatusUnauthorized, "missing bearer token")
				c.Abort()
				return
			}
			c.Next()
			return
		}

		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			response.Error(c, http.StatusUnauthorized, "malformed authorization header")
			c.Abort()
			return
		}

		token, err := parser.Parse(raw, func(*jwt.Token) (interface{}, error) {
			return key, nil
		})
		if err != nil || !token.Valid {
			msg := "invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "token expired"
			}
			response.Error(c, http.StatusUnauthorized, msg)
			c.Abort()
			return
		}

		if sub, err := token.Claims.GetSubject(); err == nil && sub != "" {
			c.Set(SubjectKey, sub)
		}
		c.Next()
	}
}
