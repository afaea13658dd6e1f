package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/akademix/records-api/internal/models"
	appErrors "github.com/akademix/records-api/pkg/errors"
	"github.com/akademix/records-api/pkg/response"
)

// ContextPrincipalKey is the gin context key storing the verified principal.
const ContextPrincipalKey = "currentPrincipal"

// Auth protects routes by requiring a valid bearer token signed with secret.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		principal, err := parsePrincipal(parts[1], secret)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextPrincipalKey, principal)
		c.Next()
	}
}

// PrincipalFrom returns the verified principal stored on the context, if any.
func PrincipalFrom(c *gin.Context) (*models.Principal, bool) {
	v, exists := c.Get(ContextPrincipalKey)
	if !exists {
		return nil, false
	}
	principal, ok := v.(*models.Principal)
	return principal, ok
}

func parsePrincipal(tokenString, secret string) (*models.Principal, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.Principal{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	principal, ok := token.Claims.(*models.Principal)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	return principal, nil
}
