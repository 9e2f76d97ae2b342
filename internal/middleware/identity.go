package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"storefront/internal/clients"
)

// Identity forwards the caller's Authorization and Cookie headers to the
// marketplace backend and, when the bearer token is a JWT, records its
// subject for logging. The token is not verified here; the backend does that.
func Identity(log *logrus.Logger) gin.HandlerFunc {
	parser := jwt.NewParser()
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		creds := clients.Credentials{
			Authorization: authHeader,
			Cookie:        c.GetHeader("Cookie"),
		}
		c.Request = c.Request.WithContext(clients.WithCredentials(c.Request.Context(), creds))

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") && parts[1] != "" {
			claims := jwt.MapClaims{}
			if _, _, err := parser.ParseUnverified(parts[1], claims); err != nil {
				log.Debugf("Middleware: Bearer token is not a readable JWT: %v", err)
			} else if sub, err := claims.GetSubject(); err == nil && sub != "" {
				c.Set("subject", sub)
			}
		}

		c.Next()
	}
}
