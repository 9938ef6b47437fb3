package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/epeers/portfolio-tracker/internal/models"
	"github.com/epeers/portfolio-tracker/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const SessionKey = "session"

// SessionResolver turns a request into a session
type SessionResolver interface {
	SessionFromToken(ctx context.Context, token string) (*models.Session, error)
	LocalSession(ctx context.Context) (*models.Session, error)
}

// ValidateSession attaches the caller's session to the context. In local mode
// every request shares the local session; otherwise the session comes from an
// "Authorization: Bearer <token>" header. Requests without a valid token pass
// through without a session.
func ValidateSession(resolver SessionResolver, local bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if local {
			sess, err := resolver.LocalSession(ctx)
			if err != nil {
				log.Errorf("failed to open local session: %v", err)
				c.Next()
				return
			}
			c.Set(SessionKey, sess)
			c.Next()
			return
		}

		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.Next()
			return
		}

		sess, err := resolver.SessionFromToken(ctx, token)
		if err != nil {
			if !errors.Is(err, services.ErrSessionRequired) {
				log.Warnf("session lookup failed: %v", err)
			}
			c.Next()
			return
		}
		c.Set(SessionKey, sess)
		c.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// GetSession retrieves the session from the context
func GetSession(c *gin.Context) (*models.Session, bool) {
	v, exists := c.Get(SessionKey)
	if !exists {
		return nil, false
	}
	sess, ok := v.(*models.Session)
	return sess, ok
}

// RequireAuth ensures a session is attached
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := GetSession(c); !exists {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Error:   "unauthorized",
				Message: "authentication required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
