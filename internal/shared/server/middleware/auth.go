package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey  = "userId"
	isGuestKey = "isGuest"
)

type principalCtxKey string

const principalKey principalCtxKey = "principal"

// Principal identifies the caller for the request. Guests carry an
// empty UserID.
type Principal struct {
	UserID string
	Guest  bool
}

// Authenticated reports whether the principal is a signed-in user.
func (p Principal) Authenticated() bool {
	return !p.Guest && p.UserID != ""
}

// Identity derives the caller from the X-User-Id header and stores it
// in both the gin context and the request context. Requests without
// the header proceed as guests; routes that need a signed-in user
// check the principal themselves.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		userID := strings.TrimSpace(c.GetHeader("X-User-Id"))
		p := Principal{UserID: userID, Guest: userID == ""}

		c.Set(userIDKey, p.UserID)
		c.Set(isGuestKey, p.Guest)

		ctx := context.WithValue(c.Request.Context(), principalKey, p)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// PrincipalFromContext fetches the principal stored by Identity.
func PrincipalFromContext(ctx context.Context) Principal {
	if ctx == nil {
		return Principal{Guest: true}
	}
	if p, ok := ctx.Value(principalKey).(Principal); ok {
		return p
	}
	return Principal{Guest: true}
}

// UserIDFromContext fetches the user ID set by Identity.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}
