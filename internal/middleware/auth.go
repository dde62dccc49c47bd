package middleware

import (
	"github.com/Verm1lion/SwarmOPS/internal/constants"
	apierrors "github.com/Verm1lion/SwarmOPS/internal/errors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Identity is the resolved caller: a signed-in admin or a guest scoped to a
// single project by access code.
type Identity struct {
	UserID         uint64
	UserName       string
	GuestName      string
	GuestProjectID uint64
}

// IsGuest reports whether the identity is a cookie-scoped guest.
func (i Identity) IsGuest() bool {
	return i.GuestProjectID != 0
}

// DisplayName returns the name shown as task creator or comment author.
func (i Identity) DisplayName() string {
	if i.IsGuest() {
		return i.GuestName
	}
	return i.UserName
}

// RequireAuth resolves the session into an Identity: admin sessions carry a
// user id, guest sessions carry a project scope and display name.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)

		if userID, ok := toUint64(session.Get(constants.ContextKeyUserID)); ok {
			name, _ := session.Get("user_name").(string)
			c.Set(constants.ContextKeyIdentity, Identity{
				UserID:   userID,
				UserName: name,
			})
			c.Next()
			return
		}

		if projectID, ok := toUint64(session.Get(constants.SessionKeyGuestProject)); ok {
			name, _ := session.Get(constants.SessionKeyGuestName).(string)
			c.Set(constants.ContextKeyIdentity, Identity{
				GuestName:      name,
				GuestProjectID: projectID,
			})
			c.Next()
			return
		}

		apierrors.Unauthorized(c, "")
		c.Abort()
	}
}

// GetIdentity retrieves the resolved identity from context.
func GetIdentity(c *gin.Context) (Identity, bool) {
	v, exists := c.Get(constants.ContextKeyIdentity)
	if !exists {
		return Identity{}, false
	}
	identity, ok := v.(Identity)
	return identity, ok
}

func toUint64(v any) (uint64, bool) {
	switch n := v.(type) {
	case uint64:
		return n, true
	case uint:
		return uint64(n), true
	case int64:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	case int:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	default:
		return 0, false
	}
}
