package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blissorganic/storefront/services"
)

// Decision is the outcome of the route guard for one navigation.
type Decision int

const (
	// Hydrating means the session has not finished loading; no redirect
	// decision is made yet.
	Hydrating Decision = iota
	Allowed
	RedirectToLogin
	RedirectToHome
)

const (
	loginPath = "/login"
	homePath  = "/"
)

// Decide is the guard's state machine: Hydrating resolves to exactly
// one of Allowed, RedirectToLogin or RedirectToHome once the session
// has loaded. No token is verified here; only user presence and role
// are consulted.
func Decide(requireAuth, requireAdmin bool, sess *services.SessionStore) Decision {
	if sess.Loading() {
		return Hydrating
	}

	user := sess.User()

	if requireAuth && user == nil {
		return RedirectToLogin
	}
	if requireAdmin && (user == nil || !user.IsAdmin()) {
		return RedirectToHome
	}
	return Allowed
}

// RequireAuth gates a route on an authenticated session.
func RequireAuth() gin.HandlerFunc {
	return guard(true, false)
}

// RequireAdmin gates a route on an authenticated admin session.
func RequireAdmin() gin.HandlerFunc {
	return guard(true, true)
}

func guard(requireAuth, requireAdmin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := GetSession(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
			return
		}

		switch Decide(requireAuth, requireAdmin, sess) {
		case Hydrating:
			// Neutral loading response: never a redirect while the
			// session is still being read back.
			c.AbortWithStatusJSON(http.StatusOK, gin.H{"status": "loading"})
		case RedirectToLogin:
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
		case RedirectToHome:
			c.Redirect(http.StatusSeeOther, homePath)
			c.Abort()
		default:
			c.Next()
		}
	}
}
