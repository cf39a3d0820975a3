package auth

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/teenfaith/teenfaith/internal/models"
	"github.com/teenfaith/teenfaith/internal/session"
)

// UserKey is the gin context key holding the authenticated *models.User.
const UserKey = "user"

// RequireAuth returns middleware that requires an authenticated session.
// API clients get a 401 instead of a redirect.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := session.Restore(sessions.Default(c))
		if !s.IsAuthenticated {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "unauthorized",
			})
			return
		}

		c.Set("user_id", s.User.ID)
		c.Set(UserKey, s.User)
		c.Next()
	}
}

// RequireAdmin returns middleware that checks for admin privileges.
// It must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := c.MustGet(UserKey).(*models.User)
		if !ok || !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "forbidden",
			})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user set by RequireAuth.
func CurrentUser(c *gin.Context) *models.User {
	user, _ := c.MustGet(UserKey).(*models.User)
	return user
}
