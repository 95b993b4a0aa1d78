package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// LoadUser attaches the session's user to the request context. It never
// aborts; anonymous requests simply carry no user.
func (s *Service) LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := s.userFromSession(c.Request.Context(), c); user != nil {
			c.Set(ContextUserKey, user)
		}
		c.Next()
	}
}

// RequireAuth redirects anonymous requests to the login page with a flash
// notice.
func (s *Service) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			AddFlash(c, "error", "Please log in to continue.")
			c.Redirect(http.StatusFound, "/login/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireStaffNamespace guards the administrative and developer namespaces.
// Anonymous requests are redirected to login; authenticated non-staff users
// get the generic not-found page so the namespace's existence stays hidden.
func (s *Service) RequireStaffNamespace() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.Redirect(http.StatusFound, "/login/")
			c.Abort()
			return
		}
		if !user.IsStaff {
			c.HTML(http.StatusNotFound, "404", gin.H{"User": user})
			c.Abort()
			return
		}
		c.Next()
	}
}
