// Package auth handles session authentication and the route guards built
// on top of it.
package auth

import (
	"context"
	"errors"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/delicious-app/delicious/database"
	"github.com/delicious-app/delicious/database/models"
)

const (
	sessionUserKey = "user_id"

	// ContextUserKey is the gin context key holding the *models.User of the
	// current session, set by LoadUser. Absent for anonymous requests.
	ContextUserKey = "user"
)

// ErrInvalidCredentials is returned by Login for unknown users or wrong
// passwords; callers must not distinguish the two.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service authenticates sessions against the user table.
type Service struct {
	db *database.Client
}

// New creates a new auth service.
func New(db *database.Client) *Service {
	return &Service{db: db}
}

// Login verifies the credentials and binds the user to the session.
func (s *Service) Login(c *gin.Context, username, password string) (*models.User, error) {
	user, err := s.db.GetUserByUsername(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !s.db.CheckPassword(user, password) {
		return nil, ErrInvalidCredentials
	}

	session := sessions.Default(c)
	session.Set(sessionUserKey, user.ID)
	if err := session.Save(); err != nil {
		return nil, err
	}
	return user, nil
}

// LoginAs binds an already verified user to the session, used after a
// password change to keep the session alive.
func (s *Service) LoginAs(c *gin.Context, user *models.User) error {
	session := sessions.Default(c)
	session.Set(sessionUserKey, user.ID)
	return session.Save()
}

// Logout clears the session.
func (s *Service) Logout(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	return session.Save()
}

// userFromSession resolves the session's user id against the database.
func (s *Service) userFromSession(ctx context.Context, c *gin.Context) *models.User {
	session := sessions.Default(c)
	v := session.Get(sessionUserKey)
	if v == nil {
		return nil
	}
	id, ok := v.(uint)
	if !ok {
		return nil
	}
	user, err := s.db.GetUserByID(ctx, id)
	if err != nil {
		return nil
	}
	return user
}

// CurrentUser returns the user attached to the request, or nil for
// anonymous requests.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}
