package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/delicious-app/delicious/database/models"
	"github.com/delicious-app/delicious/slug"
)

// CreateUser creates a user and its profile in a single transaction, so the
// one-profile-per-user invariant can never be observed broken.
func (c *Client) CreateUser(ctx context.Context, username, email, password string) (*models.User, error) {
	return c.createUser(ctx, c.db, username, email, password, false, false)
}

func (c *Client) createUser(ctx context.Context, db *gorm.DB, username, email, password string, staff, superuser bool) (*models.User, error) {
	taken, err := c.UsernameTaken(ctx, username, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		IsStaff:      staff,
		IsSuperuser:  superuser,
		Profile:      models.Profile{},
	}
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		log.Error("failed to create user", "error", err)
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername looks a user up case-insensitively.
func (c *Client) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := c.db.WithContext(ctx).Preload("Profile").
		Where("username = ? COLLATE NOCASE", username).
		First(&user).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error("failed to get user by username", "error", err)
		}
		return nil, wrapNotFound(err)
	}
	return &user, nil
}

// GetUserByID returns a user with its profile.
func (c *Client) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := c.db.WithContext(ctx).Preload("Profile").First(&user, id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &user, nil
}

// UsernameTaken reports whether username is in use by a user other than
// excludeID. Pass 0 to check against all users.
func (c *Client) UsernameTaken(ctx context.Context, username string, excludeID uint) (bool, error) {
	var count int64
	q := c.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ? COLLATE NOCASE", username)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SuggestUsernames generates up to n available usernames based on base.
func (c *Client) SuggestUsernames(ctx context.Context, base string, n int, excludeID uint) []string {
	suggestions := make([]string, 0, n)
	for i := 1; len(suggestions) < n; i++ {
		candidate := slug.UsernameCandidate(base, i)
		taken, err := c.UsernameTaken(ctx, candidate, excludeID)
		if err != nil {
			log.Error("failed to check username candidate", "error", err)
			break
		}
		if !taken {
			suggestions = append(suggestions, candidate)
		}
	}
	return suggestions
}

// UpdateUserInfo updates username, email and name fields. A username change
// is re-validated with the user's own row excluded from the collision check.
func (c *Client) UpdateUserInfo(ctx context.Context, id uint, username, email, firstName, lastName string) error {
	taken, err := c.UsernameTaken(ctx, username, id)
	if err != nil {
		return err
	}
	if taken {
		return ErrUsernameTaken
	}
	return c.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]any{
			"username":   username,
			"email":      email,
			"first_name": firstName,
			"last_name":  lastName,
		}).Error
}

// CheckPassword verifies a plaintext password against the stored hash.
func (c *Client) CheckPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

// UpdatePassword replaces the user's password hash.
func (c *Client) UpdatePassword(ctx context.Context, id uint, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return c.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Update("password_hash", string(hash)).Error
}

// UpdateProfile updates the avatar path and bio of a user's profile.
func (c *Client) UpdateProfile(ctx context.Context, userID uint, avatarPath, bio string) error {
	updates := map[string]any{"bio": bio}
	if avatarPath != "" {
		updates["avatar_path"] = avatarPath
	}
	return c.db.WithContext(ctx).Model(&models.Profile{}).
		Where("user_id = ?", userID).
		Updates(updates).Error
}

// ListUsers returns all users, newest first.
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		log.Error("failed to list users", "error", err)
		return nil, err
	}
	return users, nil
}
