package database

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/delicious-app/delicious/database/models"
)

// CreateInviteCode mints a new single-use invite code. The master-key check
// happens at the caller; the repository only records the code.
func (c *Client) CreateInviteCode(ctx context.Context) (*models.InviteCode, error) {
	code := models.InviteCode{
		Code:   strings.ReplaceAll(uuid.NewString(), "-", ""),
		Active: true,
	}
	if err := c.db.WithContext(ctx).Create(&code).Error; err != nil {
		log.Error("failed to create invite code", "error", err)
		return nil, err
	}
	return &code, nil
}

// ListInviteCodes returns all invite codes, newest first.
func (c *Client) ListInviteCodes(ctx context.Context) ([]models.InviteCode, error) {
	var codes []models.InviteCode
	err := c.db.WithContext(ctx).
		Preload("UsedBy").
		Order("created_at DESC").
		Find(&codes).Error
	if err != nil {
		log.Error("failed to list invite codes", "error", err)
		return nil, err
	}
	return codes, nil
}

// RedeemInviteCode atomically creates an elevated user, deactivates the code
// and records the redeemer. A code can be redeemed at most once: the
// deactivation is a guarded single-row update, so of two concurrent
// redemptions exactly one commits and the other fails with
// ErrInvalidOrUsedCode.
func (c *Client) RedeemInviteCode(ctx context.Context, code, username, email, password string) (*models.User, error) {
	var user *models.User
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var invite models.InviteCode
		if err := tx.Where("code = ? AND active = ?", code, true).First(&invite).Error; err != nil {
			return ErrInvalidOrUsedCode
		}

		u, err := c.createUser(ctx, tx, username, email, password, true, true)
		if err != nil {
			return err
		}

		res := tx.Model(&models.InviteCode{}).
			Where("id = ? AND active = ?", invite.ID, true).
			Updates(map[string]any{"active": false, "used_by_id": u.ID})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidOrUsedCode
		}

		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateElevatedUser creates a staff/superuser account directly, used by the
// static invite-code variant where no database code row is consumed.
func (c *Client) CreateElevatedUser(ctx context.Context, username, email, password string) (*models.User, error) {
	return c.createUser(ctx, c.db, username, email, password, true, true)
}
