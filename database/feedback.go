package database

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/delicious-app/delicious/database/models"
)

// AddFeedback stores a feedback message, optionally attributed to a user.
func (c *Client) AddFeedback(ctx context.Context, userID *uint, message string) (*models.Feedback, error) {
	fb := models.Feedback{
		UserID:  userID,
		Message: message,
	}
	if err := c.db.WithContext(ctx).Create(&fb).Error; err != nil {
		log.Error("failed to add feedback", "error", err)
		return nil, err
	}
	return &fb, nil
}

// ListFeedback returns all feedback, newest first.
func (c *Client) ListFeedback(ctx context.Context) ([]models.Feedback, error) {
	var fbs []models.Feedback
	err := c.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Find(&fbs).Error
	if err != nil {
		log.Error("failed to list feedback", "error", err)
		return nil, err
	}
	return fbs, nil
}
