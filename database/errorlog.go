package database

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/delicious-app/delicious/database/models"
)

// RecordError persists an unhandled failure for staff review.
func (c *Client) RecordError(ctx context.Context, userID *uint, path, method, message, trace string) error {
	entry := models.SystemErrorLog{
		UserID:     userID,
		Path:       path,
		Method:     method,
		Message:    message,
		Trace:      trace,
		StatusCode: 500,
		Resolved:   false,
	}
	if err := c.db.WithContext(ctx).Create(&entry).Error; err != nil {
		log.Error("failed to record error log", "error", err)
		return err
	}
	return nil
}

// ListErrors returns error logs filtered by the resolved flag, newest first.
func (c *Client) ListErrors(ctx context.Context, resolved bool) ([]models.SystemErrorLog, error) {
	var entries []models.SystemErrorLog
	err := c.db.WithContext(ctx).
		Preload("User").
		Where("resolved = ?", resolved).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		log.Error("failed to list error logs", "error", err)
		return nil, err
	}
	return entries, nil
}

// ResolveError deletes the error log row. Resolution keeps no archive.
func (c *Client) ResolveError(ctx context.Context, id uint) error {
	res := c.db.WithContext(ctx).Unscoped().Delete(&models.SystemErrorLog{}, id)
	if res.Error != nil {
		log.Error("failed to resolve error log", "error", res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
