// Package database wraps the gorm client and the per-entity repositories.
package database

import (
	"errors"
	"fmt"
	"path"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/delicious-app/delicious/database/models"
)

// Sentinel errors returned by the repositories. Handlers map these onto the
// HTTP surface.
var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrPermissionDenied is returned when the acting user may not perform
	// the operation on the resource.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrUsernameTaken is returned when a username is already in use.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidOrUsedCode is returned when an invite code is unknown or
	// already redeemed.
	ErrInvalidOrUsedCode = errors.New("invalid or already used invite code")
)

// Client wraps the gorm.DB instance.
type Client struct {
	db *gorm.DB
}

// New creates a new database connection and performs migrations.
func New(dbpath string) (*Client, error) {
	db, err := gorm.Open(sqlite.Open(path.Join(dbpath, "delicious.db")), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	c := &Client{db: db}
	if err := c.Migrate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Open connects to an sqlite database by DSN without migrating. Used by
// tests with ":memory:".
func Open(dsn string) (*Client, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	return &Client{db: db}, nil
}

// Migrate applies the schema.
func (c *Client) Migrate() error {
	if err := c.db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Category{},
		&models.Recipe{},
		&models.Comment{},
		&models.Rating{},
		&models.Feedback{},
		&models.SystemErrorLog{},
		&models.InviteCode{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// wrapNotFound converts gorm's record-not-found into the package sentinel.
func wrapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
