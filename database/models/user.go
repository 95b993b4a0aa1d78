package models

import "gorm.io/gorm"

// User represents a registered account.
// Staff status grants moderation access; superuser additionally unlocks the
// admin console. Both flags are set during developer-invite registration.
type User struct {
	gorm.Model
	Username     string `gorm:"uniqueIndex;not null"`
	Email        string
	PasswordHash string `gorm:"not null"`
	FirstName    string
	LastName     string
	IsStaff      bool `gorm:"not null;default:false"`
	IsSuperuser  bool `gorm:"not null;default:false"`

	Profile Profile `gorm:"constraint:OnDelete:CASCADE;"`
}

// Profile holds the presentational extras of a user.
// Every user has exactly one profile, created in the same transaction as
// the user itself.
type Profile struct {
	gorm.Model
	UserID     uint `gorm:"uniqueIndex;not null"`
	AvatarPath string
	Bio        string
}
