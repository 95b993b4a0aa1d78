package models

import "gorm.io/gorm"

// Feedback is free-form text, optionally attributed to a user. Deleting the
// user clears the attribution without deleting the feedback.
type Feedback struct {
	gorm.Model
	UserID  *uint
	User    *User  `gorm:"constraint:OnDelete:SET NULL;"`
	Message string `gorm:"type:text;not null"`
}

// SystemErrorLog captures an unhandled failure for staff review.
// Resolving a log deletes the row; the Resolved column exists for schema
// fidelity with the `?resolved=true` listing filter.
type SystemErrorLog struct {
	gorm.Model
	UserID     *uint
	User       *User  `gorm:"constraint:OnDelete:SET NULL;"`
	Path       string `gorm:"not null"`
	Method     string `gorm:"not null"`
	Message    string `gorm:"type:text"`
	Trace      string `gorm:"type:text"`
	StatusCode int    `gorm:"not null;default:500"`
	Resolved   bool   `gorm:"not null;default:false"`
}

// InviteCode is a single-use token permitting elevated account creation.
// Redemption deactivates the code and records the redeemer in the same
// transaction that creates the elevated account.
type InviteCode struct {
	gorm.Model
	Code     string `gorm:"uniqueIndex;not null"`
	Active   bool   `gorm:"not null;default:true"`
	UsedByID *uint
	UsedBy   *User `gorm:"constraint:OnDelete:SET NULL;"`
}
