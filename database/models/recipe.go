package models

import "gorm.io/gorm"

// Category groups recipes. The slug is derived from the name at creation
// and immutable afterwards. Deleting a category leaves its recipes in
// place with a cleared category reference.
type Category struct {
	gorm.Model
	Name string `gorm:"not null"`
	Slug string `gorm:"uniqueIndex;not null"`
}

// Recipe is the central record of the application.
// It is created unapproved and becomes publicly visible only once a staff
// member approves it. The slug is unique across all recipes; collisions are
// resolved with an incrementing numeric suffix at allocation time, with the
// unique index as the authoritative guard.
type Recipe struct {
	gorm.Model
	Title            string `gorm:"not null"`
	Slug             string `gorm:"uniqueIndex;not null"`
	AuthorID         uint   `gorm:"not null;index"`
	Author           User   `gorm:"constraint:OnDelete:CASCADE;"`
	CategoryID       *uint
	Category         *Category `gorm:"constraint:OnDelete:SET NULL;"`
	ShortDescription string
	ImagePath        string
	Ingredients      string `gorm:"type:text"`
	Steps            string `gorm:"type:text"`
	Approved         bool   `gorm:"not null;default:false"`

	Comments []Comment `gorm:"constraint:OnDelete:CASCADE;"`
	Ratings  []Rating  `gorm:"constraint:OnDelete:CASCADE;"`
	Likes    []User    `gorm:"many2many:recipe_likes;constraint:OnDelete:CASCADE;"`
}

// Comment belongs to exactly one recipe and one user and is immutable once
// created.
type Comment struct {
	gorm.Model
	RecipeID uint   `gorm:"not null;index"`
	UserID   uint   `gorm:"not null;index"`
	User     User   `gorm:"constraint:OnDelete:CASCADE;"`
	Content  string `gorm:"type:text;not null"`
}

// Rating stores one score per (recipe, user) pair, upserted on conflict.
type Rating struct {
	gorm.Model
	RecipeID uint `gorm:"not null;uniqueIndex:idx_rating_recipe_user"`
	UserID   uint `gorm:"not null;uniqueIndex:idx_rating_recipe_user"`
	User     User `gorm:"constraint:OnDelete:CASCADE;"`
	Score    int  `gorm:"not null"`
}
