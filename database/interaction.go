package database

import (
	"context"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/delicious-app/delicious/database/models"
)

// AddComment appends a comment to a recipe.
func (c *Client) AddComment(ctx context.Context, recipeID, userID uint, content string) (*models.Comment, error) {
	comment := models.Comment{
		RecipeID: recipeID,
		UserID:   userID,
		Content:  content,
	}
	if err := c.db.WithContext(ctx).Create(&comment).Error; err != nil {
		log.Error("failed to add comment", "error", err)
		return nil, err
	}
	return &comment, nil
}

// SetRating upserts the score for a (recipe, user) pair as a single
// statement, so concurrent double-submissions cannot produce duplicate rows.
func (c *Client) SetRating(ctx context.Context, recipeID, userID uint, score int) error {
	rating := models.Rating{
		RecipeID: recipeID,
		UserID:   userID,
		Score:    score,
	}
	err := c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "recipe_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "updated_at"}),
	}).Create(&rating).Error
	if err != nil {
		log.Error("failed to set rating", "error", err)
	}
	return err
}

// ToggleLike flips the user's membership in the recipe's liker set and
// reports whether the recipe is liked afterwards.
func (c *Client) ToggleLike(ctx context.Context, recipeID, userID uint) (bool, error) {
	liked := false
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Table("recipe_likes").
			Where("recipe_id = ? AND user_id = ?", recipeID, userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return tx.Exec(
				"DELETE FROM recipe_likes WHERE recipe_id = ? AND user_id = ?",
				recipeID, userID,
			).Error
		}
		liked = true
		return tx.Exec(
			"INSERT INTO recipe_likes (recipe_id, user_id) VALUES (?, ?)",
			recipeID, userID,
		).Error
	})
	if err != nil {
		log.Error("failed to toggle like", "error", err)
		return false, err
	}
	return liked, nil
}

// Liked reports whether the user currently likes the recipe.
func (c *Client) Liked(ctx context.Context, recipeID, userID uint) (bool, error) {
	var count int64
	err := c.db.WithContext(ctx).Table("recipe_likes").
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).
		Count(&count).Error
	return count > 0, err
}
