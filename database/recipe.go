package database

import (
	"context"
	"errors"
	"math"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"github.com/delicious-app/delicious/database/models"
	"github.com/delicious-app/delicious/slug"
)

// RecipeInput carries the author-editable fields of a recipe.
type RecipeInput struct {
	Title            string
	CategoryID       *uint
	ShortDescription string
	ImagePath        string
	Ingredients      string
	Steps            string
}

// slugExists reports whether a recipe other than excludeID uses the slug.
func (c *Client) slugExists(ctx context.Context, candidate string, excludeID uint) bool {
	var count int64
	q := c.db.WithContext(ctx).Model(&models.Recipe{}).Where("slug = ?", candidate)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	q.Count(&count)
	return count > 0
}

// CreateRecipe submits a new recipe on behalf of author. The recipe starts
// unapproved and gets a unique slug derived from its title. The slug's
// unique index is the authoritative guard against allocation races.
func (c *Client) CreateRecipe(ctx context.Context, authorID uint, in RecipeInput) (*models.Recipe, error) {
	recipe := models.Recipe{
		Title:            in.Title,
		AuthorID:         authorID,
		CategoryID:       in.CategoryID,
		ShortDescription: in.ShortDescription,
		ImagePath:        in.ImagePath,
		Ingredients:      in.Ingredients,
		Steps:            in.Steps,
		Approved:         false,
		Slug: slug.Allocate(in.Title, func(candidate string) bool {
			return c.slugExists(ctx, candidate, 0)
		}),
	}
	if err := c.db.WithContext(ctx).Create(&recipe).Error; err != nil {
		log.Error("failed to create recipe", "error", err)
		return nil, err
	}
	return &recipe, nil
}

// GetRecipeBySlug returns a recipe with its author, category and comments.
func (c *Client) GetRecipeBySlug(ctx context.Context, s string) (*models.Recipe, error) {
	var recipe models.Recipe
	err := c.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC")
		}).
		Preload("Comments.User").
		Where("slug = ?", s).
		First(&recipe).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &recipe, nil
}

// VisibleRecipeBySlug applies the visibility rule: everyone sees approved
// recipes, the owning author always sees their own. viewerID 0 means
// anonymous. Staff use GetRecipeBySlug through the preview path instead.
func (c *Client) VisibleRecipeBySlug(ctx context.Context, s string, viewerID uint) (*models.Recipe, error) {
	recipe, err := c.GetRecipeBySlug(ctx, s)
	if err != nil {
		return nil, err
	}
	if !recipe.Approved && recipe.AuthorID != viewerID {
		return nil, ErrNotFound
	}
	return recipe, nil
}

// ListApproved returns approved recipes, newest first, optionally filtered
// by category slug and a free-text query matching title, short description
// or ingredients.
func (c *Client) ListApproved(ctx context.Context, categorySlug, query string) ([]models.Recipe, error) {
	q := c.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		Where("approved = ?", true).
		Order("recipes.created_at DESC")
	if categorySlug != "" {
		q = q.Joins("JOIN categories ON categories.id = recipes.category_id").
			Where("categories.slug = ?", categorySlug)
	}
	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"recipes.title LIKE ? COLLATE NOCASE OR recipes.short_description LIKE ? COLLATE NOCASE OR recipes.ingredients LIKE ? COLLATE NOCASE",
			like, like, like,
		)
	}
	var recipes []models.Recipe
	if err := q.Find(&recipes).Error; err != nil {
		log.Error("failed to list approved recipes", "error", err)
		return nil, err
	}
	return recipes, nil
}

// ListPending returns unapproved recipes awaiting review, newest first.
func (c *Client) ListPending(ctx context.Context) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := c.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		Where("approved = ?", false).
		Order("created_at DESC").
		Find(&recipes).Error
	if err != nil {
		log.Error("failed to list pending recipes", "error", err)
		return nil, err
	}
	return recipes, nil
}

// FeaturedRecipes returns the n newest approved recipes.
func (c *Client) FeaturedRecipes(ctx context.Context, n int) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := c.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		Where("approved = ?", true).
		Order("created_at DESC").
		Limit(n).
		Find(&recipes).Error
	if err != nil {
		log.Error("failed to list featured recipes", "error", err)
		return nil, err
	}
	return recipes, nil
}

// UpdateRecipe mutates the author-editable fields of a recipe. Only the
// owning author may edit; approval status is deliberately left untouched,
// so edits to an approved recipe stay publicly visible. The slug follows a
// title change, excluding the recipe's own row from the collision check.
func (c *Client) UpdateRecipe(ctx context.Context, actor *models.User, recipeID uint, in RecipeInput) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := c.db.WithContext(ctx).First(&recipe, recipeID).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	if actor == nil || recipe.AuthorID != actor.ID {
		return nil, ErrPermissionDenied
	}

	if in.Title != recipe.Title {
		recipe.Slug = slug.Allocate(in.Title, func(candidate string) bool {
			return c.slugExists(ctx, candidate, recipe.ID)
		})
	}
	recipe.Title = in.Title
	recipe.CategoryID = in.CategoryID
	recipe.ShortDescription = in.ShortDescription
	if in.ImagePath != "" {
		recipe.ImagePath = in.ImagePath
	}
	recipe.Ingredients = in.Ingredients
	recipe.Steps = in.Steps

	if err := c.db.WithContext(ctx).Save(&recipe).Error; err != nil {
		log.Error("failed to update recipe", "error", err)
		return nil, err
	}
	return &recipe, nil
}

// DeleteRecipe removes a recipe and, through the cascade, its comments,
// ratings and likes. Permitted for the owning author or any staff member.
func (c *Client) DeleteRecipe(ctx context.Context, actor *models.User, recipeID uint) error {
	var recipe models.Recipe
	if err := c.db.WithContext(ctx).First(&recipe, recipeID).Error; err != nil {
		return wrapNotFound(err)
	}
	if actor == nil || (recipe.AuthorID != actor.ID && !actor.IsStaff) {
		return ErrPermissionDenied
	}

	// Hard deletes: the deleted state is terminal and frees the slug.
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("recipe_id = ?", recipe.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("recipe_id = ?", recipe.ID).Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM recipe_likes WHERE recipe_id = ?", recipe.ID).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&recipe).Error
	})
}

// ApproveRecipe transitions a pending recipe to approved. Staff only.
// Approving an already-approved recipe is a no-op.
func (c *Client) ApproveRecipe(ctx context.Context, actor *models.User, recipeID uint) error {
	if actor == nil || !actor.IsStaff {
		return ErrPermissionDenied
	}
	var recipe models.Recipe
	if err := c.db.WithContext(ctx).First(&recipe, recipeID).Error; err != nil {
		return wrapNotFound(err)
	}
	if recipe.Approved {
		return nil
	}
	return c.db.WithContext(ctx).Model(&recipe).Update("approved", true).Error
}

// LikeCount returns the number of users who like the recipe.
func (c *Client) LikeCount(ctx context.Context, recipeID uint) (int64, error) {
	var count int64
	err := c.db.WithContext(ctx).Table("recipe_likes").
		Where("recipe_id = ?", recipeID).Count(&count).Error
	return count, err
}

// AvgRating returns the arithmetic mean of all scores for a recipe, rounded
// to one decimal place. Zero ratings report 0.
func (c *Client) AvgRating(ctx context.Context, recipeID uint) (float64, error) {
	var avg *float64
	err := c.db.WithContext(ctx).Model(&models.Rating{}).
		Where("recipe_id = ?", recipeID).
		Select("AVG(score)").Scan(&avg).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return math.Round(*avg*10) / 10, nil
}
