package database

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/delicious-app/delicious/database/models"
	"github.com/delicious-app/delicious/slug"
)

// CreateCategory creates a category, deriving a unique slug from the name.
func (c *Client) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	cat := models.Category{
		Name: name,
		Slug: slug.Allocate(name, func(candidate string) bool {
			var count int64
			c.db.WithContext(ctx).Model(&models.Category{}).
				Where("slug = ?", candidate).Count(&count)
			return count > 0
		}),
	}
	if err := c.db.WithContext(ctx).Create(&cat).Error; err != nil {
		log.Error("failed to create category", "error", err)
		return nil, err
	}
	return &cat, nil
}

// GetCategoryBySlug returns the category with the given slug.
func (c *Client) GetCategoryBySlug(ctx context.Context, s string) (*models.Category, error) {
	var cat models.Category
	if err := c.db.WithContext(ctx).Where("slug = ?", s).First(&cat).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &cat, nil
}

// ListCategories returns up to limit categories, all of them when limit <= 0.
func (c *Client) ListCategories(ctx context.Context, limit int) ([]models.Category, error) {
	var cats []models.Category
	q := c.db.WithContext(ctx).Order("name ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&cats).Error; err != nil {
		log.Error("failed to list categories", "error", err)
		return nil, err
	}
	return cats, nil
}

// DeleteCategory removes a category. Recipes referencing it keep existing
// with a cleared category.
func (c *Client) DeleteCategory(ctx context.Context, id uint) error {
	if err := c.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("category_id = ?", id).
		Update("category_id", nil).Error; err != nil {
		return err
	}
	return c.db.WithContext(ctx).Delete(&models.Category{}, id).Error
}
