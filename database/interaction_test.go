package database

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delicious-app/delicious/database/models"
)

func seedRecipe(t *testing.T, c *Client) (*models.User, *models.Recipe) {
	t.Helper()
	ctx := context.Background()

	author, err := c.CreateUser(ctx, "alice", "alice@example.com", "s3cretpass")
	require.NoError(t, err)
	recipe, err := c.CreateRecipe(ctx, author.ID, RecipeInput{
		Title:       "Spicy Tofu",
		Ingredients: "tofu\nchili",
		Steps:       "1. cook",
	})
	require.NoError(t, err)
	return author, recipe
}

func TestAddComment(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	_, recipe := seedRecipe(t, c)

	commenter, err := c.CreateUser(ctx, "bob", "bob@example.com", "s3cretpass")
	require.NoError(t, err)

	comment, err := c.AddComment(ctx, recipe.ID, commenter.ID, "looks great")
	require.NoError(t, err)
	assert.Equal(t, "looks great", comment.Content)

	reloaded, err := c.GetRecipeBySlug(ctx, recipe.Slug)
	require.NoError(t, err)
	require.Len(t, reloaded.Comments, 1)
	assert.Equal(t, "bob", reloaded.Comments[0].User.Username)
}

func TestSetRating_UpsertsSingleRow(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	_, recipe := seedRecipe(t, c)

	rater, err := c.CreateUser(ctx, "bob", "bob@example.com", "s3cretpass")
	require.NoError(t, err)

	require.NoError(t, c.SetRating(ctx, recipe.ID, rater.ID, 3))
	require.NoError(t, c.SetRating(ctx, recipe.ID, rater.ID, 5))

	var count int64
	c.db.Model(&models.Rating{}).Where("recipe_id = ?", recipe.ID).Count(&count)
	assert.EqualValues(t, 1, count, "re-rating replaces the previous score")

	avg, err := c.AvgRating(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, avg, "the average reflects the latest score only")
}

func TestAvgRating(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	_, recipe := seedRecipe(t, c)

	// No ratings yet.
	avg, err := c.AvgRating(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Zero(t, avg)

	for i, score := range []int{4, 5, 5} {
		name := fmt.Sprintf("rater%d", i)
		u, err := c.CreateUser(ctx, name, name+"@example.com", "s3cretpass")
		require.NoError(t, err)
		require.NoError(t, c.SetRating(ctx, recipe.ID, u.ID, score))
	}

	// 14/3 rounded to one decimal.
	avg, err = c.AvgRating(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.7, avg)
}

func TestToggleLike_RoundTrip(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	_, recipe := seedRecipe(t, c)

	liker, err := c.CreateUser(ctx, "bob", "bob@example.com", "s3cretpass")
	require.NoError(t, err)

	liked, err := c.ToggleLike(ctx, recipe.ID, liker.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	count, err := c.LikeCount(ctx, recipe.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	got, err := c.Liked(ctx, recipe.ID, liker.ID)
	require.NoError(t, err)
	assert.True(t, got)

	liked, err = c.ToggleLike(ctx, recipe.ID, liker.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	count, err = c.LikeCount(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}
