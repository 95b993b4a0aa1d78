package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delicious-app/delicious/database/models"
)

func TestErrorLogLifecycle(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	user, err := c.CreateUser(ctx, "alice", "alice@example.com", "s3cretpass")
	require.NoError(t, err)

	require.NoError(t, c.RecordError(ctx, &user.ID, "/recipes/broken/", "GET", "runtime error", "goroutine 1 [running]:\n..."))
	require.NoError(t, c.RecordError(ctx, nil, "/search/", "GET", "template error", "goroutine 7 [running]:\n..."))

	open, err := c.ListErrors(ctx, false)
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, 500, open[0].StatusCode)

	// Anonymous failures carry no user.
	var anon models.SystemErrorLog
	require.NoError(t, c.db.Where("path = ?", "/search/").First(&anon).Error)
	assert.Nil(t, anon.UserID)

	// Resolution removes the row entirely.
	require.NoError(t, c.ResolveError(ctx, open[0].ID))
	open, err = c.ListErrors(ctx, false)
	require.NoError(t, err)
	assert.Len(t, open, 1)

	assert.ErrorIs(t, c.ResolveError(ctx, 9999), ErrNotFound)
}

func TestFeedback(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	user, err := c.CreateUser(ctx, "alice", "alice@example.com", "s3cretpass")
	require.NoError(t, err)

	_, err = c.AddFeedback(ctx, &user.ID, "love the site")
	require.NoError(t, err)
	_, err = c.AddFeedback(ctx, nil, "search is slow")
	require.NoError(t, err)

	entries, err := c.ListFeedback(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
}
