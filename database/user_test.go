package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser_CreatesProfileInSameTransaction(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	user, err := c.CreateUser(ctx, "alice", "alice@example.com", "s3cretpass")
	require.NoError(t, err)
	assert.False(t, user.IsStaff)
	assert.False(t, user.IsSuperuser)

	loaded, err := c.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, loaded.Profile.UserID, "every user has exactly one profile")
}

func TestCreateUser_UsernameTaken(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	_, err := c.CreateUser(ctx, "alice", "alice@example.com", "s3cretpass")
	require.NoError(t, err)

	_, err = c.CreateUser(ctx, "Alice", "other@example.com", "s3cretpass")
	assert.ErrorIs(t, err, ErrUsernameTaken, "username check is case-insensitive")
}

func TestGetUserByUsername_CaseInsensitive(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	created, err := c.CreateUser(ctx, "Alice", "alice@example.com", "s3cretpass")
	require.NoError(t, err)

	found, err := c.GetUserByUsername(ctx, "aLiCe")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = c.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSuggestUsernames_SkipsTaken(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	_, err := c.CreateUser(ctx, "janedoe", "jane@example.com", "s3cretpass")
	require.NoError(t, err)
	_, err = c.CreateUser(ctx, "janedoe2", "jane2@example.com", "s3cretpass")
	require.NoError(t, err)

	suggestions := c.SuggestUsernames(ctx, "Jane Doe", 3, 0)
	assert.Equal(t, []string{"janedoe3", "janedoe4", "janedoe5"}, suggestions)
}

func TestUpdateUserInfo_SelfCollisionIsNotCollision(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	user, err := c.CreateUser(ctx, "alice", "alice@example.com", "s3cretpass")
	require.NoError(t, err)
	_, err = c.CreateUser(ctx, "bob", "bob@example.com", "s3cretpass")
	require.NoError(t, err)

	// Keeping one's own username must succeed.
	require.NoError(t, c.UpdateUserInfo(ctx, user.ID, "alice", "new@example.com", "Alice", "A"))

	// Taking someone else's must not.
	err = c.UpdateUserInfo(ctx, user.ID, "bob", "new@example.com", "Alice", "A")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestPasswordLifecycle(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	user, err := c.CreateUser(ctx, "alice", "alice@example.com", "s3cretpass")
	require.NoError(t, err)

	assert.True(t, c.CheckPassword(user, "s3cretpass"))
	assert.False(t, c.CheckPassword(user, "wrong"))

	require.NoError(t, c.UpdatePassword(ctx, user.ID, "newpassword"))
	reloaded, err := c.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, c.CheckPassword(reloaded, "newpassword"))
	assert.False(t, c.CheckPassword(reloaded, "s3cretpass"))
}

func TestUpdateProfile(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	user, err := c.CreateUser(ctx, "alice", "alice@example.com", "s3cretpass")
	require.NoError(t, err)

	require.NoError(t, c.UpdateProfile(ctx, user.ID, "profiles/alice.png", "I cook."))

	reloaded, err := c.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "profiles/alice.png", reloaded.Profile.AvatarPath)
	assert.Equal(t, "I cook.", reloaded.Profile.Bio)

	// Empty avatar path keeps the existing image.
	require.NoError(t, c.UpdateProfile(ctx, user.ID, "", "Still cooking."))
	reloaded, err = c.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "profiles/alice.png", reloaded.Profile.AvatarPath)
	assert.Equal(t, "Still cooking.", reloaded.Profile.Bio)
}

func TestListUsers(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	for _, name := range []string{"alice", "bob", "carol"} {
		_, err := c.CreateUser(ctx, name, name+"@example.com", "s3cretpass")
		require.NoError(t, err)
	}

	users, err := c.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)
}
