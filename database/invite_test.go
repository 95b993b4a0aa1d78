package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delicious-app/delicious/database/models"
)

func TestRedeemInviteCode(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	code, err := c.CreateInviteCode(ctx)
	require.NoError(t, err)
	assert.True(t, code.Active)
	assert.Len(t, code.Code, 32)

	user, err := c.RedeemInviteCode(ctx, code.Code, "dev", "dev@example.com", "s3cretpass")
	require.NoError(t, err)
	assert.True(t, user.IsStaff)
	assert.True(t, user.IsSuperuser)

	// The code is consumed and linked to its redeemer.
	codes, err := c.ListInviteCodes(ctx)
	require.NoError(t, err)
	require.Len(t, codes, 1)
	assert.False(t, codes[0].Active)
	require.NotNil(t, codes[0].UsedByID)
	assert.Equal(t, user.ID, *codes[0].UsedByID)

	// Second redemption fails and creates no account.
	_, err = c.RedeemInviteCode(ctx, code.Code, "dev2", "dev2@example.com", "s3cretpass")
	assert.ErrorIs(t, err, ErrInvalidOrUsedCode)
	_, err = c.GetUserByUsername(ctx, "dev2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedeemInviteCode_UnknownCode(t *testing.T) {
	c := newTestClient(t)

	_, err := c.RedeemInviteCode(context.Background(), "nope", "dev", "dev@example.com", "s3cretpass")
	assert.ErrorIs(t, err, ErrInvalidOrUsedCode)
}

func TestRedeemInviteCode_TakenUsernameKeepsCodeActive(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	_, err := c.CreateUser(ctx, "dev", "dev@example.com", "s3cretpass")
	require.NoError(t, err)
	code, err := c.CreateInviteCode(ctx)
	require.NoError(t, err)

	_, err = c.RedeemInviteCode(ctx, code.Code, "dev", "other@example.com", "s3cretpass")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	// The failed transaction must not burn the code.
	var reloaded models.InviteCode
	require.NoError(t, c.db.First(&reloaded, code.ID).Error)
	assert.True(t, reloaded.Active)
}

func TestCreateElevatedUser(t *testing.T) {
	c := newTestClient(t)

	user, err := c.CreateElevatedUser(context.Background(), "dev", "dev@example.com", "s3cretpass")
	require.NoError(t, err)
	assert.True(t, user.IsStaff)
	assert.True(t, user.IsSuperuser)
	assert.Equal(t, user.ID, user.Profile.UserID)
}
