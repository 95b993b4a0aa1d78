package database

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// newTestClient opens a fresh in-memory database for a single test.
func newTestClient(t *testing.T) *Client {
	t.Helper()
	c, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	require.NoError(t, c.Migrate())
	t.Cleanup(func() {
		_ = c.Close()
	})
	return c
}
