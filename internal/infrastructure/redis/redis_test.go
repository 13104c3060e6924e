package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientAuthenticates(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.RequireAuth("secret")

	client, err := NewClient(context.Background(), Config{
		Addr:     mr.Addr(),
		Password: "secret",
	})
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
}

func TestNewClientRejectsBadPassword(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.RequireAuth("secret")

	_, err := NewClient(context.Background(), Config{
		Addr:     mr.Addr(),
		Password: "wrong",
	})
	assert.Error(t, err)
}
