package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilRevokerNeverRevokes(t *testing.T) {
	r := NewRedisRevoker(nil)
	require.Nil(t, r)

	ctx := context.Background()
	require.NoError(t, r.Revoke(ctx, "abc", time.Now().Add(time.Hour)))

	revoked, err := r.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestConnectRejectsBadURL(t *testing.T) {
	_, err := Connect(context.Background(), "not-a-redis-url")
	assert.Error(t, err)
}
