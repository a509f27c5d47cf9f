package redis

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClient_Disabled(t *testing.T) {
	t.Parallel()

	rdb, err := NewRedisClient(context.Background(), "")
	assert.ErrorIs(t, err, ErrDisabled)
	assert.Nil(t, rdb)
}

func TestNewRedisClient_InvalidURL(t *testing.T) {
	t.Parallel()

	rdb, err := NewRedisClient(context.Background(), "http://localhost:6379")
	assert.Error(t, err)
	assert.Nil(t, rdb)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	t.Parallel()

	// grab a free port and release it so nothing is listening there
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	rdb, err := NewRedisClient(context.Background(), "redis://"+addr+"/0")
	assert.Error(t, err)
	assert.Nil(t, rdb)
}
