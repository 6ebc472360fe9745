package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAllowIsPerKey(t *testing.T) {
	l := NewInMemoryLimiter(1, time.Hour, 2)

	require.True(t, l.Allow("10.0.0.1"))
	require.True(t, l.Allow("10.0.0.1"))
	require.False(t, l.Allow("10.0.0.1"))

	require.True(t, l.Allow("10.0.0.2"))
}
