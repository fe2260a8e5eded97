//go:build linux

// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package tcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/momentics/urlio/api"
)

func TestResolveLoopback(t *testing.T) {
	cands, err := resolve(context.Background(), "localhost", 8080)
	require.NoError(t, err)
	require.NotEmpty(t, cands)
	for _, c := range cands {
		assert.Contains(t, []int{unix.AF_INET, unix.AF_INET6}, c.Family)
		assert.Equal(t, 8080, c.Port)
		assert.True(t, c.IP.IsLoopback(), "localhost candidate %s is not loopback", c.IP)
	}
}

func TestResolveLiteralAddress(t *testing.T) {
	cands, err := resolve(context.Background(), "127.0.0.1", 443)
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Equal(t, unix.AF_INET, cands[0].Family)

	sa, ok := cands[0].Addr.(*unix.SockaddrInet4)
	require.True(t, ok)
	assert.Equal(t, 443, sa.Port)
	assert.Equal(t, [4]byte{127, 0, 0, 1}, sa.Addr)
}

func TestResolveIPv6Literal(t *testing.T) {
	cands, err := resolve(context.Background(), "::1", 53)
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Equal(t, unix.AF_INET6, cands[0].Family)
	_, ok := cands[0].Addr.(*unix.SockaddrInet6)
	assert.True(t, ok)
}

func TestResolveFailureCarriesDiagnostic(t *testing.T) {
	// .invalid is reserved and never resolves (RFC 2606).
	_, err := resolve(context.Background(), "nonexistent.invalid", 80)
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrResolve)
	assert.Contains(t, err.Error(), "nonexistent.invalid")
}
