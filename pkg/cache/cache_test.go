package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seren-space/orrery/pkg/epoch"
	"github.com/seren-space/orrery/pkg/segment"
)

func TestStateCacheRoundTrip(t *testing.T) {
	c, err := Open(t.TempDir())
	require.NoError(t, err)
	defer c.Close()

	st := segment.State{
		Position: segment.Vector3{1.5, -2.25, 3.125},
		Velocity: segment.Vector3{-0.001, 0.002, -0.003},
	}
	e := epoch.FromET(757339200.123456)

	require.NoError(t, c.Put("de440s.bsp", 399, e, st))

	got, ok, err := c.Get("de440s.bsp", 399, e)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, st, got)
}

func TestStateCacheMiss(t *testing.T) {
	c, err := Open(t.TempDir())
	require.NoError(t, err)
	defer c.Close()

	_, ok, err := c.Get("de440s.bsp", 399, epoch.FromET(0))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStateCacheKeysAreDistinct(t *testing.T) {
	c, err := Open(t.TempDir())
	require.NoError(t, err)
	defer c.Close()

	a := segment.State{Position: segment.Vector3{1, 0, 0}}
	b := segment.State{Position: segment.Vector3{2, 0, 0}}

	e := epoch.FromET(100)
	require.NoError(t, c.Put("k", 399, e, a))
	require.NoError(t, c.Put("k", 301, e, b))
	require.NoError(t, c.Put("k", 399, e.AddSeconds(1), b))

	got, ok, err := c.Get("k", 399, e)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, a, got)
}
