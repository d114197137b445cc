// Package cache provides an optional pebble-backed cache of evaluated
// states, so a server answering repeated point queries can skip
// re-interpolation. It is purely an accelerator; every miss falls through
// to the decoders.
package cache

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cockroachdb/pebble"

	"github.com/seren-space/orrery/pkg/epoch"
	"github.com/seren-space/orrery/pkg/segment"
)

// StateCache stores evaluated states keyed by (kernel, target, epoch).
type StateCache struct {
	db *pebble.DB
}

// Open opens or creates a cache at path.
func Open(path string) (*StateCache, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, err
	}
	return &StateCache{db: db}, nil
}

func key(kernel string, target int, e epoch.Epoch) []byte {
	return []byte(fmt.Sprintf("%s|%d|%x", kernel, target, math.Float64bits(e.ET())))
}

// Put stores a state. Cached states are reproducible, so writes skip fsync.
func (c *StateCache) Put(kernel string, target int, e epoch.Epoch, st segment.State) error {
	buf := make([]byte, 48)
	for i := 0; i < 3; i++ {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(st.Position[i]))
		binary.LittleEndian.PutUint64(buf[24+i*8:], math.Float64bits(st.Velocity[i]))
	}
	return c.db.Set(key(kernel, target, e), buf, pebble.NoSync)
}

// Get returns a cached state and whether it was present.
func (c *StateCache) Get(kernel string, target int, e epoch.Epoch) (segment.State, bool, error) {
	data, closer, err := c.db.Get(key(kernel, target, e))
	if err == pebble.ErrNotFound {
		return segment.State{}, false, nil
	}
	if err != nil {
		return segment.State{}, false, err
	}
	defer closer.Close()

	if len(data) != 48 {
		// A torn or foreign value; treat as a miss rather than serving it.
		return segment.State{}, false, nil
	}
	var st segment.State
	for i := 0; i < 3; i++ {
		st.Position[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[i*8:]))
		st.Velocity[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[24+i*8:]))
	}
	return st, true, nil
}

// Close closes the cache.
func (c *StateCache) Close() error {
	return c.db.Close()
}
