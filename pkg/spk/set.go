package spk

import (
	"fmt"

	"github.com/seren-space/orrery/pkg/daf"
	"github.com/seren-space/orrery/pkg/epoch"
	"github.com/seren-space/orrery/pkg/segment"
)

// Entry pairs a loaded kernel with the name it was loaded under.
type Entry struct {
	Name   string
	Kernel *Kernel
}

// Set is an ordered collection of loaded kernels. Kernels added later take
// precedence when more than one covers a query.
type Set struct {
	entries []Entry
}

// LoadSet loads each path in order into a new set.
func LoadSet(paths ...string) (*Set, error) {
	s := &Set{}
	for _, p := range paths {
		k, err := Load(p)
		if err != nil {
			return nil, err
		}
		s.Add(p, k)
	}
	return s, nil
}

// Add appends a kernel under a display name.
func (s *Set) Add(name string, k *Kernel) {
	s.entries = append(s.entries, Entry{Name: name, Kernel: k})
}

// Entries returns the kernels in load order.
func (s *Set) Entries() []Entry {
	return s.entries
}

// Evaluate queries the kernels in reverse load order and returns the first
// answer, along with the segment and kernel it came from.
func (s *Set) Evaluate(target int, e epoch.Epoch) (segment.State, daf.Summary, string, error) {
	for i := len(s.entries) - 1; i >= 0; i-- {
		ent := s.entries[i]
		st, sum, err := ent.Kernel.Evaluate(target, e)
		if err != nil {
			if _, ok := err.(*NoCoverageError); ok {
				continue
			}
			return segment.State{}, sum, ent.Name, err
		}
		return st, sum, ent.Name, nil
	}
	return segment.State{}, daf.Summary{}, "", &NoCoverageError{Target: target, Epoch: e}
}

// CheckIntegrity validates every kernel in the set.
func (s *Set) CheckIntegrity() error {
	for _, ent := range s.entries {
		if err := ent.Kernel.CheckIntegrity(); err != nil {
			return fmt.Errorf("kernel %s: %w", ent.Name, err)
		}
	}
	return nil
}
