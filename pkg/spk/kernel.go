// Package spk ties the DAF container to the segment decoders: it loads a
// kernel, picks the segment covering a (target, epoch) query, and evaluates
// states through the right decoder for the segment's data type.
package spk

import (
	"fmt"

	"github.com/seren-space/orrery/pkg/daf"
	"github.com/seren-space/orrery/pkg/epoch"
	"github.com/seren-space/orrery/pkg/segment"
)

// DataSet is the decoder contract shared by the supported segment types.
type DataSet interface {
	Record(n int) (segment.StateRecord, error)
	Evaluate(e epoch.Epoch) (segment.State, error)
	CheckIntegrity() error
}

// UnsupportedTypeError reports a segment whose data type has no decoder.
type UnsupportedTypeError struct {
	DataType int
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported SPK data type %d", e.DataType)
}

// NoCoverageError reports that no segment covers the queried target at the
// queried epoch.
type NoCoverageError struct {
	Target int
	Epoch  epoch.Epoch
}

func (e *NoCoverageError) Error() string {
	return fmt.Sprintf("no segment covers target %d at %s", e.Target, e.Epoch)
}

// Kernel is a loaded SPK file.
type Kernel struct {
	file *daf.File
}

// Load opens and parses the kernel at path.
func Load(path string) (*Kernel, error) {
	f, err := daf.Open(path)
	if err != nil {
		return nil, err
	}
	return &Kernel{file: f}, nil
}

// FromBytes parses a kernel held in memory.
func FromBytes(raw []byte) (*Kernel, error) {
	f, err := daf.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &Kernel{file: f}, nil
}

// Name returns the kernel's internal name.
func (k *Kernel) Name() string {
	return k.file.InternalName
}

// Segments returns every segment descriptor in file order.
func (k *Kernel) Segments() []daf.Summary {
	return k.file.Summaries()
}

// DataSet constructs the decoder for a segment.
func (k *Kernel) DataSet(s daf.Summary) (DataSet, error) {
	buf, err := k.file.SegmentData(s)
	if err != nil {
		return nil, err
	}
	switch s.DataType {
	case 12:
		return segment.NewType12(buf)
	case 13:
		return segment.NewType13(buf)
	default:
		return nil, &UnsupportedTypeError{DataType: s.DataType}
	}
}

// Evaluate finds the segment covering target at e and interpolates its
// state. When several segments cover the epoch, the one latest in the file
// wins, matching the usual kernel-precedence convention.
func (k *Kernel) Evaluate(target int, e epoch.Epoch) (segment.State, daf.Summary, error) {
	sums := k.file.Summaries()
	for i := len(sums) - 1; i >= 0; i-- {
		s := sums[i]
		if s.Target != target || !s.Covers(e) {
			continue
		}
		ds, err := k.DataSet(s)
		if err != nil {
			return segment.State{}, s, err
		}
		st, err := ds.Evaluate(e)
		return st, s, err
	}
	return segment.State{}, daf.Summary{}, &NoCoverageError{Target: target, Epoch: e}
}

// CheckIntegrity validates every supported segment in the kernel and
// returns the first failure, annotated with the segment it came from.
func (k *Kernel) CheckIntegrity() error {
	for _, s := range k.file.Summaries() {
		ds, err := k.DataSet(s)
		if err != nil {
			if _, ok := err.(*UnsupportedTypeError); ok {
				continue
			}
			return fmt.Errorf("segment %q: %w", s.Name, err)
		}
		if err := ds.CheckIntegrity(); err != nil {
			return fmt.Errorf("segment %q: %w", s.Name, err)
		}
	}
	return nil
}
