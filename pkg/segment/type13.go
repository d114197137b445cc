package segment

import (
	"fmt"
	"math"
	"sort"

	"github.com/seren-space/orrery/pkg/epoch"
	"github.com/seren-space/orrery/pkg/interp"
)

// Every 100th state epoch is duplicated into the directory, per the SPK
// type 13 layout.
const epochDirectoryInterval = 100

// Type13 decodes an SPK type 13 segment: Hermite interpolation over states
// sampled at irregular epochs. The buffer is partitioned front to back into
// state records, their epochs, and an epoch directory, with two metadata
// values at the tail:
//
//	[state records (n*6)] [epochs (n)] [directory] [window-1] [n]
//
// Epochs must be stored in strictly ascending order; that is the producer's
// obligation and is not re-validated here.
type Type13 struct {
	Samples    int
	NumRecords int

	stateData      []float64
	epochData      []float64
	epochDirectory []float64
}

// NewType13 parses a type 13 segment from a caller-owned buffer. The
// returned segment borrows buf and must not outlive it.
func NewType13(buf []float64) (*Type13, error) {
	if len(buf) < 3 {
		return nil, &MalformedDataError{Need: 3}
	}

	numRecords := int(buf[len(buf)-1])
	// The on-disk value is the window size minus one.
	samples := int(buf[len(buf)-2]) + 1
	if numRecords <= 0 {
		return nil, &MalformedDataError{Need: 1, Reason: "zero record count"}
	}
	if samples > interp.MaxSamples {
		return nil, &MalformedDataError{Need: interp.MaxSamples, Reason: "window wider than the supported maximum"}
	}

	// The record count comes from untrusted data; bound it by what the
	// buffer could hold before computing word offsets, since the products
	// below overflow for garbage counts.
	if numRecords > (len(buf)-2)/(RecordStride+1) {
		need := math.MaxInt
		if numRecords < (math.MaxInt-2)/(RecordStride+1) {
			need = numRecords*(RecordStride+1) + 2
		}
		return nil, &MalformedDataError{
			Need:   need,
			Reason: "declared record count exceeds buffer length",
		}
	}

	stateEnd := numRecords * RecordStride
	epochEnd := stateEnd + numRecords

	return &Type13{
		Samples:        samples,
		NumRecords:     numRecords,
		stateData:      buf[:stateEnd],
		epochData:      buf[stateEnd:epochEnd],
		epochDirectory: buf[epochEnd : len(buf)-2],
	}, nil
}

// Degree returns the polynomial degree achieved by the interpolation
// window: 2s-1 for s paired (value, derivative) samples.
func (s *Type13) Degree() int {
	return 2*s.Samples - 1
}

// Record returns the n-th stored state.
func (s *Type13) Record(n int) (StateRecord, error) {
	return nthRecord(s.stateData, n)
}

// Coverage returns the first and last stored epochs.
func (s *Type13) Coverage() (epoch.Epoch, epoch.Epoch) {
	return epoch.FromET(s.epochData[0]), epoch.FromET(s.epochData[len(s.epochData)-1])
}

// searchBounds narrows the epoch search range using the epoch directory
// when it looks usable: the expected length for this record count, finite,
// and ascending. A missing or implausible directory is not an error; the
// full range is searched instead.
func (s *Type13) searchBounds(et float64) (lo, hi int) {
	lo, hi = 0, len(s.epochData)
	dir := s.epochDirectory
	if len(dir) == 0 || len(dir) != len(s.epochData)/epochDirectoryInterval {
		return lo, hi
	}
	for i, v := range dir {
		if !isFinite(v) || (i > 0 && v <= dir[i-1]) {
			return lo, hi
		}
	}

	// dir[j] holds the epoch of record (j+1)*interval - 1, so everything
	// strictly before dir[d-1] is below et.
	d := sort.SearchFloat64s(dir, et)
	lo = d * epochDirectoryInterval
	if end := (d + 1) * epochDirectoryInterval; end < hi {
		hi = end
	}
	return lo, hi
}

// Evaluate interpolates the state at e. A query landing exactly on a
// stored epoch returns that record's state bit-for-bit; otherwise a window
// of Samples consecutive records around the query is fed to the Hermite
// evaluator, one call per axis.
func (s *Type13) Evaluate(e epoch.Epoch) (State, error) {
	et := e.ET()
	first := s.epochData[0]
	last := s.epochData[len(s.epochData)-1]
	// A NaN boundary would slip through the range comparisons below.
	if !isFinite(first) || !isFinite(last) {
		return State{}, &IntegrityError{Section: SectionEpochData}
	}
	if et < first || et > last {
		return State{}, &MissingInterpolationDataError{Epoch: e}
	}

	lo, hi := s.searchBounds(et)
	idx := lo + sort.SearchFloat64s(s.epochData[lo:hi], et)
	if idx < len(s.epochData) && s.epochData[idx] == et {
		rec, err := s.Record(idx)
		if err != nil {
			return State{}, err
		}
		return rec.State(), nil
	}

	return evaluateWindow(et, idx, s.NumRecords, s.Samples,
		func(k int) float64 { return s.epochData[k] },
		s.Record)
}

// CheckIntegrity scans epoch data, then the epoch directory, then state
// data, and fails on the first NaN or infinity found. The scan order fixes
// which section is reported when more than one is corrupt.
func (s *Type13) CheckIntegrity() error {
	if err := scanFinite(s.epochData, SectionEpochData); err != nil {
		return err
	}
	if err := scanFinite(s.epochDirectory, SectionEpochDirectory); err != nil {
		return err
	}
	return scanFinite(s.stateData, SectionStateData)
}

func (s *Type13) String() string {
	lo, hi := s.Coverage()
	return fmt.Sprintf("Hermite type 13 from %s to %s, degree %d (%d records, %d directory entries)",
		lo, hi, s.Degree(), s.NumRecords, len(s.epochDirectory))
}
