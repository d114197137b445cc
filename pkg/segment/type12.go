package segment

import (
	"fmt"
	"math"

	"github.com/seren-space/orrery/pkg/epoch"
	"github.com/seren-space/orrery/pkg/interp"
)

// Type12 decodes an SPK type 12 segment: Hermite interpolation over states
// sampled at a uniform time step. Metadata sits at the tail of the buffer,
// so decoding starts from the back:
//
//	[state records (n*6)] [anchor ET] [step seconds] [window-1] [n]
//
// Sample epochs are derived arithmetically as anchor + k*step, so point
// queries need no epoch search.
type Type12 struct {
	AnchorEpoch epoch.Epoch
	StepSeconds float64
	Samples     int
	NumRecords  int

	recordData []float64
}

// NewType12 parses a type 12 segment from a caller-owned buffer. The
// returned segment borrows buf and must not outlive it.
func NewType12(buf []float64) (*Type12, error) {
	if len(buf) < 5 {
		return nil, &MalformedDataError{Need: 5}
	}

	anchorET := buf[len(buf)-4]
	if !isFinite(anchorET) {
		return nil, &IntegrityError{Section: SectionMetadata}
	}
	stepS := buf[len(buf)-3]
	if !isFinite(stepS) {
		return nil, &IntegrityError{Section: SectionMetadata}
	}
	if stepS <= 0 {
		return nil, &MalformedDataError{Need: 1, Reason: "non-positive step size"}
	}

	// The on-disk value is the window size minus one.
	samples := int(buf[len(buf)-2]) + 1
	numRecords := int(buf[len(buf)-1])
	if numRecords <= 0 {
		return nil, &MalformedDataError{Need: 1, Reason: "zero record count"}
	}
	if samples > interp.MaxSamples {
		return nil, &MalformedDataError{Need: interp.MaxSamples, Reason: "window wider than the supported maximum"}
	}

	recordData := buf[:len(buf)-4]
	if len(recordData) != numRecords*RecordStride {
		return nil, &MalformedDataError{
			Need:   numRecords*RecordStride + 4,
			Reason: "record data length does not match record count",
		}
	}

	return &Type12{
		AnchorEpoch: epoch.FromET(anchorET),
		StepSeconds: stepS,
		Samples:     samples,
		NumRecords:  numRecords,
		recordData:  recordData,
	}, nil
}

// Record returns the n-th stored state.
func (s *Type12) Record(n int) (StateRecord, error) {
	return nthRecord(s.recordData, n)
}

// Coverage returns the first and last sample epochs.
func (s *Type12) Coverage() (epoch.Epoch, epoch.Epoch) {
	return s.AnchorEpoch, s.AnchorEpoch.AddSeconds(float64(s.NumRecords-1) * s.StepSeconds)
}

// Evaluate interpolates the state at e. An epoch landing exactly on a
// sample returns that record's state with no interpolation; otherwise a
// window of Samples consecutive records around the query is fed to the
// Hermite evaluator, one call per axis.
func (s *Type12) Evaluate(e epoch.Epoch) (State, error) {
	et := e.ET()
	firstET := s.AnchorEpoch.ET()
	lastET := firstET + float64(s.NumRecords-1)*s.StepSeconds
	if et < firstET || et > lastET {
		return State{}, &MissingInterpolationDataError{Epoch: e}
	}

	frac := (et - firstET) / s.StepSeconds
	k := math.Round(frac)
	if firstET+k*s.StepSeconds == et {
		rec, err := s.Record(int(k))
		if err != nil {
			return State{}, err
		}
		return rec.State(), nil
	}

	// Insertion index: first sample whose epoch exceeds et.
	idx := int(math.Floor(frac)) + 1
	return evaluateWindow(et, idx, s.NumRecords, s.Samples,
		func(k int) float64 { return firstET + float64(k)*s.StepSeconds },
		s.Record)
}

// CheckIntegrity scans every stored state value and fails on the first NaN
// or infinity.
func (s *Type12) CheckIntegrity() error {
	return scanFinite(s.recordData, SectionStateData)
}

func (s *Type12) String() string {
	return fmt.Sprintf("Hermite type 12: start %s, step %gs, window %d, %d records",
		s.AnchorEpoch, s.StepSeconds, s.Samples, s.NumRecords)
}
