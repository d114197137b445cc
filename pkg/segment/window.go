package segment

import "github.com/seren-space/orrery/pkg/interp"

// epochAtFunc returns the epoch, in ET seconds, of sample k. Type 13 reads
// it from the stored epoch array; type 12 derives it as anchor + k*step.
type epochAtFunc func(k int) float64

// recordAtFunc returns the k-th state record.
type recordAtFunc func(k int) (StateRecord, error)

// evaluateWindow interpolates a state at et given the insertion index idx
// produced by an epoch search (the index of the first sample with epoch
// greater than et). It selects a window of exactly samples consecutive
// records: ⌊samples/2⌋ records left of idx by default, clamped at record 0,
// and shifted left near the trailing edge so the window keeps its full
// width instead of shrinking.
//
// Gather buffers are statically sized by interp.MaxSamples; only the first
// samples slots are ever handed to the evaluator, since trailing zeros
// would corrupt the polynomial basis.
func evaluateWindow(et float64, idx, numRecords, samples int, epochAt epochAtFunc, recordAt recordAtFunc) (State, error) {
	if samples < 2 {
		return State{}, &MalformedDataError{Need: 2, Reason: "interpolation window narrower than 2 samples"}
	}
	if samples > numRecords {
		return State{}, &MalformedDataError{Need: samples, Reason: "fewer records than the interpolation window"}
	}

	first := idx - samples/2
	if first < 0 {
		first = 0
	}
	last := first + samples
	if last > numRecords {
		last = numRecords
		first = last - samples
	}

	var epochs, xs, ys, zs, vxs, vys, vzs [interp.MaxSamples]float64
	for c, k := 0, first; k < last; c, k = c+1, k+1 {
		e := epochAt(k)
		// Integrity was the caller's chance to catch this; finding a
		// non-finite epoch here means the data changed under us or the
		// check was skipped. Report it, don't panic.
		if !isFinite(e) {
			return State{}, &IntegrityError{Section: SectionEpochData}
		}
		rec, err := recordAt(k)
		if err != nil {
			return State{}, err
		}
		epochs[c] = e
		xs[c] = rec.X
		ys[c] = rec.Y
		zs[c] = rec.Z
		vxs[c] = rec.VX
		vys[c] = rec.VY
		vzs[c] = rec.VZ
	}

	x, vx, err := interp.Hermite(epochs[:samples], xs[:samples], vxs[:samples], et)
	if err != nil {
		return State{}, err
	}
	y, vy, err := interp.Hermite(epochs[:samples], ys[:samples], vys[:samples], et)
	if err != nil {
		return State{}, err
	}
	z, vz, err := interp.Hermite(epochs[:samples], zs[:samples], vzs[:samples], et)
	if err != nil {
		return State{}, err
	}

	return State{
		Position: Vector3{x, y, z},
		Velocity: Vector3{vx, vy, vz},
	}, nil
}
