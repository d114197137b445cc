// Package segment decodes and evaluates Hermite-interpolated SPK ephemeris
// segments (data types 12 and 13). Decoders are read-only views over a
// caller-owned buffer of IEEE-754 doubles: construction parses the trailing
// metadata and keeps borrowed sub-slices, queries interpolate a position and
// velocity at a target epoch.
package segment

import "math"

// RecordStride is the number of doubles occupied by one state record:
// three position components followed by three velocity components.
const RecordStride = 6

// Vector3 is a cartesian triple.
type Vector3 [3]float64

// State is an interpolated or stored position/velocity pair.
type State struct {
	Position Vector3 // km
	Velocity Vector3 // km/s
}

// StateRecord is one stored state: position in km, velocity in km/s.
// It is decoded transiently from a 6-double span and never stored.
type StateRecord struct {
	X  float64
	Y  float64
	Z  float64
	VX float64
	VY float64
	VZ float64
}

func stateRecordFromSlice(vals []float64) StateRecord {
	return StateRecord{
		X:  vals[0],
		Y:  vals[1],
		Z:  vals[2],
		VX: vals[3],
		VY: vals[4],
		VZ: vals[5],
	}
}

// State returns the record as a position/velocity pair.
func (r StateRecord) State() State {
	return State{
		Position: Vector3{r.X, r.Y, r.Z},
		Velocity: Vector3{r.VX, r.VY, r.VZ},
	}
}

// nthRecord slices record n out of data, where records are RecordStride
// doubles wide. The offset carried by the error is the end of the requested
// span, mirroring what the access actually needed.
func nthRecord(data []float64, n int) (StateRecord, error) {
	if n < 0 {
		return StateRecord{}, &MalformedDataError{Need: n, Reason: "negative record index"}
	}
	end := (n + 1) * RecordStride
	if end > len(data) {
		return StateRecord{}, &MalformedDataError{Need: end, Reason: "record index out of range"}
	}
	return stateRecordFromSlice(data[n*RecordStride : end]), nil
}

// scanFinite returns an IntegrityError naming section on the first NaN or
// infinity in vals.
func scanFinite(vals []float64, section IntegritySection) error {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &IntegrityError{Section: section}
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
