// Package epoch provides the time scale used by SPK ephemeris data:
// TDB (barycentric dynamical time) seconds past the J2000 reference epoch,
// commonly called ephemeris time (ET).
package epoch

import (
	"fmt"
	"math"
	"time"
)

// J2000 is the reference epoch, 2000-01-01 12:00:00 TT, expressed in UTC.
// TT leads UTC by 32.184s + 32 leap seconds at that date (64.184s total).
var J2000 = time.Date(2000, time.January, 1, 11, 58, 55, 816_000_000, time.UTC)

// Epoch is an instant on the TDB time scale, stored as seconds past J2000.
// The zero value is J2000 itself.
type Epoch struct {
	et float64
}

// FromET builds an epoch from ephemeris seconds past J2000.
func FromET(seconds float64) Epoch {
	return Epoch{et: seconds}
}

// FromTime converts a wall-clock instant to an epoch. The conversion treats
// the TDB-UTC offset as constant at its current value, which is accurate to
// the leap-second count for dates after 2017; periodic relativistic terms
// (< 2ms) are ignored.
func FromTime(t time.Time) Epoch {
	return Epoch{et: t.Sub(J2000).Seconds() + leapSecondsSinceJ2000}
}

// Leap seconds introduced after J2000 (2005 through 2016).
const leapSecondsSinceJ2000 = 5.0

// ET returns ephemeris seconds past J2000.
func (e Epoch) ET() float64 { return e.et }

// IsFinite reports whether the epoch holds a usable value.
func (e Epoch) IsFinite() bool {
	return !math.IsNaN(e.et) && !math.IsInf(e.et, 0)
}

// Add returns the epoch shifted by d.
func (e Epoch) Add(d time.Duration) Epoch {
	return Epoch{et: e.et + d.Seconds()}
}

// AddSeconds returns the epoch shifted by the given ephemeris seconds.
func (e Epoch) AddSeconds(s float64) Epoch {
	return Epoch{et: e.et + s}
}

// Sub returns the signed difference e - o in seconds.
func (e Epoch) Sub(o Epoch) float64 { return e.et - o.et }

// Before reports whether e precedes o.
func (e Epoch) Before(o Epoch) bool { return e.et < o.et }

// After reports whether e follows o.
func (e Epoch) After(o Epoch) bool { return e.et > o.et }

// Time converts the epoch to a wall-clock instant, with the same caveats as
// FromTime.
func (e Epoch) Time() time.Time {
	return J2000.Add(time.Duration((e.et - leapSecondsSinceJ2000) * float64(time.Second)))
}

func (e Epoch) String() string {
	return fmt.Sprintf("%.6f ET", e.et)
}
