// Package interp implements Hermite polynomial interpolation over paired
// (value, derivative) samples, the primitive behind SPK type 12 and type 13
// trajectory evaluation.
package interp

import "math"

// MaxSamples is the largest interpolation window supported. The scratch
// table is statically sized from it so evaluation never allocates.
const MaxSamples = 32

// Errors
var (
	ErrTooFewSamples     = &Error{"hermite interpolation needs at least 2 samples"}
	ErrTooManySamples    = &Error{"hermite interpolation window exceeds MaxSamples"}
	ErrLengthMismatch    = &Error{"epochs, values and derivatives must have equal length"}
	ErrDuplicateAbscissa = &Error{"duplicate sample epochs"}
	ErrNonFiniteInput    = &Error{"non-finite sample or target"}
)

// Error represents an interpolation failure.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Hermite evaluates the Hermite interpolating polynomial defined by sample
// abscissas xs, values ys and derivatives ydots at x, returning the
// interpolated value and derivative.
//
// The polynomial matches every (value, derivative) pair exactly, so its
// degree is 2*len(xs)-1. The implementation is the divided-difference
// scheme of SPICE's HRMINT: a 2n-wide interpolation table for values and a
// parallel table for derivatives, folded column by column.
func Hermite(xs, ys, ydots []float64, x float64) (f, df float64, err error) {
	n := len(xs)
	if n < 2 {
		return 0, 0, ErrTooFewSamples
	}
	if n > MaxSamples {
		return 0, 0, ErrTooManySamples
	}
	if len(ys) != n || len(ydots) != n {
		return 0, 0, ErrLengthMismatch
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, 0, ErrNonFiniteInput
	}

	var work [4 * MaxSamples]float64
	for i := 0; i < n; i++ {
		work[2*i] = ys[i]
		work[2*i+1] = ydots[i]
	}

	// Second column of the table: first-degree interpolants at x, and their
	// derivatives. Derivatives are computed first since the value pass
	// overwrites the column they read.
	for i := 1; i < n; i++ {
		c1 := xs[i] - x
		c2 := x - xs[i-1]
		denom := xs[i] - xs[i-1]
		if denom == 0 {
			return 0, 0, ErrDuplicateAbscissa
		}

		prev := 2*i - 2
		curr := prev + 1
		next := prev + 2

		work[prev+2*n] = work[curr]
		work[curr+2*n] = (work[next] - work[prev]) / denom

		temp := work[curr]*c2 + work[prev]
		work[curr] = (c1*work[prev] + c2*work[next]) / denom
		work[prev] = temp
	}

	// Last entries of the second column.
	work[4*n-3] = work[2*n-1]
	work[2*n-2] += work[2*n-1] * (x - xs[n-1])

	// Columns 3 through 2n. Each input abscissa occurs with multiplicity
	// two in the theoretical table, hence the halved index arithmetic.
	for j := 2; j < 2*n; j++ {
		for i := 1; i <= 2*n-j; i++ {
			xi := (i + 1) / 2
			xij := (i + j + 1) / 2
			c1 := xs[xij-1] - x
			c2 := x - xs[xi-1]
			denom := xs[xij-1] - xs[xi-1]
			if denom == 0 {
				return 0, 0, ErrDuplicateAbscissa
			}

			work[i-1+2*n] = (c1*work[i-1+2*n] + c2*work[i+2*n] + (work[i] - work[i-1])) / denom
			work[i-1] = (c1*work[i-1] + c2*work[i]) / denom
		}
	}

	return work[0], work[2*n], nil
}
