package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHermiteLinearIsExact(t *testing.T) {
	// f(t) = t, f'(t) = 1: any Hermite interpolant reproduces it exactly.
	xs := []float64{0, 10, 20}
	ys := []float64{0, 10, 20}
	yds := []float64{1, 1, 1}

	for _, x := range []float64{0, 2.5, 5, 15, 19.99, 20} {
		f, df, err := Hermite(xs, ys, yds, x)
		require.NoError(t, err)
		assert.InDelta(t, x, f, 1e-12, "value at %v", x)
		assert.InDelta(t, 1.0, df, 1e-12, "derivative at %v", x)
	}
}

func TestHermiteCubicIsExact(t *testing.T) {
	// Two (value, derivative) samples define a unique cubic; feeding a cubic
	// in must give the cubic back.
	p := func(x float64) float64 { return 2*x*x*x - 3*x*x + 4*x - 5 }
	dp := func(x float64) float64 { return 6*x*x - 6*x + 4 }

	xs := []float64{-1, 2}
	ys := []float64{p(-1), p(2)}
	yds := []float64{dp(-1), dp(2)}

	for _, x := range []float64{-1, -0.5, 0, 0.7, 1.3, 2} {
		f, df, err := Hermite(xs, ys, yds, x)
		require.NoError(t, err)
		assert.InDelta(t, p(x), f, 1e-9, "value at %v", x)
		assert.InDelta(t, dp(x), df, 1e-9, "derivative at %v", x)
	}
}

func TestHermiteMatchesSamples(t *testing.T) {
	xs := []float64{0, 1, 3, 6}
	ys := []float64{2, -1, 4, 0.5}
	yds := []float64{0.1, -2, 3, 1}

	for i := range xs {
		f, df, err := Hermite(xs, ys, yds, xs[i])
		require.NoError(t, err)
		assert.InDelta(t, ys[i], f, 1e-9)
		assert.InDelta(t, yds[i], df, 1e-9)
	}
}

func TestHermiteErrors(t *testing.T) {
	tests := []struct {
		name string
		xs   []float64
		ys   []float64
		yds  []float64
		x    float64
		want error
	}{
		{
			name: "no samples",
			want: ErrTooFewSamples,
		},
		{
			name: "one sample",
			xs:   []float64{1},
			ys:   []float64{1},
			yds:  []float64{1},
			want: ErrTooFewSamples,
		},
		{
			name: "length mismatch",
			xs:   []float64{1, 2},
			ys:   []float64{1, 2, 3},
			yds:  []float64{1, 2},
			want: ErrLengthMismatch,
		},
		{
			name: "too many samples",
			xs:   make([]float64, MaxSamples+1),
			ys:   make([]float64, MaxSamples+1),
			yds:  make([]float64, MaxSamples+1),
			want: ErrTooManySamples,
		},
		{
			name: "duplicate abscissa",
			xs:   []float64{1, 1, 2},
			ys:   []float64{0, 0, 0},
			yds:  []float64{0, 0, 0},
			want: ErrDuplicateAbscissa,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Hermite(tc.xs, tc.ys, tc.yds, tc.x)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
