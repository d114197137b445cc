package spk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seren-space/orrery/pkg/daf"
	"github.com/seren-space/orrery/pkg/epoch"
	"github.com/seren-space/orrery/pkg/segment"
)

// linearType13 builds a type 13 segment with position (t,0,0) and velocity
// (1,0,0) at the given epochs, window-1 = 1.
func linearType13(epochs []float64) []float64 {
	var buf []float64
	for _, t := range epochs {
		buf = append(buf, t, 0, 0, 1, 0, 0)
	}
	buf = append(buf, epochs...)
	return append(buf, 1, float64(len(epochs)))
}

// linearType12 builds the uniform-step equivalent.
func linearType12(anchor, step float64, n int) []float64 {
	var buf []float64
	for i := 0; i < n; i++ {
		t := anchor + float64(i)*step
		buf = append(buf, t, 0, 0, 1, 0, 0)
	}
	return append(buf, anchor, step, 1, float64(n))
}

func testKernel(t *testing.T) *Kernel {
	t.Helper()
	raw, err := daf.NewBuilder("spk test").
		AddSegment(daf.Summary{
			StartET: 0, EndET: 40, Target: 399, DataType: 13, Name: "earth t13",
		}, linearType13([]float64{0, 10, 20, 30, 40})).
		AddSegment(daf.Summary{
			StartET: 100, EndET: 140, Target: 301, DataType: 12, Name: "moon t12",
		}, linearType12(100, 10, 5)).
		Bytes()
	require.NoError(t, err)

	k, err := FromBytes(raw)
	require.NoError(t, err)
	return k
}

func TestKernelEvaluateType13(t *testing.T) {
	k := testKernel(t)

	st, sum, err := k.Evaluate(399, epoch.FromET(25))
	require.NoError(t, err)
	assert.Equal(t, "earth t13", sum.Name)
	assert.InDelta(t, 25.0, st.Position[0], 1e-9)
	assert.InDelta(t, 1.0, st.Velocity[0], 1e-9)
}

func TestKernelEvaluateType12(t *testing.T) {
	k := testKernel(t)

	st, sum, err := k.Evaluate(301, epoch.FromET(123.5))
	require.NoError(t, err)
	assert.Equal(t, "moon t12", sum.Name)
	assert.InDelta(t, 123.5, st.Position[0], 1e-9)
	assert.InDelta(t, 1.0, st.Velocity[0], 1e-9)
}

func TestKernelNoCoverage(t *testing.T) {
	k := testKernel(t)

	_, _, err := k.Evaluate(399, epoch.FromET(99))
	var noCov *NoCoverageError
	require.ErrorAs(t, err, &noCov)
	assert.Equal(t, 399, noCov.Target)

	_, _, err = k.Evaluate(599, epoch.FromET(25))
	assert.ErrorAs(t, err, &noCov)
}

func TestKernelDataSetDispatch(t *testing.T) {
	k := testKernel(t)

	ds13, err := k.DataSet(k.Segments()[0])
	require.NoError(t, err)
	assert.IsType(t, &segment.Type13{}, ds13)

	ds12, err := k.DataSet(k.Segments()[1])
	require.NoError(t, err)
	assert.IsType(t, &segment.Type12{}, ds12)
}

func TestKernelUnsupportedType(t *testing.T) {
	raw, err := daf.NewBuilder("cheby").
		AddSegment(daf.Summary{
			StartET: 0, EndET: 10, Target: 1, DataType: 2, Name: "cheby seg",
		}, []float64{1, 2, 3, 4, 5}).
		Bytes()
	require.NoError(t, err)

	k, err := FromBytes(raw)
	require.NoError(t, err)

	_, err = k.DataSet(k.Segments()[0])
	var unsupported *UnsupportedTypeError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, 2, unsupported.DataType)

	// Integrity skips segments it cannot decode instead of failing.
	assert.NoError(t, k.CheckIntegrity())
}

func TestKernelCheckIntegrity(t *testing.T) {
	k := testKernel(t)
	assert.NoError(t, k.CheckIntegrity())
}

func TestSetPrecedence(t *testing.T) {
	// Two kernels cover target 399 at the same epoch with different data;
	// the later-loaded kernel must win.
	older, err := daf.NewBuilder("older").
		AddSegment(daf.Summary{
			StartET: 0, EndET: 40, Target: 399, DataType: 13, Name: "seg",
		}, linearType13([]float64{0, 10, 20, 30, 40})).
		Bytes()
	require.NoError(t, err)

	var shifted []float64
	for _, et := range []float64{0, 10, 20, 30, 40} {
		shifted = append(shifted, et+1000, 0, 0, 1, 0, 0)
	}
	shifted = append(shifted, 0, 10, 20, 30, 40)
	shifted = append(shifted, 1, 5)
	newer, err := daf.NewBuilder("newer").
		AddSegment(daf.Summary{
			StartET: 0, EndET: 40, Target: 399, DataType: 13, Name: "seg",
		}, shifted).
		Bytes()
	require.NoError(t, err)

	kOld, err := FromBytes(older)
	require.NoError(t, err)
	kNew, err := FromBytes(newer)
	require.NoError(t, err)

	set := &Set{}
	set.Add("older", kOld)
	set.Add("newer", kNew)

	st, _, name, err := set.Evaluate(399, epoch.FromET(20))
	require.NoError(t, err)
	assert.Equal(t, "newer", name)
	assert.InDelta(t, 1020.0, st.Position[0], 1e-9)
}

func TestSetFallsThroughOnNoCoverage(t *testing.T) {
	k := testKernel(t)
	set := &Set{}
	set.Add("only", k)

	_, _, _, err := set.Evaluate(399, epoch.FromET(9999))
	var noCov *NoCoverageError
	assert.ErrorAs(t, err, &noCov)

	st, _, name, err := set.Evaluate(399, epoch.FromET(15))
	require.NoError(t, err)
	assert.Equal(t, "only", name)
	assert.InDelta(t, 15.0, st.Position[0], 1e-9)
}
