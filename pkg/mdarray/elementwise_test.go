package mdarray_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfuntowicz/mdarray/pkg/mdarray"
)

func TestAdd(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		concurrent int
	}{
		"sequential":     {concurrent: 1},
		"sequential v2":  {concurrent: 0},
		"concurrent 2":   {concurrent: 2},
		"concurrent 100": {concurrent: 100},
	}

	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			a := rangeTensor(t, 4, 16)
			b, err := mdarray.Ones[float64](4, 16)
			require.NoError(t, err)

			got, err := mdarray.Add(a, b, mdarray.WithConcurrency(tc.concurrent))
			require.NoError(t, err)
			assert.Equal(t, a.Sum()+64, got.Sum())
			assert.Equal(t, float64(1), got.MustAt(0, 0))
			assert.Equal(t, float64(64), got.MustAt(3, 15))
		})
	}
}

func TestAddBroadcast(t *testing.T) {
	t.Parallel()

	matrix := rangeTensor(t, 2, 3)
	row := tensorFrom(t, []float64{10, 20, 30}, 3)

	got, err := mdarray.Add(matrix, row)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 21, 32, 13, 24, 35}, got.Values())

	column := tensorFrom(t, []float64{100, 200}, 2, 1)
	got, err = mdarray.Add(column, row)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, got.Shape())
	assert.Equal(t, []float64{110, 120, 130, 210, 220, 230}, got.Values())
}

func TestAddShapeMismatch(t *testing.T) {
	t.Parallel()

	a := rangeTensor(t, 2)
	b := rangeTensor(t, 3)

	_, err := mdarray.Add(a, b)
	require.Error(t, err)
}

func TestAddNilTensor(t *testing.T) {
	t.Parallel()

	a := rangeTensor(t, 2)

	_, err := mdarray.Add(a, nil)
	require.ErrorIs(t, err, mdarray.ErrNilTensor)
}

func TestSubMul(t *testing.T) {
	t.Parallel()

	a := tensorFrom(t, []int32{5, 7, 9}, 3)
	b := tensorFrom(t, []int32{1, 2, 3}, 3)

	diff, err := mdarray.Sub(a, b)
	require.NoError(t, err)
	assert.Equal(t, []int32{4, 5, 6}, diff.Values())

	prod, err := mdarray.Mul(a, b)
	require.NoError(t, err)
	assert.Equal(t, []int32{5, 14, 27}, prod.Values())
}

func TestDivFloat(t *testing.T) {
	t.Parallel()

	a := tensorFrom(t, []float64{1, 2, 3}, 3)
	b := tensorFrom(t, []float64{2, 0, 2}, 3)

	got, err := mdarray.Div(a, b)
	require.NoError(t, err)
	assert.Equal(t, float64(0.5), got.MustAt(0))
	assert.True(t, math.IsInf(got.MustAt(1), 1))
}

func TestDivIntegerByZero(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		concurrent int
	}{
		"sequential":   {concurrent: 1},
		"concurrent 4": {concurrent: 4},
	}

	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			a := tensorFrom(t, []int32{1, 2, 3}, 3)
			b := tensorFrom(t, []int32{1, 0, 1}, 3)

			_, err := mdarray.Div(a, b, mdarray.WithConcurrency(tc.concurrent))
			require.ErrorIs(t, err, mdarray.ErrDivisionByZero)
		})
	}
}

func TestZip(t *testing.T) {
	t.Parallel()

	a := tensorFrom(t, []float64{1, 2, 3}, 3)
	b := tensorFrom(t, []float64{4, 5, 6}, 3)

	got, err := mdarray.Zip(a, b, func(x, y float64) float64 {
		return x*10 + y
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{14, 25, 36}, got.Values())
}

func TestApply(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		concurrent int
	}{
		"sequential":     {concurrent: 1},
		"concurrent 2":   {concurrent: 2},
		"concurrent 100": {concurrent: 100},
	}

	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			tensor := rangeTensor(t, 4, 16)
			got := tensor.Apply(func(v float64) float64 {
				return v * 2
			}, mdarray.WithConcurrency(tc.concurrent))
			assert.Equal(t, tensor.Sum()*2, got.Sum())
		})
	}
}

func TestApplyOnView(t *testing.T) {
	t.Parallel()

	base := rangeTensor(t, 2, 3)
	transposed, err := base.Transpose()
	require.NoError(t, err)

	got := transposed.Apply(func(v float64) float64 { return v + 1 })
	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, got.Values())
	// the result never aliases the base
	assert.Equal(t, float64(0), base.MustAt(0, 0))
}

func TestScalarOps(t *testing.T) {
	t.Parallel()

	tensor := tensorFrom(t, []int64{1, 2, 3}, 3)

	assert.Equal(t, []int64{11, 12, 13}, tensor.AddScalar(10).Values())
	assert.Equal(t, []int64{2, 4, 6}, tensor.MulScalar(2).Values())
	assert.Equal(t, []int64{-1, -2, -3}, tensor.Neg().Values())
}
