package mdarray_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfuntowicz/mdarray/pkg/mdarray"
)

func TestReshapeView(t *testing.T) {
	t.Parallel()

	base := rangeTensor(t, 6)
	view, err := base.Reshape(2, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, view.Shape())
	assert.Equal(t, float64(5), view.MustAt(1, 2))

	// the view shares the base buffer
	require.NoError(t, view.Set(42, 1, 2))
	assert.Equal(t, float64(42), base.MustAt(5))
}

func TestReshapeInfer(t *testing.T) {
	t.Parallel()

	base := rangeTensor(t, 12)

	view, err := base.Reshape(-1, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 3}, view.Shape())

	_, err = base.Reshape(-1, 5)
	require.ErrorIs(t, err, mdarray.ErrShapeMismatch)
}

func TestReshapeMismatch(t *testing.T) {
	t.Parallel()

	base := rangeTensor(t, 6)

	_, err := base.Reshape(4, 2)
	require.ErrorIs(t, err, mdarray.ErrShapeMismatch)

	_, err = base.Reshape(2, -3)
	require.ErrorIs(t, err, mdarray.ErrNegativeDim)
}

func TestReshapeNonContiguousCopies(t *testing.T) {
	t.Parallel()

	base := rangeTensor(t, 2, 3)
	transposed, err := base.Transpose()
	require.NoError(t, err)

	flat, err := transposed.Reshape(6)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 3, 1, 4, 2, 5}, flat.Values())

	// the copy no longer aliases the base buffer
	require.NoError(t, flat.Set(42, 0))
	assert.Equal(t, float64(0), base.MustAt(0, 0))
}

func TestTranspose(t *testing.T) {
	t.Parallel()

	base := rangeTensor(t, 2, 3)
	transposed, err := base.Transpose()
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2}, transposed.Shape())
	assert.Equal(t, base.MustAt(1, 2), transposed.MustAt(2, 1))

	// transposition is a view
	require.NoError(t, transposed.Set(42, 0, 1))
	assert.Equal(t, float64(42), base.MustAt(1, 0))

	vector := rangeTensor(t, 3)
	_, err = vector.Transpose()
	require.ErrorIs(t, err, mdarray.ErrRankMismatch)
}

func TestPermute(t *testing.T) {
	t.Parallel()

	base := rangeTensor(t, 2, 3, 4)
	permuted, err := base.Permute(2, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 2, 3}, permuted.Shape())
	assert.Equal(t, base.MustAt(1, 2, 3), permuted.MustAt(3, 1, 2))
}

func TestPermuteInvalid(t *testing.T) {
	t.Parallel()

	base := rangeTensor(t, 2, 3)

	_, err := base.Permute(0)
	require.ErrorIs(t, err, mdarray.ErrRankMismatch)

	_, err = base.Permute(0, 0)
	require.ErrorIs(t, err, mdarray.ErrAxisOutOfRange)

	_, err = base.Permute(0, 2)
	require.ErrorIs(t, err, mdarray.ErrAxisOutOfRange)
}

func TestSlice(t *testing.T) {
	t.Parallel()

	base := rangeTensor(t, 10)

	tcs := map[string]struct {
		rng  mdarray.Range
		want []float64
	}{
		"simple":        {rng: mdarray.R(2, 8), want: []float64{2, 3, 4, 5, 6, 7}},
		"with step":     {rng: mdarray.RS(1, 9, 2), want: []float64{1, 3, 5, 7}},
		"negative ends": {rng: mdarray.R(-4, -1), want: []float64{6, 7, 8}},
		"backwards":     {rng: mdarray.RS(5, 1, -1), want: []float64{5, 4, 3, 2}},
		"all":           {rng: mdarray.All(), want: []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}},
	}

	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			view, err := base.Slice(tc.rng)
			require.NoError(t, err)
			assert.Equal(t, tc.want, view.Values())
		})
	}
}

func TestSliceMatrix(t *testing.T) {
	t.Parallel()

	base := rangeTensor(t, 3, 4)
	view, err := base.Slice(mdarray.R(1, 3), mdarray.RS(0, 4, 2))
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, view.Shape())
	assert.Equal(t, []float64{4, 6, 8, 10}, view.Values())

	// trailing axes keep their full extent
	rows, err := base.Slice(mdarray.R(0, 2))
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4}, rows.Shape())

	// slicing is a view
	require.NoError(t, view.Set(42, 0, 0))
	assert.Equal(t, float64(42), base.MustAt(1, 0))
}

func TestSliceErrors(t *testing.T) {
	t.Parallel()

	base := rangeTensor(t, 10)

	_, err := base.Slice(mdarray.RS(0, 5, 0))
	require.ErrorIs(t, err, mdarray.ErrZeroStep)

	_, err = base.Slice(mdarray.R(0, 11))
	require.ErrorIs(t, err, mdarray.ErrIndexOutOfRange)

	_, err = base.Slice(mdarray.All(), mdarray.All())
	require.ErrorIs(t, err, mdarray.ErrRankMismatch)
}

func TestSqueezeUnsqueeze(t *testing.T) {
	t.Parallel()

	base := rangeTensor(t, 1, 3, 1)
	squeezed := base.Squeeze()
	assert.Equal(t, []int{3}, squeezed.Shape())
	assert.Equal(t, []float64{0, 1, 2}, squeezed.Values())

	unsqueezed, err := squeezed.Unsqueeze(0)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, unsqueezed.Shape())

	tail, err := squeezed.Unsqueeze(1)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1}, tail.Shape())

	_, err = squeezed.Unsqueeze(5)
	require.ErrorIs(t, err, mdarray.ErrAxisOutOfRange)
}
