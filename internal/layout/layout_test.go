package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumEl(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		shape []int
		want  int
	}{
		"scalar":   {shape: nil, want: 1},
		"vector":   {shape: []int{4}, want: 4},
		"matrix":   {shape: []int{4, 16}, want: 64},
		"empty":    {shape: []int{4, 0}, want: 0},
		"rank six": {shape: []int{2, 3, 4, 5, 6, 7}, want: 5040},
	}

	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, NumEl(tc.shape))
		})
	}
}

func TestStrides(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		shape []int
		want  []int
	}{
		"scalar": {shape: []int{}, want: []int{}},
		"vector": {shape: []int{4}, want: []int{1}},
		"matrix": {shape: []int{4, 16}, want: []int{16, 1}},
		"cube":   {shape: []int{2, 3, 4}, want: []int{12, 4, 1}},
	}

	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Strides(tc.shape))
		})
	}
}

func TestOffsetUnravelRoundTrip(t *testing.T) {
	t.Parallel()

	shape := []int{2, 3, 4}
	strides := Strides(shape)

	idx := make([]int, len(shape))
	for i := 0; i < NumEl(shape); i++ {
		UnravelInto(i, shape, idx)
		assert.Equal(t, i, Offset(strides, idx))
	}
}

func TestIsContiguous(t *testing.T) {
	t.Parallel()

	assert.True(t, IsContiguous([]int{2, 3}, []int{3, 1}))
	assert.True(t, IsContiguous([]int{}, []int{}))
	// size-1 axes never break contiguity
	assert.True(t, IsContiguous([]int{1, 3}, []int{42, 1}))
	// transposed strides
	assert.False(t, IsContiguous([]int{3, 2}, []int{1, 3}))
	// sliced with a step
	assert.False(t, IsContiguous([]int{5}, []int{2}))
}

func TestBroadcast(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		a, b, want []int
	}{
		"same shape":    {a: []int{2, 3}, b: []int{2, 3}, want: []int{2, 3}},
		"row vector":    {a: []int{2, 3}, b: []int{3}, want: []int{2, 3}},
		"column vs row": {a: []int{2, 1}, b: []int{1, 3}, want: []int{2, 3}},
		"scalar":        {a: []int{}, b: []int{2, 3}, want: []int{2, 3}},
	}

	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := Broadcast(tc.a, tc.b)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBroadcastIncompatible(t *testing.T) {
	t.Parallel()

	_, err := Broadcast([]int{2}, []int{3})
	require.ErrorIs(t, err, ErrNotBroadcastable)
}

func TestBroadcastStrides(t *testing.T) {
	t.Parallel()

	// a row vector stretched over a matrix revisits its elements on axis 0
	got := BroadcastStrides([]int{3}, []int{1}, []int{2, 3})
	assert.Equal(t, []int{0, 1}, got)

	// a column vector stretched over the same matrix
	got = BroadcastStrides([]int{2, 1}, []int{1, 1}, []int{2, 3})
	assert.Equal(t, []int{1, 0}, got)
}
