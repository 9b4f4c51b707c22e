package mdarray_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mfuntowicz/mdarray/pkg/mdarray"
)

func tensorFrom[T mdarray.Number](t *testing.T, data []T, shape ...int) *mdarray.Tensor[T] {
	t.Helper()

	tensor, err := mdarray.FromSlice(data, shape...)
	require.NoError(t, err)

	return tensor
}

func rangeTensor(t *testing.T, shape ...int) *mdarray.Tensor[float64] {
	t.Helper()

	numel := 1
	for _, dim := range shape {
		numel *= dim
	}

	data := make([]float64, numel)
	for i := range data {
		data[i] = float64(i)
	}

	return tensorFrom(t, data, shape...)
}
