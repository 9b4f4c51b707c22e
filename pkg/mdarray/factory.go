package mdarray

import (
	"math"

	"github.com/pkg/errors"

	"github.com/mfuntowicz/mdarray/internal/layout"
)

// Fill allocates a new tensor with every element set to value.
func Fill[T Number](value T, shape ...int) (*Tensor[T], error) {
	if err := checkShape(shape); err != nil {
		return nil, err
	}

	data := make([]T, layout.NumEl(shape))
	for i := range data {
		data[i] = value
	}

	return newDense(data, shape), nil
}

// Zeros allocates a new tensor with every element set to zero.
func Zeros[T Number](shape ...int) (*Tensor[T], error) {
	return Fill(T(0), shape...)
}

// Ones allocates a new tensor with every element set to one.
func Ones[T Number](shape ...int) (*Tensor[T], error) {
	return Fill(T(1), shape...)
}

// FromSlice wraps data into a tensor of the given shape. The slice is copied,
// so later mutations of data do not affect the tensor.
func FromSlice[T Number](data []T, shape ...int) (*Tensor[T], error) {
	if err := checkShape(shape); err != nil {
		return nil, err
	}
	if len(data) != layout.NumEl(shape) {
		return nil, errors.Wrapf(ErrLengthMismatch, "got %d elements for shape %v", len(data), shape)
	}

	owned := make([]T, len(data))
	copy(owned, data)

	return newDense(owned, shape), nil
}

// Arange returns a 1-D tensor with values spaced by step over [start, stop).
func Arange[T Number](start, stop, step T) (*Tensor[T], error) {
	if step == 0 {
		return nil, ErrZeroStep
	}

	count := int(math.Ceil((float64(stop) - float64(start)) / float64(step)))
	if count < 0 {
		count = 0
	}

	data := make([]T, count)
	value := start
	for i := range data {
		data[i] = value
		value += step
	}

	return newDense(data, []int{count}), nil
}

// Linspace returns a 1-D tensor of count evenly spaced values over
// [start, stop], endpoints included.
func Linspace(start, stop float64, count int) (*Tensor[float64], error) {
	if count < 0 {
		return nil, errors.Wrapf(ErrNegativeDim, "count %d", count)
	}

	data := make([]float64, count)
	switch count {
	case 0:
	case 1:
		data[0] = start
	default:
		step := (stop - start) / float64(count-1)
		for i := range data {
			data[i] = start + float64(i)*step
		}
		data[count-1] = stop
	}

	return newDense(data, []int{count}), nil
}

// Eye returns the n by n identity matrix.
func Eye[T Number](n int) (*Tensor[T], error) {
	out, err := Zeros[T](n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		out.data[i*n+i] = T(1)
	}

	return out, nil
}
