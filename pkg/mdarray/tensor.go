package mdarray

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/mfuntowicz/mdarray/internal/layout"
)

// Tensor is a dense multi-dimensional array of T laid out in row-major order.
// The zero value is not usable; tensors are created by the package factories
// or derived from an existing tensor as a view.
type Tensor[T Number] struct {
	data    []T
	shape   []int
	strides []int
	offset  int
}

func newDense[T Number](data []T, shape []int) *Tensor[T] {
	owned := make([]int, len(shape))
	copy(owned, shape)

	return &Tensor[T]{
		data:    data,
		shape:   owned,
		strides: layout.Strides(owned),
	}
}

func checkShape(shape []int) error {
	for _, dim := range shape {
		if dim < 0 {
			return errors.Wrapf(ErrNegativeDim, "shape %v", shape)
		}
	}

	return nil
}

// Shape returns a copy of the tensor shape.
func (t *Tensor[T]) Shape() []int {
	shape := make([]int, len(t.shape))
	copy(shape, t.shape)

	return shape
}

// Strides returns a copy of the tensor strides, expressed in elements.
func (t *Tensor[T]) Strides() []int {
	strides := make([]int, len(t.strides))
	copy(strides, t.strides)

	return strides
}

// Rank returns the number of axes. A scalar tensor has rank 0.
func (t *Tensor[T]) Rank() int {
	return len(t.shape)
}

// NumEl returns the flattened number of elements.
func (t *Tensor[T]) NumEl() int {
	return layout.NumEl(t.shape)
}

// Size returns the number of bytes needed to store the tensor elements.
func (t *Tensor[T]) Size() int {
	var zero T

	return t.NumEl() * binary.Size(zero)
}

func (t *Tensor[T]) position(indices []int) (int, error) {
	if len(indices) != len(t.shape) {
		return 0, errors.Wrapf(ErrRankMismatch, "got %d indices for rank %d", len(indices), len(t.shape))
	}
	for axis, idx := range indices {
		if idx < 0 || idx >= t.shape[axis] {
			return 0, errors.Wrapf(ErrIndexOutOfRange, "index %d on axis %d of size %d", idx, axis, t.shape[axis])
		}
	}

	return t.offset + layout.Offset(t.strides, indices), nil
}

// At returns the element at the given coordinates.
func (t *Tensor[T]) At(indices ...int) (T, error) {
	pos, err := t.position(indices)
	if err != nil {
		var zero T

		return zero, err
	}

	return t.data[pos], nil
}

// MustAt is like At but panics on invalid coordinates.
func (t *Tensor[T]) MustAt(indices ...int) T {
	value, err := t.At(indices...)
	if err != nil {
		panic(err)
	}

	return value
}

// Set writes value at the given coordinates. Writing through a view mutates
// the base tensor.
func (t *Tensor[T]) Set(value T, indices ...int) error {
	pos, err := t.position(indices)
	if err != nil {
		return err
	}
	t.data[pos] = value

	return nil
}

// IsContiguous reports whether the elements are laid out densely in row-major
// order.
func (t *Tensor[T]) IsContiguous() bool {
	return layout.IsContiguous(t.shape, t.strides)
}

// Contiguous returns t when it is already contiguous, otherwise a compact
// copy with the same shape and elements.
func (t *Tensor[T]) Contiguous() *Tensor[T] {
	if t.IsContiguous() {
		return t
	}

	return t.Clone()
}

// Clone returns a compact deep copy. The copy never shares data with t, even
// when t is a view.
func (t *Tensor[T]) Clone() *Tensor[T] {
	out := make([]T, t.NumEl())
	if t.IsContiguous() {
		copy(out, t.data[t.offset:t.offset+len(out)])
	} else {
		idx := make([]int, len(t.shape))
		for i := range out {
			layout.UnravelInto(i, t.shape, idx)
			out[i] = t.data[t.offset+layout.Offset(t.strides, idx)]
		}
	}

	return newDense(out, t.shape)
}

// Values returns the elements in row-major order as a fresh slice.
func (t *Tensor[T]) Values() []T {
	clone := t.Contiguous()

	out := make([]T, clone.NumEl())
	copy(out, clone.data[clone.offset:clone.offset+len(out)])

	return out
}

// Equal reports whether both tensors have the same shape and elements.
func (t *Tensor[T]) Equal(other *Tensor[T]) bool {
	if other == nil || !shapesEqual(t.shape, other.shape) {
		return false
	}

	numel := t.NumEl()
	idx := make([]int, len(t.shape))
	for i := 0; i < numel; i++ {
		layout.UnravelInto(i, t.shape, idx)
		if t.data[t.offset+layout.Offset(t.strides, idx)] != other.data[other.offset+layout.Offset(other.strides, idx)] {
			return false
		}
	}

	return true
}

// AllClose reports whether both tensors have the same shape and all element
// pairs are within atol of each other.
func (t *Tensor[T]) AllClose(other *Tensor[T], atol float64) bool {
	if other == nil || !shapesEqual(t.shape, other.shape) {
		return false
	}

	numel := t.NumEl()
	idx := make([]int, len(t.shape))
	for i := 0; i < numel; i++ {
		layout.UnravelInto(i, t.shape, idx)
		a := float64(t.data[t.offset+layout.Offset(t.strides, idx)])
		b := float64(other.data[other.offset+layout.Offset(other.strides, idx)])
		if math.Abs(a-b) > atol {
			return false
		}
	}

	return true
}

func (t *Tensor[T]) String() string {
	return fmt.Sprintf("mdarray.Tensor{shape: %v, numel: %d}", t.shape, t.NumEl())
}

func shapesEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
