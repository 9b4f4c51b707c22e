package mdarray

import (
	"github.com/pkg/errors"

	"github.com/mfuntowicz/mdarray/internal/layout"
)

// Range selects part of one axis. Build ranges with R, RS or All.
type Range struct {
	Start int
	Stop  int
	Step  int
	all   bool
}

// R selects [start, stop) with step 1. Negative bounds count from the end of
// the axis.
func R(start, stop int) Range {
	return Range{Start: start, Stop: stop, Step: 1}
}

// RS selects [start, stop) with the given step. A negative step walks the
// axis backwards, from start down to stop excluded.
func RS(start, stop, step int) Range {
	return Range{Start: start, Stop: stop, Step: step}
}

// All selects a whole axis.
func All() Range {
	return Range{Step: 1, all: true}
}

// Reshape returns a tensor with the same elements and a new shape. One
// dimension may be -1 and is inferred from the element count. The result is
// a view when t is contiguous and a compact copy otherwise.
func (t *Tensor[T]) Reshape(shape ...int) (*Tensor[T], error) {
	owned := make([]int, len(shape))
	copy(owned, shape)

	infer := -1
	known := 1
	for axis, dim := range owned {
		switch {
		case dim == -1 && infer == -1:
			infer = axis
		case dim < 0:
			return nil, errors.Wrapf(ErrNegativeDim, "shape %v", shape)
		default:
			known *= dim
		}
	}

	numel := t.NumEl()
	if infer >= 0 {
		if known == 0 || numel%known != 0 {
			return nil, errors.Wrapf(ErrShapeMismatch, "cannot infer dimension %d of %v for %d elements", infer, shape, numel)
		}
		owned[infer] = numel / known
	} else if known != numel {
		return nil, errors.Wrapf(ErrShapeMismatch, "cannot reshape %d elements to %v", numel, shape)
	}

	src := t.Contiguous()

	return &Tensor[T]{
		data:    src.data,
		shape:   owned,
		strides: layout.Strides(owned),
		offset:  src.offset,
	}, nil
}

// Transpose returns a view of a rank-2 tensor with both axes swapped.
func (t *Tensor[T]) Transpose() (*Tensor[T], error) {
	if t.Rank() != 2 {
		return nil, errors.Wrapf(ErrRankMismatch, "transpose needs rank 2, got %d", t.Rank())
	}

	return t.Permute(1, 0)
}

// Permute returns a view with the axes reordered. axes must be a permutation
// of [0, rank).
func (t *Tensor[T]) Permute(axes ...int) (*Tensor[T], error) {
	if len(axes) != t.Rank() {
		return nil, errors.Wrapf(ErrRankMismatch, "got %d axes for rank %d", len(axes), t.Rank())
	}

	seen := make([]bool, len(axes))
	shape := make([]int, len(axes))
	strides := make([]int, len(axes))
	for i, axis := range axes {
		if axis < 0 || axis >= len(axes) || seen[axis] {
			return nil, errors.Wrapf(ErrAxisOutOfRange, "axes %v are not a permutation of rank %d", axes, t.Rank())
		}
		seen[axis] = true
		shape[i] = t.shape[axis]
		strides[i] = t.strides[axis]
	}

	return &Tensor[T]{data: t.data, shape: shape, strides: strides, offset: t.offset}, nil
}

// Slice returns a view restricted by the given ranges, one per leading axis.
// Axes without a range keep their full extent.
func (t *Tensor[T]) Slice(ranges ...Range) (*Tensor[T], error) {
	if len(ranges) > t.Rank() {
		return nil, errors.Wrapf(ErrRankMismatch, "got %d ranges for rank %d", len(ranges), t.Rank())
	}

	shape := make([]int, t.Rank())
	strides := make([]int, t.Rank())
	offset := t.offset

	for axis := 0; axis < t.Rank(); axis++ {
		rng := All()
		if axis < len(ranges) {
			rng = ranges[axis]
		}

		dim := t.shape[axis]
		if rng.all {
			rng.Start, rng.Stop = 0, dim
		}
		if rng.Step == 0 {
			return nil, errors.Wrapf(ErrZeroStep, "axis %d", axis)
		}
		if rng.Start < 0 {
			rng.Start += dim
		}
		if rng.Stop < 0 {
			rng.Stop += dim
		}

		size := 0
		switch {
		case rng.Step > 0:
			if rng.Start < 0 || rng.Start > dim || rng.Stop < rng.Start || rng.Stop > dim {
				return nil, errors.Wrapf(ErrIndexOutOfRange, "range [%d:%d] on axis %d of size %d", rng.Start, rng.Stop, axis, dim)
			}
			size = (rng.Stop - rng.Start + rng.Step - 1) / rng.Step
		default:
			if rng.Start < 0 || rng.Start >= dim || rng.Stop < -1 || rng.Stop > rng.Start {
				return nil, errors.Wrapf(ErrIndexOutOfRange, "range [%d:%d] on axis %d of size %d", rng.Start, rng.Stop, axis, dim)
			}
			size = (rng.Start - rng.Stop - rng.Step - 1) / -rng.Step
		}

		shape[axis] = size
		strides[axis] = t.strides[axis] * rng.Step
		offset += t.strides[axis] * rng.Start
	}

	return &Tensor[T]{data: t.data, shape: shape, strides: strides, offset: offset}, nil
}

// Squeeze returns a view with every axis of size 1 removed.
func (t *Tensor[T]) Squeeze() *Tensor[T] {
	shape := make([]int, 0, t.Rank())
	strides := make([]int, 0, t.Rank())
	for axis, dim := range t.shape {
		if dim == 1 {
			continue
		}
		shape = append(shape, dim)
		strides = append(strides, t.strides[axis])
	}

	return &Tensor[T]{data: t.data, shape: shape, strides: strides, offset: t.offset}
}

// Unsqueeze returns a view with an axis of size 1 inserted at the given
// position.
func (t *Tensor[T]) Unsqueeze(axis int) (*Tensor[T], error) {
	if axis < 0 || axis > t.Rank() {
		return nil, errors.Wrapf(ErrAxisOutOfRange, "axis %d for rank %d", axis, t.Rank())
	}

	stride := 1
	if axis < t.Rank() {
		stride = t.strides[axis] * t.shape[axis]
	}

	shape := make([]int, 0, t.Rank()+1)
	shape = append(shape, t.shape[:axis]...)
	shape = append(shape, 1)
	shape = append(shape, t.shape[axis:]...)

	strides := make([]int, 0, t.Rank()+1)
	strides = append(strides, t.strides[:axis]...)
	strides = append(strides, stride)
	strides = append(strides, t.strides[axis:]...)

	return &Tensor[T]{data: t.data, shape: shape, strides: strides, offset: t.offset}, nil
}
