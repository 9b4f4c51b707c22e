package mdarray

import (
	"golang.org/x/sync/errgroup"

	"github.com/pkg/errors"

	"github.com/mfuntowicz/mdarray/internal/layout"
)

// reduceFlat folds fn over every element. The accumulator is seeded with the
// first element, so the tensor must not be empty.
func reduceFlat[T Number](t *Tensor[T], fn func(acc, value T) T, concurrent int) T {
	numel := t.NumEl()
	if concurrent > numel {
		concurrent = numel
	}

	partial := func(start, stop int) T {
		idx := make([]int, len(t.shape))
		layout.UnravelInto(start, t.shape, idx)
		acc := t.data[t.offset+layout.Offset(t.strides, idx)]
		for i := start + 1; i < stop; i++ {
			layout.UnravelInto(i, t.shape, idx)
			acc = fn(acc, t.data[t.offset+layout.Offset(t.strides, idx)])
		}

		return acc
	}

	if concurrent <= 1 {
		return partial(0, numel)
	}

	chunk := (numel + concurrent - 1) / concurrent
	partials := make([]T, (numel+chunk-1)/chunk)

	grp := errgroup.Group{}
	grp.SetLimit(concurrent)
	for id, start := 0, 0; start < numel; id, start = id+1, start+chunk {
		stop := start + chunk
		if stop > numel {
			stop = numel
		}
		localID, localStart, localStop := id, start, stop
		grp.Go(func() error {
			partials[localID] = partial(localStart, localStop)

			return nil
		})
	}
	//nolint:errcheck // the workers cannot fail
	_ = grp.Wait()

	acc := partials[0]
	for _, p := range partials[1:] {
		acc = fn(acc, p)
	}

	return acc
}

// Sum returns the sum of all elements. The sum of an empty tensor is zero.
func (t *Tensor[T]) Sum(opts ...OpOption) T {
	if t.NumEl() == 0 {
		var zero T

		return zero
	}
	cfg := newOpConfig(opts)

	return reduceFlat(t, func(acc, value T) T { return acc + value }, cfg.concurrent)
}

// Prod returns the product of all elements. The product of an empty tensor
// is one.
func (t *Tensor[T]) Prod(opts ...OpOption) T {
	if t.NumEl() == 0 {
		return T(1)
	}
	cfg := newOpConfig(opts)

	return reduceFlat(t, func(acc, value T) T { return acc * value }, cfg.concurrent)
}

// Min returns the smallest element.
func (t *Tensor[T]) Min(opts ...OpOption) (T, error) {
	if t.NumEl() == 0 {
		var zero T

		return zero, ErrEmptyTensor
	}
	cfg := newOpConfig(opts)

	return reduceFlat(t, func(acc, value T) T {
		if value < acc {
			return value
		}

		return acc
	}, cfg.concurrent), nil
}

// Max returns the largest element.
func (t *Tensor[T]) Max(opts ...OpOption) (T, error) {
	if t.NumEl() == 0 {
		var zero T

		return zero, ErrEmptyTensor
	}
	cfg := newOpConfig(opts)

	return reduceFlat(t, func(acc, value T) T {
		if value > acc {
			return value
		}

		return acc
	}, cfg.concurrent), nil
}

// Mean returns the arithmetic mean of all elements as a float64.
func (t *Tensor[T]) Mean() (float64, error) {
	numel := t.NumEl()
	if numel == 0 {
		return 0, ErrEmptyTensor
	}

	sum := 0.0
	idx := make([]int, len(t.shape))
	for i := 0; i < numel; i++ {
		layout.UnravelInto(i, t.shape, idx)
		sum += float64(t.data[t.offset+layout.Offset(t.strides, idx)])
	}

	return sum / float64(numel), nil
}

// reduceAxis folds fn along one axis. The result drops that axis.
func reduceAxis[T Number](t *Tensor[T], axis int, fn func(acc, value T) T, concurrent int) (*Tensor[T], error) {
	if axis < 0 || axis >= t.Rank() {
		return nil, errors.Wrapf(ErrAxisOutOfRange, "axis %d for rank %d", axis, t.Rank())
	}
	if t.shape[axis] == 0 {
		return nil, errors.Wrapf(ErrEmptyTensor, "axis %d is empty", axis)
	}

	outShape := make([]int, 0, t.Rank()-1)
	outShape = append(outShape, t.shape[:axis]...)
	outShape = append(outShape, t.shape[axis+1:]...)

	out := make([]T, layout.NumEl(outShape))
	axisDim, axisStride := t.shape[axis], t.strides[axis]

	//nolint:errcheck // the workers cannot fail
	_ = runChunks(len(out), concurrent, func(start, stop int) error {
		idx := make([]int, len(outShape))
		full := make([]int, t.Rank())
		for i := start; i < stop; i++ {
			layout.UnravelInto(i, outShape, idx)
			copy(full[:axis], idx[:axis])
			full[axis] = 0
			copy(full[axis+1:], idx[axis:])

			base := t.offset + layout.Offset(t.strides, full)
			acc := t.data[base]
			for k := 1; k < axisDim; k++ {
				acc = fn(acc, t.data[base+k*axisStride])
			}
			out[i] = acc
		}

		return nil
	})

	return newDense(out, outShape), nil
}

// SumAxis sums along one axis and drops it from the result shape.
func (t *Tensor[T]) SumAxis(axis int, opts ...OpOption) (*Tensor[T], error) {
	cfg := newOpConfig(opts)

	return reduceAxis(t, axis, func(acc, value T) T { return acc + value }, cfg.concurrent)
}

// MinAxis returns the per-position minimum along one axis.
func (t *Tensor[T]) MinAxis(axis int, opts ...OpOption) (*Tensor[T], error) {
	cfg := newOpConfig(opts)

	return reduceAxis(t, axis, func(acc, value T) T {
		if value < acc {
			return value
		}

		return acc
	}, cfg.concurrent)
}

// MaxAxis returns the per-position maximum along one axis.
func (t *Tensor[T]) MaxAxis(axis int, opts ...OpOption) (*Tensor[T], error) {
	cfg := newOpConfig(opts)

	return reduceAxis(t, axis, func(acc, value T) T {
		if value > acc {
			return value
		}

		return acc
	}, cfg.concurrent)
}
