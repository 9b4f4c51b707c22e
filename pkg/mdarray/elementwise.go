package mdarray

import (
	"golang.org/x/sync/errgroup"

	"github.com/mfuntowicz/mdarray/internal/layout"
)

// runChunks splits [0, total) into batches and runs fn over them, bounded by
// concurrent goroutines. concurrent <= 1 keeps everything on the calling
// goroutine.
func runChunks(total, concurrent int, fn func(start, stop int) error) error {
	if concurrent <= 1 || total == 0 {
		return fn(0, total)
	}

	grp := errgroup.Group{}
	grp.SetLimit(concurrent)

	chunk := (total + concurrent - 1) / concurrent
	for start := 0; start < total; start += chunk {
		stop := start + chunk
		if stop > total {
			stop = total
		}
		localStart, localStop := start, stop
		grp.Go(func() error {
			return fn(localStart, localStop)
		})
	}

	return grp.Wait()
}

func zipErr[T Number](a, b *Tensor[T], fn func(x, y T) (T, error), concurrent int) (*Tensor[T], error) {
	if a == nil || b == nil {
		return nil, ErrNilTensor
	}

	shape, err := layout.Broadcast(a.shape, b.shape)
	if err != nil {
		return nil, err
	}
	stridesA := layout.BroadcastStrides(a.shape, a.strides, shape)
	stridesB := layout.BroadcastStrides(b.shape, b.strides, shape)

	out := make([]T, layout.NumEl(shape))
	err = runChunks(len(out), concurrent, func(start, stop int) error {
		idx := make([]int, len(shape))
		for i := start; i < stop; i++ {
			layout.UnravelInto(i, shape, idx)
			value, err := fn(a.data[a.offset+layout.Offset(stridesA, idx)], b.data[b.offset+layout.Offset(stridesB, idx)])
			if err != nil {
				return err
			}
			out[i] = value
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return newDense(out, shape), nil
}

// Zip combines two tensors element by element with fn, broadcasting their
// shapes together.
func Zip[T Number](a, b *Tensor[T], fn func(x, y T) T, opts ...OpOption) (*Tensor[T], error) {
	cfg := newOpConfig(opts)

	return zipErr(a, b, func(x, y T) (T, error) {
		return fn(x, y), nil
	}, cfg.concurrent)
}

// Add returns a + b with broadcasting.
func Add[T Number](a, b *Tensor[T], opts ...OpOption) (*Tensor[T], error) {
	return Zip(a, b, func(x, y T) T { return x + y }, opts...)
}

// Sub returns a - b with broadcasting.
func Sub[T Number](a, b *Tensor[T], opts ...OpOption) (*Tensor[T], error) {
	return Zip(a, b, func(x, y T) T { return x - y }, opts...)
}

// Mul returns the element-wise product a * b with broadcasting.
func Mul[T Number](a, b *Tensor[T], opts ...OpOption) (*Tensor[T], error) {
	return Zip(a, b, func(x, y T) T { return x * y }, opts...)
}

// Div returns a / b with broadcasting. Dividing by zero is an error for
// integer element types; float divisions follow IEEE 754.
func Div[T Number](a, b *Tensor[T], opts ...OpOption) (*Tensor[T], error) {
	cfg := newOpConfig(opts)
	integral := isIntegral[T]()

	return zipErr(a, b, func(x, y T) (T, error) {
		if integral && y == 0 {
			var zero T

			return zero, ErrDivisionByZero
		}

		return x / y, nil
	}, cfg.concurrent)
}

// Apply returns a new tensor with fn applied to every element.
func (t *Tensor[T]) Apply(fn func(value T) T, opts ...OpOption) *Tensor[T] {
	cfg := newOpConfig(opts)

	out := make([]T, t.NumEl())
	//nolint:errcheck // fn cannot fail
	_ = runChunks(len(out), cfg.concurrent, func(start, stop int) error {
		idx := make([]int, len(t.shape))
		for i := start; i < stop; i++ {
			layout.UnravelInto(i, t.shape, idx)
			out[i] = fn(t.data[t.offset+layout.Offset(t.strides, idx)])
		}

		return nil
	})

	return newDense(out, t.shape)
}

// AddScalar returns t with value added to every element.
func (t *Tensor[T]) AddScalar(value T, opts ...OpOption) *Tensor[T] {
	return t.Apply(func(v T) T { return v + value }, opts...)
}

// MulScalar returns t with every element multiplied by value.
func (t *Tensor[T]) MulScalar(value T, opts ...OpOption) *Tensor[T] {
	return t.Apply(func(v T) T { return v * value }, opts...)
}

// Neg returns t with every element negated.
func (t *Tensor[T]) Neg(opts ...OpOption) *Tensor[T] {
	return t.Apply(func(v T) T { return -v }, opts...)
}

// isIntegral reports whether T is an integer type.
func isIntegral[T Number]() bool {
	return T(1)/T(2) == T(0)
}
