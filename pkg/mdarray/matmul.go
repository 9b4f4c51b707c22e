package mdarray

import "github.com/pkg/errors"

// Dot returns the inner product of two 1-D tensors of equal length.
func Dot[T Number](a, b *Tensor[T]) (T, error) {
	var zero T
	if a == nil || b == nil {
		return zero, ErrNilTensor
	}
	if a.Rank() != 1 || b.Rank() != 1 {
		return zero, errors.Wrapf(ErrRankMismatch, "dot needs rank 1, got %d and %d", a.Rank(), b.Rank())
	}
	if a.shape[0] != b.shape[0] {
		return zero, errors.Wrapf(ErrShapeMismatch, "dot needs equal lengths, got %d and %d", a.shape[0], b.shape[0])
	}

	acc := zero
	for i := 0; i < a.shape[0]; i++ {
		acc += a.data[a.offset+i*a.strides[0]] * b.data[b.offset+i*b.strides[0]]
	}

	return acc, nil
}

// MatMul returns the matrix product of two rank-2 tensors with shapes (m, k)
// and (k, n). Rows of the result are computed in parallel under
// WithConcurrency.
func MatMul[T Number](a, b *Tensor[T], opts ...OpOption) (*Tensor[T], error) {
	if a == nil || b == nil {
		return nil, ErrNilTensor
	}
	if a.Rank() != 2 || b.Rank() != 2 {
		return nil, errors.Wrapf(ErrRankMismatch, "matmul needs rank 2, got %d and %d", a.Rank(), b.Rank())
	}
	if a.shape[1] != b.shape[0] {
		return nil, errors.Wrapf(ErrShapeMismatch, "matmul needs (m, k) x (k, n), got %v x %v", a.shape, b.shape)
	}

	cfg := newOpConfig(opts)
	m, k, n := a.shape[0], a.shape[1], b.shape[1]
	out := make([]T, m*n)

	//nolint:errcheck // the workers cannot fail
	_ = runChunks(m, cfg.concurrent, func(start, stop int) error {
		for i := start; i < stop; i++ {
			rowOffset := a.offset + i*a.strides[0]
			for j := 0; j < n; j++ {
				colOffset := b.offset + j*b.strides[1]
				var acc T
				for p := 0; p < k; p++ {
					acc += a.data[rowOffset+p*a.strides[1]] * b.data[colOffset+p*b.strides[0]]
				}
				out[i*n+j] = acc
			}
		}

		return nil
	})

	return newDense(out, []int{m, n}), nil
}
