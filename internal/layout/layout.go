// Package layout implements the row-major index arithmetic shared by every
// tensor operation: stride computation, flat offsets, coordinate conversion
// and broadcast shape resolution.
package layout

import "github.com/pkg/errors"

var ErrNotBroadcastable = errors.New("shapes cannot be broadcast together")

// NumEl returns the number of elements a shape holds. An empty shape is a
// scalar and holds one element.
func NumEl(shape []int) int {
	numel := 1
	for _, dim := range shape {
		numel *= dim
	}

	return numel
}

// Strides returns the row-major strides for shape. The last axis always has
// stride 1.
func Strides(shape []int) []int {
	strides := make([]int, len(shape))
	acc := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= shape[i]
	}

	return strides
}

// Offset returns the flat offset of the given coordinates.
func Offset(strides, indices []int) int {
	offset := 0
	for i, idx := range indices {
		offset += strides[i] * idx
	}

	return offset
}

// UnravelInto converts the logical flat index into coordinates for shape,
// writing them into out. out must have len(shape).
func UnravelInto(index int, shape, out []int) {
	for i := len(shape) - 1; i >= 0; i-- {
		if shape[i] == 0 {
			out[i] = 0

			continue
		}
		out[i] = index % shape[i]
		index /= shape[i]
	}
}

// IsContiguous reports whether strides describe a dense row-major layout for
// shape. Axes of size 1 never break contiguity, whatever their stride.
func IsContiguous(shape, strides []int) bool {
	acc := 1
	for i := len(shape) - 1; i >= 0; i-- {
		if shape[i] != 1 && strides[i] != acc {
			return false
		}
		acc *= shape[i]
	}

	return true
}

// Broadcast resolves the common shape of a and b following the trailing-axes
// rule: axes align from the right and two sizes are compatible when they are
// equal or one of them is 1.
func Broadcast(a, b []int) ([]int, error) {
	rank := len(a)
	if len(b) > rank {
		rank = len(b)
	}

	out := make([]int, rank)
	for i := 1; i <= rank; i++ {
		da, db := 1, 1
		if i <= len(a) {
			da = a[len(a)-i]
		}
		if i <= len(b) {
			db = b[len(b)-i]
		}

		switch {
		case da == db:
			out[rank-i] = da
		case da == 1:
			out[rank-i] = db
		case db == 1:
			out[rank-i] = da
		default:
			return nil, errors.Wrapf(ErrNotBroadcastable, "%v vs %v", a, b)
		}
	}

	return out, nil
}

// BroadcastStrides maps the strides of an operand with the given shape onto
// the broadcast result shape. Missing leading axes and axes of size 1 get
// stride 0 so the same element is revisited along the broadcast axis.
func BroadcastStrides(shape, strides, outShape []int) []int {
	out := make([]int, len(outShape))
	pad := len(outShape) - len(shape)
	for i := pad; i < len(outShape); i++ {
		if shape[i-pad] == 1 && outShape[i] != 1 {
			out[i] = 0
		} else {
			out[i] = strides[i-pad]
		}
	}

	return out
}
