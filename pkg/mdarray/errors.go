package mdarray

import "github.com/pkg/errors"

var (
	ErrNilTensor       = errors.New("tensor must be set")
	ErrNegativeDim     = errors.New("dimensions must be non-negative")
	ErrShapeMismatch   = errors.New("shapes do not match")
	ErrLengthMismatch  = errors.New("data length must match the shape")
	ErrRankMismatch    = errors.New("number of indices must match the tensor rank")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrAxisOutOfRange  = errors.New("axis out of range")
	ErrDivisionByZero  = errors.New("integer division by zero")
	ErrEmptyTensor     = errors.New("tensor must contain at least one element")
	ErrZeroStep        = errors.New("step must not be zero")

	ErrInvalidFormat     = errors.New("invalid mdarray stream")
	ErrElemWidthMismatch = errors.New("element width does not match the stream")
)
