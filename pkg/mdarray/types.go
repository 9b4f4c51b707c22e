package mdarray

// Number restricts tensor elements to the fixed-width numeric types. Plain
// int and uint are excluded on purpose: the on-disk codec and the byte-size
// accounting both need a width that does not change between platforms.
type Number interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Concrete tensor aliases for the common element types.
type (
	FloatTensor  = Tensor[float32]
	DoubleTensor = Tensor[float64]
	IntTensor    = Tensor[int32]
	UIntTensor   = Tensor[uint32]
	LongTensor   = Tensor[int64]
	ULongTensor  = Tensor[uint64]
)
