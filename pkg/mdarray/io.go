package mdarray

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// Stream layout: magic, format version, element width in bytes, rank, one
// uint64 per dimension, then the raw elements in row-major little-endian
// order.
var streamMagic = [4]byte{'M', 'D', 'A', 'R'}

const streamVersion uint16 = 1

// Save writes the tensor to w. Views are compacted first, so the stream
// always carries exactly NumEl elements.
func (t *Tensor[T]) Save(w io.Writer) error {
	var zero T

	src := t.Contiguous()

	header := []interface{}{
		streamMagic,
		streamVersion,
		uint16(binary.Size(zero)),
		uint32(src.Rank()),
	}
	for _, field := range header {
		if err := binary.Write(w, binary.LittleEndian, field); err != nil {
			return errors.Wrap(err, "unable to write header")
		}
	}

	for _, dim := range src.shape {
		if err := binary.Write(w, binary.LittleEndian, uint64(dim)); err != nil {
			return errors.Wrap(err, "unable to write shape")
		}
	}

	if err := binary.Write(w, binary.LittleEndian, src.data[src.offset:src.offset+src.NumEl()]); err != nil {
		return errors.Wrap(err, "unable to write elements")
	}

	return nil
}

// Load reads a tensor of element type T from r. The element width recorded
// in the stream must match T.
func Load[T Number](r io.Reader) (*Tensor[T], error) {
	var (
		zero    T
		magic   [4]byte
		version uint16
		width   uint16
		rank    uint32
	)

	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return nil, errors.Wrap(err, "unable to read magic")
	}
	if magic != streamMagic {
		return nil, errors.Wrapf(ErrInvalidFormat, "magic %q", magic[:])
	}
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, errors.Wrap(err, "unable to read version")
	}
	if version != streamVersion {
		return nil, errors.Wrapf(ErrInvalidFormat, "version %d", version)
	}
	if err := binary.Read(r, binary.LittleEndian, &width); err != nil {
		return nil, errors.Wrap(err, "unable to read element width")
	}
	if int(width) != binary.Size(zero) {
		return nil, errors.Wrapf(ErrElemWidthMismatch, "stream has %d bytes, want %d", width, binary.Size(zero))
	}
	if err := binary.Read(r, binary.LittleEndian, &rank); err != nil {
		return nil, errors.Wrap(err, "unable to read rank")
	}

	shape := make([]int, rank)
	for axis := range shape {
		var dim uint64
		if err := binary.Read(r, binary.LittleEndian, &dim); err != nil {
			return nil, errors.Wrap(err, "unable to read shape")
		}
		shape[axis] = int(dim)
	}

	out, err := Zeros[T](shape...)
	if err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, out.data); err != nil {
		return nil, errors.Wrap(err, "unable to read elements")
	}

	return out, nil
}
