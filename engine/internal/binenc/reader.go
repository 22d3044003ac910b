package binenc

import (
	"errors"
	"fmt"
	"io"
	"math"
)

// ErrOverflow is returned when a LEB128 value exceeds the maximum bit width.
var ErrOverflow = errors.New("binenc: leb128 overflow")

// maxLen caps length prefixes so corrupt input cannot force huge
// allocations before the data itself is read.
const maxLen = 1 << 30

// Reader decodes the document binary format with position tracking for
// error reporting.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a Reader over data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Position returns the current byte position.
func (r *Reader) Position() int {
	return r.pos
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

func (r *Reader) wrapError(err error) error {
	return fmt.Errorf("at byte %d: %w", r.pos, err)
}

// Byte reads a single byte.
func (r *Reader) Byte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, r.wrapError(io.ErrUnexpectedEOF)
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// Raw reads exactly n bytes.
func (r *Reader) Raw(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.data) {
		return nil, r.wrapError(io.ErrUnexpectedEOF)
	}
	buf := make([]byte, n)
	copy(buf, r.data[r.pos:r.pos+n])
	r.pos += n
	return buf, nil
}

// U64 reads an unsigned LEB128 encoded uint64.
func (r *Reader) U64() (uint64, error) {
	var result uint64
	var shift uint
	for {
		b, err := r.Byte()
		if err != nil {
			return 0, err
		}
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
		if shift >= 70 {
			return 0, r.wrapError(ErrOverflow)
		}
	}
}

// S64 reads a signed LEB128 encoded int64.
func (r *Reader) S64() (int64, error) {
	var result int64
	var shift uint
	for {
		b, err := r.Byte()
		if err != nil {
			return 0, err
		}
		result |= int64(b&0x7f) << shift
		shift += 7
		if b&0x80 == 0 {
			if shift < 64 && b&0x40 != 0 {
				result |= -1 << shift
			}
			return result, nil
		}
		if shift >= 70 {
			return 0, r.wrapError(ErrOverflow)
		}
	}
}

// Bytes8 reads a length-prefixed byte string.
func (r *Reader) Bytes8() ([]byte, error) {
	n, err := r.U64()
	if err != nil {
		return nil, err
	}
	if n > maxLen {
		return nil, r.wrapError(ErrOverflow)
	}
	return r.Raw(int(n))
}

// String reads a length-prefixed UTF-8 string.
func (r *Reader) String() (string, error) {
	b, err := r.Bytes8()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// F64 reads a float64 from its LEB128 encoded bit pattern.
func (r *Reader) F64() (float64, error) {
	bits, err := r.U64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}

// Bool reads a one-byte boolean.
func (r *Reader) Bool() (bool, error) {
	b, err := r.Byte()
	if err != nil {
		return false, err
	}
	return b != 0, nil
}
