package binenc

import (
	"bytes"
	"math"
)

// Writer provides buffered writing utilities for the document binary format.
// Integers are LEB128 encoded, byte strings are length-prefixed.
type Writer struct {
	buf *bytes.Buffer
}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{buf: &bytes.Buffer{}}
}

// Bytes returns the written bytes.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Byte writes a single byte.
func (w *Writer) Byte(b byte) {
	w.buf.WriteByte(b)
}

// Raw writes a byte slice with no prefix.
func (w *Writer) Raw(data []byte) {
	w.buf.Write(data)
}

// U64 writes an unsigned LEB128 encoded uint64.
func (w *Writer) U64(v uint64) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		w.buf.WriteByte(b)
		if v == 0 {
			break
		}
	}
}

// S64 writes a signed LEB128 encoded int64.
func (w *Writer) S64(v int64) {
	more := true
	for more {
		b := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && (b&0x40) == 0) || (v == -1 && (b&0x40) != 0) {
			more = false
		} else {
			b |= 0x80
		}
		w.buf.WriteByte(b)
	}
}

// Bytes8 writes a length-prefixed byte string.
func (w *Writer) Bytes8(data []byte) {
	w.U64(uint64(len(data)))
	w.buf.Write(data)
}

// String writes a length-prefixed UTF-8 string.
func (w *Writer) String(s string) {
	w.U64(uint64(len(s)))
	w.buf.WriteString(s)
}

// F64 writes a float64 as its IEEE 754 bit pattern, LEB128 encoded.
func (w *Writer) F64(v float64) {
	w.U64(math.Float64bits(v))
}

// Bool writes a boolean as one byte.
func (w *Writer) Bool(v bool) {
	if v {
		w.buf.WriteByte(1)
	} else {
		w.buf.WriteByte(0)
	}
}
