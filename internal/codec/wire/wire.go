// Package wire implements a bincode-compatible binary encoding: fixed-width
// little-endian integers, a single byte for bool, and u64 length-prefixed
// strings and byte sequences. It has no knowledge of the Pack record itself;
// internal/codec composes these primitives to (de)serialize one.
package wire

import (
	"encoding/binary"
	"errors"
)

// ErrShortBuffer is returned by Reader methods when the remaining input is
// too short to satisfy the requested field.
var ErrShortBuffer = errors.New("wire: short buffer")

// Writer accumulates a bincode-compatible byte stream.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bool appends a single byte: 1 for true, 0 for false.
func (w *Writer) Bool(b bool) {
	if b {
		w.buf = append(w.buf, 1)
	} else {
		w.buf = append(w.buf, 0)
	}
}

// Uint64 appends v as 8 little-endian bytes.
func (w *Writer) Uint64(v uint64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	w.buf = append(w.buf, tmp[:]...)
}

// Bytes appends a u64 length prefix followed by b's raw bytes.
func (w *Writer) Bytes(b []byte) {
	w.Uint64(uint64(len(b)))
	w.buf = append(w.buf, b...)
}

// String appends s as a length-prefixed UTF-8 byte sequence.
func (w *Writer) String(s string) {
	w.Bytes([]byte(s))
}

// Output returns the accumulated byte stream.
func (w *Writer) Output() []byte {
	return w.buf
}

// Reader consumes a bincode-compatible byte stream produced by Writer.
type Reader struct {
	buf []byte
	pos int
}

// NewReader wraps b for sequential decoding.
func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

func (r *Reader) take(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.buf) {
		return nil, ErrShortBuffer
	}
	out := r.buf[r.pos : r.pos+n]
	r.pos += n
	return out, nil
}

// Bool decodes a single byte as a boolean; any nonzero byte is true.
func (r *Reader) Bool() (bool, error) {
	b, err := r.take(1)
	if err != nil {
		return false, err
	}
	return b[0] != 0, nil
}

// Uint64 decodes 8 little-endian bytes.
func (r *Reader) Uint64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// Bytes decodes a u64 length prefix followed by that many raw bytes. The
// returned slice is a copy, safe to retain past the Reader's lifetime.
func (r *Reader) Bytes() ([]byte, error) {
	n, err := r.Uint64()
	if err != nil {
		return nil, err
	}
	if n > uint64(len(r.buf)-r.pos) {
		return nil, ErrShortBuffer
	}
	raw, err := r.take(int(n))
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return out, nil
}

// String decodes a length-prefixed UTF-8 byte sequence.
func (r *Reader) String() (string, error) {
	b, err := r.Bytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Remaining reports how many bytes are left unread. A correctly framed Pack
// leaves exactly zero.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}
