// Package codec implements the client-side encryption pipeline: frame a
// Pack, serialize it with the bincode-compatible internal/codec/wire
// encoding, DEFLATE-compress it, then seal it with a key.Key. The server
// never runs this package — it only ever sees the resulting opaque
// Encrypted bytes. cmd/wasmpack exposes it to the browser over syscall/js.
package codec

import (
	"bytes"
	"compress/flate"
	"io"

	"github.com/haukened/gone/internal/codec/key"
)

// deflateLevel is the mid-quality compression level spec.md §4.6 calls for:
// 8 out of flate's 1-9 scale.
const deflateLevel = 8

// Encrypted is an opaque AEAD ciphertext (with authentication tag) over a
// compressed, serialized Pack. Its internal shape is never interpreted by
// the server.
type Encrypted []byte

// EncryptMessage frames text as a plain-message Pack (no file name) and
// runs it through the full encode/compress/seal pipeline.
func EncryptMessage(k key.Key, text string) (Encrypted, error) {
	return encrypt(k, newPack(true, "", []byte(text)))
}

// EncryptFile frames data as a file Pack carrying name, then runs it
// through the full encode/compress/seal pipeline.
func EncryptFile(k key.Key, name string, data []byte) (Encrypted, error) {
	return encrypt(k, newPack(false, name, data))
}

func encrypt(k key.Key, p Pack) (Encrypted, error) {
	serialized := marshalPack(p)
	compressed, err := deflate(serialized)
	if err != nil {
		return nil, ErrFailedToProcess
	}
	return Encrypted(k.Seal(compressed)), nil
}

// Decrypt reverses the pipeline: AEAD-open, inflate, then deserialize. Any
// failure at any stage collapses to ErrFailedToProcess; no finer-grained
// cause is ever surfaced.
func Decrypt(k key.Key, ct []byte) (Pack, error) {
	compressed, err := k.Open(ct)
	if err != nil {
		return Pack{}, ErrFailedToProcess
	}
	serialized, err := inflate(compressed)
	if err != nil {
		return Pack{}, ErrFailedToProcess
	}
	p, err := unmarshalPack(serialized)
	if err != nil {
		return Pack{}, ErrFailedToProcess
	}
	return p, nil
}

func deflate(b []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, deflateLevel)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(b); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func inflate(b []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(b))
	defer r.Close()
	return io.ReadAll(r)
}
