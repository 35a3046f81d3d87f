// Package key holds the 44-byte client-side key handle used by
// internal/codec: a 32-byte AEAD key concatenated with a 12-byte nonce. The
// server never sees a Key — it is generated, carried in a share-link
// fragment, and consumed entirely in the browser's WASM codec.
package key

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"

	"golang.org/x/crypto/chacha20poly1305"
)

// Size is the total byte length of a Key: a 32-byte AEAD key followed by a
// 12-byte nonce.
const Size = 32 + 12

// nonceOffset is where the nonce begins within the 44-byte handle (spec's
// resolution of an original ambiguity: the LAST 12 bytes, not the first).
const nonceOffset = 32

var (
	// ErrInvalidKey means the raw byte length didn't equal Size.
	ErrInvalidKey = errors.New("invalid key")
	// ErrFailedToParseKey means the text form didn't base64url-decode.
	ErrFailedToParseKey = errors.New("failed to parse key")
)

// Scheme selects the AEAD construction a Key seals and opens with. Both
// schemes consume the same 44-byte handle shape; Scheme only changes which
// cipher.AEAD is built from the first 32 bytes.
type Scheme uint8

const (
	// AES256GCM is the default cipher, matching spec.md §4.6.
	AES256GCM Scheme = iota
	// ChaCha20Poly1305 is the alternate AEAD spec.md §9 anticipates a later
	// revision adopting; selecting it does not change the wire envelope.
	ChaCha20Poly1305
)

// Key is an opaque 44-byte handle plus the AEAD it was constructed for.
// The zero value is not valid; build one with Generate or FromBytes/FromText.
type Key struct {
	raw    [Size]byte
	scheme Scheme
	aead   cipher.AEAD
}

// Generate returns a fresh Key: Size bytes of CSPRNG output, single-use by
// construction, sealed with AES256GCM.
func Generate() (Key, error) {
	return GenerateScheme(AES256GCM)
}

// GenerateScheme is Generate with an explicit Scheme.
func GenerateScheme(scheme Scheme) (Key, error) {
	var raw [Size]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return Key{}, err
	}
	return newKey(raw, scheme)
}

// FromBytes validates b's length and builds a Key with the given Scheme.
func FromBytes(b []byte, scheme Scheme) (Key, error) {
	if len(b) != Size {
		return Key{}, ErrInvalidKey
	}
	var raw [Size]byte
	copy(raw[:], b)
	return newKey(raw, scheme)
}

// FromText base64url-decodes s (no padding) and delegates to FromBytes.
func FromText(s string, scheme Scheme) (Key, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return Key{}, ErrFailedToParseKey
	}
	return FromBytes(b, scheme)
}

func newKey(raw [Size]byte, scheme Scheme) (Key, error) {
	aeadKey := raw[:nonceOffset]
	var aead cipher.AEAD
	var err error
	switch scheme {
	case ChaCha20Poly1305:
		aead, err = chacha20poly1305.New(aeadKey)
	default:
		var block cipher.Block
		block, err = aes.NewCipher(aeadKey)
		if err == nil {
			aead, err = cipher.NewGCM(block)
		}
	}
	if err != nil {
		return Key{}, ErrInvalidKey
	}
	return Key{raw: raw, scheme: scheme, aead: aead}, nil
}

// Text returns the deterministic base64url (no padding) text form.
func (k Key) Text() string {
	return base64.RawURLEncoding.EncodeToString(k.raw[:])
}

// Bytes returns a copy of the 44-byte handle.
func (k Key) Bytes() []byte {
	out := make([]byte, Size)
	copy(out, k.raw[:])
	return out
}

// Equal reports whether two Keys carry the same bytes and Scheme. The
// underlying cipher.AEAD values are rebuilt independently per Key and are
// not directly comparable, so equality is defined over the handle instead.
func (k Key) Equal(other Key) bool {
	return k.raw == other.raw && k.scheme == other.scheme
}

// nonce returns the last 12 bytes of the handle.
func (k Key) nonce() []byte {
	return k.raw[nonceOffset:]
}

// Seal AEAD-encrypts plaintext with the key's nonce, returning ciphertext
// with the authentication tag appended. Every call reuses the same nonce,
// which is why a Key must only ever seal one message.
func (k Key) Seal(plaintext []byte) []byte {
	return k.aead.Seal(nil, k.nonce(), plaintext, nil)
}

// Open AEAD-decrypts ct. Authentication failure is reported as a generic
// error; callers should collapse it to a fixed token rather than surface it.
func (k Key) Open(ct []byte) ([]byte, error) {
	return k.aead.Open(nil, k.nonce(), ct, nil)
}
