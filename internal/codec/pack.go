package codec

import "github.com/haukened/gone/internal/codec/wire"

// Pack is the plaintext record carried inside every Encrypted payload: a
// flag distinguishing pasted text from an uploaded file, the file name (the
// empty string for plain messages), the payload size, and the payload
// itself. Size is advisory to a decoder — it's set by the encoder and
// trusted, but callers should not rely on it over len(Data).
type Pack struct {
	PlainMessage bool
	Name         string
	Size         uint64
	Data         []byte
}

func newPack(plainMessage bool, name string, data []byte) Pack {
	return Pack{PlainMessage: plainMessage, Name: name, Size: uint64(len(data)), Data: data}
}

// marshalPack encodes p as a bincode-compatible byte stream: bool, then
// length-prefixed name, then size, then length-prefixed data.
func marshalPack(p Pack) []byte {
	w := wire.NewWriter()
	w.Bool(p.PlainMessage)
	w.String(p.Name)
	w.Uint64(p.Size)
	w.Bytes(p.Data)
	return w.Output()
}

// unmarshalPack reverses marshalPack, failing on any malformed or truncated
// field.
func unmarshalPack(b []byte) (Pack, error) {
	r := wire.NewReader(b)
	plain, err := r.Bool()
	if err != nil {
		return Pack{}, err
	}
	name, err := r.String()
	if err != nil {
		return Pack{}, err
	}
	size, err := r.Uint64()
	if err != nil {
		return Pack{}, err
	}
	data, err := r.Bytes()
	if err != nil {
		return Pack{}, err
	}
	return Pack{PlainMessage: plain, Name: name, Size: size, Data: data}, nil
}
