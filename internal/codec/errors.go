package codec

import "errors"

// ErrFailedToProcess collapses any pipeline failure (authentication,
// inflate, or deserialize) into one opaque error. The specific cause is
// deliberately never surfaced — distinguishing "bad key" from "corrupt
// ciphertext" from "tampered bytes" would hand an attacker a decryption
// oracle.
var ErrFailedToProcess = errors.New("failed to process")

// Token names are the fixed string tokens the client-facing codec surfaces
// (e.g. across the WASM boundary) instead of Go error text.
const (
	TokenFailedToProcess  = "FAILED_TO_PROCESS"
	TokenInvalidKey       = "INVALID_KEY"
	TokenFailedToParseKey = "FAILED_TO_PARSE_KEY"
)
