//go:build js && wasm

// Command wasmpack builds the browser-side half of gone: a GOOS=js
// GOARCH=wasm binary exposing internal/codec's key generation and
// encrypt/decrypt pipeline to JavaScript over syscall/js. It never talks to
// the network itself; web/dist/js/app.js calls into it and then POSTs/GETs
// the resulting opaque bytes to the server.
package main

import (
	"syscall/js"

	"github.com/haukened/gone/internal/codec"
	"github.com/haukened/gone/internal/codec/key"
)

func main() {
	js.Global().Set("goneCodec", js.ValueOf(map[string]interface{}{
		"generateKey":   js.FuncOf(generateKey),
		"keyFromText":   js.FuncOf(keyFromText),
		"encryptString": js.FuncOf(encryptString),
		"encryptFile":   js.FuncOf(encryptFile),
		"decrypt":       js.FuncOf(decrypt),
	}))
	// Block forever: the Go runtime must stay alive for registered funcs to
	// remain callable from JS.
	select {}
}

func jsThrow(token string) {
	panic(js.Global().Get("Error").New(token))
}

func bytesFromJS(v js.Value) []byte {
	b := make([]byte, v.Get("length").Int())
	js.CopyBytesToGo(b, v)
	return b
}

func bytesToJS(b []byte) js.Value {
	arr := js.Global().Get("Uint8Array").New(len(b))
	js.CopyBytesToJS(arr, b)
	return arr
}

func keyFromArg(v js.Value) key.Key {
	k, err := key.FromBytes(bytesFromJS(v), key.AES256GCM)
	if err != nil {
		jsThrow(codec.TokenInvalidKey)
	}
	return k
}

// generateKey() -> Uint8Array(44)
func generateKey(this js.Value, args []js.Value) interface{} {
	k, err := key.Generate()
	if err != nil {
		jsThrow(codec.TokenInvalidKey)
	}
	return bytesToJS(k.Bytes())
}

// keyFromText(text string) -> Uint8Array(44)
func keyFromText(this js.Value, args []js.Value) interface{} {
	k, err := key.FromText(args[0].String(), key.AES256GCM)
	if err == key.ErrInvalidKey {
		jsThrow(codec.TokenInvalidKey)
	}
	if err != nil {
		jsThrow(codec.TokenFailedToParseKey)
	}
	return bytesToJS(k.Bytes())
}

// encryptString(keyBytes Uint8Array, text string) -> Uint8Array(ciphertext)
func encryptString(this js.Value, args []js.Value) interface{} {
	k := keyFromArg(args[0])
	ct, err := codec.EncryptMessage(k, args[1].String())
	if err != nil {
		jsThrow(codec.TokenFailedToProcess)
	}
	return bytesToJS(ct)
}

// encryptFile(keyBytes Uint8Array, name string, data Uint8Array) -> Uint8Array(ciphertext)
func encryptFile(this js.Value, args []js.Value) interface{} {
	k := keyFromArg(args[0])
	ct, err := codec.EncryptFile(k, args[1].String(), bytesFromJS(args[2]))
	if err != nil {
		jsThrow(codec.TokenFailedToProcess)
	}
	return bytesToJS(ct)
}

// decrypt(keyBytes Uint8Array, ciphertext Uint8Array) ->
//
//	{plainMessage: bool, name: string, size: number, data: Uint8Array}
func decrypt(this js.Value, args []js.Value) interface{} {
	k := keyFromArg(args[0])
	p, err := codec.Decrypt(k, bytesFromJS(args[1]))
	if err != nil {
		jsThrow(codec.TokenFailedToProcess)
	}
	return js.ValueOf(map[string]interface{}{
		"plainMessage": p.PlainMessage,
		"name":         p.Name,
		"size":         p.Size,
		"data":         bytesToJS(p.Data),
	})
}
