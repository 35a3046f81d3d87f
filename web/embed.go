// Package web supplies the static single-page UI (served at "/" when no
// operator --web-path is given) and a small helper to choose between that
// embedded default and an operator-supplied directory.
package web

import "net/http"

// Open returns the filesystem to serve the web UI from: dir if non-empty
// (an operator override via --web-path), otherwise the build's embedded
// default (see embed_dev.go / embed_prod.go).
func Open(dir string) http.FileSystem {
	if dir != "" {
		return http.Dir(dir)
	}
	return http.FS(Assets)
}
