//go:build !prod

package web

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
)

// Assets reads the dist directory beside this source file, so the dev build
// finds it whatever the working directory is.
var Assets fs.FS = os.DirFS(distDir())

func distDir() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return "web/dist"
	}
	return filepath.Join(filepath.Dir(file), "dist")
}

func init() {
	slog.Info("serving web assets from disk", "build_tag", "!prod")
}
