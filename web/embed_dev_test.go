package web

import (
	"net/http"
	"testing"
)

// TestAssetsOpen verifies that the Assets filesystem (backed by os.DirFS
// over the web/dist directory) exposes the default SPA's index.html and that
// opening a non-existent file fails.
func TestAssetsOpen(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		wantError bool
	}{
		{name: "existing file", path: "index.html", wantError: false},
		{name: "non existent file", path: "this_file_should_not_exist_12345.html", wantError: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f, err := Assets.Open(tc.path)
			if tc.wantError {
				if err == nil {
					t.Fatalf("expected error opening %q, got none", tc.path)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error opening %q: %v", tc.path, err)
			}
			defer func() {
				if cerr := f.Close(); cerr != nil {
					t.Fatalf("close failed: %v", cerr)
				}
			}()
			buf := make([]byte, 16)
			n, rerr := f.Read(buf)
			if rerr != nil && rerr.Error() != "EOF" {
				t.Fatalf("read failed: %v", rerr)
			}
			if n == 0 {
				t.Fatalf("read zero bytes from %q; expected some content", tc.path)
			}
		})
	}
}

func TestOpenPrefersOperatorOverride(t *testing.T) {
	dir := t.TempDir()
	fsys := Open(dir)
	if _, ok := fsys.(http.Dir); !ok {
		t.Fatalf("expected Open(dir) to return http.Dir, got %T", fsys)
	}
}

func TestOpenFallsBackToEmbeddedDefault(t *testing.T) {
	fsys := Open("")
	f, err := fsys.Open("index.html")
	if err != nil {
		t.Fatalf("expected default index.html to open: %v", err)
	}
	_ = f.Close()
}
