package contract

import (
	"strings"
	"testing"
)

// FuzzPathCovers fuzzes PathCovers with random keys and numstat paths.
func FuzzPathCovers(f *testing.F) {
	seeds := []struct {
		key  string
		path string
	}{
		{"src", "src/a.go"},
		{"src/", "src/a.go"},
		{".", "anything"},
		{"src/a.go", "src/a.go"},
		{"src", "srcx/a.go"},
		{"", ""},
	}
	for _, seed := range seeds {
		f.Add(seed.key, seed.path)
	}

	f.Fuzz(func(t *testing.T, key string, path string) {
		covered := PathCovers(key, path)
		trimmed := strings.TrimSuffix(key, "/")
		if path == trimmed && !covered {
			t.Errorf("key %q must cover identical path %q", key, path)
		}
		if covered && key != "." && !strings.HasPrefix(path, trimmed) {
			t.Errorf("key %q covers unrelated path %q", key, path)
		}
	})
}
