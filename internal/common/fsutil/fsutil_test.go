package fsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}

	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"~", home},
		{"~/models/car_price.json", filepath.Join(home, "models/car_price.json")},
		{"/abs/path.json", "/abs/path.json"},
		{"relative/path.json", "relative/path.json"},
	}
	for _, c := range cases {
		got, err := ExpandHome(c.in)
		if err != nil {
			t.Fatalf("ExpandHome(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("ExpandHome(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestEnsureParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "out.json")
	if err := EnsureParentDir(path); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if !PathExists(filepath.Dir(path)) {
		t.Fatal("parent dir not created")
	}
	// Bare filename has no parent to create.
	if err := EnsureParentDir("out.json"); err != nil {
		t.Fatalf("ensure bare name: %v", err)
	}
}

func TestPathExists(t *testing.T) {
	dir := t.TempDir()
	if !PathExists(dir) {
		t.Fatal("existing dir reported missing")
	}
	if PathExists(filepath.Join(dir, "nope")) {
		t.Fatal("missing path reported present")
	}
}
