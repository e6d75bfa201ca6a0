package executor

import (
	"os"
	"path/filepath"
	"testing"
)

// TestCopyTree verifies the cross-filesystem fallback copy.
//
// Scenario: A tree with nested files, a relative symlink and a dangling symlink
// Expected: Contents and modes are copied and symlinks are recreated, not followed
func TestCopyTree(t *testing.T) {
	t.Parallel()

	src := filepath.Join(t.TempDir(), "src")
	if err := os.MkdirAll(filepath.Join(src, ".git", "objects"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, ".git", "objects", "pack"), []byte("data"), 0444); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "run.sh"), []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink("run.sh", filepath.Join(src, "link")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	if err := os.Symlink("nowhere", filepath.Join(src, "dangling")); err != nil {
		t.Fatal(err)
	}

	dst := filepath.Join(t.TempDir(), "dst")
	if err := copyTree(src, dst); err != nil {
		t.Fatalf("copyTree() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dst, ".git", "objects", "pack"))
	if err != nil || string(data) != "data" {
		t.Errorf("nested file = %q, %v", data, err)
	}

	fi, err := os.Stat(filepath.Join(dst, "run.sh"))
	if err != nil {
		t.Fatal(err)
	}
	if fi.Mode().Perm()&0100 == 0 {
		t.Errorf("run.sh mode = %v, want executable", fi.Mode())
	}

	for name, want := range map[string]string{"link": "run.sh", "dangling": "nowhere"} {
		got, err := os.Readlink(filepath.Join(dst, name))
		if err != nil {
			t.Errorf("%s is not a symlink: %v", name, err)
			continue
		}
		if got != want {
			t.Errorf("Readlink(%s) = %q, want %q", name, got, want)
		}
	}
}

func TestMove_SameFilesystem(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "a")
	if err := os.Mkdir(src, 0755); err != nil {
		t.Fatal(err)
	}
	dst := filepath.Join(dir, "b")
	if err := move(src, dst); err != nil {
		t.Fatalf("move() error = %v", err)
	}
	if _, err := os.Stat(dst); err != nil {
		t.Errorf("destination missing: %v", err)
	}
	if _, err := os.Stat(src); err == nil {
		t.Error("source still present")
	}
}
