package client

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestResolveInputs_FilesAndExtensionFilter(t *testing.T) {
	dir := t.TempDir()
	good := writeTempFile(t, dir, "a.msz")
	writeTempFile(t, dir, "b.txt")

	result, warnings, err := ResolveInputs([]string{good, filepath.Join(dir, "b.txt")}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("expected 1 eligible file, got %d: %v", len(result), result)
	}
	if len(warnings) != 1 {
		t.Errorf("expected 1 warning for the unsupported file, got %d", len(warnings))
	}
}

func TestResolveInputs_DirectoryNonRecursive(t *testing.T) {
	dir := t.TempDir()
	writeTempFile(t, dir, "a.mzML")
	writeTempFile(t, dir, "b.msz")
	sub := filepath.Join(dir, "sub")
	os.Mkdir(sub, 0o755)
	writeTempFile(t, sub, "c.msz")

	result, _, err := ResolveInputs([]string{dir}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 files at top level, got %d: %v", len(result), result)
	}
}

func TestResolveInputs_DirectoryRecursive(t *testing.T) {
	dir := t.TempDir()
	writeTempFile(t, dir, "a.msz")
	sub := filepath.Join(dir, "sub")
	os.Mkdir(sub, 0o755)
	writeTempFile(t, sub, "b.msz")

	result, _, err := ResolveInputs([]string{dir}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 files recursively, got %d: %v", len(result), result)
	}
}

func TestResolveInputs_Dedup(t *testing.T) {
	dir := t.TempDir()
	file := writeTempFile(t, dir, "a.msz")

	result, _, err := ResolveInputs([]string{file, file}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("expected deduplication to 1 entry, got %d", len(result))
	}
}

func TestResolveInputs_SortedOutput(t *testing.T) {
	dir := t.TempDir()
	writeTempFile(t, dir, "gamma.msz")
	writeTempFile(t, dir, "alpha.msz")
	writeTempFile(t, dir, "beta.msz")

	result, _, err := ResolveInputs([]string{dir}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(result); i++ {
		if result[i-1] > result[i] {
			t.Fatalf("expected sorted output, got %v", result)
		}
	}
}

func TestResolveInputs_NoEligibleInputs(t *testing.T) {
	dir := t.TempDir()
	writeTempFile(t, dir, "a.txt")

	_, _, err := ResolveInputs([]string{dir}, false)
	if err == nil {
		t.Fatal("expected error for no eligible inputs")
	}
}

func TestResolveInputs_NonexistentPath(t *testing.T) {
	_, warnings, err := ResolveInputs([]string{"/does/not/exist"}, false)
	if err == nil {
		t.Fatal("expected error since nothing resolved")
	}
	if len(warnings) != 1 {
		t.Errorf("expected a warning about the missing path, got %d", len(warnings))
	}
}
