package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"a2t/internal/app/model"
)

// MiB is one mebibyte.
const MiB = 1 << 20

// CreateSparseFile creates name in a fresh temporary directory with the
// given size and returns its FileInfo. The file is sparse, so large sizes
// are cheap.
func CreateSparseFile(t testing.TB, name string, size int64) model.FileInfo {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	if err := f.Truncate(size); err != nil {
		f.Close()
		t.Fatalf("truncate %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close %s: %v", path, err)
	}

	return model.FileInfo{FullPath: path, Name: name, Size: size}
}

// CreateFile writes content to name in a fresh temporary directory.
func CreateFile(t testing.TB, name string, content []byte) model.FileInfo {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return model.FileInfo{FullPath: path, Name: name, Size: int64(len(content))}
}

// IsolateTempDir points os.TempDir at a directory owned by the test and
// returns it, so tests can assert that temporary files are removed.
func IsolateTempDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("TMPDIR", dir)
	return dir
}
