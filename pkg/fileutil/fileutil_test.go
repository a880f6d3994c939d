package fileutil

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")

	if Exists(path) {
		t.Error("Exists returned true for missing file")
	}
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if !Exists(path) {
		t.Error("Exists returned false for existing file")
	}
}

func TestIsNonEmpty(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.txt")
	full := filepath.Join(dir, "full.txt")

	if err := os.WriteFile(empty, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte("1 2 3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if IsNonEmpty(empty) {
		t.Error("IsNonEmpty returned true for empty file")
	}
	if !IsNonEmpty(full) {
		t.Error("IsNonEmpty returned false for non-empty file")
	}
	if IsNonEmpty(filepath.Join(dir, "missing.txt")) {
		t.Error("IsNonEmpty returned true for missing file")
	}
}

func TestWriteTmpThenMove(t *testing.T) {
	tmpDir := t.TempDir()
	outPath := filepath.Join(t.TempDir(), "nested", "output.txt")

	content := []byte("test content")
	err := WriteTmpThenMove(tmpDir, outPath, func(tmpPath string) error {
		return os.WriteFile(tmpPath, content, 0644)
	})
	if err != nil {
		t.Fatalf("WriteTmpThenMove failed: %v", err)
	}

	got, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("Content mismatch: got %q, want %q", got, content)
	}
	if Exists(filepath.Join(tmpDir, "output.txt.tmp")) {
		t.Error("Tmp file still exists after successful write")
	}
}

func TestWriteTmpThenMoveError(t *testing.T) {
	tmpDir := t.TempDir()
	outPath := filepath.Join(t.TempDir(), "output.txt")

	err := WriteTmpThenMove(tmpDir, outPath, func(tmpPath string) error {
		if err := os.WriteFile(tmpPath, []byte("partial"), 0644); err != nil {
			return err
		}
		return os.ErrPermission
	})
	if !errors.Is(err, os.ErrPermission) {
		t.Errorf("expected ErrPermission, got %v", err)
	}
	if Exists(filepath.Join(tmpDir, "output.txt.tmp")) {
		t.Error("Tmp file exists after failed write")
	}
	if Exists(outPath) {
		t.Error("Output file exists after failed write")
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Result_of_merge", "random_10.txt")

	err := WriteFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "1 2 3\n")
		return err
	})
	if err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "1 2 3\n" {
		t.Errorf("content = %q", got)
	}
	if Exists(path + ".tmp") {
		t.Error("tmp file left behind")
	}
}

func TestWriteFileKeepsOldContentOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	if err := os.WriteFile(path, []byte("old\n"), 0644); err != nil {
		t.Fatal(err)
	}

	boom := errors.New("boom")
	err := WriteFile(path, func(w io.Writer) error {
		_, _ = io.WriteString(w, "new")
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	got, _ := os.ReadFile(path)
	if string(got) != "old\n" {
		t.Errorf("old content replaced: %q", got)
	}
}

func TestListFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"sorted_10.txt", "random_10.txt", "random_100.txt.tmp", "notes.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.txt"), 0755); err != nil {
		t.Fatal(err)
	}

	files, err := ListFiles(dir, ".txt")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "random_10.txt"), filepath.Join(dir, "sorted_10.txt")}
	if len(files) != len(want) {
		t.Fatalf("ListFiles = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %s, want %s", i, files[i], want[i])
		}
	}

	if _, err := ListFiles(filepath.Join(dir, "missing"), ".txt"); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestCleanupTmpFiles(t *testing.T) {
	tmpDir := t.TempDir()

	tmpFile1 := filepath.Join(tmpDir, "file1.tmp")
	tmpFile2 := filepath.Join(tmpDir, "subdir", "file2.tmp")
	regularFile := filepath.Join(tmpDir, "regular.txt")

	if err := os.MkdirAll(filepath.Join(tmpDir, "subdir"), 0755); err != nil {
		t.Fatal(err)
	}
	for _, path := range []string{tmpFile1, tmpFile2, regularFile} {
		if err := os.WriteFile(path, []byte("content"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	if err := CleanupTmpFiles(tmpDir); err != nil {
		t.Fatalf("CleanupTmpFiles failed: %v", err)
	}

	if Exists(tmpFile1) {
		t.Error("tmpFile1 still exists")
	}
	if Exists(tmpFile2) {
		t.Error("tmpFile2 still exists")
	}
	if !Exists(regularFile) {
		t.Error("regularFile was removed")
	}

	if err := CleanupTmpFiles(filepath.Join(tmpDir, "missing")); err != nil {
		t.Errorf("missing dir: %v", err)
	}
}
