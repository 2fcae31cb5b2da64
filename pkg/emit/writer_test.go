package emit

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileIfChangedCreates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "curv.mk")

	changed, err := WriteFileIfChanged(path, []byte("A := 1\n"), true)
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if !changed {
		t.Error("first write reported unchanged")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if string(data) != "A := 1\n" {
		t.Errorf("content = %q", data)
	}
}

func TestWriteFileIfChangedSkipsIdentical(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curv.mk")
	content := []byte("A := 1\n")

	if _, err := WriteFileIfChanged(path, content, true); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	first := info.ModTime()

	changed, err := WriteFileIfChanged(path, content, true)
	if err != nil {
		t.Fatalf("second write failed: %v", err)
	}
	if changed {
		t.Error("identical rewrite reported changed")
	}
	info, err = os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if !info.ModTime().Equal(first) {
		t.Error("identical rewrite touched the file")
	}
}

func TestWriteFileIfChangedReplacesOnDiff(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curv.mk")

	if _, err := WriteFileIfChanged(path, []byte("A := 1\n"), true); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	changed, err := WriteFileIfChanged(path, []byte("A := 2\n"), true)
	if err != nil {
		t.Fatalf("second write failed: %v", err)
	}
	if !changed {
		t.Error("differing rewrite reported unchanged")
	}
	data, _ := os.ReadFile(path)
	if string(data) != "A := 2\n" {
		t.Errorf("content = %q", data)
	}
}

func TestWriteFileIfChangedForcedOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curv.mk")
	content := []byte("A := 1\n")

	if _, err := WriteFileIfChanged(path, content, false); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	changed, err := WriteFileIfChanged(path, content, false)
	if err != nil {
		t.Fatalf("second write failed: %v", err)
	}
	if !changed {
		t.Error("forced overwrite reported unchanged")
	}
}

func TestWriteFileIfChangedLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "curv.mk")

	for i := 0; i < 3; i++ {
		if _, err := WriteFileIfChanged(path, []byte("A := 1\n"), true); err != nil {
			t.Fatalf("write %d failed: %v", i, err)
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("dir has %d entries, want only the target", len(entries))
	}
}
