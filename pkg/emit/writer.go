package emit

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// WriteFileIfChanged writes content to path using the temp-file-then-rename
// pattern. When onlyIfChanged is set and the destination already holds
// byte-identical content, the destination is left untouched and false is
// returned. Parent directories are created as needed.
func WriteFileIfChanged(path string, content []byte, onlyIfChanged bool) (bool, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return false, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	existing, err := os.ReadFile(path)
	exists := err == nil

	tmp, err := os.CreateTemp(dir, ".curvcfg-*")
	if err != nil {
		return false, fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return false, fmt.Errorf("failed to write %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return false, fmt.Errorf("failed to close %s: %w", tmpPath, err)
	}

	if onlyIfChanged && exists && bytes.Equal(existing, content) {
		os.Remove(tmpPath)
		return false, nil
	}

	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return false, fmt.Errorf("failed to chmod %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return false, fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return true, nil
}
