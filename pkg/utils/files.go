package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var ErrEmptyROM = errors.New("rom file is empty")

func GetPathInfo(relPath string) (fullPath string, parentDir string, err error) {
	// Convert to absolute path (resolves ../../ and cleans the path)
	fullPath, err = filepath.Abs(relPath)
	if err != nil {
		return "", "", err
	}

	// Get the directory containing the file
	parentDir = filepath.Dir(fullPath)

	return fullPath, parentDir, nil
}

// ReadROM reads a program image from disk. Images larger than maxSize are
// rejected without reading them fully.
func ReadROM(path string, maxSize int) ([]byte, error) {
	fullPath, _, err := GetPathInfo(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", fullPath)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("%s: %w", fullPath, ErrEmptyROM)
	}
	if info.Size() > int64(maxSize) {
		return nil, fmt.Errorf("%s is %d bytes, limit is %d", fullPath, info.Size(), maxSize)
	}

	return os.ReadFile(fullPath)
}

// ScreenshotName returns "<rom base name>-<n>.png" in dir.
func ScreenshotName(dir, romPath string, n int) string {
	base := filepath.Base(romPath)
	base = base[:len(base)-len(filepath.Ext(base))]
	if base == "" {
		base = "chip8"
	}
	return filepath.Join(dir, fmt.Sprintf("%s-%03d.png", base, n))
}
