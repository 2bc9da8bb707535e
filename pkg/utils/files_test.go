package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPathInfo(t *testing.T) {
	full, dir, err := GetPathInfo("roms/../roms/pong.ch8")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(full))
	assert.Equal(t, "pong.ch8", filepath.Base(full))
	assert.Equal(t, filepath.Dir(full), dir)
}

func TestReadROM(t *testing.T) {
	dir := t.TempDir()

	t.Run("ok", func(t *testing.T) {
		path := filepath.Join(dir, "ok.ch8")
		require.NoError(t, os.WriteFile(path, []byte{0x60, 0x05}, 0o644))

		data, err := ReadROM(path, 16)
		require.NoError(t, err)
		assert.Equal(t, []byte{0x60, 0x05}, data)
	})

	t.Run("too large", func(t *testing.T) {
		path := filepath.Join(dir, "big.ch8")
		require.NoError(t, os.WriteFile(path, make([]byte, 17), 0o644))

		_, err := ReadROM(path, 16)
		assert.Error(t, err)
	})

	t.Run("empty", func(t *testing.T) {
		path := filepath.Join(dir, "empty.ch8")
		require.NoError(t, os.WriteFile(path, nil, 0o644))

		_, err := ReadROM(path, 16)
		assert.ErrorIs(t, err, ErrEmptyROM)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := ReadROM(filepath.Join(dir, "nope.ch8"), 16)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := ReadROM(dir, 16)
		assert.Error(t, err)
	})
}

func TestScreenshotName(t *testing.T) {
	assert.Equal(t, filepath.Join("shots", "pong-007.png"), ScreenshotName("shots", "/roms/pong.ch8", 7))
	assert.Equal(t, filepath.Join("shots", "chip8-000.png"), ScreenshotName("shots", ".ch8", 0))
}
