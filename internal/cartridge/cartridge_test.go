package cartridge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTruncatesOversizeROM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.gb")
	require.NoError(t, os.WriteFile(path, make([]byte, MaxROMSize+4096), 0o644))

	data, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, data, MaxROMSize)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.gb"))
	assert.Error(t, err)
}

func TestLoadBootROMRejectsWrongSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "boot.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 64), 0o644))

	_, err := LoadBootROM(path)
	assert.Error(t, err)
}

func TestLoadBootROMAcceptsExactSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "boot.bin")
	want := make([]byte, BootROMSize)
	want[0] = 0x31
	require.NoError(t, os.WriteFile(path, want, 0o644))

	got, err := LoadBootROM(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
