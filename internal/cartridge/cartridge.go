// Package cartridge loads cartridge ROM and boot ROM images from disk.
// Per spec.md's Non-goals, no memory bank controller is emulated: a ROM
// is simply the first 32 KiB (or fewer) of the file, loaded flat at
// 0x0000 (spec.md §6).
package cartridge

import (
	"fmt"
	"os"
)

// MaxROMSize is the flat address space available to a cartridge image
// (0x0000-0x7FFF).
const MaxROMSize = 0x8000

// BootROMSize is the fixed size of a DMG boot ROM image.
const BootROMSize = 0x100

// Load reads a cartridge ROM file and returns up to MaxROMSize bytes
// starting at offset 0, as spec.md §6 specifies ("ROMs larger than 32 KiB
// read only their first bank").
func Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cartridge: loading %q: %w", path, err)
	}
	if len(data) > MaxROMSize {
		data = data[:MaxROMSize]
	}
	return data, nil
}

// LoadBootROM reads an optional 256-byte boot ROM image.
func LoadBootROM(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cartridge: loading boot ROM %q: %w", path, err)
	}
	if len(data) != BootROMSize {
		return nil, fmt.Errorf("cartridge: boot ROM %q is %d bytes, want %d", path, len(data), BootROMSize)
	}
	return data, nil
}
