package video

import (
	"sort"

	"dmgemu/internal/addr"
	"dmgemu/internal/bit"
)

// Sprite is one parsed OAM entry (spec.md §3, §4.4).
type Sprite struct {
	Y, X      uint8
	Tile      uint8
	Attrs     uint8
	OAMIndex  int
}

func (s Sprite) paletteOBP1() bool { return bit.IsSet(4, s.Attrs) }
func (s Sprite) flipX() bool       { return bit.IsSet(5, s.Attrs) }
func (s Sprite) flipY() bool       { return bit.IsSet(6, s.Attrs) }
func (s Sprite) lowPriority() bool { return bit.IsSet(7, s.Attrs) }

// ScanLine walks the 40 OAM entries in index order and returns up to 10
// sprites visible on scanline ly, sorted by X ascending with OAM-index
// ties broken by stable sort (spec.md §4.4 "OAM scan").
func ScanLine(bus Bus, ly int, tall bool) []Sprite {
	height := 8
	if tall {
		height = 16
	}

	var visible []Sprite
	for i := 0; i < 40 && len(visible) < 10; i++ {
		base := addr.OAMStart + uint16(i*4)
		rawY := int(bus.Read(base))
		spriteY := rawY - 16
		if ly < spriteY || ly >= spriteY+height {
			continue
		}

		visible = append(visible, Sprite{
			Y:        uint8(rawY),
			X:        bus.Read(base + 1),
			Tile:     bus.Read(base + 2),
			Attrs:    bus.Read(base + 3),
			OAMIndex: i,
		})
	}

	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].X < visible[j].X
	})

	return visible
}
