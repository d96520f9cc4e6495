package world

import (
	"fmt"
	"sync"

	"dungeon-map/internal/gamemap"
)

// MemoryOverworld is an Overworld backed by a biome table. It is safe for
// concurrent use.
type MemoryOverworld struct {
	mu     sync.Mutex
	width  int
	height int
	biomes [][]string
	sites  map[gamemap.Point]Site
}

// NewMemoryOverworld wraps biomes, indexed [y][x]. Rows must have equal length.
func NewMemoryOverworld(biomes [][]string) (*MemoryOverworld, error) {
	w := 0
	if len(biomes) > 0 {
		w = len(biomes[0])
	}
	for y, row := range biomes {
		if len(row) != w {
			return nil, fmt.Errorf("world: biome row %d has %d cells, want %d", y, len(row), w)
		}
	}
	return &MemoryOverworld{
		width:  w,
		height: len(biomes),
		biomes: biomes,
		sites:  make(map[gamemap.Point]Site),
	}, nil
}

// UniformOverworld returns a w×h overworld of a single biome.
func UniformOverworld(w, h int, biome string) *MemoryOverworld {
	rows := make([][]string, h)
	for y := range rows {
		rows[y] = make([]string, w)
		for x := range rows[y] {
			rows[y][x] = biome
		}
	}
	ow, _ := NewMemoryOverworld(rows)
	return ow
}

func (o *MemoryOverworld) Size() (int, int) { return o.width, o.height }

// BiomeAt returns the biome at (x, y), or "" outside the map.
func (o *MemoryOverworld) BiomeAt(x, y int) string {
	if x < 0 || y < 0 || x >= o.width || y >= o.height {
		return ""
	}
	return o.biomes[y][x]
}

// AttachSublevel registers s at its cell.
func (o *MemoryOverworld) AttachSublevel(s Site) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.sites[s.Point]; ok {
		return fmt.Errorf("%w: %v", ErrOccupied, s.Point)
	}
	o.sites[s.Point] = s
	return nil
}

// SiteAt returns the site registered at (x, y).
func (o *MemoryOverworld) SiteAt(x, y int) (Site, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	s, ok := o.sites[gamemap.Point{X: x, Y: y}]
	return s, ok
}

// Sites returns the number of registered sites.
func (o *MemoryOverworld) Sites() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.sites)
}
