package generate

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
)

// RoomAttempts is how many random placements a leaf gets before it is
// left without a room.
const RoomAttempts = 30

const (
	// DefaultBuffer is the margin kept between unrelated structures.
	DefaultBuffer = 1
	// DefaultMaxAspect bounds how elongated a node may get before its
	// split axis is forced.
	DefaultMaxAspect = 1.5
	// MaxCells caps Width*Height so a bad config fails before allocating.
	MaxCells = 1 << 22
)

// ErrInvalidConfig is wrapped by every Config.Validate failure.
var ErrInvalidConfig = errors.New("generate: invalid config")

// Config drives generation of one dungeon level.
type Config struct {
	Width, Height int
	// MaxDepth bounds partition recursion; 0 yields a single leaf.
	MaxDepth int
	// MinLeafSize is the smallest room side. A leaf must keep
	// MinLeafSize+2*Buffer on both sides to be split off.
	MinLeafSize int
	Buffer      int
	// MaxAspect is the width:height ratio past which a node may only be
	// split across its long side. Zero means DefaultMaxAspect.
	MaxAspect float64
	// ExemptAnchorRooms lets a corridor run through the reservations of the
	// two rooms it joins. Off, only the endpoints themselves are exempt and
	// a corridor leaving a buffered room falls back to the forced carve.
	ExemptAnchorRooms bool

	// Seed seeds a private generator when Rand is nil.
	Seed int64
	Rand *rand.Rand

	Logger *slog.Logger
}

// DefaultConfig returns the settings the overworld uses for a standard
// dungeon.
func DefaultConfig() Config {
	return Config{
		Width:       40,
		Height:      30,
		MaxDepth:    4,
		MinLeafSize: 6,
		Buffer:      DefaultBuffer,
		MaxAspect:   DefaultMaxAspect,
	}
}

// Validate reports configurations no generation run could use.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: dimensions %dx%d must be positive", ErrInvalidConfig, c.Width, c.Height)
	case c.Width*c.Height > MaxCells:
		return fmt.Errorf("%w: %dx%d exceeds %d cells", ErrInvalidConfig, c.Width, c.Height, MaxCells)
	case c.MaxDepth < 0:
		return fmt.Errorf("%w: max depth %d is negative", ErrInvalidConfig, c.MaxDepth)
	case c.MinLeafSize < 1:
		return fmt.Errorf("%w: min leaf size %d must be at least 1", ErrInvalidConfig, c.MinLeafSize)
	case c.Buffer < 0:
		return fmt.Errorf("%w: buffer %d is negative", ErrInvalidConfig, c.Buffer)
	case 2*c.Buffer >= c.Width || 2*c.Buffer >= c.Height:
		return fmt.Errorf("%w: buffer %d leaves no interior in %dx%d", ErrInvalidConfig, c.Buffer, c.Width, c.Height)
	case c.MaxAspect != 0 && c.MaxAspect < 1:
		return fmt.Errorf("%w: max aspect %.2f must be at least 1", ErrInvalidConfig, c.MaxAspect)
	}
	return nil
}

// withDefaults fills the optional fields.
func (c Config) withDefaults() Config {
	if c.MaxAspect == 0 {
		c.MaxAspect = DefaultMaxAspect
	}
	if c.Rand == nil {
		c.Rand = rand.New(rand.NewSource(c.Seed))
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	return c
}

// minSide is the smallest side a split may leave on either child.
func (c Config) minSide() int { return c.MinLeafSize + 2*c.Buffer }

// BindFlags registers the level settings on fs, defaulting to c's values.
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "dungeon width in tiles")
	fs.IntVar(&c.Height, "height", c.Height, "dungeon height in tiles")
	fs.IntVar(&c.MaxDepth, "depth", c.MaxDepth, "maximum partition depth")
	fs.IntVar(&c.MinLeafSize, "minleaf", c.MinLeafSize, "smallest room side")
	fs.IntVar(&c.Buffer, "buffer", c.Buffer, "margin kept around rooms and corridors")
	fs.Float64Var(&c.MaxAspect, "aspect", c.MaxAspect, "maximum width:height ratio before a split axis is forced")
	fs.BoolVar(&c.ExemptAnchorRooms, "exempt-rooms", c.ExemptAnchorRooms, "let corridors cross the margins of the rooms they join")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed")
}
