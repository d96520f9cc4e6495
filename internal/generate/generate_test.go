package generate

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"dungeon-map/internal/gamemap"
)

func defaultTestConfig(seed int64) Config {
	cfg := DefaultConfig()
	cfg.Seed = seed
	return cfg
}

func mustGenerate(t *testing.T, cfg Config) *Result {
	t.Helper()
	res, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate(%+v): %v", cfg, err)
	}
	return res
}

// TestGenerateAllFloorConnected verifies that a flood fill from the
// entrance reaches every floor tile.
func TestGenerateAllFloorConnected(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		res := mustGenerate(t, defaultTestConfig(seed))
		st := res.Stats()
		if st.FloorTiles == 0 {
			t.Fatalf("seed=%d: no floor tiles", seed)
		}
		if st.Reachable != st.FloorTiles {
			t.Errorf("seed=%d: reached %d of %d floor tiles\n%s", seed, st.Reachable, st.FloorTiles, res.Grid)
		}
		if !res.Connected() {
			t.Errorf("seed=%d: Connected() = false", seed)
		}
	}
}

func TestGenerateEntranceOnBorder(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		res := mustGenerate(t, defaultTestConfig(seed))
		e := res.Entrance
		if e.Defaulted {
			t.Errorf("seed=%d: entrance defaulted", seed)
		}
		if !res.Grid.Bounds().OnBorder(e.Point) {
			t.Errorf("seed=%d: entrance %v not on the border", seed, e.Point)
		}
		if !res.Grid.IsFloor(e.X, e.Y) {
			t.Errorf("seed=%d: entrance %v is not floor", seed, e.Point)
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	cfg := Config{Width: 40, Height: 30, MaxDepth: 4, MinLeafSize: 6, Buffer: 1, Seed: 42}
	first := mustGenerate(t, cfg)
	for range 5 {
		again := mustGenerate(t, cfg)
		if !first.Grid.Equal(again.Grid) {
			t.Fatalf("same seed produced different grids:\n%s\nvs\n%s", first.Grid, again.Grid)
		}
		if first.Entrance.Point != again.Entrance.Point {
			t.Fatalf("entrance %v vs %v", first.Entrance.Point, again.Entrance.Point)
		}
		if len(first.Connections) != len(again.Connections) {
			t.Fatalf("connections %d vs %d", len(first.Connections), len(again.Connections))
		}
	}

	// An explicit generator with the same seed gives the same level.
	withRand := cfg
	withRand.Rand = rand.New(rand.NewSource(42))
	if !mustGenerate(t, withRand).Grid.Equal(first.Grid) {
		t.Error("explicit Rand with the same seed should match Seed")
	}

	other := cfg
	other.Seed = 43
	if mustGenerate(t, other).Grid.Equal(first.Grid) {
		t.Error("different seeds should give different levels")
	}
}

func TestGenerateSingleLeaf(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		cfg := defaultTestConfig(seed)
		cfg.MaxDepth = 0
		res := mustGenerate(t, cfg)
		if len(res.Tree.Nodes) != 1 {
			t.Fatalf("seed=%d: %d nodes, want 1", seed, len(res.Tree.Nodes))
		}
		if len(res.Rooms) != 1 {
			t.Errorf("seed=%d: %d rooms, want 1", seed, len(res.Rooms))
		}
		if len(res.Connections) != 0 {
			t.Errorf("seed=%d: %d corridors, want 0", seed, len(res.Connections))
		}
		if !res.Connected() {
			t.Errorf("seed=%d: single room level is not connected", seed)
		}
	}
}

func TestGenerateTinyGrid(t *testing.T) {
	cfg := Config{Width: 3, Height: 3, MaxDepth: 4, MinLeafSize: 2, Buffer: 1, Seed: 9}
	res := mustGenerate(t, cfg)
	if len(res.Rooms) != 0 {
		t.Errorf("3x3 level should have no room, got %d", len(res.Rooms))
	}
	if !res.Entrance.Defaulted || res.Entrance.Point != (gamemap.Point{}) {
		t.Errorf("entrance = %+v, want defaulted origin", res.Entrance)
	}
	if res.Grid.FloorCount() != 0 {
		t.Errorf("3x3 level should stay solid, got\n%s", res.Grid)
	}
	if !res.Grid.Bounds().OnBorder(res.Entrance.Point) {
		t.Error("defaulted entrance should still be on the border")
	}
}

func TestGenerateRoomsKeepBuffer(t *testing.T) {
	for seed := int64(0); seed < 30; seed++ {
		cfg := defaultTestConfig(seed)
		cfg.Width, cfg.Height, cfg.MaxDepth, cfg.MinLeafSize = 80, 50, 6, 3
		res := mustGenerate(t, cfg)
		for i := 0; i < len(res.Rooms); i++ {
			a := res.Rooms[i]
			inner := res.Tree.Nodes[a.Leaf].Rect.Inset(cfg.Buffer)
			if a.Rect.Clip(inner) != a.Rect {
				t.Errorf("seed=%d: room %v escapes its leaf", seed, a.Rect)
			}
			for j := i + 1; j < len(res.Rooms); j++ {
				b := res.Rooms[j]
				if d := a.Rect.Chebyshev(b.Rect); d < 2*cfg.Buffer+1 {
					t.Errorf("seed=%d: rooms %v and %v are %d apart", seed, a.Rect, b.Rect, d)
				}
			}
		}
	}
}

// TestBufferedCorridorsAvoidOtherRooms checks that a corridor carved
// without the fallback keeps its buffer from every room it does not join.
func TestBufferedCorridorsAvoidOtherRooms(t *testing.T) {
	for seed := int64(0); seed < 30; seed++ {
		cfg := defaultTestConfig(seed)
		cfg.ExemptAnchorRooms = true
		res := mustGenerate(t, cfg)
		buf := DefaultBuffer
		for _, c := range res.Connections {
			if c.Result != ConnectionBuffered {
				continue
			}
			for _, p := range c.Path {
				if p == c.From.Point || p == c.To.Point {
					continue
				}
				cell := gamemap.Rect{X: p.X, Y: p.Y, W: 1, H: 1}
				for _, r := range res.Rooms {
					owner := r.Leaf.Owner()
					if owner == c.From.Room || owner == c.To.Room {
						continue
					}
					if d := cell.Chebyshev(r.Rect); d <= buf {
						t.Errorf("seed=%d: buffered corridor of node %d passes %d from room %v", seed, c.Node, d, r.Rect)
					}
				}
			}
		}
	}
}

func TestGenerateProducesBothConnectionKinds(t *testing.T) {
	var buffered, forced int
	for seed := int64(0); seed < 50; seed++ {
		cfg := defaultTestConfig(seed)
		cfg.ExemptAnchorRooms = true
		st := mustGenerate(t, cfg).Stats()
		buffered += st.Buffered
		forced += st.Forced
	}
	if buffered == 0 || forced == 0 {
		t.Errorf("buffered=%d forced=%d; both paths should be exercised", buffered, forced)
	}
}

// With only the endpoints exempt, every corridor starts inside its room's
// reservation, so each one takes the fallback and the level stays connected.
func TestGenerateCorridorsFromRoomCentersAreForced(t *testing.T) {
	for seed := int64(0); seed < 30; seed++ {
		res := mustGenerate(t, defaultTestConfig(seed))
		st := res.Stats()
		if st.Buffered != 0 || st.Forced != len(res.Connections) {
			t.Errorf("seed=%d: buffered=%d forced=%d of %d", seed, st.Buffered, st.Forced, len(res.Connections))
		}
		if !res.Connected() {
			t.Errorf("seed=%d: level is not connected", seed)
		}
	}
}

func TestGenerateAnchorsPropagate(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		res := mustGenerate(t, defaultTestConfig(seed))
		if len(res.Rooms) == 0 {
			continue
		}
		root, ok := res.Anchors[res.Tree.Root()]
		if !ok {
			t.Fatalf("seed=%d: root has no anchor although rooms exist", seed)
		}
		if !res.Grid.IsFloor(root.X, root.Y) {
			t.Errorf("seed=%d: root anchor %v is not floor", seed, root.Point)
		}
		for id, a := range res.Anchors {
			if !res.Tree.Contains(id, ownerNode(a.Room)) {
				t.Errorf("seed=%d: anchor of %d comes from room outside its subtree", seed, id)
			}
		}
		for _, c := range res.Connections {
			if res.Tree.IsLeaf(c.Node) {
				t.Errorf("seed=%d: leaf %d carved a corridor", seed, c.Node)
			}
		}
	}
}

// TestGenerateTerminates sweeps random legal configurations and checks
// every run finishes, connected, within a generous wall-clock budget.
func TestGenerateTerminates(t *testing.T) {
	rng := rand.New(rand.NewSource(2024))
	deadline := time.Now().Add(20 * time.Second)
	runs := 0
	for runs < 300 {
		cfg := Config{
			Width:       1 + rng.Intn(120),
			Height:      1 + rng.Intn(120),
			MaxDepth:    rng.Intn(10),
			MinLeafSize: 1 + rng.Intn(10),
			Buffer:      rng.Intn(3),
			Seed:        rng.Int63(),
		}
		if cfg.Validate() != nil {
			continue
		}
		res := mustGenerate(t, cfg)
		if !res.Connected() {
			t.Fatalf("config %+v produced a disconnected level", cfg)
		}
		if !res.Grid.Bounds().OnBorder(res.Entrance.Point) {
			t.Fatalf("config %+v put the entrance inside the level", cfg)
		}
		runs++
		if time.Now().After(deadline) {
			t.Fatalf("sweep exceeded its time budget after %d runs", runs)
		}
	}
}

func TestValidate(t *testing.T) {
	base := DefaultConfig()
	cases := []struct {
		name   string
		modify func(*Config)
		ok     bool
	}{
		{"default", func(*Config) {}, true},
		{"tiny", func(c *Config) { c.Width, c.Height, c.MinLeafSize = 3, 3, 2 }, true},
		{"zero width", func(c *Config) { c.Width = 0 }, false},
		{"negative height", func(c *Config) { c.Height = -4 }, false},
		{"too many cells", func(c *Config) { c.Width, c.Height = 5000, 5000 }, false},
		{"negative depth", func(c *Config) { c.MaxDepth = -1 }, false},
		{"zero min leaf", func(c *Config) { c.MinLeafSize = 0 }, false},
		{"negative buffer", func(c *Config) { c.Buffer = -1 }, false},
		{"buffer swallows level", func(c *Config) { c.Width, c.Buffer = 4, 2 }, false},
		{"flat aspect", func(c *Config) { c.MaxAspect = 0.5 }, false},
		{"zero aspect means default", func(c *Config) { c.MaxAspect = 0 }, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base
			tc.modify(&cfg)
			err := cfg.Validate()
			if tc.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tc.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
			if _, genErr := Generate(cfg); (genErr == nil) != tc.ok {
				t.Errorf("Generate error = %v, want ok=%v", genErr, tc.ok)
			}
		})
	}
}
