// Package generate carves dungeon levels with a binary space partition:
// one room per leaf, L-shaped corridors joining sibling subtrees bottom-up,
// and a single entrance channel from the level edge.
package generate

import (
	"fmt"
	"math/rand"

	"dungeon-map/internal/gamemap"
)

// Result is everything one generation run produced.
type Result struct {
	Grid        *gamemap.Grid
	Tree        *Tree
	Rooms       []Room
	Anchors     map[NodeID]Anchor
	Connections []Connection
	Entrance    Entrance
}

// Stats summarizes a Result.
type Stats struct {
	Leaves     int
	Rooms      int
	Buffered   int
	Forced     int
	FloorTiles int
	Reachable  int
}

// Generate validates cfg and carves a level. Randomness is drawn only
// from cfg.Rand (or a generator seeded with cfg.Seed), so equal configs
// yield equal levels.
func Generate(cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	return run(cfg, cfg.Rand), nil
}

func run(cfg Config, rng *rand.Rand) *Result {
	grid := gamemap.NewGrid(cfg.Width, cfg.Height)
	mask := gamemap.NewReservedMask(cfg.Width, cfg.Height)
	tree := buildTree(cfg, rng)

	res := &Result{
		Grid:    grid,
		Tree:    tree,
		Anchors: make(map[NodeID]Anchor),
	}

	for _, leaf := range tree.Leaves() {
		room, ok := carveRoom(grid, mask, tree.Nodes[leaf].Rect, leaf.Owner(), cfg.MinLeafSize, cfg.Buffer, rng)
		if !ok {
			cfg.Logger.Debug("leaf left without a room", "node", leaf, "rect", fmt.Sprint(tree.Nodes[leaf].Rect))
			continue
		}
		res.Rooms = append(res.Rooms, Room{Leaf: leaf, Rect: room})
		res.Anchors[leaf] = Anchor{Point: room.Center(), Room: leaf.Owner()}
	}

	cc := &corridorCarver{grid: grid, mask: mask, buf: cfg.Buffer, rng: rng, exemptRooms: cfg.ExemptAnchorRooms}
	for _, id := range tree.PostOrder() {
		if tree.IsLeaf(id) {
			continue
		}
		n := tree.Nodes[id]
		left, lok := res.Anchors[n.Left]
		right, rok := res.Anchors[n.Right]
		switch {
		case lok && rok:
			conn := cc.connect(id, left, right)
			if conn.Result == ConnectionForced {
				cfg.Logger.Debug("corridor forced through buffer", "node", id, "from", conn.From.Point, "to", conn.To.Point)
			}
			res.Connections = append(res.Connections, conn)
			if rng.Intn(2) == 0 {
				res.Anchors[id] = left
			} else {
				res.Anchors[id] = right
			}
		case lok:
			res.Anchors[id] = left
		case rok:
			res.Anchors[id] = right
		}
	}

	res.Entrance = carveEntrance(grid, rng)
	if res.Entrance.Defaulted {
		cfg.Logger.Debug("no edge reaches floor, entrance defaulted to origin")
	}

	st := res.Stats()
	cfg.Logger.Debug("dungeon generated",
		"width", cfg.Width, "height", cfg.Height,
		"leaves", st.Leaves, "rooms", st.Rooms,
		"buffered", st.Buffered, "forced", st.Forced,
		"entrance", res.Entrance.Point, "edge", res.Entrance.Edge.String())
	return res
}

// Stats counts the parts of the level and how much floor the entrance reaches.
func (r *Result) Stats() Stats {
	st := Stats{
		Leaves:     len(r.Tree.Leaves()),
		Rooms:      len(r.Rooms),
		FloorTiles: r.Grid.FloorCount(),
	}
	for _, c := range r.Connections {
		if c.Result == ConnectionForced {
			st.Forced++
		} else {
			st.Buffered++
		}
	}
	reach := r.Grid.Reachable(r.Entrance.Point)
	st.Reachable = reach.Size()
	return st
}

// Connected reports whether every floor tile is reachable from the entrance.
func (r *Result) Connected() bool {
	st := r.Stats()
	return st.Reachable == st.FloorTiles
}
