package generate

import (
	"math/rand"

	"dungeon-map/internal/gamemap"
)

// NodeID addresses a node in a Tree.
type NodeID int

// NoNode marks a missing child.
const NoNode NodeID = -1

// Owner returns the reservation tag for structures carved by this node.
func (id NodeID) Owner() gamemap.Owner { return gamemap.Owner(id + 1) }

func ownerNode(o gamemap.Owner) NodeID { return NodeID(o - 1) }

// Node is one rectangle of the partition. Internal nodes always have two
// children.
type Node struct {
	Rect        gamemap.Rect
	Depth       int
	Left, Right NodeID
	end         NodeID // one past the last node of this subtree
}

// Tree is a binary space partition stored as an arena. Nodes are laid out
// in pre-order, so every subtree is a contiguous run of IDs and the root
// is node 0.
type Tree struct {
	Nodes []Node
}

// Root returns the root node ID.
func (t *Tree) Root() NodeID { return 0 }

// IsLeaf reports whether id has no children.
func (t *Tree) IsLeaf(id NodeID) bool { return t.Nodes[id].Left == NoNode }

// Contains reports whether id lies in the subtree rooted at ancestor.
func (t *Tree) Contains(ancestor, id NodeID) bool {
	return id >= ancestor && id < t.Nodes[ancestor].end
}

// Leaves returns the leaf IDs in pre-order.
func (t *Tree) Leaves() []NodeID {
	var out []NodeID
	for i := range t.Nodes {
		if t.IsLeaf(NodeID(i)) {
			out = append(out, NodeID(i))
		}
	}
	return out
}

// PostOrder returns every node ID with children before their parent.
func (t *Tree) PostOrder() []NodeID {
	out := make([]NodeID, 0, len(t.Nodes))
	var walk func(id NodeID)
	walk = func(id NodeID) {
		n := t.Nodes[id]
		if n.Left != NoNode {
			walk(n.Left)
			walk(n.Right)
		}
		out = append(out, id)
	}
	if len(t.Nodes) > 0 {
		walk(t.Root())
	}
	return out
}

// Depth returns the deepest node's depth.
func (t *Tree) Depth() int {
	d := 0
	for _, n := range t.Nodes {
		d = max(d, n.Depth)
	}
	return d
}

type splitAxis uint8

const (
	splitVertical   splitAxis = iota // cut across x: left and right children
	splitHorizontal                  // cut across y: top and bottom children
)

type treeBuilder struct {
	nodes     []Node
	maxDepth  int
	minSide   int
	maxAspect float64
	rng       *rand.Rand
}

// BuildTree partitions a Width×Height rectangle. The children of every
// split keep at least MinLeafSize+2*Buffer on both sides; a node that
// cannot be split that way, or sits at MaxDepth, is a leaf.
func BuildTree(cfg Config) *Tree {
	cfg = cfg.withDefaults()
	return buildTree(cfg, cfg.Rand)
}

func buildTree(cfg Config, rng *rand.Rand) *Tree {
	b := &treeBuilder{
		maxDepth:  cfg.MaxDepth,
		minSide:   cfg.minSide(),
		maxAspect: cfg.MaxAspect,
		rng:       rng,
	}
	b.build(gamemap.Rect{W: cfg.Width, H: cfg.Height}, 0)
	return &Tree{Nodes: b.nodes}
}

func (b *treeBuilder) build(r gamemap.Rect, depth int) NodeID {
	id := NodeID(len(b.nodes))
	b.nodes = append(b.nodes, Node{Rect: r, Depth: depth, Left: NoNode, Right: NoNode})
	if depth < b.maxDepth {
		if first, second, ok := b.split(r); ok {
			left := b.build(first, depth+1)
			right := b.build(second, depth+1)
			b.nodes[id].Left, b.nodes[id].Right = left, right
		}
	}
	b.nodes[id].end = NodeID(len(b.nodes))
	return id
}

func (b *treeBuilder) split(r gamemap.Rect) (gamemap.Rect, gamemap.Rect, bool) {
	for _, axis := range b.axisOrder(r) {
		extent := r.W
		if axis == splitHorizontal {
			extent = r.H
		}
		lo, hi := b.minSide, extent-b.minSide
		if hi < lo {
			continue
		}
		at := lo + b.rng.Intn(hi-lo+1)
		if axis == splitVertical {
			return gamemap.Rect{X: r.X, Y: r.Y, W: at, H: r.H},
				gamemap.Rect{X: r.X + at, Y: r.Y, W: r.W - at, H: r.H}, true
		}
		return gamemap.Rect{X: r.X, Y: r.Y, W: r.W, H: at},
			gamemap.Rect{X: r.X, Y: r.Y + at, W: r.W, H: r.H - at}, true
	}
	return gamemap.Rect{}, gamemap.Rect{}, false
}

// axisOrder lists the axes worth trying, preferred first. Cutting across
// the short side of an already elongated node is never allowed.
func (b *treeBuilder) axisOrder(r gamemap.Rect) []splitAxis {
	w, h := float64(r.W), float64(r.H)
	switch {
	case w > h*b.maxAspect:
		return []splitAxis{splitVertical}
	case h > w*b.maxAspect:
		return []splitAxis{splitHorizontal}
	case r.W > r.H:
		return []splitAxis{splitVertical, splitHorizontal}
	case r.H > r.W:
		return []splitAxis{splitHorizontal, splitVertical}
	}
	if b.rng.Intn(2) == 0 {
		return []splitAxis{splitVertical, splitHorizontal}
	}
	return []splitAxis{splitHorizontal, splitVertical}
}
