package generate

import (
	"math/rand"

	"dungeon-map/internal/gamemap"
)

// Room is a carved rectangle and the leaf it belongs to.
type Room struct {
	Leaf NodeID
	Rect gamemap.Rect
}

// Anchor is a room center used as a corridor endpoint. Room is the owner
// tag of the room the center belongs to, which stays the same as the
// anchor is passed up the tree.
type Anchor struct {
	gamemap.Point
	Room gamemap.Owner
}

// carveRoom tries to place one room inside leaf so that the room plus
// its buffer stays within the leaf and clear of anything reserved.
// It reports false when the leaf is too small or every attempt collided.
func carveRoom(grid *gamemap.Grid, mask *gamemap.ReservedMask, leaf gamemap.Rect, owner gamemap.Owner, minSize, buf int, rng *rand.Rand) (gamemap.Rect, bool) {
	x1Min, y1Min := leaf.X+buf, leaf.Y+buf
	x1Max := leaf.Right() - minSize - buf
	y1Max := leaf.Bottom() - minSize - buf
	if x1Max < x1Min || y1Max < y1Min {
		return gamemap.Rect{}, false
	}
	for range RoomAttempts {
		x1 := x1Min + rng.Intn(x1Max-x1Min+1)
		y1 := y1Min + rng.Intn(y1Max-y1Min+1)
		wMax := leaf.Right() - x1 - buf
		hMax := leaf.Bottom() - y1 - buf
		room := gamemap.Rect{
			X: x1,
			Y: y1,
			W: minSize + rng.Intn(wMax-minSize+1),
			H: minSize + rng.Intn(hMax-minSize+1),
		}
		margin := room.Expand(buf)
		if mask.Collides(margin, nil) {
			continue
		}
		grid.CarveRect(room)
		mask.Reserve(margin, owner)
		return room, true
	}
	return gamemap.Rect{}, false
}
