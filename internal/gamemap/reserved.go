package gamemap

// Owner tags the structure that reserved a cell. The zero Owner means the
// cell is free.
type Owner int32

// NoOwner marks an unreserved cell.
const NoOwner Owner = 0

// ReservedMask tracks cells that are carved or lie within the buffer of a
// carved structure. It has the same dimensions as the Grid it guards.
type ReservedMask struct {
	Width, Height int
	owners        []Owner
}

// NewReservedMask creates an empty mask.
func NewReservedMask(width, height int) *ReservedMask {
	return &ReservedMask{Width: width, Height: height, owners: make([]Owner, width*height)}
}

func (m *ReservedMask) bounds() Rect { return Rect{W: m.Width, H: m.Height} }

// Reserved reports whether p is reserved. Out-of-bounds cells are free.
func (m *ReservedMask) Reserved(p Point) bool { return m.OwnerAt(p) != NoOwner }

// OwnerAt returns the owner of p, or NoOwner.
func (m *ReservedMask) OwnerAt(p Point) Owner {
	if p.X < 0 || p.Y < 0 || p.X >= m.Width || p.Y >= m.Height {
		return NoOwner
	}
	return m.owners[p.Y*m.Width+p.X]
}

// ReserveCell marks p for owner. Cells already reserved keep their first owner.
func (m *ReservedMask) ReserveCell(p Point, owner Owner) {
	if p.X < 0 || p.Y < 0 || p.X >= m.Width || p.Y >= m.Height {
		return
	}
	if i := p.Y*m.Width + p.X; m.owners[i] == NoOwner {
		m.owners[i] = owner
	}
}

// Reserve marks every in-bounds cell of r for owner.
func (m *ReservedMask) Reserve(r Rect, owner Owner) {
	r = r.Clip(m.bounds())
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			m.ReserveCell(Point{X: x, Y: y}, owner)
		}
	}
}

// Collides reports whether any in-bounds cell of r is reserved by an owner
// that ignore does not accept. A nil ignore treats every owner as a collision.
func (m *ReservedMask) Collides(r Rect, ignore func(Owner) bool) bool {
	r = r.Clip(m.bounds())
	for y := r.Y; y < r.Bottom(); y++ {
		row := m.owners[y*m.Width : (y+1)*m.Width]
		for x := r.X; x < r.Right(); x++ {
			o := row[x]
			if o == NoOwner {
				continue
			}
			if ignore == nil || !ignore(o) {
				return true
			}
		}
	}
	return false
}

// Count returns the number of reserved cells.
func (m *ReservedMask) Count() int {
	n := 0
	for _, o := range m.owners {
		if o != NoOwner {
			n++
		}
	}
	return n
}
