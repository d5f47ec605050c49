package vertexmap

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/fealab/adjbound/core"
)

// ErrOutOfRange indicates a point index beyond the configured node count.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrOutOfRange struct {
	Point     core.PointIndex
	NumPoints int
}

func (e *ErrOutOfRange) Error() string {
	return fmt.Sprintf("point %d out of range: map holds %d points", e.Point, e.NumPoints)
}

// ErrFrozen indicates an attempted membership change after the map was frozen.
type ErrFrozen struct {
	Point core.PointIndex
}

func (e *ErrFrozen) Error() string {
	return fmt.Sprintf("cannot change boundary membership of point %d: vertex map is frozen", e.Point)
}

// Map classifies mesh nodes as boundary vertices and assigns each vertex a
// compact slot in marking order.
//
// Lifecycle: mark vertices with SetIsVertex, then Freeze once membership is
// final (allocating boundary storage freezes implicitly). After freezing,
// membership changes fail with ErrFrozen so that slot-keyed arrays sized from
// NumSlots stay valid.
//
// The zero value is not usable; construct with New.
type Map struct {
	numPoints int

	members  *roaring.Bitmap
	slots    []core.VertexSlot
	nextSlot core.VertexSlot
	frozen   bool
}

// New creates a Map covering numPoints global node indices, all non-vertex.
func New(numPoints int) *Map {
	slots := make([]core.VertexSlot, numPoints)
	for i := range slots {
		slots[i] = core.InvalidSlot
	}
	return &Map{
		numPoints: numPoints,
		members:   roaring.New(),
		slots:     slots,
	}
}

// SetIsVertex marks or unmarks point p as a boundary vertex.
//
// The first time p is marked it receives the next unused slot; re-marking is a
// no-op that keeps the original slot. Unmarking clears membership but retires
// the slot permanently (it is never reassigned), so storage already sized from
// NumSlots stays addressable. Any call that would change membership after
// Freeze fails with ErrFrozen.
func (m *Map) SetIsVertex(p core.PointIndex, isVertex bool) error {
	if int(p) >= m.numPoints {
		return &ErrOutOfRange{Point: p, NumPoints: m.numPoints}
	}

	if isVertex == m.members.Contains(uint32(p)) {
		return nil
	}
	if m.frozen {
		return &ErrFrozen{Point: p}
	}

	if isVertex {
		m.members.Add(uint32(p))
		if m.slots[p] == core.InvalidSlot {
			m.slots[p] = m.nextSlot
			m.nextSlot++
		}
		return nil
	}

	// The slot stays assigned (tombstoned) and is never reused.
	m.members.Remove(uint32(p))
	return nil
}

// GetIsVertex reports whether point p is currently a boundary vertex.
func (m *Map) GetIsVertex(p core.PointIndex) (bool, error) {
	if int(p) >= m.numPoints {
		return false, &ErrOutOfRange{Point: p, NumPoints: m.numPoints}
	}
	return m.members.Contains(uint32(p)), nil
}

// GetVertexIndex returns the compact slot of point p.
//
// Absence (non-vertex or out-of-range point) is reported via the boolean, not
// an error: this is the gate on every boundary accessor, where a non-vertex
// point is the common, expected case.
func (m *Map) GetVertexIndex(p core.PointIndex) (core.VertexSlot, bool) {
	if int(p) >= m.numPoints || !m.members.Contains(uint32(p)) {
		return core.InvalidSlot, false
	}
	return m.slots[p], true
}

// NumPoints returns the total node count covered by the map.
func (m *Map) NumPoints() int { return m.numPoints }

// NumVertices returns the number of points currently marked as vertices.
func (m *Map) NumVertices() int { return int(m.members.GetCardinality()) }

// NumSlots returns the number of slots ever assigned. This is the row count
// for slot-keyed storage; it only differs from NumVertices when vertices were
// unmarked before freezing (tombstoned slots).
func (m *Map) NumSlots() int { return int(m.nextSlot) }

// Freeze fixes boundary membership for the rest of the run.
// Freezing an already-frozen map is a no-op.
func (m *Map) Freeze() { m.frozen = true }

// Frozen reports whether membership is fixed.
func (m *Map) Frozen() bool { return m.frozen }
