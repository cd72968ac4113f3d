package mesh

import "github.com/gogpu/cdt/internal/geom"

// LocKind classifies where a located point fell.
type LocKind uint8

// Location classifications.
const (
	// LocInside means the point lies strictly inside the triangle's
	// region (for ghosts, the exterior wedge beyond the hull edge).
	LocInside LocKind = iota

	// LocEdge means the point lies exactly on the interior of the edge
	// opposite vertex Location.Edge.
	LocEdge

	// LocVertex means the point coincides with the existing vertex
	// Location.Vert.
	LocVertex
)

// Location is the result of point location.
type Location struct {
	Tri  TriangleID
	Kind LocKind
	Edge int
	Vert VertexID
}

// Locate finds the triangle whose region contains p by a predicate-driven
// walk from the start triangle. The walk moves across the first edge, in
// index order, that has p strictly on its far side; with exact predicates
// and a Delaunay mesh this terminates, and a step cap with an exhaustive
// fallback guards the constrained regions where the walk could cycle.
func (m *Mesh) Locate(start TriangleID, p geom.Point) Location {
	if start == None || !m.Alive(start) {
		start = m.anyLive()
	}
	t := start
	limit := 3*len(m.Tris) + 16
	for step := 0; step < limit; step++ {
		loc, moved := m.step(t, p)
		if moved == None {
			return loc
		}
		t = moved
	}
	// Fallback: exhaustive scan. Reached only on adversarial walks.
	for id := range m.Tris {
		t := TriangleID(id)
		if m.Alive(t) && m.contains(t, p) {
			if loc, moved := m.step(t, p); moved == None {
				return loc
			}
		}
	}
	return Location{Tri: None}
}

// step classifies p against t. If p is not in t's region, it returns the
// neighbor to move to; otherwise it returns the final location and None.
func (m *Mesh) step(t TriangleID, p geom.Point) (Location, TriangleID) {
	tri := &m.Tris[t]

	if tri.Kind == GhostKind {
		gi := m.ghostIndex(t)
		a := tri.V[(gi+1)%3]
		b := tri.V[(gi+2)%3]
		pa, pb := m.Pos(a), m.Pos(b)
		switch geom.Orient(pa, pb, p) {
		case geom.Clockwise:
			return Location{}, tri.N[gi]
		case geom.Collinear:
			if p.Eq(pa) {
				return Location{Tri: t, Kind: LocVertex, Vert: a}, None
			}
			if p.Eq(pb) {
				return Location{Tri: t, Kind: LocVertex, Vert: b}, None
			}
			if geom.OnSegment(pa, pb, p) {
				return Location{Tri: t, Kind: LocEdge, Edge: gi}, None
			}
			// Collinear beyond the hull edge: the adjacent ghost wedge
			// holds p. Walk along the hull.
			if p.Sub(pa).Dot(pb.Sub(pa)) < 0 {
				return Location{}, tri.N[(gi+2)%3] // wedge before a
			}
			return Location{}, tri.N[(gi+1)%3] // wedge after b
		default:
			return Location{Tri: t, Kind: LocInside}, None
		}
	}

	for k := 0; k < 3; k++ {
		if p.Eq(m.Pos(tri.V[k])) {
			return Location{Tri: t, Kind: LocVertex, Vert: tri.V[k]}, None
		}
	}
	onEdge := -1
	lineMove := None
	for k := 0; k < 3; k++ {
		a := m.Pos(tri.V[(k+1)%3])
		b := m.Pos(tri.V[(k+2)%3])
		switch geom.Orient(a, b, p) {
		case geom.Clockwise:
			return Location{}, tri.N[k]
		case geom.Collinear:
			if geom.OnSegment(a, b, p) {
				onEdge = k
			} else {
				// On the supporting line but beyond the edge: outside
				// the triangle, but only move here if no edge has p
				// strictly on its far side.
				lineMove = tri.N[k]
			}
		}
	}
	if lineMove != None {
		return Location{}, lineMove
	}
	if onEdge >= 0 {
		return Location{Tri: t, Kind: LocEdge, Edge: onEdge}, None
	}
	return Location{Tri: t, Kind: LocInside}, None
}

// anyLive returns some live triangle, preferring real ones.
func (m *Mesh) anyLive() TriangleID {
	for id := range m.Tris {
		if m.Tris[id].Kind == Real {
			return TriangleID(id)
		}
	}
	for id := range m.Tris {
		if m.Tris[id].Kind != Dead {
			return TriangleID(id)
		}
	}
	return None
}
