// Package mesh implements the triangulation data structure: an
// index-addressed arena of vertices and triangles with the ghost-triangle
// boundary convention, plus the point-location walk, the conflict graph,
// Bowyer-Watson cavity insertion, edge flipping and constrained segment
// recovery.
//
// Every triangle has exactly three neighbors at all times. Edges of the
// convex hull are bounded by ghost triangles that share the single ghost
// vertex (index 0, the point at infinity), so the insertion and flip
// algorithms have no hull special cases. Ghost triangles are never
// Delaunay-tested against their ghost vertex and never reported to
// callers.
package mesh

import (
	"errors"

	"github.com/gogpu/cdt/internal/geom"
)

// VertexID indexes a vertex in the arena. Index 0 is the ghost vertex.
type VertexID int32

// TriangleID indexes a triangle slot in the arena.
type TriangleID int32

// Ghost is the shared point-at-infinity vertex bounding the exterior.
const Ghost VertexID = 0

// None marks an unset triangle reference.
const None TriangleID = -1

// Kind classifies a triangle slot.
type Kind uint8

// Triangle classifications. Dead slots are free for reuse. Hole marks
// triangles outside the outer boundary or inside a hole ring; they are
// retained for structural consistency but excluded from output.
const (
	Dead Kind = iota
	Real
	GhostKind
	Hole
)

// Errors reported by the structural operations.
var (
	// ErrInvalidFlip is reported when an edge flip is requested for a
	// quadrilateral that is not strictly convex, or for a hull edge.
	ErrInvalidFlip = errors.New("cdt: invalid edge flip")

	// ErrDuplicate is reported when an inserted point coincides with an
	// existing vertex.
	ErrDuplicate = errors.New("cdt: duplicate point")

	// ErrNoTriangle is reported when point location fails outright,
	// which only happens on a mesh with no live triangles.
	ErrNoTriangle = errors.New("cdt: point location failed")
)

// Vertex is an arena vertex.
type Vertex struct {
	P geom.Point

	// Steiner marks vertices introduced by refinement rather than input.
	Steiner bool

	// SegEnds counts the constrained segments terminating at the vertex.
	SegEnds int32

	// T is some live triangle incident to the vertex, the entry point
	// for circulation. Maintained by triangle creation.
	T TriangleID
}

// Triangle is an arena triangle. V holds the vertices in counterclockwise
// winding; N[i] is the neighbor across the edge opposite V[i], that is
// the edge (V[i+1], V[i+2]).
type Triangle struct {
	V    [3]VertexID
	N    [3]TriangleID
	Kind Kind
}

// EdgeKey is an unordered vertex pair identifying an edge.
type EdgeKey [2]VertexID

// Edge returns the canonical key for the edge (u, v).
func Edge(u, v VertexID) EdgeKey {
	if u > v {
		u, v = v, u
	}
	return EdgeKey{u, v}
}

// Mesh owns the vertex and triangle arenas and the constrained-edge set.
type Mesh struct {
	Verts []Vertex
	Tris  []Triangle

	free        []TriangleID
	constrained map[EdgeKey]struct{}
}

// New returns an empty mesh holding only the ghost vertex.
func New() *Mesh {
	return &Mesh{
		Verts:       []Vertex{{T: None}},
		constrained: make(map[EdgeKey]struct{}),
	}
}

// AddVertex appends a vertex to the arena and returns its id.
func (m *Mesh) AddVertex(p geom.Point) VertexID {
	m.Verts = append(m.Verts, Vertex{P: p, T: None})
	return VertexID(len(m.Verts) - 1)
}

// Pos returns the coordinates of v, which must not be the ghost vertex.
func (m *Mesh) Pos(v VertexID) geom.Point {
	return m.Verts[v].P
}

// Alive reports whether the triangle slot holds a live triangle.
func (m *Mesh) Alive(t TriangleID) bool {
	return t != None && m.Tris[t].Kind != Dead
}

// IsGhost reports whether the triangle contains the ghost vertex.
func (m *Mesh) IsGhost(t TriangleID) bool {
	return m.Tris[t].Kind == GhostKind
}

// ghostIndex returns the index of the ghost vertex within t, or -1.
func (m *Mesh) ghostIndex(t TriangleID) int {
	for i, v := range m.Tris[t].V {
		if v == Ghost {
			return i
		}
	}
	return -1
}

// indexOf returns the index of vertex v within triangle t, or -1.
func (m *Mesh) indexOf(t TriangleID, v VertexID) int {
	for i, w := range m.Tris[t].V {
		if w == v {
			return i
		}
	}
	return -1
}

// addTriangle allocates a triangle (u, v, w), classifying it as ghost if
// any vertex is the ghost vertex. Neighbors are left unset; callers link
// them. The incident-triangle hint of each vertex is updated.
func (m *Mesh) addTriangle(u, v, w VertexID) TriangleID {
	tri := Triangle{V: [3]VertexID{u, v, w}, N: [3]TriangleID{None, None, None}, Kind: Real}
	if u == Ghost || v == Ghost || w == Ghost {
		tri.Kind = GhostKind
	}

	var t TriangleID
	if n := len(m.free); n > 0 {
		t = m.free[n-1]
		m.free = m.free[:n-1]
		m.Tris[t] = tri
	} else {
		m.Tris = append(m.Tris, tri)
		t = TriangleID(len(m.Tris) - 1)
	}

	m.Verts[u].T = t
	m.Verts[v].T = t
	m.Verts[w].T = t
	return t
}

// freeTriangle invalidates a slot and queues it for reuse. The conflict
// graph must have released the triangle first.
func (m *Mesh) freeTriangle(t TriangleID) {
	m.Tris[t].Kind = Dead
	m.Tris[t].N = [3]TriangleID{None, None, None}
	m.free = append(m.free, t)
}

// link makes t and u mutual neighbors: t across its edge i, u across its
// edge j.
func (m *Mesh) link(t TriangleID, i int, u TriangleID, j int) {
	m.Tris[t].N[i] = u
	m.Tris[u].N[j] = t
}

// Constrain marks the edge (u, v) as a constrained segment edge and
// updates the endpoint segment counts.
func (m *Mesh) Constrain(u, v VertexID) {
	e := Edge(u, v)
	if _, ok := m.constrained[e]; ok {
		return
	}
	m.constrained[e] = struct{}{}
	m.Verts[u].SegEnds++
	m.Verts[v].SegEnds++
}

// Unconstrain removes the constraint mark from the edge (u, v).
func (m *Mesh) Unconstrain(u, v VertexID) {
	e := Edge(u, v)
	if _, ok := m.constrained[e]; !ok {
		return
	}
	delete(m.constrained, e)
	m.Verts[u].SegEnds--
	m.Verts[v].SegEnds--
}

// IsConstrained reports whether the edge (u, v) is constrained.
func (m *Mesh) IsConstrained(u, v VertexID) bool {
	_, ok := m.constrained[Edge(u, v)]
	return ok
}

// EdgeTriangle returns the triangle carrying the directed edge u->v,
// found by circulating around u. The second result is false when no such
// edge exists in the mesh.
func (m *Mesh) EdgeTriangle(u, v VertexID) (TriangleID, bool) {
	start := m.Verts[u].T
	if start == None || !m.Alive(start) {
		return None, false
	}
	t := start
	for {
		k := m.indexOf(t, u)
		if m.Tris[t].V[(k+1)%3] == v {
			return t, true
		}
		// Rotate around u across the edge (u, V[k+1]).
		t = m.Tris[t].N[(k+2)%3]
		if t == start || t == None {
			return None, false
		}
	}
}

// EdgeLocation returns an on-edge Location for the mesh edge (u, v),
// suitable for InsertLocated. Used to split an edge at a point computed
// in floating point: the point may be off the supporting line by a
// rounding error, so a location walk must not be trusted to find it.
func (m *Mesh) EdgeLocation(u, v VertexID) (Location, bool) {
	t, ok := m.EdgeTriangle(u, v)
	if !ok {
		return Location{Tri: None}, false
	}
	for k := 0; k < 3; k++ {
		if w := m.Tris[t].V[k]; w != u && w != v {
			return Location{Tri: t, Kind: LocEdge, Edge: k}, true
		}
	}
	return Location{Tri: None}, false
}

// Apex returns the vertex of t opposite the edge (u, v), which must be a
// directed edge of t.
func (m *Mesh) Apex(t TriangleID, u, v VertexID) VertexID {
	for i, w := range m.Tris[t].V {
		if w != u && w != v {
			return m.Tris[t].V[i]
		}
	}
	return Ghost
}

// Init builds the first real triangle from three vertices in
// counterclockwise order, together with the three ghost triangles closing
// the initial hull.
func (m *Mesh) Init(a, b, c VertexID) TriangleID {
	t := m.addTriangle(a, b, c)
	g0 := m.addTriangle(b, a, Ghost)
	g1 := m.addTriangle(c, b, Ghost)
	g2 := m.addTriangle(a, c, Ghost)

	m.link(t, 0, g1, 2) // edge (b, c)
	m.link(t, 1, g2, 2) // edge (c, a)
	m.link(t, 2, g0, 2) // edge (a, b)

	m.link(g0, 0, g2, 1) // ghost edges at a
	m.link(g0, 1, g1, 0) // ghost edges at b
	m.link(g1, 1, g2, 0) // ghost edges at c
	return t
}

// conflicts reports whether p lies inside the conflict region of t: for a
// real triangle, strictly inside its circumcircle; for a ghost triangle,
// strictly beyond its hull edge or exactly on the closed hull edge. The
// ghost vertex is never part of a geometric test.
func (m *Mesh) conflicts(t TriangleID, p geom.Point) bool {
	tri := &m.Tris[t]
	if tri.Kind == GhostKind {
		gi := m.ghostIndex(t)
		a := m.Pos(tri.V[(gi+1)%3])
		b := m.Pos(tri.V[(gi+2)%3])
		switch geom.Orient(a, b, p) {
		case geom.Counterclockwise:
			return true
		case geom.Collinear:
			return geom.OnSegment(a, b, p)
		default:
			return false
		}
	}
	a := m.Pos(tri.V[0])
	b := m.Pos(tri.V[1])
	c := m.Pos(tri.V[2])
	return geom.InCircle(a, b, c, p) == geom.Inside
}

// contains reports whether p lies in the closed region attributed to t:
// the triangle itself for real triangles, the exterior wedge beyond the
// hull edge for ghosts.
func (m *Mesh) contains(t TriangleID, p geom.Point) bool {
	tri := &m.Tris[t]
	if tri.Kind == GhostKind {
		gi := m.ghostIndex(t)
		a := m.Pos(tri.V[(gi+1)%3])
		b := m.Pos(tri.V[(gi+2)%3])
		o := geom.Orient(a, b, p)
		return o == geom.Counterclockwise || (o == geom.Collinear && geom.OnSegment(a, b, p))
	}
	for k := 0; k < 3; k++ {
		a := m.Pos(tri.V[(k+1)%3])
		b := m.Pos(tri.V[(k+2)%3])
		if geom.Orient(a, b, p) == geom.Clockwise {
			return false
		}
	}
	return true
}
