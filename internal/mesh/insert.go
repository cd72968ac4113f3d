package mesh

import "github.com/gogpu/cdt/internal/geom"

// Bowyer-Watson incremental insertion: locate the triangle holding the
// new point, grow the cavity of conflicting triangles by breadth-first
// traversal over neighbor links, remove it, and fan new triangles from
// the cavity rim to the new vertex.

// rimEdge is one directed edge of the cavity boundary, recorded before
// the cavity triangles are destroyed.
type rimEdge struct {
	u, v     VertexID
	outer    TriangleID
	outerIdx int
	kind     Kind
}

// Insert locates p starting from the given triangle and inserts vertex v
// there. The conflict graph may be nil when no vertices are pending.
// Returns ErrDuplicate if v coincides with an existing vertex; the mesh
// is unchanged in that case.
func (m *Mesh) Insert(v VertexID, start TriangleID, con *Conflicts) (Location, error) {
	loc := m.Locate(start, m.Pos(v))
	return m.InsertLocated(v, loc, con)
}

// InsertLocated inserts vertex v at a location already resolved by
// Locate. The cavity is seeded with the located triangle; for an on-edge
// location both triangles sharing the edge are seeded unconditionally to
// preserve planarity.
func (m *Mesh) InsertLocated(v VertexID, loc Location, con *Conflicts) (Location, error) {
	if loc.Tri == None {
		return loc, ErrNoTriangle
	}
	if loc.Kind == LocVertex {
		return loc, ErrDuplicate
	}
	p := m.Pos(v)

	cavity := make(map[TriangleID]bool, 8)
	queue := make([]TriangleID, 0, 8)
	cavity[loc.Tri] = true
	queue = append(queue, loc.Tri)
	if loc.Kind == LocEdge {
		if n := m.Tris[loc.Tri].N[loc.Edge]; n != None && !cavity[n] {
			cavity[n] = true
			queue = append(queue, n)
		}
	}

	// Grow: expansion stops at constrained edges and at edges whose far
	// triangle does not conflict with p.
	for qi := 0; qi < len(queue); qi++ {
		t := queue[qi]
		tri := m.Tris[t]
		for k := 0; k < 3; k++ {
			n := tri.N[k]
			if n == None || cavity[n] {
				continue
			}
			if m.IsConstrained(tri.V[(k+1)%3], tri.V[(k+2)%3]) {
				continue
			}
			if m.conflicts(n, p) {
				cavity[n] = true
				queue = append(queue, n)
			}
		}
	}

	// Record the rim before destroying anything.
	var rims []rimEdge
	for _, t := range queue {
		tri := m.Tris[t]
		for k := 0; k < 3; k++ {
			n := tri.N[k]
			if n != None && cavity[n] {
				continue
			}
			rims = append(rims, rimEdge{
				u:        tri.V[(k+1)%3],
				v:        tri.V[(k+2)%3],
				outer:    n,
				outerIdx: m.neighborIndex(n, t),
				kind:     tri.Kind,
			})
		}
	}

	// Destroy the cavity, collecting pending vertices orphaned by it.
	var orphans []VertexID
	for _, t := range queue {
		if con != nil {
			orphans = append(orphans, con.Release(t)...)
		}
		m.freeTriangle(t)
	}

	// One new triangle per rim edge, all incident to v. Non-ghost
	// triangles inherit the real/hole classification of the cavity
	// triangle that contributed their rim edge. A ghost contributor
	// passes nothing on: its hull edge becomes an ordinary interior
	// edge of the grown hull, so the new triangle keeps the Real kind
	// set by addTriangle.
	byFirst := make(map[VertexID]TriangleID, len(rims))
	created := make([]TriangleID, 0, len(rims))
	for _, r := range rims {
		nt := m.addTriangle(r.u, r.v, v)
		if m.Tris[nt].Kind != GhostKind && r.kind != GhostKind {
			m.Tris[nt].Kind = r.kind
		}
		if r.outer != None {
			m.link(nt, 2, r.outer, r.outerIdx)
		}
		byFirst[r.u] = nt
		created = append(created, nt)
	}
	for _, nt := range created {
		next := byFirst[m.Tris[nt].V[1]]
		m.Tris[nt].N[0] = next
		m.Tris[next].N[1] = nt
	}

	// Orphans are re-tested against the new triangles only: each lay
	// inside the cavity region, which the fan now covers.
	if con != nil {
		con.Drop(v)
		for _, w := range orphans {
			if w == v {
				continue
			}
			home := created[0]
			for _, nt := range created {
				if m.contains(nt, m.Pos(w)) {
					home = nt
					break
				}
			}
			con.Register(w, home)
		}
	}
	return loc, nil
}

// SplitEdge inserts p as a new vertex on the constrained edge (u, v) and
// replaces the constraint with the two halves (u, w) and (w, v), where w
// is the new vertex. The location is built from the edge itself rather
// than a walk, so p may deviate from the exact segment by floating-point
// rounding.
func (m *Mesh) SplitEdge(u, v VertexID, p geom.Point) (VertexID, error) {
	loc, ok := m.EdgeLocation(u, v)
	if !ok {
		return 0, ErrNoTriangle
	}
	w := m.AddVertex(p)
	if _, err := m.InsertLocated(w, loc, nil); err != nil {
		m.Verts = m.Verts[:len(m.Verts)-1]
		return 0, err
	}
	m.Unconstrain(u, v)
	m.Constrain(u, w)
	m.Constrain(w, v)
	return w, nil
}

// neighborIndex returns the edge index of n that faces t, or -1.
func (m *Mesh) neighborIndex(n, t TriangleID) int {
	if n == None {
		return -1
	}
	for j, b := range m.Tris[n].N {
		if b == t {
			return j
		}
	}
	return -1
}
