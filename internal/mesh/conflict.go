package mesh

// Conflicts is the incremental point-location index: it maps every
// pending (not yet inserted) vertex to the triangle whose region
// currently holds it, and each triangle to the pending vertices it
// holds. A pending vertex's triangle always has the vertex inside its
// circumcircle (a triangle's region is contained in its circumcircle),
// so the entry doubles as the cavity seed for insertion.
//
// Release must be called before a triangle slot is freed; the graph
// never holds a reference to a destroyed triangle.
type Conflicts struct {
	byTri  map[TriangleID][]VertexID
	byVert map[VertexID]TriangleID
}

// NewConflicts returns an empty conflict graph.
func NewConflicts() *Conflicts {
	return &Conflicts{
		byTri:  make(map[TriangleID][]VertexID),
		byVert: make(map[VertexID]TriangleID),
	}
}

// Register associates a pending vertex with the triangle holding it.
func (c *Conflicts) Register(v VertexID, t TriangleID) {
	c.byTri[t] = append(c.byTri[t], v)
	c.byVert[v] = t
}

// Release drops all associations of t and returns the vertices that were
// pending on it, in registration order. Called before the triangle is
// destroyed; the returned vertices must be re-registered against the
// replacement triangles only.
func (c *Conflicts) Release(t TriangleID) []VertexID {
	vs := c.byTri[t]
	delete(c.byTri, t)
	for _, v := range vs {
		delete(c.byVert, v)
	}
	return vs
}

// Drop removes a vertex from the graph once it has been inserted.
func (c *Conflicts) Drop(v VertexID) {
	t, ok := c.byVert[v]
	if !ok {
		return
	}
	delete(c.byVert, v)
	vs := c.byTri[t]
	for i, w := range vs {
		if w == v {
			c.byTri[t] = append(vs[:i], vs[i+1:]...)
			break
		}
	}
	if len(c.byTri[t]) == 0 {
		delete(c.byTri, t)
	}
}

// NextConflict returns the triangle a pending vertex is registered with,
// the starting point for cavity discovery.
func (c *Conflicts) NextConflict(v VertexID) (TriangleID, bool) {
	t, ok := c.byVert[v]
	return t, ok
}

// Empty reports whether no vertex is pending.
func (c *Conflicts) Empty() bool {
	return len(c.byVert) == 0
}
