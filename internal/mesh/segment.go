package mesh

import (
	"errors"

	"github.com/gogpu/cdt/internal/geom"
)

// ErrRecovery is reported when a required segment cannot be recovered,
// which happens when it crosses another constrained segment or the input
// is otherwise self-intersecting.
var ErrRecovery = errors.New("cdt: segment recovery failed")

// maxSplitDepth bounds recursion when a segment is split at mesh
// vertices lying exactly on it.
const maxSplitDepth = 64

// RecoverSegment forces the segment (a, b) to appear as mesh edges by
// flipping the edges it crosses. Mesh vertices lying exactly on the
// segment split it; the returned pairs are the recovered subsegments in
// order from a to b. Each subsegment is marked constrained and the
// neighborhood disturbed by the flips is re-legalized.
func (m *Mesh) RecoverSegment(a, b VertexID) ([][2]VertexID, error) {
	if a == b || a == Ghost || b == Ghost {
		return nil, ErrRecovery
	}
	var touched []EdgeKey
	subs, err := m.recover(a, b, &touched, 0)
	if err != nil {
		return nil, err
	}
	for _, s := range subs {
		m.Constrain(s[0], s[1])
	}
	m.Legalize(touched)
	return subs, nil
}

func (m *Mesh) recover(a, b VertexID, touched *[]EdgeKey, depth int) ([][2]VertexID, error) {
	if depth > maxSplitDepth {
		return nil, ErrRecovery
	}
	if _, ok := m.EdgeTriangle(a, b); ok {
		return [][2]VertexID{{a, b}}, nil
	}

	cross, split, err := m.crossings(a, b)
	if err != nil {
		return nil, err
	}
	if split != Ghost {
		// A vertex lies exactly on the segment: recover both halves.
		left, err := m.recover(a, split, touched, depth+1)
		if err != nil {
			return nil, err
		}
		right, err := m.recover(split, b, touched, depth+1)
		if err != nil {
			return nil, err
		}
		return append(left, right...), nil
	}

	// Work through the crossing edges as a queue. An edge whose
	// quadrilateral is not yet convex goes to the back; flipping its
	// neighbors eventually frees it. A flipped-in diagonal that still
	// crosses the segment is re-enqueued. The number of crossings
	// strictly decreases with every flip that removes one, so the loop
	// terminates on valid input.
	pa, pb := m.Pos(a), m.Pos(b)
	queue := cross
	deferred := 0
	for len(queue) > 0 {
		if deferred > len(queue) {
			// Every remaining edge is stuck: the constraint cannot be
			// realized by flips alone.
			return nil, ErrRecovery
		}
		e := queue[0]
		queue = queue[1:]
		if m.IsConstrained(e[0], e[1]) {
			return nil, ErrRecovery
		}
		t, ok := m.EdgeTriangle(e[0], e[1])
		if !ok {
			continue
		}
		var k int
		for k = 0; k < 3; k++ {
			if v := m.Tris[t].V[k]; v != e[0] && v != e[1] {
				break
			}
		}
		u := m.Tris[t].N[k]
		if u == None {
			return nil, ErrRecovery
		}
		s := m.Tris[t].V[k]
		q := m.Tris[u].V[m.neighborIndex(u, t)]
		if m.Flip(t, k) != nil {
			queue = append(queue, e)
			deferred++
			continue
		}
		deferred = 0
		*touched = append(*touched,
			Edge(s, e[0]), Edge(e[0], q), Edge(q, e[1]), Edge(e[1], s), Edge(s, q))
		if geom.SegmentsCross(pa, pb, m.Pos(s), m.Pos(q)) {
			queue = append(queue, Edge(s, q))
		}
	}

	if _, ok := m.EdgeTriangle(a, b); !ok {
		return nil, ErrRecovery
	}
	return [][2]VertexID{{a, b}}, nil
}

// crossings walks the triangles pierced by segment (a, b) and returns the
// crossed edges in order. If a mesh vertex lies exactly on the open
// segment, it is returned as split instead (the caller divides there).
func (m *Mesh) crossings(a, b VertexID) (cross []EdgeKey, split VertexID, err error) {
	pa, pb := m.Pos(a), m.Pos(b)

	// Find the triangle at a whose cone contains the direction to b.
	start, l, r, split, err := m.coneAt(a, b)
	if err != nil || split != Ghost {
		return nil, split, err
	}

	cross = append(cross, Edge(l, r))
	t := start
	for range m.Tris {
		// Step across the current crossing edge (l, r).
		k := m.indexOf(t, m.apexOf(t, l, r))
		next := m.Tris[t].N[k]
		if next == None || m.IsGhost(next) {
			return nil, Ghost, ErrRecovery
		}
		t = next
		w := m.apexOf(t, l, r)
		if w == b {
			return cross, Ghost, nil
		}
		pw := m.Pos(w)
		switch geom.Orient(pa, pb, pw) {
		case geom.Collinear:
			if geom.OnSegment(pa, pb, pw) {
				return nil, w, nil
			}
			return nil, Ghost, ErrRecovery
		case geom.Counterclockwise:
			l = w
		default:
			r = w
		}
		cross = append(cross, Edge(l, r))
	}
	return nil, Ghost, ErrRecovery
}

// coneAt finds the triangle incident to a whose angular wedge contains
// the direction from a to b. It returns the wedge triangle and the
// left/right vertices of its far edge relative to the directed line
// a->b, or a split vertex when a neighbor of a lies exactly on the
// segment.
func (m *Mesh) coneAt(a, b VertexID) (t TriangleID, l, r VertexID, split VertexID, err error) {
	pa, pb := m.Pos(a), m.Pos(b)
	start := m.Verts[a].T
	if start == None || !m.Alive(start) {
		return None, Ghost, Ghost, Ghost, ErrRecovery
	}
	t = start
	for {
		if !m.IsGhost(t) {
			k := m.indexOf(t, a)
			x := m.Tris[t].V[(k+1)%3]
			y := m.Tris[t].V[(k+2)%3]
			px, py := m.Pos(x), m.Pos(y)

			if geom.Orient(pa, px, pb) == geom.Collinear && pb.Sub(pa).Dot(px.Sub(pa)) > 0 {
				return None, Ghost, Ghost, x, nil
			}
			if geom.Orient(pa, py, pb) == geom.Collinear && pb.Sub(pa).Dot(py.Sub(pa)) > 0 {
				return None, Ghost, Ghost, y, nil
			}
			if geom.Orient(pa, px, pb) == geom.Counterclockwise &&
				geom.Orient(pa, py, pb) == geom.Clockwise {
				// x is right of a->b, y is left.
				return t, y, x, Ghost, nil
			}
		}
		k := m.indexOf(t, a)
		t = m.Tris[t].N[(k+2)%3]
		if t == start || t == None {
			return None, Ghost, Ghost, Ghost, ErrRecovery
		}
	}
}

// apexOf returns the vertex of t that is neither u nor v.
func (m *Mesh) apexOf(t TriangleID, u, v VertexID) VertexID {
	for _, w := range m.Tris[t].V {
		if w != u && w != v {
			return w
		}
	}
	return Ghost
}
