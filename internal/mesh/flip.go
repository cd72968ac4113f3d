package mesh

import "github.com/gogpu/cdt/internal/geom"

// Flip replaces the two triangles sharing the edge opposite vertex i of t
// with the two triangles formed by the opposite diagonal. The flip is
// valid only when the union of the two triangles is a strictly convex
// quadrilateral and neither triangle is a ghost; otherwise ErrInvalidFlip
// is returned and the mesh is unchanged.
//
// The two triangle slots are reused, so t keeps naming one of the new
// triangles.
func (m *Mesh) Flip(t TriangleID, i int) error {
	u := m.Tris[t].N[i]
	if u == None || m.IsGhost(t) || m.IsGhost(u) {
		return ErrInvalidFlip
	}
	j := m.neighborIndex(u, t)

	p := m.Tris[t].V[i]
	a := m.Tris[t].V[(i+1)%3]
	b := m.Tris[t].V[(i+2)%3]
	q := m.Tris[u].V[j]

	pp, pa, pb, pq := m.Pos(p), m.Pos(a), m.Pos(b), m.Pos(q)
	if geom.Orient(pp, pa, pq) != geom.Counterclockwise ||
		geom.Orient(pp, pq, pb) != geom.Counterclockwise {
		return ErrInvalidFlip
	}

	tBP := m.Tris[t].N[(i+1)%3]
	tPA := m.Tris[t].N[(i+2)%3]
	tAQ := m.Tris[u].N[(j+1)%3]
	tQB := m.Tris[u].N[(j+2)%3]
	iBP := m.neighborIndex(tBP, t)
	iAQ := m.neighborIndex(tAQ, u)

	kind := m.Tris[t].Kind

	m.Tris[t] = Triangle{V: [3]VertexID{p, a, q}, N: [3]TriangleID{tAQ, u, tPA}, Kind: kind}
	m.Tris[u] = Triangle{V: [3]VertexID{p, q, b}, N: [3]TriangleID{tQB, tBP, t}, Kind: kind}

	if tAQ != None {
		m.Tris[tAQ].N[iAQ] = t
	}
	if tBP != None {
		m.Tris[tBP].N[iBP] = u
	}

	m.Verts[p].T = t
	m.Verts[a].T = t
	m.Verts[q].T = t
	m.Verts[b].T = u
	return nil
}

// Legalize restores the Delaunay property around the given edges by
// Lawson flips: any unconstrained edge whose opposite vertex lies
// strictly inside the circumcircle of the adjacent triangle is flipped,
// and the four surrounding edges are re-queued. Constrained edges and
// hull edges are never flipped. Exact predicates make the strictly-inside
// test deterministic, so the process terminates.
func (m *Mesh) Legalize(edges []EdgeKey) {
	limit := 4 * len(m.Tris) * len(m.Tris)
	for n := 0; len(edges) > 0 && n < limit; n++ {
		e := edges[len(edges)-1]
		edges = edges[:len(edges)-1]

		if e[0] == Ghost || e[1] == Ghost || m.IsConstrained(e[0], e[1]) {
			continue
		}
		t, ok := m.EdgeTriangle(e[0], e[1])
		if !ok {
			continue // edge gone, removed by an earlier flip
		}
		var k int
		for k = 0; k < 3; k++ {
			if v := m.Tris[t].V[k]; v != e[0] && v != e[1] {
				break
			}
		}
		u := m.Tris[t].N[k]
		if u == None || m.IsGhost(t) || m.IsGhost(u) {
			continue
		}
		q := m.Tris[u].V[m.neighborIndex(u, t)]
		if q == Ghost {
			continue
		}

		tv := m.Tris[t].V
		if geom.InCircle(m.Pos(tv[0]), m.Pos(tv[1]), m.Pos(tv[2]), m.Pos(q)) != geom.Inside {
			continue
		}
		p := tv[k]
		a := tv[(k+1)%3]
		b := tv[(k+2)%3]
		if m.Flip(t, k) != nil {
			continue
		}
		edges = append(edges,
			Edge(a, q), Edge(q, b), Edge(b, p), Edge(p, a))
	}
}
