package mesh

import (
	"errors"
	"testing"

	"github.com/gogpu/cdt/internal/geom"
)

// quad builds the triangulation of four points: the initial triangle
// (a, b, c) plus d inserted, with the Delaunay diagonal.
func quad(t *testing.T, pa, pb, pc, pd geom.Point) (*Mesh, [4]VertexID) {
	t.Helper()
	m := New()
	a := m.AddVertex(pa)
	b := m.AddVertex(pb)
	c := m.AddVertex(pc)
	t0 := m.Init(a, b, c)
	d := m.AddVertex(pd)
	if _, err := m.Insert(d, t0, nil); err != nil {
		t.Fatalf("Insert(d) error = %v", err)
	}
	return m, [4]VertexID{a, b, c, d}
}

// flipDiagonal flips the edge (u, v), which must exist.
func flipDiagonal(t *testing.T, m *Mesh, u, v VertexID) error {
	t.Helper()
	tr, ok := m.EdgeTriangle(u, v)
	if !ok {
		t.Fatalf("edge (%d, %d) not in mesh", u, v)
	}
	k := m.indexOf(tr, m.Apex(tr, u, v))
	return m.Flip(tr, k)
}

func TestFlip(t *testing.T) {
	m, v := quad(t, geom.Pt(0, 0), geom.Pt(2, 0), geom.Pt(2, 2), geom.Pt(0, 2))
	a, b, c, d := v[0], v[1], v[2], v[3]

	if _, ok := m.EdgeTriangle(a, c); !ok {
		t.Fatal("expected diagonal (a, c) after construction")
	}
	if err := flipDiagonal(t, m, a, c); err != nil {
		t.Fatalf("Flip() error = %v", err)
	}
	if _, ok := m.EdgeTriangle(a, c); ok {
		t.Error("diagonal (a, c) still present after flip")
	}
	if _, ok := m.EdgeTriangle(b, d); !ok {
		t.Error("diagonal (b, d) missing after flip")
	}
	checkTopology(t, m)
	euler(t, m)
}

func TestFlipHullEdge(t *testing.T) {
	m := New()
	a := m.AddVertex(geom.Pt(0, 0))
	b := m.AddVertex(geom.Pt(1, 0))
	c := m.AddVertex(geom.Pt(1, 1))
	t0 := m.Init(a, b, c)

	// Every edge of the only real triangle is a hull edge.
	for k := 0; k < 3; k++ {
		if err := m.Flip(t0, k); !errors.Is(err, ErrInvalidFlip) {
			t.Errorf("Flip(hull edge %d) error = %v, want ErrInvalidFlip", k, err)
		}
	}
}

func TestFlipNonConvex(t *testing.T) {
	m := New()
	a := m.AddVertex(geom.Pt(0, 0))
	b := m.AddVertex(geom.Pt(4, 0))
	c := m.AddVertex(geom.Pt(2, 3))
	t0 := m.Init(a, b, c)
	p := m.AddVertex(geom.Pt(2, 1))
	if _, err := m.Insert(p, t0, nil); err != nil {
		t.Fatal(err)
	}

	// The union of the triangles flanking (b, p) is reflex at p.
	if err := flipDiagonal(t, m, b, p); !errors.Is(err, ErrInvalidFlip) {
		t.Errorf("Flip(reflex quad) error = %v, want ErrInvalidFlip", err)
	}
	checkTopology(t, m)
}

func TestLegalize(t *testing.T) {
	// d lies outside the circumcircle of (a, b, c), so (a, c) is the
	// Delaunay diagonal. Flipping it by hand makes the pair illegal;
	// Legalize must flip it back.
	m, v := quad(t, geom.Pt(0, 0), geom.Pt(4, 0), geom.Pt(4, 1), geom.Pt(1, 3))
	a, b, c, d := v[0], v[1], v[2], v[3]

	if _, ok := m.EdgeTriangle(a, c); !ok {
		t.Fatal("expected Delaunay diagonal (a, c)")
	}
	if err := flipDiagonal(t, m, a, c); err != nil {
		t.Fatalf("Flip() error = %v", err)
	}

	m.Legalize([]EdgeKey{Edge(b, d)})

	if _, ok := m.EdgeTriangle(a, c); !ok {
		t.Error("Legalize did not restore the Delaunay diagonal")
	}
	checkTopology(t, m)
	checkDelaunay(t, m)
}

func TestLegalizeKeepsConstrained(t *testing.T) {
	m, v := quad(t, geom.Pt(0, 0), geom.Pt(4, 0), geom.Pt(4, 1), geom.Pt(1, 3))
	a, _, c, _ := v[0], v[1], v[2], v[3]

	if err := flipDiagonal(t, m, a, c); err != nil {
		t.Fatal(err)
	}
	// The illegal diagonal is now constrained; Legalize must leave it.
	bd := Edge(v[1], v[3])
	m.Constrain(bd[0], bd[1])
	m.Legalize([]EdgeKey{bd})

	if _, ok := m.EdgeTriangle(bd[0], bd[1]); !ok {
		t.Error("Legalize flipped a constrained edge")
	}
}
