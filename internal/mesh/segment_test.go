package mesh

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/gogpu/cdt/internal/geom"
)

func TestRecoverSegment(t *testing.T) {
	m, v := quad(t, geom.Pt(0, 0), geom.Pt(2, 0), geom.Pt(2, 2), geom.Pt(0, 2))
	b, d := v[1], v[3]

	subs, err := m.RecoverSegment(b, d)
	if err != nil {
		t.Fatalf("RecoverSegment() error = %v", err)
	}
	if len(subs) != 1 || subs[0] != [2]VertexID{b, d} {
		t.Fatalf("RecoverSegment() = %v, want [[%d %d]]", subs, b, d)
	}
	if _, ok := m.EdgeTriangle(b, d); !ok {
		t.Error("recovered edge (b, d) not in mesh")
	}
	if !m.IsConstrained(b, d) {
		t.Error("recovered edge (b, d) not constrained")
	}
	checkTopology(t, m)
	checkDelaunay(t, m)
	euler(t, m)
}

func TestRecoverExistingEdge(t *testing.T) {
	m, v := quad(t, geom.Pt(0, 0), geom.Pt(2, 0), geom.Pt(2, 2), geom.Pt(0, 2))
	a, c := v[0], v[2]

	// (a, c) is already the diagonal; recovery just constrains it.
	subs, err := m.RecoverSegment(a, c)
	if err != nil {
		t.Fatalf("RecoverSegment() error = %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("RecoverSegment() = %v, want one subsegment", subs)
	}
	if !m.IsConstrained(a, c) {
		t.Error("edge (a, c) not constrained")
	}
}

func TestRecoverCrossingConstrained(t *testing.T) {
	m, v := quad(t, geom.Pt(0, 0), geom.Pt(2, 0), geom.Pt(2, 2), geom.Pt(0, 2))
	a, b, c, d := v[0], v[1], v[2], v[3]

	if _, err := m.RecoverSegment(b, d); err != nil {
		t.Fatal(err)
	}
	// (a, c) now crosses the constrained (b, d).
	_, err := m.RecoverSegment(a, c)
	if !errors.Is(err, ErrRecovery) {
		t.Fatalf("RecoverSegment(crossing constrained) error = %v, want ErrRecovery", err)
	}
}

func TestRecoverSplitsAtCollinearVertex(t *testing.T) {
	m, v := quad(t, geom.Pt(0, 0), geom.Pt(4, 0), geom.Pt(4, 4), geom.Pt(0, 4))
	a, c := v[0], v[2]

	// Midpoint of the diagonal becomes a mesh vertex on the segment.
	mid := m.AddVertex(geom.Pt(2, 2))
	if _, err := m.Insert(mid, None, nil); err != nil {
		t.Fatal(err)
	}

	subs, err := m.RecoverSegment(a, c)
	if err != nil {
		t.Fatalf("RecoverSegment() error = %v", err)
	}
	want := [][2]VertexID{{a, mid}, {mid, c}}
	if len(subs) != 2 || subs[0] != want[0] || subs[1] != want[1] {
		t.Fatalf("RecoverSegment() = %v, want %v", subs, want)
	}
	if !m.IsConstrained(a, mid) || !m.IsConstrained(mid, c) {
		t.Error("subsegments not constrained")
	}
	checkTopology(t, m)
	euler(t, m)
}

func TestRecoverThroughManyTriangles(t *testing.T) {
	m := New()
	a := m.AddVertex(geom.Pt(0, 0))
	b := m.AddVertex(geom.Pt(10, 0))
	c := m.AddVertex(geom.Pt(10, 10))
	t0 := m.Init(a, b, c)
	d := m.AddVertex(geom.Pt(0, 10))
	if _, err := m.Insert(d, t0, nil); err != nil {
		t.Fatal(err)
	}

	rng := rand.New(rand.NewPCG(7, 0))
	for i := 0; i < 60; i++ {
		p := geom.Pt(0.5+9*rng.Float64(), 0.5+9*rng.Float64())
		v := m.AddVertex(p)
		if _, err := m.Insert(v, None, nil); err != nil {
			t.Fatal(err)
		}
	}

	subs, err := m.RecoverSegment(a, c)
	if err != nil {
		t.Fatalf("RecoverSegment() error = %v", err)
	}
	if subs[0][0] != a || subs[len(subs)-1][1] != c {
		t.Errorf("subsegments %v do not span (%d, %d)", subs, a, c)
	}
	for i := 0; i+1 < len(subs); i++ {
		if subs[i][1] != subs[i+1][0] {
			t.Errorf("subsegments not contiguous at %d: %v", i, subs)
		}
	}
	for _, s := range subs {
		if !m.IsConstrained(s[0], s[1]) {
			t.Errorf("subsegment %v not constrained", s)
		}
		if _, ok := m.EdgeTriangle(s[0], s[1]); !ok {
			t.Errorf("subsegment %v not a mesh edge", s)
		}
	}
	checkTopology(t, m)
	checkDelaunay(t, m)
	euler(t, m)
}

func TestRecoverAcrossRandomMeshes(t *testing.T) {
	// Small dense meshes routinely produce crossing sequences where the
	// first crossed edge sits in a non-convex quadrilateral and can only
	// be flipped after its neighbors; recovery must work through them
	// instead of retrying the same flip pair.
	for _, seed := range []uint64{1, 2, 3, 12} {
		m := New()
		a := m.AddVertex(geom.Pt(0, 0))
		b := m.AddVertex(geom.Pt(10, 0))
		c := m.AddVertex(geom.Pt(10, 10))
		t0 := m.Init(a, b, c)
		d := m.AddVertex(geom.Pt(0, 10))
		if _, err := m.Insert(d, t0, nil); err != nil {
			t.Fatal(err)
		}

		rng := rand.New(rand.NewPCG(seed, 0))
		for i := 0; i < 12; i++ {
			p := geom.Pt(0.5+9*rng.Float64(), 0.5+9*rng.Float64())
			v := m.AddVertex(p)
			if _, err := m.Insert(v, None, nil); err != nil {
				t.Fatal(err)
			}
		}

		subs, err := m.RecoverSegment(a, c)
		if err != nil {
			t.Fatalf("seed %d: RecoverSegment() error = %v", seed, err)
		}
		if subs[0][0] != a || subs[len(subs)-1][1] != c {
			t.Errorf("seed %d: subsegments %v do not span (%d, %d)", seed, subs, a, c)
		}
		for _, s := range subs {
			if _, ok := m.EdgeTriangle(s[0], s[1]); !ok {
				t.Errorf("seed %d: subsegment %v not a mesh edge", seed, s)
			}
		}
		checkTopology(t, m)
		checkDelaunay(t, m)
		euler(t, m)
	}
}

func TestSplitEdge(t *testing.T) {
	m, v := quad(t, geom.Pt(0, 0), geom.Pt(2, 0), geom.Pt(2, 2), geom.Pt(0, 2))
	a, c := v[0], v[2]
	if _, err := m.RecoverSegment(a, c); err != nil {
		t.Fatal(err)
	}

	w, err := m.SplitEdge(a, c, geom.Pt(1, 1))
	if err != nil {
		t.Fatalf("SplitEdge() error = %v", err)
	}
	if m.IsConstrained(a, c) {
		t.Error("split edge (a, c) still constrained")
	}
	if !m.IsConstrained(a, w) || !m.IsConstrained(w, c) {
		t.Error("halves not constrained after split")
	}
	if m.Verts[w].SegEnds != 2 {
		t.Errorf("SegEnds(w) = %d, want 2", m.Verts[w].SegEnds)
	}
	checkTopology(t, m)
	euler(t, m)
}
