package cdt

import (
	"iter"
	"math"
	"math/rand/v2"

	"github.com/gogpu/cdt/internal/geom"
	"github.com/gogpu/cdt/internal/mesh"
)

// VertexID identifies a vertex of the triangulation. IDs are stable for
// the lifetime of the mesh; vertices are never removed.
type VertexID int32

// Triangle is one interior triangle of the triangulation, vertices in
// counterclockwise order.
type Triangle struct {
	A, B, C Point

	// IsBoundary is true when at least one edge of the triangle is a
	// constrained segment. Such triangles are exempt from the angle
	// bound during refinement when the input forces their shape.
	IsBoundary bool
}

// Stats summarizes the current state of a mesh.
type Stats struct {
	// Vertices is the total vertex count, input and Steiner.
	Vertices int

	// Triangles counts interior triangles, the ones Triangles yields.
	Triangles int

	// Segments counts constrained subsegments, including ring edges and
	// the halves produced by splits.
	Segments int

	// Steiner counts the vertices introduced by refinement or segment
	// splitting rather than by the caller.
	Steiner int

	// MinAngle is the smallest interior angle over all interior
	// triangles, in degrees. Zero when the mesh has no triangles.
	MinAngle float64
}

// segment is one constrained subsegment, kept in recovery order so
// splits and encroachment checks are deterministic.
type segment struct {
	a, b mesh.VertexID
}

// Mesh is a constrained Delaunay triangulation of a polygonal domain:
// an outer boundary polygon with optional hole polygons, all of whose
// edges appear as constrained mesh edges. Build one with New, then add
// vertices and segments or run Refine.
//
// A Mesh is not safe for concurrent use.
type Mesh struct {
	m    *mesh.Mesh
	segs []segment

	// last is the most recently touched triangle, used to start point
	// location near previous activity.
	last mesh.TriangleID
}

// randSeed fixes the insertion shuffle so identical input always
// produces the identical mesh.
const randSeed = 0x9e3779b97f4a7c15

// New triangulates the domain bounded by the boundary polygon minus the
// hole polygons. Rings may wind either way; they are normalized
// internally. The boundary must be a simple polygon with at least three
// vertices ([ErrInvalidBoundary] otherwise), and every hole must be a
// simple polygon strictly inside the boundary and disjoint from the
// other holes ([ErrHoleOutsideBoundary]).
//
// The result is the constrained Delaunay triangulation of the ring
// vertices: every ring edge is a constrained mesh edge, and every
// triangle's circumcircle is empty of vertices visible to it.
func New(boundary []Point, holes ...[]Point) (*Mesh, error) {
	if !geom.RingValid(boundary) {
		return nil, ErrInvalidBoundary
	}
	bnd := ccwRing(boundary)

	hs := make([][]Point, 0, len(holes))
	for _, h := range holes {
		if !geom.RingValid(h) {
			return nil, ErrInvalidBoundary
		}
		hs = append(hs, ccwRing(h))
	}
	for i, h := range hs {
		if !geom.RingContains(bnd, h) {
			return nil, ErrHoleOutsideBoundary
		}
		for j := i + 1; j < len(hs); j++ {
			if !geom.RingsDisjoint(h, hs[j]) {
				return nil, ErrHoleOutsideBoundary
			}
		}
	}

	me := &Mesh{m: mesh.New(), last: mesh.None}

	// Ring vertices are pairwise distinct across all rings: duplicates
	// within a ring fail RingValid, and a vertex shared between rings
	// fails the containment or disjointness checks above.
	rings := append([][]Point{bnd}, hs...)
	ids := make([][]mesh.VertexID, len(rings))
	var all []mesh.VertexID
	for i, r := range rings {
		ids[i] = make([]mesh.VertexID, len(r))
		for j, p := range r {
			v := me.m.AddVertex(p)
			ids[i][j] = v
			all = append(all, v)
		}
	}

	// Insert in a reproducible random order: randomization keeps cavity
	// sizes small in expectation regardless of input ordering.
	rng := rand.New(rand.NewPCG(randSeed, uint64(len(all))))
	shuffled := make([]mesh.VertexID, len(all))
	for i, j := range rng.Perm(len(all)) {
		shuffled[i] = all[j]
	}

	a, b := shuffled[0], shuffled[1]
	seed := -1
	var o geom.Orientation
	for i := 2; i < len(shuffled); i++ {
		o = geom.Orient(me.m.Pos(a), me.m.Pos(b), me.m.Pos(shuffled[i]))
		if o != geom.Collinear {
			seed = i
			break
		}
	}
	if seed < 0 {
		return nil, ErrInvalidBoundary
	}
	c := shuffled[seed]
	if o == geom.Clockwise {
		b, c = c, b
	}
	t0 := me.m.Init(a, b, c)

	con := mesh.NewConflicts()
	for i, v := range shuffled {
		if i < 2 || i == seed {
			continue
		}
		loc := me.m.Locate(t0, me.m.Pos(v))
		if loc.Tri == mesh.None {
			return nil, ErrInvalidBoundary
		}
		con.Register(v, loc.Tri)
	}
	for i, v := range shuffled {
		if i < 2 || i == seed {
			continue
		}
		start, _ := con.NextConflict(v)
		if _, err := me.m.Insert(v, start, con); err != nil {
			return nil, err
		}
	}

	for _, row := range ids {
		n := len(row)
		for i := 0; i < n; i++ {
			subs, err := me.m.RecoverSegment(row[i], row[(i+1)%n])
			if err != nil {
				return nil, err
			}
			for _, s := range subs {
				me.addSeg(s[0], s[1])
			}
		}
	}

	me.classify(bnd, hs)
	me.last = me.m.Verts[all[0]].T

	Logger().Debug("mesh built",
		"vertices", len(all),
		"segments", len(me.segs),
		"triangles", me.countReal())
	return me, nil
}

// ccwRing returns a copy of the ring wound counterclockwise.
func ccwRing(ring []Point) []Point {
	out := make([]Point, len(ring))
	copy(out, ring)
	if geom.RingArea(out) < 0 {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

// classify partitions the non-ghost triangles into interior and hole
// triangles by testing each centroid against the rings. Exterior and
// hole triangles stay in the structure to keep every edge two-sided, but
// are excluded from output and refinement.
func (me *Mesh) classify(boundary []Point, holes [][]Point) {
	for id := range me.m.Tris {
		t := mesh.TriangleID(id)
		if !me.m.Alive(t) || me.m.IsGhost(t) {
			continue
		}
		tri := me.m.Tris[t]
		c := me.m.Pos(tri.V[0]).
			Add(me.m.Pos(tri.V[1])).
			Add(me.m.Pos(tri.V[2])).
			Mul(1.0 / 3.0)

		kind := mesh.Real
		if geom.PointInRing(boundary, c) != geom.Inside {
			kind = mesh.Hole
		} else {
			for _, h := range holes {
				if geom.PointInRing(h, c) == geom.Inside {
					kind = mesh.Hole
					break
				}
			}
		}
		me.m.Tris[t].Kind = kind
	}
}

// InsertVertex adds a point to the triangulation and returns its id.
// The point must lie in the closed domain: strictly interior, or on a
// constrained segment, in which case the segment is split at the point.
//
// Returns [ErrDuplicatePoint] (with the existing id) when the point
// coincides with an existing vertex, and [ErrOutsideBoundary] when it
// lies outside the boundary or inside a hole. The mesh is unchanged on
// error.
func (me *Mesh) InsertVertex(p Point) (VertexID, error) {
	loc := me.m.Locate(me.last, p)
	if loc.Tri == mesh.None {
		return 0, ErrOutsideBoundary
	}
	if loc.Kind == mesh.LocVertex {
		return VertexID(loc.Vert), ErrDuplicatePoint
	}

	if loc.Kind == mesh.LocEdge {
		tri := me.m.Tris[loc.Tri]
		u := tri.V[(loc.Edge+1)%3]
		v := tri.V[(loc.Edge+2)%3]
		if me.m.IsConstrained(u, v) {
			w, err := me.splitSeg(me.segIndex(u, v), p, false)
			return VertexID(w), err
		}
	}

	switch me.m.Tris[loc.Tri].Kind {
	case mesh.GhostKind, mesh.Hole:
		return 0, ErrOutsideBoundary
	}

	v := me.m.AddVertex(p)
	if _, err := me.m.InsertLocated(v, loc, nil); err != nil {
		me.m.Verts = me.m.Verts[:len(me.m.Verts)-1]
		return 0, err
	}
	me.last = me.m.Verts[v].T
	return VertexID(v), nil
}

// InsertSegment constrains the edge between two existing vertices,
// flipping away any triangulation edges that cross it. Vertices lying
// exactly on the segment split it into subsegments. Afterward every
// subsegment is a constrained mesh edge.
//
// Returns [ErrSegmentRecoveryFailed] when the segment crosses another
// constrained segment or the vertex ids are invalid.
func (me *Mesh) InsertSegment(a, b VertexID) error {
	if !me.validID(a) || !me.validID(b) || a == b {
		return ErrSegmentRecoveryFailed
	}
	subs, err := me.m.RecoverSegment(mesh.VertexID(a), mesh.VertexID(b))
	if err != nil {
		return err
	}
	for _, s := range subs {
		me.addSeg(s[0], s[1])
	}
	Logger().Debug("segment inserted", "from", a, "to", b, "subsegments", len(subs))
	return nil
}

// Vertex returns the coordinates of a vertex id.
func (me *Mesh) Vertex(id VertexID) (Point, bool) {
	if !me.validID(id) {
		return Point{}, false
	}
	return me.m.Pos(mesh.VertexID(id)), true
}

// FindVertex returns the id of the vertex at exactly p, if any.
func (me *Mesh) FindVertex(p Point) (VertexID, bool) {
	for id := 1; id < len(me.m.Verts); id++ {
		if me.m.Verts[id].P.Eq(p) {
			return VertexID(id), true
		}
	}
	return 0, false
}

// Triangles returns an iterator over the interior triangles of the
// domain. Hole and exterior triangles are not reported. The mesh must
// not be modified during iteration.
func (me *Mesh) Triangles() iter.Seq[Triangle] {
	return func(yield func(Triangle) bool) {
		for id := range me.m.Tris {
			tri := me.m.Tris[id]
			if tri.Kind != mesh.Real {
				continue
			}
			out := Triangle{
				A: me.m.Pos(tri.V[0]),
				B: me.m.Pos(tri.V[1]),
				C: me.m.Pos(tri.V[2]),
				IsBoundary: me.m.IsConstrained(tri.V[0], tri.V[1]) ||
					me.m.IsConstrained(tri.V[1], tri.V[2]) ||
					me.m.IsConstrained(tri.V[2], tri.V[0]),
			}
			if !yield(out) {
				return
			}
		}
	}
}

// Segments returns an iterator over the constrained subsegments, as
// endpoint pairs.
func (me *Mesh) Segments() iter.Seq[[2]Point] {
	return func(yield func([2]Point) bool) {
		for _, s := range me.segs {
			if !yield([2]Point{me.m.Pos(s.a), me.m.Pos(s.b)}) {
				return
			}
		}
	}
}

// Stats returns summary statistics for the mesh.
func (me *Mesh) Stats() Stats {
	s := Stats{Segments: len(me.segs)}
	for id := 1; id < len(me.m.Verts); id++ {
		s.Vertices++
		if me.m.Verts[id].Steiner {
			s.Steiner++
		}
	}
	minAngle := math.Inf(1)
	for id := range me.m.Tris {
		tri := me.m.Tris[id]
		if tri.Kind != mesh.Real {
			continue
		}
		s.Triangles++
		a := geom.MinAngle(me.m.Pos(tri.V[0]), me.m.Pos(tri.V[1]), me.m.Pos(tri.V[2]))
		if a < minAngle {
			minAngle = a
		}
	}
	if s.Triangles > 0 {
		s.MinAngle = minAngle * 180 / math.Pi
	}
	return s
}

func (me *Mesh) validID(id VertexID) bool {
	return id >= 1 && int(id) < len(me.m.Verts)
}

func (me *Mesh) countReal() int {
	n := 0
	for id := range me.m.Tris {
		if me.m.Tris[id].Kind == mesh.Real {
			n++
		}
	}
	return n
}

// addSeg records a constrained subsegment, skipping duplicates so that
// re-inserting an existing segment is idempotent.
func (me *Mesh) addSeg(a, b mesh.VertexID) {
	e := mesh.Edge(a, b)
	for _, s := range me.segs {
		if mesh.Edge(s.a, s.b) == e {
			return
		}
	}
	me.segs = append(me.segs, segment{a, b})
}

// segIndex returns the index of the subsegment with the given endpoints,
// or -1.
func (me *Mesh) segIndex(u, v mesh.VertexID) int {
	e := mesh.Edge(u, v)
	for i, s := range me.segs {
		if mesh.Edge(s.a, s.b) == e {
			return i
		}
	}
	return -1
}

// splitSeg splits subsegment i at p, which must lie on it up to
// floating-point rounding. The two halves replace it in the subsegment
// list; the first half keeps the slot so indices stay meaningful for
// deterministic scans.
func (me *Mesh) splitSeg(i int, p Point, steiner bool) (mesh.VertexID, error) {
	if i < 0 {
		return 0, ErrSegmentRecoveryFailed
	}
	s := me.segs[i]
	w, err := me.m.SplitEdge(s.a, s.b, p)
	if err != nil {
		return 0, err
	}
	me.m.Verts[w].Steiner = steiner
	me.segs[i] = segment{s.a, w}
	me.segs = append(me.segs, segment{w, s.b})
	me.last = me.m.Verts[w].T
	return w, nil
}
