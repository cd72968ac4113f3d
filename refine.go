package cdt

import (
	"math"

	"github.com/gogpu/cdt/internal/geom"
	"github.com/gogpu/cdt/internal/mesh"
)

// RefinementReport summarizes a refinement run.
type RefinementReport struct {
	// Completed is true when every interior triangle satisfies the
	// quality criteria and no subsegment is encroached.
	Completed bool

	// SteinerPoints is the number of vertices the run inserted.
	SteinerPoints int

	// Skipped counts triangles the run gave up on: their quality cannot
	// be improved by point insertion, typically because the input forces
	// it (a degenerate circumcircle, or a circumcenter that cannot be
	// placed inside the domain).
	Skipped int
}

// Refine improves triangle quality by Ruppert's algorithm: while any
// constrained subsegment is encroached, split it at its midpoint; then
// insert the circumcenter of the first poor-quality triangle, deferring
// to a segment split whenever the circumcenter would encroach one.
// Inserted vertices are Steiner points; the triangulation stays
// constrained Delaunay throughout.
//
// minAngle is the quality bound in degrees and must lie in (0, 60);
// a triangle whose smallest angle is below the bound is split, except
// when that angle sits between two constrained segments and is
// therefore forced by the input. Options add an area bound and an
// iteration cap.
//
// When the iteration budget runs out, or some triangle cannot be
// improved, Refine returns the partial report with
// [ErrRefinementIncomplete]; the mesh remains a valid constrained
// Delaunay triangulation.
func (me *Mesh) Refine(minAngle float64, opts ...RefineOption) (RefinementReport, error) {
	if minAngle <= 0 || minAngle >= 60 {
		return RefinementReport{}, ErrInvalidMinAngle
	}
	o := defaultRefineOptions()
	for _, opt := range opts {
		opt(&o)
	}
	theta := minAngle * math.Pi / 180

	budget := o.maxIter
	if budget <= 0 {
		// Safety net against inputs with angles small enough to drive
		// unbounded splitting.
		budget = 100*len(me.m.Verts) + 100000
	}

	gaveUp := make(map[[3]mesh.VertexID]bool)
	var rep RefinementReport

	for iter := 0; ; iter++ {
		if iter >= budget {
			rep.Skipped = me.countPoor(theta, o)
			return rep, ErrRefinementIncomplete
		}

		// Encroached subsegments take priority over triangle quality.
		if i := me.encroachedSegment(); i >= 0 {
			if err := me.splitMid(i); err != nil {
				rep.Skipped = me.countPoor(theta, o)
				return rep, err
			}
			rep.SteinerPoints++
			continue
		}

		t, key := me.nextPoor(theta, o, gaveUp)
		if t == mesh.None {
			// Entries in gaveUp may be stale: later insertions can have
			// destroyed those triangles. Completion is judged by what is
			// still live.
			rep.Skipped = me.countPoor(theta, o)
			rep.Completed = rep.Skipped == 0
			if !rep.Completed {
				return rep, ErrRefinementIncomplete
			}
			Logger().Debug("refinement complete",
				"steiner", rep.SteinerPoints, "iterations", iter)
			return rep, nil
		}

		tri := me.m.Tris[t]
		cc, ok := geom.Circumcenter(
			me.m.Pos(tri.V[0]), me.m.Pos(tri.V[1]), me.m.Pos(tri.V[2]))
		if !ok {
			gaveUp[key] = true
			continue
		}

		// A circumcenter that encroaches a subsegment is not inserted;
		// the subsegment splits instead.
		if j := me.encroachedBy(cc); j >= 0 {
			if err := me.splitMid(j); err != nil {
				rep.Skipped = me.countPoor(theta, o)
				return rep, err
			}
			rep.SteinerPoints++
			continue
		}

		loc := me.m.Locate(t, cc)
		if loc.Kind == mesh.LocEdge {
			etri := me.m.Tris[loc.Tri]
			u := etri.V[(loc.Edge+1)%3]
			v := etri.V[(loc.Edge+2)%3]
			if me.m.IsConstrained(u, v) {
				if err := me.splitMid(me.segIndex(u, v)); err != nil {
					rep.Skipped = me.countPoor(theta, o)
					return rep, err
				}
				rep.SteinerPoints++
				continue
			}
		}
		if loc.Tri == mesh.None || loc.Kind == mesh.LocVertex ||
			me.m.Tris[loc.Tri].Kind == mesh.GhostKind ||
			me.m.Tris[loc.Tri].Kind == mesh.Hole {
			Logger().Warn("refinement cannot place circumcenter",
				"x", cc.X, "y", cc.Y)
			gaveUp[key] = true
			continue
		}

		v := me.m.AddVertex(cc)
		me.m.Verts[v].Steiner = true
		if _, err := me.m.InsertLocated(v, loc, nil); err != nil {
			me.m.Verts = me.m.Verts[:len(me.m.Verts)-1]
			gaveUp[key] = true
			continue
		}
		me.last = me.m.Verts[v].T
		rep.SteinerPoints++
	}
}

// encroachedSegment returns the index of the first subsegment whose
// diametral circle contains an adjacent apex vertex, or -1. Scanning in
// list order keeps refinement deterministic.
func (me *Mesh) encroachedSegment() int {
	for i, s := range me.segs {
		if me.segEncroached(s) {
			return i
		}
	}
	return -1
}

// segEncroached tests the two apex vertices flanking the subsegment.
// In a constrained Delaunay triangulation the flanking apexes are the
// closest vertices to the segment, so testing them suffices.
func (me *Mesh) segEncroached(s segment) bool {
	pa, pb := me.m.Pos(s.a), me.m.Pos(s.b)
	for _, dir := range [2][2]mesh.VertexID{{s.a, s.b}, {s.b, s.a}} {
		t, ok := me.m.EdgeTriangle(dir[0], dir[1])
		if !ok || me.m.IsGhost(t) {
			continue
		}
		w := me.m.Apex(t, s.a, s.b)
		if w == mesh.Ghost {
			continue
		}
		if geom.Encroach(pa, pb, me.m.Pos(w)) != geom.Outside {
			return true
		}
	}
	return false
}

// encroachedBy returns the index of the first subsegment whose diametral
// circle contains p, or -1. Segment endpoints do not encroach their own
// segment.
func (me *Mesh) encroachedBy(p Point) int {
	for i, s := range me.segs {
		pa, pb := me.m.Pos(s.a), me.m.Pos(s.b)
		if p.Eq(pa) || p.Eq(pb) {
			continue
		}
		if geom.Encroach(pa, pb, p) != geom.Outside {
			return i
		}
	}
	return -1
}

// splitMid splits subsegment i at its midpoint with a Steiner vertex.
// A subsegment whose midpoint rounds onto an endpoint is too short to
// split at double precision; refinement reports incomplete rather than
// loop.
func (me *Mesh) splitMid(i int) error {
	s := me.segs[i]
	pa, pb := me.m.Pos(s.a), me.m.Pos(s.b)
	p := pa.Mid(pb)
	if p.Eq(pa) || p.Eq(pb) {
		return ErrRefinementIncomplete
	}
	_, err := me.splitSeg(i, p, true)
	return err
}

// countPoor counts the interior triangles that still violate the
// quality criteria.
func (me *Mesh) countPoor(theta float64, o refineOptions) int {
	n := 0
	for id := range me.m.Tris {
		t := mesh.TriangleID(id)
		if me.m.Tris[t].Kind != mesh.Real {
			continue
		}
		if me.poorQuality(t, theta, o) {
			n++
		}
	}
	return n
}

// nextPoor returns the lowest-index interior triangle violating the
// quality criteria, with its vertex key, or None when all pass.
func (me *Mesh) nextPoor(theta float64, o refineOptions, gaveUp map[[3]mesh.VertexID]bool) (mesh.TriangleID, [3]mesh.VertexID) {
	for id := range me.m.Tris {
		t := mesh.TriangleID(id)
		tri := me.m.Tris[t]
		if tri.Kind != mesh.Real {
			continue
		}
		key := triKey(tri.V)
		if gaveUp[key] {
			continue
		}
		if me.poorQuality(t, theta, o) {
			return t, key
		}
	}
	return mesh.None, [3]mesh.VertexID{}
}

// poorQuality reports whether t violates the area bound or the angle
// bound. An angle below the bound is exempt when it sits between two
// constrained segments: the input forces it and no insertion can widen
// it.
func (me *Mesh) poorQuality(t mesh.TriangleID, theta float64, o refineOptions) bool {
	tri := me.m.Tris[t]
	pa := me.m.Pos(tri.V[0])
	pb := me.m.Pos(tri.V[1])
	pc := me.m.Pos(tri.V[2])

	if o.hasMaxArea && geom.Area(pa, pb, pc) > o.maxArea {
		return true
	}

	pos := [3]Point{pa, pb, pc}
	minK, minAngle := 0, math.Inf(1)
	for k := 0; k < 3; k++ {
		a := geom.Angle(pos[(k+1)%3], pos[k], pos[(k+2)%3])
		if a < minAngle {
			minK, minAngle = k, a
		}
	}
	if minAngle >= theta {
		return false
	}
	seam := me.m.IsConstrained(tri.V[minK], tri.V[(minK+1)%3]) &&
		me.m.IsConstrained(tri.V[minK], tri.V[(minK+2)%3])
	return !seam
}

// triKey is a canonical identity for a triangle, stable across slot
// reuse.
func triKey(v [3]mesh.VertexID) [3]mesh.VertexID {
	if v[0] > v[1] {
		v[0], v[1] = v[1], v[0]
	}
	if v[1] > v[2] {
		v[1], v[2] = v[2], v[1]
	}
	if v[0] > v[1] {
		v[0], v[1] = v[1], v[0]
	}
	return v
}
