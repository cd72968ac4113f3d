package geom

// Ring operations for the boundary and hole polygons. A ring is an
// ordered list of vertices forming a closed polygon; the closing edge
// from the last vertex back to the first is implicit.

// RingArea returns the signed area of the ring: positive when the
// vertices wind counterclockwise.
func RingArea(ring []Point) float64 {
	var sum float64
	for i, p := range ring {
		q := ring[(i+1)%len(ring)]
		sum += p.Cross(q)
	}
	return sum / 2
}

// PointInRing classifies p against the region bounded by the ring using
// the winding number. Points exactly on a ring edge are Boundary.
func PointInRing(ring []Point, p Point) Continence {
	wn := 0
	for i, u := range ring {
		v := ring[(i+1)%len(ring)]
		o := Orient(u, v, p)
		if o == Collinear && OnSegment(u, v, p) {
			return Boundary
		}
		if u.Y <= p.Y {
			if v.Y > p.Y && o == Counterclockwise {
				wn++
			}
		} else {
			if v.Y <= p.Y && o == Clockwise {
				wn--
			}
		}
	}
	if wn != 0 {
		return Inside
	}
	return Outside
}

// RingValid reports whether the ring is a simple polygon: at least three
// distinct vertices, no duplicate vertices, no zero-length or collinear
// spike edges, and no two edges intersecting except adjacent edges at
// their shared vertex.
func RingValid(ring []Point) bool {
	n := len(ring)
	if n < 3 {
		return false
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if ring[i].Eq(ring[j]) {
				return false
			}
		}
	}
	for i := 0; i < n; i++ {
		a := ring[i]
		b := ring[(i+1)%n]
		for j := i + 1; j < n; j++ {
			c := ring[j]
			d := ring[(j+1)%n]
			adjacent := j == i+1 || (i == 0 && j == n-1)
			if adjacent {
				// Shared endpoint is fine; any further contact is a
				// spike or overlap.
				if SegmentsCross(a, b, c, d) {
					return false
				}
				if sharedEndpointOverlap(a, b, c, d) {
					return false
				}
				continue
			}
			if SegmentsIntersect(a, b, c, d) {
				return false
			}
		}
	}
	return true
}

// sharedEndpointOverlap reports whether two adjacent edges overlap beyond
// their shared vertex (a collinear spike).
func sharedEndpointOverlap(a, b, c, d Point) bool {
	if Orient(a, b, c) != Collinear || Orient(a, b, d) != Collinear {
		return false
	}
	// All four points collinear: the edges overlap unless they only meet
	// at the shared vertex and extend in opposite directions.
	var shared, e1, e2 Point
	switch {
	case a.Eq(c):
		shared, e1, e2 = a, b, d
	case a.Eq(d):
		shared, e1, e2 = a, b, c
	case b.Eq(c):
		shared, e1, e2 = b, a, d
	case b.Eq(d):
		shared, e1, e2 = b, a, c
	default:
		return true
	}
	return e1.Sub(shared).Dot(e2.Sub(shared)) > 0
}

// RingContains reports whether the inner ring lies entirely inside the
// outer ring with no edge contact.
func RingContains(outer, inner []Point) bool {
	for _, p := range inner {
		if PointInRing(outer, p) != Inside {
			return false
		}
	}
	return !ringEdgesIntersect(outer, inner)
}

// RingsDisjoint reports whether two rings have disjoint closed regions:
// neither contains a vertex of the other and no edges touch.
func RingsDisjoint(r1, r2 []Point) bool {
	for _, p := range r2 {
		if PointInRing(r1, p) != Outside {
			return false
		}
	}
	for _, p := range r1 {
		if PointInRing(r2, p) != Outside {
			return false
		}
	}
	return !ringEdgesIntersect(r1, r2)
}

func ringEdgesIntersect(r1, r2 []Point) bool {
	for i, a := range r1 {
		b := r1[(i+1)%len(r1)]
		for j, c := range r2 {
			d := r2[(j+1)%len(r2)]
			if SegmentsIntersect(a, b, c, d) {
				return true
			}
		}
	}
	return false
}
