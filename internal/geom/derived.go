package geom

import "math"

// Circumcenter returns the center of the circle through a, b and c.
// The second result is false when the points are collinear and no
// circumcircle exists.
func Circumcenter(a, b, c Point) (Point, bool) {
	// Translate by a so the solve happens on small coordinates.
	bx := b.X - a.X
	by := b.Y - a.Y
	cx := c.X - a.X
	cy := c.Y - a.Y

	d := 2 * (bx*cy - by*cx)
	if d == 0 {
		return Point{}, false
	}

	bl := bx*bx + by*by
	cl := cx*cx + cy*cy
	ux := (cy*bl - by*cl) / d
	uy := (bx*cl - cx*bl) / d
	return Point{X: a.X + ux, Y: a.Y + uy}, true
}

// Area returns the signed area of triangle (a, b, c): positive when the
// vertices are in counterclockwise order.
func Area(a, b, c Point) float64 {
	return b.Sub(a).Cross(c.Sub(a)) / 2
}

// Angle returns the interior angle at vertex b of the path a-b-c,
// in radians.
func Angle(a, b, c Point) float64 {
	ba := a.Sub(b)
	bc := c.Sub(b)
	n := ba.Length() * bc.Length()
	if n == 0 {
		return 0
	}
	cos := ba.Dot(bc) / n
	// Clamp against rounding before acos.
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos)
}

// MinAngle returns the smallest interior angle of triangle (a, b, c),
// in radians.
func MinAngle(a, b, c Point) float64 {
	m := Angle(c, a, b)
	if t := Angle(a, b, c); t < m {
		m = t
	}
	if t := Angle(b, c, a); t < m {
		m = t
	}
	return m
}

// Encroach classifies p against the diametral circle of segment ab, the
// circle with ab as diameter: Inside when p lies strictly within, Boundary
// when exactly on it. The test is the sign of (p-a)·(p-b), which is
// negative exactly inside the circle.
func Encroach(a, b, p Point) Continence {
	m := p.Sub(a).Dot(p.Sub(b))
	switch {
	case m > 0:
		return Outside
	case m < 0:
		return Inside
	default:
		return Boundary
	}
}

// OnSegment reports whether p lies on the closed segment ab. p must
// already be collinear with a and b.
func OnSegment(a, b, p Point) bool {
	return math.Min(a.X, b.X) <= p.X && p.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= p.Y && p.Y <= math.Max(a.Y, b.Y)
}

// SegmentsIntersect reports whether the closed segments ab and cd share
// any point. Endpoint-only contact counts; callers that allow shared
// endpoints filter those before calling.
func SegmentsIntersect(a, b, c, d Point) bool {
	o1 := Orient(a, b, c)
	o2 := Orient(a, b, d)
	o3 := Orient(c, d, a)
	o4 := Orient(c, d, b)

	if o1 != o2 && o3 != o4 {
		return true
	}
	if o1 == Collinear && OnSegment(a, b, c) {
		return true
	}
	if o2 == Collinear && OnSegment(a, b, d) {
		return true
	}
	if o3 == Collinear && OnSegment(c, d, a) {
		return true
	}
	if o4 == Collinear && OnSegment(c, d, b) {
		return true
	}
	return false
}

// SegmentsCross reports whether the open interiors of segments ab and cd
// intersect in exactly one point (a proper crossing). Touching at an
// endpoint or collinear overlap is not a proper crossing.
func SegmentsCross(a, b, c, d Point) bool {
	o1 := Orient(a, b, c)
	o2 := Orient(a, b, d)
	o3 := Orient(c, d, a)
	o4 := Orient(c, d, b)
	return o1 != o2 && o3 != o4 &&
		o1 != Collinear && o2 != Collinear && o3 != Collinear && o4 != Collinear
}
