// Package geom provides the geometric predicates and derived quantities
// underlying the triangulation kernel.
//
// The two classification predicates, [Orient] and [InCircle], are exact:
// each evaluates a floating-point determinant first and, whenever the
// result is smaller than a conservative error bound, re-evaluates the
// determinant in exact rational arithmetic. Zero is therefore always the
// true sign, so no two callers can ever disagree about the same
// configuration of points.
package geom

import "math/big"

// Orientation is the result of the [Orient] predicate.
type Orientation int8

// The three possible orderings of a point triple.
const (
	Clockwise        Orientation = -1
	Collinear        Orientation = 0
	Counterclockwise Orientation = 1
)

// String returns a short human-readable name for the orientation.
func (o Orientation) String() string {
	switch o {
	case Clockwise:
		return "clockwise"
	case Counterclockwise:
		return "counterclockwise"
	default:
		return "collinear"
	}
}

// Continence is the result of the [InCircle] predicate and of the
// containment tests derived from it.
type Continence int8

// The three possible positions relative to a circle or region.
const (
	Outside  Continence = -1
	Boundary Continence = 0
	Inside   Continence = 1
)

// String returns a short human-readable name for the continence.
func (c Continence) String() string {
	switch c {
	case Outside:
		return "outside"
	case Inside:
		return "inside"
	default:
		return "boundary"
	}
}

const (
	// epsilon is the float64 machine rounding unit, 2^-53.
	epsilon = 1.1102230246251565e-16

	// orientErrBound and inCircleErrBound are the coefficients of the
	// conservative forward error bounds for the 3x3 orientation and 4x4
	// in-circle determinants. If the computed determinant exceeds the
	// bound times the permanent of the matrix, its sign is certain and
	// the exact fallback is skipped.
	orientErrBound   = (3.0 + 16.0*epsilon) * epsilon
	inCircleErrBound = (10.0 + 96.0*epsilon) * epsilon
)

// Orient classifies the point triple (a, b, c): Counterclockwise if c lies
// to the left of the directed line a->b, Clockwise if to the right, and
// Collinear if the three points lie exactly on one line.
func Orient(a, b, c Point) Orientation {
	detLeft := (a.X - c.X) * (b.Y - c.Y)
	detRight := (a.Y - c.Y) * (b.X - c.X)
	det := detLeft - detRight

	var detSum float64
	switch {
	case detLeft > 0:
		if detRight <= 0 {
			return sign(det)
		}
		detSum = detLeft + detRight
	case detLeft < 0:
		if detRight >= 0 {
			return sign(det)
		}
		detSum = -detLeft - detRight
	default:
		return sign(det)
	}

	if det >= orientErrBound*detSum || -det >= orientErrBound*detSum {
		return sign(det)
	}
	return orientExact(a, b, c)
}

// InCircle classifies d against the circle through a, b and c, which must
// be in counterclockwise order: Inside if d lies strictly inside the
// circle, Outside if strictly outside, Boundary if exactly on it.
func InCircle(a, b, c, d Point) Continence {
	adx := a.X - d.X
	ady := a.Y - d.Y
	bdx := b.X - d.X
	bdy := b.Y - d.Y
	cdx := c.X - d.X
	cdy := c.Y - d.Y

	bdxcdy := bdx * cdy
	cdxbdy := cdx * bdy
	alift := adx*adx + ady*ady

	cdxady := cdx * ady
	adxcdy := adx * cdy
	blift := bdx*bdx + bdy*bdy

	adxbdy := adx * bdy
	bdxady := bdx * ady
	clift := cdx*cdx + cdy*cdy

	det := alift*(bdxcdy-cdxbdy) + blift*(cdxady-adxcdy) + clift*(adxbdy-bdxady)

	permanent := (abs(bdxcdy)+abs(cdxbdy))*alift +
		(abs(cdxady)+abs(adxcdy))*blift +
		(abs(adxbdy)+abs(bdxady))*clift

	if det > inCircleErrBound*permanent || -det > inCircleErrBound*permanent {
		return continence(det)
	}
	return inCircleExact(a, b, c, d)
}

// orientExact evaluates the orientation determinant in rational arithmetic.
// float64 coordinates convert to big.Rat without loss, so the sign is exact.
func orientExact(a, b, c Point) Orientation {
	ax, ay := rat(a.X), rat(a.Y)
	bx, by := rat(b.X), rat(b.Y)
	cx, cy := rat(c.X), rat(c.Y)

	left := new(big.Rat).Mul(new(big.Rat).Sub(ax, cx), new(big.Rat).Sub(by, cy))
	right := new(big.Rat).Mul(new(big.Rat).Sub(ay, cy), new(big.Rat).Sub(bx, cx))
	return Orientation(left.Sub(left, right).Sign())
}

// inCircleExact evaluates the in-circle determinant in rational arithmetic.
func inCircleExact(a, b, c, d Point) Continence {
	adx := new(big.Rat).Sub(rat(a.X), rat(d.X))
	ady := new(big.Rat).Sub(rat(a.Y), rat(d.Y))
	bdx := new(big.Rat).Sub(rat(b.X), rat(d.X))
	bdy := new(big.Rat).Sub(rat(b.Y), rat(d.Y))
	cdx := new(big.Rat).Sub(rat(c.X), rat(d.X))
	cdy := new(big.Rat).Sub(rat(c.Y), rat(d.Y))

	alift := new(big.Rat).Add(new(big.Rat).Mul(adx, adx), new(big.Rat).Mul(ady, ady))
	blift := new(big.Rat).Add(new(big.Rat).Mul(bdx, bdx), new(big.Rat).Mul(bdy, bdy))
	clift := new(big.Rat).Add(new(big.Rat).Mul(cdx, cdx), new(big.Rat).Mul(cdy, cdy))

	bcd := new(big.Rat).Sub(new(big.Rat).Mul(bdx, cdy), new(big.Rat).Mul(cdx, bdy))
	cad := new(big.Rat).Sub(new(big.Rat).Mul(cdx, ady), new(big.Rat).Mul(adx, cdy))
	abd := new(big.Rat).Sub(new(big.Rat).Mul(adx, bdy), new(big.Rat).Mul(bdx, ady))

	det := new(big.Rat).Mul(alift, bcd)
	det.Add(det, new(big.Rat).Mul(blift, cad))
	det.Add(det, new(big.Rat).Mul(clift, abd))
	return Continence(det.Sign())
}

func rat(x float64) *big.Rat {
	return new(big.Rat).SetFloat64(x)
}

func sign(det float64) Orientation {
	switch {
	case det > 0:
		return Counterclockwise
	case det < 0:
		return Clockwise
	default:
		return Collinear
	}
}

func continence(det float64) Continence {
	switch {
	case det > 0:
		return Inside
	case det < 0:
		return Outside
	default:
		return Boundary
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
