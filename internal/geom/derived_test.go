package geom

import (
	"math"
	"testing"
)

func TestCircumcenter(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c Point
		want    Point
		ok      bool
	}{
		{"right isoceles", Pt(0, 0), Pt(1, 0), Pt(0, 1), Pt(0.5, 0.5), true},
		{"unit square half", Pt(0, 0), Pt(1, 0), Pt(1, 1), Pt(0.5, 0.5), true},
		{"translated", Pt(10, 10), Pt(11, 10), Pt(10, 11), Pt(10.5, 10.5), true},
		{"collinear", Pt(0, 0), Pt(1, 1), Pt(2, 2), Pt(0, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Circumcenter(tt.a, tt.b, tt.c)
			if ok != tt.ok {
				t.Fatalf("Circumcenter(%v, %v, %v) ok = %v, want %v", tt.a, tt.b, tt.c, ok, tt.ok)
			}
			if ok && !got.Approx(tt.want, 1e-12) {
				t.Errorf("Circumcenter(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.c, got, tt.want)
			}
		})
	}
}

// The circumcenter is equidistant from the three vertices.
func TestCircumcenterEquidistant(t *testing.T) {
	a, b, c := Pt(0.2, 0.1), Pt(4.7, -1.3), Pt(2.9, 5.8)
	cc, ok := Circumcenter(a, b, c)
	if !ok {
		t.Fatal("Circumcenter returned no center for a non-degenerate triangle")
	}
	ra, rb, rc := cc.Distance(a), cc.Distance(b), cc.Distance(c)
	if math.Abs(ra-rb) > 1e-9 || math.Abs(ra-rc) > 1e-9 {
		t.Errorf("circumradii differ: %v %v %v", ra, rb, rc)
	}
}

func TestArea(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c Point
		want    float64
	}{
		{"ccw unit", Pt(0, 0), Pt(1, 0), Pt(0, 1), 0.5},
		{"cw unit", Pt(0, 0), Pt(0, 1), Pt(1, 0), -0.5},
		{"degenerate", Pt(0, 0), Pt(1, 1), Pt(2, 2), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Area(tt.a, tt.b, tt.c); got != tt.want {
				t.Errorf("Area(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.c, got, tt.want)
			}
		})
	}
}

func TestMinAngle(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c Point
		wantDeg float64
	}{
		{"right isoceles", Pt(0, 0), Pt(1, 0), Pt(0, 1), 45},
		{"equilateral-ish", Pt(0, 0), Pt(1, 0), Pt(0.5, math.Sqrt(3) / 2), 60},
		{"thin sliver", Pt(0, 0), Pt(10, 0), Pt(5, 0.1), math.Atan2(0.1, 5) * 180 / math.Pi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MinAngle(tt.a, tt.b, tt.c) * 180 / math.Pi
			if math.Abs(got-tt.wantDeg) > 1e-6 {
				t.Errorf("MinAngle(%v, %v, %v) = %v deg, want %v", tt.a, tt.b, tt.c, got, tt.wantDeg)
			}
		})
	}
}

func TestEncroach(t *testing.T) {
	a, b := Pt(0, 0), Pt(2, 0)
	tests := []struct {
		name string
		p    Point
		want Continence
	}{
		{"center", Pt(1, 0), Inside},
		{"above center inside", Pt(1, 0.5), Inside},
		{"on diametral circle", Pt(1, 1), Boundary},
		{"outside above endpoint", Pt(0, 1), Outside},
		{"far away", Pt(5, 5), Outside},
		{"endpoint", Pt(0, 0), Boundary},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Encroach(a, b, tt.p); got != tt.want {
				t.Errorf("Encroach(%v, %v, %v) = %v, want %v", a, b, tt.p, got, tt.want)
			}
		})
	}
}

func TestSegmentsIntersect(t *testing.T) {
	tests := []struct {
		name       string
		a, b, c, d Point
		want       bool
	}{
		{"proper cross", Pt(0, 0), Pt(2, 2), Pt(0, 2), Pt(2, 0), true},
		{"shared endpoint", Pt(0, 0), Pt(1, 0), Pt(1, 0), Pt(2, 1), true},
		{"disjoint", Pt(0, 0), Pt(1, 0), Pt(0, 1), Pt(1, 1), false},
		{"collinear overlap", Pt(0, 0), Pt(2, 0), Pt(1, 0), Pt(3, 0), true},
		{"collinear disjoint", Pt(0, 0), Pt(1, 0), Pt(2, 0), Pt(3, 0), false},
		{"t contact", Pt(0, 0), Pt(2, 0), Pt(1, -1), Pt(1, 0), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SegmentsIntersect(tt.a, tt.b, tt.c, tt.d); got != tt.want {
				t.Errorf("SegmentsIntersect(%v, %v, %v, %v) = %v, want %v",
					tt.a, tt.b, tt.c, tt.d, got, tt.want)
			}
		})
	}
}

func TestSegmentsCross(t *testing.T) {
	tests := []struct {
		name       string
		a, b, c, d Point
		want       bool
	}{
		{"proper cross", Pt(0, 0), Pt(2, 2), Pt(0, 2), Pt(2, 0), true},
		{"shared endpoint", Pt(0, 0), Pt(1, 0), Pt(1, 0), Pt(2, 1), false},
		{"t contact", Pt(0, 0), Pt(2, 0), Pt(1, -1), Pt(1, 0), false},
		{"collinear overlap", Pt(0, 0), Pt(2, 0), Pt(1, 0), Pt(3, 0), false},
		{"disjoint", Pt(0, 0), Pt(1, 0), Pt(0, 1), Pt(1, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SegmentsCross(tt.a, tt.b, tt.c, tt.d); got != tt.want {
				t.Errorf("SegmentsCross(%v, %v, %v, %v) = %v, want %v",
					tt.a, tt.b, tt.c, tt.d, got, tt.want)
			}
		})
	}
}
