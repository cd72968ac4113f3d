// Package render rasterizes a triangulation to an image, mainly for
// visual inspection and debugging of meshes.
package render

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/colornames"

	"github.com/gogpu/cdt"
)

// Options configure rendering.
type Options struct {
	// Width and Height are the output image dimensions in pixels.
	Width, Height int

	// Margin is the border around the mesh, in pixels.
	Margin float64

	// VertexRadius is the radius of the vertex markers, in pixels.
	// Zero disables vertex markers.
	VertexRadius float64

	Background color.Color
	Fill       color.Color
	Edge       color.Color
	Segment    color.Color
	Vertex     color.Color
}

// DefaultOptions returns a reasonable default configuration.
func DefaultOptions() Options {
	return Options{
		Width:        800,
		Height:       800,
		Margin:       16,
		VertexRadius: 2,
		Background:   colornames.White,
		Fill:         colornames.Aliceblue,
		Edge:         colornames.Steelblue,
		Segment:      colornames.Crimson,
		Vertex:       colornames.Darkslategray,
	}
}

// Draw rasterizes the mesh: interior triangles filled and outlined,
// constrained segments on top, then vertex markers. The mesh is scaled
// uniformly to fit the image and flipped so that mesh Y-up maps to
// image Y-down.
func Draw(m *cdt.Mesh, opts Options) image.Image {
	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetColor(opts.Background)
	dc.Clear()

	tr, ok := fitTransform(m, opts)
	if !ok {
		return dc.Image()
	}

	dc.SetColor(opts.Fill)
	for t := range m.Triangles() {
		a, b, c := tr.apply(t.A), tr.apply(t.B), tr.apply(t.C)
		dc.MoveTo(a.X, a.Y)
		dc.LineTo(b.X, b.Y)
		dc.LineTo(c.X, c.Y)
		dc.ClosePath()
	}
	dc.Fill()

	dc.SetColor(opts.Edge)
	dc.SetLineWidth(1)
	for t := range m.Triangles() {
		a, b, c := tr.apply(t.A), tr.apply(t.B), tr.apply(t.C)
		dc.MoveTo(a.X, a.Y)
		dc.LineTo(b.X, b.Y)
		dc.LineTo(c.X, c.Y)
		dc.ClosePath()
	}
	dc.Stroke()

	dc.SetColor(opts.Segment)
	dc.SetLineWidth(2)
	for s := range m.Segments() {
		a, b := tr.apply(s[0]), tr.apply(s[1])
		dc.DrawLine(a.X, a.Y, b.X, b.Y)
	}
	dc.Stroke()

	if opts.VertexRadius > 0 {
		dc.SetColor(opts.Vertex)
		seen := make(map[cdt.Point]bool)
		for t := range m.Triangles() {
			for _, p := range [3]cdt.Point{t.A, t.B, t.C} {
				if seen[p] {
					continue
				}
				seen[p] = true
				q := tr.apply(p)
				dc.DrawCircle(q.X, q.Y, opts.VertexRadius)
			}
		}
		dc.Fill()
	}

	return dc.Image()
}

// Save renders the mesh and writes it to path. The format follows the
// file extension (png, jpg, gif, tiff, bmp).
func Save(m *cdt.Mesh, path string, opts Options) error {
	return imaging.Save(Draw(m, opts), path)
}

// Thumbnail renders the mesh and scales it down to fit within w x h,
// preserving aspect ratio.
func Thumbnail(m *cdt.Mesh, w, h int, opts Options) image.Image {
	return imaging.Fit(Draw(m, opts), w, h, imaging.Lanczos)
}

// transform maps mesh coordinates to image coordinates: uniform scale,
// centered, Y flipped.
type transform struct {
	scale      float64
	offX, offY float64
	flipY      float64
}

func (t transform) apply(p cdt.Point) cdt.Point {
	return cdt.Pt(t.offX+p.X*t.scale, t.flipY-(t.offY+p.Y*t.scale))
}

// fitTransform computes the transform fitting the mesh bounds into the
// image with the configured margin. Reports false for an empty mesh.
func fitTransform(m *cdt.Mesh, opts Options) (transform, bool) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	any := false
	for t := range m.Triangles() {
		for _, p := range [3]cdt.Point{t.A, t.B, t.C} {
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
			any = true
		}
	}
	if !any {
		return transform{}, false
	}

	w := float64(opts.Width) - 2*opts.Margin
	h := float64(opts.Height) - 2*opts.Margin
	dx, dy := maxX-minX, maxY-minY
	if dx <= 0 {
		dx = 1
	}
	if dy <= 0 {
		dy = 1
	}
	scale := math.Min(w/dx, h/dy)

	// Center the scaled bounds inside the image.
	offX := opts.Margin + (w-dx*scale)/2 - minX*scale
	offY := opts.Margin + (h-dy*scale)/2 - minY*scale
	return transform{
		scale: scale,
		offX:  offX,
		offY:  offY,
		flipY: float64(opts.Height),
	}, true
}
