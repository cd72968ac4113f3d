// Package cdt provides a constrained Delaunay triangulation kernel for
// planar domains.
//
// # Overview
//
// cdt triangulates a polygonal domain, an outer boundary with optional
// holes, so that every input edge appears in the mesh and every triangle
// is as close to equilateral as the constraints allow. The geometric
// predicates are exact: results are deterministic and independent of
// evaluation order, even for degenerate input.
//
// # Quick Start
//
//	import "github.com/gogpu/cdt"
//
//	// Triangulate a unit square with a centered square hole
//	m, err := cdt.New(
//	    []cdt.Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
//	    []cdt.Point{{0.25, 0.25}, {0.75, 0.25}, {0.75, 0.75}, {0.25, 0.75}},
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Improve quality: no interior angle below 20 degrees
//	report, err := m.Refine(20)
//
//	for t := range m.Triangles() {
//	    // t.A, t.B, t.C in counterclockwise order
//	}
//
// # Architecture
//
// The library is organized into:
//   - Public API: Mesh, Point, Triangle, Stats, Refine options
//   - internal/geom: exact orientation and in-circle predicates, derived
//     quantities (circumcenters, angles, diametral circles), ring tests
//   - internal/mesh: the triangulation arena, point location, cavity
//     insertion, edge flipping and segment recovery
//   - render: rasterization of a mesh to an image for debugging
//
// # Coordinate System
//
// Uses standard mathematical coordinates: X increases right, Y increases
// up, and triangles are reported with counterclockwise winding.
package cdt

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
