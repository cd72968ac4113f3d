package cdt

import (
	"errors"

	"github.com/gogpu/cdt/internal/mesh"
)

// Errors reported by the public API. All are matched with errors.Is.
var (
	// ErrInvalidBoundary is returned by New when the boundary polygon
	// has fewer than three points, repeats a vertex, or self-intersects.
	ErrInvalidBoundary = errors.New("cdt: invalid boundary polygon")

	// ErrHoleOutsideBoundary is returned by New when a hole ring is not
	// strictly contained in the boundary, or overlaps another hole.
	ErrHoleOutsideBoundary = errors.New("cdt: hole ring not contained in boundary")

	// ErrDuplicatePoint is returned by InsertVertex when the point
	// coincides with an existing vertex. The mesh is unchanged.
	ErrDuplicatePoint = mesh.ErrDuplicate

	// ErrOutsideBoundary is returned by InsertVertex when the point
	// lies outside the outer boundary or inside a hole.
	ErrOutsideBoundary = errors.New("cdt: point outside the triangulation domain")

	// ErrSegmentRecoveryFailed is returned by InsertSegment for
	// self-intersecting or coincident constraint input: the segment
	// crosses another constrained segment or cannot be realized.
	ErrSegmentRecoveryFailed = mesh.ErrRecovery

	// ErrInvalidMinAngle is returned by Refine for a minimum-angle bound
	// outside the open interval (0, 60) degrees; bounds of 60 degrees or
	// more are provably non-terminating for general input.
	ErrInvalidMinAngle = errors.New("cdt: minimum angle out of range (0, 60)")

	// ErrRefinementIncomplete is returned by Refine together with a
	// report when the iteration budget was exhausted before all quality
	// criteria were satisfied. The mesh is valid; the quality bound is
	// simply not yet met everywhere.
	ErrRefinementIncomplete = errors.New("cdt: refinement incomplete")
)
