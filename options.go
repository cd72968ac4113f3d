package cdt

// RefineOption configures a refinement run.
// Use functional options to customize Refine behavior.
//
// Example:
//
//	// Angle bound only
//	report, err := m.Refine(20)
//
//	// Angle bound with a triangle size cap
//	report, err := m.Refine(25, cdt.WithMaxArea(0.01))
type RefineOption func(*refineOptions)

// refineOptions holds optional configuration for Refine.
type refineOptions struct {
	maxArea    float64
	hasMaxArea bool
	maxIter    int
}

// defaultRefineOptions returns the default refinement options: no area
// bound and no explicit iteration cap.
func defaultRefineOptions() refineOptions {
	return refineOptions{}
}

// WithMaxArea adds an upper bound on triangle area. Any interior triangle
// larger than area is treated as low quality and split during refinement
// regardless of its angles.
func WithMaxArea(area float64) RefineOption {
	return func(o *refineOptions) {
		o.maxArea = area
		o.hasMaxArea = true
	}
}

// WithMaxIterations caps the number of refinement iterations, one Steiner
// point per iteration. When the cap is reached before the quality criteria
// hold everywhere, Refine returns a partial report together with
// [ErrRefinementIncomplete]; the mesh stays valid and conforming.
func WithMaxIterations(n int) RefineOption {
	return func(o *refineOptions) {
		o.maxIter = n
	}
}
