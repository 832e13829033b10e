// Package histogram renders the positional distribution of matched and
// mismatched blocks as proportional ASCII bars.
//
// Buckets are equal-width slices of the global index range; the final bucket
// absorbs the remainder. Bars are normalised against the fullest bucket and
// split into a matched (green) and a mismatched (red) segment.
//
//	buckets, err := histogram.Build(result.MatchedIndices, result.MismatchedIndices, 50)
//	if errors.Is(err, histogram.ErrNoData) {
//	    // nothing to plot
//	}
//	histogram.Renderer{Width: 40, Color: true}.Render(os.Stdout, buckets)
package histogram
