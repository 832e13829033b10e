package histogram

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	// ErrNoData is returned when there is no index to plot.
	ErrNoData = errors.New("no indexed entries to plot")
	// ErrInvalidBins is returned for a bucket count below one.
	ErrInvalidBins = errors.New("bucket count must be at least 1")
)

// Bucket is an inclusive index range with per-class counts.
type Bucket struct {
	Start      int `json:"start" yaml:"start"`
	End        int `json:"end" yaml:"end"`
	Matched    int `json:"matched" yaml:"matched"`
	Mismatched int `json:"mismatched" yaml:"mismatched"`
}

// Total returns the number of indices in the bucket.
func (b Bucket) Total() int {
	return b.Matched + b.Mismatched
}

// Build distributes matched and mismatched indices over at most bins
// contiguous buckets covering [min, max] of both sets.
//
// The bucket width is max(1, span/bins); any index past the last bucket is
// clamped into it, so no index is dropped. When the span is smaller than bins
// only span buckets are returned.
func Build(matched, mismatched []int, bins int) ([]Bucket, error) {
	if bins < 1 {
		return nil, ErrInvalidBins
	}
	if len(matched) == 0 && len(mismatched) == 0 {
		return nil, ErrNoData
	}

	lo, hi := bounds(matched, mismatched)
	span := hi - lo + 1
	width := max(1, span/bins)

	count := min(bins, (span+width-1)/width)
	buckets := make([]Bucket, count)
	for i := range buckets {
		buckets[i].Start = lo + i*width
		buckets[i].End = buckets[i].Start + width - 1
	}
	buckets[count-1].End = hi

	slot := func(index int) int {
		return min((index-lo)/width, count-1)
	}
	for _, i := range matched {
		buckets[slot(i)].Matched++
	}
	for _, i := range mismatched {
		buckets[slot(i)].Mismatched++
	}

	return buckets, nil
}

func bounds(sets ...[]int) (lo, hi int) {
	first := true
	for _, set := range sets {
		for _, i := range set {
			if first {
				lo, hi = i, i
				first = false
				continue
			}
			lo = min(lo, i)
			hi = max(hi, i)
		}
	}
	return lo, hi
}

// MaxTotal returns the largest bucket total.
func MaxTotal(buckets []Bucket) int {
	m := 0
	for _, b := range buckets {
		m = max(m, b.Total())
	}
	return m
}

// Segments returns the matched and mismatched bar lengths for b.
// The bar is scaled against maxTotal; the mismatched segment absorbs the
// rounding remainder.
func Segments(b Bucket, maxTotal, width int) (matchedLen, mismatchedLen int) {
	total := b.Total()
	if total == 0 || maxTotal <= 0 {
		return 0, 0
	}

	barLen := total * width / maxTotal
	matchedLen = barLen * b.Matched / total
	return matchedLen, barLen - matchedLen
}

// Renderer draws buckets as horizontal two-colour bars.
type Renderer struct {
	// Width is the length of the longest bar.
	Width int
	// Color enables ANSI colours.
	Color bool
	// Glyph is the bar cell; defaults to a full block.
	Glyph string
}

// Render writes one line per bucket: "start-end | bar (matched/mismatched)".
func (r Renderer) Render(w io.Writer, buckets []Bucket) error {
	glyph := r.Glyph
	if glyph == "" {
		glyph = "█"
	}

	ok := color.New(color.FgGreen)
	fail := color.New(color.FgRed)
	if r.Color {
		ok.EnableColor()
		fail.EnableColor()
	} else {
		ok.DisableColor()
		fail.DisableColor()
	}

	maxTotal := MaxTotal(buckets)
	for _, b := range buckets {
		good, bad := Segments(b, maxTotal, r.Width)

		var bar string
		if good > 0 {
			bar += ok.Sprint(strings.Repeat(glyph, good))
		}
		if bad > 0 {
			bar += fail.Sprint(strings.Repeat(glyph, bad))
		}

		if _, err := fmt.Fprintf(w, "%6d-%-6d | %s (%d/%d)\n", b.Start, b.End, bar, b.Matched, b.Mismatched); err != nil {
			return err
		}
	}
	return nil
}
