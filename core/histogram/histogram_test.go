package histogram

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sum(buckets []Bucket) int {
	n := 0
	for _, b := range buckets {
		n += b.Total()
	}
	return n
}

func TestBuild_SingleIndexManyBins(t *testing.T) {
	buckets, err := Build([]int{42}, nil, 50)
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	assert.Equal(t, Bucket{Start: 42, End: 42, Matched: 1}, buckets[0])
}

func TestBuild_SpanSmallerThanBins(t *testing.T) {
	buckets, err := Build([]int{10, 11}, []int{14}, 50)
	require.NoError(t, err)
	require.Len(t, buckets, 5)
	for i, b := range buckets {
		assert.Equal(t, 10+i, b.Start)
		assert.Equal(t, 10+i, b.End)
	}
	assert.Equal(t, 1, buckets[4].Mismatched)
}

func TestBuild_RemainderClampedIntoLastBucket(t *testing.T) {
	// span 10, 3 bins: width 3, indices 9 would map to bucket 3
	var matched []int
	for i := 0; i < 10; i++ {
		matched = append(matched, i)
	}
	buckets, err := Build(matched, nil, 3)
	require.NoError(t, err)
	require.Len(t, buckets, 3)

	assert.Equal(t, Bucket{Start: 0, End: 2, Matched: 3}, buckets[0])
	assert.Equal(t, Bucket{Start: 3, End: 5, Matched: 3}, buckets[1])
	assert.Equal(t, Bucket{Start: 6, End: 9, Matched: 4}, buckets[2])
}

func TestBuild_CountsConserved(t *testing.T) {
	var matched, mismatched []int
	for i := 3; i < 10007; i += 3 {
		matched = append(matched, i)
	}
	for i := 9000; i < 10010; i += 7 {
		mismatched = append(mismatched, i)
	}

	for _, bins := range []int{1, 7, 50, 333, 100000} {
		buckets, err := Build(matched, mismatched, bins)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(buckets), bins)
		assert.Equal(t, len(matched)+len(mismatched), sum(buckets), "bins=%d", bins)

		// contiguous, non-overlapping cover of [min, max]
		assert.Equal(t, 3, buckets[0].Start)
		assert.Equal(t, 10008, buckets[len(buckets)-1].End)
		for i := 1; i < len(buckets); i++ {
			assert.Equal(t, buckets[i-1].End+1, buckets[i].Start)
		}
	}
}

func TestBuild_Errors(t *testing.T) {
	_, err := Build(nil, nil, 50)
	assert.ErrorIs(t, err, ErrNoData)

	_, err = Build([]int{1}, nil, 0)
	assert.ErrorIs(t, err, ErrInvalidBins)
}

func TestSegments(t *testing.T) {
	tests := []struct {
		name         string
		bucket       Bucket
		maxTotal     int
		wantMatched  int
		wantMismatch int
	}{
		{"Largest Bucket", Bucket{Matched: 10, Mismatched: 10}, 20, 20, 20},
		{"Half Of Largest", Bucket{Matched: 10}, 20, 20, 0},
		{"Remainder To Mismatched", Bucket{Matched: 1, Mismatched: 2}, 3, 13, 27},
		{"Tiny Bucket Truncates", Bucket{Mismatched: 1}, 100, 0, 0},
		{"Empty Bucket", Bucket{}, 20, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			good, bad := Segments(tt.bucket, tt.maxTotal, 40)
			assert.Equal(t, tt.wantMatched, good)
			assert.Equal(t, tt.wantMismatch, bad)
		})
	}
}

func TestRenderer_Render(t *testing.T) {
	buckets := []Bucket{
		{Start: 1, End: 5, Matched: 4, Mismatched: 0},
		{Start: 6, End: 10, Matched: 0, Mismatched: 0},
		{Start: 11, End: 15, Matched: 1, Mismatched: 1},
	}

	var buf bytes.Buffer
	require.NoError(t, Renderer{Width: 8, Glyph: "#"}.Render(&buf, buckets))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "     1-5      | ######## (4/0)", lines[0])
	assert.Equal(t, "     6-10     |  (0/0)", lines[1])
	assert.Equal(t, "    11-15     | #### (1/1)", lines[2])
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestRenderer_Color(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Renderer{Width: 4, Color: true}.Render(&buf, []Bucket{{Start: 0, End: 0, Matched: 1, Mismatched: 1}}))
	assert.Contains(t, buf.String(), "\x1b[32m")
	assert.Contains(t, buf.String(), "\x1b[31m")
}
