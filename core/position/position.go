// Package position projects fingerprint paths onto a numeric axis.
//
// Block files carry their ordinal in the file name (e.g. blocks/017/4711.dat),
// which lets drift be located within the block range.
package position

import (
	"path"
	"path/filepath"
	"strconv"
	"strings"
)

// Index extracts the positional index from the file name stem of p.
// The stem is the base name without its last extension; it must parse as a
// base-10 integer, otherwise ok is false.
func Index(p string) (index int, ok bool) {
	name := path.Base(filepath.ToSlash(p))
	stem := strings.TrimSuffix(name, path.Ext(name))
	if stem == "" {
		return 0, false
	}

	n, err := strconv.Atoi(stem)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Range returns the smallest and largest index. ok is false for an empty slice.
func Range(indices []int) (lo, hi int, ok bool) {
	if len(indices) == 0 {
		return 0, 0, false
	}

	lo, hi = indices[0], indices[0]
	for _, i := range indices[1:] {
		if i < lo {
			lo = i
		}
		if i > hi {
			hi = i
		}
	}
	return lo, hi, true
}
