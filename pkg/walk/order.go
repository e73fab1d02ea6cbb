// Package walk enumerates a directory tree lazily in a fixed total order.
package walk

import (
	"os"
	"strings"
)

// ComparePaths orders relative paths: fewer components first, then
// component by component, byte-wise. Both walkers and the merge must use
// this order.
//
// Comparing per component (rather than the raw strings) keeps the order
// consistent with a breadth-first walk that sorts siblings: "a/x" must sort
// before "a-b/y" because "a" sorts before "a-b", even though '-' < '/'.
func ComparePaths(a, b string) int {
	ca, cb := components(a), components(b)
	switch {
	case ca < cb:
		return -1
	case ca > cb:
		return 1
	}

	for i := 0; i < len(a) && i < len(b); i++ {
		x, y := a[i], b[i]
		if x == y {
			continue
		}
		// A component that ends first is a prefix of the other one
		switch {
		case x == os.PathSeparator:
			return -1
		case y == os.PathSeparator:
			return 1
		case x < y:
			return -1
		default:
			return 1
		}
	}

	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

func components(p string) int {
	if p == "" {
		return 0
	}
	return strings.Count(p, string(os.PathSeparator)) + 1
}
