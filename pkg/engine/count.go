package engine

import (
	"github.com/sdejongh/durduff/pkg/storage"
	"github.com/sdejongh/durduff/pkg/stream"
	"github.com/sdejongh/durduff/pkg/walk"
)

// CountTotal counts the paths of the merged trees, ignoring traversal
// errors. It walks both trees once and is used as the initial progress
// estimate.
func CountTotal(left, right storage.Backend) int {
	merged := stream.Merge[string](
		stream.IgnoreErrors[string](walk.New(left)),
		stream.IgnoreErrors[string](walk.New(right)),
		walk.ComparePaths,
	)
	return stream.Count[stream.Tagged[string]](merged)
}
