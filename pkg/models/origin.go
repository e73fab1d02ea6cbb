package models

// Origin indicates which tree(s) produced a path during the merge
type Origin string

const (
	// OriginLeft indicates the path exists in the old tree only
	OriginLeft Origin = "left"
	// OriginRight indicates the path exists in the new tree only
	OriginRight Origin = "right"
	// OriginBoth indicates the path exists in both trees
	OriginBoth Origin = "both"
)
