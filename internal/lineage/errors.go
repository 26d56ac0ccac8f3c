package lineage

import "errors"

var (
	// ErrUnknownVideo means an edge or query referenced a video id the
	// graph has never been told about.
	ErrUnknownVideo = errors.New("lineage: unknown video")

	// ErrDuplicateParent means the child already has a parent edge. A
	// remix derives from exactly one original.
	ErrDuplicateParent = errors.New("lineage: child already has a parent")

	// ErrCycleDetected means the edge would make a video its own ancestor.
	ErrCycleDetected = errors.New("lineage: edge would create a cycle")

	// ErrLineageTooDeep means an ancestry walk exceeded the configured
	// maximum depth. Guards royalty computation against corrupted data.
	ErrLineageTooDeep = errors.New("lineage: ancestry exceeds maximum depth")

	// ErrRoyaltyOutOfRange means a royalty percentage was outside [0, 100].
	ErrRoyaltyOutOfRange = errors.New("lineage: royalty percentage out of range")
)
