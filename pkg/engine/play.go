package engine

import (
	"github.com/crossplay/banana-engine/pkg/board"
	"github.com/crossplay/banana-engine/pkg/multiset"
)

// Placement is one record in a Play sequence: the word played, its
// start cell, and its orientation.
type Placement struct {
	Word      []byte
	StartRow  int
	StartCol  int
	Direction board.Direction
}

// Outcome is the tagged result of a recursion attempt, matching
// spec.md §9's call for a tagged variant over the solver's search state.
type Outcome int

const (
	// OutcomeFailure means no placement completed the hand at or below
	// this recursion depth.
	OutcomeFailure Outcome = iota
	// OutcomeSuccess means the hand was fully consumed; the resulting
	// bounding box is carried in SearchResult.BBox.
	OutcomeSuccess
)

// SearchResult is what PlayFurther returns. Hand is only meaningful when
// Outcome == OutcomeSuccess: the hand as fully consumed by the winning
// play sequence.
type SearchResult struct {
	Outcome Outcome
	BBox    board.BoundingBox
	Hand    multiset.Hand
}
