package engine

import (
	"errors"

	"github.com/crossplay/banana-engine/pkg/board"
	"github.com/crossplay/banana-engine/pkg/multiset"
)

// ErrDump is returned when play_from_scratch's candidate list is empty
// or play_further exhausts all options without success — spec.md §7's
// "No valid words can be formed from the current letters."  Budget
// exhaustion returns the identical error, since it is indistinguishable
// from a dump externally.
var ErrDump = errors.New("no valid words can be formed from the current letters")

// ErrInvalidInput is returned for hands that fail validation before the
// engine is invoked at all (count out of range, sum < 2).
var ErrInvalidInput = errors.New("invalid input")

// Result is a successful solve's output: the board, the play sequence
// that produced it (for replay and for "*"-marking in the host's
// display format), and the hand as consumed.
type Result struct {
	Board   *board.Board
	PlaySeq []Placement
	Hand    multiset.Hand
}

// TightBBox returns the tight bounding box over Result.Board's occupied
// region, recomputed at return time per spec.md §4.2.
func (r *Result) TightBBox() board.BoundingBox {
	return r.Board.TightBoundingBox()
}
