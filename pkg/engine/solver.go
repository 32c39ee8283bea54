package engine

import (
	"github.com/crossplay/banana-engine/pkg/board"
	"github.com/crossplay/banana-engine/pkg/multiset"
)

// Config holds the tunable dials exposed by the engine: the filter's
// overlap ceiling and the search budget.
type Config struct {
	// FilterLettersOnBoard raises the ceiling on how many already-placed
	// letters a candidate word may borrow (spec.md §4.5). Zero means
	// the default of 1.
	FilterLettersOnBoard int
	// MaxWordsToCheck bounds outer placement attempts (spec.md §4.5).
	// Zero means unbounded.
	MaxWordsToCheck int
}

func (c Config) maxOverlap() int {
	if c.FilterLettersOnBoard <= 0 {
		return 1
	}
	return c.FilterLettersOnBoard
}

// searchState carries everything PlayFurther threads through recursion
// that does not change per call (the board, candidate list, word set,
// prior play sequence, and budget), kept out of the call's own
// parameters to keep PlayFurther's signature close to spec.md §4.5's.
type searchState struct {
	b              *board.Board
	words          [][]byte
	wordSet        board.WordSet
	priorPlaySeq   []Placement
	bd             *budget
	playSeq        []Placement
}

// PlayFurther is the depth-first engine described in spec.md §4.5. It
// mutates b and playSeq in place; on any non-success return, every cell
// it wrote at or below this depth has been undone.
func PlayFurther(b *board.Board, words [][]byte, wordSet board.WordSet, hand multiset.Hand, depth int, playSeq *[]Placement, priorPlaySeq []Placement, cfg Config, bd *budget) SearchResult {
	st := &searchState{b: b, words: words, wordSet: wordSet, priorPlaySeq: priorPlaySeq, bd: bd}
	return st.playFurther(hand, depth, playSeq, cfg)
}

func (st *searchState) playFurther(hand multiset.Hand, depth int, playSeq *[]Placement, cfg Config) SearchResult {
	// Replay branch: reconstruct a prior solution without re-searching.
	if depth+1 < len(st.priorPlaySeq) {
		p := st.priorPlaySeq[depth+1]
		horiz := p.Direction == board.Horizontal
		result := board.PlayWord(st.b, p.Word, p.StartRow, p.StartCol, horiz, hand)
		switch result.Class {
		case board.Finished:
			*playSeq = append(*playSeq, p)
			return SearchResult{Outcome: OutcomeSuccess, BBox: st.b.BBox, Hand: result.Hand}
		case board.Remaining:
			*playSeq = append(*playSeq, p)
			inner := st.playFurther(result.Hand, depth+1, playSeq, cfg)
			if inner.Outcome == OutcomeSuccess {
				return inner
			}
			*playSeq = (*playSeq)[:len(*playSeq)-1]
			board.UndoPlay(st.b, result.Written)
			return SearchResult{Outcome: OutcomeFailure}
		default:
			return SearchResult{Outcome: OutcomeFailure}
		}
	}

	// Search branch: alternate primary orientation by depth parity.
	// Odd depths try horizontal first, then vertical; even depths the
	// reverse (spec.md §4.5's alternation heuristic).
	orientations := [2]board.Direction{board.Vertical, board.Horizontal}
	if depth%2 == 1 {
		orientations = [2]board.Direction{board.Horizontal, board.Vertical}
	}

	for _, dir := range orientations {
		for _, word := range st.words {
			for _, pos := range candidatePositions(st.b.BBox, dir, len(word)) {
				if !st.bd.consume() {
					return SearchResult{Outcome: OutcomeFailure}
				}
				horiz := dir == board.Horizontal
				result := board.PlayWord(st.b, word, pos.Row, pos.Col, horiz, hand)
				switch result.Class {
				case board.Finished, board.Remaining:
					var valid bool
					if horiz {
						valid = board.IsValidHorizontal(st.b, pos.Row, pos.Col, pos.Col+len(word)-1, st.wordSet)
					} else {
						valid = board.IsValidVertical(st.b, pos.Col, pos.Row, pos.Row+len(word)-1, st.wordSet)
					}
					if !valid {
						board.UndoPlay(st.b, result.Written)
						continue
					}
					placement := Placement{Word: word, StartRow: pos.Row, StartCol: pos.Col, Direction: dir}
					*playSeq = append(*playSeq, placement)
					if result.Class == board.Finished {
						return SearchResult{Outcome: OutcomeSuccess, BBox: st.b.BBox, Hand: result.Hand}
					}
					inner := st.playFurther(result.Hand, depth+1, playSeq, cfg)
					if inner.Outcome == OutcomeSuccess {
						return inner
					}
					*playSeq = (*playSeq)[:len(*playSeq)-1]
					board.UndoPlay(st.b, result.Written)
				default:
					// Rejected or OutOfBounds: try the next candidate.
					continue
				}
			}
		}
	}

	return SearchResult{Outcome: OutcomeFailure}
}

// candidatePositions enumerates the halo of start cells for a word of
// the given length in the given direction, per spec.md §4.5: a
// one-cell-wide expansion of the bounding box plus the word-length-wide
// extension along the placement axis, scanned in row-major order. If
// the bounding box is undefined (empty board), it returns nil.
func candidatePositions(bbox board.BoundingBox, dir board.Direction, wordLen int) []board.Coord {
	if !bbox.Defined {
		return nil
	}
	var positions []board.Coord
	if dir == board.Horizontal {
		for row := bbox.MinRow - 1; row <= bbox.MaxRow+1; row++ {
			for col := bbox.MinCol - wordLen; col <= bbox.MaxCol+1; col++ {
				positions = append(positions, board.Coord{Row: row, Col: col})
			}
		}
		return positions
	}
	for col := bbox.MinCol - 1; col <= bbox.MaxCol+1; col++ {
		for row := bbox.MinRow - wordLen; row <= bbox.MaxRow+1; row++ {
			positions = append(positions, board.Coord{Row: row, Col: col})
		}
	}
	return positions
}
