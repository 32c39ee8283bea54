package engine

import (
	"math"

	"github.com/crossplay/banana-engine/pkg/board"
	"github.com/crossplay/banana-engine/pkg/dictionary"
	"github.com/crossplay/banana-engine/pkg/multiset"
)

// seedRow is the fixed row every seed word is laid on, per spec.md
// §4.7/§9's deliberate horizontal-only, center-biased seed discipline.
const seedRow = board.Size / 2

// firstSeedsWithOwnBudget is the number of initial seed words that each
// get their own fresh budget, per spec.md §4.5/§9's resolution of the
// per-seed-word budget question; subsequent seeds share one global
// counter.
const firstSeedsWithOwnBudget = 6

// PlayFromScratch fills the dictionary down to makeable words, seeds
// each in descending-length order at the board center, and searches
// outward with PlayFurther. It accepts the first seed word that yields
// a complete solution.
func PlayFromScratch(hand multiset.Hand, dict *dictionary.Store, cfg Config) (*Result, error) {
	if err := hand.Validate(); err != nil {
		return nil, ErrInvalidInput
	}

	candidates := dict.Makeable(func(w []byte) bool { return IsMakeable(w, hand) })
	if len(candidates) == 0 {
		return nil, ErrDump
	}

	var globalBudget *budget
	for i, seed := range candidates {
		b := board.New()
		startCol := seedRow - roundHalf(len(seed))
		seedResult := board.PlaySeed(b, seed, seedRow, startCol, true, hand)
		if seedResult.Class != board.Finished && seedResult.Class != board.Remaining {
			continue
		}

		playSeq := []Placement{{Word: seed, StartRow: seedRow, StartCol: startCol, Direction: board.Horizontal}}
		if seedResult.Class == board.Finished {
			return &Result{Board: b, PlaySeq: playSeq, Hand: seedResult.Hand}, nil
		}

		overlap := distinctLetters(seed)
		reduced := dict.Makeable(func(w []byte) bool {
			return CheckFilterAfterPlay(seedResult.Hand, w, overlap, cfg.maxOverlap())
		})

		var bd *budget
		if i < firstSeedsWithOwnBudget {
			bd = newBudget(cfg.MaxWordsToCheck)
		} else {
			if globalBudget == nil {
				globalBudget = newBudget(cfg.MaxWordsToCheck)
			}
			bd = globalBudget
		}

		search := PlayFurther(b, reduced, dict, seedResult.Hand, 0, &playSeq, nil, cfg, bd)
		if search.Outcome == OutcomeSuccess {
			return &Result{Board: b, PlaySeq: playSeq, Hand: search.Hand}, nil
		}
	}

	return nil, ErrDump
}

// PlayOneLetter implements the incremental one-tile extension of
// spec.md §4.6: it scans the halo of empty cells bordering the occupied
// region for a single-cell placement of letter that leaves the board
// valid. It never touches the multi-word search machinery.
func PlayOneLetter(prev *Result, letter byte, dict *dictionary.Store) (*Result, bool) {
	bbox := prev.Board.BBox
	if !bbox.Defined {
		return nil, false
	}
	for row := bbox.MinRow - 1; row <= bbox.MaxRow+1; row++ {
		for col := bbox.MinCol - 1; col <= bbox.MaxCol+1; col++ {
			if row < 0 || col < 0 || row >= board.Size || col >= board.Size {
				continue
			}
			if prev.Board.At(row, col) != board.Empty {
				continue
			}
			if !adjacentToOccupied(prev.Board, row, col) {
				continue
			}

			candidate := copyBoard(prev.Board)
			candidate.Cells[row*board.Size+col] = letter
			candidate.BBox = prev.Board.BBox
			widenTo(&candidate.BBox, row, col)

			if !board.IsValidHorizontal(candidate, row, col, col, dict) {
				continue
			}
			if !board.IsValidVertical(candidate, col, row, row, dict) {
				continue
			}

			newHand := prev.Hand
			newHand.Add(int(letter))
			playSeq := append(append([]Placement{}, prev.PlaySeq...), Placement{
				Word: []byte{letter}, StartRow: row, StartCol: col, Direction: board.Horizontal,
			})
			return &Result{Board: candidate, PlaySeq: playSeq, Hand: newHand}, true
		}
	}
	return nil, false
}

// PlayFromExisting re-seeds the board with the prior sequence's first
// placement and replays the rest through PlayFurther's replay branch
// (spec.md §4.7). It returns false (mapped to the host's "null" result
// per spec.md §7) if the replay cannot complete: hand mismatch, or a
// later placement no longer valid.
func PlayFromExisting(prevPlaySeq []Placement, hand multiset.Hand, dict *dictionary.Store, cfg Config) (*Result, bool) {
	if len(prevPlaySeq) == 0 {
		return nil, false
	}
	if err := hand.Validate(); err != nil {
		return nil, false
	}

	seed := prevPlaySeq[0]
	b := board.New()
	seedResult := board.PlaySeed(b, seed.Word, seed.StartRow, seed.StartCol, seed.Direction == board.Horizontal, hand)
	if seedResult.Class != board.Finished && seedResult.Class != board.Remaining {
		return nil, false
	}

	playSeq := []Placement{seed}
	if seedResult.Class == board.Finished {
		return &Result{Board: b, PlaySeq: playSeq, Hand: seedResult.Hand}, true
	}

	bd := newBudget(cfg.MaxWordsToCheck)
	search := PlayFurther(b, dict.Words, dict, seedResult.Hand, 0, &playSeq, prevPlaySeq, cfg, bd)
	if search.Outcome != OutcomeSuccess {
		return nil, false
	}
	return &Result{Board: b, PlaySeq: playSeq, Hand: search.Hand}, true
}

// Decide implements the entry-strategy decision table of spec.md §4.7.
func Decide(prev *Result, prevHand, newHand multiset.Hand, dict *dictionary.Store, cfg Config) (*Result, error) {
	if prev == nil {
		return PlayFromScratch(newHand, dict, cfg)
	}

	switch multiset.Compare(prevHand, newHand) {
	case multiset.Same:
		return prev, nil

	case multiset.GreaterByOne:
		added := addedLetter(prevHand, newHand)
		if r, ok := PlayOneLetter(prev, added, dict); ok {
			return r, nil
		}
		if r, ok := PlayFromExisting(prev.PlaySeq, newHand, dict, cfg); ok {
			return r, nil
		}
		return PlayFromScratch(newHand, dict, cfg)

	case multiset.GreaterByMoreThanOne:
		if r, ok := PlayFromExisting(prev.PlaySeq, newHand, dict, cfg); ok {
			return r, nil
		}
		return PlayFromScratch(newHand, dict, cfg)

	default: // multiset.SomeLess
		return PlayFromScratch(newHand, dict, cfg)
	}
}

func addedLetter(prevHand, newHand multiset.Hand) byte {
	for i := 0; i < multiset.NumLetters; i++ {
		if newHand[i] > prevHand[i] {
			return byte(i)
		}
	}
	return 0
}

func distinctLetters(word []byte) map[byte]bool {
	set := make(map[byte]bool, len(word))
	for _, l := range word {
		set[l] = true
	}
	return set
}

func roundHalf(length int) int {
	return int(math.Round(float64(length) / 2))
}

func adjacentToOccupied(b *board.Board, row, col int) bool {
	deltas := [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	for _, d := range deltas {
		r, c := row+d[0], col+d[1]
		if r < 0 || c < 0 || r >= board.Size || c >= board.Size {
			continue
		}
		if b.At(r, c) != board.Empty {
			return true
		}
	}
	return false
}

func copyBoard(b *board.Board) *board.Board {
	cp := &board.Board{}
	cp.Cells = b.Cells
	cp.BBox = b.BBox
	return cp
}

func widenTo(bb *board.BoundingBox, row, col int) {
	if !bb.Defined {
		*bb = board.BoundingBox{MinRow: row, MaxRow: row, MinCol: col, MaxCol: col, Defined: true}
		return
	}
	if row < bb.MinRow {
		bb.MinRow = row
	}
	if row > bb.MaxRow {
		bb.MaxRow = row
	}
	if col < bb.MinCol {
		bb.MinCol = col
	}
	if col > bb.MaxCol {
		bb.MaxCol = col
	}
}
