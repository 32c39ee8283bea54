// Package engine implements the recursive backtracking crossword
// constructor: the candidate filter, the depth-first solver with
// horizontal/vertical alternation, and the three entry strategies
// (play-from-scratch, one-letter incremental, play-from-existing).
package engine

import "github.com/crossplay/banana-engine/pkg/multiset"

// IsMakeable reports whether word can be built from hand alone, per
// spec.md §4.1: scanning left to right against a private copy of hand,
// failing on the first underflow.
func IsMakeable(word []byte, hand multiset.Hand) bool {
	return multiset.IsMakeable(word, hand)
}

// CheckFilterAfterPlay determines whether word may be played after a
// seed word already sits on the board, given the remaining hand and the
// set of letters available for borrowing from the board (overlap).
// maxOverlap generalizes the single seen_negative flag from spec.md
// §4.1 into a counter, realizing the filter_letters_on_board dial from
// spec.md §4.5: the candidate may borrow at most maxOverlap letters that
// are zero in hand, provided each such letter is a member of overlap.
// Only the first shortfall of a given letter counts toward maxOverlap;
// further copies of that letter drive its count negative and are not
// counted again.
func CheckFilterAfterPlay(hand multiset.Hand, word []byte, overlap map[byte]bool, maxOverlap int) bool {
	scratch := make([]int8, multiset.NumLetters)
	for i, c := range hand {
		scratch[i] = int8(c)
	}
	borrowed := 0
	for _, letter := range word {
		if scratch[letter] == 0 {
			if !overlap[letter] {
				return false
			}
			if borrowed >= maxOverlap {
				return false
			}
			borrowed++
		}
		scratch[letter]--
	}
	return true
}
