package engine

import (
	"testing"

	"github.com/crossplay/banana-engine/pkg/multiset"
)

func hand(letters string) multiset.Hand {
	var h multiset.Hand
	for _, r := range letters {
		h[r-'A']++
	}
	return h
}

func word(s string) []byte {
	out := make([]byte, len(s))
	for i, r := range s {
		out[i] = byte(r - 'A')
	}
	return out
}

func TestCheckFilterAfterPlaySingleOverlap(t *testing.T) {
	h := hand("RTS") // hand has R, T, S but no C or A
	overlap := map[byte]bool{byte('C' - 'A'): true, byte('A' - 'A'): true}
	// CAR: borrows C and A from the board (two borrows) with maxOverlap 1 -> must fail.
	if CheckFilterAfterPlay(h, word("CAR"), overlap, 1) {
		t.Error("a word needing two board letters should fail with maxOverlap=1")
	}
	// CAR with maxOverlap 2 -> succeeds.
	if !CheckFilterAfterPlay(h, word("CAR"), overlap, 2) {
		t.Error("a word needing two board letters should succeed with maxOverlap=2")
	}
}

func TestCheckFilterAfterPlayRejectsUnavailableLetter(t *testing.T) {
	h := hand("RTS")
	overlap := map[byte]bool{byte('C' - 'A'): true}
	// RATS needs an A, which is neither in hand nor in overlap.
	if CheckFilterAfterPlay(h, word("RATS"), overlap, 1) {
		t.Error("a word needing an unavailable letter should fail")
	}
}

func TestCheckFilterAfterPlayAllFromHand(t *testing.T) {
	h := hand("CAT")
	if !CheckFilterAfterPlay(h, word("CAT"), map[byte]bool{}, 1) {
		t.Error("a word fully makeable from hand should always pass")
	}
}
