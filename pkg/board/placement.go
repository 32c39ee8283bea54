package board

import "github.com/crossplay/banana-engine/pkg/multiset"

// PlayClass is the tagged outcome of a placement attempt. spec.md §9
// calls out that this should be a proper tagged variant rather than a
// boolean-plus-string convention.
type PlayClass int

const (
	// Rejected means the placement was not written (not touching
	// the occupied region, a letter conflict, an
	// overused letter, or a pure-overlap placement with no new cells).
	Rejected PlayClass = iota
	// OutOfBounds means the word would extend to or past row/col 143
	// (start+length >= 144, per spec.md §8's boundary property); a
	// distinct signal from ordinary rejection per spec.md §4.3.
	OutOfBounds
	// Remaining means the placement wrote at least one new cell and
	// the hand is not yet fully consumed.
	Remaining
	// Finished means the placement wrote at least one new cell and the
	// hand is now fully consumed (every count is zero).
	Finished
)

// PlayResult is the output of PlayWord: the outcome classification, the
// list of newly written cells (for UndoPlay), and the hand as it stood
// after consuming the placement's new letters.
type PlayResult struct {
	Class   PlayClass
	Written []Coord
	Hand    multiset.Hand
}

// PlaySeed writes word unconditionally starting at (row, col) without an
// anchor check — spec.md §4.3 notes the seed placement bypasses the
// anchor check, handled by the caller (PlayFromScratch) rather than by
// this routine. The board must still have room: out-of-bounds seeds are
// rejected the same as any other placement.
func PlaySeed(b *Board, word []byte, row, col int, horiz bool, hand multiset.Hand) PlayResult {
	return playWord(b, word, row, col, horiz, hand, false)
}

// PlayWord attempts to place word at (row, col) in the given direction,
// requiring the placement to touch the existing occupied region
// (spec.md §4.3's anchor check). See playWord for the full algorithm.
func PlayWord(b *Board, word []byte, row, col int, horiz bool, hand multiset.Hand) PlayResult {
	return playWord(b, word, row, col, horiz, hand, true)
}

func playWord(b *Board, word []byte, row, col int, horiz bool, hand multiset.Hand, requireAnchor bool) PlayResult {
	// 1. Bounds check.
	endRow, endCol := row, col
	if horiz {
		endCol = col + len(word) - 1
	} else {
		endRow = row + len(word) - 1
	}
	// spec.md's boundary property is stated in terms of start+length: a
	// placement with start+length == 144 is out-of-bounds, and
	// start+length == 143 is the last permitted placement. In terms of
	// the end index (start+length-1) that means index 143 itself is
	// already out-of-bounds, so the cutoff is Size-1, not Size.
	if row < 0 || col < 0 || endRow >= Size-1 || endCol >= Size-1 {
		return PlayResult{Class: OutOfBounds}
	}

	// 2. Anchor check (bypassed for seed placements).
	if requireAnchor && !touchesOccupied(b, word, row, col, horiz) {
		return PlayResult{Class: Rejected}
	}

	// 3. Write-and-consume.
	scratch := hand
	var written []Coord
	wroteNewCell := false
	for i, letter := range word {
		r, c := row, col
		if horiz {
			c = col + i
		} else {
			r = row + i
		}
		existing := b.At(r, c)
		switch {
		case existing == Empty:
			if scratch[letter] == 0 {
				undoWritten(b, written)
				return PlayResult{Class: Rejected}
			}
			scratch[letter]--
			b.set(r, c, letter)
			written = append(written, Coord{Row: r, Col: c})
			wroteNewCell = true
		case existing == letter:
			// overlap: leave as-is, neither consumes a tile nor
			// counts as newly written.
		default:
			undoWritten(b, written)
			return PlayResult{Class: Rejected}
		}
	}

	if !wroteNewCell {
		undoWritten(b, written)
		return PlayResult{Class: Rejected}
	}

	b.BBox.widen(min(row, endRow), max(row, endRow), min(col, endCol), max(col, endCol))

	class := Remaining
	if scratch.Sum() == 0 {
		class = Finished
	}
	return PlayResult{Class: class, Written: written, Hand: scratch}
}

// UndoPlay resets each listed cell back to Empty.
func UndoPlay(b *Board, written []Coord) {
	undoWritten(b, written)
}

func undoWritten(b *Board, written []Coord) {
	for _, c := range written {
		b.set(c.Row, c.Col, Empty)
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// touchesOccupied implements spec.md §4.3's anchor check: the placement
// touches the existing occupied region iff the cell immediately before
// the start is occupied, the cell immediately after the end is
// occupied, or any cell adjacent on the perpendicular axis along the
// span is occupied.
func touchesOccupied(b *Board, word []byte, row, col int, horiz bool) bool {
	n := len(word)
	if horiz {
		if col-1 >= 0 && b.At(row, col-1) != Empty {
			return true
		}
		if col+n < Size && b.At(row, col+n) != Empty {
			return true
		}
		for i := 0; i < n; i++ {
			c := col + i
			if row-1 >= 0 && b.At(row-1, c) != Empty {
				return true
			}
			if row+1 < Size && b.At(row+1, c) != Empty {
				return true
			}
		}
		return false
	}

	if row-1 >= 0 && b.At(row-1, col) != Empty {
		return true
	}
	if row+n < Size && b.At(row+n, col) != Empty {
		return true
	}
	for i := 0; i < n; i++ {
		r := row + i
		if col-1 >= 0 && b.At(r, col-1) != Empty {
			return true
		}
		if col+1 < Size && b.At(r, col+1) != Empty {
			return true
		}
	}
	return false
}
