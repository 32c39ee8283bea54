package board

// WordSet is the membership surface validators need from a dictionary.
// pkg/dictionary.Store satisfies this directly.
type WordSet interface {
	Contains(word []byte) bool
}

// IsValidHorizontal checks every maximal horizontal and vertical run
// touched by a word placed along row from startCol to endCol. Neither
// validator re-checks cells outside the bounding box, and neither checks
// connectedness (spec.md §4.4 — the anchor check plus seed-at-center
// discipline enforce that elsewhere).
func IsValidHorizontal(b *Board, row, startCol, endCol int, words WordSet) bool {
	if !checkRun(b, row, b.BBox.MinCol, b.BBox.MaxCol, words, true) {
		return false
	}
	for col := startCol; col <= endCol; col++ {
		if !checkRun(b, col, b.BBox.MinRow, b.BBox.MaxRow, words, false) {
			return false
		}
	}
	return true
}

// IsValidVertical is the symmetric counterpart of IsValidHorizontal for
// a word placed along col from startRow to endRow.
func IsValidVertical(b *Board, col, startRow, endRow int, words WordSet) bool {
	if !checkRun(b, col, b.BBox.MinRow, b.BBox.MaxRow, words, false) {
		return false
	}
	for row := startRow; row <= endRow; row++ {
		if !checkRun(b, row, b.BBox.MinCol, b.BBox.MaxCol, words, true) {
			return false
		}
	}
	return true
}

// checkRun walks a single row (horizontal=true, fixed=row index) or
// column (horizontal=false, fixed=col index) across [lo,hi], accumulates
// maximal runs of non-empty cells, and rejects if any run of length >= 2
// is missing from words.
func checkRun(b *Board, fixed, lo, hi int, words WordSet, horizontal bool) bool {
	if !b.BBox.Defined {
		return true
	}
	runStart := -1
	var symbols []byte

	flush := func(endExclusive int) bool {
		if runStart == -1 {
			return true
		}
		length := endExclusive - runStart
		if length >= 2 && !words.Contains(symbols) {
			return false
		}
		runStart = -1
		symbols = symbols[:0]
		return true
	}

	for i := lo; i <= hi; i++ {
		var cell byte
		if horizontal {
			cell = b.At(fixed, i)
		} else {
			cell = b.At(i, fixed)
		}
		if cell == Empty {
			if !flush(i) {
				return false
			}
			continue
		}
		if runStart == -1 {
			runStart = i
		}
		symbols = append(symbols, cell)
	}
	return flush(hi + 1)
}
