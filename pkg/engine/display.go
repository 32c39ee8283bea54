package engine

import "github.com/crossplay/banana-engine/pkg/board"

// DisplayBoard renders a trimmed 2-D array of display cells over the
// bounding box: " " for empty, a single uppercase letter, or that letter
// followed by "*" for cells present in the prior play (spec.md §6's
// board_string). The prior/new split is computed by comparing playSeq
// against priorPlaySeq index-by-index until the first divergence, then
// marking every cell covered by the matching prefix.
func DisplayBoard(b *board.Board, playSeq, priorPlaySeq []Placement) [][]string {
	bbox := b.TightBoundingBox()
	if !bbox.Defined {
		return nil
	}

	old := coveredByCommonPrefix(playSeq, priorPlaySeq)

	rows := bbox.MaxRow - bbox.MinRow + 1
	cols := bbox.MaxCol - bbox.MinCol + 1
	grid := make([][]string, rows)
	for r := 0; r < rows; r++ {
		grid[r] = make([]string, cols)
		for c := 0; c < cols; c++ {
			row, col := bbox.MinRow+r, bbox.MinCol+c
			cell := b.At(row, col)
			if cell == board.Empty {
				grid[r][c] = " "
				continue
			}
			letter := string(rune('A' + cell))
			if old[board.Coord{Row: row, Col: col}] {
				letter += "*"
			}
			grid[r][c] = letter
		}
	}
	return grid
}

// coveredByCommonPrefix returns the set of cells written by the longest
// leading run of placements that playSeq and priorPlaySeq share in
// common, placement-for-placement.
func coveredByCommonPrefix(playSeq, priorPlaySeq []Placement) map[board.Coord]bool {
	covered := make(map[board.Coord]bool)
	n := len(playSeq)
	if len(priorPlaySeq) < n {
		n = len(priorPlaySeq)
	}
	for i := 0; i < n; i++ {
		if !samePlacement(playSeq[i], priorPlaySeq[i]) {
			break
		}
		markCells(covered, playSeq[i])
	}
	return covered
}

func samePlacement(a, b Placement) bool {
	if a.StartRow != b.StartRow || a.StartCol != b.StartCol || a.Direction != b.Direction {
		return false
	}
	if len(a.Word) != len(b.Word) {
		return false
	}
	for i := range a.Word {
		if a.Word[i] != b.Word[i] {
			return false
		}
	}
	return true
}

func markCells(set map[board.Coord]bool, p Placement) {
	for i := range p.Word {
		r, c := p.StartRow, p.StartCol
		if p.Direction == board.Horizontal {
			c += i
		} else {
			r += i
		}
		set[board.Coord{Row: r, Col: c}] = true
	}
}
