package board

import (
	"fmt"
	"strings"

	"blockblast/internal/shapes"
)

// Cell is one grid square. Color is an opaque token carried for rendering;
// only Filled matters to the rules.
type Cell struct {
	Filled bool
	Color  string
}

// Board is a fixed N×N grid. Rows never change length; clearing replaces rows
// wholesale and empties columns in place.
type Board struct {
	n     int
	cells [][]Cell
}

// Clear describes the outcome of ClearFullLines. Rows and Cols hold the
// indices of the full lines found before anything was cleared.
type Clear struct {
	Rows []int
	Cols []int
}

// Lines is the number of cleared lines, rows and columns counted separately.
func (c Clear) Lines() int { return len(c.Rows) + len(c.Cols) }

func New(n int) *Board {
	if n < 1 {
		panic(fmt.Sprintf("board: size must be positive, got %d", n))
	}
	b := &Board{n: n, cells: make([][]Cell, n)}
	for r := range b.cells {
		b.cells[r] = make([]Cell, n)
	}
	return b
}

// FromRows builds a board from a drawing, 'X' filled and '.' empty. It panics
// unless the drawing is square.
func FromRows(rows []string, color string) *Board {
	b := New(len(rows))
	for r, line := range rows {
		if len(line) != b.n {
			panic(fmt.Sprintf("board: row %d has length %d, want %d", r, len(line), b.n))
		}
		for c, ch := range line {
			if ch == 'X' {
				b.cells[r][c] = Cell{Filled: true, Color: color}
			}
		}
	}
	return b
}

func (b *Board) Size() int { return b.n }

// At returns the cell at (r, c). Out-of-range coordinates read as empty.
func (b *Board) At(r, c int) Cell {
	if !b.inBounds(r, c) {
		return Cell{}
	}
	return b.cells[r][c]
}

// Cells returns a deep copy of the grid.
func (b *Board) Cells() [][]Cell {
	out := make([][]Cell, b.n)
	for r, row := range b.cells {
		out[r] = make([]Cell, b.n)
		copy(out[r], row)
	}
	return out
}

func (b *Board) Clone() *Board {
	return &Board{n: b.n, cells: b.Cells()}
}

func (b *Board) FilledCount() int {
	n := 0
	for _, row := range b.cells {
		for _, cell := range row {
			if cell.Filled {
				n++
			}
		}
	}
	return n
}

func (b *Board) Empty() bool { return b.FilledCount() == 0 }

func (b *Board) inBounds(r, c int) bool {
	return r >= 0 && r < b.n && c >= 0 && c < b.n
}

// IsLegalPlacement reports whether every occupied cell of shape, anchored with
// its origin at (row, col), lands on an in-bounds empty cell.
func (b *Board) IsLegalPlacement(shape shapes.Shape, row, col int) bool {
	for r := 0; r < shape.Rows(); r++ {
		for c := 0; c < shape.Cols(); c++ {
			if !shape.Filled(r, c) {
				continue
			}
			ar, ac := row+r, col+c
			if !b.inBounds(ar, ac) || b.cells[ar][ac].Filled {
				return false
			}
		}
	}
	return true
}

// Commit fills the shape's cells with color. The placement must be legal;
// an illegal commit panics before any cell is written.
func (b *Board) Commit(shape shapes.Shape, row, col int, color string) {
	if !b.IsLegalPlacement(shape, row, col) {
		panic(fmt.Sprintf("board: commit of illegal placement %q at (%d,%d)", shape.Name(), row, col))
	}
	for _, off := range shape.Offsets() {
		b.cells[row+off.Row][col+off.Col] = Cell{Filled: true, Color: color}
	}
}

func (b *Board) rowFull(r int) bool {
	for _, cell := range b.cells[r] {
		if !cell.Filled {
			return false
		}
	}
	return true
}

func (b *Board) colFull(c int) bool {
	for r := 0; r < b.n; r++ {
		if !b.cells[r][c].Filled {
			return false
		}
	}
	return true
}

// ClearFullLines removes full rows, inserting fresh empty rows at the top,
// then empties the full columns in place. Rows and columns are both detected
// before anything is cleared: the inserted top row is always empty, so a
// column scan after the row pass could never find a full column. A cell on
// both a full row and a full column is emptied once but counts toward both
// lines.
func (b *Board) ClearFullLines() Clear {
	var cleared Clear
	for r := 0; r < b.n; r++ {
		if b.rowFull(r) {
			cleared.Rows = append(cleared.Rows, r)
		}
	}
	for c := 0; c < b.n; c++ {
		if b.colFull(c) {
			cleared.Cols = append(cleared.Cols, c)
		}
	}

	if len(cleared.Rows) > 0 {
		grid := make([][]Cell, 0, b.n)
		for range cleared.Rows {
			grid = append(grid, make([]Cell, b.n))
		}
		for r, row := range b.cells {
			if !b.rowFull(r) {
				grid = append(grid, row)
			}
		}
		b.cells = grid
	}

	// Columns keep their index across the row pass.
	for _, c := range cleared.Cols {
		for r := 0; r < b.n; r++ {
			b.cells[r][c] = Cell{}
		}
	}

	return cleared
}

// FitsAnywhere reports whether shape has at least one legal anchor.
func (b *Board) FitsAnywhere(shape shapes.Shape) bool {
	for r := 0; r < b.n; r++ {
		for c := 0; c < b.n; c++ {
			if b.IsLegalPlacement(shape, r, c) {
				return true
			}
		}
	}
	return false
}

// HasAnyLegalPlacement reports whether any of the shapes fits somewhere.
func (b *Board) HasAnyLegalPlacement(candidates []shapes.Shape) bool {
	for _, s := range candidates {
		if b.FitsAnywhere(s) {
			return true
		}
	}
	return false
}

func (b *Board) String() string {
	var sb strings.Builder
	for r, row := range b.cells {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for _, cell := range row {
			if cell.Filled {
				sb.WriteByte('X')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}
