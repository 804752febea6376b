package shapes

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyShape  = errors.New("shape has no filled cells")
	ErrRaggedShape = errors.New("shape rows have different lengths")
)

// Shape is a piece footprint: a rectangular boolean matrix where true marks an
// occupied cell relative to the shape's top-left origin. Shapes are immutable
// once built.
type Shape struct {
	name  string
	cells [][]bool
}

// Offset is the position of an occupied cell relative to the shape origin.
type Offset struct {
	Row, Col int
}

// NewShape builds a shape from a copy of rows. Empty border rows and columns
// are trimmed, so the origin row and origin column always hold a filled cell.
func NewShape(name string, rows [][]bool) (Shape, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return Shape{}, fmt.Errorf("shape %q: %w", name, ErrEmptyShape)
	}

	width := len(rows[0])
	top, bottom, left, right := len(rows), -1, width, -1
	for r, row := range rows {
		if len(row) != width {
			return Shape{}, fmt.Errorf("shape %q row %d: %w", name, r, ErrRaggedShape)
		}
		for c, v := range row {
			if !v {
				continue
			}
			top, bottom = min(top, r), max(bottom, r)
			left, right = min(left, c), max(right, c)
		}
	}
	if bottom < 0 {
		return Shape{}, fmt.Errorf("shape %q: %w", name, ErrEmptyShape)
	}

	cells := make([][]bool, 0, bottom-top+1)
	for _, row := range rows[top : bottom+1] {
		cells = append(cells, append([]bool(nil), row[left:right+1]...))
	}
	return Shape{name: name, cells: cells}, nil
}

// ParseShape reads a shape drawn with 'X', 'x' or '#' for filled cells and
// '.', '_' or ' ' for empty ones, one row per line. Short rows are padded with
// empty cells up to the widest row; empty border rows and columns are dropped.
func ParseShape(name, drawing string) (Shape, error) {
	lines := strings.Split(strings.Trim(drawing, "\n"), "\n")

	width := 0
	for _, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		if len(line) > width {
			width = len(line)
		}
	}

	rows := make([][]bool, 0, len(lines))
	for i, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		row := make([]bool, width)
		for c, ch := range line {
			switch ch {
			case 'X', 'x', '#':
				row[c] = true
			case '.', '_', ' ':
			default:
				return Shape{}, fmt.Errorf("shape %q line %d: unexpected character %q", name, i+1, ch)
			}
		}
		rows = append(rows, row)
	}

	return NewShape(name, rows)
}

// MustShape is like ParseShape but panics on error. Intended for templates
// declared in code.
func MustShape(name, drawing string) Shape {
	s, err := ParseShape(name, drawing)
	if err != nil {
		panic(err)
	}
	return s
}

func (s Shape) Name() string { return s.name }

func (s Shape) Rows() int { return len(s.cells) }

func (s Shape) Cols() int {
	if len(s.cells) == 0 {
		return 0
	}
	return len(s.cells[0])
}

// Filled reports whether the relative cell (r, c) is occupied. Coordinates
// outside the bounding rectangle are never filled.
func (s Shape) Filled(r, c int) bool {
	if r < 0 || r >= s.Rows() || c < 0 || c >= s.Cols() {
		return false
	}
	return s.cells[r][c]
}

// Cells returns the number of occupied cells.
func (s Shape) Cells() int {
	return len(s.Offsets())
}

// Offsets lists the occupied cells in row-major order.
func (s Shape) Offsets() []Offset {
	var out []Offset
	for r, row := range s.cells {
		for c, v := range row {
			if v {
				out = append(out, Offset{Row: r, Col: c})
			}
		}
	}
	return out
}

func (s Shape) String() string {
	var b strings.Builder
	for r, row := range s.cells {
		if r > 0 {
			b.WriteByte('\n')
		}
		for _, v := range row {
			if v {
				b.WriteByte('X')
			} else {
				b.WriteByte('.')
			}
		}
	}
	return b.String()
}
