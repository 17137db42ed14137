// Package matrix scans a diode key matrix and debounces it into events.
package matrix

const (
	MaxRows = 8
	MaxCols = 16
)

// Grid is one instantaneous sample of the matrix: true means the switch is
// electrically closed.
type Grid struct {
	rows  uint8
	cols  uint8
	cells [MaxRows][MaxCols]bool
}

// NewGrid returns an open grid of the given size. Dimensions are clamped to
// MaxRows×MaxCols.
func NewGrid(rows, cols int) Grid {
	if rows > MaxRows {
		rows = MaxRows
	}
	if cols > MaxCols {
		cols = MaxCols
	}
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return Grid{rows: uint8(rows), cols: uint8(cols)}
}

func (g Grid) Rows() int { return int(g.rows) }
func (g Grid) Cols() int { return int(g.cols) }

// At reports the cell at (row, col); out-of-range cells read as open.
func (g Grid) At(row, col int) bool {
	if row < 0 || col < 0 || row >= int(g.rows) || col >= int(g.cols) {
		return false
	}
	return g.cells[row][col]
}

// Set stores a cell; out-of-range writes are ignored.
func (g *Grid) Set(row, col int, closed bool) {
	if row < 0 || col < 0 || row >= int(g.rows) || col >= int(g.cols) {
		return
	}
	g.cells[row][col] = closed
}
