package matrix

import (
	"fmt"

	"splitkb/hal"
)

// Scanner drives a row-strobed matrix: rows are outputs idling high, columns
// are pull-up inputs, and a closed switch pulls its column low while its row
// is driven low.
type Scanner struct {
	rows []hal.GPIOPin
	cols []hal.GPIOPin
}

// NewScanner configures the pins. Any failure here is a wiring error and the
// firmware must not start scanning.
func NewScanner(rows, cols []hal.GPIOPin) (*Scanner, error) {
	if len(rows) == 0 || len(rows) > MaxRows {
		return nil, fmt.Errorf("matrix: %d rows, want 1..%d", len(rows), MaxRows)
	}
	if len(cols) == 0 || len(cols) > MaxCols {
		return nil, fmt.Errorf("matrix: %d cols, want 1..%d", len(cols), MaxCols)
	}
	for i, p := range rows {
		if p == nil {
			return nil, fmt.Errorf("matrix: row %d: nil pin", i)
		}
		if err := p.Configure(hal.GPIOModeOutput, hal.GPIOPullNone); err != nil {
			return nil, fmt.Errorf("matrix: row %d: %w", i, err)
		}
		if err := p.Write(true); err != nil {
			return nil, fmt.Errorf("matrix: row %d: %w", i, err)
		}
	}
	for i, p := range cols {
		if p == nil {
			return nil, fmt.Errorf("matrix: col %d: nil pin", i)
		}
		if err := p.Configure(hal.GPIOModeInput, hal.GPIOPullUp); err != nil {
			return nil, fmt.Errorf("matrix: col %d: %w", i, err)
		}
	}
	return &Scanner{rows: rows, cols: cols}, nil
}

func (s *Scanner) Rows() int { return len(s.rows) }
func (s *Scanner) Cols() int { return len(s.cols) }

// Scan samples every switch once. A failed read counts as open.
func (s *Scanner) Scan() Grid {
	g := NewGrid(len(s.rows), len(s.cols))
	for r, row := range s.rows {
		if err := row.Write(false); err != nil {
			continue
		}
		for c, col := range s.cols {
			level, err := col.Read()
			if err != nil {
				continue
			}
			g.cells[r][c] = !level
		}
		_ = row.Write(true)
	}
	return g
}
