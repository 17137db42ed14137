//go:build !tinygo

package hal

import (
	"fmt"
	"sync"
)

// SwitchMatrix simulates a diode matrix of normally-open switches wired
// between row outputs and pulled-up column inputs.
type SwitchMatrix struct {
	mu      sync.Mutex
	rows    []*virtualPin
	cols    []*matrixColPin
	closed  [][]bool
	chatter [][]int

	// chatterReads is how many column reads after a switch change report
	// contact bounce.
	chatterReads int
}

// NewSwitchMatrix returns a rows×cols matrix with every switch open.
func NewSwitchMatrix(name string, rows, cols int) *SwitchMatrix {
	m := &SwitchMatrix{
		closed:  make([][]bool, rows),
		chatter: make([][]int, rows),
	}
	for r := 0; r < rows; r++ {
		m.closed[r] = make([]bool, cols)
		m.chatter[r] = make([]int, cols)
		m.rows = append(m.rows, newVirtualPin(fmt.Sprintf("%s.ROW%d", name, r), GPIOCapInput|GPIOCapOutput))
	}
	for c := 0; c < cols; c++ {
		m.cols = append(m.cols, &matrixColPin{m: m, col: c, name: fmt.Sprintf("%s.COL%d", name, c)})
	}
	return m
}

func (m *SwitchMatrix) Rows() []GPIOPin {
	out := make([]GPIOPin, len(m.rows))
	for i, p := range m.rows {
		out[i] = p
	}
	return out
}

func (m *SwitchMatrix) Cols() []GPIOPin {
	out := make([]GPIOPin, len(m.cols))
	for i, p := range m.cols {
		out[i] = p
	}
	return out
}

// SetChatter makes every subsequent switch change bounce for n column reads.
func (m *SwitchMatrix) SetChatter(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n < 0 {
		n = 0
	}
	m.chatterReads = n
}

// Set closes (pressed=true) or opens the switch at (row, col).
func (m *SwitchMatrix) Set(row, col int, pressed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if row < 0 || row >= len(m.closed) || col < 0 || col >= len(m.closed[row]) {
		return
	}
	if m.closed[row][col] == pressed {
		return
	}
	m.closed[row][col] = pressed
	m.chatter[row][col] = m.chatterReads
}

// Pressed reports the physical state of the switch at (row, col).
func (m *SwitchMatrix) Pressed(row, col int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if row < 0 || row >= len(m.closed) || col < 0 || col >= len(m.closed[row]) {
		return false
	}
	return m.closed[row][col]
}

// sample returns the column level: low when a closed switch connects it to
// a row that is being driven low.
func (m *SwitchMatrix) sample(col int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	level := true
	for r, row := range m.rows {
		row.mu.Lock()
		driven := row.configured && row.mode == GPIOModeOutput && !row.level
		row.mu.Unlock()
		if !driven {
			continue
		}
		closed := m.closed[r][col]
		if n := m.chatter[r][col]; n > 0 {
			m.chatter[r][col] = n - 1
			if n%2 == 0 {
				closed = !closed
			}
		}
		if closed {
			level = false
		}
	}
	return level
}

type matrixColPin struct {
	m    *SwitchMatrix
	col  int
	name string

	mu         sync.Mutex
	configured bool
}

func (p *matrixColPin) Name() string   { return p.name }
func (p *matrixColPin) Caps() GPIOCaps { return GPIOCapInput | GPIOCapPullUp }

func (p *matrixColPin) Configure(mode GPIOMode, pull GPIOPull) error {
	if err := checkConfig(p.name, p.Caps(), mode, pull); err != nil {
		return err
	}
	if pull != GPIOPullUp {
		return fmt.Errorf("gpio: pin %s: matrix column needs pull-up", p.name)
	}
	p.mu.Lock()
	p.configured = true
	p.mu.Unlock()
	return nil
}

func (p *matrixColPin) Read() (bool, error) {
	p.mu.Lock()
	ok := p.configured
	p.mu.Unlock()
	if !ok {
		return false, fmt.Errorf("gpio: pin %s: not configured", p.name)
	}
	return p.m.sample(p.col), nil
}

func (p *matrixColPin) Write(level bool) error {
	_ = level
	return fmt.Errorf("gpio: pin %s: output unsupported", p.name)
}
