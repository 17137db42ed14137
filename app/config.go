package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"splitkb/firmware/event"
	"splitkb/firmware/keymap"
	"splitkb/firmware/layout"
	"splitkb/firmware/link"
	"splitkb/firmware/matrix"
)

// Side tells which half the firmware runs on. The right half is wired as a
// mirror image of the left one.
type Side uint8

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Right {
		return "right"
	}
	return "left"
}

// ParseSide accepts "left" or "right".
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(s) {
	case "left", "l":
		return Left, nil
	case "right", "r":
		return Right, nil
	default:
		return Left, fmt.Errorf("app: unknown side %q", s)
	}
}

// QueueFullPolicy decides what happens when the dispatch queue overflows.
type QueueFullPolicy uint8

const (
	// QueueFullHalt stops the firmware.
	QueueFullHalt QueueFullPolicy = iota
	// QueueFullDropNewest logs and drops the event that did not fit.
	QueueFullDropNewest
)

func (p QueueFullPolicy) String() string {
	if p == QueueFullDropNewest {
		return "drop"
	}
	return "halt"
}

// ParseQueueFull accepts "halt" or "drop".
func ParseQueueFull(s string) (QueueFullPolicy, error) {
	switch strings.ToLower(s) {
	case "halt":
		return QueueFullHalt, nil
	case "drop":
		return QueueFullDropNewest, nil
	default:
		return QueueFullHalt, fmt.Errorf("app: unknown queue-full policy %q", s)
	}
}

// Config describes one half.
type Config struct {
	Side Side

	// Rows and Cols are the dimensions of this half's matrix.
	Rows int
	Cols int
	// UnifiedCols is the column count of both halves together.
	UnifiedCols int

	DebounceThreshold uint8

	LinkBaud         uint32
	LinkWriteTimeout time.Duration

	QueueFull QueueFullPolicy

	// Layers is the keymap over Rows×UnifiedCols.
	Layers layout.Layers

	// StatusEvery is the status panel refresh period in ticks; 0 disables it.
	StatusEvery uint32
}

// DefaultConfig returns the configuration of the left half with the
// built-in keymap.
func DefaultConfig() Config {
	return Config{
		Side:              Left,
		Rows:              keymap.Rows,
		Cols:              keymap.Cols / 2,
		UnifiedCols:       keymap.Cols,
		DebounceThreshold: matrix.DefaultThreshold,
		LinkBaud:          link.DefaultBaud,
		LinkWriteTimeout:  link.DefaultWriteTimeout,
		QueueFull:         QueueFullHalt,
		Layers:            keymap.Default(),
		StatusEvery:       100,
	}
}

// Validate reports every configuration error found.
func (c Config) Validate() error {
	var errs []error
	if c.Rows <= 0 || c.Rows > matrix.MaxRows {
		errs = append(errs, fmt.Errorf("rows %d out of range 1..%d", c.Rows, matrix.MaxRows))
	}
	if c.Cols <= 0 || c.Cols > matrix.MaxCols {
		errs = append(errs, fmt.Errorf("cols %d out of range 1..%d", c.Cols, matrix.MaxCols))
	}
	if c.UnifiedCols < c.Cols || c.UnifiedCols > event.MaxCoordinate {
		errs = append(errs, fmt.Errorf("unified cols %d out of range %d..%d", c.UnifiedCols, c.Cols, event.MaxCoordinate))
	}
	if c.LinkBaud == 0 {
		errs = append(errs, errors.New("link baud is zero"))
	}
	if c.Side > Right {
		errs = append(errs, fmt.Errorf("unknown side %d", c.Side))
	}
	if c.QueueFull > QueueFullDropNewest {
		errs = append(errs, fmt.Errorf("unknown queue-full policy %d", c.QueueFull))
	}
	if err := layout.Validate(c.Layers); err != nil {
		errs = append(errs, err)
	} else if len(c.Layers[0]) != c.Rows || len(c.Layers[0][0]) != c.UnifiedCols {
		errs = append(errs, fmt.Errorf("keymap is %dx%d, want %dx%d",
			len(c.Layers[0]), len(c.Layers[0][0]), c.Rows, c.UnifiedCols))
	}
	if len(errs) > 0 {
		return fmt.Errorf("app: invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// transform maps this half's local coordinates into the unified matrix.
func (c Config) transform() event.Transform {
	if c.Side == Right {
		return event.MirrorCols(uint8(c.UnifiedCols - 1))
	}
	return event.Identity
}
