//go:build !tinygo

package sim

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"splitkb/app"
)

// Op is a script command kind.
type Op uint8

const (
	OpPress Op = iota + 1
	OpRelease
	OpUSB
)

// Command is one scripted action, applied before the step with its tick.
type Command struct {
	Tick   uint64
	Op     Op
	Side   app.Side
	Row    int
	Col    int
	Attach Attach
}

// ParseScript reads commands, one per line:
//
//	<tick> press|release left|right <row> <col>
//	<tick> usb left|right|none
//
// Blank lines and lines starting with '#' are ignored. Commands are returned
// sorted by tick, keeping file order within a tick.
func ParseScript(r io.Reader) ([]Command, error) {
	var cmds []Command
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cmd, err := parseLine(strings.Fields(line))
		if err != nil {
			return nil, fmt.Errorf("sim: script line %d: %w", n, err)
		}
		cmds = append(cmds, cmd)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("sim: read script: %w", err)
	}
	sort.SliceStable(cmds, func(i, j int) bool { return cmds[i].Tick < cmds[j].Tick })
	return cmds, nil
}

func parseLine(f []string) (Command, error) {
	if len(f) < 3 {
		return Command{}, fmt.Errorf("want at least 3 fields, got %d", len(f))
	}
	tick, err := strconv.ParseUint(f[0], 10, 64)
	if err != nil {
		return Command{}, fmt.Errorf("tick %q: %w", f[0], err)
	}
	cmd := Command{Tick: tick}
	switch f[1] {
	case "usb":
		if len(f) != 3 {
			return Command{}, fmt.Errorf("usb takes 1 argument, got %d", len(f)-2)
		}
		a, err := ParseAttach(f[2])
		if err != nil {
			return Command{}, err
		}
		cmd.Op = OpUSB
		cmd.Attach = a
		return cmd, nil
	case "press":
		cmd.Op = OpPress
	case "release":
		cmd.Op = OpRelease
	default:
		return Command{}, fmt.Errorf("unknown command %q", f[1])
	}
	if len(f) != 5 {
		return Command{}, fmt.Errorf("%s takes 3 arguments, got %d", f[1], len(f)-2)
	}
	side, err := app.ParseSide(f[2])
	if err != nil {
		return Command{}, err
	}
	cmd.Side = side
	if cmd.Row, err = strconv.Atoi(f[3]); err != nil {
		return Command{}, fmt.Errorf("row %q: %w", f[3], err)
	}
	if cmd.Col, err = strconv.Atoi(f[4]); err != nil {
		return Command{}, fmt.Errorf("col %q: %w", f[4], err)
	}
	return cmd, nil
}

// Apply performs cmd on the bench.
func (b *Bench) Apply(cmd Command) {
	switch cmd.Op {
	case OpUSB:
		b.Attach(cmd.Attach)
	case OpPress:
		b.Set(cmd.Side, cmd.Row, cmd.Col, true)
	case OpRelease:
		b.Set(cmd.Side, cmd.Row, cmd.Col, false)
	}
}

// Player feeds scripted commands to a bench as it steps.
type Player struct {
	cmds []Command
	next int
}

// NewPlayer returns a player for cmds, which must be sorted by tick.
func NewPlayer(cmds []Command) *Player { return &Player{cmds: cmds} }

// Step applies every command due at the bench's next tick, then steps it.
func (p *Player) Step(b *Bench) error {
	due := b.Tick() + 1
	for p.next < len(p.cmds) && p.cmds[p.next].Tick <= due {
		b.Apply(p.cmds[p.next])
		p.next++
	}
	return b.Step()
}

// Done reports whether every command was applied.
func (p *Player) Done() bool { return p.next >= len(p.cmds) }

// LastTick returns the tick of the final command.
func (p *Player) LastTick() uint64 {
	if len(p.cmds) == 0 {
		return 0
	}
	return p.cmds[len(p.cmds)-1].Tick
}

// FormatReport renders r as one line.
func FormatReport(r Report) string {
	return fmt.Sprintf("%6d %-5s % x", r.Tick, r.Side, r.Data[:])
}
