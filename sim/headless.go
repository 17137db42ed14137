//go:build !tinygo

package sim

import (
	"context"
	"fmt"
	"io"
	"time"
)

// HeadlessConfig controls the no-window runner.
type HeadlessConfig struct {
	// Hz is the step rate; 0 runs as fast as possible.
	Hz int
	// Ticks stops the run after that many steps. With a script and no
	// limit the run ends Tail steps after the last command.
	Ticks uint64
	Tail  uint64

	Script []Command
	// Out receives one line per report.
	Out io.Writer
}

// RunHeadless steps the bench without opening a window.
func RunHeadless(ctx context.Context, b *Bench, cfg HeadlessConfig) error {
	if cfg.Hz < 0 {
		return fmt.Errorf("sim: invalid headless hz: %d", cfg.Hz)
	}
	if cfg.Tail == 0 {
		cfg.Tail = 500
	}
	if cfg.Out != nil {
		out := cfg.Out
		b.OnReport(func(r Report) { fmt.Fprintln(out, FormatReport(r)) })
		defer b.OnReport(nil)
	}
	player := NewPlayer(cfg.Script)
	limit := cfg.Ticks
	if limit == 0 && len(cfg.Script) > 0 {
		limit = player.LastTick() + cfg.Tail
	}

	var tc <-chan time.Time
	if cfg.Hz > 0 {
		t := time.NewTicker(time.Second / time.Duration(cfg.Hz))
		defer t.Stop()
		tc = t.C
	}

	for limit == 0 || b.Tick() < limit {
		if tc != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tc:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
		if err := player.Step(b); err != nil {
			return err
		}
	}
	return nil
}
