//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"splitkb/app"
	"splitkb/internal/keymapfile"
	"splitkb/sim"
)

func main() {
	var (
		headless   bool
		hcfg       sim.HeadlessConfig
		usb        string
		keymapPath string
		scriptPath string
		queue      string
	)
	flag.BoolVar(&headless, "headless", false, "Run without a window.")
	flag.IntVar(&hcfg.Hz, "hz", 0, "Step rate in headless mode (0 = as fast as possible).")
	flag.Uint64Var(&hcfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = until the script ends, or forever).")
	flag.StringVar(&usb, "usb", "left", "Half with the USB cable: left, right or none.")
	flag.StringVar(&keymapPath, "keymap", "", "YAML keymap to load instead of the built-in one.")
	flag.StringVar(&scriptPath, "script", "", "Switch script to play in headless mode.")
	flag.StringVar(&queue, "queue", "halt", "Event queue overflow policy: halt or drop.")
	flag.Parse()

	if err := run(headless, hcfg, usb, keymapPath, scriptPath, queue); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(headless bool, hcfg sim.HeadlessConfig, usb, keymapPath, scriptPath, queue string) error {
	base := app.DefaultConfig()
	policy, err := app.ParseQueueFull(queue)
	if err != nil {
		return err
	}
	base.QueueFull = policy
	if keymapPath != "" {
		if base.Layers, err = keymapfile.Load(keymapPath); err != nil {
			return err
		}
	}
	attach, err := sim.ParseAttach(usb)
	if err != nil {
		return err
	}

	cfg := sim.Config{Base: base}
	if !headless {
		cfg.PanelW, cfg.PanelH, cfg.ConsoleH = 128, 32, 120
	}
	b, err := sim.New(cfg)
	if err != nil {
		return err
	}
	b.Attach(attach)

	if !headless {
		return sim.RunWindow(b)
	}

	if scriptPath != "" {
		f, err := os.Open(scriptPath)
		if err != nil {
			return err
		}
		hcfg.Script, err = sim.ParseScript(f)
		f.Close()
		if err != nil {
			return err
		}
	}
	hcfg.Out = os.Stdout
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return sim.RunHeadless(ctx, b, hcfg)
}
