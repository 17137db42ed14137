//go:build tinygo

package main

import (
	"context"

	"splitkb/app"
	"splitkb/hal"
)

func main() {
	h := hal.New()
	cfg := app.DefaultConfig()
	cfg.Side = side
	sys, err := app.New(h, cfg)
	if err != nil {
		app.Fatal(h, err)
	}
	app.Fatal(h, sys.Run(context.Background()))
}
