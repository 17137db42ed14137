//go:build tinygo && !right

package main

import "splitkb/app"

const side = app.Left
