//go:build tinygo && baremetal

package main

import (
	"rotozoom/app"
	"rotozoom/hal"
)

func main() {
	app.Run(hal.New(), app.Config{})
}
