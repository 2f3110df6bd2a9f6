//go:build !(tinygo && bootdebug)

package app

import "rotozoom/hal"

func bootStep(hal.HAL, string) {}
