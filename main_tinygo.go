//go:build tinygo

package main

import (
	"fixbrot/app"
	"fixbrot/hal"
)

func main() {
	app.Run(hal.New())
}
