// colorsense - read and classify colours from an I2C colour sensor
//
// colorsense reads raw red, green, blue and infrared counts from an
// APDS-9151 sensor and matches them against calibrated reference colours.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/colorsense/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
