// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// ./cmd/calcheck/main.go
//
// Applies a saved calibration to raw readings on stdin and prints the scaled
// vectors and their magnitudes. A good calibration keeps |v| close to 1.
//
// Run:
//
//	minimu9-ahrs --mode raw | head -n 500 | go run ./cmd/calcheck -cal ~/.minimu9-ahrs-cal
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/relabs-tech/inertial_calibrator/internal/app"
	"github.com/relabs-tech/inertial_calibrator/internal/calibration"
)

func main() {
	calPath := flag.String("cal", calibration.DefaultParamsFile, "calibration file written by the calibrator")
	flag.Parse()

	params, err := calibration.LoadParams(*calPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if _, err := app.CheckCalibration(params, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
