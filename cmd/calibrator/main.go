// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// ./cmd/calibrator/main.go
//
// Min/max calibration for a triaxial sensor (magnetometer by default).
// Reads raw "x y z" readings, fits per-axis min/max values so the scaled
// readings lie on the unit sphere, and prints them on one line:
//
//	min_x max_x min_y max_y min_z max_z
//
// Run:
//
//	minimu9-ahrs --mode raw | go run ./cmd/calibrator > ~/.minimu9-ahrs-cal
//	go run ./cmd/calibrator -source mqtt -sensor mag -report report.yaml
//
// Progress and warnings go to stderr; stdout only ever carries the result.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/relabs-tech/inertial_calibrator/internal/app"
	"github.com/relabs-tech/inertial_calibrator/internal/config"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "./calibrator.conf", "path to configuration file (optional)")
	flag.Bool("v", false, "print initial/final calibration details and optimizer progress")
	flag.String("source", "", "reading source: stdin, file, serial, mqtt, mpu9250")
	flag.String("input", "", "input file when -source=file")
	flag.String("sensor", "", "sensor block to calibrate: mag, accel, gyro")
	flag.String("output", "", "also write the calibration line to this file")
	flag.String("report", "", "write a YAML report to this file")
	flag.Parse()

	cfg, err := config.LoadOptional(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// Flags given on the command line override the file.
	keys := map[string]string{
		"v":      "VERBOSE",
		"source": "SOURCE",
		"input":  "INPUT_FILE",
		"sensor": "SENSOR",
		"output": "OUTPUT_FILE",
		"report": "REPORT_FILE",
	}
	flag.Visit(func(f *flag.Flag) {
		key, ok := keys[f.Name]
		if !ok || err != nil {
			return
		}
		err = cfg.Set(key, f.Value.String())
	})
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err = app.RunCalibrator(ctx, cfg, os.Stdin, os.Stdout, os.Stderr)
	switch app.Classify(err) {
	case app.KindNone:
		return 0
	case app.KindInterrupted:
		fmt.Fprintln(os.Stderr)
		return 130
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
}
