// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package calibration

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/relabs-tech/inertial_calibrator/internal/imu"
)

const (
	DefaultMaxIterations = 1000
	DefaultMinReadings   = 300
)

// Options control a Fitter. Zero values fall back to the defaults.
type Options struct {
	Verbose       bool
	MaxIterations int
	MinReadings   int
}

// Result carries both ends of a fit plus the plausibility check.
type Result struct {
	Initial *Calibration
	Final   *Calibration
	Quality QualityReport
	// LowSampleCount is set when fewer than Options.MinReadings were used.
	LowSampleCount bool
}

// Fitter runs guess -> minimize -> check over one reading set.
type Fitter struct {
	minimizer Minimizer
	opts      Options
	diag      io.Writer
}

// NewFitter wires a minimizer and diagnostic writer. A nil diag discards
// progress output.
func NewFitter(m Minimizer, opts Options, diag io.Writer) *Fitter {
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultMaxIterations
	}
	if opts.MinReadings <= 0 {
		opts.MinReadings = DefaultMinReadings
	}
	if diag == nil {
		diag = io.Discard
	}
	return &Fitter{minimizer: m, opts: opts, diag: diag}
}

// Fit computes the calibration for readings. A suspect quality check is
// reported in the Result and as a warning, never as an error.
func (f *Fitter) Fit(ctx context.Context, readings *imu.ReadingSet) (*Result, error) {
	n := readings.Len()
	if n == 0 {
		return nil, ErrNoReadings
	}
	res := &Result{}
	if n < f.opts.MinReadings {
		res.LowSampleCount = true
		fmt.Fprintf(f.diag, "Warning: Only %d readings were provided.\n", n)
	}

	fmt.Fprint(f.diag, "Optimizing calibration...")
	if f.opts.Verbose {
		fmt.Fprintln(f.diag)
	}

	initial, err := Guess(readings)
	if err != nil {
		fmt.Fprintln(f.diag)
		return nil, err
	}
	res.Initial = initial
	if f.opts.Verbose {
		fmt.Fprintf(f.diag, "Initial calibration: %s\n", initial.InfoString())
	}

	values, err := f.minimizer.Minimize(ctx, ObjectiveFor(readings), initial.Params.Slice(), f.opts.MaxIterations)
	if err != nil {
		fmt.Fprintln(f.diag)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %w", ErrInterrupted, err)
		}
		return nil, fmt.Errorf("minimize: %w", err)
	}

	params, err := ParamsFromSlice(values)
	if err != nil {
		fmt.Fprintln(f.diag)
		return nil, fmt.Errorf("minimizer result: %w", err)
	}
	if err := params.Validate(); err != nil {
		fmt.Fprintln(f.diag)
		return nil, fmt.Errorf("final calibration: %w", err)
	}
	res.Final = New(params, readings)
	fmt.Fprintln(f.diag, " done.")

	if f.opts.Verbose {
		fmt.Fprintf(f.diag, "Final calibration: %s\n", res.Final.InfoString())
	}

	res.Quality = CheckQuality(res.Final, readings)
	if res.Quality.Suspect {
		fmt.Fprintln(f.diag, BadCalibrationWarning)
		fmt.Fprintf(f.diag, "  (%s)\n", res.Quality.Detail())
	}
	return res, nil
}
