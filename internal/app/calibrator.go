// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/relabs-tech/inertial_calibrator/internal/calibration"
	"github.com/relabs-tech/inertial_calibrator/internal/config"
	"github.com/relabs-tech/inertial_calibrator/internal/imu"
	"github.com/relabs-tech/inertial_calibrator/internal/sensors"
)

// ErrInvalidConfig wraps configuration problems found while wiring a run.
var ErrInvalidConfig = errors.New("invalid configuration")

// Outcome describes a successful calibration run.
type Outcome struct {
	RunID      string
	Source     string
	Sensor     imu.Sensor
	Readings   int
	FinishedAt time.Time
	Result     *calibration.Result
}

// RunCalibrator reads every reading from the configured source, fits the
// calibration with Nelder-Mead and writes the six-integer line to stdout.
// Progress and warnings go to stderr. On error nothing is written to stdout.
func RunCalibrator(ctx context.Context, cfg *config.Config, stdin io.Reader, stdout, stderr io.Writer) (*Outcome, error) {
	src, err := sensors.NewSource(cfg, stdin)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	nm := calibration.NelderMead{}
	if cfg.Verbose {
		nm.Log = stderr
	}
	return Calibrate(ctx, cfg, src, nm, stdout, stderr)
}

// Calibrate runs the pipeline against an explicit source and minimizer.
func Calibrate(ctx context.Context, cfg *config.Config, src sensors.ReadingSource, m calibration.Minimizer, stdout, stderr io.Writer) (*Outcome, error) {
	fmt.Fprint(stderr, "Reading data...")
	raw, err := src.Collect(ctx)
	if err != nil {
		fmt.Fprintln(stderr)
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", calibration.ErrInterrupted, ctx.Err())
		}
		var inputErr *imu.InputError
		if errors.As(err, &inputErr) {
			return nil, err
		}
		return nil, fmt.Errorf("read %s: %w", src.Name(), err)
	}
	fmt.Fprintln(stderr, " done.")

	readings := imu.NewReadingSet(raw)
	fitter := calibration.NewFitter(m, calibration.Options{
		Verbose:       cfg.Verbose,
		MaxIterations: cfg.MaxIterations,
		MinReadings:   cfg.MinReadings,
	}, stderr)

	res, err := fitter.Fit(ctx, readings)
	if err != nil {
		return nil, err
	}

	out := &Outcome{
		RunID:      uuid.NewString(),
		Source:     src.Name(),
		Sensor:     cfg.Sensor,
		Readings:   readings.Len(),
		FinishedAt: time.Now(),
		Result:     res,
	}

	if err := persist(cfg, out); err != nil {
		return nil, err
	}

	if cfg.TopicCalibration != "" {
		if err := PublishCalibration(cfg.MQTTBroker, cfg.MQTTClientID, cfg.TopicCalibration, out); err != nil {
			log.Printf("calibrator: result not published: %v", err)
		}
	}

	fmt.Fprintln(stdout, res.Final.String())
	return out, nil
}

// persist writes the optional calibration file and YAML report.
func persist(cfg *config.Config, out *Outcome) error {
	if cfg.OutputFile != "" {
		if err := calibration.WriteParams(cfg.OutputFile, out.Result.Final.Params); err != nil {
			return err
		}
	}
	if cfg.ReportFile != "" {
		if err := WriteReport(cfg.ReportFile, NewReport(out)); err != nil {
			return err
		}
	}
	return nil
}
