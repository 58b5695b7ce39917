// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/relabs-tech/inertial_calibrator/internal/calibration"
	"github.com/relabs-tech/inertial_calibrator/internal/stats"
)

// Report is the YAML record of one calibration run.
type Report struct {
	RunID          string            `yaml:"run_id"`
	CalibratedAt   time.Time         `yaml:"calibrated_at"`
	Source         string            `yaml:"source"`
	Sensor         string            `yaml:"sensor"`
	Readings       int               `yaml:"readings"`
	LowSampleCount bool              `yaml:"low_sample_count"`
	Initial        CalibrationReport `yaml:"initial"`
	Final          CalibrationReport `yaml:"final"`
	Quality        QualityReport     `yaml:"quality"`
}

// CalibrationReport summarizes one parameter vector.
type CalibrationReport struct {
	Params        string      `yaml:"params"`
	Axes          [3]AxisSpan `yaml:"axes,flow"`
	Score         float64     `yaml:"score"`
	MagnitudeMean float64     `yaml:"magnitude_mean"`
	MagnitudeSD   float64     `yaml:"magnitude_stdev"`
}

// AxisSpan is the min/max pair of one axis.
type AxisSpan struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

type QualityReport struct {
	Suspect bool   `yaml:"suspect"`
	Axis    *int   `yaml:"axis,omitempty"`
	Detail  string `yaml:"detail,omitempty"`
}

// NewReport builds the report for a finished run.
func NewReport(out *Outcome) *Report {
	r := &Report{
		RunID:          out.RunID,
		CalibratedAt:   out.FinishedAt.UTC(),
		Source:         out.Source,
		Sensor:         string(out.Sensor),
		Readings:       out.Readings,
		LowSampleCount: out.Result.LowSampleCount,
		Initial:        describe(out.Result.Initial),
		Final:          describe(out.Result.Final),
	}
	if q := out.Result.Quality; q.Suspect {
		axis := q.Axis
		r.Quality = QualityReport{Suspect: true, Axis: &axis, Detail: q.Detail()}
	}
	return r
}

func describe(cal *calibration.Calibration) CalibrationReport {
	if cal == nil {
		return CalibrationReport{}
	}
	cr := CalibrationReport{
		Params: cal.String(),
		Score:  cal.Score(),
	}
	for axis := range cr.Axes {
		lo, hi := cal.Params.Bounds(axis)
		cr.Axes[axis] = AxisSpan{Min: lo, Max: hi}
	}
	mean, sd, err := stats.MeanStd(cal.ScaledMagnitudes())
	if err != nil {
		mean, sd = math.NaN(), math.NaN()
	}
	cr.MagnitudeMean = mean
	cr.MagnitudeSD = sd
	return cr
}

// WriteReport marshals the report to path.
func WriteReport(path string, r *Report) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
