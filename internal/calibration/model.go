// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package calibration

import (
	"fmt"
	"math"

	"github.com/relabs-tech/inertial_calibrator/internal/imu"
	"github.com/relabs-tech/inertial_calibrator/internal/stats"
)

// Calibration is a per-axis min/max scaling bound to the readings it was fit
// against. Readings may be nil when only the parameters are of interest.
// Values are never mutated; the fitter builds a new one per candidate.
type Calibration struct {
	Params   Params
	readings *imu.ReadingSet
}

// New builds a calibration over readings (which may be nil).
func New(params Params, readings *imu.ReadingSet) *Calibration {
	return &Calibration{Params: params, readings: readings}
}

// Readings returns the bound reading set, or nil.
func (c *Calibration) Readings() *imu.ReadingSet {
	return c.readings
}

// Scale maps the raw range [min, max] of every axis onto [-1, 1]:
//
//	scaled = (raw - min) / (max - min) * 2 - 1
//
// A zero-width axis yields ±Inf or NaN; callers check Params.Validate first.
func (c *Calibration) Scale(r imu.Reading) imu.Vector {
	v := r.Vector()
	for _, axis := range imu.Axes {
		lo, hi := c.Params.Bounds(axis)
		v[axis] = (v[axis]-lo)/(hi-lo)*2 - 1
	}
	return v
}

// ScaledReadings applies Scale to every bound reading, in order.
func (c *Calibration) ScaledReadings() []imu.Vector {
	out := make([]imu.Vector, 0, c.readings.Len())
	c.readings.Each(func(r imu.Reading) {
		out = append(out, c.Scale(r))
	})
	return out
}

// ScaledMagnitudes returns the norm of every scaled reading.
func (c *Calibration) ScaledMagnitudes() []float64 {
	scaled := c.ScaledReadings()
	out := make([]float64, len(scaled))
	for i, v := range scaled {
		out[i] = v.Magnitude()
	}
	return out
}

// Score is the negated mean squared distance of the scaled magnitudes from
// 1.0. It is at most 0, and 0 only when every scaled reading is on the unit
// sphere. NaN when no readings are bound.
func (c *Calibration) Score() float64 {
	mags := c.ScaledMagnitudes()
	sq := make([]float64, len(mags))
	for i, m := range mags {
		sq[i] = (m - 1) * (m - 1)
	}
	avg, err := stats.Average(sq)
	if err != nil {
		return math.NaN()
	}
	return -avg
}

func (c *Calibration) String() string {
	return c.Params.String()
}

// InfoString is a one-line diagnostic summary.
func (c *Calibration) InfoString() string {
	mean, sd, err := stats.MeanStd(c.ScaledMagnitudes())
	if err != nil {
		mean, sd = math.NaN(), math.NaN()
	}
	return fmt.Sprintf("%-32s  avg=%7.4f stdev=%7.4f score=%7.4f", c.String(), mean, sd, c.Score())
}
