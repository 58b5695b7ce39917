// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package calibration

import (
	"fmt"

	"github.com/relabs-tech/inertial_calibrator/internal/imu"
	"github.com/relabs-tech/inertial_calibrator/internal/stats"
)

// Percentiles clipped from each end of an axis for the initial guess.
const (
	guessLowPercentile  = 1
	guessHighPercentile = 99
)

// Guess builds the starting calibration from the 1st and 99th percentile of
// every axis, which keeps a handful of glitch samples from stretching the
// bounds.
func Guess(readings *imu.ReadingSet) (*Calibration, error) {
	if readings.Len() == 0 {
		return nil, ErrNoReadings
	}
	var p Params
	for _, axis := range imu.Axes {
		bounds, err := stats.PercentileToValue(readings.Axis(axis), guessLowPercentile, guessHighPercentile)
		if err != nil {
			return nil, fmt.Errorf("axis %d percentiles: %w", axis, err)
		}
		p[axis*2] = bounds[0]
		p[axis*2+1] = bounds[1]
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("initial guess: %w", err)
	}
	return New(p, readings), nil
}
