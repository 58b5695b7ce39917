// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package calibration

import (
	"context"
	"math"

	"github.com/relabs-tech/inertial_calibrator/internal/imu"
)

// Objective is a function the minimizer drives toward its smallest value.
type Objective func(x []float64) float64

// Minimizer refines a parameter vector. Implementations must not modify
// initial and should return early with ctx.Err() when ctx is cancelled.
type Minimizer interface {
	Minimize(ctx context.Context, objective Objective, initial []float64, maxIterations int) ([]float64, error)
}

// MinimizerFunc adapts a plain function to Minimizer.
type MinimizerFunc func(ctx context.Context, objective Objective, initial []float64, maxIterations int) ([]float64, error)

func (f MinimizerFunc) Minimize(ctx context.Context, objective Objective, initial []float64, maxIterations int) ([]float64, error) {
	return f(ctx, objective, initial, maxIterations)
}

// NegativeScore builds a throwaway calibration from values and returns the
// negation of its score. Vectors with a zero-width axis, or whose score is not
// finite, evaluate to +Inf so a simplex search steps away from them.
func NegativeScore(values []float64, readings *imu.ReadingSet) float64 {
	p, err := ParamsFromSlice(values)
	if err != nil {
		return math.Inf(1)
	}
	if err := p.Validate(); err != nil {
		return math.Inf(1)
	}
	s := New(p, readings).Score()
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return math.Inf(1)
	}
	return -s
}

// ObjectiveFor closes NegativeScore over a reading set.
func ObjectiveFor(readings *imu.ReadingSet) Objective {
	return func(x []float64) float64 {
		return NegativeScore(x, readings)
	}
}
