// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package calibration

import (
	"context"
	"fmt"
	"io"

	"gonum.org/v1/gonum/optimize"
)

const (
	// Initial simplex: each vertex moves one coordinate by 5% of its value,
	// or by zeroDelta when the coordinate is 0.
	simplexDelta = 0.05
	zeroDelta    = 0.00025

	// Stop when the best value improves by less than convergeAbsolute over
	// convergeIterations major iterations.
	convergeAbsolute   = 1e-10
	convergeIterations = 100

	progressEvery = 100
)

// NelderMead is the derivative-free simplex minimizer from gonum/optimize.
// Progress is written to Log every few hundred iterations when Log is set.
type NelderMead struct {
	Log io.Writer
}

// Minimize runs the simplex search for at most maxIterations major
// iterations. Cancelling ctx aborts the search and returns ctx.Err().
func (nm NelderMead) Minimize(ctx context.Context, objective Objective, initial []float64, maxIterations int) ([]float64, error) {
	if len(initial) == 0 {
		return nil, fmt.Errorf("nelder-mead: empty initial vector")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vertices, values := initialSimplex(objective, initial)
	method := &optimize.NelderMead{
		InitialVertices: vertices,
		InitialValues:   values,
	}
	settings := &optimize.Settings{
		MajorIterations: maxIterations,
		Converger: &optimize.FunctionConverge{
			Absolute:   convergeAbsolute,
			Iterations: convergeIterations,
		},
		Recorder: &progressRecorder{ctx: ctx, log: nm.Log},
	}

	x0 := make([]float64, len(initial))
	copy(x0, initial)

	result, err := optimize.Minimize(optimize.Problem{Func: objective}, x0, settings, method)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		return nil, fmt.Errorf("nelder-mead: %w", err)
	}
	if nm.Log != nil {
		fmt.Fprintf(nm.Log, "Optimization terminated (%v): f=%.8f iterations=%d evaluations=%d\n",
			result.Status, result.F, result.Stats.MajorIterations, result.Stats.FuncEvaluations)
	}
	out := make([]float64, len(result.X))
	copy(out, result.X)
	return out, nil
}

func initialSimplex(objective Objective, initial []float64) ([][]float64, []float64) {
	dim := len(initial)
	vertices := make([][]float64, dim+1)
	values := make([]float64, dim+1)
	for i := range vertices {
		v := make([]float64, dim)
		copy(v, initial)
		if i > 0 {
			k := i - 1
			if v[k] != 0 {
				v[k] *= 1 + simplexDelta
			} else {
				v[k] = zeroDelta
			}
		}
		vertices[i] = v
		values[i] = objective(v)
	}
	return vertices, values
}

// progressRecorder aborts the search once ctx is done and optionally prints
// the best value so far.
type progressRecorder struct {
	ctx context.Context
	log io.Writer
}

func (r *progressRecorder) Init() error {
	return r.ctx.Err()
}

func (r *progressRecorder) Record(loc *optimize.Location, op optimize.Operation, s *optimize.Stats) error {
	if err := r.ctx.Err(); err != nil {
		return err
	}
	if r.log != nil && op == optimize.MajorIteration && s.MajorIterations%progressEvery == 0 {
		fmt.Fprintf(r.log, "  iteration %4d: f=%.8f evaluations=%d\n", s.MajorIterations, loc.F, s.FuncEvaluations)
	}
	return nil
}
