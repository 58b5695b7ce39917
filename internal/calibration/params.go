// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package calibration

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NumParams is the length of a parameter vector: a (min, max) pair per axis.
const NumParams = 6

// Params holds min0 max0 min1 max1 min2 max2 in raw sensor counts.
type Params [NumParams]float64

// ErrDegenerateAxis marks parameters whose scaling would divide by zero.
var ErrDegenerateAxis = errors.New("degenerate axis")

// DegenerateAxisError names the axis whose min equals its max (or is not a
// finite number).
type DegenerateAxisError struct {
	Axis     int
	Min, Max float64
}

func (e *DegenerateAxisError) Error() string {
	if e.Min == e.Max {
		return fmt.Sprintf("axis %d has zero range (min = max = %g); the readings do not cover that axis", e.Axis, e.Min)
	}
	return fmt.Sprintf("axis %d has non-finite bounds (min=%g, max=%g)", e.Axis, e.Min, e.Max)
}

func (e *DegenerateAxisError) Is(target error) bool { return target == ErrDegenerateAxis }

// ParamsFromSlice copies a minimizer vector into Params.
func ParamsFromSlice(v []float64) (Params, error) {
	var p Params
	if len(v) != NumParams {
		return p, fmt.Errorf("expected %d calibration values, got %d", NumParams, len(v))
	}
	copy(p[:], v)
	return p, nil
}

// Slice returns a fresh copy suitable for handing to a minimizer.
func (p Params) Slice() []float64 {
	out := make([]float64, NumParams)
	copy(out, p[:])
	return out
}

// Bounds returns the (min, max) pair for an axis.
func (p Params) Bounds(axis int) (lo, hi float64) {
	return p[axis*2], p[axis*2+1]
}

// Validate rejects axes that would make the scaling transform divide by zero
// or produce non-finite values. min > max is allowed; it only mirrors the axis.
func (p Params) Validate() error {
	for axis := 0; axis < 3; axis++ {
		lo, hi := p.Bounds(axis)
		if lo == hi || math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
			return &DegenerateAxisError{Axis: axis, Min: lo, Max: hi}
		}
	}
	return nil
}

// String renders the persisted form: six integers, space separated.
// Fractions are truncated toward zero.
func (p Params) String() string {
	parts := make([]string, NumParams)
	for i, v := range p.Truncated() {
		parts[i] = FormatCount(v)
	}
	return strings.Join(parts, " ")
}

// Truncated rounds every parameter toward zero.
func (p Params) Truncated() Params {
	var out Params
	for i, v := range p {
		out[i] = truncate(v)
	}
	return out
}

// FormatCount renders v truncated toward zero as an integer, at any magnitude.
func FormatCount(v float64) string {
	return strconv.FormatFloat(truncate(v), 'f', 0, 64)
}

func truncate(v float64) float64 {
	t := math.Trunc(v)
	if t == 0 {
		return 0 // drop the sign of -0
	}
	return t
}
