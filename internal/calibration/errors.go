// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package calibration

import "errors"

var (
	// ErrNoReadings is returned when there is nothing to fit.
	ErrNoReadings = errors.New("no readings were provided")

	// ErrInterrupted is returned when the fit is cancelled through its context.
	ErrInterrupted = errors.New("calibration interrupted")
)
