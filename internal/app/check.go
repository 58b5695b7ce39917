// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"fmt"
	"io"

	"github.com/relabs-tech/inertial_calibrator/internal/calibration"
	"github.com/relabs-tech/inertial_calibrator/internal/imu"
)

// CheckCalibration applies a persisted calibration to raw readings the way
// the AHRS consumer does and prints each raw reading next to its scaled
// vector and magnitude, followed by a summary line.
func CheckCalibration(params calibration.Params, r io.Reader, w io.Writer) (*calibration.Calibration, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	raw, err := imu.ReadReadings(r)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, calibration.ErrNoReadings
	}

	cal := calibration.New(params, imu.NewReadingSet(raw))
	for _, reading := range raw {
		v := cal.Scale(reading)
		fmt.Fprintf(w, "%-20s -> %8.4f %8.4f %8.4f  |v|=%.4f\n", reading, v.X(), v.Y(), v.Z(), v.Magnitude())
	}
	fmt.Fprintln(w, cal.InfoString())
	return cal, nil
}
