// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package calibration

import (
	"fmt"

	"github.com/relabs-tech/inertial_calibrator/internal/imu"
)

// BadCalibrationWarning is printed when CheckQuality flags a result.
const BadCalibrationWarning = "Warning: The generated calibration appears to be wrong; please try again with a different data set."

// QualityReport is the outcome of CheckQuality. When Suspect is set, the
// remaining fields describe the first axis that failed.
type QualityReport struct {
	Suspect    bool
	Axis       int
	MinReading int
	MaxReading int
	MinCal     float64
	MaxCal     float64
}

// Detail describes the flagged axis, or "" when nothing was flagged.
func (q QualityReport) Detail() string {
	if !q.Suspect {
		return ""
	}
	return fmt.Sprintf("axis %d: calibration [%s, %s] extends more than one observed range beyond readings [%d, %d]",
		q.Axis, FormatCount(q.MinCal), FormatCount(q.MaxCal), q.MinReading, q.MaxReading)
}

// CheckQuality flags a calibration whose bounds extrapolate more than one full
// observed range past the raw extrema of any axis. Axes are checked in order
// and the first failure is reported.
func CheckQuality(cal *Calibration, readings *imu.ReadingSet) QualityReport {
	for _, axis := range imu.Axes {
		minReading, maxReading, ok := readings.Extrema(axis)
		if !ok {
			return QualityReport{}
		}
		span := float64(maxReading - minReading)
		minCal, maxCal := cal.Params.Bounds(axis)
		if minCal < float64(minReading)-span || maxCal > float64(maxReading)+span {
			return QualityReport{
				Suspect:    true,
				Axis:       axis,
				MinReading: minReading,
				MaxReading: maxReading,
				MinCal:     minCal,
				MaxCal:     maxCal,
			}
		}
	}
	return QualityReport{}
}
