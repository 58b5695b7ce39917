// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package calibration

import (
	"strings"
	"testing"

	"github.com/relabs-tech/inertial_calibrator/internal/imu"
)

func TestCheckQuality(t *testing.T) {
	// ranges: axis0 [-100, 100] (200), axis1 [0, 50] (50), axis2 [-10, 30] (40)
	readings := imu.NewReadingSet([]imu.Reading{{-100, 0, -10}, {100, 50, 30}, {0, 25, 0}})
	tests := []struct {
		name    string
		params  Params
		suspect bool
		axis    int
	}{
		{name: "plausible", params: Params{-100, 100, 0, 50, -10, 30}},
		{name: "exactly one range out", params: Params{-300, 300, -50, 100, -50, 70}},
		{name: "min too far on axis 1", params: Params{-100, 100, -51, 50, -10, 30}, suspect: true, axis: 1},
		{name: "max too far on axis 2", params: Params{-100, 100, 0, 50, -10, 71}, suspect: true, axis: 2},
		{name: "first flagged axis wins", params: Params{-301, 100, -51, 50, -10, 71}, suspect: true, axis: 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := CheckQuality(New(tc.params, readings), readings)
			if q.Suspect != tc.suspect {
				t.Fatalf("expected suspect=%v, got %+v", tc.suspect, q)
			}
			if tc.suspect && q.Axis != tc.axis {
				t.Fatalf("expected axis %d, got %d", tc.axis, q.Axis)
			}
			if tc.suspect && !strings.Contains(q.Detail(), "axis") {
				t.Fatalf("detail should name the axis: %q", q.Detail())
			}
			if !tc.suspect && q.Detail() != "" {
				t.Fatalf("unexpected detail %q", q.Detail())
			}
		})
	}
}
