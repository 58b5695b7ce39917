package imu

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestVectorMagnitudeAndAxes(t *testing.T) {
	v := Vector{3, 4, 12}
	if got := v.Magnitude(); got != 13 {
		t.Fatalf("unexpected magnitude: %v", got)
	}
	if v.X() != 3 || v.Y() != 4 || v.Z() != 12 {
		t.Fatalf("unexpected components: %v", v)
	}
	for _, axis := range Axes {
		if v.At(axis) != v[axis] {
			t.Fatalf("At(%d) mismatch", axis)
		}
	}
}

func TestReadReadingsIgnoresExtraTokens(t *testing.T) {
	in := "1 2 3\n-4 5 -6 999 extra\n+7\t8  9\r\n"
	got, err := ReadReadings(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Reading{{1, 2, 3}, {-4, 5, -6}, {7, 8, 9}}
	if len(got) != len(want) {
		t.Fatalf("expected %d readings, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("reading %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestReadReadingsRejectsBadLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		line int
	}{
		{name: "not an integer", in: "1 2 3\n1 2.5 3\n", line: 2},
		{name: "too few tokens", in: "1 2\n", line: 1},
		{name: "blank line", in: "1 2 3\n\n4 5 6\n", line: 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadReadings(strings.NewReader(tc.in))
			var inErr *InputError
			if !errors.As(err, &inErr) {
				t.Fatalf("expected InputError, got %v", err)
			}
			if inErr.Line != tc.line {
				t.Fatalf("expected line %d, got %d", tc.line, inErr.Line)
			}
		})
	}
}

func TestReadReadingsEmptyStream(t *testing.T) {
	got, err := ReadReadings(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no readings, got %d", len(got))
	}
}

func TestReadingSetIsACopy(t *testing.T) {
	src := []Reading{{1, 2, 3}, {-5, 10, 0}}
	set := NewReadingSet(src)
	src[0] = Reading{100, 100, 100}

	if set.At(0) != (Reading{1, 2, 3}) {
		t.Fatalf("reading set was mutated through the source slice: %v", set.At(0))
	}
	min, max, ok := set.Extrema(0)
	if !ok || min != -5 || max != 1 {
		t.Fatalf("unexpected extrema: %d %d %v", min, max, ok)
	}
	axis := set.Axis(1)
	if len(axis) != 2 || axis[0] != 2 || axis[1] != 10 {
		t.Fatalf("unexpected axis values: %v", axis)
	}
}

func TestEmptyReadingSet(t *testing.T) {
	var set *ReadingSet
	if set.Len() != 0 {
		t.Fatalf("nil set should be empty")
	}
	if _, _, ok := NewReadingSet(nil).Extrema(2); ok {
		t.Fatalf("extrema of an empty set should not be ok")
	}
}

func TestIMURawReadingSelectsSensor(t *testing.T) {
	raw := IMURaw{Ax: 1, Ay: 2, Az: 3, Gx: 4, Gy: 5, Gz: 6, Mx: -7, My: 8, Mz: math.MaxInt16}
	if got := raw.Reading(SensorAccel); got != (Reading{1, 2, 3}) {
		t.Fatalf("accel: %v", got)
	}
	if got := raw.Reading(SensorGyro); got != (Reading{4, 5, 6}) {
		t.Fatalf("gyro: %v", got)
	}
	if got := raw.Reading(SensorMag); got != (Reading{-7, 8, math.MaxInt16}) {
		t.Fatalf("mag: %v", got)
	}
	if _, ok := ParseSensor("baro"); ok {
		t.Fatalf("unexpected sensor accepted")
	}
}
