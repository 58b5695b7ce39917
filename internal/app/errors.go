package app

import (
	"context"
	"errors"

	"github.com/relabs-tech/inertial_calibrator/internal/calibration"
	"github.com/relabs-tech/inertial_calibrator/internal/imu"
)

// Kind tells the command how to report a failed run.
type Kind int

const (
	KindNone Kind = iota
	// KindInput is a problem with the data or the invocation.
	KindInput
	// KindInterrupted means the user cancelled the run.
	KindInterrupted
	// KindInternal covers transport, hardware and I/O failures.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInput:
		return "input"
	case KindInterrupted:
		return "interrupted"
	default:
		return "internal"
	}
}

// Classify maps an error returned by RunCalibrator to a Kind.
func Classify(err error) Kind {
	if err == nil {
		return KindNone
	}

	if errors.Is(err, calibration.ErrInterrupted) || errors.Is(err, context.Canceled) {
		return KindInterrupted
	}

	var inputErr *imu.InputError
	switch {
	case errors.As(err, &inputErr),
		errors.Is(err, ErrInvalidConfig),
		errors.Is(err, calibration.ErrNoReadings),
		errors.Is(err, calibration.ErrDegenerateAxis):
		return KindInput
	}
	return KindInternal
}
