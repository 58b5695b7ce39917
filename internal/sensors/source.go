// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package sensors turns the configured input (a text stream, the IMU board's
// serial port, an MQTT topic fed by the inertial producers, or an MPU9250 on
// SPI) into a complete list of raw readings.
package sensors

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/relabs-tech/inertial_calibrator/internal/config"
	"github.com/relabs-tech/inertial_calibrator/internal/imu"
)

// ReadingSource yields every reading to calibrate against. Collect returns
// only once the whole set is available.
type ReadingSource interface {
	Collect(ctx context.Context) ([]imu.Reading, error)
	Name() string
}

// NewSource builds the source selected by cfg.Source. stdin is used for
// SourceStdin.
func NewSource(cfg *config.Config, stdin io.Reader) (ReadingSource, error) {
	switch cfg.Source {
	case config.SourceStdin, "":
		return NewTextSource("stdin", stdin), nil
	case config.SourceFile:
		return &fileSource{path: cfg.InputFile}, nil
	case config.SourceSerial:
		return NewSerialSource(cfg.SerialPort, cfg.SerialBaudRate, cfg.CaptureSamples), nil
	case config.SourceMQTT:
		return NewMQTTSource(MQTTOptions{
			Broker:   cfg.MQTTBroker,
			ClientID: cfg.MQTTClientID,
			Topic:    cfg.TopicIMU,
			Sensor:   cfg.Sensor,
			Samples:  cfg.CaptureSamples,
		}), nil
	case config.SourceMPU9250:
		if cfg.Sensor != imu.SensorAccel && cfg.Sensor != imu.SensorGyro {
			return nil, fmt.Errorf("mpu9250 source supports SENSOR=accel or gyro, got %q", cfg.Sensor)
		}
		return NewMPU9250Source(MPU9250Options{
			SPIDevice:  cfg.IMUSPIDevice,
			CSPin:      cfg.IMUCSPin,
			Sensor:     cfg.Sensor,
			Samples:    cfg.CaptureSamples,
			IntervalMS: cfg.CaptureInterval,
		}), nil
	default:
		return nil, fmt.Errorf("unknown reading source %q", cfg.Source)
	}
}

// TextSource parses one reading per line from a stream.
type TextSource struct {
	name string
	r    io.Reader
}

func NewTextSource(name string, r io.Reader) *TextSource {
	return &TextSource{name: name, r: r}
}

func (s *TextSource) Name() string { return s.name }

// Collect reads the stream to EOF. Parse failures are *imu.InputError.
// A cancelled ctx returns immediately; the blocked read is abandoned.
func (s *TextSource) Collect(ctx context.Context) ([]imu.Reading, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		readings []imu.Reading
		err      error
	}
	done := make(chan result, 1)
	go func() {
		readings, err := imu.ReadReadings(s.r)
		done <- result{readings, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-done:
		return res.readings, res.err
	}
}

type fileSource struct {
	path string
}

func (s *fileSource) Name() string { return s.path }

func (s *fileSource) Collect(ctx context.Context) ([]imu.Reading, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()
	return NewTextSource(s.path, f).Collect(ctx)
}
