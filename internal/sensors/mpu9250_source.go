// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"context"
	"fmt"
	"log"
	"time"

	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/devices/v3/mpu9250"
	"periph.io/x/host/v3"

	"github.com/relabs-tech/inertial_calibrator/internal/imu"
)

// MPU9250Options describe the SPI wiring and capture length.
type MPU9250Options struct {
	SPIDevice  string
	CSPin      string
	Sensor     imu.Sensor
	Samples    int
	IntervalMS int
}

// MPU9250Source samples the accelerometer (or gyroscope) of an MPU9250
// directly while the device is slowly rotated through every orientation.
type MPU9250Source struct {
	opts MPU9250Options
}

func NewMPU9250Source(opts MPU9250Options) *MPU9250Source {
	return &MPU9250Source{opts: opts}
}

func (s *MPU9250Source) Name() string {
	return fmt.Sprintf("mpu9250 %s (%s)", s.opts.SPIDevice, s.opts.Sensor)
}

// Collect initializes the device and reads Samples triaxial values.
func (s *MPU9250Source) Collect(ctx context.Context) ([]imu.Reading, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}

	cs := gpioreg.ByName(s.opts.CSPin)
	if cs == nil {
		return nil, fmt.Errorf("IMU CS pin %q not found", s.opts.CSPin)
	}

	tr, err := mpu9250.NewSpiTransport(s.opts.SPIDevice, cs)
	if err != nil {
		return nil, fmt.Errorf("IMU SPI transport (%s): %w", s.opts.SPIDevice, err)
	}

	dev, err := mpu9250.New(tr)
	if err != nil {
		return nil, fmt.Errorf("IMU new device: %w", err)
	}

	if err := dev.Init(); err != nil {
		return nil, fmt.Errorf("IMU init: %w", err)
	}
	log.Printf("mpu9250: initialized on %s, capturing %d %s samples", s.opts.SPIDevice, s.opts.Samples, s.opts.Sensor)

	read := s.readAccel
	if s.opts.Sensor == imu.SensorGyro {
		read = s.readGyro
	}

	interval := time.Duration(s.opts.IntervalMS) * time.Millisecond
	readings := make([]imu.Reading, 0, s.opts.Samples)
	for len(readings) < s.opts.Samples {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r, err := read(dev)
		if err != nil {
			return nil, err
		}
		readings = append(readings, r)
		if interval > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(interval):
			}
		}
	}
	return readings, nil
}

func (s *MPU9250Source) readAccel(dev *mpu9250.MPU9250) (imu.Reading, error) {
	ax, err := dev.GetAccelerationX()
	if err != nil {
		return imu.Reading{}, fmt.Errorf("IMU acc X: %w", err)
	}
	ay, err := dev.GetAccelerationY()
	if err != nil {
		return imu.Reading{}, fmt.Errorf("IMU acc Y: %w", err)
	}
	az, err := dev.GetAccelerationZ()
	if err != nil {
		return imu.Reading{}, fmt.Errorf("IMU acc Z: %w", err)
	}
	return imu.Reading{int(ax), int(ay), int(az)}, nil
}

func (s *MPU9250Source) readGyro(dev *mpu9250.MPU9250) (imu.Reading, error) {
	gx, err := dev.GetRotationX()
	if err != nil {
		return imu.Reading{}, fmt.Errorf("IMU gyro X: %w", err)
	}
	gy, err := dev.GetRotationY()
	if err != nil {
		return imu.Reading{}, fmt.Errorf("IMU gyro Y: %w", err)
	}
	gz, err := dev.GetRotationZ()
	if err != nil {
		return imu.Reading{}, fmt.Errorf("IMU gyro Z: %w", err)
	}
	return imu.Reading{int(gx), int(gy), int(gz)}, nil
}
