package sensors

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	serial "github.com/jacobsa/go-serial/serial"

	"github.com/relabs-tech/inertial_calibrator/internal/imu"
)

// SerialSource reads raw "x y z ..." lines streamed by the IMU board.
type SerialSource struct {
	port     string
	baudRate uint
	samples  int
}

func NewSerialSource(port string, baudRate, samples int) *SerialSource {
	return &SerialSource{port: port, baudRate: uint(baudRate), samples: samples}
}

func (s *SerialSource) Name() string { return s.port }

// Collect opens the port and returns once samples readings were read.
func (s *SerialSource) Collect(ctx context.Context) ([]imu.Reading, error) {
	serialOpts := serial.OpenOptions{
		PortName:              s.port,
		BaudRate:              s.baudRate,
		DataBits:              8,
		StopBits:              1,
		MinimumReadSize:       1,
		ParityMode:            serial.PARITY_NONE,
		InterCharacterTimeout: 0,
	}

	port, err := serial.Open(serialOpts)
	if err != nil {
		return nil, fmt.Errorf("serial: open %s: %w", s.port, err)
	}
	log.Printf("serial: port opened on %s at %d baud", serialOpts.PortName, serialOpts.BaudRate)

	// Closing the port unblocks a pending read when ctx is cancelled.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			port.Close()
		case <-done:
			port.Close()
		}
	}()

	readings, err := collectLines(ctx, port, s.samples)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	return readings, err
}

// collectLines scans up to n readings from a line stream. Noisy lines (the
// first line after opening the port is usually partial) are skipped.
func collectLines(ctx context.Context, r io.Reader, n int) ([]imu.Reading, error) {
	reader := bufio.NewReader(r)
	readings := make([]imu.Reading, 0, n)
	skipped := 0

	for len(readings) < n {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("serial: read: %w", err)
		}

		if text := strings.TrimSpace(line); text != "" {
			reading, perr := imu.ParseReadingLine(text)
			if perr != nil {
				skipped++
			} else {
				readings = append(readings, reading)
			}
		}

		if errors.Is(err, io.EOF) {
			break
		}
	}

	if skipped > 0 {
		log.Printf("serial: skipped %d unparsable lines", skipped)
	}
	if len(readings) < n {
		log.Printf("serial: stream ended after %d of %d readings", len(readings), n)
	}
	return readings, nil
}
