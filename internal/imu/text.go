package imu

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// InputError reports a line of the raw text stream that could not be turned
// into a reading.
type InputError struct {
	Line int
	Text string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// ParseReadingLine parses the first three whitespace separated tokens of a
// line as integers. Extra tokens are ignored.
func ParseReadingLine(line string) (Reading, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return Reading{}, fmt.Errorf("expected 3 integers, got %d fields", len(fields))
	}
	var r Reading
	for axis := range Axes {
		v, err := strconv.Atoi(fields[axis])
		if err != nil {
			return Reading{}, fmt.Errorf("axis %d: invalid integer %q", axis, fields[axis])
		}
		r[axis] = v
	}
	return r, nil
}

// ReadReadings consumes a text stream with one reading per line.
func ReadReadings(rd io.Reader) ([]Reading, error) {
	scanner := bufio.NewScanner(rd)
	var readings []Reading
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		text := scanner.Text()
		r, err := ParseReadingLine(text)
		if err != nil {
			return nil, &InputError{Line: lineNum, Text: text, Err: err}
		}
		readings = append(readings, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading input: %w", err)
	}
	return readings, nil
}
