// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package calibration

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultParamsFile is where the AHRS reads its magnetometer calibration.
const DefaultParamsFile = "~/.minimu9-ahrs-cal"

// ParseParams reads the persisted six-value form back. Any whitespace
// (including newlines) separates values; text after the sixth value is
// ignored.
func ParseParams(s string) (Params, error) {
	var p Params
	fields := strings.Fields(s)
	if len(fields) < NumParams {
		return p, fmt.Errorf("expected %d calibration values, got %d", NumParams, len(fields))
	}
	for i := 0; i < NumParams; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return p, fmt.Errorf("calibration value %d %q: %w", i, fields[i], err)
		}
		p[i] = v
	}
	return p, nil
}

// LoadParams reads and parses a calibration file. A leading "~/" is expanded
// to the user's home directory.
func LoadParams(path string) (Params, error) {
	resolved, err := ExpandHome(path)
	if err != nil {
		return Params{}, err
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return Params{}, fmt.Errorf("failed to open calibration file %s: %w", path, err)
	}
	p, err := ParseParams(string(data))
	if err != nil {
		return Params{}, fmt.Errorf("failed to parse calibration file %s: %w", path, err)
	}
	return p, nil
}

// WriteParams stores the persisted form followed by a newline.
func WriteParams(path string, p Params) error {
	resolved, err := ExpandHome(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(resolved, []byte(p.String()+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write calibration file %s: %w", path, err)
	}
	return nil
}

// ExpandHome replaces a leading "~" path element with the home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expand %s: %w", path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
