package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/relabs-tech/inertial_calibrator/internal/imu"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "calibrator.conf")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
# calibrator settings
VERBOSE=true
MAX_ITERATIONS=250
SOURCE=mqtt
SENSOR=accel   # accelerometer block
MQTT_BROKER=tcp://pi.local:1883
TOPIC_IMU=inertial/imu/right
TOPIC_CALIBRATION=inertial/calibration/right
REPORT_FILE=report.yaml
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Verbose || cfg.MaxIterations != 250 {
		t.Fatalf("fitting options not applied: %+v", cfg)
	}
	if cfg.MinReadings != 300 {
		t.Fatalf("expected default MIN_READINGS, got %d", cfg.MinReadings)
	}
	if cfg.Source != SourceMQTT || cfg.Sensor != imu.SensorAccel {
		t.Fatalf("unexpected source %q sensor %q", cfg.Source, cfg.Sensor)
	}
	if cfg.MQTTBroker != "tcp://pi.local:1883" || cfg.TopicIMU != "inertial/imu/right" {
		t.Fatalf("unexpected mqtt settings: %+v", cfg)
	}
	if cfg.ReportFile != "report.yaml" {
		t.Fatalf("unexpected report file %q", cfg.ReportFile)
	}
}

func TestLoadErrorsNameTheLine(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "unknown key", content: "VERBOSE=false\nCOLOR=blue\n", want: "config line 2"},
		{name: "missing equals", content: "VERBOSE\n", want: "invalid config line 1"},
		{name: "bad integer", content: "MAX_ITERATIONS=lots\n", want: "invalid MAX_ITERATIONS"},
		{name: "bad source", content: "SOURCE=carrier-pigeon\n", want: "SOURCE must be one of"},
		{name: "bad sensor", content: "SENSOR=baro\n", want: "SENSOR must be"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestValidateRequiresSourceSettings(t *testing.T) {
	_, err := Load(writeConfig(t, "SOURCE=file\n"))
	if err == nil || !strings.Contains(err.Error(), "INPUT_FILE") {
		t.Fatalf("expected INPUT_FILE error, got %v", err)
	}
	_, err = Load(writeConfig(t, "SOURCE=serial\nSERIAL_PORT=\n"))
	if err == nil || !strings.Contains(err.Error(), "SERIAL_PORT") {
		t.Fatalf("expected SERIAL_PORT error, got %v", err)
	}
}

func TestLoadOptionalMissingFile(t *testing.T) {
	cfg, err := LoadOptional(filepath.Join(t.TempDir(), "nope.conf"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Source != SourceStdin || cfg.MaxIterations != 1000 {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}
