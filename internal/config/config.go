package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/relabs-tech/inertial_calibrator/internal/imu"
)

// Source names accepted by SOURCE.
const (
	SourceStdin   = "stdin"
	SourceFile    = "file"
	SourceSerial  = "serial"
	SourceMQTT    = "mqtt"
	SourceMPU9250 = "mpu9250"
)

// Config holds all calibrator configuration values.
type Config struct {
	// Fitting
	Verbose       bool
	MaxIterations int
	MinReadings   int

	// Reading source
	Source         string
	InputFile      string
	Sensor         imu.Sensor
	CaptureSamples int
	// CaptureInterval is the pause between MPU9250 reads, in milliseconds.
	CaptureInterval int

	// Serial
	SerialPort     string
	SerialBaudRate int

	// MQTT
	MQTTBroker       string
	MQTTClientID     string
	TopicIMU         string
	TopicCalibration string

	// IMU Hardware
	IMUSPIDevice string
	IMUCSPin     string

	// Output
	OutputFile string
	ReportFile string
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		MaxIterations:   1000,
		MinReadings:     300,
		Source:          SourceStdin,
		Sensor:          imu.SensorMag,
		CaptureSamples:  1000,
		CaptureInterval: 10,
		SerialPort:      "/dev/ttyACM0",
		SerialBaudRate:  115200,
		MQTTBroker:      "tcp://localhost:1883",
		MQTTClientID:    "inertial-calibrator",
		TopicIMU:        "inertial/imu/left",
		IMUSPIDevice:    "/dev/spidev0.0",
		IMUCSPin:        "8",
	}
}

// Load reads the configuration file on top of Default.
func Load(configPath string) (*Config, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	cfg := Default()
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=VALUE
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(stripComment(parts[1]))

		if err := cfg.Set(key, value); err != nil {
			return nil, fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOptional behaves like Load but returns Default when the file does not
// exist.
func LoadOptional(configPath string) (*Config, error) {
	cfg, err := Load(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// stripComment drops a trailing "# ..." comment that follows whitespace.
func stripComment(value string) string {
	if i := strings.Index(value, " #"); i >= 0 {
		return value[:i]
	}
	if i := strings.Index(value, "\t#"); i >= 0 {
		return value[:i]
	}
	return value
}

// Set sets a config value based on the key.
func (c *Config) Set(key, value string) error {
	switch key {
	// Fitting
	case "VERBOSE":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid VERBOSE %q: %w", value, err)
		}
		c.Verbose = v
	case "MAX_ITERATIONS":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid MAX_ITERATIONS %q: %w", value, err)
		}
		if v <= 0 {
			return fmt.Errorf("MAX_ITERATIONS must be positive, got %d", v)
		}
		c.MaxIterations = v
	case "MIN_READINGS":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid MIN_READINGS %q: %w", value, err)
		}
		if v <= 0 {
			return fmt.Errorf("MIN_READINGS must be positive, got %d", v)
		}
		c.MinReadings = v

	// Reading source
	case "SOURCE":
		switch value {
		case SourceStdin, SourceFile, SourceSerial, SourceMQTT, SourceMPU9250:
			c.Source = value
		default:
			return fmt.Errorf("SOURCE must be one of stdin, file, serial, mqtt, mpu9250, got %q", value)
		}
	case "INPUT_FILE":
		c.InputFile = value
	case "SENSOR":
		s, ok := imu.ParseSensor(value)
		if !ok {
			return fmt.Errorf("SENSOR must be mag, accel or gyro, got %q", value)
		}
		c.Sensor = s
	case "CAPTURE_SAMPLES":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid CAPTURE_SAMPLES %q: %w", value, err)
		}
		if v <= 0 {
			return fmt.Errorf("CAPTURE_SAMPLES must be positive, got %d", v)
		}
		c.CaptureSamples = v
	case "CAPTURE_INTERVAL":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid CAPTURE_INTERVAL %q: %w", value, err)
		}
		if v < 0 {
			return fmt.Errorf("CAPTURE_INTERVAL must not be negative, got %d", v)
		}
		c.CaptureInterval = v

	// Serial
	case "SERIAL_PORT":
		c.SerialPort = value
	case "SERIAL_BAUD_RATE":
		rate, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid SERIAL_BAUD_RATE %q: %w", value, err)
		}
		c.SerialBaudRate = rate

	// MQTT
	case "MQTT_BROKER":
		c.MQTTBroker = value
	case "MQTT_CLIENT_ID":
		c.MQTTClientID = value
	case "TOPIC_IMU":
		c.TopicIMU = value
	case "TOPIC_CALIBRATION":
		c.TopicCalibration = value

	// IMU Hardware
	case "IMU_SPI_DEVICE":
		c.IMUSPIDevice = value
	case "IMU_CS_PIN":
		c.IMUCSPin = value

	// Output
	case "OUTPUT_FILE":
		c.OutputFile = value
	case "REPORT_FILE":
		c.ReportFile = value

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return nil
}

// Validate checks that the fields the selected source needs are set.
func (c *Config) Validate() error {
	switch c.Source {
	case SourceFile:
		if c.InputFile == "" {
			return fmt.Errorf("INPUT_FILE is required when SOURCE=file")
		}
	case SourceSerial:
		if c.SerialPort == "" {
			return fmt.Errorf("SERIAL_PORT is required when SOURCE=serial")
		}
		if c.SerialBaudRate <= 0 {
			return fmt.Errorf("SERIAL_BAUD_RATE is required when SOURCE=serial")
		}
	case SourceMQTT:
		if c.MQTTBroker == "" {
			return fmt.Errorf("MQTT_BROKER is required when SOURCE=mqtt")
		}
		if c.TopicIMU == "" {
			return fmt.Errorf("TOPIC_IMU is required when SOURCE=mqtt")
		}
	case SourceMPU9250:
		if c.IMUSPIDevice == "" {
			return fmt.Errorf("IMU_SPI_DEVICE is required when SOURCE=mpu9250")
		}
		if c.IMUCSPin == "" {
			return fmt.Errorf("IMU_CS_PIN is required when SOURCE=mpu9250")
		}
	}
	if c.TopicCalibration != "" && c.MQTTBroker == "" {
		return fmt.Errorf("MQTT_BROKER is required when TOPIC_CALIBRATION is set")
	}
	return nil
}
