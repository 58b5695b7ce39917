package imu

// IMURaw represents a single raw IMU+mag sample as published on MQTT by the
// inertial producers.
type IMURaw struct {
	Source string `json:"source"` // "left" or "right"

	Ax int16 `json:"ax"` // accel
	Ay int16 `json:"ay"`
	Az int16 `json:"az"`

	Gx int16 `json:"gx"` // gyro
	Gy int16 `json:"gy"`
	Gz int16 `json:"gz"`

	Mx int16 `json:"mx"` // magnetometer
	My int16 `json:"my"`
	Mz int16 `json:"mz"`
}

// Sensor selects which triaxial block of an IMURaw sample is calibrated.
type Sensor string

const (
	SensorMag   Sensor = "mag"
	SensorAccel Sensor = "accel"
	SensorGyro  Sensor = "gyro"
)

// Reading extracts the selected sensor block as a raw triaxial reading.
// Unknown sensors fall back to the magnetometer.
func (r IMURaw) Reading(s Sensor) Reading {
	switch s {
	case SensorAccel:
		return Reading{int(r.Ax), int(r.Ay), int(r.Az)}
	case SensorGyro:
		return Reading{int(r.Gx), int(r.Gy), int(r.Gz)}
	default:
		return Reading{int(r.Mx), int(r.My), int(r.Mz)}
	}
}

// ParseSensor validates a sensor name from config or flags.
func ParseSensor(s string) (Sensor, bool) {
	switch Sensor(s) {
	case SensorMag, SensorAccel, SensorGyro:
		return Sensor(s), true
	}
	return "", false
}
