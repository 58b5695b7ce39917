package app

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/inertial_calibrator/internal/calibration"
)

// CalibrationMessage is the retained payload producers pick up on start.
type CalibrationMessage struct {
	RunID        string    `json:"run_id"`
	Sensor       string    `json:"sensor"`
	Source       string    `json:"source"`
	CalibratedAt time.Time `json:"calibrated_at"`
	// Params holds min0 max0 min1 max1 min2 max2 truncated to integers.
	Params  calibration.Params `json:"params"`
	Line    string             `json:"line"`
	Suspect bool               `json:"suspect"`
}

func newCalibrationMessage(out *Outcome) CalibrationMessage {
	final := out.Result.Final
	msg := CalibrationMessage{
		RunID:        out.RunID,
		Sensor:       string(out.Sensor),
		Source:       out.Source,
		CalibratedAt: out.FinishedAt.UTC(),
		Params:       final.Params.Truncated(),
		Line:         final.String(),
		Suspect:      out.Result.Quality.Suspect,
	}
	return msg
}

// PublishCalibration sends the result to topic as a retained message.
func PublishCalibration(broker, clientID, topic string, out *Outcome) error {
	payload, err := json.Marshal(newCalibrationMessage(out))
	if err != nil {
		return fmt.Errorf("json marshal error (calibration): %w", err)
	}

	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID + "-publisher")

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("MQTT connect error: %w", token.Error())
	}
	defer client.Disconnect(250)

	if token := client.Publish(topic, 1, true, payload); token.Wait() && token.Error() != nil {
		return fmt.Errorf("MQTT publish error (calibration): %w", token.Error())
	}
	log.Printf("mqtt: published calibration %s to %s", out.RunID, topic)
	return nil
}
