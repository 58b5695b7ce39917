package sensors

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/inertial_calibrator/internal/imu"
)

// MQTTOptions select the broker, the IMU topic published by the inertial
// producer, and which block of each sample to keep.
type MQTTOptions struct {
	Broker   string
	ClientID string
	Topic    string
	Sensor   imu.Sensor
	Samples  int
}

// MQTTSource collects IMURaw JSON samples from a topic.
type MQTTSource struct {
	opts MQTTOptions
}

func NewMQTTSource(opts MQTTOptions) *MQTTSource {
	if opts.ClientID == "" {
		opts.ClientID = "inertial-calibrator"
	}
	return &MQTTSource{opts: opts}
}

func (s *MQTTSource) Name() string { return s.opts.Topic }

// Collect subscribes until Samples readings have arrived or ctx is done.
func (s *MQTTSource) Collect(ctx context.Context) ([]imu.Reading, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(s.opts.Broker).
		SetClientID(s.opts.ClientID)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt: connect %s: %w", s.opts.Broker, token.Error())
	}
	defer client.Disconnect(250)
	log.Printf("mqtt: connected to broker at %s", s.opts.Broker)

	c := newSampleCollector(s.opts.Sensor, s.opts.Samples)
	token := client.Subscribe(s.opts.Topic, 0, func(_ mqtt.Client, msg mqtt.Message) {
		c.handle(msg.Payload())
	})
	token.Wait()
	if token.Error() != nil {
		return nil, fmt.Errorf("mqtt: subscribe %s: %w", s.opts.Topic, token.Error())
	}
	log.Printf("mqtt: subscribed to %s, collecting %d %s samples", s.opts.Topic, s.opts.Samples, s.opts.Sensor)

	select {
	case <-c.done:
	case <-ctx.Done():
		client.Unsubscribe(s.opts.Topic).Wait()
		return nil, ctx.Err()
	}
	client.Unsubscribe(s.opts.Topic).Wait()

	readings, rejected := c.result()
	if rejected > 0 {
		log.Printf("mqtt: ignored %d malformed payloads", rejected)
	}
	return readings, nil
}

// sampleCollector gathers readings from concurrent message callbacks and
// closes done once it holds the requested number.
type sampleCollector struct {
	mu       sync.Mutex
	sensor   imu.Sensor
	want     int
	readings []imu.Reading
	rejected int
	done     chan struct{}
}

func newSampleCollector(sensor imu.Sensor, want int) *sampleCollector {
	return &sampleCollector{
		sensor:   sensor,
		want:     want,
		readings: make([]imu.Reading, 0, want),
		done:     make(chan struct{}),
	}
}

func (c *sampleCollector) handle(payload []byte) {
	var s imu.IMURaw
	if err := json.Unmarshal(payload, &s); err != nil {
		c.mu.Lock()
		c.rejected++
		c.mu.Unlock()
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.readings) >= c.want {
		return
	}
	c.readings = append(c.readings, s.Reading(c.sensor))
	if len(c.readings) == c.want {
		close(c.done)
	}
}

func (c *sampleCollector) result() ([]imu.Reading, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]imu.Reading, len(c.readings))
	copy(out, c.readings)
	return out, c.rejected
}
