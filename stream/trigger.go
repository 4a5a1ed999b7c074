package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/eclipse/paho.mqtt.golang"
)

// ControlMessage is sent by a remote client on the control topic.
type ControlMessage struct {
	Type string `json:"type"`
}

// Trigger starts the presentation when a start message arrives. Only the
// first start counts.
type Trigger struct {
	config Config
	client mqtt.Client

	once  sync.Once
	start chan struct{}
}

// NewTrigger creates an instance of a Trigger.
func NewTrigger(config Config, client mqtt.Client) *Trigger {
	t := new(Trigger)
	t.config = config
	t.client = client
	t.start = make(chan struct{})
	return t
}

func parseControl(payload []byte) (ControlMessage, error) {
	var message ControlMessage
	if err := json.Unmarshal(payload, &message); err != nil {
		return message, fmt.Errorf("control message: %w", err)
	}
	return message, nil
}

func (t *Trigger) handleControl(client mqtt.Client, msg mqtt.Message) {
	log.Printf("[*] Received msg %d on %s: %s", msg.MessageID(), msg.Topic(), msg.Payload())

	message, err := parseControl(msg.Payload())
	if err != nil {
		log.Printf("[!] %v", err)
		return
	}

	if message.Type == "start" {
		t.Fire()
	}
}

// Fire starts the presentation. Calls after the first are ignored.
func (t *Trigger) Fire() {
	t.once.Do(func() {
		log.Println("[+] Start triggered")
		close(t.start)
	})
}

// Started is closed once the trigger has fired.
func (t *Trigger) Started() <-chan struct{} {
	return t.start
}

// Wait blocks until the trigger fires or ctx ends.
func (t *Trigger) Wait(ctx context.Context) error {
	select {
	case <-t.start:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribe listens for start messages on the control topic.
func (t *Trigger) Subscribe() error {
	token := t.client.Subscribe(t.config.Mqtt.Topics.Control, t.config.Mqtt.QoS, t.handleControl)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("subscribe %s: %w", t.config.Mqtt.Topics.Control, token.Error())
	}
	log.Printf("[+] Subscribed to %s", t.config.Mqtt.Topics.Control)
	return nil
}
