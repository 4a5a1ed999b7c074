package stream

import (
	"context"
	"log"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/cakeshow/scene"
)

// Publisher is a Renderer that sends each frame as binary over MQTT.
// Draw only snapshots the scene; Run does the publishing, so a slow broker
// never holds the world lock.
type Publisher struct {
	client mqtt.Client
	clock  Clock
	topic  string
	qos    byte
	frames chan []byte
}

// NewPublisher creates an instance of a Publisher.
func NewPublisher(config Config, client mqtt.Client, clock Clock) *Publisher {
	p := new(Publisher)
	p.client = client
	p.clock = clock
	p.topic = config.Mqtt.Topics.Stream
	p.qos = config.Mqtt.QoS
	p.frames = make(chan []byte, 1)
	return p
}

// Draw queues a snapshot of the scene. Frames are dropped while the client
// is disconnected or while the previous frame is still being published.
func (p *Publisher) Draw(sc *scene.Scene, cam *scene.Camera) error {
	if !p.client.IsConnectionOpen() {
		return nil
	}

	f := NewFrame(sc, cam, p.clock.Now())
	b, _ := f.MarshalBinary()
	select {
	case p.frames <- b:
	default:
	}
	return nil
}

// SendFrame publishes one frame and waits for the broker.
func (p *Publisher) SendFrame(b []byte) error {
	token := p.client.Publish(p.topic, p.qos, false, b)
	token.Wait()
	return token.Error()
}

// Run publishes queued frames until ctx ends.
func (p *Publisher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case b := <-p.frames:
			if err := p.SendFrame(b); err != nil {
				log.Printf("[!] Publish failed: %v", err)
			}
		}
	}
}
