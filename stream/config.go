package stream

import "time"

// Renderer names accepted in Config.Renderer.
const (
	RendererTerminal = "terminal"
	RendererMqtt     = "mqtt"
	RendererNone     = "none"
)

// Config controls the frame clock and its MQTT transport.
type Config struct {
	Renderer     string  `yaml:"renderer"`
	FrameRate    float64 `yaml:"frameRate"`
	RotationStep float64 `yaml:"rotationStep"`
	Autostart    bool    `yaml:"autostart"`

	Mqtt struct {
		URL      string `yaml:"url"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		QoS      byte   `yaml:"qos"`
		Topics   struct {
			Stream  string `yaml:"stream"`
			Control string `yaml:"control"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`
}

// DefaultConfig returns a terminal-rendered, autostarting configuration.
func DefaultConfig() Config {
	var c Config
	c.Renderer = RendererTerminal
	c.FrameRate = 60
	c.RotationStep = 0.007
	c.Autostart = true
	c.Mqtt.Topics.Stream = "cakeshow/stream"
	c.Mqtt.Topics.Control = "cakeshow/control"
	return c
}

// Interval is the time between frames.
func (c Config) Interval() time.Duration {
	if c.FrameRate <= 0 {
		return time.Second / 60
	}
	return time.Duration(float64(time.Second) / c.FrameRate)
}
