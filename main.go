package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/gdamore/tcell/v2"
	"github.com/matt-g-everett/cakeshow/api"
	"github.com/matt-g-everett/cakeshow/asset"
	"github.com/matt-g-everett/cakeshow/audio"
	"github.com/matt-g-everett/cakeshow/clock"
	"github.com/matt-g-everett/cakeshow/show"
	"github.com/matt-g-everett/cakeshow/stream"
	"github.com/matt-g-everett/cakeshow/term"
	"github.com/matt-g-everett/cakeshow/timeline"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v2"
)

type config struct {
	Stream stream.Config `yaml:"stream"`
	Show   show.Config   `yaml:"show"`
	Api    api.Config    `yaml:"api"`
	Log    struct {
		File string `yaml:"file"`
	} `yaml:"log"`
}

func defaultConfig() config {
	var c config
	c.Stream = stream.DefaultConfig()
	c.Show = show.DefaultConfig()
	c.Api = api.DefaultConfig()
	return c
}

type app struct {
	Config   config
	Client   mqtt.Client
	Clock    *clock.Real
	Show     *show.Show
	Runner   *timeline.Runner
	Streamer *stream.Streamer
	Trigger  *stream.Trigger
	Api      *api.Api

	publisher *stream.Publisher
	screen    tcell.Screen
	clicker   *audio.Clicker
	logFile   io.Closer
}

func newApp() *app {
	a := new(app)
	a.Config = defaultConfig()
	return a
}

func (a *app) readConfig(configPath string) error {
	f, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	return decoder.Decode(&a.Config)
}

// setupLog keeps log output off the screen while the terminal renderer
// owns it.
func (a *app) setupLog() error {
	path := a.Config.Log.File
	if path == "" && a.Config.Stream.Renderer == stream.RendererTerminal {
		path = "cakeshow.log"
	}

	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		log.SetOutput(f)
		a.logFile = f
	}

	mqtt.ERROR = log.New(log.Writer(), "", 0)
	return nil
}

func (a *app) handleOnConnect(client mqtt.Client) {
	log.Println("[+] Connected")
	if err := a.Trigger.Subscribe(); err != nil {
		log.Printf("[!] %v", err)
	}
}

func (a *app) setupMqtt() {
	m := a.Config.Stream.Mqtt
	if m.URL == "" {
		return
	}

	options := mqtt.NewClientOptions().
		AddBroker(m.URL).
		SetClientID("cakeshow").
		SetUsername(m.Username).
		SetPassword(m.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetOnConnectHandler(a.handleOnConnect)
	a.Client = mqtt.NewClient(options)
}

func (a *app) renderer() (stream.Renderer, error) {
	switch a.Config.Stream.Renderer {
	case stream.RendererTerminal:
		screen, err := term.Open()
		if err != nil {
			return nil, err
		}
		a.screen = screen
		return term.NewRenderer(screen, term.Layout{
			Container: a.Show.TextArea,
			Lines:     a.Show.Lines[:],
			Caption:   a.Show.Caption,
			Card:      a.Show.Card,
		}), nil
	case stream.RendererMqtt:
		if a.Client == nil {
			return nil, errors.New("mqtt renderer needs stream.mqtt.url")
		}
		a.publisher = stream.NewPublisher(a.Config.Stream, a.Client, a.Clock)
		return a.publisher, nil
	case stream.RendererNone, "":
		return stream.Discard{}, nil
	}
	return nil, errors.New("unknown renderer " + a.Config.Stream.Renderer)
}

func (a *app) setup(ctx context.Context) error {
	a.Clock = clock.NewReal()
	a.setupMqtt()

	a.Show = show.New(a.Config.Show, a.Clock, asset.NewFileLoader(a.Config.Show.Assets.Root))
	if err := a.Show.Prepare(ctx); err != nil {
		return err
	}

	if a.Config.Show.Sound {
		a.clicker = audio.NewClicker()
		if err := a.clicker.Initialize(); err != nil {
			log.Printf("[!] Audio initialization failed: %v", err)
		} else {
			a.Show.Typist.Keystroke = a.clicker.Click
		}
	}

	a.Runner = a.Show.Timeline()
	a.Runner.OnTransition(func(s timeline.State, now time.Duration) {
		log.Printf("[*] %v: %s %s", now.Round(time.Millisecond), s.Phase, s.Name)
	})

	renderer, err := a.renderer()
	if err != nil {
		return err
	}
	a.Streamer = stream.NewStreamer(a.Show.Scene, a.Show.Cake, a.Show.Camera,
		a.Show.Tweens, a.Clock, renderer, a.Config.Stream)

	a.Trigger = stream.NewTrigger(a.Config.Stream, a.Client)
	a.Api = api.NewApi(a.Config.Api, a.Runner, a.Clock, a.Trigger)
	return nil
}

func (a *app) run(ctx context.Context) error {
	if a.Client != nil {
		if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
			return token.Error()
		}
		defer a.Client.Disconnect(250)
	}
	if a.Config.Stream.Autostart || a.Client == nil {
		a.Trigger.Fire()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.Streamer.Run(ctx)
	})
	g.Go(func() error {
		return a.Api.Run(ctx)
	})
	if a.publisher != nil {
		g.Go(func() error {
			return a.publisher.Run(ctx)
		})
	}
	g.Go(func() error {
		if err := a.Trigger.Wait(ctx); err != nil {
			return nil
		}
		log.Println("[*] Starting presentation")
		err := a.Runner.Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	return g.Wait()
}

func (a *app) close() {
	if a.screen != nil {
		a.screen.Fini()
	}
	if a.clicker != nil {
		a.clicker.Close()
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
}

func main() {
	// Parse command line parameters
	configPath := flag.String("config", "config.yaml", "YAML config file.")
	flag.Parse()

	// Read the config
	a := newApp()
	if err := a.readConfig(*configPath); err != nil {
		log.Fatalf("[!] Failed to read config %s: %v", *configPath, err)
	}
	if err := a.setupLog(); err != nil {
		log.Fatalf("[!] Failed to open log: %v", err)
	}
	log.Printf("[*] Config: %+v", a.Config)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.setup(ctx); err != nil {
		a.close()
		log.Fatalf("[!] Setup failed: %v", err)
	}

	if a.screen != nil {
		go func() {
			term.WaitQuit(a.screen)
			stop()
		}()
	}

	err := a.run(ctx)
	a.close()
	if err != nil {
		log.Fatalf("[!] %v", err)
	}
	log.Println("[*] Bye")
}
