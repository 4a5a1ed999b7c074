package show

import (
	"time"

	"github.com/matt-g-everett/cakeshow/scene"
)

// Config describes the presentation content and its pacing. All times are
// milliseconds.
type Config struct {
	Assets struct {
		Root       string   `yaml:"root"`
		Cake       string   `yaml:"cake"`
		Background string   `yaml:"background"`
		Photos     []string `yaml:"photos"`
	} `yaml:"assets"`

	Lines struct {
		Name     string `yaml:"name"`
		Greeting string `yaml:"greeting"`
		Typo     string `yaml:"typo"`
		Message  string `yaml:"message"`
		Decor    string `yaml:"decor"`
		Caption  string `yaml:"caption"`
		Card     string `yaml:"card"`
	} `yaml:"lines"`

	Timing Timing `yaml:"timing"`

	Camera struct {
		Start  []float64 `yaml:"start"`
		Reveal []float64 `yaml:"reveal"`
	} `yaml:"camera"`

	Sound bool `yaml:"sound"`
}

// Timing holds every delay of the sequence.
type Timing struct {
	NameChar     int `yaml:"nameChar"`
	GreetingChar int `yaml:"greetingChar"`
	TypoChar     int `yaml:"typoChar"`
	TypoPause    int `yaml:"typoPause"`
	MessageChar  int `yaml:"messageChar"`
	DecorChar    int `yaml:"decorChar"`

	TextFade     int `yaml:"textFade"`
	TextFadeWait int `yaml:"textFadeWait"`
	CakePop      int `yaml:"cakePop"`

	CaptionDelay int `yaml:"captionDelay"`
	CaptionFade  int `yaml:"captionFade"`
	CameraPan    int `yaml:"cameraPan"`

	CardDelay int `yaml:"cardDelay"`
	CardFade  int `yaml:"cardFade"`
	CardZoom  int `yaml:"cardZoom"`
	CakeSink  int `yaml:"cakeSink"`
	CardHold  int `yaml:"cardHold"`

	// Settle delays after each stage, in sequence order.
	Settle []int `yaml:"settle"`
}

// DefaultConfig returns the stock birthday presentation.
func DefaultConfig() Config {
	var c Config
	c.Assets.Root = "assets"
	c.Assets.Cake = "cake.yaml"
	c.Assets.Background = "city.jpg"
	c.Assets.Photos = []string{"photo1.jpg", "photo2.jpg", "photo3.jpg"}

	c.Lines.Name = "tina"
	c.Lines.Greeting = "today is your birthday"
	c.Lines.Typo = "so i made you this c"
	c.Lines.Message = "so i made you this computer program"
	c.Lines.Decor = "(0, 0), |__/(0, 0),|"
	c.Lines.Caption = "happy birthday!"
	c.Lines.Card = "make a wish"

	c.Timing = Timing{
		NameChar:     80,
		GreetingChar: 60,
		TypoChar:     40,
		TypoPause:    300,
		MessageChar:  30,
		DecorChar:    35,
		TextFade:     600,
		TextFadeWait: 650,
		CakePop:      700,
		CaptionDelay: 80,
		CaptionFade:  800,
		CameraPan:    900,
		CardDelay:    50,
		CardFade:     600,
		CardZoom:     900,
		CakeSink:     900,
		CardHold:     1100,
		Settle:       []int{500, 400, 400, 500, 600, 700, 1200, 900},
	}

	c.Camera.Start = []float64{0, 2.2, 7}
	c.Camera.Reveal = []float64{0, 3.2, 10}
	return c
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// settle returns the settle delay for the i-th stage, or 0 if unset.
func (t Timing) settle(i int) time.Duration {
	if i < len(t.Settle) {
		return ms(t.Settle[i])
	}
	return 0
}

func toVec(v []float64, def scene.Vec3) scene.Vec3 {
	if len(v) != 3 {
		return def
	}
	return scene.Vec3{X: v[0], Y: v[1], Z: v[2]}
}
