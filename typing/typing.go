package typing

import (
	"context"
	"time"
)

// A Sink displays text.
type Sink interface {
	SetText(text string)
}

// Sleeper blocks for fixed delays.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// Typist reveals text one character at a time.
//
// Callers must not run two Type calls against the same sink at once; the
// result of interleaving them is undefined.
type Typist struct {
	Clock Sleeper

	// Keystroke, if set, is called after each character is shown.
	Keystroke func(r rune)
}

// NewTypist creates an instance of a Typist.
func NewTypist(clock Sleeper) *Typist {
	t := new(Typist)
	t.Clock = clock
	return t
}

// Type clears sink and reveals text into it, one rune per charDelay. The
// first rune is shown immediately and each rune, the last included, is
// followed by charDelay. Only a context error is returned.
func (t *Typist) Type(ctx context.Context, sink Sink, text string, charDelay time.Duration) error {
	sink.SetText("")

	runes := []rune(text)
	for i, r := range runes {
		sink.SetText(string(runes[:i+1]))
		if t.Keystroke != nil {
			t.Keystroke(r)
		}
		if err := t.Clock.Sleep(ctx, charDelay); err != nil {
			return err
		}
	}
	return nil
}
