package typewriter

import (
	"fmt"
	"time"
)

type Mode int

const (
	Typing Mode = iota
	Deleting
)

func (m Mode) String() string {
	switch m {
	case Typing:
		return "typing"
	case Deleting:
		return "deleting"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

const (
	DefaultTypeDelay   = 150 * time.Millisecond
	DefaultDeleteDelay = 100 * time.Millisecond
	DefaultHoldFull    = 2000 * time.Millisecond
	DefaultHoldEmpty   = 500 * time.Millisecond
)

// Timing holds the delays between ticks.
type Timing struct {
	Type      time.Duration
	Delete    time.Duration
	HoldFull  time.Duration
	HoldEmpty time.Duration
}

func DefaultTiming() Timing {
	return Timing{
		Type:      DefaultTypeDelay,
		Delete:    DefaultDeleteDelay,
		HoldFull:  DefaultHoldFull,
		HoldEmpty: DefaultHoldEmpty,
	}
}

// State is the full position of the animation. CharIndex counts runes of the
// current phrase. Holding is set while the full phrase sits on screen before
// deletion starts.
type State struct {
	Phrases     []string
	PhraseIndex int
	CharIndex   int
	Mode        Mode
	Holding     bool
}

// Frame is what one tick produces: the text to display and the delay until
// the next tick.
type Frame struct {
	Text  string
	Delay time.Duration
}

func NewState(phrases []string) (State, error) {
	if len(phrases) == 0 {
		return State{}, fmt.Errorf("%w: phrase list is empty", ErrConfiguration)
	}
	cp := make([]string, len(phrases))
	copy(cp, phrases)
	return State{Phrases: cp}, nil
}

// Current returns the phrase being typed or deleted.
func (s State) Current() []rune {
	return []rune(s.Phrases[s.PhraseIndex])
}

// Text returns the visible prefix of the current phrase.
func (s State) Text() string {
	return string(s.Current()[:s.CharIndex])
}

// Step advances the animation by one tick.
func Step(s State, t Timing) (State, Frame) {
	phrase := s.Current()

	if s.Mode == Typing {
		if s.CharIndex < len(phrase) {
			s.CharIndex++
			return s, Frame{Text: string(phrase[:s.CharIndex]), Delay: t.Type}
		}
		if !s.Holding {
			s.Holding = true
			return s, Frame{Text: string(phrase), Delay: t.HoldFull}
		}
		s.Holding = false
		s.Mode = Deleting
	}

	if s.CharIndex > 0 {
		s.CharIndex--
		return s, Frame{Text: string(phrase[:s.CharIndex]), Delay: t.Delete}
	}

	s.Mode = Typing
	s.PhraseIndex = (s.PhraseIndex + 1) % len(s.Phrases)
	return s, Frame{Text: "", Delay: t.HoldEmpty}
}
