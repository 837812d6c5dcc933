// Package audio plays game cues as short synthesized tones through the system speaker.
package audio

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/plus3/arcade/game"
)

// DefaultSampleRate is the rate the speaker is opened with.
const DefaultSampleRate = beep.SampleRate(44100)

// ErrUnknownCue is returned for cues without a tone sequence.
var ErrUnknownCue = errors.New("audio: unknown cue")

// Tone is one note of a cue.
type Tone struct {
	Frequency float64
	Duration  time.Duration
}

var cueTones = map[game.Cue][]Tone{
	game.CueBounce:      {{Frequency: 660, Duration: 40 * time.Millisecond}},
	game.CueHostileDown: {{Frequency: 880, Duration: 60 * time.Millisecond}},
	game.CueWin: {
		{Frequency: 523.25, Duration: 120 * time.Millisecond},
		{Frequency: 659.25, Duration: 120 * time.Millisecond},
		{Frequency: 783.99, Duration: 240 * time.Millisecond},
	},
	game.CueLoss: {
		{Frequency: 392, Duration: 150 * time.Millisecond},
		{Frequency: 329.63, Duration: 150 * time.Millisecond},
		{Frequency: 261.63, Duration: 300 * time.Millisecond},
	},
}

// Tones returns the notes played for cue.
func Tones(cue game.Cue) ([]Tone, bool) {
	tones, ok := cueTones[cue]
	return tones, ok
}

// Player implements game.Cues. Until Init succeeds it only counts cues, so a machine
// without an audio device runs silently.
type Player struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	gain        float64
	mixer       *beep.Mixer
	logger      *log.Logger
	initialized bool
	played      map[game.Cue]int
}

// NewPlayer creates a player. volume is clamped to [0, 1].
func NewPlayer(rate beep.SampleRate, volume float64, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default()
	}
	volume = min(max(volume, 0), 1)
	return &Player{
		rate:   rate,
		gain:   volume - 1,
		mixer:  &beep.Mixer{},
		logger: logger,
		played: make(map[game.Cue]int),
	}
}

// Init opens the speaker with a 100ms buffer and starts the mixer.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(time.Second/10)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Play queues the tones for cue on the mixer.
func (p *Player) Play(cue game.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.played[cue]++
	if !p.initialized {
		return
	}

	stream, err := p.stream(cue)
	if err != nil {
		p.logger.Printf("cue %s: %v", cue, err)
		return
	}

	speaker.Lock()
	p.mixer.Add(stream)
	speaker.Unlock()
}

// Stream returns a finite streamer rendering cue at the player's rate and volume.
func (p *Player) Stream(cue game.Cue) (beep.Streamer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stream(cue)
}

func (p *Player) stream(cue game.Cue) (beep.Streamer, error) {
	tones, ok := cueTones[cue]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCue, cue)
	}

	notes := make([]beep.Streamer, 0, len(tones))
	for _, tone := range tones {
		sine, err := generators.SineTone(p.rate, tone.Frequency)
		if err != nil {
			return nil, fmt.Errorf("tone %.2fHz: %w", tone.Frequency, err)
		}
		notes = append(notes, beep.Take(p.rate.N(tone.Duration), sine))
	}
	return &effects.Gain{Streamer: beep.Seq(notes...), Gain: p.gain}, nil
}

// Played returns how many times cue was requested.
func (p *Player) Played(cue game.Cue) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played[cue]
}

// Close drops queued sounds and closes the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.mixer.Clear()
	p.initialized = false
}
