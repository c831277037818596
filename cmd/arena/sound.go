package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/polybius/arena/internal/core/event"
	"go.uber.org/zap"
)

const sampleRate = beep.SampleRate(44100)

// cue is one short tone.
type cue struct {
	freq float64
	dur  time.Duration
}

var (
	cueKill    = cue{660, 80 * time.Millisecond}
	cueHurt    = cue{196, 150 * time.Millisecond}
	cueLevelUp = cue{880, 220 * time.Millisecond}
	cueOver    = cue{110, 600 * time.Millisecond}
)

// sound plays audio cues for gameplay events. Speaker failures disable
// sound without affecting the game.
type sound struct {
	log *zap.Logger
}

func newSound(log *zap.Logger) (*sound, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &sound{log: log}, nil
}

// Subscribe hooks the cues onto the session's events.
func (s *sound) Subscribe(bus *event.Bus) {
	event.Subscribe(bus, func(event.EnemyKilled) { s.play(cueKill) })
	event.Subscribe(bus, func(event.PlayerDamaged) { s.play(cueHurt) })
	event.Subscribe(bus, func(event.PlayerLeveledUp) { s.play(cueLevelUp) })
	event.Subscribe(bus, func(event.RunOver) { s.play(cueOver) })
}

func (s *sound) play(c cue) {
	tone, err := generators.SineTone(sampleRate, c.freq)
	if err != nil {
		s.log.Debug("tone generator", zap.Float64("freq", c.freq), zap.Error(err))
		return
	}
	quiet := &effects.Volume{Streamer: tone, Base: 2, Volume: -2}
	speaker.Play(beep.Take(sampleRate.N(c.dur), quiet))
}

func (s *sound) Close() {
	speaker.Clear()
	speaker.Close()
}
