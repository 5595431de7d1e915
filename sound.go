package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/squashjump/obj"
	"github.com/milk9111/squashjump/sfx"
)

const audioSampleRate = 48000

// cueSounds plays pre-rendered cue sounds through an ebiten audio context.
type cueSounds struct {
	ctx   *audio.Context
	bank  *sfx.Bank
	muted bool
}

func newCueSounds(muted bool) *cueSounds {
	cfg := sfx.DefaultConfig()
	cfg.SampleRate = audioSampleRate
	return &cueSounds{
		ctx:   audio.NewContext(audioSampleRate),
		bank:  sfx.NewBank(cfg),
		muted: muted,
	}
}

func (s *cueSounds) PlayCue(c obj.Cue) {
	if s == nil || s.muted {
		return
	}
	pcm, ok := s.bank.PCM(c)
	if !ok {
		log.Printf("sound: no sample for cue %s", c)
		return
	}
	s.ctx.NewPlayerFromBytes(pcm).Play()
}

func (s *cueSounds) toggleMute() { s.muted = !s.muted }
