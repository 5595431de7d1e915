// Package sfx synthesizes the short cue sounds played by the player and
// renders them to PCM for the audio backend.
package sfx

import (
	"encoding/binary"
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/milk9111/squashjump/obj"
)

const DefaultSampleRate = 44100

type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a fixed-length wave, optionally sweeping its
// frequency linearly from freq to endFreq.
type oscillator struct {
	freq     float64
	endFreq  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

func NewSweep(from, to float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     from,
		endFreq:  to,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewPCG(uint64(from*1000), uint64(to*1000)+1)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		t := float64(o.position) / float64(o.duration)
		freq := o.freq + (o.endFreq-o.freq)*t
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}
	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// math.Log2(0) is -Inf, so zero volume is expressed as Silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

type Config struct {
	SampleRate int
	Master     float64
	Volumes    map[obj.Cue]float64
}

func DefaultConfig() Config {
	return Config{
		SampleRate: DefaultSampleRate,
		Master:     0.5,
		Volumes: map[obj.Cue]float64{
			obj.CueJump:  0.6,
			obj.CueLand:  0.8,
			obj.CueDash:  0.5,
			obj.CueShoot: 0.4,
		},
	}
}

func (c Config) volume(cue obj.Cue) float64 {
	v, ok := c.Volumes[cue]
	if !ok {
		v = 1
	}
	return v * c.Master
}

// Streamer builds a fresh streamer for cue, or nil for an unknown cue.
func Streamer(cue obj.Cue, cfg Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	var s beep.Streamer
	switch cue {
	case obj.CueJump:
		d := 120 * time.Millisecond
		s = NewEnvelope(NewSweep(300, 620, d, WaveSquare, rate), d, 5*time.Millisecond, 60*time.Millisecond, rate)
	case obj.CueLand:
		d := 90 * time.Millisecond
		thump := NewEnvelope(NewSweep(140, 60, d, WaveSine, rate), d, 2*time.Millisecond, 70*time.Millisecond, rate)
		grit := NewEnvelope(NewOscillator(0, d, WaveNoise, rate), d, time.Millisecond, 80*time.Millisecond, rate)
		s = beep.Mix(newVolume(thump, 0.8), newVolume(grit, 0.2))
	case obj.CueDash:
		d := 180 * time.Millisecond
		s = NewEnvelope(NewOscillator(0, d, WaveNoise, rate), d, 30*time.Millisecond, 120*time.Millisecond, rate)
	case obj.CueShoot:
		n1 := 40 * time.Millisecond
		n2 := 60 * time.Millisecond
		s = beep.Seq(
			NewEnvelope(NewOscillator(880, n1, WaveSquare, rate), n1, time.Millisecond, 10*time.Millisecond, rate),
			NewEnvelope(NewSweep(660, 330, n2, WaveSaw, rate), n2, time.Millisecond, 50*time.Millisecond, rate),
		)
	default:
		return nil
	}
	return newVolume(s, cfg.volume(cue))
}

// Render drains s into signed 16-bit little-endian stereo PCM.
func Render(s beep.Streamer) []byte {
	if s == nil {
		return nil
	}
	buf := make([][2]float64, 512)
	var out []byte
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			for ch := 0; ch < 2; ch++ {
				v := math.Max(-1, math.Min(1, buf[i][ch]))
				out = binary.LittleEndian.AppendUint16(out, uint16(int16(v*math.MaxInt16)))
			}
		}
		if !ok || n == 0 {
			return out
		}
	}
}

// Bank holds pre-rendered PCM for every cue.
type Bank struct {
	cfg Config
	pcm map[obj.Cue][]byte
}

func NewBank(cfg Config) *Bank {
	b := &Bank{cfg: cfg, pcm: make(map[obj.Cue][]byte)}
	for _, cue := range []obj.Cue{obj.CueJump, obj.CueLand, obj.CueDash, obj.CueShoot} {
		b.pcm[cue] = Render(Streamer(cue, cfg))
	}
	return b
}

func (b *Bank) SampleRate() int { return b.cfg.SampleRate }

// PCM returns the rendered bytes for cue and whether the cue is known.
func (b *Bank) PCM(cue obj.Cue) ([]byte, bool) {
	data, ok := b.pcm[cue]
	return data, ok
}
