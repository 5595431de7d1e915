package obj

import (
	"math/rand/v2"

	"github.com/jakecoffman/cp"
)

type CameraConfig struct {
	// FlashMaxAlpha is the flash overlay opacity when a flash starts.
	FlashMaxAlpha float64
}

func DefaultCameraConfig() CameraConfig {
	return CameraConfig{FlashMaxAlpha: 0.6}
}

// Camera is a fixed view over the screen that can shake and flash. A shake
// or flash requested while one is already running is ignored.
type Camera struct {
	cfg CameraConfig

	screenW float64
	screenH float64
	rng     *rand.Rand

	shakeLeft      float64
	shakeIntensity float64
	offset         cp.Vector

	flashLeft     float64
	flashDuration float64
}

// NewCamera creates a camera for the given logical screen size. The seed
// makes shake offsets reproducible.
func NewCamera(screenW, screenH float64, cfg CameraConfig, seed uint64) *Camera {
	return &Camera{
		cfg:     cfg,
		screenW: screenW,
		screenH: screenH,
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (c *Camera) SetConfig(cfg CameraConfig) { c.cfg = cfg }
func (c *Camera) Config() CameraConfig       { return c.cfg }

// Shake starts a shake. Intensity is a fraction of the screen size.
func (c *Camera) Shake(durationMs, intensity float64) {
	if durationMs <= 0 || c.shakeLeft > 0 {
		return
	}
	c.shakeLeft = durationMs
	c.shakeIntensity = intensity
}

// Flash starts a fading white flash.
func (c *Camera) Flash(durationMs float64) {
	if durationMs <= 0 || c.flashLeft > 0 {
		return
	}
	c.flashLeft = durationMs
	c.flashDuration = durationMs
}

// Update advances shake and flash by dt seconds.
func (c *Camera) Update(dt float64) {
	if dt <= 0 {
		return
	}
	ms := dt * 1000

	if c.shakeLeft > 0 {
		c.shakeLeft -= ms
	}
	if c.shakeLeft > 0 {
		ax := c.shakeIntensity * c.screenW
		ay := c.shakeIntensity * c.screenH
		c.offset = cp.Vector{
			X: (c.rng.Float64()*2 - 1) * ax,
			Y: (c.rng.Float64()*2 - 1) * ay,
		}
	} else {
		c.shakeLeft = 0
		c.offset = cp.Vector{}
	}

	if c.flashLeft > 0 {
		c.flashLeft -= ms
		if c.flashLeft < 0 {
			c.flashLeft = 0
		}
	}
}

// Offset is the current draw offset in pixels.
func (c *Camera) Offset() cp.Vector { return c.offset }

func (c *Camera) Shaking() bool { return c.shakeLeft > 0 }

// FlashAlpha fades linearly from FlashMaxAlpha to zero over the flash.
func (c *Camera) FlashAlpha() float64 {
	if c.flashLeft <= 0 || c.flashDuration <= 0 {
		return 0
	}
	return c.cfg.FlashMaxAlpha * c.flashLeft / c.flashDuration
}
