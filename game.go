package main

import (
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/squashjump/obj"
	"github.com/milk9111/squashjump/prefabs"
)

type gameOptions struct {
	debug bool
	watch bool
	mute  bool
	seed  uint64
}

type Game struct {
	frames int
	debug  bool
	paused bool
	quit   bool

	tuning  prefabs.Tuning
	world   *obj.CollisionWorld
	device  *ebitenDevice
	player  *obj.Player
	effects *obj.EffectManager
	camera  *obj.Camera
	sounds  *cueSounds
	watcher *prefabs.Watcher
	ui      *ebitenui.UI
}

func NewGame(opts gameOptions) *Game {
	tuning, err := prefabs.LoadTuning()
	if err != nil {
		log.Printf("prefabs: %v; using built-in tuning", err)
		tuning = prefabs.DefaultTuning()
	}

	g := &Game{debug: opts.debug, tuning: tuning}
	g.world = obj.NewCollisionWorld(tuning.World)
	g.device = newEbitenDevice()
	g.effects = obj.NewEffectManager(tuning.Effects, opts.seed)
	g.effects.SetGrace(tuning.EffectGrace)
	g.camera = obj.NewCamera(tuning.World.Width, tuning.World.Height, tuning.Camera, opts.seed+1)
	g.sounds = newCueSounds(opts.mute)
	g.player = obj.NewPlayer(tuning.Player, obj.PlayerDeps{
		World:   g.world,
		Device:  g.device,
		Effects: g.effects,
		Shaker:  g.camera,
		Flasher: g.camera,
		Cues:    g.sounds,
	})
	g.ui = NewPauseUI(g)

	if opts.watch {
		w, err := prefabs.NewWatcher(prefabs.OverrideDir())
		if err != nil {
			log.Printf("prefabs: watch %s: %v", prefabs.OverrideDir(), err)
		} else {
			g.watcher = w
		}
	}
	return g
}

func (g *Game) Update() error {
	if g.quit {
		g.Close()
		return ebiten.Termination
	}
	g.frames++

	g.pollReload()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.setPaused(!g.paused)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.sounds.toggleMute()
	}
	if g.paused {
		g.ui.Update()
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.reset()
	}

	dt := 1.0 / float64(ebiten.TPS())
	g.device.refresh()
	g.player.Update(dt)
	g.effects.Update(dt)
	g.camera.Update(dt)
	return nil
}

// setPaused shows the OS cursor while the menu is up.
func (g *Game) setPaused(paused bool) {
	g.paused = paused
	if paused {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	}
}

func (g *Game) reset() {
	g.player.Reset()
	g.effects.Clear()
}

func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("prefabs: %s changed, reloading", name)
			g.reload()
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("prefabs: watch: %v", err)
		default:
			return
		}
	}
}

// reload re-reads every prefab file. A bad file is logged and the running
// tuning is kept.
func (g *Game) reload() {
	t, err := prefabs.LoadTuning()
	if err != nil {
		log.Printf("prefabs: reload rejected: %v", err)
		return
	}
	g.applyTuning(t)
}

func (g *Game) applyTuning(t prefabs.Tuning) {
	old := g.tuning.World
	if t.World.Width != old.Width || t.World.Height != old.Height || t.World.GroundHeight != old.GroundHeight {
		log.Printf("prefabs: world geometry changes apply on restart")
		t.World.Width, t.World.Height, t.World.GroundHeight = old.Width, old.Height, old.GroundHeight
	}
	g.world.SetGravity(t.World.Gravity)
	g.world.SetSubSteps(t.World.SubSteps)
	g.player.ApplyConfig(t.Player)
	g.camera.SetConfig(t.Camera)
	g.effects.SetStyles(t.Effects)
	g.effects.SetGrace(t.EffectGrace)
	g.tuning = t
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("prefabs: close watcher: %v", err)
		}
		g.watcher = nil
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return g.tuning.World.Width, g.tuning.World.Height
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
