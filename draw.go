package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/squashjump/common"
	"github.com/milk9111/squashjump/obj"
	"golang.org/x/image/colornames"
)

func (g *Game) Draw(screen *ebiten.Image) {
	pal := g.tuning.Palette
	screen.Fill(pal.Background)

	off := g.camera.Offset()

	ground := g.world.Ground()
	vector.DrawFilledRect(screen,
		float32(ground.X+off.X), float32(ground.Y+off.Y),
		float32(ground.Width), float32(ground.Height),
		pal.Ground, false)

	g.drawPlayer(screen, off)
	g.drawProjectiles(screen, off)
	g.drawParticles(screen, off)
	g.drawAim(screen, off)

	if a := g.camera.FlashAlpha(); a > 0 {
		w, h := g.tuning.World.Width, g.tuning.World.Height
		vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), withAlpha(colornames.White, a), false)
	}

	if g.debug {
		g.world.DrawDebug(&chipmunkDrawer{screen: screen, offset: off})
		g.drawDebugText(screen)
	}
	if g.paused {
		g.ui.Draw(screen)
	}
}

// drawPlayer draws the collision box scaled by the squash pose. The bottom
// edge stays put so squashing reads as pressing into the ground.
func (g *Game) drawPlayer(screen *ebiten.Image, off cp.Vector) {
	body := g.player.Body()
	w, h := body.Size()
	s := body.Scale()
	sw, sh := w*s.X, h*s.Y
	feet := body.BottomCenter()

	vector.DrawFilledRect(screen,
		float32(feet.X-sw/2+off.X), float32(feet.Y-sh+off.Y),
		float32(sw), float32(sh),
		g.tuning.Palette.Player, true)
}

func (g *Game) drawProjectiles(screen *ebiten.Image, off cp.Vector) {
	size := g.player.Projectiles().Config().Size
	clr := g.tuning.Palette.Projectile
	view := common.Rect{Width: g.tuning.World.Width, Height: g.tuning.World.Height}
	g.player.Projectiles().Each(func(p *obj.Projectile) {
		pos := p.Position().Add(off)
		bounds := common.RectFromCenter(pos.X, pos.Y, size*2, size*2)
		if !bounds.Intersects(&view) {
			return
		}
		r := size / 2
		vector.DrawFilledCircle(screen, float32(pos.X), float32(pos.Y), float32(r), clr, true)

		tail := pos.Sub(cp.Vector{X: math.Cos(p.Rotation()), Y: math.Sin(p.Rotation())}.Mult(size))
		vector.StrokeLine(screen, float32(tail.X), float32(tail.Y), float32(pos.X), float32(pos.Y), 2, clr, true)
	})
}

func (g *Game) drawParticles(screen *ebiten.Image, off cp.Vector) {
	g.effects.EachParticle(func(p obj.Particle) {
		pos := p.Pos.Add(off)
		vector.DrawFilledCircle(screen, float32(pos.X), float32(pos.Y), float32(p.Size/2), withAlpha(p.Color, p.Alpha()), false)
	})
}

// drawAim draws the custom cursor and a short line from the player toward
// where the next shot would go.
func (g *Game) drawAim(screen *ebiten.Image, off cp.Vector) {
	ptr := g.player.Input().Pointer()
	vector.StrokeCircle(screen, float32(ptr.X), float32(ptr.Y), 6, 1.5, colornames.Whitesmoke, true)

	from := g.player.Body().Center()
	dir := g.player.AimDirection(ptr)
	to := from.Add(dir.Mult(40))
	vector.StrokeLine(screen,
		float32(from.X+off.X), float32(from.Y+off.Y),
		float32(to.X+off.X), float32(to.Y+off.Y),
		1, withAlpha(colornames.Whitesmoke, 0.5), true)
}

func (g *Game) drawDebugText(screen *ebiten.Image) {
	st := g.player.State()
	msg := fmt.Sprintf(
		"FPS: %.1f  frames: %d\npos: %.1f,%.1f  vel: %.1f,%.1f\nscale: %.2f,%.2f  morph: %v(%v)\nground: %v  landings: %d\nability: %v  uncontrol: %.2f  cooldown: %.2f\nprojectiles: %d  particles: %d",
		ebiten.ActualFPS(), g.frames,
		st.Position.X, st.Position.Y, st.Velocity.X, st.Velocity.Y,
		st.Scale.X, st.Scale.Y, st.Morph, st.Morphing,
		st.Ground, st.Landings,
		st.Critical, st.UnControlTime, st.ShotCooldown,
		st.Projectiles, g.effects.ParticleCount(),
	)
	ebitenutil.DebugPrint(screen, msg)
}

func withAlpha(c color.Color, a float64) color.Color {
	r, gr, b, al := c.RGBA()
	a = math.Max(0, math.Min(1, a))
	return color.RGBA64{
		R: uint16(float64(r) * a),
		G: uint16(float64(gr) * a),
		B: uint16(float64(b) * a),
		A: uint16(float64(al) * a),
	}
}
