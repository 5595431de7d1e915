package obj

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/squashjump/common"
)

// ArcadeBody puts arcade-style motion on top of a chipmunk body: per-axis
// acceleration, a velocity ceiling and horizontal drag that only acts while
// no horizontal acceleration is applied.
type ArcadeBody struct {
	body  *cp.Body
	shape *cp.Shape

	width, height float64

	accel        cp.Vector
	maxVel       cp.Vector
	dragX        float64
	allowGravity bool

	scale cp.Vector
}

// NewArcadeBody creates a box body of the given size centered on center.
// Rotation is locked.
func NewArcadeBody(center cp.Vector, width, height float64) *ArcadeBody {
	b := &ArcadeBody{
		width:        width,
		height:       height,
		maxVel:       cp.Vector{X: math.Inf(1), Y: math.Inf(1)},
		allowGravity: true,
		scale:        cp.Vector{X: 1, Y: 1},
	}

	body := cp.NewBody(1, math.Inf(1))
	body.SetAngle(0)
	body.SetAngularVelocity(0)
	body.SetPosition(center)
	body.SetVelocityUpdateFunc(b.updateVelocity)

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(0)

	b.body = body
	b.shape = shape
	return b
}

func (b *ArcadeBody) updateVelocity(body *cp.Body, gravity cp.Vector, damping, dt float64) {
	if !b.allowGravity {
		gravity = cp.Vector{}
	}
	cp.BodyUpdateVelocity(body, gravity.Add(b.accel), damping, dt)

	v := body.Velocity()
	if b.accel.X == 0 && b.dragX > 0 {
		v.X = approachZero(v.X, b.dragX*dt)
	}
	v.X = common.Clamp(v.X, -b.maxVel.X, b.maxVel.X)
	v.Y = common.Clamp(v.Y, -b.maxVel.Y, b.maxVel.Y)
	body.SetVelocity(v.X, v.Y)
}

func approachZero(v, step float64) float64 {
	if math.Abs(v) <= step {
		return 0
	}
	return v - common.Sign(v)*step
}

func (b *ArcadeBody) Body() *cp.Body   { return b.body }
func (b *ArcadeBody) Shape() *cp.Shape { return b.shape }

func (b *ArcadeBody) Velocity() cp.Vector         { return b.body.Velocity() }
func (b *ArcadeBody) SetVelocity(x, y float64)    { b.body.SetVelocity(x, y) }
func (b *ArcadeBody) Acceleration() cp.Vector     { return b.accel }
func (b *ArcadeBody) SetAccelerationX(ax float64) { b.accel.X = ax }
func (b *ArcadeBody) SetAccelerationY(ay float64) { b.accel.Y = ay }
func (b *ArcadeBody) MaxVelocity() cp.Vector      { return b.maxVel }

// SetMaxVelocity caps the absolute velocity on each axis. The cap is applied
// on the next physics step.
func (b *ArcadeBody) SetMaxVelocity(x, y float64) {
	b.maxVel = cp.Vector{X: math.Abs(x), Y: math.Abs(y)}
}

func (b *ArcadeBody) SetDragX(drag float64)      { b.dragX = math.Max(0, drag) }
func (b *ArcadeBody) SetAllowGravity(allow bool) { b.allowGravity = allow }

// SetBounce sets the restitution of the body's shape.
func (b *ArcadeBody) SetBounce(bounce float64) { b.shape.SetElasticity(common.Clamp(bounce, 0, 1)) }

func (b *ArcadeBody) Size() (w, h float64) { return b.width, b.height }

// Scale is the visual scale only; the collision box keeps its size.
func (b *ArcadeBody) Scale() cp.Vector { return b.scale }

func (b *ArcadeBody) SetScale(scale cp.Vector) { b.scale = scale }

func (b *ArcadeBody) Center() cp.Vector { return b.body.Position() }

func (b *ArcadeBody) BottomCenter() cp.Vector {
	return b.body.Position().Add(cp.Vector{Y: b.height / 2})
}

func (b *ArcadeBody) Bounds() common.Rect {
	c := b.body.Position()
	return common.RectFromCenter(c.X, c.Y, b.width, b.height)
}
