package obj

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/squashjump/common"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypePlayerGround
	collisionTypeSolid
	collisionTypeProjectile
)

type WorldConfig struct {
	Width, Height float64
	Gravity       float64
	// SubSteps splits every frame into this many physics steps.
	SubSteps     int
	GroundHeight float64
}

func DefaultWorldConfig() WorldConfig {
	return WorldConfig{
		Width:        common.BaseWidth,
		Height:       common.BaseHeight,
		Gravity:      600,
		SubSteps:     3,
		GroundHeight: 20,
	}
}

// CollisionWorld owns the chipmunk space: the static ground block, the world
// bounds, the player body and projectile bodies.
type CollisionWorld struct {
	cfg   WorldConfig
	space *cp.Space

	ground       common.Rect
	groundShape  *cp.Shape
	playerBody   *ArcadeBody
	groundSensor *cp.Shape

	// OnGroundContact is called for every physics step in which the player's
	// ground sensor overlaps solid geometry.
	OnGroundContact func()

	handlersReady bool
}

func NewCollisionWorld(cfg WorldConfig) *CollisionWorld {
	if cfg.SubSteps < 1 {
		cfg.SubSteps = 1
	}
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: cfg.Gravity})
	cw := &CollisionWorld{cfg: cfg, space: space}
	cw.buildStaticShapes()
	cw.setupHandlers()
	return cw
}

func (cw *CollisionWorld) buildStaticShapes() {
	w, h := cw.cfg.Width, cw.cfg.Height

	cw.ground = common.Rect{X: 0, Y: h - cw.cfg.GroundHeight, Width: w, Height: cw.cfg.GroundHeight}
	bb := cp.BB{L: cw.ground.X, B: cw.ground.Y, R: cw.ground.X + cw.ground.Width, T: cw.ground.Y + cw.ground.Height}
	ground := cp.NewBox2(cw.space.StaticBody, bb, 0)
	ground.SetFriction(0.8)
	ground.SetElasticity(1)
	ground.SetCollisionType(collisionTypeSolid)
	cw.space.AddShape(ground)
	cw.groundShape = ground

	thickness := 1.0
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: w, Y: 0}}, // top
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: h}}, // left
		{a: cp.Vector{X: w, Y: 0}, b: cp.Vector{X: w, Y: h}}, // right
	}
	for _, seg := range segments {
		shape := cp.NewSegment(cw.space.StaticBody, seg.a, seg.b, thickness)
		shape.SetFriction(0.8)
		shape.SetElasticity(1)
		shape.SetCollisionType(collisionTypeSolid)
		cw.space.AddShape(shape)
	}
}

func (cw *CollisionWorld) setupHandlers() {
	if cw.handlersReady {
		return
	}
	groundHandler := cw.space.NewCollisionHandler(collisionTypePlayerGround, collisionTypeSolid)
	groundHandler.UserData = cw
	groundHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*CollisionWorld)
		if ok && world != nil && world.OnGroundContact != nil {
			world.OnGroundContact()
		}
		return true
	}
	cw.handlersReady = true
}

// AttachPlayer adds the player box and its ground sensor to the space. The
// sensor is a thin strip under the feet, narrower than the body so walls
// don't register as ground.
func (cw *CollisionWorld) AttachPlayer(body *ArcadeBody) {
	if body == nil || cw.playerBody != nil {
		return
	}
	body.shape.SetCollisionType(collisionTypePlayer)

	w, h := body.Size()
	groundBB := cp.BB{
		L: -w * 0.45,
		B: h / 2.0,
		R: w * 0.45,
		T: h/2.0 + 2,
	}
	sensor := cp.NewBox2(body.body, groundBB, 0)
	sensor.SetSensor(true)
	sensor.SetCollisionType(collisionTypePlayerGround)

	cw.space.AddBody(body.body)
	cw.space.AddShape(body.shape)
	cw.space.AddShape(sensor)

	cw.playerBody = body
	cw.groundSensor = sensor
}

// DetachPlayer removes the player from the space so a new body can be
// attached.
func (cw *CollisionWorld) DetachPlayer() {
	if cw.playerBody == nil {
		return
	}
	cw.space.RemoveShape(cw.groundSensor)
	cw.space.RemoveShape(cw.playerBody.shape)
	cw.space.RemoveBody(cw.playerBody.body)
	cw.playerBody = nil
	cw.groundSensor = nil
}

// Step advances the space by dt in SubSteps equal slices.
func (cw *CollisionWorld) Step(dt float64) {
	if dt <= 0 {
		return
	}
	n := cw.cfg.SubSteps
	sub := dt / float64(n)
	for i := 0; i < n; i++ {
		cw.space.Step(sub)
	}
}

func (cw *CollisionWorld) Config() WorldConfig { return cw.cfg }
func (cw *CollisionWorld) Ground() common.Rect { return cw.ground }

// SetGravity changes the space gravity without rebuilding it.
func (cw *CollisionWorld) SetGravity(g float64) {
	cw.cfg.Gravity = g
	cw.space.SetGravity(cp.Vector{X: 0, Y: g})
}

func (cw *CollisionWorld) SetSubSteps(n int) {
	if n < 1 {
		n = 1
	}
	cw.cfg.SubSteps = n
}

// NewProjectileBody creates a kinematic body with a circular sensor. It moves
// at a constant velocity and never pushes anything.
func (cw *CollisionWorld) NewProjectileBody(origin cp.Vector, size float64, playerOwned bool) ProjectileBody {
	body := cp.NewKinematicBody()
	body.SetPosition(origin)
	shape := cp.NewCircle(body, math.Max(size/2, 0.5), cp.Vector{})
	shape.SetSensor(true)
	shape.SetCollisionType(collisionTypeProjectile)

	cw.space.AddBody(body)
	cw.space.AddShape(shape)
	return &projectileBody{space: cw.space, body: body, shape: shape}
}

type projectileBody struct {
	space *cp.Space
	body  *cp.Body
	shape *cp.Shape
}

func (p *projectileBody) SetVelocity(x, y float64) { p.body.SetVelocity(x, y) }
func (p *projectileBody) SetAngle(angle float64)   { p.body.SetAngle(angle) }
func (p *projectileBody) Position() cp.Vector      { return p.body.Position() }

func (p *projectileBody) Destroy() {
	if p.space == nil {
		return
	}
	p.space.RemoveShape(p.shape)
	p.space.RemoveBody(p.body)
	p.space = nil
}

// DrawDebug renders every shape in the space through d.
func (cw *CollisionWorld) DrawDebug(d cp.Drawer) {
	if d == nil {
		return
	}
	cp.DrawSpace(cw.space, d)
}
