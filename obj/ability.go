package obj

// AbilityKind names the critical ability that currently owns the player's
// velocity.
type AbilityKind int

const (
	AbilityNone AbilityKind = iota
	AbilityDash
	AbilityShoot
)

func (k AbilityKind) String() string {
	switch k {
	case AbilityDash:
		return "dash"
	case AbilityShoot:
		return "shoot"
	}
	return "none"
}

// CriticalAbility is the single slot a timed, velocity-overriding ability
// occupies. The zero value is AbilityNone with no time remaining; an active
// value can only be produced by StartDash or StartShoot and is cleared as a
// whole when its countdown runs out.
type CriticalAbility struct {
	kind      AbilityKind
	remaining float64
}

func StartDash(duration float64) CriticalAbility {
	return startCritical(AbilityDash, duration)
}

func StartShoot(duration float64) CriticalAbility {
	return startCritical(AbilityShoot, duration)
}

func startCritical(kind AbilityKind, duration float64) CriticalAbility {
	if duration <= 0 {
		return CriticalAbility{}
	}
	return CriticalAbility{kind: kind, remaining: duration}
}

func (c CriticalAbility) Kind() AbilityKind  { return c.kind }
func (c CriticalAbility) Remaining() float64 { return c.remaining }
func (c CriticalAbility) Active() bool       { return c.kind != AbilityNone }

// Tick counts the ability down and reports whether it expired on this call.
// An expired ability resets to the zero value.
func (c *CriticalAbility) Tick(dt float64) bool {
	if c.kind == AbilityNone || dt <= 0 {
		return false
	}
	c.remaining -= dt
	if c.remaining > 0 {
		return false
	}
	*c = CriticalAbility{}
	return true
}
