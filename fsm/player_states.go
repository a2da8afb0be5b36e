package fsm

// groundState is shared by Idle and Move. The two differ only in whether the
// held axis counts as moving.
type groundState struct {
	m      *Machine
	moving bool
}

type idleState struct{ groundState }

type moveState struct{ groundState }

type jumpState struct {
	m *Machine
	// buffered launches from a remembered press instead of a new one.
	buffered bool
}

func (s *groundState) Enter(ctx *Context) {
	ctx.provision(s.kind())
}

func (s *groundState) Exit(ctx *Context) {}

func (s *groundState) Update(ctx *Context, dt float64) {
	ctx.stepFrame(dt)
	if s.m == nil {
		return
	}
	if ctx.Jump.Buffered() && ctx.grounded() {
		s.m.arena.jump.buffered = true
		if s.m.Transition(KindJump) {
			return
		}
		s.m.arena.jump.buffered = false
	}
	if held := ctx.Movement.Pressing(); held != s.moving {
		if held {
			s.m.Transition(KindMove)
		} else {
			s.m.Transition(KindIdle)
		}
	}
}

func (s *groundState) FixedUpdate(ctx *Context, dt float64) {
	ctx.stepFixed(dt)
}

func (s *groundState) LateUpdate(ctx *Context, dt float64) {}

func (s *groundState) OnTrigger(ctx *Context, t Trigger) {
	if t == TriggerJumpReleased && ctx != nil {
		ctx.Jump.CancelJumping()
	}
}

func (s *groundState) kind() Kind {
	if s.moving {
		return KindMove
	}
	return KindIdle
}

func (s *idleState) Kind() Kind   { return KindIdle }
func (s *idleState) Name() string { return "idle" }

func (s *moveState) Kind() Kind   { return KindMove }
func (s *moveState) Name() string { return "move" }

func (s *jumpState) Kind() Kind   { return KindJump }
func (s *jumpState) Name() string { return "jump" }

func (s *jumpState) Enter(ctx *Context) {
	ctx.provision(KindJump)
	buffered := s.buffered
	s.buffered = false
	if ctx == nil {
		return
	}
	if buffered {
		ctx.Jump.ConsumeBufferedJump()
		return
	}
	ctx.Jump.StartJumping()
}

func (s *jumpState) Exit(ctx *Context) {}

func (s *jumpState) Update(ctx *Context, dt float64) {
	ctx.stepFrame(dt)
	s.checkLanding(ctx)
}

func (s *jumpState) FixedUpdate(ctx *Context, dt float64) {
	ctx.stepFixed(dt)
	s.checkLanding(ctx)
}

func (s *jumpState) LateUpdate(ctx *Context, dt float64) {}

func (s *jumpState) OnTrigger(ctx *Context, t Trigger) {
	if t == TriggerJumpReleased && ctx != nil {
		ctx.Jump.CancelJumping()
	}
}

// checkLanding leaves Jump on any grounded tick. The arc itself is owned by
// the jump component and keeps its shaping after the state changes.
func (s *jumpState) checkLanding(ctx *Context) {
	if s.m == nil || !ctx.grounded() {
		return
	}
	s.m.fire(TriggerLanded)
}
