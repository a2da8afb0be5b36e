package component

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/charcore/common"
)

func TestDeriveArc(t *testing.T) {
	cases := []struct {
		name        string
		height      float64
		apex        float64
		wantGravity float64
		wantSpeed   float64
	}{
		{"stock", 7.3, 0.4, -91.25, 36.5},
		{"short_hop", 2, 0.5, -16, 8},
		{"zero_apex", 3, 0, 0, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g, s := DeriveArc(c.height, c.apex)
			if !common.Approx(g, c.wantGravity, 1e-9) || !common.Approx(s, c.wantSpeed, 1e-9) {
				t.Fatalf("expected (%v, %v), got (%v, %v)", c.wantGravity, c.wantSpeed, g, s)
			}
		})
	}
}

func TestJumpGravityMultiplier(t *testing.T) {
	cfg := DefaultJumpConfig()
	cfg.UpwardMult = 1.5

	cases := []struct {
		name     string
		vy       float64
		jumping  bool
		pressing bool
		variable bool
		want     float64
	}{
		{"rising_held", 5, true, true, true, 1.5},
		{"rising_released", 5, true, false, true, cfg.JumpCutOff},
		{"rising_fixed_height", 5, true, true, false, cfg.JumpCutOff},
		{"rising_not_jumping", 5, false, true, true, cfg.JumpCutOff},
		{"falling", -3, true, true, true, cfg.DownwardMult},
		{"neutral", 0.005, true, true, true, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := cfg
			cfg.VariableJump = c.variable
			j := NewJump(cfg, &fakeBody{mass: 1}, nil, -9.81)
			j.jumping = c.jumping
			j.pressingJump = c.pressing
			got := j.DesiredGravity(c.vy)
			if j.GravityMultiplier() != c.want {
				t.Fatalf("expected multiplier %v, got %v", c.want, j.GravityMultiplier())
			}
			if !common.Approx(got, j.Gravity()*c.want, 1e-9) {
				t.Fatalf("expected gravity %v, got %v", j.Gravity()*c.want, got)
			}
		})
	}
}

func TestJumpShapingForceCompensatesAmbient(t *testing.T) {
	body := &fakeBody{vel: cp.Vector{Y: -4}, mass: 2}
	j := NewJump(DefaultJumpConfig(), body, &fakeGround{}, -9.81)
	j.FixedUpdate(0.02, VerticalJump)
	want := (j.Gravity()*DefaultJumpConfig().DownwardMult + 9.81) * 2
	if !common.Approx(body.accel.Y, want, 1e-9) {
		t.Fatalf("expected accel %v, got %v", want, body.accel.Y)
	}

	body.accel = cp.Vector{}
	j.FixedUpdate(0.02, VerticalMovement)
	if body.accel.Y != 0 {
		t.Fatalf("no shaping expected while movement owns vy, got %v", body.accel.Y)
	}
}

func TestJumpFallClamp(t *testing.T) {
	cases := []struct {
		name  string
		vy    float64
		owner VerticalOwner
		want  float64
	}{
		{"terminal_velocity", -35, VerticalJump, -20},
		{"clamp_without_ownership", -35, VerticalMovement, -20},
		{"rise_ceiling", 150, VerticalJump, 100},
		{"inside_range", -5, VerticalJump, -5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			body := &fakeBody{vel: cp.Vector{X: 3, Y: c.vy}, mass: 1}
			j := NewJump(DefaultJumpConfig(), body, &fakeGround{}, -9.81)
			j.FixedUpdate(0.02, c.owner)
			if body.vel.Y != c.want || body.vel.X != 3 {
				t.Fatalf("expected (3, %v), got %v", c.want, body.vel)
			}
		})
	}
}

func TestClampFallAfterIntegration(t *testing.T) {
	body := &fakeBody{vel: cp.Vector{X: 2, Y: -19.9}, mass: 1}
	j := NewJump(DefaultJumpConfig(), body, &fakeGround{}, -9.81)
	j.FixedUpdate(0.02, VerticalJump)
	// the integrator step overshoots the limit after the tick
	body.vel.Y = -20.2
	j.ClampFall()
	if body.vel.Y != -20 || body.vel.X != 2 {
		t.Fatalf("expected (2, -20), got %v", body.vel)
	}
}

func TestStartJumpingFromGround(t *testing.T) {
	body := &fakeBody{vel: cp.Vector{X: 4}, mass: 1}
	fired := 0
	j := NewJump(DefaultJumpConfig(), body, &fakeGround{on: true}, -9.81)
	j.SetEffect(func() { fired++ })

	if !j.StartJumping() {
		t.Fatalf("grounded jump should launch")
	}
	if !common.Approx(body.vel.Y, 36.5, 1e-9) || body.vel.X != 4 {
		t.Fatalf("expected launch velocity (4, 36.5), got %v", body.vel)
	}
	if !j.Jumping() || j.CanJumpAgain() || fired != 1 {
		t.Fatalf("unexpected state jumping=%v credit=%v fired=%d", j.Jumping(), j.CanJumpAgain(), fired)
	}
}

func TestStartJumpingNoOpInAir(t *testing.T) {
	cfg := DefaultJumpConfig()
	cfg.JumpBuffer = 0
	body := &fakeBody{vel: cp.Vector{Y: -2}, mass: 1}
	fired := 0
	j := NewJump(cfg, body, &fakeGround{}, -9.81)
	j.SetEffect(func() { fired++ })

	if j.StartJumping() {
		t.Fatalf("airborne jump without credit should not launch")
	}
	if body.vel.Y != -2 || body.sets != 0 || fired != 0 {
		t.Fatalf("expected no velocity change or effect, got vy=%v sets=%d fired=%d", body.vel.Y, body.sets, fired)
	}
	if j.Buffered() {
		t.Fatalf("zero buffer should forget the press")
	}
}

func TestAirJumpCredit(t *testing.T) {
	cfg := DefaultJumpConfig()
	cfg.MaxAirJumps = 1
	body := &fakeBody{mass: 1}
	ground := &fakeGround{on: true}
	j := NewJump(cfg, body, ground, -9.81)

	if !j.StartJumping() || !j.CanJumpAgain() {
		t.Fatalf("ground jump should grant one air credit")
	}
	ground.on = false
	body.vel.Y = 3
	if !j.StartJumping() {
		t.Fatalf("air jump should use the credit")
	}
	if j.CanJumpAgain() {
		t.Fatalf("credit should be spent")
	}
	body.vel.Y = 1
	if j.StartJumping() {
		t.Fatalf("third jump should be refused")
	}

	ground.on = true
	body.vel.Y = 0
	j.FixedUpdate(0.02, VerticalMovement)
	if j.Jumping() || j.CanJumpAgain() {
		t.Fatalf("landing should clear jumping and credit")
	}
}

func TestCoyoteTime(t *testing.T) {
	body := &fakeBody{mass: 1}
	ground := &fakeGround{on: true}
	j := NewJump(DefaultJumpConfig(), body, ground, -9.81)
	j.Update(0.016)

	ground.on = false
	j.Update(0.1)
	if !j.CanJumpAgain() {
		t.Fatalf("expected coyote credit 0.1s after leaving ground")
	}
	j.Update(0.1)
	if j.CanJumpAgain() {
		t.Fatalf("coyote credit should expire after 0.2s")
	}
}

func TestCoyoteJump(t *testing.T) {
	body := &fakeBody{vel: cp.Vector{Y: -1}, mass: 1}
	ground := &fakeGround{on: true}
	j := NewJump(DefaultJumpConfig(), body, ground, -9.81)
	j.Update(0.016)
	ground.on = false
	j.Update(0.05)

	if !j.StartJumping() {
		t.Fatalf("jump inside coyote window should launch")
	}
	if j.CanJumpAgain() {
		t.Fatalf("coyote jump consumes the credit")
	}
}

func TestJumpBuffer(t *testing.T) {
	body := &fakeBody{vel: cp.Vector{Y: -5}, mass: 1}
	ground := &fakeGround{}
	j := NewJump(DefaultJumpConfig(), body, ground, -9.81)

	j.StartJumping()
	if !j.Buffered() {
		t.Fatalf("failed press should be buffered")
	}
	j.Update(0.1)
	ground.on = true
	body.vel.Y = 0
	if !j.ConsumeBufferedJump() {
		t.Fatalf("buffered jump should launch on touchdown")
	}
	if j.Buffered() {
		t.Fatalf("buffer should be cleared after launch")
	}

	j.Land()
	ground.on = false
	j.StartJumping()
	j.Update(0.2)
	ground.on = true
	if j.ConsumeBufferedJump() {
		t.Fatalf("expired buffer should not launch")
	}
}

func TestSetConfigRederives(t *testing.T) {
	j := NewJump(DefaultJumpConfig(), &fakeBody{mass: 1}, nil, -9.81)
	cfg := DefaultJumpConfig()
	cfg.JumpHeight = 2
	cfg.TimeToApex = 0.5
	j.SetConfig(cfg)
	if j.Gravity() != -16 || j.JumpSpeed() != 8 {
		t.Fatalf("expected (-16, 8), got (%v, %v)", j.Gravity(), j.JumpSpeed())
	}
}

func TestOwnerFor(t *testing.T) {
	cases := []struct {
		name     string
		grounded bool
		jumping  bool
		vy       float64
		want     VerticalOwner
	}{
		{"idle_on_ground", true, false, 0, VerticalMovement},
		{"falling_off_ledge", false, false, -3, VerticalMovement},
		{"launch_frame", true, true, 36.5, VerticalJump},
		{"airborne_jump", false, true, -2, VerticalJump},
		{"landed_not_cleared", true, true, 0, VerticalMovement},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := OwnerFor(c.grounded, c.jumping, c.vy); got != c.want {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}
