package camera

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float32) bool {
	return math.Abs(float64(a-b)) <= float64(tol)
}

func TestControllerPositionFromSpherical(t *testing.T) {
	tests := []struct {
		name      string
		options   []ControllerOption
		wantX     float32
		wantY     float32
		wantZ     float32
	}{
		{
			name:    "on +Z axis at zero angles",
			options: []ControllerOption{WithRadius(5), WithAzimuth(0), WithElevation(0)},
			wantX:   0, wantY: 0, wantZ: 5,
		},
		{
			name:    "quarter turn to +X",
			options: []ControllerOption{WithRadius(5), WithAzimuth(math.Pi / 2), WithElevation(0)},
			wantX:   5, wantY: 0, wantZ: 0,
		},
		{
			name:    "offset target translates position",
			options: []ControllerOption{WithRadius(2), WithAzimuth(0), WithElevation(0), WithTarget(1, 2, 3)},
			wantX:   1, wantY: 2, wantZ: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(tt.options...)
			x, y, z := c.Position()
			if !almostEqual(x, tt.wantX, 1e-5) || !almostEqual(y, tt.wantY, 1e-5) || !almostEqual(z, tt.wantZ, 1e-5) {
				t.Errorf("Position() = (%g, %g, %g), want (%g, %g, %g)", x, y, z, tt.wantX, tt.wantY, tt.wantZ)
			}
		})
	}
}

func TestControllerClamping(t *testing.T) {
	c := NewController(
		WithRadius(5),
		WithRadiusBounds(1, 10),
		WithElevationBounds(-0.5, 0.5),
	)

	c.SetRadius(100)
	if got := c.Radius(); got != 10 {
		t.Errorf("Radius() after overshoot = %g, want 10", got)
	}
	c.Zoom(1000)
	if got := c.Radius(); got != 1 {
		t.Errorf("Radius() after zoom-in overshoot = %g, want 1", got)
	}

	c.SetElevation(3)
	if got := c.Elevation(); got != 0.5 {
		t.Errorf("Elevation() = %g, want clamp at 0.5", got)
	}
	c.Drag(0, -1e6)
	if got := c.Elevation(); got != -0.5 {
		t.Errorf("Elevation() after drag = %g, want clamp at -0.5", got)
	}
}

func TestDragOrbitsAroundTarget(t *testing.T) {
	c := NewController(WithRadius(4), WithAzimuth(0), WithElevation(0))

	before := c.Azimuth()
	c.Drag(100, 0)
	after := c.Azimuth()
	if before == after {
		t.Fatal("Drag() did not change azimuth")
	}

	// Radius to target is preserved under drag.
	x, y, z := c.Position()
	tx, ty, tz := c.Target()
	dx, dy, dz := x-tx, y-ty, z-tz
	dist := float32(math.Sqrt(float64(dx*dx + dy*dy + dz*dz)))
	if !almostEqual(dist, 4, 1e-4) {
		t.Errorf("distance after drag = %g, want 4", dist)
	}
}

func TestPoseRoundTrip(t *testing.T) {
	c := NewController(WithRadius(3), WithAzimuth(1), WithElevation(0.2), WithTarget(1, 0, -1))
	saved := c.Pose()

	c.Drag(50, 20)
	c.Zoom(2)
	c.SetTarget(0, 0, 0)

	c.SetPose(saved)
	got := c.Pose()
	if got != saved {
		t.Errorf("Pose() after restore = %+v, want %+v", got, saved)
	}
}

func TestMotionPresets(t *testing.T) {
	base := Pose{Radius: 4, Azimuth: 1, Elevation: 0.3}

	t.Run("static holds pose", func(t *testing.T) {
		c := NewController()
		MotionStatic.Apply(c, base, 0.5)
		if got := c.Pose(); got.Azimuth != base.Azimuth || got.Radius != base.Radius {
			t.Errorf("pose = %+v, want %+v", got, base)
		}
	})

	t.Run("orbit completes a revolution", func(t *testing.T) {
		c := NewController()
		MotionOrbit.Apply(c, base, 1)
		if got := c.Azimuth(); !almostEqual(got, base.Azimuth+2*math.Pi, 1e-4) {
			t.Errorf("Azimuth() = %g, want %g", got, base.Azimuth+2*math.Pi)
		}
	})

	t.Run("dolly pushes in", func(t *testing.T) {
		c := NewController()
		MotionDolly.Apply(c, base, 0)
		start := c.Radius()
		MotionDolly.Apply(c, base, 1)
		end := c.Radius()
		if start <= end {
			t.Errorf("dolly radius did not decrease: start %g, end %g", start, end)
		}
		if !almostEqual(end, base.Radius*0.75, 1e-4) {
			t.Errorf("end radius = %g, want %g", end, base.Radius*0.75)
		}
	})

	t.Run("parse names", func(t *testing.T) {
		for name, want := range map[string]Motion{"orbit": MotionOrbit, "dolly": MotionDolly, "static": MotionStatic, "bogus": MotionStatic} {
			if got := ParseMotion(name); got != want {
				t.Errorf("ParseMotion(%q) = %v, want %v", name, got, want)
			}
		}
	})
}
