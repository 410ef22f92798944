package analysis

import (
	"math"
	"testing"

	"github.com/ayusman/formsight/internal/pose"
)

func lm(x, y, likelihood float64) pose.Landmark {
	return pose.Landmark{X: x, Y: y, InFrameLikelihood: likelihood}
}

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestAngleAt(t *testing.T) {
	tests := []struct {
		name      string
		p1, v, p3 pose.Landmark
		want      float64
		wantValid bool
	}{
		{
			name: "straight line is 180",
			p1:   lm(0, 0, 1), v: lm(0, -1, 1), p3: lm(0, -2, 1),
			want: 180, wantValid: true,
		},
		{
			name: "right angle is 90",
			p1:   lm(1, 0, 1), v: lm(0, 0, 1), p3: lm(0, 1, 1),
			want: 90, wantValid: true,
		},
		{
			name: "45 degrees",
			p1:   lm(1, 0, 1), v: lm(0, 0, 1), p3: lm(1, 1, 1),
			want: 45, wantValid: true,
		},
		{
			name: "low confidence endpoint",
			p1:   lm(1, 0, 0.1), v: lm(0, 0, 1), p3: lm(0, 1, 1),
			want: 0, wantValid: false,
		},
		{
			name: "low confidence vertex",
			p1:   lm(1, 0, 1), v: lm(0, 0, 0.2), p3: lm(0, 1, 1),
			want: 0, wantValid: false,
		},
		{
			name: "degenerate segment",
			p1:   lm(0, 0, 1), v: lm(0, 0, 1), p3: lm(0, 1, 1),
			want: 0, wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, valid := AngleAt(tt.p1, tt.v, tt.p3, 0.5)
			if valid != tt.wantValid {
				t.Fatalf("AngleAt() valid = %v, want %v", valid, tt.wantValid)
			}
			if !approxEqual(got, tt.want, 1e-9) {
				t.Errorf("AngleAt() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestAngleAt_Symmetry(t *testing.T) {
	p1 := lm(0.3, 0.1, 1)
	v := lm(0.5, 0.5, 1)
	p3 := lm(0.8, 0.4, 1)

	forward, _ := AngleAt(p1, v, p3, 0.5)
	backward, _ := AngleAt(p3, v, p1, 0.5)

	if !approxEqual(forward, backward, 1e-12) {
		t.Errorf("expected symmetric angles, got %f and %f", forward, backward)
	}
}

func TestAngleAt_RangeIsBounded(t *testing.T) {
	// Collinear points in the same direction give 0; opposite give 180.
	got, valid := AngleAt(lm(1, 1, 1), lm(0, 0, 1), lm(2, 2, 1), 0.5)
	if !valid || !approxEqual(got, 0, 1e-5) {
		t.Errorf("expected 0 for same-direction collinear points, got %f (valid=%v)", got, valid)
	}
}

func TestDistance(t *testing.T) {
	a := pose.Point2D{X: 0, Y: 0}
	b := pose.Point2D{X: 3, Y: 4}

	if got := Distance(a, b); got != 5 {
		t.Errorf("Distance() = %f, want 5", got)
	}
	if Distance(a, b) != Distance(b, a) {
		t.Error("expected distance to be symmetric")
	}
	if Distance(a, a) != 0 {
		t.Error("expected zero distance to self")
	}
}

func TestSlopeAngle(t *testing.T) {
	tests := []struct {
		name string
		a, b pose.Point2D
		want float64
	}{
		{"horizontal", pose.Point2D{X: 0, Y: 0}, pose.Point2D{X: 1, Y: 0}, 0},
		{"downward in image coords", pose.Point2D{X: 0, Y: 0}, pose.Point2D{X: 0, Y: 1}, 90},
		{"upward in image coords", pose.Point2D{X: 0, Y: 0}, pose.Point2D{X: 0, Y: -1}, -90},
		{"diagonal", pose.Point2D{X: 0, Y: 0}, pose.Point2D{X: 1, Y: 1}, 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SlopeAngle(tt.a, tt.b); !approxEqual(got, tt.want, 1e-9) {
				t.Errorf("SlopeAngle() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestCenterOfMass(t *testing.T) {
	var f pose.Frame
	f.Landmarks[pose.LeftShoulder] = lm(0.4, 0.3, 0.9)
	f.Landmarks[pose.RightShoulder] = lm(0.6, 0.3, 0.9)
	f.Landmarks[pose.LeftHip] = lm(0.4, 0.6, 0.9)
	f.Landmarks[pose.RightHip] = lm(0.6, 0.6, 0.9)

	com := CenterOfMass(f, 0.5)
	if !approxEqual(com.X, 0.5, 1e-9) || !approxEqual(com.Y, 0.45, 1e-9) {
		t.Errorf("expected center of mass (0.5, 0.45), got (%f, %f)", com.X, com.Y)
	}
}

func TestCenterOfMass_IgnoresLowConfidence(t *testing.T) {
	var f pose.Frame
	f.Landmarks[pose.LeftShoulder] = lm(0.4, 0.3, 0.9)
	// The rest sit far away but below the gate.
	f.Landmarks[pose.RightShoulder] = lm(10, 10, 0.1)
	f.Landmarks[pose.LeftHip] = lm(10, 10, 0.1)
	f.Landmarks[pose.RightHip] = lm(10, 10, 0.1)

	com := CenterOfMass(f, 0.5)
	if !approxEqual(com.X, 0.4, 1e-9) || !approxEqual(com.Y, 0.3, 1e-9) {
		t.Errorf("expected only the confident landmark to count, got (%f, %f)", com.X, com.Y)
	}
}

func TestCenterOfMass_NoConfidentLandmarks(t *testing.T) {
	var f pose.Frame
	com := CenterOfMass(f, 0.5)
	if com.X != 0 || com.Y != 0 {
		t.Errorf("expected (0, 0) with no confident landmarks, got (%f, %f)", com.X, com.Y)
	}
}
