// Package analysis implements the movement analysis pipeline: joint-angle
// extraction from pose landmarks, displacement signal processing, movement
// phase segmentation, quality scoring, and exercise-specific form analysis.
package analysis

import (
	"math"

	"github.com/ayusman/formsight/internal/pose"
)

const (
	radToDeg = 180 / math.Pi
)

// AngleAt returns the angle in degrees, in the [0, 180] range, formed at
// vertex by the segments to p1 and p3. The second return value is false when
// the angle could not be measured: any of the three landmarks below
// minConfidence, or a degenerate (zero-length) segment. The degrees value is
// then 0, a neutral marker rather than a measurement.
func AngleAt(p1, vertex, p3 pose.Landmark, minConfidence float64) (float64, bool) {
	if p1.InFrameLikelihood < minConfidence ||
		vertex.InFrameLikelihood < minConfidence ||
		p3.InFrameLikelihood < minConfidence {
		return 0, false
	}

	v1x := p1.X - vertex.X
	v1y := p1.Y - vertex.Y
	v2x := p3.X - vertex.X
	v2y := p3.Y - vertex.Y

	mag1 := math.Hypot(v1x, v1y)
	mag2 := math.Hypot(v2x, v2y)
	if mag1 == 0 || mag2 == 0 {
		return 0, false
	}

	cos := (v1x*v2x + v1y*v2y) / (mag1 * mag2)
	// Clamp against floating-point drift before acos.
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}

	return math.Acos(cos) * radToDeg, true
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b pose.Point2D) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// SlopeAngle returns the orientation of the segment from a to b relative to
// horizontal, in degrees in the [-180, 180] range.
func SlopeAngle(a, b pose.Point2D) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X) * radToDeg
}

// CenterOfMass approximates the body's center of mass as the mean position
// of the shoulder and hip landmarks whose confidence meets minConfidence.
// Returns (0, 0) when none qualify.
func CenterOfMass(f pose.Frame, minConfidence float64) pose.Point2D {
	indices := []int{pose.LeftShoulder, pose.RightShoulder, pose.LeftHip, pose.RightHip}

	var sumX, sumY float64
	count := 0
	for _, idx := range indices {
		lm := f.Landmarks[idx]
		if lm.InFrameLikelihood < minConfidence {
			continue
		}
		sumX += lm.X
		sumY += lm.Y
		count++
	}

	if count == 0 {
		return pose.Point2D{}
	}

	return pose.Point2D{X: sumX / float64(count), Y: sumY / float64(count)}
}
