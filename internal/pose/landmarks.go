// Package pose defines the body landmark model consumed by the movement analysis pipeline.
package pose

// Body landmark indices following the MediaPipe Pose convention.
// See: https://developers.google.com/mediapipe/solutions/vision/pose_landmarker
const (
	Nose          = 0
	LeftShoulder  = 11
	RightShoulder = 12
	LeftElbow     = 13
	RightElbow    = 14
	LeftWrist     = 15
	RightWrist    = 16
	LeftHip       = 23
	RightHip      = 24
	LeftKnee      = 25
	RightKnee     = 26
	LeftAnkle     = 27
	RightAnkle    = 28
	NumLandmarks  = 33
)

// Point2D represents a 2D point in image coordinates.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Landmark is a single tracked body point for one frame. Coordinates are
// normalized image coordinates (y grows downward). InFrameLikelihood is the
// detector's confidence that the point is visible, in the 0-1 range.
type Landmark struct {
	X                 float64 `json:"x"`
	Y                 float64 `json:"y"`
	InFrameLikelihood float64 `json:"in_frame_likelihood"`
}

// Point returns the landmark position without its confidence.
func (l Landmark) Point() Point2D {
	return Point2D{X: l.X, Y: l.Y}
}

// Frame is the full set of landmarks for one sampled instant.
type Frame struct {
	Landmarks   [NumLandmarks]Landmark `json:"landmarks"`
	TimestampMs int64                  `json:"timestamp_ms"`
}

// Sequence is a time-ordered series of frames covering one exercise attempt.
// All frames in a sequence use the same landmark indexing scheme.
type Sequence []Frame

// Midpoint returns a synthetic landmark halfway between a and b.
// Its likelihood is the smaller of the two constituents, so a midpoint is
// only as trustworthy as its least visible endpoint.
func Midpoint(a, b Landmark) Landmark {
	likelihood := a.InFrameLikelihood
	if b.InFrameLikelihood < likelihood {
		likelihood = b.InFrameLikelihood
	}
	return Landmark{
		X:                 (a.X + b.X) / 2,
		Y:                 (a.Y + b.Y) / 2,
		InFrameLikelihood: likelihood,
	}
}

// ShoulderMidpoint returns the midpoint of the two shoulders, a stable torso
// reference that tolerates single-point occlusion better than either shoulder.
func (f Frame) ShoulderMidpoint() Landmark {
	return Midpoint(f.Landmarks[LeftShoulder], f.Landmarks[RightShoulder])
}

// HipMidpoint returns the midpoint of the two hips.
func (f Frame) HipMidpoint() Landmark {
	return Midpoint(f.Landmarks[LeftHip], f.Landmarks[RightHip])
}

// ValidFraction is the share of required landmarks that must be confidently
// visible before a frame's derived measurements should be trusted.
const ValidFraction = 0.8

// Validate reports whether a frame can be trusted for analysis: at least 80%
// of the required landmark indices must be present with confidence at or
// above minConfidence. Computing angles from a frame that fails validation
// is still possible; trusting them is not.
func Validate(f Frame, required []int, minConfidence float64) bool {
	if len(required) == 0 {
		return false
	}

	visible := 0
	for _, idx := range required {
		if idx < 0 || idx >= NumLandmarks {
			continue
		}
		if f.Landmarks[idx].InFrameLikelihood >= minConfidence {
			visible++
		}
	}

	return float64(visible)/float64(len(required)) >= ValidFraction
}
