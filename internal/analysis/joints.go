package analysis

import (
	"math"

	"github.com/ayusman/formsight/internal/pose"
)

// Joint names a measured joint angle.
type Joint string

const (
	JointLeftKnee      Joint = "left_knee"
	JointRightKnee     Joint = "right_knee"
	JointLeftHip       Joint = "left_hip"
	JointRightHip      Joint = "right_hip"
	JointLeftShoulder  Joint = "left_shoulder"
	JointRightShoulder Joint = "right_shoulder"
	JointLeftElbow     Joint = "left_elbow"
	JointRightElbow    Joint = "right_elbow"
	JointSpine         Joint = "spine"
)

// Angle is a measured joint angle in degrees. Valid is false when the angle
// could not be computed from the frame (occluded or low-confidence
// landmarks); Degrees is then 0. Keeping the flag explicit lets callers tell
// "measured zero" apart from "could not measure".
type Angle struct {
	Degrees float64 `json:"degrees"`
	Valid   bool    `json:"valid"`
}

// JointAngles is the full-body joint angle snapshot for one frame. Spine is
// the absolute deviation of the hip-to-shoulder line from vertical: 0 means
// perfectly upright regardless of which way the body faces.
type JointAngles struct {
	LeftKnee      Angle `json:"left_knee"`
	RightKnee     Angle `json:"right_knee"`
	LeftHip       Angle `json:"left_hip"`
	RightHip      Angle `json:"right_hip"`
	LeftShoulder  Angle `json:"left_shoulder"`
	RightShoulder Angle `json:"right_shoulder"`
	LeftElbow     Angle `json:"left_elbow"`
	RightElbow    Angle `json:"right_elbow"`
	Spine         Angle `json:"spine"`
}

// Map returns the snapshot keyed by joint name, for aggregation across frames.
func (a JointAngles) Map() map[Joint]Angle {
	return map[Joint]Angle{
		JointLeftKnee:      a.LeftKnee,
		JointRightKnee:     a.RightKnee,
		JointLeftHip:       a.LeftHip,
		JointRightHip:      a.RightHip,
		JointLeftShoulder:  a.LeftShoulder,
		JointRightShoulder: a.RightShoulder,
		JointLeftElbow:     a.LeftElbow,
		JointRightElbow:    a.RightElbow,
		JointSpine:         a.Spine,
	}
}

// ExtractJointAngles computes every named joint angle for one frame using
// fixed anatomical landmark triples. Hip and shoulder angles measure against
// the shoulder and hip midpoints rather than a single contralateral
// landmark, which tolerates single-point occlusion. Angles that cannot be
// measured come back invalid; extraction itself never fails, so one bad
// landmark degrades a single measurement instead of the whole frame.
func ExtractJointAngles(f pose.Frame, minConfidence float64) JointAngles {
	lm := f.Landmarks
	shoulderMid := f.ShoulderMidpoint()
	hipMid := f.HipMidpoint()

	return JointAngles{
		LeftKnee:      measured(lm[pose.LeftHip], lm[pose.LeftKnee], lm[pose.LeftAnkle], minConfidence),
		RightKnee:     measured(lm[pose.RightHip], lm[pose.RightKnee], lm[pose.RightAnkle], minConfidence),
		LeftHip:       measured(shoulderMid, lm[pose.LeftHip], lm[pose.LeftKnee], minConfidence),
		RightHip:      measured(shoulderMid, lm[pose.RightHip], lm[pose.RightKnee], minConfidence),
		LeftShoulder:  measured(lm[pose.LeftElbow], lm[pose.LeftShoulder], hipMid, minConfidence),
		RightShoulder: measured(lm[pose.RightElbow], lm[pose.RightShoulder], hipMid, minConfidence),
		LeftElbow:     measured(lm[pose.LeftShoulder], lm[pose.LeftElbow], lm[pose.LeftWrist], minConfidence),
		RightElbow:    measured(lm[pose.RightShoulder], lm[pose.RightElbow], lm[pose.RightWrist], minConfidence),
		Spine:         spinalAlignment(hipMid, shoulderMid, minConfidence),
	}
}

func measured(p1, vertex, p3 pose.Landmark, minConfidence float64) Angle {
	deg, ok := AngleAt(p1, vertex, p3, minConfidence)
	return Angle{Degrees: deg, Valid: ok}
}

// spinalAlignment measures how far the hip-midpoint to shoulder-midpoint
// segment deviates from vertical.
func spinalAlignment(hipMid, shoulderMid pose.Landmark, minConfidence float64) Angle {
	if hipMid.InFrameLikelihood < minConfidence || shoulderMid.InFrameLikelihood < minConfidence {
		return Angle{}
	}
	if hipMid.X == shoulderMid.X && hipMid.Y == shoulderMid.Y {
		return Angle{}
	}

	slope := SlopeAngle(hipMid.Point(), shoulderMid.Point())
	return Angle{Degrees: math.Abs(math.Abs(slope) - 90), Valid: true}
}
