package pose

import "math"

// Synthetic sequences trace idealized rep cycles with a cosine motion
// profile: each rep starts and ends at rest, so velocity rises and falls
// smoothly the way a real controlled rep does. They stand in for the
// external pose-detection service in tests and the CLI demo.

// frameIntervalMs is the sampling interval of synthetic sequences (~30 FPS).
const frameIntervalMs = 33

const (
	majorLikelihood = 0.95
	minorLikelihood = 0.3
)

// SquatSequence returns a synthetic sequence of full-depth squat reps.
func SquatSequence(reps, framesPerRep int) Sequence {
	return squatSequence(reps, framesPerRep, 1.0)
}

// ShallowSquatSequence returns squat reps that stop well above parallel.
func ShallowSquatSequence(reps, framesPerRep int) Sequence {
	return squatSequence(reps, framesPerRep, 0.45)
}

func squatSequence(reps, framesPerRep int, depthScale float64) Sequence {
	n := reps*framesPerRep + 1
	seq := make(Sequence, 0, n)

	for i := 0; i < n; i++ {
		phase := 2 * math.Pi * float64(i) / float64(framesPerRep)
		d := depthScale * (1 - math.Cos(phase)) / 2

		var f Frame
		f.TimestampMs = int64(i) * frameIntervalMs
		fillMinor(&f)

		// Torso descends and hinges back slightly; knees travel forward.
		drop := 0.20 * d
		hinge := 0.06 * d
		lean := 0.05 * d

		setPair(&f, LeftShoulder, RightShoulder, 0.50-hinge+lean, 0.25+drop, 0.04)
		setPair(&f, LeftElbow, RightElbow, 0.50-hinge+lean, 0.38+drop, 0.10)
		setPair(&f, LeftWrist, RightWrist, 0.50-hinge+lean, 0.50+drop, 0.11)
		setPair(&f, LeftHip, RightHip, 0.50-hinge, 0.50+drop, 0.035)
		setPair(&f, LeftKnee, RightKnee, 0.50+0.05*d, 0.70, 0.045)
		setPair(&f, LeftAnkle, RightAnkle, 0.50, 0.90, 0.045)
		f.Landmarks[Nose] = Landmark{X: 0.50 - hinge + lean, Y: 0.18 + drop, InFrameLikelihood: majorLikelihood}

		seq = append(seq, f)
	}

	return seq
}

// PushupSequence returns a synthetic sequence of full-range push-up reps
// viewed from the side, hips held on the shoulder-ankle line.
func PushupSequence(reps, framesPerRep int) Sequence {
	return pushupSequence(reps, framesPerRep, 1.0, 0)
}

// PartialPushupSequence returns push-up reps that stop well short of the floor.
func PartialPushupSequence(reps, framesPerRep int) Sequence {
	return pushupSequence(reps, framesPerRep, 0.4, 0)
}

// SaggingPushupSequence returns push-up reps with the hips dropped below
// the shoulder-ankle line.
func SaggingPushupSequence(reps, framesPerRep int) Sequence {
	return pushupSequence(reps, framesPerRep, 1.0, 0.06)
}

func pushupSequence(reps, framesPerRep int, depthScale, sag float64) Sequence {
	n := reps*framesPerRep + 1
	seq := make(Sequence, 0, n)

	const (
		shoulderX = 0.30
		hipX      = 0.50
		ankleX    = 0.72
		ankleY    = 0.82
	)

	for i := 0; i < n; i++ {
		phase := 2 * math.Pi * float64(i) / float64(framesPerRep)
		d := depthScale * (1 - math.Cos(phase)) / 2

		var f Frame
		f.TimestampMs = int64(i) * frameIntervalMs
		fillMinor(&f)

		shoulderY := 0.55 + 0.17*d
		// Hip stays on the shoulder-ankle line unless the body sags.
		hipY := shoulderY + (ankleY-shoulderY)*(hipX-shoulderX)/(ankleX-shoulderX) + sag*math.Sin(phase/2)*math.Sin(phase/2)

		setPair(&f, LeftShoulder, RightShoulder, shoulderX, shoulderY, 0.012)
		setPair(&f, LeftElbow, RightElbow, 0.31+0.05*d, 0.67+0.05*d, 0.012)
		setPair(&f, LeftWrist, RightWrist, 0.32, 0.80, 0.012)
		setPair(&f, LeftHip, RightHip, hipX, hipY, 0.012)
		setPair(&f, LeftKnee, RightKnee, 0.61, hipY+(ankleY-hipY)/2, 0.012)
		setPair(&f, LeftAnkle, RightAnkle, ankleX, ankleY, 0.012)
		f.Landmarks[Nose] = Landmark{X: shoulderX - 0.06, Y: shoulderY + 0.02, InFrameLikelihood: majorLikelihood}

		seq = append(seq, f)
	}

	return seq
}

// DeadliftSequence returns a synthetic sequence of deadlift reps viewed from
// the side: each rep starts hinged over the bar, reaches lockout mid-rep,
// and lowers back down.
func DeadliftSequence(reps, framesPerRep int) Sequence {
	return deadliftSequence(reps, framesPerRep, 1.0)
}

// SoftLockoutDeadliftSequence returns deadlift reps that never reach a full
// upright lockout.
func SoftLockoutDeadliftSequence(reps, framesPerRep int) Sequence {
	return deadliftSequence(reps, framesPerRep, 0.55)
}

func deadliftSequence(reps, framesPerRep int, lockoutScale float64) Sequence {
	n := reps*framesPerRep + 1
	seq := make(Sequence, 0, n)

	for i := 0; i < n; i++ {
		phase := 2 * math.Pi * float64(i) / float64(framesPerRep)
		h := lockoutScale * (1 - math.Cos(phase)) / 2

		var f Frame
		f.TimestampMs = int64(i) * frameIntervalMs
		fillMinor(&f)

		shoulderX := 0.38 + 0.12*h
		shoulderY := 0.52 - 0.27*h

		setPair(&f, LeftShoulder, RightShoulder, shoulderX, shoulderY, 0.012)
		setPair(&f, LeftElbow, RightElbow, shoulderX+0.01, shoulderY+0.14, 0.012)
		setPair(&f, LeftWrist, RightWrist, shoulderX+0.02, shoulderY+0.28, 0.012)
		setPair(&f, LeftHip, RightHip, 0.54-0.04*h, 0.62-0.12*h, 0.012)
		setPair(&f, LeftKnee, RightKnee, 0.52-0.02*h, 0.72, 0.012)
		setPair(&f, LeftAnkle, RightAnkle, 0.50, 0.90, 0.012)
		f.Landmarks[Nose] = Landmark{X: shoulderX + 0.04*h, Y: shoulderY - 0.07, InFrameLikelihood: majorLikelihood}

		seq = append(seq, f)
	}

	return seq
}

// setPair places a left/right landmark pair mirrored about x.
func setPair(f *Frame, left, right int, x, y, spread float64) {
	f.Landmarks[left] = Landmark{X: x + spread, Y: y, InFrameLikelihood: majorLikelihood}
	f.Landmarks[right] = Landmark{X: x - spread, Y: y, InFrameLikelihood: majorLikelihood}
}

// fillMinor seeds every landmark with a low-confidence placeholder so the
// indices the generators do not model (face, fingers) behave like barely
// visible points instead of zero values.
func fillMinor(f *Frame) {
	for i := range f.Landmarks {
		f.Landmarks[i] = Landmark{X: 0.5, Y: 0.2, InFrameLikelihood: minorLikelihood}
	}
}
