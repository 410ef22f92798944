package pose

import (
	"math"
	"testing"
)

func TestSquatSequenceShape(t *testing.T) {
	seq := SquatSequence(3, 30)

	if len(seq) != 91 {
		t.Fatalf("expected 91 frames for 3 reps of 30, got %d", len(seq))
	}

	// Timestamps advance at the sampling interval.
	if seq[1].TimestampMs-seq[0].TimestampMs != frameIntervalMs {
		t.Errorf("expected %dms frame interval, got %dms", frameIntervalMs, seq[1].TimestampMs-seq[0].TimestampMs)
	}

	// The hip midpoint descends and returns over a rep.
	top := seq[0].HipMidpoint().Y
	bottom := seq[15].HipMidpoint().Y
	back := seq[30].HipMidpoint().Y

	if bottom <= top {
		t.Errorf("expected hip to descend by mid-rep: top %f, bottom %f", top, bottom)
	}
	if math.Abs(back-top) > 1e-9 {
		t.Errorf("expected hip back at the top after a full rep: start %f, end %f", top, back)
	}
}

func TestShallowSquatStaysHigher(t *testing.T) {
	full := SquatSequence(1, 30)
	shallow := ShallowSquatSequence(1, 30)

	if shallow[15].HipMidpoint().Y >= full[15].HipMidpoint().Y {
		t.Error("expected the shallow squat to bottom out above the full squat")
	}
}

func TestSequencesMarkMajorLandmarksConfident(t *testing.T) {
	sequences := map[string]Sequence{
		"squat":    SquatSequence(1, 30),
		"pushup":   PushupSequence(1, 30),
		"deadlift": DeadliftSequence(1, 30),
	}

	major := []int{
		LeftShoulder, RightShoulder,
		LeftHip, RightHip,
		LeftKnee, RightKnee,
		LeftAnkle, RightAnkle,
	}

	for name, seq := range sequences {
		for _, idx := range major {
			if got := seq[0].Landmarks[idx].InFrameLikelihood; got != majorLikelihood {
				t.Errorf("%s: expected landmark %d likelihood %f, got %f", name, idx, majorLikelihood, got)
			}
		}
	}
}

func TestSaggingPushupDropsHips(t *testing.T) {
	straight := PushupSequence(1, 30)
	sagging := SaggingPushupSequence(1, 30)

	// Mid-rep the sagging hips sit lower in the frame.
	if sagging[15].HipMidpoint().Y <= straight[15].HipMidpoint().Y {
		t.Error("expected sagging pushup hips below the straight-body line")
	}
}

func TestDeadliftShoulderRisesToLockout(t *testing.T) {
	seq := DeadliftSequence(1, 30)

	start := seq[0].ShoulderMidpoint().Y
	lockout := seq[15].ShoulderMidpoint().Y

	if lockout >= start {
		t.Errorf("expected shoulders to rise into lockout: start %f, lockout %f", start, lockout)
	}
}
