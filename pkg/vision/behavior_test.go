package vision

import (
	"testing"
)

// upperStripes concentrates strong alternating texture in the upper half so
// head-turn/eye-movement regions light up against a previous flat frame.
func upperStripes(t float64) Frame {
	return makeFrame(t, func(x, y int) uint8 {
		if y < testH/2 && x%2 == 0 {
			return 255
		}
		return 0
	})
}

func hasBehavior(events []BehaviorEvent, typ BehaviorType) bool {
	for _, ev := range events {
		if ev.Type == typ {
			return true
		}
	}
	return false
}

func TestBehaviorTracker_FirstFrameEmitsNothing(t *testing.T) {
	frames := []Frame{
		flatFrame(0, 0),
		splitFrame(0),
		upperStripes(0),
	}
	for _, f := range frames {
		tr := NewBehaviorTracker(DefaultBehaviorConfig())
		tr.Observe(f)
		if got := len(tr.Events()); got != 0 {
			t.Errorf("first frame emitted %d events, want 0", got)
		}
	}
}

func TestBehaviorTracker_HeadTurning(t *testing.T) {
	tr := NewBehaviorTracker(DefaultBehaviorConfig())
	tr.Observe(flatFrame(0.0, 0))
	tr.Observe(upperStripes(0.5))

	events := tr.Events()
	if !hasBehavior(events, BehaviorHeadTurning) {
		t.Errorf("no head_turning among %v", events)
	}
	if !hasBehavior(events, BehaviorEyeMovement) {
		t.Errorf("no eye_movement among %v", events)
	}
	// Movement is confined to the upper half; the body region stays quiet.
	if hasBehavior(events, BehaviorBodyMovement) {
		t.Errorf("unexpected body_movement among %v", events)
	}
}

func TestBehaviorTracker_BodyMovement(t *testing.T) {
	tr := NewBehaviorTracker(DefaultBehaviorConfig())
	tr.Observe(flatFrame(0.0, 0))
	// Strong texture in the lower two-thirds only.
	tr.Observe(makeFrame(0.5, func(x, y int) uint8 {
		if y >= testH/3 && x%2 == 0 {
			return 255
		}
		return 0
	}))
	if !hasBehavior(tr.Events(), BehaviorBodyMovement) {
		t.Errorf("no body_movement among %v", tr.Events())
	}
}

func TestBehaviorTracker_Summaries(t *testing.T) {
	tr := NewBehaviorTracker(DefaultBehaviorConfig())
	tr.Observe(flatFrame(0.0, 0))
	tr.Observe(upperStripes(0.5))
	tr.Observe(flatFrame(1.0, 0))
	tr.Observe(upperStripes(1.5))

	sums := tr.Summaries()
	var head *BehaviorSummary
	for i := range sums {
		if sums[i].Type == BehaviorHeadTurning {
			head = &sums[i]
		}
	}
	if head == nil {
		t.Fatalf("no head_turning summary in %v", sums)
	}
	if head.Count != 2 {
		t.Errorf("head_turning count = %d, want 2", head.Count)
	}
	if head.FirstDetected != 0.5 {
		t.Errorf("first_detected = %.2f, want 0.5", head.FirstDetected)
	}
}

func TestBehaviorTracker_ReturnToActivity(t *testing.T) {
	tr := NewBehaviorTracker(DefaultBehaviorConfig())
	tr.Observe(flatFrame(0.0, 0))
	// Head turn + eye movement response.
	tr.Observe(upperStripes(0.5))
	// Sustained eye contact.
	tr.Observe(flatFrame(1.0, 0))
	// The flat->flat transition has no motion: signal drops, child settles.
	tr.Observe(flatFrame(1.5, 0))

	// The drop happens on the first flat frame after the stripes: motion is
	// high there (stripes->flat), so the return fires once motion settles.
	ex := tr.Expanded()
	if !hasBehavior(tr.Events(), BehaviorReturnToActivity) {
		t.Fatalf("no return_to_activity among %v", tr.Events())
	}
	if ex.ReturnToActivityLatency <= 0 {
		t.Errorf("latency = %.2f, want > 0", ex.ReturnToActivityLatency)
	}
}

func TestBehaviorTracker_ExpandedExpression(t *testing.T) {
	tr := NewBehaviorTracker(DefaultBehaviorConfig())
	// Dark frames code negative (mean < 80).
	tr.Observe(flatFrame(0.0, 10))
	tr.Observe(flatFrame(0.5, 12))
	tr.Observe(flatFrame(1.0, 11))

	ex := tr.Expanded()
	if ex.DominantExpression != "negative" {
		t.Errorf("dominant expression = %q, want negative", ex.DominantExpression)
	}
	if ex.StimmingCandidate {
		t.Error("stimming candidate flagged with zero hand/arm events")
	}
}

func TestBehaviorTracker_ResetClearsState(t *testing.T) {
	tr := NewBehaviorTracker(DefaultBehaviorConfig())
	tr.Observe(flatFrame(0.0, 0))
	tr.Observe(upperStripes(0.5))
	if len(tr.Events()) == 0 {
		t.Fatal("setup produced no events")
	}
	tr.Reset()
	if len(tr.Events()) != 0 {
		t.Error("events survive Reset")
	}
	tr.Observe(upperStripes(5.0))
	if len(tr.Events()) != 0 {
		t.Error("post-reset first frame emitted events")
	}
}
