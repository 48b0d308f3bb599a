package analysis

import (
	"encoding/json"
	"testing"

	"github.com/kidsense/go-rtn/internal/config"
	"github.com/kidsense/go-rtn/pkg/sound"
	"github.com/kidsense/go-rtn/pkg/vision"
)

const (
	testW = 64
	testH = 64
)

func frame(t float64, fill func(x, y int) uint8) vision.Frame {
	pix := make([]uint8, testW*testH)
	for y := 0; y < testH; y++ {
		for x := 0; x < testW; x++ {
			pix[y*testW+x] = fill(x, y)
		}
	}
	return vision.Frame{Pix: pix, W: testW, H: testH, Time: t}
}

func flat(t float64, v uint8) vision.Frame {
	return frame(t, func(x, y int) uint8 { return v })
}

func split(t float64) vision.Frame {
	return frame(t, func(x, y int) uint8 {
		if x < testW/2 {
			return 0
		}
		return 255
	})
}

func TestAssemble_FusesTimelines(t *testing.T) {
	a := New(config.Default())

	motion := vision.NewMotionDetector(a.cfg.Motion)
	tracker := vision.NewBehaviorTracker(a.cfg.Behavior)
	motion.Observe(flat(0.0, 0))
	motion.Observe(split(2.5))
	tracker.Observe(flat(0.0, 0))
	tracker.Observe(split(2.5))

	audio := sound.Analysis{
		Available: true,
		NameCalls: []sound.NameCallEvent{{
			SoundEvent: sound.SoundEvent{Start: 0.8, End: 1.5, Duration: 0.7, Intensity: 0.06},
			Confidence: 85,
		}},
	}

	res := a.assemble("test-id", "clip.mp4", "Alex", 30.0, motion, tracker, audio)

	if !res.RTN.Detected {
		t.Fatal("visual response not detected")
	}
	if res.RTN.Status != vision.StatusDelayed {
		t.Errorf("status = %q, want %q", res.RTN.Status, vision.StatusDelayed)
	}
	if res.RTN.ReactionTime != 1.0 {
		t.Errorf("reaction time = %v, want 1.0 (2.5 - call end 1.5)", res.RTN.ReactionTime)
	}
	if res.RTN.Confidence < 1 || res.RTN.Confidence > 100 {
		t.Errorf("confidence = %d outside [1,100]", res.RTN.Confidence)
	}
	if res.ChildName != "Alex" || res.DurationSeconds != 30.0 {
		t.Errorf("record context wrong: %+v", res)
	}
}

func TestAssemble_NoAudioStillScores(t *testing.T) {
	a := New(config.Default())
	motion := vision.NewMotionDetector(a.cfg.Motion)
	tracker := vision.NewBehaviorTracker(a.cfg.Behavior)
	motion.Observe(flat(0.0, 0))
	motion.Observe(split(4.0))

	res := a.assemble("test-id", "clip.mp4", "", 20.0, motion, tracker, sound.Analysis{})

	if res.Audio.Available {
		t.Error("audio reported available")
	}
	if !res.RTN.Detected {
		t.Fatal("visual response not detected")
	}
	// With no usable call the raw response timestamp is reported.
	if res.RTN.ReactionTime != 4.0 {
		t.Errorf("fallback reaction time = %v, want 4.0", res.RTN.ReactionTime)
	}
	if res.Error != "" {
		t.Errorf("missing audio must not set the error field: %q", res.Error)
	}
}

func TestTerminal_ZeroConfidenceRecord(t *testing.T) {
	a := New(config.Default())
	res := a.terminal("test-id", "broken.mp4", "Sam", "no decodable stream")

	if res.Error == "" {
		t.Fatal("terminal record missing error")
	}
	if res.RTN.Status != vision.StatusNone || res.RTN.Detected {
		t.Errorf("terminal RTN block = %+v, want noResponse", res.RTN)
	}
	if res.RTN.Confidence != 0 {
		t.Errorf("terminal confidence = %d, want 0", res.RTN.Confidence)
	}
}

func TestAnalysisResult_JSONRoundTrip(t *testing.T) {
	a := New(config.Default())
	res := a.terminal("test-id", "x.mp4", "", "unopenable")

	data, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back AnalysisResult
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.ID != res.ID || back.Error != res.Error || back.RTN.Status != res.RTN.Status {
		t.Errorf("round trip mismatch: %+v vs %+v", back, res)
	}
}
