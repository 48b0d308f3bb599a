package vision

import (
	"math"
	"reflect"
	"testing"
)

const (
	testW = 64
	testH = 64
)

// makeFrame builds a synthetic grayscale frame from a pixel generator.
func makeFrame(t float64, fill func(x, y int) uint8) Frame {
	pix := make([]uint8, testW*testH)
	for y := 0; y < testH; y++ {
		for x := 0; x < testW; x++ {
			pix[y*testW+x] = fill(x, y)
		}
	}
	return Frame{Pix: pix, W: testW, H: testH, Time: t}
}

func flatFrame(t float64, v uint8) Frame {
	return makeFrame(t, func(x, y int) uint8 { return v })
}

// splitFrame is half dark, half bright: high variance, strong edges on the
// boundary only.
func splitFrame(t float64) Frame {
	return makeFrame(t, func(x, y int) uint8 {
		if x < testW/2 {
			return 0
		}
		return 255
	})
}

func TestMotionDetector_StaticSceneNoResponse(t *testing.T) {
	d := NewMotionDetector(DefaultMotionConfig())
	for i := 0; i < 10; i++ {
		d.Observe(flatFrame(float64(i)*0.5, 100))
	}
	res := d.Result()
	if res.Detected {
		t.Fatalf("static scene detected a response: %+v", res)
	}
	if res.Status != StatusNone {
		t.Errorf("status = %q, want %q", res.Status, StatusNone)
	}
	if len(d.Detections()) != 0 {
		t.Errorf("retained %d detections, want 0", len(d.Detections()))
	}
}

func TestMotionDetector_SceneChangeDetected(t *testing.T) {
	d := NewMotionDetector(DefaultMotionConfig())
	// Baseline: flat frame, zero variance.
	d.Observe(flatFrame(0.0, 0))
	// Sudden high-variance frame: large motion score plus face-movement
	// signal (variance well above the floor).
	d.Observe(splitFrame(0.5))

	res := d.Result()
	if !res.Detected {
		t.Fatalf("scene change not detected: %+v", res)
	}
	if res.Status != StatusImmediate {
		t.Errorf("status = %q, want %q for t=0.5", res.Status, StatusImmediate)
	}
	if res.MotionScore <= DefaultMotionConfig().MotionThreshold {
		t.Errorf("motion score %.1f not above threshold", res.MotionScore)
	}
	if !res.FaceMovement {
		t.Error("expected face movement signal from variance jump")
	}
	if res.Confidence < 80 || res.Confidence > 100 {
		t.Errorf("positive confidence %.1f outside [80,100]", res.Confidence)
	}
}

func TestMotionDetector_StatusByTimestamp(t *testing.T) {
	cfg := DefaultMotionConfig()
	tests := []struct {
		time float64
		want RTNStatus
	}{
		{0.5, StatusImmediate},
		{0.99, StatusImmediate},
		{1.0, StatusDelayed},
		{2.0, StatusDelayed},
		{3.0, StatusPartial},
		{4.0, StatusPartial},
		{120.0, StatusPartial},
	}
	for _, tt := range tests {
		if got := statusForTime(tt.time, cfg); got != tt.want {
			t.Errorf("statusForTime(%.2f) = %q, want %q", tt.time, got, tt.want)
		}
	}
}

func TestMotionDetector_NegativeConfidence(t *testing.T) {
	d := NewMotionDetector(DefaultMotionConfig())
	d.Observe(flatFrame(0.0, 50))
	d.Observe(flatFrame(0.5, 50))
	res := d.Result()
	if res.Detected {
		t.Fatal("flat frames should not detect")
	}
	// motion score 0 -> confidence 30
	if math.Abs(res.Confidence-30) > 0.001 {
		t.Errorf("no-motion confidence = %.2f, want 30", res.Confidence)
	}
}

func TestMotionDetector_ResetDeterminism(t *testing.T) {
	frames := []Frame{
		flatFrame(0.0, 20),
		splitFrame(0.5),
		flatFrame(1.0, 20),
		splitFrame(1.5),
		flatFrame(2.0, 200),
	}

	d := NewMotionDetector(DefaultMotionConfig())
	run := func() ([]RTNResponse, RTNResponse) {
		for _, f := range frames {
			d.Observe(f)
		}
		dets := append([]RTNResponse(nil), d.Detections()...)
		return dets, d.Result()
	}

	dets1, res1 := run()
	d.Reset()
	dets2, res2 := run()

	if !reflect.DeepEqual(dets1, dets2) {
		t.Errorf("detections differ across reset:\n%v\n%v", dets1, dets2)
	}
	if !reflect.DeepEqual(res1, res2) {
		t.Errorf("result differs across reset: %+v vs %+v", res1, res2)
	}
}

func TestMotionDetector_SkipsInvalidFrames(t *testing.T) {
	d := NewMotionDetector(DefaultMotionConfig())
	d.Observe(Frame{})
	d.Observe(Frame{Pix: []uint8{1, 2, 3}, W: 10, H: 10, Time: 1})
	res := d.Result()
	if res.Detected {
		t.Error("invalid frames must not produce a detection")
	}
}

func TestRegionStats(t *testing.T) {
	f := makeFrame(0, func(x, y int) uint8 {
		if y < testH/2 {
			return 10
		}
		return 200
	})
	mean, std := regionStats(f, upperHalf(f))
	if mean != 10 || std != 0 {
		t.Errorf("upper half = (%.1f, %.1f), want (10, 0)", mean, std)
	}
	mean, _ = regionStats(f, fullFrame(f))
	if math.Abs(mean-105) > 0.001 {
		t.Errorf("full frame mean = %.2f, want 105", mean)
	}
}

func TestEdgeDensity(t *testing.T) {
	flat := flatFrame(0, 128)
	if got := edgeDensity(flat, 40); got != 0 {
		t.Errorf("flat frame edge density = %.3f, want 0", got)
	}
	// Vertical stripes of width 1 alternate 0/255: every horizontal
	// neighbor pair is an edge.
	stripes := makeFrame(0, func(x, y int) uint8 {
		if x%2 == 0 {
			return 0
		}
		return 255
	})
	if got := edgeDensity(stripes, 40); got < 0.9 {
		t.Errorf("stripe frame edge density = %.3f, want ~1", got)
	}
}
