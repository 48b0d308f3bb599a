package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	root := Default()
	if root.Motion.MotionThreshold != 20 {
		t.Errorf("motion threshold = %v, want 20", root.Motion.MotionThreshold)
	}
	if root.Sound.FrameLength != 2048 || root.Sound.HopLength != 512 {
		t.Errorf("sound windowing = (%d, %d), want (2048, 512)", root.Sound.FrameLength, root.Sound.HopLength)
	}
	if root.Behavior.HistorySize != 3 {
		t.Errorf("behavior history = %d, want 3", root.Behavior.HistorySize)
	}
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	root, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if root.Media.SampleRate != 44100 {
		t.Errorf("sample rate = %d, want 44100", root.Media.SampleRate)
	}
}

func TestLoad_OverlaysYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yaml")
	body := []byte("log_level: debug\nmotion:\n  motion_threshold: 35\nsound:\n  speech_threshold: 0.05\n")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatal(err)
	}

	root, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if root.LogLevel != "debug" {
		t.Errorf("log level = %q, want debug", root.LogLevel)
	}
	if root.Motion.MotionThreshold != 35 {
		t.Errorf("overridden motion threshold = %v, want 35", root.Motion.MotionThreshold)
	}
	if root.Sound.SpeechThreshold != 0.05 {
		t.Errorf("overridden speech threshold = %v, want 0.05", root.Sound.SpeechThreshold)
	}
	// Untouched fields keep their defaults.
	if root.Motion.SustainedFrames != 2 {
		t.Errorf("sustained frames = %d, want default 2", root.Motion.SustainedFrames)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/tuning.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}
