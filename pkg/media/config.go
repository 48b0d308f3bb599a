// Package media handles AV input for the analysis pipeline: video frame
// sampling through OpenCV and audio waveform extraction through ffmpeg with
// a transcode-to-WAV fallback.
package media

import "time"

// Config holds media input parameters.
type Config struct {
	// Audio
	SampleRate       int           `yaml:"sample_rate"`  // Target mono rate, Hz
	TranscodeTimeout time.Duration `yaml:"-"`            // Hard cap on the ffmpeg fallback
	FFmpegPath       string        `yaml:"ffmpeg_path"`  // Binary name or absolute path

	// Video
	TargetFPS    float64 `yaml:"target_fps"`    // Sampled analysis rate
	WorkingWidth int     `yaml:"working_width"` // Frames are downscaled to this width
}

// DefaultConfig returns production media defaults.
func DefaultConfig() Config {
	return Config{
		SampleRate:       44100,
		TranscodeTimeout: 30 * time.Second,
		FFmpegPath:       "ffmpeg",

		TargetFPS:    2.0,
		WorkingWidth: 320,
	}
}
