package media

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"os/exec"
	"strconv"

	"github.com/kidsense/go-rtn/internal/log"
)

// ExtractAudio pulls a mono waveform at cfg.SampleRate from the container.
// It first decodes straight to raw float32 PCM over a pipe; if that fails it
// transcodes to a temporary WAV under a hard timeout and decodes that.
//
// Callers must treat an error as "audio unavailable", a reportable outcome,
// not a pipeline failure.
func ExtractAudio(ctx context.Context, path string, cfg Config) ([]float64, int, error) {
	samples, err := decodeDirect(ctx, path, cfg)
	if err == nil && len(samples) > 0 {
		return samples, cfg.SampleRate, nil
	}
	log.Warn("direct audio decode failed, falling back to WAV transcode", "video", path, "err", err)

	samples, rate, err := decodeViaWAV(ctx, path, cfg)
	if err != nil {
		return nil, 0, fmt.Errorf("extract audio from %s: %w", path, err)
	}
	if rate != cfg.SampleRate {
		samples = Resample(samples, rate, cfg.SampleRate)
		rate = cfg.SampleRate
	}
	return samples, rate, nil
}

// decodeDirect pipes raw f32le mono PCM out of ffmpeg, no temp files.
func decodeDirect(ctx context.Context, path string, cfg Config) ([]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.TranscodeTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, cfg.FFmpegPath,
		"-v", "error",
		"-i", path,
		"-vn",
		"-ac", "1",
		"-ar", strconv.Itoa(cfg.SampleRate),
		"-f", "f32le",
		"pipe:1",
	)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg pipe decode: %w", err)
	}
	if len(out) < 4 {
		return nil, fmt.Errorf("ffmpeg pipe decode: empty stream")
	}
	return float32BytesToSamples(out), nil
}

// decodeViaWAV transcodes the audio track to a temporary WAV file, then
// parses it. The subprocess runs under the configured hard timeout.
func decodeViaWAV(ctx context.Context, path string, cfg Config) ([]float64, int, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.TranscodeTimeout)
	defer cancel()

	tmp, err := os.CreateTemp("", "rtn-audio-*.wav")
	if err != nil {
		return nil, 0, fmt.Errorf("create temp wav: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	cmd := exec.CommandContext(ctx, cfg.FFmpegPath,
		"-y",
		"-v", "error",
		"-i", path,
		"-vn",
		"-ac", "1",
		"-ar", strconv.Itoa(cfg.SampleRate),
		"-f", "wav",
		tmpPath,
	)
	if err := cmd.Run(); err != nil {
		return nil, 0, fmt.Errorf("ffmpeg wav transcode: %w", err)
	}

	data, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, 0, fmt.Errorf("read transcoded wav: %w", err)
	}
	return DecodeWAV(data)
}

// float32BytesToSamples converts little-endian f32 PCM bytes to clamped
// float64 samples.
func float32BytesToSamples(data []byte) []float64 {
	n := len(data) / 4
	samples := make([]float64, n)
	for i := 0; i < n; i++ {
		bits := binary.LittleEndian.Uint32(data[i*4:])
		v := float64(math.Float32frombits(bits))
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		samples[i] = clampSample(v)
	}
	return samples
}

func clampSample(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
