// Package analysis orchestrates the full response-to-name screening
// pipeline: frame sampling into the visual detectors, audio extraction into
// the sound classifiers, and fusion of the two timelines into one scored
// record.
package analysis

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/kidsense/go-rtn/internal/config"
	"github.com/kidsense/go-rtn/internal/log"
	"github.com/kidsense/go-rtn/pkg/fusion"
	"github.com/kidsense/go-rtn/pkg/media"
	"github.com/kidsense/go-rtn/pkg/sound"
	"github.com/kidsense/go-rtn/pkg/vision"
)

// Analyzer runs independent analyses. It holds only tuning; every call
// builds fresh detector instances, so concurrent analyses of different
// videos are safe.
type Analyzer struct {
	cfg config.Root
}

// New creates an analyzer with the given tuning.
func New(cfg config.Root) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// AnalyzeVideo screens one recording. The returned record is always
// non-nil: unusable media produces a terminal zero-confidence record with
// the Error field set rather than an error escaping the pipeline.
func (a *Analyzer) AnalyzeVideo(ctx context.Context, path, childName string) *AnalysisResult {
	id := uuid.NewString()
	logger := log.With("analysis", id, "video", path)
	logger.Info("starting analysis")

	reader, err := media.OpenVideo(path)
	if err != nil {
		logger.Error("video unusable", "err", err)
		return a.terminal(id, path, childName, err.Error())
	}
	defer reader.Close()

	motion := vision.NewMotionDetector(a.cfg.Motion)
	tracker := vision.NewBehaviorTracker(a.cfg.Behavior)

	// Frame and audio passes share no state, so they run concurrently and
	// join before fusion.
	var (
		wg       sync.WaitGroup
		frameErr error
		audio    sound.Analysis
		lastTime float64
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		frameErr = reader.SampleFrames(a.cfg.Media, func(f vision.Frame) {
			motion.Observe(f)
			tracker.Observe(f)
			if f.Time > lastTime {
				lastTime = f.Time
			}
		})
	}()
	go func() {
		defer wg.Done()
		samples, rate, err := media.ExtractAudio(ctx, path, a.cfg.Media)
		if err != nil {
			// Absent or unreadable audio is a reportable outcome.
			logger.Warn("audio unavailable", "err", err)
			return
		}
		audio = sound.NewClassifier(a.cfg.Sound).Analyze(samples, rate)
	}()
	wg.Wait()

	if frameErr != nil {
		logger.Error("video undecodable", "err", frameErr)
		res := a.terminal(id, path, childName, frameErr.Error())
		res.Audio = audio
		return res
	}

	duration := reader.Duration()
	if duration <= 0 {
		duration = lastTime
	}

	return a.assemble(id, path, childName, duration, motion, tracker, audio)
}

// assemble fuses the visual verdict with the audio timeline into the final
// record.
func (a *Analyzer) assemble(id, path, childName string, duration float64,
	motion *vision.MotionDetector, tracker *vision.BehaviorTracker, audio sound.Analysis) *AnalysisResult {

	response := motion.Result()
	summaries := tracker.Summaries()

	fused := fusion.Fuse(fusion.Input{
		Response:      response,
		NameCalls:     audio.NameCalls,
		BehaviorCount: len(summaries),
		VideoDuration: duration,
	})

	log.Info("analysis complete",
		"analysis", id,
		"status", fused.Status,
		"confidence", fused.Confidence,
		"reaction_time", fused.ReactionTime,
		"behaviors", len(summaries),
		"audio_available", audio.Available)

	return &AnalysisResult{
		ID:              id,
		ChildName:       childName,
		VideoPath:       path,
		DurationSeconds: duration,
		RTN: RTNResult{
			Status:       fused.Status,
			Detected:     response.Detected,
			ResponseTime: response.Time,
			ReactionTime: fused.ReactionTime,
			Confidence:   fused.Confidence,
			Response:     response,
		},
		Behaviors:      summaries,
		BehaviorEvents: tracker.Events(),
		Expanded:       tracker.Expanded(),
		Audio:          audio,
	}
}

// terminal builds the zero-confidence record for unusable media.
func (a *Analyzer) terminal(id, path, childName, errMsg string) *AnalysisResult {
	return &AnalysisResult{
		ID:        id,
		ChildName: childName,
		VideoPath: path,
		RTN: RTNResult{
			Status: vision.StatusNone,
			Response: vision.RTNResponse{
				Status: vision.StatusNone,
			},
		},
		Error: errMsg,
	}
}
