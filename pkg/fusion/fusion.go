// Package fusion aligns the first qualifying name call with the visual
// response verdict and blends per-modality confidences into a single scored
// outcome.
package fusion

import (
	"math"

	"github.com/kidsense/go-rtn/pkg/sound"
	"github.com/kidsense/go-rtn/pkg/vision"
)

// Reaction-time and fallback bounds, seconds.
const (
	maxReactionTime = 30.0
	maxFallbackTime = 60.0
)

// Input carries the two reconciled timelines plus context for scoring.
type Input struct {
	Response      vision.RTNResponse
	NameCalls     []sound.NameCallEvent
	BehaviorCount int
	VideoDuration float64
}

// Outcome is the fused verdict for one video.
type Outcome struct {
	Status       vision.RTNStatus `json:"status"`
	ReactionTime float64          `json:"reaction_time"` // Seconds from name call to response
	Confidence   int              `json:"confidence"`    // 0-100
}

// Fuse computes the reaction time and blended confidence for one analysis.
func Fuse(in Input) Outcome {
	out := Outcome{Status: in.Response.Status}
	if !in.Response.Detected {
		out.Status = vision.StatusNone
	}

	out.ReactionTime = reactionTime(in)
	out.Confidence = blendConfidence(in, out.ReactionTime)
	return out
}

// reactionTime measures from the end of the first qualifying name call to
// the visual response. Without a usable call the raw response timestamp is
// reported so callers never see an empty value when a response was seen.
// Nonsensical geometry clamps to zero, never negative.
func reactionTime(in Input) float64 {
	if !in.Response.Detected {
		return 0
	}
	if len(in.NameCalls) > 0 {
		rt := in.Response.Time - in.NameCalls[0].End
		if rt < 0 || math.IsNaN(rt) {
			return 0
		}
		return round2(math.Min(rt, maxReactionTime))
	}
	return round2(clamp(in.Response.Time, 0, maxFallbackTime))
}

// blendConfidence mixes the visual confidence with behavior richness and
// latency bonuses, then applies an uncertainty discount for weak outcomes.
func blendConfidence(in Input, rt float64) int {
	score := 0.6 * clamp(in.Response.Confidence, 0, 100)
	score += math.Min(30, 5*float64(in.BehaviorCount))
	score += timeBonus(rt)
	score += math.Min(5, in.VideoDuration/10)

	switch {
	case !in.Response.Detected:
		score = clamp(score, 30, 60) * 0.75
	case rt > 3:
		score = clamp(score, 50, 75) * 0.85
	}

	return int(math.Round(clamp(score, 0, 100)))
}

func timeBonus(rt float64) float64 {
	switch {
	case rt < 1:
		return 10
	case rt < 3:
		return 7
	default:
		return 4
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
