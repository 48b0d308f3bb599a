package analysis

import (
	"github.com/kidsense/go-rtn/pkg/sound"
	"github.com/kidsense/go-rtn/pkg/vision"
)

// RTNResult is the fused response-to-name block of the final record.
type RTNResult struct {
	Status       vision.RTNStatus `json:"status"`
	Detected     bool             `json:"detected"`
	ResponseTime float64          `json:"response_time"`                // Seconds from video start
	ReactionTime float64          `json:"response_time_from_name_call"` // Seconds from first name call
	Confidence   int              `json:"confidence"`

	// Raw per-frame signals behind the canonical verdict.
	Response vision.RTNResponse `json:"response_detail"`
}

// AnalysisResult is the complete structured record for one video analysis.
// Downstream consumers (risk classifier, API layer) treat it as an opaque
// JSON-serializable record; this package never persists it.
type AnalysisResult struct {
	ID              string  `json:"id"`
	ChildName       string  `json:"child_name,omitempty"`
	VideoPath       string  `json:"video_path"`
	DurationSeconds float64 `json:"duration_seconds"`

	RTN            RTNResult                `json:"rtn"`
	Behaviors      []vision.BehaviorSummary `json:"behaviors"`
	BehaviorEvents []vision.BehaviorEvent   `json:"behavior_events"`
	Expanded       vision.ExpandedSummary   `json:"expanded_behaviors"`
	Audio          sound.Analysis           `json:"audio"`

	// Error is set only for unusable media; partial failures degrade inside
	// the detectors instead.
	Error string `json:"error,omitempty"`
}
