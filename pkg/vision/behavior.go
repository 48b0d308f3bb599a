package vision

import (
	"math"
	"sort"
)

// BehaviorType identifies a secondary behavior marker.
type BehaviorType string

const (
	BehaviorHeadTurning       BehaviorType = "head_turning"
	BehaviorEyeMovement       BehaviorType = "eye_movement"
	BehaviorBodyMovement      BehaviorType = "body_movement"
	BehaviorFacialExpression  BehaviorType = "facial_expression"
	BehaviorSmile             BehaviorType = "smile"
	BehaviorOrientationChange BehaviorType = "orientation_change"
	BehaviorHandArmMovement   BehaviorType = "hand_arm_movement"
	BehaviorProximitySeeking  BehaviorType = "proximity_seeking"
	BehaviorReturnToActivity  BehaviorType = "return_to_activity"
)

// BehaviorEvent is one observed behavior at one sampled frame.
type BehaviorEvent struct {
	Type       BehaviorType `json:"type"`
	Time       float64      `json:"time"`
	Confidence float64      `json:"confidence"`

	// Type-specific extras; zero when not applicable.
	Expression string  `json:"expression,omitempty"` // facial_expression
	Latency    float64 `json:"latency,omitempty"`    // return_to_activity
}

// BehaviorSummary is the per-type deduplication of the event list.
type BehaviorSummary struct {
	Type          BehaviorType `json:"type"`
	Count         int          `json:"count"`
	FirstDetected float64      `json:"first_detected"`
	Confidence    float64      `json:"confidence"` // strongest observation
}

// ExpandedSummary aggregates expression coding, body language, and
// attention-maintenance measurements across the whole video.
type ExpandedSummary struct {
	DominantExpression string         `json:"dominant_expression"`
	ExpressionFrames   map[string]int `json:"expression_frames"`
	SmileCount         int            `json:"smile_count"`

	OrientationChanges int  `json:"orientation_changes"`
	HandArmMovements   int  `json:"hand_arm_movements"`
	ProximityEvents    int  `json:"proximity_events"`
	StimmingCandidate  bool `json:"stimming_candidate"`

	EyeContactDuration      float64 `json:"eye_contact_duration"`
	ReturnToActivityLatency float64 `json:"return_to_activity_latency"`
}

// BehaviorTracker accumulates secondary behavior markers over the sampled
// frame stream. It keeps its own short frame history and never shares state
// with the motion detector scanning the same frames.
type BehaviorTracker struct {
	cfg BehaviorConfig

	history  []Frame
	baseline float64
	frames   int

	events []BehaviorEvent

	// Expression coding counters (per frame, raw upper half).
	smiles      int
	positive    int
	neutral     int
	negative    int
	orientation int
	handArm     int
	proximity   int

	// Eye-contact state machine.
	eyeContactStart float64
	inEyeContact    bool
	eyeContactTotal float64

	// Return-to-activity state machine.
	lastResponseTime float64
	hasResponse      bool
	returnTime       float64
	returnLatency    float64
	returnSeen       bool
}

// NewBehaviorTracker creates a tracker with the given tuning.
func NewBehaviorTracker(cfg BehaviorConfig) *BehaviorTracker {
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = DefaultBehaviorConfig().HistorySize
	}
	return &BehaviorTracker{cfg: cfg}
}

// Reset clears all accumulated state for reuse on another video.
func (t *BehaviorTracker) Reset() {
	*t = BehaviorTracker{cfg: t.cfg}
}

// Observe feeds one sampled frame. The first frame only establishes the
// motion baseline; no behaviors are ever emitted for it.
func (t *BehaviorTracker) Observe(f Frame) {
	if !f.Valid() {
		return
	}
	t.frames++

	if len(t.history) == 0 {
		t.baseline = regionVariance(f, fullFrame(f))
		t.push(f)
		return
	}

	prev := t.history[len(t.history)-1]
	diff := absDiff(f, prev)
	if !diff.Valid() {
		t.push(f)
		return
	}
	motion, _ := regionStats(diff, fullFrame(diff))

	t.detectHeadTurning(diff, motion, f.Time)
	eyeNow := t.detectEyeMovement(diff, motion, f.Time)
	t.detectBodyMovement(diff, motion, f.Time)
	t.detectFacialExpression(diff, f, motion, f.Time)
	t.detectOrientationChange(diff, motion, f.Time)
	t.detectHandArmMovement(diff, motion, f.Time)
	t.detectProximitySeeking(diff, motion, f.Time)
	t.codeExpression(f)
	t.updateEyeContact(eyeNow, motion, f.Time)

	t.push(f)
}

func (t *BehaviorTracker) push(f Frame) {
	t.history = append(t.history, f)
	if len(t.history) > t.cfg.HistorySize {
		t.history = t.history[1:]
	}
}

func (t *BehaviorTracker) emit(ev BehaviorEvent) {
	t.events = append(t.events, ev)
}

// diffConfidence maps localized diff energy onto a bounded confidence.
func diffConfidence(mean float64) float64 {
	return math.Min(90, 40+mean)
}

func (t *BehaviorTracker) detectHeadTurning(diff Frame, motion, now float64) {
	if motion < t.cfg.HeadTurnMotionMin {
		return
	}
	mean, std := regionStats(diff, upperHalf(diff))
	if mean > t.cfg.HeadTurnMean && std > t.cfg.HeadTurnStd {
		t.emit(BehaviorEvent{Type: BehaviorHeadTurning, Time: now, Confidence: diffConfidence(mean)})
		t.lastResponseTime = now
		t.hasResponse = true
	}
}

func (t *BehaviorTracker) detectEyeMovement(diff Frame, motion, now float64) bool {
	if motion < t.cfg.EyeMotionMin {
		return false
	}
	mean, std := regionStats(diff, upperThird(diff))
	if mean > t.cfg.EyeMean && std > t.cfg.EyeStd {
		t.emit(BehaviorEvent{Type: BehaviorEyeMovement, Time: now, Confidence: diffConfidence(mean)})
		return true
	}
	return false
}

func (t *BehaviorTracker) detectBodyMovement(diff Frame, motion, now float64) {
	if motion < t.cfg.BodyMotionMin {
		return
	}
	mean, std := regionStats(diff, lowerTwoThirds(diff))
	if mean > t.cfg.BodyMean && std > t.cfg.BodyStd {
		t.emit(BehaviorEvent{Type: BehaviorBodyMovement, Time: now, Confidence: diffConfidence(mean)})
	}
}

func (t *BehaviorTracker) detectFacialExpression(diff, raw Frame, motion, now float64) {
	if motion < t.cfg.FacialMotionMin {
		return
	}
	mean, std := regionStats(diff, upperHalf(diff))
	if mean > t.cfg.FacialMean && std > t.cfg.FacialStd {
		ev := BehaviorEvent{Type: BehaviorFacialExpression, Time: now, Confidence: diffConfidence(mean)}
		ev.Expression = t.classifyExpression(raw)
		t.emit(ev)
	}
	if motion >= t.cfg.SmileMotionMin && t.smileHeuristic(raw) {
		t.smiles++
		t.emit(BehaviorEvent{Type: BehaviorSmile, Time: now, Confidence: 60})
	}
}

// smileHeuristic compares the lower-face band against the upper-face band on
// the raw frame: a smile brightens and textures the mouth region relative to
// the forehead/eye band.
func (t *BehaviorTracker) smileHeuristic(raw Frame) bool {
	upMean, _ := regionStats(raw, upperFace(raw))
	loMean, loStd := regionStats(raw, lowerFace(raw))
	return loMean > upMean+t.cfg.SmileBrightnessDelta && loStd > t.cfg.SmileStdMin
}

// classifyExpression codes the raw upper half as positive, neutral, or
// negative from brightness/contrast statistics.
func (t *BehaviorTracker) classifyExpression(raw Frame) string {
	mean, std := regionStats(raw, upperHalf(raw))
	switch {
	case std > t.cfg.PositiveStd && mean > t.cfg.PositiveMean:
		return "positive"
	case mean < t.cfg.NegativeMean || (std < t.cfg.FlatStd && mean < t.cfg.FlatMean):
		return "negative"
	default:
		return "neutral"
	}
}

func (t *BehaviorTracker) codeExpression(raw Frame) {
	switch t.classifyExpression(raw) {
	case "positive":
		t.positive++
	case "negative":
		t.negative++
	default:
		t.neutral++
	}
}

func (t *BehaviorTracker) detectOrientationChange(diff Frame, motion, now float64) {
	if motion < t.cfg.OrientationMotionMin {
		return
	}
	mean, _ := regionStats(diff, lowerTwoThirds(diff))
	leftMean, _ := regionStats(diff, leftHalfLower(diff))
	rightMean, _ := regionStats(diff, rightHalfLower(diff))
	if mean > t.cfg.OrientMean && math.Abs(leftMean-rightMean) > t.cfg.OrientBalance {
		t.orientation++
		t.emit(BehaviorEvent{Type: BehaviorOrientationChange, Time: now, Confidence: diffConfidence(mean)})
	}
}

func (t *BehaviorTracker) detectHandArmMovement(diff Frame, motion, now float64) {
	if motion < t.cfg.HandArmMotionMin {
		return
	}
	leftMean, _ := regionStats(diff, leftQuarter(diff))
	rightMean, _ := regionStats(diff, rightQuarter(diff))
	if leftMean > t.cfg.HandArmMean || rightMean > t.cfg.HandArmMean {
		t.handArm++
		t.emit(BehaviorEvent{Type: BehaviorHandArmMovement, Time: now, Confidence: diffConfidence(math.Max(leftMean, rightMean))})
	}
}

func (t *BehaviorTracker) detectProximitySeeking(diff Frame, motion, now float64) {
	if motion < t.cfg.ProximityMotionMin {
		return
	}
	centerMean, _ := regionStats(diff, centerHalf(diff))
	leftMean, _ := regionStats(diff, leftQuarter(diff))
	rightMean, _ := regionStats(diff, rightQuarter(diff))
	edgeMean := (leftMean + rightMean) / 2
	if centerMean > t.cfg.ProximityMean && centerMean > t.cfg.ProximityGain*edgeMean {
		t.proximity++
		t.emit(BehaviorEvent{Type: BehaviorProximitySeeking, Time: now, Confidence: diffConfidence(centerMean)})
	}
}

// updateEyeContact runs the eye-contact and return-to-activity state
// machines. While the eye-movement signal holds, contact duration
// accumulates from first onset; on drop, a settled frame after a prior
// head-turn response emits a one-time return-to-activity event.
func (t *BehaviorTracker) updateEyeContact(eyeNow bool, motion, now float64) {
	if eyeNow {
		if !t.inEyeContact {
			t.eyeContactStart = now
			t.inEyeContact = true
		} else if d := now - t.eyeContactStart; d > t.eyeContactTotal {
			t.eyeContactTotal = d
		}
		return
	}
	if !t.inEyeContact {
		return
	}
	if t.hasResponse && !t.returnSeen && motion < t.cfg.ReturnMotionCeiling {
		t.returnSeen = true
		t.returnTime = now
		t.returnLatency = now - t.lastResponseTime
		t.emit(BehaviorEvent{
			Type:       BehaviorReturnToActivity,
			Time:       now,
			Confidence: 65,
			Latency:    t.returnLatency,
		})
	}
	t.inEyeContact = false
}

// Events returns the flat behavior event list in observation order.
func (t *BehaviorTracker) Events() []BehaviorEvent {
	return t.events
}

// Summaries deduplicates the event list by type, ordered by first detection.
func (t *BehaviorTracker) Summaries() []BehaviorSummary {
	byType := make(map[BehaviorType]*BehaviorSummary)
	for _, ev := range t.events {
		s, ok := byType[ev.Type]
		if !ok {
			byType[ev.Type] = &BehaviorSummary{
				Type:          ev.Type,
				Count:         1,
				FirstDetected: ev.Time,
				Confidence:    ev.Confidence,
			}
			continue
		}
		s.Count++
		if ev.Confidence > s.Confidence {
			s.Confidence = ev.Confidence
		}
	}
	out := make([]BehaviorSummary, 0, len(byType))
	for _, s := range byType {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FirstDetected < out[j].FirstDetected })
	return out
}

// Expanded returns the aggregate behavior picture for the whole video.
func (t *BehaviorTracker) Expanded() ExpandedSummary {
	dominant := "neutral"
	best := t.neutral
	if t.positive > best {
		dominant, best = "positive", t.positive
	}
	if t.negative > best {
		dominant = "negative"
	}
	return ExpandedSummary{
		DominantExpression: dominant,
		ExpressionFrames: map[string]int{
			"positive": t.positive,
			"neutral":  t.neutral,
			"negative": t.negative,
		},
		SmileCount:         t.smiles,
		OrientationChanges: t.orientation,
		HandArmMovements:   t.handArm,
		ProximityEvents:    t.proximity,
		StimmingCandidate:  t.handArm > t.cfg.StimmingHandEvents,

		EyeContactDuration:      t.eyeContactTotal,
		ReturnToActivityLatency: t.returnLatency,
	}
}
