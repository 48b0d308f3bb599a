package vision

// MotionConfig holds all tunable parameters for the response motion detector.
// Thresholds were tuned against uncontrolled home recordings; compression
// artifacts and lighting shifts drive the floors more than child movement.
type MotionConfig struct {
	// Motion
	MotionThreshold float64 `yaml:"motion_threshold"` // Mean abs-diff above this counts as motion

	// Edges
	EdgeGradient     int     `yaml:"edge_gradient"`     // Gradient magnitude for an edge pixel
	EdgeDensityGate  float64 `yaml:"edge_density_gate"` // Edge fraction for combined-movement gate
	ResponseEdgeGate float64 `yaml:"response_edge_gate"` // Edge fraction for the sustained-motion verdict

	// Face / head signals
	FaceVarianceDelta float64 `yaml:"face_variance_delta"` // Relative variance change vs baseline
	FaceVarianceFloor float64 `yaml:"face_variance_floor"` // Absolute variance floor
	HeadTurnThreshold float64 `yaml:"head_turn_threshold"` // Center/edge variance ratio margin

	// Temporal gating
	SustainedFrames int `yaml:"sustained_frames"` // Consecutive frames of movement required
	HistorySize     int `yaml:"history_size"`     // Bounded frame ring

	// Status boundaries (seconds from video start)
	ImmediateWindow float64 `yaml:"immediate_window"`
	DelayedWindow   float64 `yaml:"delayed_window"`
}

// DefaultMotionConfig returns the production tuning for the motion detector.
func DefaultMotionConfig() MotionConfig {
	return MotionConfig{
		MotionThreshold: 20,

		EdgeGradient:     40,
		EdgeDensityGate:  0.4,
		ResponseEdgeGate: 0.25,

		FaceVarianceDelta: 0.15,
		FaceVarianceFloor: 600,
		HeadTurnThreshold: 0.10,

		SustainedFrames: 2,
		HistorySize:     5,

		ImmediateWindow: 1.0,
		DelayedWindow:   3.0,
	}
}

// BehaviorConfig holds the double-threshold tuning for the behavior tracker.
// Each behavior requires the whole-frame motion score to clear a
// type-specific minimum AND a region-localized mean/std pair to clear
// secondary thresholds. The double gate suppresses the compression- and
// lighting-noise false positives the earlier single-threshold tuning
// produced.
type BehaviorConfig struct {
	// Whole-frame motion minimums, increasing with behavior specificity.
	HeadTurnMotionMin    float64 `yaml:"head_turn_motion_min"`
	FacialMotionMin      float64 `yaml:"facial_motion_min"`
	EyeMotionMin         float64 `yaml:"eye_motion_min"`
	BodyMotionMin        float64 `yaml:"body_motion_min"`
	SmileMotionMin       float64 `yaml:"smile_motion_min"`
	HandArmMotionMin     float64 `yaml:"hand_arm_motion_min"`
	OrientationMotionMin float64 `yaml:"orientation_motion_min"`
	ProximityMotionMin   float64 `yaml:"proximity_motion_min"`

	// Region-localized secondary thresholds on the diff map.
	HeadTurnMean  float64 `yaml:"head_turn_mean"`
	HeadTurnStd   float64 `yaml:"head_turn_std"`
	EyeMean       float64 `yaml:"eye_mean"`
	EyeStd        float64 `yaml:"eye_std"`
	BodyMean      float64 `yaml:"body_mean"`
	BodyStd       float64 `yaml:"body_std"`
	FacialMean    float64 `yaml:"facial_mean"`
	FacialStd     float64 `yaml:"facial_std"`
	OrientMean    float64 `yaml:"orient_mean"`
	OrientBalance float64 `yaml:"orient_balance"` // |left-right| mean gap
	HandArmMean   float64 `yaml:"hand_arm_mean"`
	ProximityMean float64 `yaml:"proximity_mean"`
	ProximityGain float64 `yaml:"proximity_gain"` // Center vs edge mean ratio

	// Smile heuristic on the raw frame.
	SmileBrightnessDelta float64 `yaml:"smile_brightness_delta"`
	SmileStdMin          float64 `yaml:"smile_std_min"`

	// Emotional coding on the raw upper half.
	PositiveStd  float64 `yaml:"positive_std"`
	PositiveMean float64 `yaml:"positive_mean"`
	NegativeMean float64 `yaml:"negative_mean"`
	FlatStd      float64 `yaml:"flat_std"`
	FlatMean     float64 `yaml:"flat_mean"`

	// State machines
	ReturnMotionCeiling float64 `yaml:"return_motion_ceiling"` // Motion below this counts as settled
	StimmingHandEvents  int     `yaml:"stimming_hand_events"`  // Hand/arm events above this flag a stimming candidate

	HistorySize int `yaml:"history_size"`
}

// DefaultBehaviorConfig returns the production tuning for the behavior tracker.
func DefaultBehaviorConfig() BehaviorConfig {
	return BehaviorConfig{
		HeadTurnMotionMin:    25,
		FacialMotionMin:      25,
		EyeMotionMin:         28,
		BodyMotionMin:        30,
		SmileMotionMin:       30,
		HandArmMotionMin:     35,
		OrientationMotionMin: 40,
		ProximityMotionMin:   45,

		HeadTurnMean:  30,
		HeadTurnStd:   10,
		EyeMean:       28,
		EyeStd:        8,
		BodyMean:      35,
		BodyStd:       12,
		FacialMean:    28, // intentionally looser than head turning
		FacialStd:     9,
		OrientMean:    40,
		OrientBalance: 15,
		HandArmMean:   25,
		ProximityMean: 30,
		ProximityGain: 1.1,

		SmileBrightnessDelta: 10,
		SmileStdMin:          15,

		PositiveStd:  35,
		PositiveMean: 100,
		NegativeMean: 80,
		FlatStd:      15,
		FlatMean:     90,

		ReturnMotionCeiling: 20,
		StimmingHandEvents:  5,

		HistorySize: 3,
	}
}
