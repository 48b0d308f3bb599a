package sound

// Config holds all tunable parameters for audio event detection and
// classification. Defaults reflect hand tuning against noisy home
// recordings.
type Config struct {
	// Envelope segmentation
	FrameLength     int     `yaml:"frame_length"`     // RMS analysis window, samples
	HopLength       int     `yaml:"hop_length"`       // RMS hop, samples
	SpeechThreshold float64 `yaml:"speech_threshold"` // Envelope amplitude gate
	MinEventDur     float64 `yaml:"min_event_dur"`    // Seconds; shorter runs are noise
	MaxEventDur     float64 `yaml:"max_event_dur"`    // Seconds; longer runs are background

	// Speech-likeness
	SpeechBandLow   float64 `yaml:"speech_band_low"`   // Hz
	SpeechBandHigh  float64 `yaml:"speech_band_high"`  // Hz
	SpeechBandRatio float64 `yaml:"speech_band_ratio"` // Band energy fraction gate

	// Pitch tracking
	PitchLow  float64 `yaml:"pitch_low"`  // Hz
	PitchHigh float64 `yaml:"pitch_high"` // Hz

	// Harmonic content
	HarmonicRatioGate float64 `yaml:"harmonic_ratio_gate"`

	// Name-call classification
	NameCallMinDur    float64 `yaml:"name_call_min_dur"`
	NameCallMaxDur    float64 `yaml:"name_call_max_dur"`
	NameCallIntensity float64 `yaml:"name_call_intensity"`
	NameCallKeepAbove float64 `yaml:"name_call_keep_above"` // Confidence gate

	// Vocalization classification
	VocalMinDur   float64 `yaml:"vocal_min_dur"`
	VocalMaxDur   float64 `yaml:"vocal_max_dur"`
	VocalFreqLow  float64 `yaml:"vocal_freq_low"`
	VocalFreqHigh float64 `yaml:"vocal_freq_high"`
	VocalFloor    float64 `yaml:"vocal_floor"` // Intensity floor

	// Response window after a name call
	ResponseWindow float64 `yaml:"response_window"` // Seconds

	// Echolalia
	EcholaliaSimilarity float64 `yaml:"echolalia_similarity"`
	EcholaliaMinSamples int     `yaml:"echolalia_min_samples"`
}

// DefaultConfig returns the production tuning.
func DefaultConfig() Config {
	return Config{
		FrameLength:     2048,
		HopLength:       512,
		SpeechThreshold: 0.02,
		MinEventDur:     0.1,
		MaxEventDur:     10.0,

		SpeechBandLow:   300,
		SpeechBandHigh:  3400,
		SpeechBandRatio: 0.3,

		PitchLow:  80,
		PitchHigh: 4000,

		HarmonicRatioGate: 0.4,

		NameCallMinDur:    0.5,
		NameCallMaxDur:    3.0,
		NameCallIntensity: 0.03,
		NameCallKeepAbove: 40,

		VocalMinDur:   0.2,
		VocalMaxDur:   4.0,
		VocalFreqLow:  200,
		VocalFreqHigh: 4000,
		VocalFloor:    0.02,

		ResponseWindow: 5.0,

		EcholaliaSimilarity: 0.7,
		EcholaliaMinSamples: 100,
	}
}
