// Package sound converts a mono waveform into discrete, classified audio
// events: name calls, child vocalizations, verbal responses, and echolalia
// patterns. All timestamps are seconds from the start of the video track
// (sample index over sample rate).
package sound

// SoundEvent is one contiguous above-threshold run of the energy envelope.
// Immutable once created.
type SoundEvent struct {
	Start     float64 `json:"start_time"`
	End       float64 `json:"end_time"`
	Duration  float64 `json:"duration"`
	Intensity float64 `json:"intensity"` // mean linear envelope amplitude
}

// NameCallEvent is a SoundEvent classified as an adult calling the child.
type NameCallEvent struct {
	SoundEvent
	Confidence float64 `json:"confidence"` // 0-100
}

// VocalizationEvent is a SoundEvent classified as a child vocalization.
type VocalizationEvent struct {
	SoundEvent
	Confidence        float64 `json:"confidence"`
	DominantFrequency float64 `json:"dominant_frequency"` // Hz
}

// VerbalResponseEvent is a speech-like segment starting inside the
// post-name-call response window.
type VerbalResponseEvent struct {
	SoundEvent
	Confidence           float64 `json:"confidence"`
	SecondsAfterNameCall float64 `json:"seconds_after_name_call"`
}

// BabblingEvent is a vocalization starting inside the post-name-call
// response window.
type BabblingEvent struct {
	VocalizationEvent
	SecondsAfterNameCall float64 `json:"seconds_after_name_call"`
}

// EcholaliaSummary reports repeated/echoed vocalization patterns found by
// pairwise segment similarity.
type EcholaliaSummary struct {
	Detected         bool `json:"detected"`
	SimilarPairCount int  `json:"similar_pair_count"`
	SegmentsCompared int  `json:"segments_compared"`
}

// Analysis is the full audio block for one video.
type Analysis struct {
	Available       bool                  `json:"available"`
	Events          []SoundEvent          `json:"events"`
	NameCalls       []NameCallEvent       `json:"name_calls"`
	Vocalizations   []VocalizationEvent   `json:"vocalizations"`
	VerbalResponses []VerbalResponseEvent `json:"verbal_responses"`
	Babbling        []BabblingEvent       `json:"babbling"`
	Echolalia       EcholaliaSummary      `json:"echolalia"`
}
