package sound

import (
	"math"

	"github.com/kidsense/go-rtn/internal/log"
)

// Classifier runs per-event heuristics over segmented sound events.
// Stateless apart from its tuning; safe to reuse across analyses.
type Classifier struct {
	cfg Config
}

// NewClassifier creates a classifier with the given tuning.
func NewClassifier(cfg Config) *Classifier {
	return &Classifier{cfg: cfg}
}

// Analyze segments and classifies the full waveform. A nil or empty
// waveform yields an unavailable analysis, never an error: absent audio is
// a reportable outcome.
func (c *Classifier) Analyze(samples []float64, rate int) Analysis {
	if len(samples) == 0 || rate <= 0 {
		return Analysis{}
	}

	events := Segment(samples, rate, c.cfg)
	calls := c.DetectNameCalls(samples, rate, events)
	vocals := c.DetectVocalizations(samples, rate, events)

	a := Analysis{
		Available:     true,
		Events:        events,
		NameCalls:     calls,
		Vocalizations: vocals,
		Echolalia:     c.DetectEcholalia(samples, rate, vocals),
	}
	for _, call := range calls {
		a.VerbalResponses = append(a.VerbalResponses, c.DetectVerbalResponses(samples, rate, events, call)...)
		a.Babbling = append(a.Babbling, c.DetectBabbling(vocals, call)...)
	}
	log.Debug("audio analysis complete",
		"events", len(events), "name_calls", len(calls),
		"vocalizations", len(vocals), "verbal_responses", len(a.VerbalResponses))
	return a
}

// speechLike reports whether the segment's spectral energy concentrates in
// the speech band.
func (c *Classifier) speechLike(seg []float64, rate int) bool {
	frames := stft(seg, 1024, 512)
	ratio := bandEnergyRatio(frames, rate, c.cfg.SpeechBandLow, c.cfg.SpeechBandHigh)
	return ratio > c.cfg.SpeechBandRatio
}

// dominantFrequency tracks pitch across the segment, falling back to the
// per-frame spectral centroid median when no frame is voiced.
func (c *Classifier) dominantFrequency(seg []float64, rate int) float64 {
	const frame, hop = 2048, 512
	var pitches []float64
	if len(seg) >= frame {
		for start := 0; start+frame <= len(seg); start += hop {
			if p := autocorrPitch(seg[start:start+frame], rate, c.cfg.PitchLow, c.cfg.PitchHigh); p > 0 {
				pitches = append(pitches, p)
			}
		}
	} else if p := autocorrPitch(seg, rate, c.cfg.PitchLow, c.cfg.PitchHigh); p > 0 {
		pitches = append(pitches, p)
	}
	if len(pitches) > 0 {
		return median(pitches)
	}

	var centroids []float64
	for _, mags := range stft(seg, 1024, 512) {
		if cf := spectralCentroid(mags, rate); cf > 0 {
			centroids = append(centroids, cf)
		}
	}
	return median(centroids)
}

// harmonic reports whether harmonic energy dominates the segment.
func (c *Classifier) harmonic(seg []float64, rate int) (float64, bool) {
	ratio := harmonicRatio(stft(seg, 1024, 512), 9)
	return ratio, ratio > c.cfg.HarmonicRatioGate
}

// DetectNameCalls classifies sound events as adult name calls. A failure on
// one segment degrades to "not a call" for that segment only.
func (c *Classifier) DetectNameCalls(samples []float64, rate int, events []SoundEvent) []NameCallEvent {
	var calls []NameCallEvent
	for _, ev := range events {
		if ev.Duration < c.cfg.NameCallMinDur || ev.Duration > c.cfg.NameCallMaxDur {
			continue
		}
		seg := slice(samples, rate, ev)
		if len(seg) == 0 {
			continue
		}
		speechy := c.speechLike(seg, rate)
		intense := ev.Intensity > c.cfg.NameCallIntensity

		var confidence float64
		switch {
		case speechy && intense:
			confidence = math.Min(90, 50+ev.Intensity*500)
		case speechy:
			confidence = 60
		case intense:
			confidence = 50
		}
		if confidence > c.cfg.NameCallKeepAbove {
			calls = append(calls, NameCallEvent{SoundEvent: ev, Confidence: confidence})
		}
	}
	return calls
}

// DetectVocalizations classifies sound events as child vocalizations.
func (c *Classifier) DetectVocalizations(samples []float64, rate int, events []SoundEvent) []VocalizationEvent {
	var vocals []VocalizationEvent
	for _, ev := range events {
		if ev.Duration < c.cfg.VocalMinDur || ev.Duration > c.cfg.VocalMaxDur {
			continue
		}
		seg := slice(samples, rate, ev)
		if len(seg) == 0 {
			continue
		}
		freq := c.dominantFrequency(seg, rate)
		freqValid := freq >= c.cfg.VocalFreqLow && freq <= c.cfg.VocalFreqHigh
		_, harmonicDominant := c.harmonic(seg, rate)
		aboveFloor := ev.Intensity > c.cfg.VocalFloor

		isVocal := freqValid && (harmonicDominant || aboveFloor)

		var confidence float64
		switch {
		case harmonicDominant && aboveFloor:
			confidence = math.Min(85, 50+ev.Intensity*400)
		case aboveFloor:
			confidence = 50
		}

		if isVocal || (confidence > 40 && ev.Duration < 2.0) {
			vocals = append(vocals, VocalizationEvent{
				SoundEvent:        ev,
				Confidence:        confidence,
				DominantFrequency: freq,
			})
		}
	}
	return vocals
}

// DetectVerbalResponses finds speech-like short segments starting inside
// the response window after one name call.
func (c *Classifier) DetectVerbalResponses(samples []float64, rate int, events []SoundEvent, call NameCallEvent) []VerbalResponseEvent {
	var responses []VerbalResponseEvent
	for _, ev := range events {
		after := ev.Start - call.End
		if after <= 0 || after > c.cfg.ResponseWindow {
			continue
		}
		if ev.Duration < 0.2 || ev.Duration > 2.0 {
			continue
		}
		seg := slice(samples, rate, ev)
		if len(seg) == 0 || !c.speechLike(seg, rate) {
			continue
		}
		responses = append(responses, VerbalResponseEvent{
			SoundEvent:           ev,
			Confidence:           70,
			SecondsAfterNameCall: after,
		})
	}
	return responses
}

// DetectBabbling flags vocalizations starting inside the response window.
func (c *Classifier) DetectBabbling(vocals []VocalizationEvent, call NameCallEvent) []BabblingEvent {
	var hits []BabblingEvent
	for _, v := range vocals {
		after := v.Start - call.End
		if after <= 0 || after > c.cfg.ResponseWindow {
			continue
		}
		hits = append(hits, BabblingEvent{VocalizationEvent: v, SecondsAfterNameCall: after})
	}
	return hits
}

// DetectEcholalia compares all vocalization pairs by correlation
// similarity. Pairs shorter than the minimum sample count are skipped;
// longer slices are truncated to the shorter of the pair.
func (c *Classifier) DetectEcholalia(samples []float64, rate int, vocals []VocalizationEvent) EcholaliaSummary {
	summary := EcholaliaSummary{}
	for i := 0; i < len(vocals); i++ {
		a := slice(samples, rate, vocals[i].SoundEvent)
		if len(a) < c.cfg.EcholaliaMinSamples {
			continue
		}
		for j := i + 1; j < len(vocals); j++ {
			b := slice(samples, rate, vocals[j].SoundEvent)
			if len(b) < c.cfg.EcholaliaMinSamples {
				continue
			}
			n := len(a)
			if len(b) < n {
				n = len(b)
			}
			summary.SegmentsCompared++
			if correlationSimilarity(a[:n], b[:n]) > c.cfg.EcholaliaSimilarity {
				summary.SimilarPairCount++
			}
		}
	}
	summary.Detected = summary.SimilarPairCount > 0
	return summary
}
