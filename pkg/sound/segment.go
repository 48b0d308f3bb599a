package sound

import "math"

// envelope computes a short-time RMS energy envelope over the waveform.
// One value per hop; the final partial window is included.
func envelope(samples []float64, frameLength, hopLength int) []float64 {
	if len(samples) == 0 || frameLength <= 0 || hopLength <= 0 {
		return nil
	}
	n := (len(samples)-1)/hopLength + 1
	env := make([]float64, 0, n)
	for start := 0; start < len(samples); start += hopLength {
		end := start + frameLength
		if end > len(samples) {
			end = len(samples)
		}
		var sum float64
		for _, s := range samples[start:end] {
			sum += s * s
		}
		env = append(env, math.Sqrt(sum/float64(end-start)))
	}
	return env
}

// Segment converts the waveform into discrete sound events: maximal
// contiguous runs of the envelope above the speech threshold, filtered to
// the configured duration band. Single linear pass over the samples.
func Segment(samples []float64, rate int, cfg Config) []SoundEvent {
	if rate <= 0 {
		return nil
	}
	env := envelope(samples, cfg.FrameLength, cfg.HopLength)
	if len(env) == 0 {
		return nil
	}

	hop := float64(cfg.HopLength) / float64(rate)
	var events []SoundEvent

	runStart := -1
	var runSum float64
	flush := func(endFrame int) {
		if runStart < 0 {
			return
		}
		start := float64(runStart) * hop
		end := float64(endFrame) * hop
		dur := end - start
		if dur >= cfg.MinEventDur && dur <= cfg.MaxEventDur {
			events = append(events, SoundEvent{
				Start:     start,
				End:       end,
				Duration:  dur,
				Intensity: runSum / float64(endFrame-runStart),
			})
		}
		runStart = -1
		runSum = 0
	}

	for i, e := range env {
		if e > cfg.SpeechThreshold {
			if runStart < 0 {
				runStart = i
			}
			runSum += e
		} else {
			flush(i)
		}
	}
	flush(len(env))

	return events
}

// slice returns the sample span of an event, clamped to the waveform.
func slice(samples []float64, rate int, ev SoundEvent) []float64 {
	start := int(ev.Start * float64(rate))
	end := int(ev.End * float64(rate))
	if start < 0 {
		start = 0
	}
	if end > len(samples) {
		end = len(samples)
	}
	if start >= end {
		return nil
	}
	return samples[start:end]
}
