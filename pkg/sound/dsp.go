package sound

import (
	"math"
	"math/cmplx"
	"sort"
)

// fft computes an in-place iterative radix-2 FFT. The input length must be a
// power of two.
func fft(x []complex128) {
	n := len(x)
	if n <= 1 {
		return
	}
	// Bit-reversal permutation
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j |= bit
		if i < j {
			x[i], x[j] = x[j], x[i]
		}
	}
	for length := 2; length <= n; length <<= 1 {
		ang := -2 * math.Pi / float64(length)
		wl := cmplx.Exp(complex(0, ang))
		for i := 0; i < n; i += length {
			w := complex(1, 0)
			for j := 0; j < length/2; j++ {
				u := x[i+j]
				v := x[i+j+length/2] * w
				x[i+j] = u + v
				x[i+j+length/2] = u - v
				w *= wl
			}
		}
	}
}

// nextPow2 rounds n up to a power of two.
func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// spectrum returns the magnitude spectrum of a Hann-windowed frame, padded
// to a power of two. Only the non-negative frequency half is returned.
func spectrum(frame []float64) []float64 {
	n := nextPow2(len(frame))
	buf := make([]complex128, n)
	for i, s := range frame {
		// Hann window
		w := 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(len(frame)-1))
		if len(frame) == 1 {
			w = 1
		}
		buf[i] = complex(s*w, 0)
	}
	fft(buf)
	mags := make([]float64, n/2+1)
	for i := range mags {
		mags[i] = cmplx.Abs(buf[i])
	}
	return mags
}

// stft computes magnitude spectra over overlapping frames.
func stft(samples []float64, frameLength, hopLength int) [][]float64 {
	if len(samples) == 0 || frameLength <= 0 || hopLength <= 0 {
		return nil
	}
	if len(samples) < frameLength {
		return [][]float64{spectrum(samples)}
	}
	var frames [][]float64
	for start := 0; start+frameLength <= len(samples); start += hopLength {
		frames = append(frames, spectrum(samples[start:start+frameLength]))
	}
	return frames
}

// binFreq converts a spectrum bin index to Hz for a frame padded to fftSize.
func binFreq(bin, fftSize, rate int) float64 {
	return float64(bin) * float64(rate) / float64(fftSize)
}

// bandEnergyRatio is the fraction of magnitude energy inside [low, high] Hz
// across the whole short-time spectrum.
func bandEnergyRatio(frames [][]float64, rate int, low, high float64) float64 {
	var band, total float64
	for _, mags := range frames {
		fftSize := (len(mags) - 1) * 2
		if fftSize <= 0 {
			continue
		}
		for bin, m := range mags {
			e := m * m
			total += e
			f := binFreq(bin, fftSize, rate)
			if f >= low && f <= high {
				band += e
			}
		}
	}
	if total <= 0 {
		return 0
	}
	return band / total
}

// autocorrPitch estimates the fundamental frequency of one frame via
// normalized autocorrelation restricted to [low, high] Hz. Returns 0 for
// unvoiced frames.
func autocorrPitch(frame []float64, rate int, low, high float64) float64 {
	if len(frame) == 0 || low <= 0 || high <= low {
		return 0
	}
	minLag := int(float64(rate) / high)
	maxLag := int(float64(rate) / low)
	if minLag < 1 {
		minLag = 1
	}
	if maxLag >= len(frame) {
		maxLag = len(frame) - 1
	}
	if minLag > maxLag {
		return 0
	}

	var r0 float64
	for _, s := range frame {
		r0 += s * s
	}
	if r0 <= 0 {
		return 0
	}

	bestLag, bestCorr := 0, 0.0
	for lag := minLag; lag <= maxLag; lag++ {
		var r float64
		for i := 0; i+lag < len(frame); i++ {
			r += frame[i] * frame[i+lag]
		}
		if r > bestCorr {
			bestCorr = r
			bestLag = lag
		}
	}
	// Voicing gate: the periodic peak must carry a meaningful share of the
	// frame energy, otherwise the frame is noise.
	if bestLag == 0 || bestCorr/r0 < 0.3 {
		return 0
	}
	return float64(rate) / float64(bestLag)
}

// spectralCentroid is the magnitude-weighted mean frequency of one frame.
func spectralCentroid(mags []float64, rate int) float64 {
	fftSize := (len(mags) - 1) * 2
	if fftSize <= 0 {
		return 0
	}
	var num, den float64
	for bin, m := range mags {
		num += binFreq(bin, fftSize, rate) * m
		den += m
	}
	if den <= 0 {
		return 0
	}
	return num / den
}

// median returns the median of a slice; 0 for empty input.
func median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	s := append([]float64(nil), xs...)
	sort.Float64s(s)
	mid := len(s) / 2
	if len(s)%2 == 1 {
		return s[mid]
	}
	return (s[mid-1] + s[mid]) / 2
}

// harmonicRatio estimates the harmonic share of segment energy by a
// median-filtering harmonic/percussive split of the short-time magnitudes:
// bins enhanced along time are harmonic, bins enhanced along frequency are
// percussive.
func harmonicRatio(frames [][]float64, medianWidth int) float64 {
	if len(frames) == 0 {
		return 0
	}
	if medianWidth < 3 {
		medianWidth = 9
	}
	half := medianWidth / 2
	nBins := len(frames[0])

	var harmonic, total float64
	win := make([]float64, 0, medianWidth)
	for t, mags := range frames {
		for f := 0; f < nBins && f < len(mags); f++ {
			e := mags[f] * mags[f]
			total += e

			// Median across time at this bin (harmonic enhancement)
			win = win[:0]
			for dt := -half; dt <= half; dt++ {
				if t+dt >= 0 && t+dt < len(frames) && f < len(frames[t+dt]) {
					win = append(win, frames[t+dt][f])
				}
			}
			h := median(win)

			// Median across frequency at this frame (percussive enhancement)
			win = win[:0]
			for df := -half; df <= half; df++ {
				if f+df >= 0 && f+df < len(mags) {
					win = append(win, mags[f+df])
				}
			}
			p := median(win)

			if h > p {
				harmonic += e
			}
		}
	}
	if total <= 0 {
		return 0
	}
	return harmonic / total
}

// correlationSimilarity maps the Pearson correlation of two equal-length
// sample slices into [0,1] via (corr+1)/2. Degenerate inputs (empty,
// constant, NaN) report 0.
func correlationSimilarity(a, b []float64) float64 {
	n := len(a)
	if n == 0 || n != len(b) {
		return 0
	}
	var meanA, meanB float64
	for i := 0; i < n; i++ {
		meanA += a[i]
		meanB += b[i]
	}
	meanA /= float64(n)
	meanB /= float64(n)

	var cov, varA, varB float64
	for i := 0; i < n; i++ {
		da := a[i] - meanA
		db := b[i] - meanB
		cov += da * db
		varA += da * da
		varB += db * db
	}
	if varA <= 0 || varB <= 0 {
		return 0
	}
	corr := cov / (math.Sqrt(varA) * math.Sqrt(varB))
	if math.IsNaN(corr) || math.IsInf(corr, 0) {
		return 0
	}
	// Rounding guard: a segment correlated with itself must report exactly 1.
	if corr > 1-1e-9 {
		corr = 1
	} else if corr < -1 {
		corr = -1
	}
	return (corr + 1) / 2
}
