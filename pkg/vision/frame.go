// Package vision implements per-frame behavioral detectors for response-to-name
// screening: a motion/response detector and a secondary behavior tracker.
//
// Detectors operate on plain grayscale frames so they can be driven by any
// decoder and unit-tested with synthetic pixel data. Each detector owns its
// own bounded frame history and mutable state; instances must not be shared
// across concurrent analyses.
package vision

import "math"

// Frame is a single grayscale video frame sampled from the source,
// stamped with seconds from the start of the video track.
type Frame struct {
	Pix  []uint8
	W, H int
	Time float64
}

// Valid reports whether the frame carries a usable pixel buffer.
func (f Frame) Valid() bool {
	return f.W > 0 && f.H > 0 && len(f.Pix) == f.W*f.H
}

// region is a rectangular pixel window in frame coordinates.
type region struct {
	x0, y0, x1, y1 int // half-open: [x0,x1) x [y0,y1)
}

func fullFrame(f Frame) region        { return region{0, 0, f.W, f.H} }
func upperHalf(f Frame) region        { return region{0, 0, f.W, f.H / 2} }
func upperThird(f Frame) region       { return region{0, 0, f.W, f.H / 3} }
func lowerTwoThirds(f Frame) region   { return region{0, f.H / 3, f.W, f.H} }
func leftQuarter(f Frame) region      { return region{0, 0, f.W / 4, f.H} }
func rightQuarter(f Frame) region     { return region{f.W * 3 / 4, 0, f.W, f.H} }
func centerHalf(f Frame) region       { return region{f.W / 4, 0, f.W * 3 / 4, f.H} }
func leftHalfLower(f Frame) region    { return region{0, f.H / 3, f.W / 2, f.H} }
func rightHalfLower(f Frame) region   { return region{f.W / 2, f.H / 3, f.W, f.H} }
func upperCenterThird(f Frame) region { return region{f.W / 3, 0, f.W * 2 / 3, f.H / 2} }
func upperLeftThird(f Frame) region   { return region{0, 0, f.W / 3, f.H / 2} }
func upperRightThird(f Frame) region  { return region{f.W * 2 / 3, 0, f.W, f.H / 2} }
func upperFace(f Frame) region        { return region{0, 0, f.W, f.H / 4} }
func lowerFace(f Frame) region        { return region{0, f.H / 4, f.W, f.H / 2} }

func (r region) empty() bool {
	return r.x1 <= r.x0 || r.y1 <= r.y0
}

// absDiff returns the per-pixel absolute difference between two frames of
// identical geometry. Mismatched frames yield an empty result.
func absDiff(a, b Frame) Frame {
	if !a.Valid() || !b.Valid() || a.W != b.W || a.H != b.H {
		return Frame{}
	}
	pix := make([]uint8, len(a.Pix))
	for i := range a.Pix {
		d := int(a.Pix[i]) - int(b.Pix[i])
		if d < 0 {
			d = -d
		}
		pix[i] = uint8(d)
	}
	return Frame{Pix: pix, W: a.W, H: a.H, Time: a.Time}
}

// regionStats computes mean and standard deviation over a frame region.
// Empty or out-of-range regions report zero signal.
func regionStats(f Frame, r region) (mean, std float64) {
	if !f.Valid() || r.empty() {
		return 0, 0
	}
	if r.x0 < 0 || r.y0 < 0 || r.x1 > f.W || r.y1 > f.H {
		return 0, 0
	}
	var sum, sumSq float64
	n := float64((r.x1 - r.x0) * (r.y1 - r.y0))
	for y := r.y0; y < r.y1; y++ {
		row := f.Pix[y*f.W : (y+1)*f.W]
		for x := r.x0; x < r.x1; x++ {
			v := float64(row[x])
			sum += v
			sumSq += v * v
		}
	}
	mean = sum / n
	variance := sumSq/n - mean*mean
	if variance < 0 {
		variance = 0
	}
	return mean, math.Sqrt(variance)
}

// regionVariance is regionStats squared, kept separate for readability at
// call sites that reason in variance space.
func regionVariance(f Frame, r region) float64 {
	_, std := regionStats(f, r)
	return std * std
}

// edgeDensity estimates the fraction of edge pixels in a frame using a
// first-order gradient magnitude against a fixed threshold. Compression
// noise rarely produces coherent edges, so this discriminates structured
// movement from block noise.
func edgeDensity(f Frame, gradThreshold int) float64 {
	if !f.Valid() || f.W < 2 || f.H < 2 {
		return 0
	}
	edges := 0
	total := (f.W - 1) * (f.H - 1)
	for y := 0; y < f.H-1; y++ {
		row := f.Pix[y*f.W:]
		next := f.Pix[(y+1)*f.W:]
		for x := 0; x < f.W-1; x++ {
			gx := int(row[x+1]) - int(row[x])
			if gx < 0 {
				gx = -gx
			}
			gy := int(next[x]) - int(row[x])
			if gy < 0 {
				gy = -gy
			}
			if gx+gy > gradThreshold {
				edges++
			}
		}
	}
	return float64(edges) / float64(total)
}
