package media

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/kidsense/go-rtn/internal/log"
	"github.com/kidsense/go-rtn/pkg/vision"
)

// VideoReader decodes a video container and yields grayscale analysis
// frames. OpenCV handles whatever containers and codecs the host build
// supports (MP4/AVI/MOV/MKV/WebM and friends).
type VideoReader struct {
	cap  *gocv.VideoCapture
	path string
	fps  float64
}

// OpenVideo opens a container file for frame sampling.
func OpenVideo(path string) (*VideoReader, error) {
	cap, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("open video %s: %w", path, err)
	}
	if !cap.IsOpened() {
		cap.Close()
		return nil, fmt.Errorf("open video %s: no decodable stream", path)
	}
	fps := cap.Get(gocv.VideoCaptureFPS)
	if fps <= 0 {
		// Some containers omit the rate; assume a common default so
		// timestamps stay sane.
		fps = 30
	}
	return &VideoReader{cap: cap, path: path, fps: fps}, nil
}

// FPS returns the source frame rate.
func (r *VideoReader) FPS() float64 {
	return r.fps
}

// Duration returns the container duration in seconds, 0 when unknown.
func (r *VideoReader) Duration() float64 {
	frames := r.cap.Get(gocv.VideoCaptureFrameCount)
	if frames <= 0 {
		return 0
	}
	return frames / r.fps
}

// SampleFrames decodes the stream start to finish, converting roughly
// targetFPS frames per second to grayscale working frames and handing each
// to fn. A frame that fails conversion is skipped; decode simply ends at
// stream end.
func (r *VideoReader) SampleFrames(cfg Config, fn func(vision.Frame)) error {
	stride := int(r.fps/cfg.TargetFPS + 0.5)
	if stride < 1 {
		stride = 1
	}

	buf := gocv.NewMat()
	defer buf.Close()
	gray := gocv.NewMat()
	defer gray.Close()
	small := gocv.NewMat()
	defer small.Close()

	idx := 0
	sampled := 0
	for r.cap.Read(&buf) {
		if buf.Empty() || idx%stride != 0 {
			idx++
			continue
		}
		ts := float64(idx) / r.fps

		gocv.CvtColor(buf, &gray, gocv.ColorBGRToGray)
		w := cfg.WorkingWidth
		if w <= 0 || gray.Cols() <= 0 {
			idx++
			continue
		}
		h := gray.Rows() * w / gray.Cols()
		if h <= 0 {
			idx++
			continue
		}
		gocv.Resize(gray, &small, image.Pt(w, h), 0, 0, gocv.InterpolationArea)

		pix := small.ToBytes()
		if len(pix) != w*h {
			idx++
			continue
		}
		frame := vision.Frame{
			Pix:  append([]uint8(nil), pix...),
			W:    w,
			H:    h,
			Time: ts,
		}
		fn(frame)
		sampled++
		idx++
	}

	log.Debug("frame sampling complete", "video", r.path, "decoded", idx, "sampled", sampled)
	if idx == 0 {
		return fmt.Errorf("decode video %s: no frames", r.path)
	}
	return nil
}

// Close releases the underlying capture.
func (r *VideoReader) Close() error {
	return r.cap.Close()
}
