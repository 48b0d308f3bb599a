package media

import (
	"encoding/binary"
	"fmt"
	"math"
)

// wav format codes we accept.
const (
	wavFormatPCM   = 1
	wavFormatFloat = 3
)

// DecodeWAV parses a RIFF/WAVE byte stream into float64 samples in [-1, 1]
// and the file's sample rate. PCM16 and IEEE float32 payloads are supported;
// multi-channel audio is mixed down to mono by averaging.
func DecodeWAV(data []byte) ([]float64, int, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, 0, fmt.Errorf("decode wav: not a RIFF/WAVE stream")
	}

	var (
		format     uint16
		channels   uint16
		rate       uint32
		bits       uint16
		haveFormat bool
	)

	pos := 12
	for pos+8 <= len(data) {
		id := string(data[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		body := pos + 8
		if size < 0 || body+size > len(data) {
			// Truncated chunk: use what we have for data, reject otherwise.
			size = len(data) - body
			if size <= 0 {
				break
			}
		}

		switch id {
		case "fmt ":
			if size < 16 {
				return nil, 0, fmt.Errorf("decode wav: fmt chunk too short")
			}
			format = binary.LittleEndian.Uint16(data[body:])
			channels = binary.LittleEndian.Uint16(data[body+2:])
			rate = binary.LittleEndian.Uint32(data[body+4:])
			bits = binary.LittleEndian.Uint16(data[body+14:])
			haveFormat = true
		case "data":
			if !haveFormat {
				return nil, 0, fmt.Errorf("decode wav: data chunk before fmt")
			}
			samples, err := decodeWAVData(data[body:body+size], format, channels, bits)
			if err != nil {
				return nil, 0, err
			}
			return samples, int(rate), nil
		}

		// Chunks are word-aligned.
		pos = body + size
		if size%2 == 1 {
			pos++
		}
	}
	return nil, 0, fmt.Errorf("decode wav: no data chunk")
}

func decodeWAVData(payload []byte, format, channels, bits uint16) ([]float64, error) {
	if channels == 0 {
		return nil, fmt.Errorf("decode wav: zero channels")
	}
	ch := int(channels)

	switch {
	case format == wavFormatPCM && bits == 16:
		frames := len(payload) / (2 * ch)
		samples := make([]float64, frames)
		for i := 0; i < frames; i++ {
			var sum float64
			for c := 0; c < ch; c++ {
				raw := int16(binary.LittleEndian.Uint16(payload[(i*ch+c)*2:]))
				sum += float64(raw) / 32768
			}
			samples[i] = clampSample(sum / float64(ch))
		}
		return samples, nil

	case format == wavFormatFloat && bits == 32:
		frames := len(payload) / (4 * ch)
		samples := make([]float64, frames)
		for i := 0; i < frames; i++ {
			var sum float64
			for c := 0; c < ch; c++ {
				bitsv := binary.LittleEndian.Uint32(payload[(i*ch+c)*4:])
				v := float64(math.Float32frombits(bitsv))
				if math.IsNaN(v) || math.IsInf(v, 0) {
					v = 0
				}
				sum += v
			}
			samples[i] = clampSample(sum / float64(ch))
		}
		return samples, nil
	}
	return nil, fmt.Errorf("decode wav: unsupported format %d/%d-bit", format, bits)
}

// Resample converts a waveform between sample rates using linear
// interpolation, adequate for speech-band analysis.
func Resample(samples []float64, fromRate, toRate int) []float64 {
	if fromRate == toRate || len(samples) == 0 || fromRate <= 0 || toRate <= 0 {
		return samples
	}

	ratio := float64(fromRate) / float64(toRate)
	newLen := int(float64(len(samples)) / ratio)
	if newLen == 0 {
		return []float64{}
	}

	result := make([]float64, newLen)
	for i := 0; i < newLen; i++ {
		srcPos := float64(i) * ratio
		srcIdx := int(srcPos)
		frac := srcPos - float64(srcIdx)

		if srcIdx >= len(samples)-1 {
			result[i] = samples[len(samples)-1]
		} else {
			s1 := samples[srcIdx]
			s2 := samples[srcIdx+1]
			result[i] = s1 + frac*(s2-s1)
		}
	}
	return result
}
