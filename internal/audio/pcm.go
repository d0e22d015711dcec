package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// PCMFormat represents PCM audio format parameters
type PCMFormat struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

// BytesPerFrame returns the number of bytes for one sample on every channel
func (f PCMFormat) BytesPerFrame() int {
	return f.BitDepth / 8 * f.Channels
}

// Validate checks that the format can be handled by this package.
func (f PCMFormat) Validate() error {
	if f.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", f.SampleRate)
	}
	if f.Channels != 1 && f.Channels != 2 {
		return fmt.Errorf("channels must be 1 (mono) or 2 (stereo), got %d", f.Channels)
	}
	if f.BitDepth != 16 {
		return fmt.Errorf("bit depth must be 16, got %d", f.BitDepth)
	}
	return nil
}

// DecodePCM16LE converts signed 16-bit little-endian bytes to samples.
func DecodePCM16LE(data []byte) ([]int16, error) {
	if len(data)%2 != 0 {
		return nil, fmt.Errorf("PCM data length %d is not aligned to 2-byte samples", len(data))
	}
	samples := make([]int16, len(data)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(data[2*i:]))
	}
	return samples, nil
}

// EncodePCM16LE converts samples to signed 16-bit little-endian bytes.
func EncodePCM16LE(samples []int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(s))
	}
	return out
}

// Resample performs linear resampling of interleaved samples.
// This is a basic implementation suitable for speech.
func Resample(samples []int16, channels, fromRate, toRate int) ([]int16, error) {
	if channels <= 0 {
		return nil, errors.New("channels must be positive")
	}
	if fromRate <= 0 || toRate <= 0 {
		return nil, fmt.Errorf("invalid sample rates %d -> %d", fromRate, toRate)
	}
	if fromRate == toRate || len(samples) == 0 {
		out := make([]int16, len(samples))
		copy(out, samples)
		return out, nil
	}

	inFrames := len(samples) / channels
	ratio := float64(toRate) / float64(fromRate)
	outFrames := int(float64(inFrames) * ratio)
	out := make([]int16, outFrames*channels)

	for i := 0; i < outFrames; i++ {
		pos := float64(i) / ratio
		idx := int(pos)
		frac := pos - float64(idx)

		for ch := 0; ch < channels; ch++ {
			if idx >= inFrames-1 {
				// Use last sample
				out[i*channels+ch] = samples[(inFrames-1)*channels+ch]
				continue
			}
			s1 := float64(samples[idx*channels+ch])
			s2 := float64(samples[(idx+1)*channels+ch])
			out[i*channels+ch] = int16(s1*(1-frac) + s2*frac)
		}
	}

	return out, nil
}

// Remix converts interleaved samples between mono and stereo. Stereo is
// folded to mono by averaging; mono is widened by duplicating.
func Remix(samples []int16, fromChannels, toChannels int) ([]int16, error) {
	switch {
	case fromChannels == toChannels:
		out := make([]int16, len(samples))
		copy(out, samples)
		return out, nil
	case fromChannels == 1 && toChannels == 2:
		out := make([]int16, len(samples)*2)
		for i, s := range samples {
			out[2*i] = s
			out[2*i+1] = s
		}
		return out, nil
	case fromChannels == 2 && toChannels == 1:
		out := make([]int16, len(samples)/2)
		for i := range out {
			out[i] = int16((int32(samples[2*i]) + int32(samples[2*i+1])) / 2)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("channel conversion %d -> %d not supported", fromChannels, toChannels)
	}
}
