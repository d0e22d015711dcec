package audio

import (
	"bytes"
	"context"
	"fmt"
	"io"

	shine "github.com/braheezy/shine-mp3/pkg/mp3"
	"github.com/hajimehoshi/go-mp3"
)

// shineRates lists the sample rates the MP3 encoder accepts.
var shineRates = []int{8000, 11025, 12000, 16000, 22050, 24000, 32000, 44100, 48000}

// samplesPerFrame is the number of frames per channel in one encoder pass.
const samplesPerFrame = 1152

// NativeCodec decodes and encodes MP3 in-process without external tools.
type NativeCodec struct{}

// NewNativeCodec creates a pure Go MP3 codec.
func NewNativeCodec() *NativeCodec {
	return &NativeCodec{}
}

// Name identifies the backend.
func (n *NativeCodec) Name() string { return "native" }

// Decode reads an MP3 stream. The decoder always produces 16-bit stereo at
// the stream's own sample rate.
func (n *NativeCodec) Decode(_ context.Context, data []byte) (*Clip, error) {
	if len(data) == 0 {
		return nil, ErrEmptyAudio
	}

	d, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("mp3 decode failed: %w", err)
	}

	pcm, err := io.ReadAll(d)
	if err != nil {
		return nil, fmt.Errorf("mp3 decode failed: %w", err)
	}
	if len(pcm) == 0 {
		return nil, fmt.Errorf("mp3 stream has no audio frames")
	}

	// go-mp3 output is always two channels
	return ClipFromPCM(pcm[:len(pcm)-len(pcm)%4], d.SampleRate(), 2)
}

// Encode writes clip as MP3. Clips at sample rates the encoder cannot take
// are resampled to 44.1 kHz first. The encoder consumes interleaved stereo
// a whole frame at a time, so mono is upmixed and the tail is zero-padded.
func (n *NativeCodec) Encode(_ context.Context, clip *Clip) ([]byte, error) {
	if clip == nil || len(clip.Samples) == 0 {
		return nil, ErrEmptyAudio
	}

	rate := clip.SampleRate
	if !supportedRate(rate) {
		rate = 44100
	}
	c, err := clip.Convert(rate, 2)
	if err != nil {
		return nil, fmt.Errorf("mp3 encode failed: %w", err)
	}

	var buf bytes.Buffer
	enc := shine.NewEncoder(c.SampleRate, c.Channels)
	if err := enc.Write(&buf, padFrames(c.Samples, samplesPerFrame*c.Channels)); err != nil {
		return nil, fmt.Errorf("mp3 encode failed: %w", err)
	}
	return buf.Bytes(), nil
}

// padFrames returns samples extended with silence to a multiple of size.
func padFrames(samples []int16, size int) []int16 {
	rem := len(samples) % size
	if rem == 0 {
		return samples
	}
	padded := make([]int16, len(samples)+size-rem)
	copy(padded, samples)
	return padded
}

func supportedRate(rate int) bool {
	for _, r := range shineRates {
		if r == rate {
			return true
		}
	}
	return false
}

var _ Codec = (*NativeCodec)(nil)
