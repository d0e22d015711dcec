package audio

import (
	"errors"
	"fmt"
	"time"
)

// Clip is decoded audio held in memory as interleaved signed 16-bit samples.
// Only Extend mutates a clip, and only the receiver.
type Clip struct {
	Samples    []int16
	SampleRate int
	Channels   int
}

// NewClip validates the format and wraps samples in a Clip.
func NewClip(samples []int16, sampleRate, channels int) (*Clip, error) {
	f := PCMFormat{SampleRate: sampleRate, Channels: channels, BitDepth: 16}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if len(samples)%channels != 0 {
		return nil, fmt.Errorf("%d samples do not divide into %d channels", len(samples), channels)
	}
	return &Clip{Samples: samples, SampleRate: sampleRate, Channels: channels}, nil
}

// ClipFromPCM builds a clip from signed 16-bit little-endian bytes.
func ClipFromPCM(data []byte, sampleRate, channels int) (*Clip, error) {
	samples, err := DecodePCM16LE(data)
	if err != nil {
		return nil, err
	}
	return NewClip(samples, sampleRate, channels)
}

// Format returns the PCM format of the clip.
func (c *Clip) Format() PCMFormat {
	return PCMFormat{SampleRate: c.SampleRate, Channels: c.Channels, BitDepth: 16}
}

// Frames returns the number of sample frames.
func (c *Clip) Frames() int {
	if c.Channels == 0 {
		return 0
	}
	return len(c.Samples) / c.Channels
}

// Duration returns the playing time of the clip.
func (c *Clip) Duration() time.Duration {
	if c.SampleRate == 0 {
		return 0
	}
	return time.Duration(c.Frames()) * time.Second / time.Duration(c.SampleRate)
}

// PCM returns the samples as signed 16-bit little-endian bytes.
func (c *Clip) PCM() []byte {
	return EncodePCM16LE(c.Samples)
}

// Convert returns the clip in another sample rate and channel layout.
func (c *Clip) Convert(sampleRate, channels int) (*Clip, error) {
	if c.SampleRate == sampleRate && c.Channels == channels {
		return c, nil
	}
	samples, err := Remix(c.Samples, c.Channels, channels)
	if err != nil {
		return nil, err
	}
	samples, err = Resample(samples, channels, c.SampleRate, sampleRate)
	if err != nil {
		return nil, err
	}
	return NewClip(samples, sampleRate, channels)
}

// Clone returns a copy of c that shares no samples with it.
func (c *Clip) Clone() *Clip {
	samples := make([]int16, len(c.Samples))
	copy(samples, c.Samples)
	return &Clip{Samples: samples, SampleRate: c.SampleRate, Channels: c.Channels}
}

// Extend appends next to c in place. next is converted to c's sample rate
// and channel layout first, so clips from different sources can be joined
// sample by sample. c's buffer grows like a slice, so c must own its
// samples; use Clone on a clip that may be shared.
func (c *Clip) Extend(next *Clip) error {
	if next == nil {
		return errors.New("cannot append nil clip")
	}
	conv, err := next.Convert(c.SampleRate, c.Channels)
	if err != nil {
		return fmt.Errorf("unable to match clip format: %w", err)
	}
	c.Samples = append(c.Samples, conv.Samples...)
	return nil
}
