package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Player plays clips on the default audio device using oto.
type Player struct {
	// OTO context - initialized once and reused
	context *oto.Context

	sampleRate int
	channels   int

	mu sync.Mutex
}

// PlayerConfig contains configuration for the audio player.
type PlayerConfig struct {
	SampleRate int // 44100 or 48000 Hz only
	Channels   int // 1 = mono, 2 = stereo
	BufferSize int // Buffer size in bytes
}

// DefaultPlayerConfig returns the default player configuration.
func DefaultPlayerConfig() PlayerConfig {
	return PlayerConfig{
		SampleRate: 44100, // CD quality
		Channels:   2,     // go-mp3 always decodes to stereo
		BufferSize: 8192,
	}
}

// oto allows a single context per process.
var (
	otoOnce sync.Once
	otoCtx  *oto.Context
	otoErr  error
)

// NewPlayer opens the audio device with the specified configuration.
func NewPlayer(config PlayerConfig) (*Player, error) {
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   config.SampleRate,
			ChannelCount: config.Channels,
			Format:       oto.FormatSignedInt16LE,
			BufferSize:   time.Duration(config.BufferSize) * time.Second / time.Duration(config.SampleRate*config.Channels*2),
		}

		var ready chan struct{}
		otoCtx, ready, otoErr = oto.NewContext(op)
		if otoErr == nil {
			<-ready
		}
	})
	if otoErr != nil {
		return nil, fmt.Errorf("failed to create oto context: %w", otoErr)
	}

	return &Player{
		context:    otoCtx,
		sampleRate: config.SampleRate,
		channels:   config.Channels,
	}, nil
}

// validateConfig validates the player configuration.
func validateConfig(config PlayerConfig) error {
	// OTO only supports specific sample rates reliably
	if config.SampleRate != 44100 && config.SampleRate != 48000 {
		return fmt.Errorf("sample rate must be 44100 or 48000 Hz, got %d", config.SampleRate)
	}

	if config.Channels != 1 && config.Channels != 2 {
		return fmt.Errorf("channels must be 1 (mono) or 2 (stereo), got %d", config.Channels)
	}

	if config.BufferSize <= 0 {
		return errors.New("buffer size must be positive")
	}

	return nil
}

// Play plays clip to the end, or until ctx is done. The clip is converted to
// the device format first.
func (p *Player) Play(ctx context.Context, clip *Clip) error {
	if clip == nil || len(clip.Samples) == 0 {
		return ErrEmptyAudio
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	c, err := clip.Convert(p.sampleRate, p.channels)
	if err != nil {
		return fmt.Errorf("failed to convert clip for playback: %w", err)
	}

	// The reader owns the PCM bytes for the life of the player.
	player := p.context.NewPlayer(bytes.NewReader(c.PCM()))
	defer player.Close()
	player.Play()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()
			return ctx.Err()
		case <-ticker.C:
		}
	}

	return player.Err()
}
