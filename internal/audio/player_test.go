package audio

import (
	"context"
	"errors"
	"testing"
	"time"
)

// TestPlayerConfig tests the player configuration validation.
func TestPlayerConfig(t *testing.T) {
	tests := []struct {
		name      string
		config    PlayerConfig
		expectErr bool
	}{
		{
			name:   "valid config 44100Hz",
			config: PlayerConfig{SampleRate: 44100, Channels: 1, BufferSize: 4096},
		},
		{
			name:   "valid config 48000Hz",
			config: PlayerConfig{SampleRate: 48000, Channels: 2, BufferSize: 8192},
		},
		{
			name:      "invalid sample rate",
			config:    PlayerConfig{SampleRate: 22050, Channels: 1, BufferSize: 4096},
			expectErr: true,
		},
		{
			name:      "invalid channels",
			config:    PlayerConfig{SampleRate: 44100, Channels: 3, BufferSize: 4096},
			expectErr: true,
		},
		{
			name:      "invalid buffer size",
			config:    PlayerConfig{SampleRate: 44100, Channels: 1, BufferSize: 0},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfig(tt.config)
			if tt.expectErr && err == nil {
				t.Errorf("validateConfig() expected error but got none")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("validateConfig() unexpected error: %v", err)
			}
		})
	}
}

// TestDefaultPlayerConfig tests the default configuration.
func TestDefaultPlayerConfig(t *testing.T) {
	config := DefaultPlayerConfig()
	if err := validateConfig(config); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

// TestPlayerPlay plays a very short clip when an audio device exists.
func TestPlayerPlay(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping audio device test in short mode")
	}

	player, err := NewPlayer(DefaultPlayerConfig())
	if err != nil {
		t.Skipf("Skipping test: cannot create audio player (no audio device?): %v", err)
	}

	if err := player.Play(context.Background(), nil); !errors.Is(err, ErrEmptyAudio) {
		t.Errorf("Play(nil) error = %v, want ErrEmptyAudio", err)
	}

	clip := sine(t, 440, 24000, 1, 50*time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := player.Play(ctx, clip); err != nil {
		t.Errorf("Play() error = %v", err)
	}
}
