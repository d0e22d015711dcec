package tts

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dgnsrekt/audiooverview/internal/ttypes"
)

// DefaultModel is the speech model requested from the OpenAI endpoint.
const DefaultModel = "tts-1"

// Config contains all narration configuration options.
type Config struct {
	// Global settings
	Engine ttypes.EngineType `yaml:"engine" env:"AUDIOOVERVIEW_ENGINE" envDefault:"openai"`
	Codec  ttypes.CodecType  `yaml:"codec" env:"AUDIOOVERVIEW_CODEC" envDefault:"native"`
	Output string            `yaml:"output" env:"AUDIOOVERVIEW_OUTPUT" envDefault:"script_output.mp3"`

	// Engine and codec specific configurations
	OpenAI OpenAIConfig `yaml:"openai"`
	Tone   ToneConfig   `yaml:"tone"`
	FFmpeg FFmpegConfig `yaml:"ffmpeg"`
	MP3    MP3Config    `yaml:"mp3"`
}

// OpenAIConfig contains OpenAI speech endpoint settings.
type OpenAIConfig struct {
	APIKey            string        `yaml:"api_key" env:"OPENAI_API_KEY"`
	BaseURL           string        `yaml:"base_url" env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	Model             string        `yaml:"model" env:"AUDIOOVERVIEW_OPENAI_MODEL" envDefault:"tts-1"`
	Speed             float64       `yaml:"speed" env:"AUDIOOVERVIEW_OPENAI_SPEED" envDefault:"1.0"`
	Timeout           time.Duration `yaml:"timeout" env:"AUDIOOVERVIEW_OPENAI_TIMEOUT" envDefault:"90s"`
	RequestsPerMinute int           `yaml:"requests_per_minute" env:"AUDIOOVERVIEW_OPENAI_REQUESTS_PER_MINUTE" envDefault:"50"`
}

// ToneConfig contains settings for the offline tone engine.
type ToneConfig struct {
	SampleRate     int           `yaml:"sample_rate" env:"AUDIOOVERVIEW_TONE_SAMPLE_RATE" envDefault:"24000"`
	WordsPerMinute int           `yaml:"words_per_minute" env:"AUDIOOVERVIEW_TONE_WORDS_PER_MINUTE" envDefault:"150"`
	MinDuration    time.Duration `yaml:"min_duration" env:"AUDIOOVERVIEW_TONE_MIN_DURATION" envDefault:"300ms"`
}

// FFmpegConfig contains settings for the ffmpeg codec backend.
type FFmpegConfig struct {
	Binary  string        `yaml:"binary" env:"AUDIOOVERVIEW_FFMPEG_BINARY" envDefault:"ffmpeg"`
	Timeout time.Duration `yaml:"timeout" env:"AUDIOOVERVIEW_FFMPEG_TIMEOUT" envDefault:"30s"`
}

// MP3Config contains settings for the exported MP3.
type MP3Config struct {
	Bitrate int `yaml:"bitrate" env:"AUDIOOVERVIEW_MP3_BITRATE" envDefault:"128"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Engine: ttypes.EngineOpenAI,
		Codec:  ttypes.CodecNative,
		Output: "script_output.mp3",
		OpenAI: DefaultOpenAIConfig(),
		Tone:   DefaultToneConfig(),
		FFmpeg: DefaultFFmpegConfig(),
		MP3:    MP3Config{Bitrate: 128},
	}
}

// DefaultOpenAIConfig returns default OpenAI configuration.
func DefaultOpenAIConfig() OpenAIConfig {
	return OpenAIConfig{
		BaseURL:           "https://api.openai.com/v1",
		Model:             DefaultModel,
		Speed:             1.0,
		Timeout:           90 * time.Second,
		RequestsPerMinute: 50,
	}
}

// DefaultToneConfig returns default tone engine configuration.
func DefaultToneConfig() ToneConfig {
	return ToneConfig{
		SampleRate:     24000,
		WordsPerMinute: 150,
		MinDuration:    300 * time.Millisecond,
	}
}

// DefaultFFmpegConfig returns default ffmpeg configuration.
func DefaultFFmpegConfig() FFmpegConfig {
	return FFmpegConfig{
		Binary:  "ffmpeg",
		Timeout: 30 * time.Second,
	}
}

// Validate checks the configuration for values the engines cannot use.
func (c Config) Validate() error {
	switch c.Codec {
	case ttypes.CodecNative, ttypes.CodecFFmpeg:
	default:
		return fmt.Errorf("codec must be %q or %q, got %q", ttypes.CodecNative, ttypes.CodecFFmpeg, c.Codec)
	}

	if strings.TrimSpace(c.Output) == "" {
		return fmt.Errorf("output path cannot be empty")
	}

	if c.OpenAI.Speed < 0.25 || c.OpenAI.Speed > 4.0 {
		return fmt.Errorf("openai speed must be between 0.25 and 4.0, got %.2f", c.OpenAI.Speed)
	}
	if c.OpenAI.Timeout <= 0 {
		return fmt.Errorf("openai timeout must be positive, got %s", c.OpenAI.Timeout)
	}
	if c.OpenAI.RequestsPerMinute < 1 {
		return fmt.Errorf("openai requests_per_minute must be at least 1, got %d", c.OpenAI.RequestsPerMinute)
	}
	if c.OpenAI.Model == "" {
		return fmt.Errorf("openai model cannot be empty")
	}
	if u, err := url.Parse(c.OpenAI.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("openai base_url is not a valid URL: %q", c.OpenAI.BaseURL)
	}

	if c.Tone.SampleRate < 8000 || c.Tone.SampleRate > 48000 {
		return fmt.Errorf("tone sample_rate must be between 8000 and 48000 Hz, got %d", c.Tone.SampleRate)
	}
	if c.Tone.WordsPerMinute < 1 {
		return fmt.Errorf("tone words_per_minute must be positive, got %d", c.Tone.WordsPerMinute)
	}

	if c.FFmpeg.Binary == "" {
		return fmt.Errorf("ffmpeg binary cannot be empty")
	}
	if c.FFmpeg.Timeout <= 0 {
		return fmt.Errorf("ffmpeg timeout must be positive, got %s", c.FFmpeg.Timeout)
	}

	switch c.MP3.Bitrate {
	case 64, 96, 128, 160, 192, 256, 320:
	default:
		return fmt.Errorf("mp3 bitrate must be one of 64, 96, 128, 160, 192, 256, 320 kbps, got %d", c.MP3.Bitrate)
	}

	return nil
}
