package tts

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/dgnsrekt/audiooverview/internal/ttypes"
	"github.com/spf13/viper"
)

// LoadConfig builds the configuration from defaults, the environment and
// finally the viper registry (config file and bound flags), in that order of
// increasing precedence.
func LoadConfig(v *viper.Viper) (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return cfg, fmt.Errorf("error parsing environment: %w", err)
	}
	if v == nil {
		v = viper.GetViper()
	}
	applyViper(v, &cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// applyViper overlays any keys set in v onto cfg.
func applyViper(v *viper.Viper, cfg *Config) {
	if v.IsSet("engine") && v.GetString("engine") != "" {
		cfg.Engine = ttypes.ParseEngineType(v.GetString("engine"))
	}
	if v.IsSet("codec") && v.GetString("codec") != "" {
		cfg.Codec = ttypes.CodecType(v.GetString("codec"))
	}
	if v.IsSet("output") && v.GetString("output") != "" {
		cfg.Output = v.GetString("output")
	}

	// OpenAI settings
	if v.IsSet("openai.api_key") && v.GetString("openai.api_key") != "" {
		cfg.OpenAI.APIKey = v.GetString("openai.api_key")
	}
	if v.IsSet("openai.base_url") {
		cfg.OpenAI.BaseURL = v.GetString("openai.base_url")
	}
	if v.IsSet("openai.model") {
		cfg.OpenAI.Model = v.GetString("openai.model")
	}
	if v.IsSet("openai.speed") {
		cfg.OpenAI.Speed = v.GetFloat64("openai.speed")
	}
	if v.IsSet("openai.timeout") {
		cfg.OpenAI.Timeout = v.GetDuration("openai.timeout")
	}
	if v.IsSet("openai.requests_per_minute") {
		cfg.OpenAI.RequestsPerMinute = v.GetInt("openai.requests_per_minute")
	}

	// Tone settings
	if v.IsSet("tone.sample_rate") {
		cfg.Tone.SampleRate = v.GetInt("tone.sample_rate")
	}
	if v.IsSet("tone.words_per_minute") {
		cfg.Tone.WordsPerMinute = v.GetInt("tone.words_per_minute")
	}
	if v.IsSet("tone.min_duration") {
		cfg.Tone.MinDuration = v.GetDuration("tone.min_duration")
	}

	// Codec settings
	if v.IsSet("ffmpeg.binary") {
		cfg.FFmpeg.Binary = v.GetString("ffmpeg.binary")
	}
	if v.IsSet("ffmpeg.timeout") {
		cfg.FFmpeg.Timeout = v.GetDuration("ffmpeg.timeout")
	}
	if v.IsSet("mp3.bitrate") {
		cfg.MP3.Bitrate = v.GetInt("mp3.bitrate")
	}
}
