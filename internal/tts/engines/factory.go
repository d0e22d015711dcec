package engines

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/audiooverview/internal/audio"
	"github.com/dgnsrekt/audiooverview/internal/tts"
	"github.com/dgnsrekt/audiooverview/internal/ttypes"
)

// New creates the engine selected by engineType from config. The codec is
// only used by engines that render audio themselves.
func New(engineType ttypes.EngineType, config tts.Config, codec audio.Codec) (tts.Synthesizer, error) {
	log.Info("TTS engine selected", "engine", engineType)

	switch engineType {
	case ttypes.EngineOpenAI:
		return NewOpenAIEngine(OpenAIConfig{
			APIKey:            config.OpenAI.APIKey,
			BaseURL:           config.OpenAI.BaseURL,
			Model:             config.OpenAI.Model,
			Speed:             config.OpenAI.Speed,
			Timeout:           config.OpenAI.Timeout,
			RequestsPerMinute: config.OpenAI.RequestsPerMinute,
		})
	case ttypes.EngineTone:
		return NewToneEngine(ToneConfig{
			SampleRate:     config.Tone.SampleRate,
			WordsPerMinute: config.Tone.WordsPerMinute,
			MinDuration:    config.Tone.MinDuration,
			Codec:          codec,
		}), nil
	default:
		return nil, fmt.Errorf("%w: %s", tts.ErrInvalidEngine, engineType)
	}
}
