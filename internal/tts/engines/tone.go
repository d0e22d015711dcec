package engines

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/audiooverview/internal/audio"
	"github.com/dgnsrekt/audiooverview/internal/tts"
	"github.com/dgnsrekt/audiooverview/internal/ttypes"
)

// charsPerWord converts character counts to words for pacing.
const charsPerWord = 5

// ToneEngine implements tts.Synthesizer offline. Each voice is a sine tone
// at its own pitch lasting about as long as the text would take to read,
// encoded with the given codec. It is meant for dry runs and tests.
type ToneEngine struct {
	codec          audio.Codec
	sampleRate     int
	wordsPerMinute int
	minDuration    time.Duration
}

// ToneConfig holds configuration for the tone engine.
type ToneConfig struct {
	// SampleRate of the generated audio - defaults to 24000
	SampleRate int

	// WordsPerMinute sets the pacing - defaults to 150
	WordsPerMinute int

	// MinDuration of any clip - defaults to 300ms
	MinDuration time.Duration

	// Codec used to encode the tone - defaults to the native codec
	Codec audio.Codec
}

// NewToneEngine creates an offline tone engine.
func NewToneEngine(config ToneConfig) *ToneEngine {
	if config.SampleRate == 0 {
		config.SampleRate = 24000
	}
	if config.WordsPerMinute == 0 {
		config.WordsPerMinute = 150
	}
	if config.MinDuration == 0 {
		config.MinDuration = 300 * time.Millisecond
	}
	if config.Codec == nil {
		config.Codec = audio.NewNativeCodec()
	}

	return &ToneEngine{
		codec:          config.Codec,
		sampleRate:     config.SampleRate,
		wordsPerMinute: config.WordsPerMinute,
		minDuration:    config.MinDuration,
	}
}

// Synthesize renders text as a tone for voice and encodes it.
func (e *ToneEngine) Synthesize(ctx context.Context, text string, voice ttypes.Voice) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, tts.NewTTSError(tts.ErrorCodeInvalidInput, "tone", tts.ErrEmptyText)
	}
	freq, err := e.frequency(voice)
	if err != nil {
		return nil, tts.NewTTSError(tts.ErrorCodeInvalidInput, "tone", err)
	}

	clip, err := e.Render(text, freq)
	if err != nil {
		return nil, tts.NewSynthesisError("tone", err)
	}

	data, err := e.codec.Encode(ctx, clip)
	if err != nil {
		return nil, tts.NewSynthesisError("tone", err)
	}

	log.Debug("Synthesis completed", "engine", "tone", "voice", voice, "frequency", freq, "duration", clip.Duration())
	return data, nil
}

// Duration returns how long text would take to read aloud.
func (e *ToneEngine) Duration(text string) time.Duration {
	words := float64(utf8.RuneCountInString(text)) / charsPerWord
	d := time.Duration(words / float64(e.wordsPerMinute) * float64(time.Minute))
	if d < e.minDuration {
		return e.minDuration
	}
	return d
}

// Render produces the mono PCM clip for text at freq, with short fades so
// joined clips do not click.
func (e *ToneEngine) Render(text string, freq float64) (*audio.Clip, error) {
	frames := int(e.Duration(text).Seconds() * float64(e.sampleRate))
	fade := e.sampleRate / 100 // 10ms

	samples := make([]int16, frames)
	for i := range samples {
		amp := 0.3
		if i < fade {
			amp *= float64(i) / float64(fade)
		} else if frames-i < fade {
			amp *= float64(frames-i) / float64(fade)
		}
		samples[i] = int16(amp * math.MaxInt16 * math.Sin(2*math.Pi*freq*float64(i)/float64(e.sampleRate)))
	}

	return audio.NewClip(samples, e.sampleRate, 1)
}

// frequency gives each allow-listed voice its own pitch.
func (e *ToneEngine) frequency(voice ttypes.Voice) (float64, error) {
	for i, v := range tts.Voices() {
		if v == voice {
			// A3 upwards in whole tones
			return 220 * math.Pow(2, float64(2*i)/12), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", tts.ErrUnknownVoice, voice)
}

// GetInfo returns engine capabilities and configuration.
func (e *ToneEngine) GetInfo() ttypes.EngineInfo {
	return ttypes.EngineInfo{
		Name:        "tone",
		Model:       "sine",
		Format:      "mp3",
		MaxTextSize: maxInputSize,
		IsOnline:    false,
	}
}

// Validate always succeeds; the engine has no external requirements.
func (e *ToneEngine) Validate() error { return nil }

// Close is a no-op.
func (e *ToneEngine) Close() error { return nil }

var _ tts.Synthesizer = (*ToneEngine)(nil)
