package tts

import (
	"context"

	"github.com/dgnsrekt/audiooverview/internal/ttypes"
)

// Synthesizer defines the contract for speech synthesis engines.
// Implementations include the OpenAI speech endpoint (online) and an
// offline tone generator.
type Synthesizer interface {
	// Synthesize converts text to encoded audio (MP3) spoken with voice.
	// Every failure must be reported as a TTSError carrying a readable
	// cause: ErrorCodeInvalidInput for text or a voice the engine rejects
	// without calling out, ErrorCodeSynthesis for everything else.
	Synthesize(ctx context.Context, text string, voice ttypes.Voice) ([]byte, error)

	// GetInfo returns engine capabilities and configuration.
	GetInfo() ttypes.EngineInfo

	// Validate checks if the engine is properly configured and available.
	// This should verify API keys for online engines.
	Validate() error

	// Close releases any resources held by the engine.
	Close() error
}
