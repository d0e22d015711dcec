package tts

import (
	"context"

	"github.com/dgnsrekt/audiooverview/internal/ttypes"
)

// Compile-time interface compliance checks

type mockSynthesizer struct{}

func (m *mockSynthesizer) Synthesize(ctx context.Context, text string, voice ttypes.Voice) ([]byte, error) {
	return nil, nil
}

func (m *mockSynthesizer) GetInfo() ttypes.EngineInfo {
	return ttypes.EngineInfo{
		Name:   "mock",
		Model:  DefaultModel,
		Format: "mp3",
	}
}

func (m *mockSynthesizer) Validate() error {
	return nil
}

func (m *mockSynthesizer) Close() error {
	return nil
}

var _ Synthesizer = (*mockSynthesizer)(nil)
