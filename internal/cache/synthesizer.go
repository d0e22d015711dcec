package cache

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/audiooverview/internal/tts"
	"github.com/dgnsrekt/audiooverview/internal/ttypes"
)

// Synthesizer wraps a tts.Synthesizer and answers repeated requests for the
// same text and voice from memory. Failures are never cached.
type Synthesizer struct {
	tts.Synthesizer
	cache *MemoryCache
}

// NewSynthesizer wraps inner with a fresh cache of capacity bytes.
func NewSynthesizer(inner tts.Synthesizer, capacity int64) *Synthesizer {
	return &Synthesizer{Synthesizer: inner, cache: NewMemoryCache(capacity)}
}

// Synthesize returns cached audio for text and voice, or synthesizes it.
func (s *Synthesizer) Synthesize(ctx context.Context, text string, voice ttypes.Voice) ([]byte, error) {
	info := s.Synthesizer.GetInfo()
	key := Key{Engine: info.Name, Model: info.Model, Voice: voice, Text: text}.String()

	if data, ok := s.cache.Get(key); ok {
		log.Debug("Synthesis cache hit", "voice", voice, "bytes", len(data))
		return data, nil
	}

	data, err := s.Synthesizer.Synthesize(ctx, text, voice)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Put(key, data); err != nil {
		log.Debug("Synthesis not cached", "voice", voice, "bytes", len(data), "err", err)
	}
	return data, nil
}

// Stats returns the cache statistics.
func (s *Synthesizer) Stats() Stats {
	return s.cache.Stats()
}

var _ tts.Synthesizer = (*Synthesizer)(nil)
