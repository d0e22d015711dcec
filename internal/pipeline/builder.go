package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/audiooverview/internal/audio"
	"github.com/dgnsrekt/audiooverview/internal/scenario"
	"github.com/dgnsrekt/audiooverview/internal/tts"
)

var (
	// ErrNoEntries is returned when there is no dialogue to narrate.
	ErrNoEntries = errors.New("no dialogue entries to narrate")

	// ErrNoSynthesizer is returned by New when the engine is missing.
	ErrNoSynthesizer = errors.New("synthesizer cannot be nil")

	// ErrNoCodec is returned by New when the codec is missing.
	ErrNoCodec = errors.New("codec cannot be nil")
)

// ProgressFunc is called after each entry has been appended.
type ProgressFunc func(done, total int, entry scenario.Entry)

// Stats describes the last successful build.
type Stats struct {
	Entries  int
	Audio    time.Duration
	Bytes    int
	Elapsed  time.Duration
	Engine   string
	Codec    string
	Finished time.Time
}

// Builder assembles dialogue entries into a single recording.
type Builder struct {
	synth    tts.Synthesizer
	codec    audio.Codec
	progress ProgressFunc
	stats    Stats
}

// Option configures a Builder.
type Option func(*Builder)

// WithProgress reports progress through fn.
func WithProgress(fn ProgressFunc) Option {
	return func(b *Builder) {
		b.progress = fn
	}
}

// New creates a builder that synthesizes with synth and decodes and
// encodes with codec.
func New(synth tts.Synthesizer, codec audio.Codec, opts ...Option) (*Builder, error) {
	if synth == nil {
		return nil, ErrNoSynthesizer
	}
	if codec == nil {
		return nil, ErrNoCodec
	}

	b := &Builder{synth: synth, codec: codec}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Build synthesizes every entry in order and returns the joined MP3.
//
// The context is handed to the synthesizer and codec as is. A failure at
// any entry stops the build; later entries are never synthesized and no
// audio is returned. The error carries the entry position, speaker and
// script line.
func (b *Builder) Build(ctx context.Context, entries []scenario.Entry) ([]byte, error) {
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}

	start := time.Now()
	info := b.synth.GetInfo()
	log.Info("Narration started", "entries", len(entries), "engine", info.Name, "codec", b.codec.Name())

	var combined *audio.Clip
	for i, entry := range entries {
		data, err := b.synth.Synthesize(ctx, entry.Text, entry.Voice)
		if err != nil {
			log.Error("Synthesis failed", "entry", i+1, "speaker", entry.Speaker, "voice", entry.Voice, "err", err)
			return nil, entryError(tts.NewTTSError(synthesisCode(err), synthesisMessage(i, entry), err), i, entry)
		}

		clip, err := b.codec.Decode(ctx, data)
		if err != nil {
			log.Error("Decode failed", "entry", i+1, "speaker", entry.Speaker, "bytes", len(data), "err", err)
			return nil, entryError(tts.NewDecodeError(fmt.Sprintf("entry %d (%s): could not decode audio", i+1, entry.Speaker), err), i, entry)
		}

		// the running clip is owned here and grows in place
		if combined == nil {
			combined = clip.Clone()
		} else if err := combined.Extend(clip); err != nil {
			return nil, entryError(tts.NewDecodeError(fmt.Sprintf("entry %d (%s): could not join audio", i+1, entry.Speaker), err), i, entry)
		}

		log.Debug("Entry appended", "entry", i+1, "speaker", entry.Speaker, "clip", clip.Duration(), "total", combined.Duration())
		if b.progress != nil {
			b.progress(i+1, len(entries), entry)
		}
	}

	out, err := b.codec.Encode(ctx, combined)
	if err != nil {
		return nil, tts.NewTTSError(tts.ErrorCodeEncode, "could not export narration", err)
	}

	b.stats = Stats{
		Entries:  len(entries),
		Audio:    combined.Duration(),
		Bytes:    len(out),
		Elapsed:  time.Since(start),
		Engine:   info.Name,
		Codec:    b.codec.Name(),
		Finished: time.Now(),
	}
	log.Info("Narration finished", "entries", len(entries), "audio", b.stats.Audio, "elapsed", b.stats.Elapsed)
	return out, nil
}

// Stats returns figures for the last successful Build.
func (b *Builder) Stats() Stats {
	return b.stats
}

// synthesisCode keeps INVALID_INPUT from the engine so callers can tell a
// rejected line from a failing service.
func synthesisCode(err error) tts.ErrorCode {
	if tts.HasCode(err, tts.ErrorCodeInvalidInput) {
		return tts.ErrorCodeInvalidInput
	}
	return tts.ErrorCodeSynthesis
}

func synthesisMessage(i int, entry scenario.Entry) string {
	return fmt.Sprintf("entry %d (%s, voice %s): synthesis failed", i+1, entry.Speaker, entry.Voice)
}

func entryError(err *tts.TTSError, i int, entry scenario.Entry) *tts.TTSError {
	return err.
		WithContext("entry", i+1).
		WithContext("speaker", entry.Speaker.String()).
		WithContext("line", entry.Line)
}
