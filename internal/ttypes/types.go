// Package ttypes contains shared types for the narration system.
// This package is used to break import cycles between scenario, tts, engines,
// audio and pipeline packages.
package ttypes

import "strings"

// Voice identifies a synthesized voice offered by the speech service.
type Voice string

// String returns the voice identifier.
func (v Voice) String() string {
	return string(v)
}

// EngineType represents the speech synthesis engine selection
type EngineType string

const (
	// EngineOpenAI represents the OpenAI speech endpoint
	EngineOpenAI EngineType = "openai"

	// EngineTone represents the offline tone generator
	EngineTone EngineType = "tone"

	// EngineNone represents no engine selected
	EngineNone EngineType = ""
)

// CodecType represents the audio codec backend selection
type CodecType string

const (
	// CodecNative decodes and encodes MP3 in-process
	CodecNative CodecType = "native"

	// CodecFFmpeg shells out to ffmpeg
	CodecFFmpeg CodecType = "ffmpeg"
)

// ParseEngineType normalizes an engine name, accepting common aliases.
func ParseEngineType(s string) EngineType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "openai", "open-ai", "oai":
		return EngineOpenAI
	case "tone", "mock", "offline":
		return EngineTone
	case "":
		return EngineNone
	default:
		return EngineType(s)
	}
}

// EngineInfo describes engine capabilities and configuration.
type EngineInfo struct {
	Name        string // Engine name (e.g., "openai", "tone")
	Model       string // Model identifier sent to the service
	Format      string // Encoded audio format returned by Synthesize
	MaxTextSize int    // Maximum text size in characters
	IsOnline    bool   // Whether the engine requires internet
}
