package tts

import (
	"fmt"
	"strings"

	"github.com/dgnsrekt/audiooverview/internal/ttypes"
)

// Voices offered by the speech service, in the order they are presented to
// users and handed out as defaults.
const (
	VoiceNova    ttypes.Voice = "nova"
	VoiceShimmer ttypes.Voice = "shimmer"
	VoiceEcho    ttypes.Voice = "echo"
	VoiceOnyx    ttypes.Voice = "onyx"
	VoiceFable   ttypes.Voice = "fable"
	VoiceAlloy   ttypes.Voice = "alloy"
	VoiceAsh     ttypes.Voice = "ash"
	VoiceSage    ttypes.Voice = "sage"
	VoiceCoral   ttypes.Voice = "coral"
)

var voiceOptions = []ttypes.Voice{
	VoiceNova,
	VoiceShimmer,
	VoiceEcho,
	VoiceOnyx,
	VoiceFable,
	VoiceAlloy,
	VoiceAsh,
	VoiceSage,
	VoiceCoral,
}

// Voices returns a copy of the voice allow-list.
func Voices() []ttypes.Voice {
	out := make([]ttypes.Voice, len(voiceOptions))
	copy(out, voiceOptions)
	return out
}

// IsKnownVoice reports whether v is on the allow-list.
func IsKnownVoice(v ttypes.Voice) bool {
	for _, o := range voiceOptions {
		if o == v {
			return true
		}
	}
	return false
}

// ParseVoice normalizes and checks a voice name.
func ParseVoice(s string) (ttypes.Voice, error) {
	v := ttypes.Voice(strings.ToLower(strings.TrimSpace(s)))
	if !IsKnownVoice(v) {
		return "", fmt.Errorf("%w: %q (choose one of %s)", ErrUnknownVoice, s, VoiceList())
	}
	return v, nil
}

// DefaultVoice returns the i-th voice of the allow-list, wrapping around.
func DefaultVoice(i int) ttypes.Voice {
	if i < 0 {
		i = -i
	}
	return voiceOptions[i%len(voiceOptions)]
}

// VoiceList renders the allow-list as a comma separated string.
func VoiceList() string {
	names := make([]string, len(voiceOptions))
	for i, v := range voiceOptions {
		names[i] = string(v)
	}
	return strings.Join(names, ", ")
}
