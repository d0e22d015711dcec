package scenario

import (
	"fmt"
	"strings"

	"github.com/dgnsrekt/audiooverview/internal/tts"
	"github.com/dgnsrekt/audiooverview/internal/ttypes"
)

// ValidateAssignment checks that assignment gives exactly one allow-listed
// voice to every speaker. It must pass before any synthesis happens.
func ValidateAssignment(speakers []Speaker, assignment Assignment) error {
	if len(assignment) != len(speakers) {
		return tts.NewConfigurationError(
			fmt.Sprintf("%d speakers but %d voice assignments", len(speakers), len(assignment)),
			tts.ErrIncompleteAssignment,
		).WithContext("speakers", len(speakers)).WithContext("assignments", len(assignment))
	}

	for _, s := range speakers {
		v, ok := assignment[s]
		if !ok {
			return tts.NewConfigurationError(
				fmt.Sprintf("speaker %q has no voice", s),
				tts.ErrIncompleteAssignment,
			).WithContext("speaker", string(s))
		}
		if !tts.IsKnownVoice(v) {
			return tts.NewConfigurationError(
				fmt.Sprintf("speaker %q uses voice %q", s, v),
				tts.ErrUnknownVoice,
			).WithContext("speaker", string(s)).WithContext("voice", string(v))
		}
	}

	return nil
}

// AssignVoices builds an assignment for speakers. Explicit choices in
// overrides are kept; everyone else gets the next voice of the allow-list in
// speaker order. Overrides for names that are not speakers are reported so
// typos do not go unnoticed.
func AssignVoices(speakers []Speaker, overrides map[string]ttypes.Voice) (Assignment, error) {
	known := make(map[Speaker]struct{}, len(speakers))
	for _, s := range speakers {
		known[s] = struct{}{}
	}

	var unknown []string
	for name := range overrides {
		if _, ok := known[Speaker(name)]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		return nil, tts.NewConfigurationError(
			fmt.Sprintf("voices given for names not in the script: %s", strings.Join(unknown, ", ")),
			tts.ErrIncompleteAssignment,
		)
	}

	a := make(Assignment, len(speakers))
	next := 0
	for _, s := range speakers {
		if v, ok := overrides[string(s)]; ok {
			a[s] = v
			continue
		}
		a[s] = tts.DefaultVoice(next)
		next++
	}

	return a, nil
}

// ParseVoiceFlags turns "Name=voice" pairs into overrides.
func ParseVoiceFlags(pairs []string) (map[string]ttypes.Voice, error) {
	out := make(map[string]ttypes.Voice, len(pairs))
	for _, p := range pairs {
		name, voice, ok := strings.Cut(p, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid voice mapping %q: use Name=voice", p)
		}
		v, err := tts.ParseVoice(voice)
		if err != nil {
			return nil, fmt.Errorf("invalid voice mapping %q: %w", p, err)
		}
		out[name] = v
	}
	return out, nil
}
