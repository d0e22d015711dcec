package scenario

import (
	"errors"
	"testing"

	"github.com/dgnsrekt/audiooverview/internal/tts"
	"github.com/dgnsrekt/audiooverview/internal/ttypes"
)

func TestValidateAssignment(t *testing.T) {
	speakers := []Speaker{"Alice", "Bob"}

	tests := []struct {
		name       string
		assignment Assignment
		wantCause  error
	}{
		{
			name:       "complete",
			assignment: Assignment{"Alice": "nova", "Bob": "echo"},
		},
		{
			name:       "missing speaker",
			assignment: Assignment{"Alice": "nova"},
			wantCause:  tts.ErrIncompleteAssignment,
		},
		{
			name:       "same count, wrong name",
			assignment: Assignment{"Alice": "nova", "Carol": "echo"},
			wantCause:  tts.ErrIncompleteAssignment,
		},
		{
			name:       "extra name",
			assignment: Assignment{"Alice": "nova", "Bob": "echo", "Carol": "ash"},
			wantCause:  tts.ErrIncompleteAssignment,
		},
		{
			name:       "voice outside allow-list",
			assignment: Assignment{"Alice": "nova", "Bob": "robot"},
			wantCause:  tts.ErrUnknownVoice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAssignment(speakers, tt.assignment)
			if tt.wantCause == nil {
				if err != nil {
					t.Fatalf("ValidateAssignment() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantCause) {
				t.Errorf("ValidateAssignment() error = %v, want cause %v", err, tt.wantCause)
			}
			if !tts.HasCode(err, tts.ErrorCodeConfiguration) {
				t.Errorf("ValidateAssignment() error = %v, want CONFIGURATION code", err)
			}
		})
	}
}

func TestAssignVoices(t *testing.T) {
	speakers := []Speaker{"Alice", "Bob", "Carol"}

	t.Run("defaults round-robin", func(t *testing.T) {
		a, err := AssignVoices(speakers, nil)
		if err != nil {
			t.Fatalf("AssignVoices() error = %v", err)
		}
		want := Assignment{"Alice": tts.VoiceNova, "Bob": tts.VoiceShimmer, "Carol": tts.VoiceEcho}
		for s, v := range want {
			if a[s] != v {
				t.Errorf("a[%s] = %q, want %q", s, a[s], v)
			}
		}
		if err := ValidateAssignment(speakers, a); err != nil {
			t.Errorf("generated assignment does not validate: %v", err)
		}
	})

	t.Run("overrides kept", func(t *testing.T) {
		a, err := AssignVoices(speakers, map[string]ttypes.Voice{"Bob": tts.VoiceCoral})
		if err != nil {
			t.Fatalf("AssignVoices() error = %v", err)
		}
		if a["Bob"] != tts.VoiceCoral {
			t.Errorf("a[Bob] = %q, want coral", a["Bob"])
		}
		if a["Alice"] != tts.VoiceNova || a["Carol"] != tts.VoiceShimmer {
			t.Errorf("defaults should skip overridden speakers: %v", a)
		}
	})

	t.Run("unknown override", func(t *testing.T) {
		_, err := AssignVoices(speakers, map[string]ttypes.Voice{"Mallory": tts.VoiceAsh})
		if !tts.HasCode(err, tts.ErrorCodeConfiguration) {
			t.Errorf("AssignVoices() error = %v, want configuration error", err)
		}
	})
}

func TestParseVoiceFlags(t *testing.T) {
	got, err := ParseVoiceFlags([]string{"Alice=nova", " Bob = Echo "})
	if err != nil {
		t.Fatalf("ParseVoiceFlags() error = %v", err)
	}
	if got["Alice"] != tts.VoiceNova || got["Bob"] != tts.VoiceEcho {
		t.Errorf("ParseVoiceFlags() = %v", got)
	}

	for _, bad := range []string{"Alice", "=nova", "Alice=robot"} {
		if _, err := ParseVoiceFlags([]string{bad}); err == nil {
			t.Errorf("ParseVoiceFlags(%q) expected error", bad)
		}
	}
}
