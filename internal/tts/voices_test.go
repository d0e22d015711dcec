package tts

import (
	"errors"
	"testing"

	"github.com/dgnsrekt/audiooverview/internal/ttypes"
)

func TestVoicesAllowList(t *testing.T) {
	want := []ttypes.Voice{"nova", "shimmer", "echo", "onyx", "fable", "alloy", "ash", "sage", "coral"}
	got := Voices()
	if len(got) != len(want) {
		t.Fatalf("Voices() returned %d voices, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Voices()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	// callers must not be able to mutate the allow-list
	got[0] = "robot"
	if Voices()[0] != VoiceNova {
		t.Error("Voices() leaked the backing slice")
	}
}

func TestParseVoice(t *testing.T) {
	tests := []struct {
		in      string
		want    ttypes.Voice
		wantErr bool
	}{
		{in: "nova", want: VoiceNova},
		{in: "  Coral ", want: VoiceCoral},
		{in: "ALLOY", want: VoiceAlloy},
		{in: "robot", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVoice(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownVoice) {
					t.Errorf("ParseVoice(%q) error = %v, want ErrUnknownVoice", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVoice(%q) unexpected error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseVoice(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDefaultVoiceWraps(t *testing.T) {
	if DefaultVoice(0) != VoiceNova {
		t.Errorf("DefaultVoice(0) = %q", DefaultVoice(0))
	}
	if DefaultVoice(9) != VoiceNova {
		t.Errorf("DefaultVoice(9) = %q, want wrap to nova", DefaultVoice(9))
	}
	if DefaultVoice(10) != VoiceShimmer {
		t.Errorf("DefaultVoice(10) = %q, want shimmer", DefaultVoice(10))
	}
}
