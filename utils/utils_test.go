package utils

import (
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
)

func TestExpandPath(t *testing.T) {
	home, err := homedir.Dir()
	if err != nil {
		t.Skip("no home directory")
	}
	t.Setenv("AUDIOOVERVIEW_TEST_DIR", "narrations")

	tests := []struct {
		in   string
		want string
	}{
		{"out.mp3", "out.mp3"},
		{"~/out.mp3", filepath.Join(home, "out.mp3")},
		{"$AUDIOOVERVIEW_TEST_DIR/out.mp3", "narrations/out.mp3"},
		{"~/$AUDIOOVERVIEW_TEST_DIR/a.mp3", filepath.Join(home, "narrations", "a.mp3")},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ExpandPath(tt.in); got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEscapeTableCell(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"a | b", `a \| b`},
		{"  spaced\tout  ", "spaced out"},
		{`back\slash`, `back\\slash`},
	}
	for _, tt := range tests {
		if got := EscapeTableCell(tt.in); got != tt.want {
			t.Errorf("EscapeTableCell(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
