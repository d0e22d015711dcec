package scenario

import (
	"errors"

	"github.com/dgnsrekt/audiooverview/internal/ttypes"
)

var (
	// ErrNoSpeakers indicates the script has no "Name:" lines at all.
	ErrNoSpeakers = errors.New("no speakers found: write lines as \"Name: text\"")

	// ErrNoDialogue indicates no line could be attributed to a known speaker.
	ErrNoDialogue = errors.New("no dialogue found: write lines as \"Name: text\"")
)

// Speaker is a character name as it appears before the colon.
type Speaker string

// String returns the name.
func (s Speaker) String() string {
	return string(s)
}

// Assignment maps each speaker to the voice that reads their lines.
type Assignment map[Speaker]ttypes.Voice

// Entry is one line of dialogue ready for synthesis.
type Entry struct {
	Speaker Speaker
	Voice   ttypes.Voice
	Text    string

	// Line is the 1-based line number in the source script.
	Line int
}
