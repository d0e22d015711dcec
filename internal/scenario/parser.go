package scenario

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ExtractSpeakerNames returns the distinct names that open a line with
// "Name:", in the order they first appear. Lines are trimmed before matching.
// A script without such lines yields an empty result.
func ExtractSpeakerNames(text string) []Speaker {
	var names []Speaker
	seen := make(map[Speaker]struct{})

	for _, line := range splitLines(text) {
		name, ok := leadingName(strings.TrimSpace(line))
		if !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	return names
}

// ParseDialogue splits text into entries for the given speakers.
//
// Blank lines, lines that do not start with a known "Name:" prefix and lines
// whose content is empty after the prefix are skipped. When more than one
// speaker could match a line the longest name wins, so "Alice:" is never
// read as a line of "Al". The voice of each entry comes from assignment.
func ParseDialogue(text string, assignment Assignment, speakers []Speaker) []Entry {
	ordered := matchOrder(speakers)

	var entries []Entry
	for i, raw := range splitLines(text) {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		for _, name := range ordered {
			prefix := string(name) + ":"
			if !strings.HasPrefix(line, prefix) {
				continue
			}
			content := strings.TrimSpace(line[len(prefix):])
			if content != "" {
				entries = append(entries, Entry{
					Speaker: name,
					Voice:   assignment[name],
					Text:    content,
					Line:    i + 1,
				})
			}
			break
		}
	}

	return entries
}

// Parse extracts speakers, checks assignment covers them and returns the
// dialogue. It is the entry point used by the command line and the server.
func Parse(text string, assignment Assignment) ([]Speaker, []Entry, error) {
	speakers := ExtractSpeakerNames(text)
	if len(speakers) == 0 {
		return nil, nil, ErrNoSpeakers
	}

	if err := ValidateAssignment(speakers, assignment); err != nil {
		return speakers, nil, err
	}

	entries := ParseDialogue(text, assignment, speakers)
	if len(entries) == 0 {
		return speakers, nil, ErrNoDialogue
	}

	return speakers, entries, nil
}

// matchOrder returns speakers sorted longest first, keeping first-seen order
// among names of equal length.
func matchOrder(speakers []Speaker) []Speaker {
	ordered := make([]Speaker, len(speakers))
	copy(ordered, speakers)
	sort.SliceStable(ordered, func(i, j int) bool {
		return utf8.RuneCountInString(string(ordered[i])) > utf8.RuneCountInString(string(ordered[j]))
	})
	return ordered
}

// leadingName reads a run of name characters at the start of line and
// reports it if it is immediately followed by a colon.
func leadingName(line string) (Speaker, bool) {
	end := 0
	for end < len(line) {
		r, size := utf8.DecodeRuneInString(line[end:])
		if !isNameRune(r) {
			break
		}
		end += size
	}
	if end == 0 || end >= len(line) || line[end] != ':' {
		return "", false
	}
	return Speaker(line[:end]), true
}

// isNameRune accepts letters, combining marks, digits and underscores plus
// the kana blocks and the iteration mark common in Japanese character names.
func isNameRune(r rune) bool {
	switch {
	case r == '_':
		return true
	case r == '々':
		return true
	case r >= 0x3040 && r <= 0x309F: // hiragana
		return true
	case r >= 0x30A0 && r <= 0x30FF: // katakana, including ー and ・
		return true
	case r == utf8.RuneError:
		return false
	}
	return unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsNumber(r)
}

// splitLines splits on \n, \r\n, \r and the Unicode line and paragraph
// separators. Empty lines are kept so indexes match source line numbers.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}

	var lines []string
	start := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		switch r {
		case '\n', '\u2028', '\u2029':
			lines = append(lines, text[start:i])
			i += size
			start = i
		case '\r':
			lines = append(lines, text[start:i])
			i += size
			if i < len(text) && text[i] == '\n' {
				i++
			}
			start = i
		default:
			i += size
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}
