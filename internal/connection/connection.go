package connection

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultPlaceholder is replaced by the recipient's first name
	DefaultPlaceholder = "[Nome da Pessoa]"
	// MaxNoteLength is LinkedIn's character limit for connection notes
	MaxNoteLength = 300
)

var ErrNoTemplates = errors.New("no message templates configured")

// Picker returns a uniform index in [0, n)
type Picker func(n int) int

// FirstName returns the first whitespace-separated token of a display name
func FirstName(displayName string) string {
	fields := strings.Fields(displayName)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Personalize replaces every placeholder in template with firstName and
// clamps the result to MaxNoteLength characters
func Personalize(template, placeholder, firstName string) string {
	return ClampNote(strings.ReplaceAll(template, placeholder, firstName))
}

// ClampNote cuts a note to MaxNoteLength runes, ending it with "..."
func ClampNote(note string) string {
	if utf8.RuneCountInString(note) <= MaxNoteLength {
		return note
	}
	runes := []rune(note)
	return string(runes[:MaxNoteLength-3]) + "..."
}

// Compose picks a template and personalizes it for displayName
func Compose(templates []string, placeholder, displayName string, pick Picker) (string, error) {
	if len(templates) == 0 {
		return "", ErrNoTemplates
	}
	template := templates[pick(len(templates))]
	return Personalize(template, placeholder, FirstName(displayName)), nil
}
