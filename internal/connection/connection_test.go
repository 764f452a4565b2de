package connection

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestFirstName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Maria Silva", "Maria"},
		{"  João   Pedro Souza ", "João"},
		{"Ana", "Ana"},
		{"Ana\tBeatriz", "Ana"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := FirstName(tt.in); got != tt.want {
			t.Errorf("FirstName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPersonalizeExactReplacement(t *testing.T) {
	got := Personalize("Olá [Nome da Pessoa]", DefaultPlaceholder, "Maria")
	if got != "Olá Maria" {
		t.Fatalf("expected %q, got %q", "Olá Maria", got)
	}
}

func TestPersonalizeReplacesEveryPlaceholder(t *testing.T) {
	got := Personalize("[Nome da Pessoa], oi [Nome da Pessoa]!", DefaultPlaceholder, "Ana")
	if got != "Ana, oi Ana!" {
		t.Fatalf("unexpected note %q", got)
	}
}

func TestClampNote(t *testing.T) {
	short := "Oi Maria"
	if ClampNote(short) != short {
		t.Fatal("short note changed")
	}

	long := strings.Repeat("é", MaxNoteLength+50)
	clamped := ClampNote(long)
	if n := utf8.RuneCountInString(clamped); n != MaxNoteLength {
		t.Fatalf("expected %d runes, got %d", MaxNoteLength, n)
	}
	if !strings.HasSuffix(clamped, "...") {
		t.Fatalf("expected ellipsis, got %q", clamped[len(clamped)-6:])
	}
	if !utf8.ValidString(clamped) {
		t.Fatal("clamped note is not valid UTF-8")
	}
}

func TestComposeUsesPickedTemplate(t *testing.T) {
	templates := []string{"Oi [Nome da Pessoa]", "Olá [Nome da Pessoa]"}
	note, err := Compose(templates, DefaultPlaceholder, "Maria Silva", func(n int) int {
		if n != 2 {
			t.Fatalf("picker called with n=%d", n)
		}
		return 1
	})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if note != "Olá Maria" {
		t.Fatalf("expected %q, got %q", "Olá Maria", note)
	}
}

func TestComposeWithoutTemplates(t *testing.T) {
	_, err := Compose(nil, DefaultPlaceholder, "Maria", func(int) int { return 0 })
	if !errors.Is(err, ErrNoTemplates) {
		t.Fatalf("expected ErrNoTemplates, got %v", err)
	}
}

func TestSummarize(t *testing.T) {
	outcomes := []Outcome{
		Sent("Maria Silva", "Olá Maria"),
		Skipped("José", "already connected"),
		Failed("Ana", errors.New("send button missing")),
		Sent("João", "Oi João"),
	}
	s := Summarize(outcomes)
	if s.Sent != 2 || s.Skipped != 1 || s.Failed != 1 || s.Total() != 4 {
		t.Fatalf("unexpected summary %+v", s)
	}
	if outcomes[2].Reason != "send button missing" {
		t.Fatalf("unexpected reason %q", outcomes[2].Reason)
	}
}

func TestStatusString(t *testing.T) {
	if StatusSent.String() != "sent" || StatusSkipped.String() != "skipped" || StatusFailed.String() != "failed" {
		t.Fatal("unexpected status names")
	}
}
