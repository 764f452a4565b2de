package auth

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

func TestIsCheckpoint(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://www.linkedin.com/checkpoint/challenge/AgH", true},
		{"https://www.linkedin.com/checkpoint/lg/login-submit", true},
		{"https://www.linkedin.com/feed/", false},
		{LinkedInLoginURL, false},
	}

	for _, tt := range tests {
		if got := IsCheckpoint(tt.url); got != tt.want {
			t.Errorf("IsCheckpoint(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestStaticCode(t *testing.T) {
	code, err := StaticCode("123456").Code(context.Background())
	if err != nil || code != "123456" {
		t.Fatalf("unexpected result %q, %v", code, err)
	}
	if _, err := StaticCode("").Code(context.Background()); !errors.Is(err, ErrEmptyCode) {
		t.Fatalf("expected ErrEmptyCode, got %v", err)
	}
}

func TestConsoleReadsLine(t *testing.T) {
	var out bytes.Buffer
	c := Console{In: strings.NewReader(" 654321 \nignored\n"), Out: &out}

	code, err := c.Code(context.Background())
	if err != nil {
		t.Fatalf("Code failed: %v", err)
	}
	if code != "654321" {
		t.Fatalf("expected 654321, got %q", code)
	}
	if !strings.Contains(out.String(), "2FA") {
		t.Fatalf("prompt not written: %q", out.String())
	}
}

func TestConsoleAcceptsCodeWithoutNewline(t *testing.T) {
	code, err := Console{In: strings.NewReader("111222")}.Code(context.Background())
	if err != nil || code != "111222" {
		t.Fatalf("unexpected result %q, %v", code, err)
	}
}

func TestConsoleEmptyInput(t *testing.T) {
	_, err := Console{In: strings.NewReader("\n")}.Code(context.Background())
	if !errors.Is(err, ErrEmptyCode) {
		t.Fatalf("expected ErrEmptyCode, got %v", err)
	}
}

func TestConsoleHonoursDeadline(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := Console{In: r}.Code(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatal("Code did not return promptly after the deadline")
	}
}
