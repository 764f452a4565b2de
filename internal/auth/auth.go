package auth

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	LinkedInLoginURL = "https://www.linkedin.com/login?trk=guest_homepage-basic_nav-header-signin"
	// CheckpointMarker appears in the URL while LinkedIn asks for extra verification
	CheckpointMarker = "checkpoint"
)

var ErrEmptyCode = errors.New("empty verification code")

// IsCheckpoint reports whether the page URL is a verification checkpoint
func IsCheckpoint(pageURL string) bool {
	return strings.Contains(pageURL, CheckpointMarker)
}

// CodeProvider supplies the out-of-band 2FA code
type CodeProvider interface {
	Code(ctx context.Context) (string, error)
}

// StaticCode is a CodeProvider that always returns the same code
type StaticCode string

func (s StaticCode) Code(context.Context) (string, error) {
	if s == "" {
		return "", ErrEmptyCode
	}
	return string(s), nil
}

// Console prompts on Out and reads one line from In. The wait is bounded only
// by ctx.
type Console struct {
	In     io.Reader
	Out    io.Writer
	Prompt string
}

type readResult struct {
	line string
	err  error
}

func (c Console) Code(ctx context.Context) (string, error) {
	prompt := c.Prompt
	if prompt == "" {
		prompt = "Digite o código 2FA e pressione Enter: "
	}
	if c.Out != nil {
		fmt.Fprint(c.Out, prompt)
	}

	// the reader goroutine outlives a cancelled ctx until the line arrives
	lines := make(chan readResult, 1)
	go func() {
		line, err := bufio.NewReader(c.In).ReadString('\n')
		lines <- readResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("waiting for verification code: %w", ctx.Err())
	case r := <-lines:
		code := strings.TrimSpace(r.line)
		if r.err != nil && !(errors.Is(r.err, io.EOF) && code != "") {
			return "", fmt.Errorf("failed to read verification code: %w", r.err)
		}
		if code == "" {
			return "", ErrEmptyCode
		}
		return code, nil
	}
}
