package driver

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/go-rod/rod"
)

func TestRodErrorMapsSentinels(t *testing.T) {
	loc := XPath("//button[contains(@aria-label, 'Enviar mensagem')]")
	other := errors.New("websocket closed")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"not found", &rod.ErrElementNotFound{}, ErrNoSuchElement},
		{"wrapped not found", fmt.Errorf("query: %w", &rod.ErrElementNotFound{}), ErrNoSuchElement},
		{"deadline", context.DeadlineExceeded, ErrTimeout},
		{"other", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rodError(loc, tt.err)
			if !errors.Is(got, tt.want) {
				t.Fatalf("rodError(%v) = %v, want it to wrap %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestRodErrorNotFoundIsNotTimeout(t *testing.T) {
	got := rodError(ID("username"), &rod.ErrElementNotFound{})
	if errors.Is(got, ErrTimeout) {
		t.Fatalf("not-found mapped to timeout: %v", got)
	}
}

func TestRodFindRejectsUnknownStrategy(t *testing.T) {
	if _, err := rodFind(nil, Locator{By: "css", Value: "#x"}); err == nil {
		t.Fatal("expected error")
	}
	if _, err := rodFindAll(nil, Locator{By: "css", Value: "#x"}); err == nil {
		t.Fatal("expected error")
	}
}
