package selectors

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/yourusername/linkedin-connect/internal/driver"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "selectors.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write selectors file: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default table invalid: %v", err)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	table, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if table != Default() {
		t.Fatal("expected default table")
	}
}

func TestLoadOverridesOnlyGivenEntries(t *testing.T) {
	path := writeFile(t, `
connect_button:
  by: xpath
  value: "//button[contains(@aria-label, 'Invite')]"
send_button:
  by: xpath
  value: "//button[@aria-label='Send now']"
`)
	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if table.ConnectButton != driver.XPath("//button[contains(@aria-label, 'Invite')]") {
		t.Fatalf("connect button not overridden: %v", table.ConnectButton)
	}
	if table.SendButton.Value != "//button[@aria-label='Send now']" {
		t.Fatalf("send button not overridden: %v", table.SendButton)
	}
	if table.UsernameField != Default().UsernameField {
		t.Fatalf("username field should keep default, got %v", table.UsernameField)
	}
}

func TestLoadRejectsInvalidEntries(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown strategy", "send_button:\n  by: css\n  value: button.send\n"},
		{"missing value", "send_button:\n  by: xpath\n"},
		{"bad yaml", "send_button: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeFile(t, tt.content)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
