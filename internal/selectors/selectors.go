// Package selectors holds the locator table for the LinkedIn UI. A Table is
// resolved once at startup and passed around by value.
package selectors

import (
	"fmt"
	"os"

	"github.com/yourusername/linkedin-connect/internal/driver"
	"gopkg.in/yaml.v3"
)

// Table maps each UI element the session touches to its locator
type Table struct {
	UsernameField     driver.Locator `yaml:"username_field"`
	PasswordField     driver.Locator `yaml:"password_field"`
	TwoFactorInput    driver.Locator `yaml:"two_factor_input"`
	LoggedInIndicator driver.Locator `yaml:"logged_in_indicator"`
	ConnectButton     driver.Locator `yaml:"connect_button"`
	// MessageButton and ConnectionName are evaluated relative to a connect button
	MessageButton  driver.Locator `yaml:"message_button"`
	ConnectionName driver.Locator `yaml:"connection_name"`
	AddNoteButton  driver.Locator `yaml:"add_note_button"`
	NoteTextarea   driver.Locator `yaml:"note_textarea"`
	SendButton     driver.Locator `yaml:"send_button"`
}

// Default returns the locators for the Portuguese LinkedIn UI
func Default() Table {
	return Table{
		UsernameField:     driver.ID("username"),
		PasswordField:     driver.ID("password"),
		TwoFactorInput:    driver.XPath("/html/body/div/main/div[2]/form/div[1]/input[17]"),
		LoggedInIndicator: driver.XPath("//div[@class='member__profile']"),
		ConnectButton:     driver.XPath("//button[contains(@aria-label, 'Convidar')]"),
		MessageButton:     driver.XPath("./ancestor::div[contains(@class, 'entity-result__item')]//button[contains(@aria-label, 'Enviar mensagem')]"),
		ConnectionName:    driver.XPath("./ancestor::div[contains(@class, 'entity-result__item')]//a[contains(@class, 'app-aware-link')]//span[@aria-hidden='true']"),
		AddNoteButton:     driver.XPath("//button[@aria-label='Adicionar nota']"),
		NoteTextarea:      driver.XPath("//textarea[@name='message']"),
		SendButton:        driver.XPath("//button[@aria-label='Enviar agora']"),
	}
}

// Load returns the default table with any locators set in the YAML file at path
// replacing the defaults. An empty path yields the defaults.
func Load(path string) (Table, error) {
	table := Default()
	if path == "" {
		return table, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("failed to read selectors file: %w", err)
	}

	var override Table
	if err := yaml.Unmarshal(data, &override); err != nil {
		return Table{}, fmt.Errorf("failed to parse selectors file: %w", err)
	}

	table = table.merge(override)
	if err := table.Validate(); err != nil {
		return Table{}, fmt.Errorf("invalid selectors file %s: %w", path, err)
	}
	return table, nil
}

func (t Table) merge(o Table) Table {
	pick := func(base, over driver.Locator) driver.Locator {
		if over.IsZero() {
			return base
		}
		return over
	}
	return Table{
		UsernameField:     pick(t.UsernameField, o.UsernameField),
		PasswordField:     pick(t.PasswordField, o.PasswordField),
		TwoFactorInput:    pick(t.TwoFactorInput, o.TwoFactorInput),
		LoggedInIndicator: pick(t.LoggedInIndicator, o.LoggedInIndicator),
		ConnectButton:     pick(t.ConnectButton, o.ConnectButton),
		MessageButton:     pick(t.MessageButton, o.MessageButton),
		ConnectionName:    pick(t.ConnectionName, o.ConnectionName),
		AddNoteButton:     pick(t.AddNoteButton, o.AddNoteButton),
		NoteTextarea:      pick(t.NoteTextarea, o.NoteTextarea),
		SendButton:        pick(t.SendButton, o.SendButton),
	}
}

// Validate checks every locator in the table
func (t Table) Validate() error {
	for _, entry := range t.entries() {
		if err := entry.loc.Validate(); err != nil {
			return fmt.Errorf("%s: %w", entry.name, err)
		}
	}
	return nil
}

type namedLocator struct {
	name string
	loc  driver.Locator
}

func (t Table) entries() []namedLocator {
	return []namedLocator{
		{"username_field", t.UsernameField},
		{"password_field", t.PasswordField},
		{"two_factor_input", t.TwoFactorInput},
		{"logged_in_indicator", t.LoggedInIndicator},
		{"connect_button", t.ConnectButton},
		{"message_button", t.MessageButton},
		{"connection_name", t.ConnectionName},
		{"add_note_button", t.AddNoteButton},
		{"note_textarea", t.NoteTextarea},
		{"send_button", t.SendButton},
	}
}
