package driver

import (
	"errors"
	"fmt"
	"time"
)

// Strategy is the way a Locator finds an element
type Strategy string

const (
	ByID    Strategy = "id"
	ByXPath Strategy = "xpath"
)

var (
	// ErrNoSuchElement is returned by immediate lookups that match nothing
	ErrNoSuchElement = errors.New("no such element")
	// ErrTimeout is returned when a bounded wait elapses
	ErrTimeout = errors.New("timed out waiting for element")
)

// Locator identifies an element on the page
type Locator struct {
	By    Strategy `yaml:"by"`
	Value string   `yaml:"value"`
}

// ID returns a locator matching the element id
func ID(id string) Locator {
	return Locator{By: ByID, Value: id}
}

// XPath returns a locator matching an XPath expression
func XPath(expr string) Locator {
	return Locator{By: ByXPath, Value: expr}
}

// IsZero reports whether the locator is unset
func (l Locator) IsZero() bool {
	return l.By == "" && l.Value == ""
}

// Validate checks the strategy and value of the locator
func (l Locator) Validate() error {
	if l.Value == "" {
		return fmt.Errorf("locator value is empty")
	}
	switch l.By {
	case ByID, ByXPath:
		return nil
	default:
		return fmt.Errorf("unknown locator strategy: %q (must be id or xpath)", l.By)
	}
}

func (l Locator) String() string {
	return string(l.By) + "=" + l.Value
}

// Element is a handle on a located page element
type Element interface {
	Click() error
	Input(text string) error
	// Submit presses Enter on the element
	Submit() error
	Text() (string, error)
	// Find locates a descendant (or XPath-relative) element without waiting
	Find(loc Locator) (Element, error)
}

// Driver is the browser capability the session controller is built on
type Driver interface {
	Navigate(url string) error
	CurrentURL() (string, error)
	// Find and FindAll do not wait. Find returns ErrNoSuchElement when nothing matches.
	Find(loc Locator) (Element, error)
	FindAll(loc Locator) ([]Element, error)
	// WaitVisible and WaitPresent return ErrTimeout once the timeout elapses.
	WaitVisible(loc Locator, timeout time.Duration) (Element, error)
	WaitPresent(loc Locator, timeout time.Duration) (Element, error)
	Close() error
}

// Launcher starts a browser bound to a persistent profile directory
type Launcher interface {
	Launch(profileDir string) (Driver, error)
}

// LauncherFunc adapts a function to the Launcher interface
type LauncherFunc func(profileDir string) (Driver, error)

// Launch calls f(profileDir)
func (f LauncherFunc) Launch(profileDir string) (Driver, error) {
	return f(profileDir)
}
