package driver

import (
	"fmt"
	"time"
)

// MockElement is an in-memory element used by MockDriver
type MockElement struct {
	Label    string
	TextVal  string
	Children map[Locator][]*MockElement

	ClickErr error
	OnClick  func()

	Clicks  int
	Typed   []string
	Submits int
}

// Click counts the click unless ClickErr is set
func (e *MockElement) Click() error {
	if e.ClickErr != nil {
		return e.ClickErr
	}
	e.Clicks++
	if e.OnClick != nil {
		e.OnClick()
	}
	return nil
}

func (e *MockElement) Input(text string) error {
	e.Typed = append(e.Typed, text)
	return nil
}

func (e *MockElement) Submit() error {
	e.Submits++
	return nil
}

func (e *MockElement) Text() (string, error) {
	return e.TextVal, nil
}

func (e *MockElement) Find(loc Locator) (Element, error) {
	if els := e.Children[loc]; len(els) > 0 {
		return els[0], nil
	}
	return nil, fmt.Errorf("%s: %w", loc, ErrNoSuchElement)
}

// MockDriver is a Driver serving a fixed set of elements. Waits that cannot be
// satisfied sleep for the requested timeout and then return ErrTimeout.
type MockDriver struct {
	URL      string
	Elements map[Locator][]*MockElement

	NavigateErr error
	OnNavigate  func(url string)

	Navigations []string
	Waits       []Locator
	Closed      bool
}

// NewMockDriver returns an empty MockDriver
func NewMockDriver() *MockDriver {
	return &MockDriver{Elements: map[Locator][]*MockElement{}}
}

// Add registers elements under a page-level locator
func (d *MockDriver) Add(loc Locator, els ...*MockElement) {
	d.Elements[loc] = append(d.Elements[loc], els...)
}

// Navigate records url and fails with NavigateErr when set
func (d *MockDriver) Navigate(url string) error {
	d.Navigations = append(d.Navigations, url)
	if d.NavigateErr != nil {
		return d.NavigateErr
	}
	d.URL = url
	if d.OnNavigate != nil {
		d.OnNavigate(url)
	}
	return nil
}

func (d *MockDriver) CurrentURL() (string, error) {
	return d.URL, nil
}

func (d *MockDriver) Find(loc Locator) (Element, error) {
	if els := d.Elements[loc]; len(els) > 0 {
		return els[0], nil
	}
	return nil, fmt.Errorf("%s: %w", loc, ErrNoSuchElement)
}

func (d *MockDriver) FindAll(loc Locator) ([]Element, error) {
	els := d.Elements[loc]
	out := make([]Element, 0, len(els))
	for _, el := range els {
		out = append(out, el)
	}
	return out, nil
}

func (d *MockDriver) WaitVisible(loc Locator, timeout time.Duration) (Element, error) {
	return d.wait(loc, timeout)
}

func (d *MockDriver) WaitPresent(loc Locator, timeout time.Duration) (Element, error) {
	return d.wait(loc, timeout)
}

func (d *MockDriver) wait(loc Locator, timeout time.Duration) (Element, error) {
	d.Waits = append(d.Waits, loc)
	if els := d.Elements[loc]; len(els) > 0 {
		return els[0], nil
	}
	time.Sleep(timeout)
	return nil, fmt.Errorf("%s after %s: %w", loc, timeout, ErrTimeout)
}

// WaitCount returns how many waits were issued for loc
func (d *MockDriver) WaitCount(loc Locator) int {
	n := 0
	for _, w := range d.Waits {
		if w == loc {
			n++
		}
	}
	return n
}

// Close marks the driver closed
func (d *MockDriver) Close() error {
	d.Closed = true
	return nil
}
