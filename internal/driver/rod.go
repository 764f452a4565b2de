package driver

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/yourusername/linkedin-connect/internal/logger"
	st "github.com/yourusername/linkedin-connect/internal/stealth"
)

// RodLauncher launches Chrome through go-rod
type RodLauncher struct {
	Headless      bool
	Stealth       bool
	UserAgent     string
	ActionTimeout time.Duration
}

// Launch starts a browser that reuses profileDir as its user data dir
func (l RodLauncher) Launch(profileDir string) (Driver, error) {
	dir, err := filepath.Abs(profileDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve profile directory: %w", err)
	}

	// Prefer the local Chrome install, leakless trips some antivirus tools
	ln := launcher.New()
	if path, exists := launcher.LookPath(); exists {
		logger.Info("Using system Chrome browser", "path", path)
		ln = ln.Bin(path)
	} else {
		logger.Info("System Chrome not found, using downloaded browser")
	}

	ln = ln.UserDataDir(dir).
		Headless(l.Headless).
		Devtools(false).
		Leakless(false).
		Set("start-maximized")
	if l.UserAgent != "" {
		ln = ln.Set("user-agent", l.UserAgent)
	}

	controlURL, err := ln.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	var page *rod.Page
	if l.Stealth {
		page, err = stealth.Page(browser)
	} else {
		page, err = browser.Page(proto.TargetCreateTarget{})
	}
	if err != nil {
		_ = browser.Close()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	logger.Info("Browser launched", "backend", "rod", "profile_dir", dir, "headless", l.Headless, "stealth", l.Stealth)
	return &RodDriver{browser: browser, page: page, actionTimeout: l.ActionTimeout, human: l.Stealth}, nil
}

// RodDriver implements Driver on a single rod page. With human set, clicks
// follow a curved mouse path, text is typed one key at a time and loaded
// pages are scrolled a little.
type RodDriver struct {
	browser       *rod.Browser
	page          *rod.Page
	actionTimeout time.Duration
	human         bool
}

// Navigate opens url and waits for the load event
func (d *RodDriver) Navigate(url string) error {
	if err := d.page.Navigate(url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	if err := d.page.WaitLoad(); err != nil {
		return fmt.Errorf("failed to wait for page load: %w", err)
	}
	if d.human {
		if err := scrollPage(d.page, 200+st.Intn(400)); err != nil {
			logger.Debug("Page scroll failed", "error", err)
		}
	}
	return nil
}

// CurrentURL returns the URL of the page
func (d *RodDriver) CurrentURL() (string, error) {
	info, err := d.page.Info()
	if err != nil {
		return "", fmt.Errorf("failed to read page info: %w", err)
	}
	return info.URL, nil
}

// Find returns the first match without waiting
func (d *RodDriver) Find(loc Locator) (Element, error) {
	el, err := rodFind(d.page.Sleeper(rod.NotFoundSleeper), loc)
	if err != nil {
		return nil, rodError(loc, err)
	}
	return d.wrap(el), nil
}

// FindAll returns every current match
func (d *RodDriver) FindAll(loc Locator) ([]Element, error) {
	els, err := rodFindAll(d.page, loc)
	if err != nil {
		return nil, rodError(loc, err)
	}
	out := make([]Element, 0, len(els))
	for _, el := range els {
		out = append(out, d.wrap(el))
	}
	return out, nil
}

// WaitVisible waits up to timeout for a visible match
func (d *RodDriver) WaitVisible(loc Locator, timeout time.Duration) (Element, error) {
	timed := d.page.Timeout(timeout)
	defer timed.CancelTimeout()

	el, err := rodFind(timed, loc)
	if err == nil {
		err = el.WaitVisible()
	}
	if err != nil {
		return nil, rodError(loc, err)
	}
	return d.wrap(el.Context(d.page.GetContext())), nil
}

// WaitPresent waits up to timeout for a match in the DOM
func (d *RodDriver) WaitPresent(loc Locator, timeout time.Duration) (Element, error) {
	timed := d.page.Timeout(timeout)
	defer timed.CancelTimeout()

	el, err := rodFind(timed, loc)
	if err != nil {
		return nil, rodError(loc, err)
	}
	return d.wrap(el.Context(d.page.GetContext())), nil
}

// Close closes the browser
func (d *RodDriver) Close() error {
	logger.Info("Closing browser...")
	return d.browser.Close()
}

func (d *RodDriver) wrap(el *rod.Element) *rodElement {
	return &rodElement{el: el, page: d.page, actionTimeout: d.actionTimeout, human: d.human}
}

type rodElement struct {
	el            *rod.Element
	page          *rod.Page
	actionTimeout time.Duration
	human         bool
}

// Click clicks the element, moving the mouse along a curve first in human mode
func (e *rodElement) Click() error {
	el := e.el
	if e.actionTimeout > 0 {
		el = el.Timeout(e.actionTimeout)
		defer el.CancelTimeout()
	}
	if e.human {
		if err := moveMouseTo(e.page, el); err != nil {
			logger.Debug("Mouse movement failed, clicking directly", "error", err)
		}
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("failed to click: %w", err)
	}
	return nil
}

// Input types text, one key at a time in human mode
func (e *rodElement) Input(text string) error {
	if !e.human {
		if err := e.el.Input(text); err != nil {
			return fmt.Errorf("failed to input text: %w", err)
		}
		return nil
	}

	for i, char := range []rune(text) {
		if err := e.el.Input(string(char)); err != nil {
			return fmt.Errorf("failed to input text: %w", err)
		}
		time.Sleep(st.KeystrokeDelay(i))
	}
	return nil
}

// Submit focuses the element and presses Enter
func (e *rodElement) Submit() error {
	if err := e.el.Focus(); err != nil {
		return fmt.Errorf("failed to focus element: %w", err)
	}
	if err := e.page.Keyboard.Press(input.Enter); err != nil {
		return fmt.Errorf("failed to press enter: %w", err)
	}
	return nil
}

// Text returns the rendered text
func (e *rodElement) Text() (string, error) {
	text, err := e.el.Text()
	if err != nil {
		return "", fmt.Errorf("failed to read text: %w", err)
	}
	return text, nil
}

// Find looks up loc relative to the element without waiting
func (e *rodElement) Find(loc Locator) (Element, error) {
	el, err := rodFind(e.el.Sleeper(rod.NotFoundSleeper), loc)
	if err != nil {
		return nil, rodError(loc, err)
	}
	return &rodElement{el: el, page: e.page, actionTimeout: e.actionTimeout, human: e.human}, nil
}

// rodQuerier is the lookup surface shared by rod.Page and rod.Element
type rodQuerier interface {
	Element(selector string) (*rod.Element, error)
	ElementX(xPath string) (*rod.Element, error)
	Elements(selector string) (rod.Elements, error)
	ElementsX(xPath string) (rod.Elements, error)
}

func rodFind(q rodQuerier, loc Locator) (*rod.Element, error) {
	switch loc.By {
	case ByID:
		return q.Element(idSelector(loc.Value))
	case ByXPath:
		return q.ElementX(loc.Value)
	default:
		return nil, fmt.Errorf("unsupported locator strategy: %q", loc.By)
	}
}

func rodFindAll(q rodQuerier, loc Locator) (rod.Elements, error) {
	switch loc.By {
	case ByID:
		return q.Elements(idSelector(loc.Value))
	case ByXPath:
		return q.ElementsX(loc.Value)
	default:
		return nil, fmt.Errorf("unsupported locator strategy: %q", loc.By)
	}
}

func rodError(loc Locator, err error) error {
	var notFound *rod.ErrElementNotFound
	switch {
	case errors.As(err, &notFound):
		return fmt.Errorf("%s: %w", loc, ErrNoSuchElement)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w", loc, ErrTimeout)
	default:
		return fmt.Errorf("%s: %w", loc, err)
	}
}

var cssStringEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// idSelector builds an attribute selector so ids need no CSS identifier escaping
func idSelector(id string) string {
	return `[id="` + cssStringEscaper.Replace(id) + `"]`
}

// moveMouseTo moves the mouse along a curved path to a random point inside el
func moveMouseTo(page *rod.Page, el *rod.Element) error {
	if err := el.ScrollIntoView(); err != nil {
		return err
	}
	shape, err := el.Shape()
	if err != nil {
		return err
	}
	box := shape.Box()
	if box == nil {
		return fmt.Errorf("element has no box")
	}

	pos := page.Mouse.Position()
	target := st.Point{
		X: box.X + box.Width*(0.3+0.4*float64(st.Intn(100))/100),
		Y: box.Y + box.Height*(0.3+0.4*float64(st.Intn(100))/100),
	}

	path := st.MousePath(st.Point{X: pos.X, Y: pos.Y}, target, 30+st.Intn(20))
	for i, p := range path {
		if err := page.Mouse.MoveTo(proto.Point{X: p.X, Y: p.Y}); err != nil {
			return err
		}
		time.Sleep(st.MouseStepDelay(float64(i) / float64(len(path))))
	}
	return nil
}

// scrollPage scrolls down by about px pixels in a few uneven wheel steps
func scrollPage(page *rod.Page, px int) error {
	for _, step := range st.ScrollSteps(px) {
		if err := page.Mouse.Scroll(0, float64(step), 1); err != nil {
			return err
		}
		time.Sleep(st.RandomDelay(100*time.Millisecond, 300*time.Millisecond))
	}
	return nil
}
