package driver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
	"github.com/yourusername/linkedin-connect/internal/logger"
)

// ChromedpLauncher launches Chrome through chromedp
type ChromedpLauncher struct {
	Headless      bool
	UserAgent     string
	ActionTimeout time.Duration
}

// Launch starts a browser that reuses profileDir as its user data dir
func (l ChromedpLauncher) Launch(profileDir string) (Driver, error) {
	dir, err := filepath.Abs(profileDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve profile directory: %w", err)
	}

	opts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserDataDir(dir),
		chromedp.Flag("headless", l.Headless),
		chromedp.Flag("start-maximized", true),
		chromedp.Flag("enable-automation", false),
	)
	if l.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(l.UserAgent))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	ctx, cancel := chromedp.NewContext(allocCtx)

	// the first Run starts the browser and must not carry a timeout
	if err := chromedp.Run(ctx); err != nil {
		cancel()
		cancelAlloc()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	logger.Info("Browser launched", "backend", "chromedp", "profile_dir", dir, "headless", l.Headless)
	return &ChromedpDriver{
		ctx:           ctx,
		cancel:        cancel,
		cancelAlloc:   cancelAlloc,
		actionTimeout: l.ActionTimeout,
	}, nil
}

// ChromedpDriver implements Driver on a single chromedp tab
type ChromedpDriver struct {
	ctx           context.Context
	cancel        context.CancelFunc
	cancelAlloc   context.CancelFunc
	actionTimeout time.Duration
}

// Navigate opens url and waits for the load event
func (d *ChromedpDriver) Navigate(url string) error {
	if err := chromedp.Run(d.ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

// CurrentURL returns the URL of the tab
func (d *ChromedpDriver) CurrentURL() (string, error) {
	var location string
	if err := chromedp.Run(d.ctx, chromedp.Location(&location)); err != nil {
		return "", fmt.Errorf("failed to read location: %w", err)
	}
	return location, nil
}

// Find returns the first match without waiting
func (d *ChromedpDriver) Find(loc Locator) (Element, error) {
	nodes, err := d.nodes(d.ctx, loc, chromedp.AtLeast(0))
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%s: %w", loc, ErrNoSuchElement)
	}
	return d.wrap(nodes[0].NodeID), nil
}

// FindAll returns every current match
func (d *ChromedpDriver) FindAll(loc Locator) ([]Element, error) {
	nodes, err := d.nodes(d.ctx, loc, chromedp.AtLeast(0))
	if err != nil {
		return nil, err
	}
	out := make([]Element, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, d.wrap(n.NodeID))
	}
	return out, nil
}

// WaitVisible waits up to timeout for a visible match
func (d *ChromedpDriver) WaitVisible(loc Locator, timeout time.Duration) (Element, error) {
	return d.waitFor(loc, timeout, chromedp.NodeVisible)
}

// WaitPresent waits up to timeout for a match in the DOM
func (d *ChromedpDriver) WaitPresent(loc Locator, timeout time.Duration) (Element, error) {
	return d.waitFor(loc, timeout, chromedp.NodeReady)
}

func (d *ChromedpDriver) waitFor(loc Locator, timeout time.Duration, state chromedp.QueryOption) (Element, error) {
	ctx, cancel := context.WithTimeout(d.ctx, timeout)
	defer cancel()

	nodes, err := d.nodes(ctx, loc, state)
	if err != nil {
		return nil, err
	}
	return d.wrap(nodes[0].NodeID), nil
}

func (d *ChromedpDriver) nodes(ctx context.Context, loc Locator, opts ...chromedp.QueryOption) ([]*cdp.Node, error) {
	switch loc.By {
	case ByID:
		opts = append(opts, chromedp.ByID)
	case ByXPath:
		opts = append(opts, chromedp.BySearch)
	default:
		return nil, fmt.Errorf("unsupported locator strategy: %q", loc.By)
	}

	var nodes []*cdp.Node
	if err := chromedp.Run(ctx, chromedp.Nodes(loc.Value, &nodes, opts...)); err != nil {
		return nil, chromedpError(loc, err)
	}
	return nodes, nil
}

// Close stops the browser and releases its contexts
func (d *ChromedpDriver) Close() error {
	logger.Info("Closing browser...")
	err := chromedp.Cancel(d.ctx)
	d.cancel()
	d.cancelAlloc()
	return err
}

func (d *ChromedpDriver) wrap(id cdp.NodeID) *chromedpElement {
	return &chromedpElement{drv: d, id: id}
}

// actionCtx bounds a single element interaction
func (d *ChromedpDriver) actionCtx() (context.Context, context.CancelFunc) {
	if d.actionTimeout <= 0 {
		return context.WithCancel(d.ctx)
	}
	return context.WithTimeout(d.ctx, d.actionTimeout)
}

type chromedpElement struct {
	drv *ChromedpDriver
	id  cdp.NodeID
}

func (e *chromedpElement) ids() []cdp.NodeID {
	return []cdp.NodeID{e.id}
}

// Click clicks the node
func (e *chromedpElement) Click() error {
	ctx, cancel := e.drv.actionCtx()
	defer cancel()
	if err := chromedp.Run(ctx, chromedp.Click(e.ids(), chromedp.ByNodeID)); err != nil {
		return fmt.Errorf("failed to click: %w", err)
	}
	return nil
}

// Input types text into the node
func (e *chromedpElement) Input(text string) error {
	ctx, cancel := e.drv.actionCtx()
	defer cancel()
	if err := chromedp.Run(ctx, chromedp.SendKeys(e.ids(), text, chromedp.ByNodeID)); err != nil {
		return fmt.Errorf("failed to input text: %w", err)
	}
	return nil
}

// Submit presses Enter on the node
func (e *chromedpElement) Submit() error {
	ctx, cancel := e.drv.actionCtx()
	defer cancel()
	if err := chromedp.Run(ctx, chromedp.SendKeys(e.ids(), kb.Enter, chromedp.ByNodeID)); err != nil {
		return fmt.Errorf("failed to press enter: %w", err)
	}
	return nil
}

// Text returns the node text
func (e *chromedpElement) Text() (string, error) {
	ctx, cancel := e.drv.actionCtx()
	defer cancel()
	var text string
	if err := chromedp.Run(ctx, chromedp.Text(e.ids(), &text, chromedp.ByNodeID)); err != nil {
		return "", fmt.Errorf("failed to read text: %w", err)
	}
	return text, nil
}

// relativeLookup runs with `this` bound to the context element
const relativeLookup = `function() {
	const by = %s, value = %s;
	if (by === "id") {
		return this.querySelector('[id="' + CSS.escape(value) + '"]');
	}
	return document.evaluate(value, this, null, XPathResult.FIRST_ORDERED_NODE_TYPE, null).singleNodeValue;
}`

// Find evaluates the locator in the page with this element as the context
// node, so relative XPath such as ".//button" or "./ancestor::div" works.
func (e *chromedpElement) Find(loc Locator) (Element, error) {
	by, _ := json.Marshal(string(loc.By))
	value, _ := json.Marshal(loc.Value)
	decl := fmt.Sprintf(relativeLookup, by, value)

	var found cdp.NodeID
	err := chromedp.Run(e.drv.ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		obj, err := dom.ResolveNode().WithNodeID(e.id).Do(ctx)
		if err != nil {
			return err
		}
		res, exc, err := runtime.CallFunctionOn(decl).WithObjectID(obj.ObjectID).Do(ctx)
		if err != nil {
			return err
		}
		if exc != nil {
			return exc
		}
		if res.ObjectID == "" || res.Subtype == runtime.SubtypeNull {
			return ErrNoSuchElement
		}
		found, err = dom.RequestNode(res.ObjectID).Do(ctx)
		return err
	}))
	if err != nil {
		return nil, chromedpError(loc, err)
	}
	return e.drv.wrap(found), nil
}

func chromedpError(loc Locator, err error) error {
	switch {
	case errors.Is(err, ErrNoSuchElement):
		return fmt.Errorf("%s: %w", loc, ErrNoSuchElement)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w", loc, ErrTimeout)
	default:
		return fmt.Errorf("%s: %w", loc, err)
	}
}
