package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yourusername/linkedin-connect/internal/connection"
	"github.com/yourusername/linkedin-connect/internal/driver"
	"github.com/yourusername/linkedin-connect/internal/logger"
	"github.com/yourusername/linkedin-connect/internal/search"
)

// ErrNoConnectControls means the results page showed no connect buttons
// within the wait timeout
var ErrNoConnectControls = errors.New("no connect buttons on page")

// NavigateToSearchPage opens result page n of the people search
func (c *Controller) NavigateToSearchPage(n int) error {
	if err := c.requireDriver(); err != nil {
		return err
	}
	if n < 1 {
		return fmt.Errorf("invalid page number %d", n)
	}

	url := search.PageURL(c.keywords, n)
	c.setState(StateSearching)
	if err := c.drv.Navigate(url); err != nil {
		logger.Error("Failed to open search page", "page", n, "error", err)
		return fmt.Errorf("failed to open search page %d: %w", n, err)
	}

	c.page = n
	logger.Info("Search page opened", "page", n, "url", url)
	return nil
}

// ConnectPeople sends a connection request with a personalized note to every
// profile on the current page not already connected
func (c *Controller) ConnectPeople(messages []string) ([]connection.Outcome, error) {
	return c.connectPeople(context.Background(), messages)
}

func (c *Controller) connectPeople(ctx context.Context, messages []string) ([]connection.Outcome, error) {
	if err := c.requireDriver(); err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, connection.ErrNoTemplates
	}

	c.setState(StateConnecting)
	if _, err := c.drv.WaitPresent(c.sel.ConnectButton, c.waitTimeout); err != nil {
		if errors.Is(err, driver.ErrTimeout) {
			logger.Warn("No connect buttons found", "page", c.page, "waited", c.waitTimeout)
			return nil, ErrNoConnectControls
		}
		return nil, fmt.Errorf("failed to wait for connect buttons: %w", err)
	}

	buttons, err := c.drv.FindAll(c.sel.ConnectButton)
	if err != nil {
		return nil, fmt.Errorf("failed to list connect buttons: %w", err)
	}
	logger.Info("Connect buttons found", "page", c.page, "count", len(buttons))

	outcomes := make([]connection.Outcome, 0, len(buttons))
	for _, button := range buttons {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		o := c.connectOne(button, messages)
		c.report(o)
		outcomes = append(outcomes, o)
	}

	return outcomes, nil
}

func (c *Controller) connectOne(button driver.Element, messages []string) connection.Outcome {
	if _, err := button.Find(c.sel.MessageButton); err == nil {
		name := c.displayName(button)
		return connection.Skipped(name, "already connected")
	} else if !errors.Is(err, driver.ErrNoSuchElement) {
		return connection.Failed("", fmt.Errorf("failed to check message button: %w", err))
	}

	name := c.displayName(button)
	if connection.FirstName(name) == "" {
		return connection.Failed(name, errors.New("profile name not found"))
	}

	note, err := connection.Compose(messages, c.placeholder, name, c.pick)
	if err != nil {
		return connection.Failed(name, err)
	}

	if err := c.sendInvitation(button, note); err != nil {
		return connection.Failed(name, err)
	}
	return connection.Sent(name, note)
}

func (c *Controller) displayName(button driver.Element) string {
	el, err := button.Find(c.sel.ConnectionName)
	if err != nil {
		logger.Debug("Profile name not found", "error", err)
		return ""
	}
	text, err := el.Text()
	if err != nil {
		logger.Debug("Failed to read profile name", "error", err)
		return ""
	}
	return strings.TrimSpace(text)
}

func (c *Controller) sendInvitation(button driver.Element, note string) error {
	if err := button.Click(); err != nil {
		return fmt.Errorf("failed to click connect: %w", err)
	}
	c.pacing.Action.Pause(c.pacer)

	addNote, err := c.drv.WaitVisible(c.sel.AddNoteButton, c.waitTimeout)
	if err != nil {
		return fmt.Errorf("add note button not found: %w", err)
	}
	if err := addNote.Click(); err != nil {
		return fmt.Errorf("failed to click add note: %w", err)
	}

	textarea, err := c.drv.WaitVisible(c.sel.NoteTextarea, c.waitTimeout)
	if err != nil {
		return fmt.Errorf("note textarea not found: %w", err)
	}
	if err := textarea.Input(note); err != nil {
		return fmt.Errorf("failed to type note: %w", err)
	}
	c.pacing.Note.Pause(c.pacer)

	send, err := c.drv.WaitVisible(c.sel.SendButton, c.waitTimeout)
	if err != nil {
		return fmt.Errorf("send button not found: %w", err)
	}
	if err := send.Click(); err != nil {
		return fmt.Errorf("failed to click send: %w", err)
	}
	c.pacing.Action.Pause(c.pacer)
	return nil
}

func (c *Controller) report(o connection.Outcome) {
	switch o.Status {
	case connection.StatusSent:
		logger.Info("Connection request sent", "name", o.Name, "page", c.page)
	case connection.StatusSkipped:
		logger.Info("Profile skipped", "name", o.Name, "reason", o.Reason, "page", c.page)
	default:
		logger.Warn("Connection request failed", "name", o.Name, "reason", o.Reason, "page", c.page)
	}

	if c.recorder == nil {
		return
	}
	if err := c.recorder.Record(c.page, o); err != nil {
		logger.Warn("Failed to record outcome", "name", o.Name, "error", err)
	}
}

// ConnectOnMultiplePages visits result pages 1..maxPages, connecting on each.
// A page without connect buttons is skipped; any other failure stops the run.
func (c *Controller) ConnectOnMultiplePages(ctx context.Context, messages []string, maxPages int) Report {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	report := Report{Stop: StopMaxPages}
	for page := 1; page <= maxPages; page++ {
		if err := ctx.Err(); err != nil {
			report.abort(StopCanceled, err)
			break
		}
		if page > 1 {
			c.pacing.Page.Pause(c.pacer)
		}

		if err := c.NavigateToSearchPage(page); err != nil {
			report.abort(StopNavigationFailed, err)
			break
		}

		outcomes, err := c.connectPeople(ctx, messages)
		report.Pages = append(report.Pages, PageResult{Page: page, Outcomes: outcomes, Err: err})

		switch {
		case err == nil:
		case errors.Is(err, ErrNoConnectControls):
			logger.Info("Moving to next page", "page", page)
			continue
		case ctx.Err() != nil:
			report.abort(StopCanceled, err)
		default:
			report.abort(StopConnectFailed, err)
		}
		if report.Err != nil {
			break
		}
	}

	if report.Err != nil {
		c.setState(StateAborted)
		logger.Error("Connection run stopped", "reason", string(report.Stop), "pages", len(report.Pages), "error", report.Err)
	} else {
		c.setState(StateDone)
	}

	s := report.Summary()
	logger.Info("Connection run finished",
		"reason", string(report.Stop),
		"pages", len(report.Pages),
		"sent", s.Sent,
		"skipped", s.Skipped,
		"failed", s.Failed,
	)
	return report
}
