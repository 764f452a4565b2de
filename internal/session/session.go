// Package session drives one LinkedIn session: open the persistent browser
// profile, sign in, then walk the people search results sending notes.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/yourusername/linkedin-connect/internal/auth"
	"github.com/yourusername/linkedin-connect/internal/connection"
	"github.com/yourusername/linkedin-connect/internal/driver"
	"github.com/yourusername/linkedin-connect/internal/logger"
	"github.com/yourusername/linkedin-connect/internal/selectors"
	"github.com/yourusername/linkedin-connect/internal/stealth"
)

const (
	DefaultWaitTimeout = 10 * time.Second
	DefaultMaxPages    = 20
)

var ErrNotLaunched = errors.New("browser not launched")

// State is the position of the controller in the session lifecycle
type State int

const (
	StateNotLaunched State = iota
	StateLaunched
	StateNeedsLogin
	StateLoginSubmitted
	StateCheckpointPending
	StateLoggedIn
	StateSearching
	StateConnecting
	StateDone
	StateAborted
)

var stateNames = map[State]string{
	StateNotLaunched:       "not_launched",
	StateLaunched:          "launched",
	StateNeedsLogin:        "needs_login",
	StateLoginSubmitted:    "login_submitted",
	StateCheckpointPending: "checkpoint_pending",
	StateLoggedIn:          "logged_in",
	StateSearching:         "searching",
	StateConnecting:        "connecting",
	StateDone:              "done",
	StateAborted:           "aborted",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Credentials are the LinkedIn login and password
type Credentials struct {
	Login    string
	Password string
}

// Recorder receives every per-profile outcome as it happens
type Recorder interface {
	Record(page int, o connection.Outcome) error
}

// Pacing holds the pause windows used between UI actions
type Pacing struct {
	Action stealth.Window
	Note   stealth.Window
	Page   stealth.Window
}

// DefaultPacing matches the 2-5s / 0-5s pauses of a person clicking through
func DefaultPacing() Pacing {
	return Pacing{
		Action: stealth.Window{Min: 2 * time.Second, Max: 5 * time.Second},
		Note:   stealth.Window{Min: 0, Max: 5 * time.Second},
		Page:   stealth.Window{Min: 2 * time.Second, Max: 5 * time.Second},
	}
}

// Options configures a Controller. Zero values get the defaults noted below.
type Options struct {
	Credentials Credentials
	Keywords    string
	// ProfileRoot holds one browser profile directory per login
	ProfileRoot string
	Selectors   selectors.Table // default selectors.Default()
	Placeholder string          // default connection.DefaultPlaceholder
	WaitTimeout time.Duration   // default 10s
	// TwoFactorTimeout bounds the wait for a 2FA code; 0 waits forever
	TwoFactorTimeout time.Duration
	Codes            auth.CodeProvider // default console on stdin/stdout
	Pacer            stealth.Pacer     // default stealth.HumanPacer
	Pacing           *Pacing           // default DefaultPacing()
	Pick             connection.Picker // default stealth.Intn
	Recorder         Recorder
}

// Controller runs the session against a browser driver
type Controller struct {
	launcher    driver.Launcher
	drv         driver.Driver
	creds       Credentials
	keywords    string
	profileDir  string
	sel         selectors.Table
	placeholder string
	waitTimeout time.Duration
	codeTimeout time.Duration
	codes       auth.CodeProvider
	pacer       stealth.Pacer
	pacing      Pacing
	pick        connection.Picker
	recorder    Recorder
	state       State
	page        int
}

// ProfileDir returns the browser profile directory for a login
func ProfileDir(root, login string) string {
	return filepath.Join(root, "session_"+login)
}

// New builds a controller and creates the profile directory if needed
func New(l driver.Launcher, opts Options) (*Controller, error) {
	if opts.ProfileRoot == "" {
		opts.ProfileRoot = "linkedin"
	}
	profileDir := ProfileDir(opts.ProfileRoot, opts.Credentials.Login)
	if err := os.MkdirAll(profileDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create profile directory: %w", err)
	}

	c := &Controller{
		launcher:    l,
		creds:       opts.Credentials,
		keywords:    opts.Keywords,
		profileDir:  profileDir,
		sel:         opts.Selectors,
		placeholder: opts.Placeholder,
		waitTimeout: opts.WaitTimeout,
		codeTimeout: opts.TwoFactorTimeout,
		codes:       opts.Codes,
		pacer:       opts.Pacer,
		pick:        opts.Pick,
		recorder:    opts.Recorder,
	}

	if c.sel == (selectors.Table{}) {
		c.sel = selectors.Default()
	}
	if err := c.sel.Validate(); err != nil {
		return nil, fmt.Errorf("invalid selectors: %w", err)
	}
	if c.placeholder == "" {
		c.placeholder = connection.DefaultPlaceholder
	}
	if c.waitTimeout <= 0 {
		c.waitTimeout = DefaultWaitTimeout
	}
	if c.codes == nil {
		c.codes = auth.Console{In: os.Stdin, Out: os.Stdout}
	}
	if c.pacer == nil {
		c.pacer = stealth.HumanPacer{}
	}
	if opts.Pacing != nil {
		c.pacing = *opts.Pacing
	} else {
		c.pacing = DefaultPacing()
	}
	if c.pick == nil {
		c.pick = stealth.Intn
	}

	return c, nil
}

// State returns the current lifecycle state
func (c *Controller) State() State {
	return c.state
}

// ProfileDir returns the profile directory used by this controller
func (c *Controller) ProfileDir() string {
	return c.profileDir
}

func (c *Controller) setState(s State) {
	if s == c.state {
		return
	}
	logger.Debug("Session state changed", "from", c.state.String(), "to", s.String())
	c.state = s
}

// OpenSite launches the browser on the persistent profile and opens the login page
func (c *Controller) OpenSite() error {
	drv, err := c.launcher.Launch(c.profileDir)
	if err != nil {
		return fmt.Errorf("failed to launch browser: %w", err)
	}
	c.drv = drv
	c.setState(StateLaunched)

	if err := c.drv.Navigate(auth.LinkedInLoginURL); err != nil {
		return fmt.Errorf("failed to open login page: %w", err)
	}

	logger.Info("Site opened", "url", auth.LinkedInLoginURL, "profile_dir", c.profileDir)
	return nil
}

// Close shuts down the browser, leaving the profile directory in place
func (c *Controller) Close() error {
	if c.drv == nil {
		return nil
	}
	err := c.drv.Close()
	c.drv = nil
	return err
}

func (c *Controller) requireDriver() error {
	if c.drv == nil {
		return ErrNotLaunched
	}
	return nil
}
