package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yourusername/linkedin-connect/internal/auth"
	"github.com/yourusername/linkedin-connect/internal/driver"
	"github.com/yourusername/linkedin-connect/internal/logger"
)

// VerifyLogin waits up to timeout (the configured wait when timeout <= 0) for
// the logged-in indicator. A timeout or any other failure reports false.
func (c *Controller) VerifyLogin(timeout time.Duration) bool {
	if err := c.requireDriver(); err != nil {
		logger.Error("Cannot verify login", "error", err)
		return false
	}
	if timeout <= 0 {
		timeout = c.waitTimeout
	}

	_, err := c.drv.WaitVisible(c.sel.LoggedInIndicator, timeout)
	switch {
	case err == nil:
		logger.Info("User is already logged in")
		c.setState(StateLoggedIn)
		return true
	case errors.Is(err, driver.ErrTimeout):
		logger.Info("User is not logged in", "waited", timeout)
	default:
		logger.Warn("Login check failed", "error", err)
	}

	if c.state == StateLaunched {
		c.setState(StateNeedsLogin)
	}
	return false
}

// LoginAccount fills the login form and submits it with Enter. The result is
// only observable through a later VerifyLogin or HandleTwoFactor.
func (c *Controller) LoginAccount() error {
	if err := c.requireDriver(); err != nil {
		return err
	}
	logger.Info("Logging in", "login", c.creds.Login)

	if err := c.fillLoginForm(); err != nil {
		logger.Error("Login failed", "error", err)
		return err
	}

	c.setState(StateLoginSubmitted)
	logger.Info("Login form submitted")
	return nil
}

func (c *Controller) fillLoginForm() error {
	loginField, err := c.drv.Find(c.sel.UsernameField)
	if err != nil {
		return fmt.Errorf("username field not found: %w", err)
	}
	if err := loginField.Input(c.creds.Login); err != nil {
		return fmt.Errorf("failed to type username: %w", err)
	}
	c.pacing.Action.Pause(c.pacer)

	passField, err := c.drv.Find(c.sel.PasswordField)
	if err != nil {
		return fmt.Errorf("password field not found: %w", err)
	}
	if err := passField.Input(c.creds.Password); err != nil {
		return fmt.Errorf("failed to type password: %w", err)
	}
	logger.Debug("Login and password fields filled")
	c.pacing.Action.Pause(c.pacer)

	if err := passField.Submit(); err != nil {
		return fmt.Errorf("failed to submit login form: %w", err)
	}
	c.pacing.Action.Pause(c.pacer)
	return nil
}

// HandleTwoFactor submits a verification code when the current page is a
// checkpoint. It is a no-op on any other page.
func (c *Controller) HandleTwoFactor(ctx context.Context) error {
	if err := c.requireDriver(); err != nil {
		return err
	}

	current, err := c.drv.CurrentURL()
	if err != nil {
		logger.Error("Failed to read current URL", "error", err)
		return err
	}
	if !auth.IsCheckpoint(current) {
		logger.Debug("No verification checkpoint", "url", current)
		return nil
	}

	c.setState(StateCheckpointPending)
	logger.Warn("Verification checkpoint detected, waiting for 2FA code", "url", current)

	if c.codeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.codeTimeout)
		defer cancel()
	}

	code, err := c.codes.Code(ctx)
	if err != nil {
		logger.Error("No 2FA code", "error", err)
		return fmt.Errorf("failed to get 2FA code: %w", err)
	}

	if err := c.submitCode(code); err != nil {
		logger.Error("Failed to handle 2FA", "error", err)
		return err
	}

	logger.Info("2FA code submitted")
	c.setState(StateLoginSubmitted)
	return nil
}

func (c *Controller) submitCode(code string) error {
	field, err := c.drv.WaitPresent(c.sel.TwoFactorInput, c.waitTimeout)
	if err != nil {
		return fmt.Errorf("2FA input not found: %w", err)
	}
	if err := field.Input(code); err != nil {
		return fmt.Errorf("failed to type 2FA code: %w", err)
	}
	if err := field.Submit(); err != nil {
		return fmt.Errorf("failed to submit 2FA code: %w", err)
	}
	return nil
}

// EnsureLoggedIn runs the login flow unless the stored profile is already
// signed in, then checks the result once more
func (c *Controller) EnsureLoggedIn(ctx context.Context) bool {
	if c.VerifyLogin(0) {
		return true
	}

	if err := c.LoginAccount(); err != nil {
		logger.Warn("Continuing after login error", "error", err)
	}
	if err := c.HandleTwoFactor(ctx); err != nil {
		logger.Warn("Continuing after 2FA error", "error", err)
	}

	if c.VerifyLogin(0) {
		return true
	}
	logger.Warn("Login verification failed, continuing anyway")
	return false
}
