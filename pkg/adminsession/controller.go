package adminsession

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/agentforge/clientkit/pkg/credstore"
	"github.com/agentforge/clientkit/pkg/httpclient"
)

// StorageKeySecret is the persisted key for the admin secret. The
// controller is its only writer.
const StorageKeySecret = "adminSecret"

// SecretHeader is the request header carrying the admin credential.
const SecretHeader = "x-admin-secret"

// verifyPath is the endpoint used to validate a candidate secret at login.
const verifyPath = "/api/admin/dashboard"

const clearTimeout = 5 * time.Second

// Status describes the admin session state.
type Status int

const (
	StatusLoading Status = iota
	StatusAnonymous
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusAnonymous:
		return "anonymous"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// NavigateFunc receives route changes triggered by forced logouts.
type NavigateFunc func(path string)

// Controller owns the admin session. Construct exactly one per admin
// channel at application start; the constructor installs the channel's
// interceptor pair once, so the rejection handler can never stack.
type Controller struct {
	store     credstore.Store
	navigate  NavigateFunc
	loginPath string
	pathFn    func() string
	logger    *slog.Logger

	mu        sync.RWMutex
	hydrated  bool
	secret    string
	onLogout  func()
	listeners []func(Status)

	admin *httpclient.Channel
}

// Option configures a Controller.
type Option func(*Controller)

// WithNavigate sets the navigation sink invoked on a forced logout.
func WithNavigate(fn NavigateFunc) Option {
	return func(c *Controller) {
		if fn != nil {
			c.navigate = fn
		}
	}
}

// WithLoginPath overrides the route a forced logout navigates to.
func WithLoginPath(path string) Option {
	return func(c *Controller) {
		if path != "" {
			c.loginPath = path
		}
	}
}

// WithCurrentPath supplies the current route, used to skip redundant
// navigation when the admin login screen is already showing.
func WithCurrentPath(fn func() string) Option {
	return func(c *Controller) {
		if fn != nil {
			c.pathFn = fn
		}
	}
}

// WithLogger sets the structured logger. Discards by default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewController creates the admin session controller and installs the
// admin channel's interceptors.
func NewController(admin *httpclient.Channel, store credstore.Store, opts ...Option) *Controller {
	c := &Controller{
		store:     store,
		navigate:  func(string) {},
		loginPath: "/admin-login",
		pathFn:    func() string { return "" },
		logger:    slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(1 << 30)})),
		admin:     admin,
	}

	for _, opt := range opts {
		opt(c)
	}

	admin.OnRequest(c.attachSecret)
	admin.OnResponse(c.interceptRejection)

	return c
}

// SetLogoutHandler fills the single mutable callback slot invoked on a
// forced logout. Passing nil clears the slot.
func (c *Controller) SetLogoutHandler(fn func()) {
	c.mu.Lock()
	c.onLogout = fn
	c.mu.Unlock()
}

// Hydrate loads any persisted secret. Status stays Loading until it runs.
func (c *Controller) Hydrate(ctx context.Context) error {
	secret, err := c.store.Get(ctx, StorageKeySecret)
	if err != nil && !errors.Is(err, credstore.ErrKeyNotFound) {
		return err
	}

	c.mu.Lock()
	c.hydrated = true
	c.secret = secret
	c.mu.Unlock()

	c.notify(c.Status())
	return nil
}

// Login stores the candidate secret and verifies it against the admin
// dashboard endpoint. A rejected secret is cleared before the error is
// returned, so the login form shows an inline error without a redirect
// loop.
func (c *Controller) Login(ctx context.Context, secret string) error {
	if secret == "" {
		return ErrNoSecret
	}

	if err := c.store.Set(ctx, StorageKeySecret, secret); err != nil {
		return err
	}

	c.mu.Lock()
	c.hydrated = true
	c.secret = secret
	c.mu.Unlock()

	// The request interceptor attaches the candidate secret; a 401/403
	// comes back through interceptRejection, which clears it again.
	if err := c.admin.Get(ctx, verifyPath, nil); err != nil {
		return err
	}

	c.logger.Info("admin session established")
	c.notify(StatusAuthenticated)
	return nil
}

// Logout clears the secret and its persisted copy. Idempotent.
func (c *Controller) Logout(ctx context.Context) error {
	if !c.clear() {
		return nil
	}

	if err := c.store.Delete(ctx, StorageKeySecret); err != nil {
		return err
	}

	c.notify(StatusAnonymous)
	return nil
}

// Status reports the admin session state.
func (c *Controller) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.hydrated {
		return StatusLoading
	}
	if c.secret != "" {
		return StatusAuthenticated
	}
	return StatusAnonymous
}

// OnChange registers a listener invoked after every status transition.
func (c *Controller) OnChange(fn func(Status)) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

// attachSecret is the admin channel's request interceptor. The secret is
// read at send time.
func (c *Controller) attachSecret(r *http.Request) error {
	c.mu.RLock()
	secret := c.secret
	c.mu.RUnlock()

	if secret != "" {
		r.Header.Set(SecretHeader, secret)
	}
	return nil
}

// interceptRejection is the admin channel's response interceptor. Both 401
// and 403 force a logout; the logout callback and navigation fire at most
// once per rejection episode even under concurrent rejections.
func (c *Controller) interceptRejection(resp *http.Response, err error) error {
	if resp == nil {
		return err
	}
	if resp.StatusCode != http.StatusUnauthorized && resp.StatusCode != http.StatusForbidden {
		return err
	}

	if c.clear() {
		ctx, cancel := context.WithTimeout(context.Background(), clearTimeout)
		_ = c.store.Delete(ctx, StorageKeySecret)
		cancel()

		c.logger.Warn("admin secret rejected, forcing logout",
			slog.Int("status", resp.StatusCode))

		c.mu.RLock()
		onLogout := c.onLogout
		c.mu.RUnlock()
		if onLogout != nil {
			onLogout()
		}

		c.notify(StatusAnonymous)
		if c.pathFn() != c.loginPath {
			c.navigate(c.loginPath)
		}
	}

	return errors.Join(ErrAdminAccessDenied, err)
}

// clear removes the in-memory secret and reports whether there was one to
// clear; the false return keeps concurrent rejections single-fire.
func (c *Controller) clear() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.hydrated = true
	if c.secret == "" {
		return false
	}
	c.secret = ""
	return true
}

func (c *Controller) notify(status Status) {
	c.mu.RLock()
	listeners := append([](func(Status))(nil), c.listeners...)
	c.mu.RUnlock()

	for _, fn := range listeners {
		fn(status)
	}
}
