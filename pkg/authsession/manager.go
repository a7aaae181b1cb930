package authsession

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/agentforge/clientkit/pkg/credstore"
	"github.com/agentforge/clientkit/pkg/httpclient"
)

// Persisted storage keys. The manager is the only component that writes
// them; both are always written and cleared together.
const (
	StorageKeyToken = "token"
	StorageKeyUser  = "user"
)

// NavigateFunc receives route changes triggered by forced session clears.
type NavigateFunc func(path string)

// clearTimeout bounds the persisted-store write that happens during a
// forced clear, which runs outside any caller's context.
const clearTimeout = 5 * time.Second

// Manager owns the user session. Construct exactly one per application;
// the constructor installs the user channel's interceptor pair and
// re-registering them is not supported.
type Manager struct {
	public    *httpclient.Channel
	store     credstore.Store
	navigate  NavigateFunc
	loginPath string
	logger    *slog.Logger

	mu        sync.RWMutex
	hydrated  bool
	token     string
	principal *Principal
	listeners []func(Status)
}

// Option configures a Manager.
type Option func(*Manager)

// WithNavigate sets the navigation sink invoked on a forced clear.
func WithNavigate(fn NavigateFunc) Option {
	return func(m *Manager) {
		if fn != nil {
			m.navigate = fn
		}
	}
}

// WithLoginPath overrides the route a forced clear navigates to.
func WithLoginPath(path string) Option {
	return func(m *Manager) {
		if path != "" {
			m.loginPath = path
		}
	}
}

// WithLogger sets the structured logger. Discards by default.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager creates the user session manager and wires it into the given
// channels: login/signup go out through public, and the credential
// interceptors are installed on user.
func NewManager(public, user *httpclient.Channel, store credstore.Store, opts ...Option) *Manager {
	m := &Manager{
		public:    public,
		store:     store,
		navigate:  func(string) {},
		loginPath: "/login",
		logger:    slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(1 << 30)})),
	}

	for _, opt := range opts {
		opt(m)
	}

	user.OnRequest(m.attachCredential)
	user.OnResponse(m.interceptUnauthorized)

	return m
}

// Hydrate loads the persisted session. Status stays Loading until it
// completes; afterwards it resolves to Authenticated or Anonymous. A pair
// with only one half present is cleared rather than surfaced.
func (m *Manager) Hydrate(ctx context.Context) error {
	token, tokenErr := m.store.Get(ctx, StorageKeyToken)
	userJSON, userErr := m.store.Get(ctx, StorageKeyUser)

	var principal *Principal
	switch {
	case tokenErr == nil && userErr == nil && token != "":
		var decoded struct {
			ID    flexibleID `json:"id"`
			Email string     `json:"email"`
			Name  string     `json:"name"`
			Tier  Tier       `json:"tier"`
		}
		if err := json.Unmarshal([]byte(userJSON), &decoded); err == nil && decoded.ID != "" {
			tier := decoded.Tier
			if tier == "" {
				tier = TierFree
			}
			principal = &Principal{ID: string(decoded.ID), Email: decoded.Email, Name: decoded.Name, Tier: tier}
		} else {
			m.logger.Warn("dropping unreadable persisted principal")
			token = ""
			_ = m.store.Delete(ctx, StorageKeyToken, StorageKeyUser)
		}

	case errors.Is(tokenErr, credstore.ErrKeyNotFound) && errors.Is(userErr, credstore.ErrKeyNotFound):
		// Nothing persisted: anonymous.
		token = ""

	case tokenErr != nil && !errors.Is(tokenErr, credstore.ErrKeyNotFound):
		return tokenErr

	case userErr != nil && !errors.Is(userErr, credstore.ErrKeyNotFound):
		return userErr

	default:
		// Half a pair violates session atomicity; drop both.
		m.logger.Warn("clearing half-present persisted session")
		token = ""
		_ = m.store.Delete(ctx, StorageKeyToken, StorageKeyUser)
	}

	m.mu.Lock()
	m.hydrated = true
	if principal != nil {
		m.token = token
		m.principal = principal
	}
	m.mu.Unlock()

	m.notify(m.Status())
	return nil
}

// Login exchanges credentials for a session. On success the credential and
// principal are set and persisted atomically; on server rejection the
// returned error wraps ErrAuthRejected with the server's detail message
// and the session remains anonymous.
func (m *Manager) Login(ctx context.Context, email, password string) (*Principal, error) {
	return m.authenticate(ctx, "/api/auth/login", email, password)
}

// Signup registers a new account and establishes a session with the same
// contract as Login. New accounts start on the free tier.
func (m *Manager) Signup(ctx context.Context, email, password string) (*Principal, error) {
	return m.authenticate(ctx, "/api/auth/signup", email, password)
}

func (m *Manager) authenticate(ctx context.Context, path, email, password string) (*Principal, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var resp struct {
		AccessToken string     `json:"access_token"`
		UserID      flexibleID `json:"user_id"`
		Email       string     `json:"email"`
		Name        string     `json:"name"`
		Tier        Tier       `json:"tier"`
	}

	if err := m.public.Post(ctx, path, body, &resp); err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) {
			return nil, errors.Join(ErrAuthRejected, err)
		}
		// Network failures and timeouts are not credential rejections.
		return nil, err
	}

	if resp.AccessToken == "" || resp.UserID == "" {
		return nil, errors.Join(ErrAuthRejected, errors.New("server returned no session"))
	}

	tier := resp.Tier
	if tier == "" {
		tier = TierFree
	}
	principal := &Principal{
		ID:    string(resp.UserID),
		Email: resp.Email,
		Name:  resp.Name,
		Tier:  tier,
	}

	if err := m.establish(ctx, resp.AccessToken, principal); err != nil {
		return nil, err
	}

	m.logger.Info("user session established", slog.String("user_id", principal.ID))
	return principal, nil
}

// establish persists and activates a session atomically. The store write
// happens first so a persistence failure leaves the session anonymous
// rather than half-established.
func (m *Manager) establish(ctx context.Context, token string, principal *Principal) error {
	encoded, err := json.Marshal(principal)
	if err != nil {
		return errors.Join(ErrInvalidPrincipal, err)
	}

	if err := m.store.SetMany(ctx, map[string]string{
		StorageKeyToken: token,
		StorageKeyUser:  string(encoded),
	}); err != nil {
		return err
	}

	m.mu.Lock()
	m.hydrated = true
	m.token = token
	m.principal = principal
	m.mu.Unlock()

	m.notify(StatusAuthenticated)
	return nil
}

// Logout clears the session and its persisted copies. Idempotent: calling
// it while anonymous is a no-op.
func (m *Manager) Logout(ctx context.Context) error {
	if !m.clear() {
		return nil
	}

	if err := m.store.Delete(ctx, StorageKeyToken, StorageKeyUser); err != nil {
		return err
	}

	m.notify(StatusAnonymous)
	return nil
}

// Status reports the session state.
func (m *Manager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.hydrated {
		return StatusLoading
	}
	if m.token != "" && m.principal != nil {
		return StatusAuthenticated
	}
	return StatusAnonymous
}

// Principal returns a copy of the authenticated identity, or nil.
func (m *Manager) Principal() *Principal {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.principal == nil {
		return nil
	}
	principal := *m.principal
	return &principal
}

// Token returns the current bearer credential, or empty when anonymous.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// OnChange registers a listener invoked after every status transition.
// Listeners run synchronously on the goroutine that caused the change.
func (m *Manager) OnChange(fn func(Status)) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	m.listeners = append(m.listeners, fn)
	m.mu.Unlock()
}

// attachCredential is the user channel's request interceptor. It reads the
// token at send time: a request already in flight keeps the credential it
// was sent with even if the session is cleared before the response lands.
func (m *Manager) attachCredential(r *http.Request) error {
	if token := m.Token(); token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return nil
}

// interceptUnauthorized is the user channel's response interceptor. A 401
// forces a session clear and navigates to the login route exactly once,
// even when concurrent requests observe the same expiry; the caller's own
// error still propagates, wrapped as ErrSessionExpired.
func (m *Manager) interceptUnauthorized(resp *http.Response, err error) error {
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		return err
	}

	if m.clear() {
		ctx, cancel := context.WithTimeout(context.Background(), clearTimeout)
		_ = m.store.Delete(ctx, StorageKeyToken, StorageKeyUser)
		cancel()

		m.logger.Warn("session rejected by server, forcing logout")
		m.notify(StatusAnonymous)
		m.navigate(m.loginPath)
	}

	return errors.Join(ErrSessionExpired, err)
}

// clear removes the in-memory pair and reports whether there was a session
// to clear. The false return is what makes concurrent forced clears fire
// their side effects only once.
func (m *Manager) clear() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.hydrated = true
	if m.token == "" && m.principal == nil {
		return false
	}
	m.token = ""
	m.principal = nil
	return true
}

func (m *Manager) notify(status Status) {
	m.mu.RLock()
	listeners := append([](func(Status))(nil), m.listeners...)
	m.mu.RUnlock()

	for _, fn := range listeners {
		fn(status)
	}
}
