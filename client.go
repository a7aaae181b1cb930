package clientkit

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/agentforge/clientkit/pkg/adminsession"
	"github.com/agentforge/clientkit/pkg/authsession"
	"github.com/agentforge/clientkit/pkg/credstore"
	"github.com/agentforge/clientkit/pkg/httpclient"
	"github.com/agentforge/clientkit/pkg/logger"
	"github.com/agentforge/clientkit/pkg/routeguard"
	"github.com/agentforge/clientkit/svc/account"
	adminsvc "github.com/agentforge/clientkit/svc/admin"
	"github.com/agentforge/clientkit/svc/strategies"
)

var (
	// ErrMissingStorageKey is returned when StoragePath is set without a
	// usable StorageKey.
	ErrMissingStorageKey = errors.New("clientkit.missing_storage_key")

	// ErrInvalidRedisURL is returned when RedisURL cannot be parsed.
	ErrInvalidRedisURL = errors.New("clientkit.invalid_redis_url")
)

// Navigator receives forced-logout redirects. In a browser shell this
// is the route push; headless callers can leave it unset.
type Navigator func(path string)

// Option configures client assembly.
type Option func(*clientOptions)

type clientOptions struct {
	navigate    Navigator
	currentPath func() string
	logger      *slog.Logger
	userStore   credstore.Store
	adminStore  credstore.Store
	channelOpts []httpclient.ChannelOption
}

// WithNavigator sets the redirect sink shared by both session layers.
func WithNavigator(fn Navigator) Option {
	return func(o *clientOptions) {
		o.navigate = fn
	}
}

// WithCurrentPath supplies the current route, used to suppress the
// admin redirect when the admin login page is already showing.
func WithCurrentPath(fn func() string) Option {
	return func(o *clientOptions) {
		o.currentPath = fn
	}
}

// WithLogger sets the logger for all layers. Defaults to a discard
// logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *clientOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithUserStore overrides the user credential store selected from
// Config.
func WithUserStore(store credstore.Store) Option {
	return func(o *clientOptions) {
		o.userStore = store
	}
}

// WithAdminStore overrides the admin credential store. The default is
// in-memory so the shared secret dies with the process.
func WithAdminStore(store credstore.Store) Option {
	return func(o *clientOptions) {
		o.adminStore = store
	}
}

// WithChannelOptions forwards extra options to every HTTP channel.
func WithChannelOptions(opts ...httpclient.ChannelOption) Option {
	return func(o *clientOptions) {
		o.channelOpts = append(o.channelOpts, opts...)
	}
}

// Client bundles the three channels, both session layers, the route
// guards and the typed endpoint services behind one constructor.
type Client struct {
	factory    *httpclient.Factory
	session    *authsession.Manager
	admin      *adminsession.Controller
	userGuard  *routeguard.Guard
	adminGuard *routeguard.Guard
	account    *account.Service
	strategies *strategies.Service
	adminAPI   *adminsvc.Service
}

// New assembles a client from configuration. Credential storage is
// chosen in order: explicit option, RedisURL, StoragePath (encrypted
// file), then in-memory.
func New(cfg Config, opts ...Option) (*Client, error) {
	o := &clientOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		if cfg.LogFormat != "" {
			o.logger = logger.New(
				logger.WithFormat(logger.Format(cfg.LogFormat)),
				logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
			)
		} else {
			o.logger = logger.Discard()
		}
	}

	factory, err := httpclient.NewFactory(cfg.Config, httpclient.WithChannelOptions(o.channelOpts...))
	if err != nil {
		return nil, err
	}

	userStore := o.userStore
	if userStore == nil {
		userStore, err = selectUserStore(cfg)
		if err != nil {
			return nil, err
		}
	}
	adminStore := o.adminStore
	if adminStore == nil {
		adminStore = credstore.NewMemoryStore()
	}

	sessionOpts := []authsession.Option{
		authsession.WithLoginPath(cfg.LoginPath),
		authsession.WithLogger(o.logger),
	}
	adminOpts := []adminsession.Option{
		adminsession.WithLoginPath(cfg.AdminLoginPath),
		adminsession.WithLogger(o.logger),
	}
	if o.navigate != nil {
		sessionOpts = append(sessionOpts, authsession.WithNavigate(authsession.NavigateFunc(o.navigate)))
		adminOpts = append(adminOpts, adminsession.WithNavigate(adminsession.NavigateFunc(o.navigate)))
	}
	if o.currentPath != nil {
		adminOpts = append(adminOpts, adminsession.WithCurrentPath(o.currentPath))
	}

	session := authsession.NewManager(factory.Public(), factory.User(), userStore, sessionOpts...)
	adminCtrl := adminsession.NewController(factory.Admin(), adminStore, adminOpts...)

	return &Client{
		factory:    factory,
		session:    session,
		admin:      adminCtrl,
		userGuard:  routeguard.New(routeguard.UserProbe(session), cfg.LoginPath),
		adminGuard: routeguard.New(routeguard.AdminProbe(adminCtrl), cfg.AdminLoginPath),
		account:    account.New(factory.User()),
		strategies: strategies.New(factory.User()),
		adminAPI:   adminsvc.New(factory.Admin()),
	}, nil
}

func selectUserStore(cfg Config) (credstore.Store, error) {
	switch {
	case cfg.RedisURL != "":
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, errors.Join(ErrInvalidRedisURL, err)
		}
		return credstore.NewRedisStore(redis.NewClient(opt), credstore.WithKeyPrefix("clientkit:")), nil
	case cfg.StoragePath != "":
		if cfg.StorageKey == "" {
			return nil, ErrMissingStorageKey
		}
		key, err := base64.StdEncoding.DecodeString(cfg.StorageKey)
		if err != nil {
			return nil, errors.Join(ErrMissingStorageKey, err)
		}
		return credstore.NewFileStore(cfg.StoragePath, key)
	default:
		return credstore.NewMemoryStore(), nil
	}
}

// Hydrate restores both sessions from their stores. Errors from the
// two layers are joined so a broken store is visible while the other
// session still hydrates.
func (c *Client) Hydrate(ctx context.Context) error {
	return errors.Join(c.session.Hydrate(ctx), c.admin.Hydrate(ctx))
}

// Session is the user session layer.
func (c *Client) Session() *authsession.Manager { return c.session }

// AdminSession is the admin session layer.
func (c *Client) AdminSession() *adminsession.Controller { return c.admin }

// UserGuard evaluates routes that need a user session.
func (c *Client) UserGuard() *routeguard.Guard { return c.userGuard }

// AdminGuard evaluates routes that need an admin session.
func (c *Client) AdminGuard() *routeguard.Guard { return c.adminGuard }

// Account is the typed surface for the user's own endpoints.
func (c *Client) Account() *account.Service { return c.account }

// Strategies is the typed surface for strategy endpoints.
func (c *Client) Strategies() *strategies.Service { return c.strategies }

// Admin is the typed surface for operator endpoints.
func (c *Client) Admin() *adminsvc.Service { return c.adminAPI }
