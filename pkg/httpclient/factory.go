package httpclient

import (
	"errors"
	"net/url"
)

// Factory constructs the three outbound channels from one configuration.
// Channels are built once at construction; there are no error conditions
// per call beyond the usual request lifecycle.
type Factory struct {
	public *Channel
	user   *Channel
	admin  *Channel
}

// FactoryOption configures all channels a factory creates.
type FactoryOption func(*factoryConfig)

type factoryConfig struct {
	channelOpts []ChannelOption
}

// WithChannelOptions applies extra channel options (custom HTTP client,
// etc.) to every channel the factory builds. Per-channel timeouts from
// Config are applied after these, so they always win.
func WithChannelOptions(opts ...ChannelOption) FactoryOption {
	return func(fc *factoryConfig) {
		fc.channelOpts = append(fc.channelOpts, opts...)
	}
}

// NewFactory validates the base URL and builds the public, user and admin
// channels with their configured timeouts.
func NewFactory(cfg Config, opts ...FactoryOption) (*Factory, error) {
	if err := validateBaseURL(cfg.BaseURL); err != nil {
		return nil, err
	}

	fc := &factoryConfig{}
	for _, opt := range opts {
		opt(fc)
	}

	build := func(timeout ChannelOption) *Channel {
		channelOpts := append([]ChannelOption(nil), fc.channelOpts...)
		channelOpts = append(channelOpts, timeout)
		return NewChannel(cfg.BaseURL, channelOpts...)
	}

	return &Factory{
		public: build(WithTimeout(cfg.PublicTimeout)),
		user:   build(WithTimeout(cfg.UserTimeout)),
		admin:  build(WithTimeout(cfg.AdminTimeout)),
	}, nil
}

// Public returns the uncredentialed channel used for login and signup.
func (f *Factory) Public() *Channel { return f.public }

// User returns the bearer-token channel.
func (f *Factory) User() *Channel { return f.user }

// Admin returns the shared-secret channel.
func (f *Factory) Admin() *Channel { return f.admin }

// validateBaseURL restricts channels to http/https endpoints.
func validateBaseURL(baseURL string) error {
	if baseURL == "" {
		return errors.Join(ErrInvalidBaseURL, errors.New("base URL is required"))
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return errors.Join(ErrInvalidBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.Join(ErrInvalidBaseURL, errors.New("only http and https schemes are supported"))
	}
	if u.Host == "" {
		return errors.Join(ErrInvalidBaseURL, errors.New("host is required"))
	}

	return nil
}
