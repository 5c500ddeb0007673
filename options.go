package netsuite

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// ClientOption configures a Client.
type ClientOption func(*clientConfig)

type clientConfig struct {
	account       string
	endpoint      string
	tokenAuth     *tokenAuth
	passport      *passportAuth
	applicationID string
	httpClient    *http.Client
	timeout       time.Duration
	userAgent     string
	logger        *zap.Logger
	registerer    prometheus.Registerer
	nonce         func() string
}

type tokenAuth struct {
	consumerKey    string
	consumerSecret string
	tokenID        string
	tokenSecret    string
}

type passportAuth struct {
	email    string
	password string
	role     string
}

// WithAccount sets the NetSuite account ID, e.g. "1234567" or "1234567_SB1".
func WithAccount(account string) ClientOption {
	return func(c *clientConfig) {
		c.account = account
	}
}

// WithTokenAuth configures token-based authentication.
func WithTokenAuth(consumerKey, consumerSecret, tokenID, tokenSecret string) ClientOption {
	return func(c *clientConfig) {
		c.tokenAuth = &tokenAuth{
			consumerKey:    consumerKey,
			consumerSecret: consumerSecret,
			tokenID:        tokenID,
			tokenSecret:    tokenSecret,
		}
	}
}

// WithPassport configures legacy email/password authentication. Token
// authentication takes precedence when both are set.
func WithPassport(email, password, role string) ClientOption {
	return func(c *clientConfig) {
		c.passport = &passportAuth{
			email:    email,
			password: password,
			role:     role,
		}
	}
}

// WithApplicationID sends the applicationInfo header with every request.
func WithApplicationID(id string) ClientOption {
	return func(c *clientConfig) {
		c.applicationID = id
	}
}

// WithEndpoint overrides the SuiteTalk endpoint derived from the account.
func WithEndpoint(url string) ClientOption {
	return func(c *clientConfig) {
		c.endpoint = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the default request timeout.
// Note: This option is ignored when WithHTTPClient is used;
// set the timeout directly on the provided client instead.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *clientConfig) {
		c.timeout = d
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *clientConfig) {
		c.userAgent = ua
	}
}

// WithLogger sets the logger used by the client and every accessor.
// The default discards all output.
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithMetricsRegisterer enables SOAP call metrics on reg.
func WithMetricsRegisterer(reg prometheus.Registerer) ClientOption {
	return func(c *clientConfig) {
		c.registerer = reg
	}
}

// WithNonceFunc overrides token passport nonce generation.
func WithNonceFunc(fn func() string) ClientOption {
	return func(c *clientConfig) {
		c.nonce = fn
	}
}

// RequestOption configures individual API requests.
type RequestOption func(*requestConfig)

type requestConfig struct {
	headers http.Header
}

func newRequestConfig() *requestConfig {
	return &requestConfig{
		headers: make(http.Header),
	}
}

func (r *requestConfig) apply(opts ...RequestOption) {
	for _, opt := range opts {
		opt(r)
	}
}

// WithHeader adds a custom header to a request.
func WithHeader(key, value string) RequestOption {
	return func(r *requestConfig) {
		r.headers.Set(key, value)
	}
}

// WithHeaders adds multiple custom headers to a request.
func WithHeaders(headers map[string]string) RequestOption {
	return func(r *requestConfig) {
		for k, v := range headers {
			r.headers.Set(k, v)
		}
	}
}

// WithRequestID sets the X-Request-ID header for tracing. Without it every
// call gets a generated ID.
func WithRequestID(id string) RequestOption {
	return WithHeader("X-Request-ID", id)
}
