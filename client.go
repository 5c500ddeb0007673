// Package netsuite provides a Go client for the NetSuite SuiteTalk SOAP web service.
//
// Basic usage:
//
//	client, err := netsuite.NewClient(
//	    netsuite.WithAccount("1234567"),
//	    netsuite.WithTokenAuth(consumerKey, consumerSecret, tokenID, tokenSecret),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for page, err := range client.Vendors.GetAllGenerator(ctx, 50) {
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(len(page))
//	}
package netsuite

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tphakala/go-netsuite/internal/api"
	"github.com/tphakala/go-netsuite/internal/auth"
)

// Default configuration values.
const defaultTimeout = 30 * time.Second

// Client is the SuiteTalk client. Each accessor field serves one record type.
type Client struct {
	Accounts        RecordService
	Classifications RecordService
	Contacts        RecordService
	Currencies      RecordService
	CurrencyRates   CurrencyRateService
	Customers       RecordService
	Departments     RecordService
	Employees       RecordService
	Locations       RecordService
	Subsidiaries    RecordService
	Vendors         RecordService

	transport *api.Transport
	logger    *zap.Logger
}

// NewClient creates a new SuiteTalk client with the given options.
func NewClient(opts ...ClientOption) (*Client, error) {
	cfg := &clientConfig{
		timeout: defaultTimeout,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.account == "" {
		return nil, ErrNoAccount
	}

	creds := cfg.credentials()
	if creds == nil || !creds.Valid() {
		return nil, ErrNoCredentials
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: cfg.timeout,
		}
	}

	endpoint := cfg.endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint(cfg.account)
	}

	transport, err := api.NewTransport(endpoint, creds, httpClient)
	if err != nil {
		return nil, err
	}

	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	transport.Logger = logger.Named("transport")
	transport.ApplicationID = cfg.applicationID

	if cfg.userAgent != "" {
		transport.UserAgent = cfg.userAgent
	}

	if cfg.registerer != nil {
		metrics, err := api.NewMetrics(cfg.registerer)
		if err != nil {
			return nil, fmt.Errorf("netsuite: registering metrics: %w", err)
		}
		transport.Metrics = metrics
	}

	client := &Client{
		transport: transport,
		logger:    logger,
	}

	// Initialize services
	client.Accounts = client.Records("Account")
	client.Classifications = client.Records("Classification")
	client.Contacts = client.Records("Contact")
	client.Currencies = client.Records("Currency")
	client.CurrencyRates = newCurrencyRateService(transport, logger)
	client.Customers = client.Records("Customer")
	client.Departments = client.Records("Department")
	client.Employees = client.Records("Employee")
	client.Locations = client.Records("Location")
	client.Subsidiaries = client.Records("Subsidiary")
	client.Vendors = client.Records("Vendor")

	return client, nil
}

// Records returns an accessor for any record type, named as in the SuiteTalk
// schema (e.g. "VendorBill").
func (c *Client) Records(typeName string) RecordService {
	return newRecordService(c.transport, typeName, c.logger)
}

// Endpoint returns the SuiteTalk endpoint URL in use.
func (c *Client) Endpoint() string {
	return c.transport.Endpoint.String()
}

// DefaultEndpoint returns the account-specific SuiteTalk endpoint.
func DefaultEndpoint(account string) string {
	host := strings.ReplaceAll(strings.ToLower(account), "_", "-")
	return fmt.Sprintf("https://%s.suitetalk.api.netsuite.com/services/NetSuitePort_%s", host, api.Version)
}

func (c *clientConfig) credentials() auth.Credentials {
	switch {
	case c.tokenAuth != nil:
		return &auth.TokenCredentials{
			Account:        c.account,
			ConsumerKey:    c.tokenAuth.consumerKey,
			ConsumerSecret: c.tokenAuth.consumerSecret,
			TokenID:        c.tokenAuth.tokenID,
			TokenSecret:    c.tokenAuth.tokenSecret,
			Nonce:          c.nonce,
		}
	case c.passport != nil:
		return &auth.PassportCredentials{
			Account:  c.account,
			Email:    c.passport.email,
			Password: c.passport.password,
			Role:     c.passport.role,
		}
	default:
		return nil
	}
}
