package netsuite_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tphakala/go-netsuite"
)

func TestNewClient(t *testing.T) {
	t.Run("success with required options", func(t *testing.T) {
		client, err := netsuite.NewClient(
			netsuite.WithAccount("1234567_SB1"),
			netsuite.WithTokenAuth("ck", "cs", "tid", "ts"),
		)
		require.NoError(t, err)
		assert.NotNil(t, client)
		assert.NotNil(t, client.Vendors)
		assert.NotNil(t, client.CurrencyRates)
		assert.Equal(t,
			"https://1234567-sb1.suitetalk.api.netsuite.com/services/NetSuitePort_2019_2",
			client.Endpoint())
	})

	t.Run("error without account", func(t *testing.T) {
		_, err := netsuite.NewClient(
			netsuite.WithTokenAuth("ck", "cs", "tid", "ts"),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, netsuite.ErrNoAccount)
	})

	t.Run("error without credentials", func(t *testing.T) {
		_, err := netsuite.NewClient(
			netsuite.WithAccount("1234567"),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, netsuite.ErrNoCredentials)
	})

	t.Run("error with partial credentials", func(t *testing.T) {
		_, err := netsuite.NewClient(
			netsuite.WithAccount("1234567"),
			netsuite.WithTokenAuth("ck", "cs", "tid", ""),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, netsuite.ErrNoCredentials)
	})

	t.Run("success with passport", func(t *testing.T) {
		client, err := netsuite.NewClient(
			netsuite.WithAccount("1234567"),
			netsuite.WithPassport("user@example.com", "secret", "3"),
		)
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("success with all options", func(t *testing.T) {
		client, err := netsuite.NewClient(
			netsuite.WithAccount("1234567"),
			netsuite.WithTokenAuth("ck", "cs", "tid", "ts"),
			netsuite.WithEndpoint("https://example.test/services/NetSuitePort_2019_2/"),
			netsuite.WithApplicationID("app-1"),
			netsuite.WithUserAgent("test-agent/1.0"),
			netsuite.WithLogger(zap.NewNop()),
			netsuite.WithMetricsRegisterer(prometheus.NewRegistry()),
			netsuite.WithTimeout(60*time.Second),
		)
		require.NoError(t, err)
		assert.Equal(t, "https://example.test/services/NetSuitePort_2019_2", client.Endpoint())
	})

	t.Run("metrics registered twice on one registry", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		for range 2 {
			_, err := netsuite.NewClient(
				netsuite.WithAccount("1234567"),
				netsuite.WithTokenAuth("ck", "cs", "tid", "ts"),
				netsuite.WithMetricsRegisterer(reg),
			)
			require.NoError(t, err)
		}
	})

	t.Run("success with custom HTTP client", func(t *testing.T) {
		customClient := &http.Client{
			Timeout: 90 * time.Second,
		}
		client, err := netsuite.NewClient(
			netsuite.WithAccount("1234567"),
			netsuite.WithTokenAuth("ck", "cs", "tid", "ts"),
			netsuite.WithHTTPClient(customClient),
		)
		require.NoError(t, err)
		assert.NotNil(t, client)
	})
}

func TestClient_Records(t *testing.T) {
	client, err := netsuite.NewClient(
		netsuite.WithAccount("1234567"),
		netsuite.WithTokenAuth("ck", "cs", "tid", "ts"),
	)
	require.NoError(t, err)

	tests := []struct {
		name string
		svc  netsuite.RecordService
		want string
	}{
		{"Accounts", client.Accounts, "Account"},
		{"Classifications", client.Classifications, "Classification"},
		{"Contacts", client.Contacts, "Contact"},
		{"Currencies", client.Currencies, "Currency"},
		{"CurrencyRates", client.CurrencyRates, "CurrencyRate"},
		{"Customers", client.Customers, "Customer"},
		{"Departments", client.Departments, "Department"},
		{"Employees", client.Employees, "Employee"},
		{"Locations", client.Locations, "Location"},
		{"Subsidiaries", client.Subsidiaries, "Subsidiary"},
		{"Vendors", client.Vendors, "Vendor"},
		{"Records", client.Records("VendorBill"), "VendorBill"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.svc.TypeName())
		})
	}
}

func TestDefaultEndpoint(t *testing.T) {
	assert.Equal(t,
		"https://tstdrv123.suitetalk.api.netsuite.com/services/NetSuitePort_2019_2",
		netsuite.DefaultEndpoint("TSTDRV123"))
}
