package netsuite_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/tphakala/go-netsuite"
	"github.com/tphakala/go-netsuite/internal/api"
)

const currencyRatesXML = `<record internalId="7" xsi:type="listAcct:CurrencyRate">` +
	`<baseCurrency internalId="1"><name>USD</name></baseCurrency>` +
	`<transactionCurrency internalId="2"><name>EUR</name></transactionCurrency>` +
	`<exchangeRate>0.92</exchangeRate>` +
	`<effectiveDate>2024-03-01T00:00:00.000-08:00</effectiveDate>` +
	`</record>`

func currencyRateHandler(w http.ResponseWriter, call *soapCall) {
	writeSOAP(w, http.StatusOK, fmt.Sprintf(`<searchResponse xmlns="%s"><searchResult xmlns="%s">`+
		`<status isSuccess="true"/><totalRecords>1</totalRecords><pageSize>1000</pageSize><totalPages>1</totalPages><pageIndex>1</pageIndex>`+
		`<searchId>rates-1</searchId><recordList>%s</recordList></searchResult></searchResponse>`,
		api.NSMessages, api.NSCore, currencyRatesXML))
}

func TestCurrencyRateService_SearchCurrencyRates(t *testing.T) {
	t.Run("sends filter", func(t *testing.T) {
		client, fake := setupTestServer(t, currencyRateHandler)
		date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

		rates := client.CurrencyRates.SearchCurrencyRates(context.Background(), netsuite.CurrencyRateFilter{
			BaseCurrency:        "USD",
			TransactionCurrency: "EUR",
			EffectiveDate:       date,
		})
		require.Len(t, rates, 1)
		assert.Equal(t, "0.92", rates[0].GetString("exchangeRate"))
		assert.Equal(t, "EUR", rates[0].GetRecord("transactionCurrency").GetString("name"))

		searchRecord := fake.Calls()[0].Operation().Child("searchRecord")
		typ, _ := searchRecord.AttrNS(api.NSXSI, "type")
		assert.Equal(t, "platformCommon:CurrencyRateSearchBasic", typ)

		tests := []struct {
			field    string
			operator string
			value    string
		}{
			{"baseCurrency", "anyOf", "USD"},
			{"transactionCurrency", "anyOf", "EUR"},
			{"effectiveDate", "onOrBefore", "2024-03-15T00:00:00Z"},
		}
		for _, tt := range tests {
			field := searchRecord.Child(tt.field)
			require.NotNil(t, field, tt.field)
			op, _ := field.Attr("operator")
			assert.Equal(t, tt.operator, op)
			assert.Equal(t, tt.value, field.Child("searchValue").Text())
		}
	})

	t.Run("defaults", func(t *testing.T) {
		client, fake := setupTestServer(t, currencyRateHandler)

		rates := client.CurrencyRates.SearchCurrencyRates(context.Background(), netsuite.CurrencyRateFilter{})
		require.Len(t, rates, 1)

		searchRecord := fake.Calls()[0].Operation().Child("searchRecord")
		assert.Equal(t, netsuite.DefaultBaseCurrency, searchRecord.Find("baseCurrency", "searchValue").Text())
		assert.Equal(t, netsuite.DefaultTransactionCurrency, searchRecord.Find("transactionCurrency", "searchValue").Text())
		assert.NotEmpty(t, searchRecord.Find("effectiveDate", "searchValue").Text())
	})

	t.Run("failure is logged and yields nil", func(t *testing.T) {
		core, logs := observer.New(zapcore.ErrorLevel)
		client, _ := setupTestServer(t, func(w http.ResponseWriter, call *soapCall) {
			writeSOAP(w, http.StatusInternalServerError, faultXML("INVALID_LOGIN_CREDENTIALS", "Invalid login attempt."))
		}, netsuite.WithLogger(zap.New(core)))

		rates := client.CurrencyRates.SearchCurrencyRates(context.Background(), netsuite.CurrencyRateFilter{
			BaseCurrency:        "USD",
			TransactionCurrency: "GBP",
		})
		assert.Nil(t, rates)

		entries := logs.FilterMessage("error fetching currency rates").All()
		require.Len(t, entries, 1)
		fields := entries[0].ContextMap()
		assert.Equal(t, "CurrencyRate", fields["record_type"])
		assert.Equal(t, "GBP", fields["transaction_currency"])
		assert.Contains(t, fields["error"], "Invalid login attempt.")
	})

	t.Run("failure log carries applied defaults", func(t *testing.T) {
		core, logs := observer.New(zapcore.ErrorLevel)
		client, fake := setupTestServer(t, func(w http.ResponseWriter, call *soapCall) {
			writeSOAP(w, http.StatusInternalServerError, faultXML("INVALID_LOGIN_CREDENTIALS", "Invalid login attempt."))
		}, netsuite.WithLogger(zap.New(core)))

		before := time.Now()
		rates := client.CurrencyRates.SearchCurrencyRates(context.Background(), netsuite.CurrencyRateFilter{})
		assert.Nil(t, rates)

		entries := logs.FilterMessage("error fetching currency rates").All()
		require.Len(t, entries, 1)
		fields := entries[0].ContextMap()
		assert.Equal(t, netsuite.DefaultBaseCurrency, fields["base_currency"])
		assert.Equal(t, netsuite.DefaultTransactionCurrency, fields["transaction_currency"])
		effective, ok := fields["effective_date"].(time.Time)
		require.True(t, ok)
		assert.False(t, effective.Before(before.Truncate(time.Second)))

		sent := fake.Calls()[0].Operation().Find("searchRecord", "effectiveDate", "searchValue").Text()
		assert.Equal(t, effective.Format(time.RFC3339), sent)
	})
}

func TestCurrencyRateService_LookupCurrencyRates(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client, _ := setupTestServer(t, currencyRateHandler)

		rates, err := client.CurrencyRates.LookupCurrencyRates(context.Background(), netsuite.CurrencyRateFilter{})
		require.NoError(t, err)
		assert.Equal(t, []string{"7"}, internalIDs(rates))
	})

	t.Run("error propagates", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		client, _ := setupTestServer(t, func(w http.ResponseWriter, call *soapCall) {
			writeSOAP(w, http.StatusInternalServerError, faultXML("INVALID_LOGIN_CREDENTIALS", "Invalid login attempt."))
		}, netsuite.WithLogger(zap.New(core)))

		rates, err := client.CurrencyRates.LookupCurrencyRates(context.Background(), netsuite.CurrencyRateFilter{})
		assert.Nil(t, rates)
		var authErr *netsuite.AuthenticationError
		require.ErrorAs(t, err, &authErr)
		assert.Zero(t, logs.FilterMessage("error fetching currency rates").Len())
	})
}
