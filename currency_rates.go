package netsuite

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tphakala/go-netsuite/internal/api"
)

// Currency rate lookup defaults.
const (
	DefaultBaseCurrency        = "USD"
	DefaultTransactionCurrency = "EUR"
)

// CurrencyRateFilter selects the rates between two currencies effective on
// or before a date.
type CurrencyRateFilter struct {
	BaseCurrency        string
	TransactionCurrency string
	// EffectiveDate defaults to the current time.
	EffectiveDate time.Time
}

// withDefaults fills unset fields with the default currencies and the current time.
func (f CurrencyRateFilter) withDefaults() CurrencyRateFilter {
	if f.BaseCurrency == "" {
		f.BaseCurrency = DefaultBaseCurrency
	}
	if f.TransactionCurrency == "" {
		f.TransactionCurrency = DefaultTransactionCurrency
	}
	if f.EffectiveDate.IsZero() {
		f.EffectiveDate = time.Now()
	}
	return f
}

func (f CurrencyRateFilter) criteria() *SearchCriteria {
	f = f.withDefaults()
	return NewSearchCriteria().
		Add("baseCurrency", OperatorAnyOf, f.BaseCurrency).
		Add("transactionCurrency", OperatorAnyOf, f.TransactionCurrency).
		Add("effectiveDate", OperatorOnOrBefore, f.EffectiveDate)
}

// CurrencyRateService provides operations on CurrencyRate records.
type CurrencyRateService interface {
	RecordService

	// LookupCurrencyRates returns the matching rates, propagating any error.
	LookupCurrencyRates(ctx context.Context, filter CurrencyRateFilter, opts ...RequestOption) ([]*Record, error)

	// SearchCurrencyRates is the best-effort form of LookupCurrencyRates:
	// failures are logged and reported as a nil result, so "no rates" and
	// "call failed" are only distinguishable through the logs.
	SearchCurrencyRates(ctx context.Context, filter CurrencyRateFilter, opts ...RequestOption) []*Record
}

// currencyRateService implements CurrencyRateService.
type currencyRateService struct {
	*recordService
}

func newCurrencyRateService(transport *api.Transport, logger *zap.Logger) *currencyRateService {
	return &currencyRateService{
		recordService: newRecordService(transport, "CurrencyRate", logger),
	}
}

// LookupCurrencyRates returns the matching rates.
func (s *currencyRateService) LookupCurrencyRates(ctx context.Context, filter CurrencyRateFilter, opts ...RequestOption) ([]*Record, error) {
	return s.SearchWith(ctx, filter.criteria(), opts...)
}

// SearchCurrencyRates returns the matching rates, or nil after logging the failure.
func (s *currencyRateService) SearchCurrencyRates(ctx context.Context, filter CurrencyRateFilter, opts ...RequestOption) []*Record {
	filter = filter.withDefaults()
	records, err := s.LookupCurrencyRates(ctx, filter, opts...)
	if err != nil {
		s.logger.Error("error fetching currency rates",
			zap.String("base_currency", filter.BaseCurrency),
			zap.String("transaction_currency", filter.TransactionCurrency),
			zap.Time("effective_date", filter.EffectiveDate),
			zap.Error(err),
		)
		return nil
	}
	return records
}
