package netsuite

import (
	"context"
	"errors"
	"iter"

	"go.uber.org/zap"

	"github.com/tphakala/go-netsuite/internal/api"
)

// RecordService provides operations on one NetSuite record type.
//
//go:generate mockery --name=RecordService --output=mocks --outpkg=mocks --filename=record_service.go
type RecordService interface {
	// TypeName returns the schema name of the record type, e.g. "Contact".
	TypeName() string

	// Get retrieves one record. Exactly one of internalID and externalID
	// must be non-empty.
	Get(ctx context.Context, internalID, externalID string, opts ...RequestOption) (*Record, error)

	// GetRef builds a serialized reference to a record without a remote call.
	// Exactly one of internalID and externalID must be non-empty.
	GetRef(internalID, externalID string) (*Record, error)

	// Search returns the first page of records whose attribute matches value.
	Search(ctx context.Context, attribute string, value any, operator Operator, opts ...RequestOption) ([]*Record, error)

	// SearchWith returns the first page of records matching criteria.
	SearchWith(ctx context.Context, criteria *SearchCriteria, opts ...RequestOption) ([]*Record, error)

	// Count returns the total number of records of this type.
	Count(ctx context.Context, opts ...RequestOption) (int, error)

	// GetAll retrieves every record, page by page, into one slice.
	GetAll(ctx context.Context, opts ...RequestOption) ([]*Record, error)

	// GetAllGenerator returns an iterator yielding one page of records per step.
	GetAllGenerator(ctx context.Context, pageSize int, opts ...RequestOption) iter.Seq2[[]*Record, error]

	// ListAll retrieves every record with the getAll operation. Only
	// types such as Currency or State support it.
	ListAll(ctx context.Context, opts ...RequestOption) ([]*Record, error)

	// NewPaginatedSearch returns an uninitialized paginated search.
	NewPaginatedSearch(pageSize int, criteria *SearchCriteria, opts ...RequestOption) *PaginatedSearch

	// Post creates or updates a record.
	Post(ctx context.Context, record *Record, opts ...RequestOption) (*Record, error)
}

// recordService implements RecordService.
type recordService struct {
	transport *api.Transport
	typeName  string
	logger    *zap.Logger
}

func newRecordService(transport *api.Transport, typeName string, logger *zap.Logger) *recordService {
	return &recordService{
		transport: transport,
		typeName:  typeName,
		logger:    logger.With(zap.String("record_type", typeName)),
	}
}

// TypeName returns the record type name.
func (s *recordService) TypeName() string {
	return s.typeName
}

// validateIdentifiers checks that exactly one identifier is given.
func validateIdentifiers(internalID, externalID string) error {
	switch {
	case internalID == "" && externalID == "":
		return &ValidationError{Message: "one of internalId or externalId is required"}
	case internalID != "" && externalID != "":
		return &ValidationError{Message: "internalId and externalId are mutually exclusive"}
	}
	return nil
}

// Get retrieves a single record.
func (s *recordService) Get(ctx context.Context, internalID, externalID string, opts ...RequestOption) (*Record, error) {
	if err := validateIdentifiers(internalID, externalID); err != nil {
		return nil, err
	}

	ref := RecordRef{
		Type:       recordTypeRef(s.typeName),
		InternalID: internalID,
		ExternalID: externalID,
	}.wire("platformMsgs:baseRef")
	ref.XSIType = "platformCore:RecordRef"

	resp, err := s.call(ctx, "get", &api.GetRequest{BaseRef: ref}, nil, opts)
	if err != nil {
		return nil, err
	}

	read := resp.Payload.Child("readResponse")
	if err := statusError("get", resp, read.Child("status")); err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			nf.RecordType = s.typeName
			nf.InternalID = internalID
			nf.ExternalID = externalID
		}
		return nil, err
	}

	record := read.Child("record")
	if record == nil || record.IsNil() {
		return nil, &NotFoundError{
			RemoteCallError: RemoteCallError{
				Operation:  "get",
				StatusCode: resp.StatusCode,
				RequestID:  resp.RequestID,
				Message:    "response carries no record",
			},
			RecordType: s.typeName,
			InternalID: internalID,
			ExternalID: externalID,
		}
	}

	return serializeRecord(record), nil
}

// GetRef builds a serialized reference.
func (s *recordService) GetRef(internalID, externalID string) (*Record, error) {
	if err := validateIdentifiers(internalID, externalID); err != nil {
		return nil, err
	}
	return RecordRef{
		Type:       recordTypeRef(s.typeName),
		InternalID: internalID,
		ExternalID: externalID,
	}.Record(), nil
}

// Search returns the first page of records matching a single-field constraint.
func (s *recordService) Search(ctx context.Context, attribute string, value any, operator Operator, opts ...RequestOption) ([]*Record, error) {
	if attribute == "" {
		return nil, &ValidationError{Field: "attribute", Message: "search attribute cannot be empty"}
	}
	return s.SearchWith(ctx, NewSearchCriteria().Add(attribute, operator, value), opts...)
}

// SearchWith returns the first page of records matching criteria.
func (s *recordService) SearchWith(ctx context.Context, criteria *SearchCriteria, opts ...RequestOption) ([]*Record, error) {
	body, err := newSearchRequest(s.typeName, criteria)
	if err != nil {
		return nil, err
	}

	result, err := s.search(ctx, "search", body, 0, opts)
	if err != nil {
		return nil, err
	}
	return result.records, nil
}

// Count returns the total number of records.
func (s *recordService) Count(ctx context.Context, opts ...RequestOption) (int, error) {
	ps := newPaginatedSearch(s, countPageSize, nil, opts)
	if err := ps.Search(ctx); err != nil {
		return 0, err
	}
	return ps.TotalRecords(), nil
}

// GetAll retrieves every record into one slice.
func (s *recordService) GetAll(ctx context.Context, opts ...RequestOption) ([]*Record, error) {
	records, err := Collect(Flatten(s.GetAllGenerator(ctx, defaultPageSize, opts...)))
	if err != nil {
		return nil, err
	}
	return records, nil
}

// GetAllGenerator returns an iterator over pages of records.
func (s *recordService) GetAllGenerator(ctx context.Context, pageSize int, opts ...RequestOption) iter.Seq2[[]*Record, error] {
	return s.NewPaginatedSearch(pageSize, nil, opts...).Pages(ctx)
}

// NewPaginatedSearch returns an uninitialized paginated search.
func (s *recordService) NewPaginatedSearch(pageSize int, criteria *SearchCriteria, opts ...RequestOption) *PaginatedSearch {
	return newPaginatedSearch(s, pageSize, criteria, opts)
}

// ListAll retrieves every record with getAll.
func (s *recordService) ListAll(ctx context.Context, opts ...RequestOption) ([]*Record, error) {
	body := &api.GetAllRequest{
		Record: api.GetAllRecord{RecordType: recordTypeRef(s.typeName)},
	}

	resp, err := s.call(ctx, "getAll", body, nil, opts)
	if err != nil {
		return nil, err
	}

	result := resp.Payload.Child("getAllResult")
	if err := statusError("getAll", resp, result.Child("status")); err != nil {
		return nil, err
	}
	return serializeRecordList(result.Child("recordList")), nil
}

// Post is not supported yet.
func (s *recordService) Post(_ context.Context, _ *Record, _ ...RequestOption) (*Record, error) {
	return nil, &UnimplementedOperationError{Operation: "post", RecordType: s.typeName}
}

// search runs a search or searchMoreWithId call and parses the result page.
func (s *recordService) search(ctx context.Context, op string, body any, pageSize int, opts []RequestOption) (*searchResult, error) {
	prefs := &api.SearchPreferences{
		BodyFieldsOnly: true,
		PageSize:       pageSize,
	}

	resp, err := s.call(ctx, op, body, prefs, opts)
	if err != nil {
		return nil, err
	}
	return parseSearchResult(op, resp)
}

// call performs one SOAP operation and converts transport failures, faults
// and HTTP errors into typed errors.
func (s *recordService) call(ctx context.Context, op string, body any, prefs *api.SearchPreferences, opts []RequestOption) (*api.Response, error) {
	reqCfg := newRequestConfig()
	reqCfg.apply(opts...)

	resp, err := s.transport.Do(ctx, &api.Request{
		Action:      op,
		Body:        body,
		Preferences: prefs,
		Headers:     reqCfg.headers,
	})
	if err != nil {
		return nil, transportError(op, err)
	}

	if resp.Fault != nil || resp.StatusCode >= 400 {
		return nil, parseFault(op, resp)
	}

	if resp.Payload == nil {
		return nil, &RemoteCallError{
			Operation:  op,
			StatusCode: resp.StatusCode,
			RequestID:  resp.RequestID,
			Message:    "empty response body",
		}
	}

	return resp, nil
}
