package netsuite

import (
	"context"
	"iter"
	"strconv"

	"go.uber.org/zap"

	"github.com/tphakala/go-netsuite/internal/api"
)

const (
	defaultPageSize = 20
	maxPageSize     = 1000
	countPageSize   = 10
)

// PaginatedSearch is a stateful remote search handle that partitions results
// into fixed-size pages.
//
// A PaginatedSearch starts uninitialized. The first call to Search, GotoPage
// or Pages runs the remote search and loads page 1; GotoPage then moves to any
// page in [1, TotalPages]. It is not safe for concurrent use.
type PaginatedSearch struct {
	svc      *recordService
	pageSize int
	criteria *SearchCriteria
	opts     []RequestOption

	result   *searchResult
	iterated bool
}

type searchResult struct {
	totalRecords int
	totalPages   int
	pageIndex    int
	pageSize     int
	searchID     string
	records      []*Record
}

func newPaginatedSearch(svc *recordService, pageSize int, criteria *SearchCriteria, opts []RequestOption) *PaginatedSearch {
	return &PaginatedSearch{
		svc:      svc,
		pageSize: normalizePageSize(pageSize),
		criteria: criteria,
		opts:     opts,
	}
}

func normalizePageSize(n int) int {
	switch {
	case n <= 0:
		return defaultPageSize
	case n > maxPageSize:
		return maxPageSize
	default:
		return n
	}
}

// Search runs the initial remote search, loading page 1.
func (p *PaginatedSearch) Search(ctx context.Context) error {
	body, err := newSearchRequest(p.svc.typeName, p.criteria)
	if err != nil {
		return err
	}

	result, err := p.svc.search(ctx, "search", body, p.pageSize, p.opts)
	if err != nil {
		return err
	}
	p.result = result
	return nil
}

// Searched reports whether the initial search has run.
func (p *PaginatedSearch) Searched() bool {
	return p.result != nil
}

// TotalRecords returns the number of matching records.
func (p *PaginatedSearch) TotalRecords() int {
	if p.result == nil {
		return 0
	}
	return p.result.totalRecords
}

// TotalPages returns the number of pages.
func (p *PaginatedSearch) TotalPages() int {
	if p.result == nil {
		return 0
	}
	return p.result.totalPages
}

// PageIndex returns the 1-based index of the current page, 0 before the
// initial search.
func (p *PaginatedSearch) PageIndex() int {
	if p.result == nil {
		return 0
	}
	return p.result.pageIndex
}

// PageSize returns the requested page size.
func (p *PaginatedSearch) PageSize() int {
	return p.pageSize
}

// SearchID returns the remote search handle.
func (p *PaginatedSearch) SearchID() string {
	if p.result == nil {
		return ""
	}
	return p.result.searchID
}

// Records returns the records of the current page.
func (p *PaginatedSearch) Records() []*Record {
	if p.result == nil {
		return nil
	}
	return p.result.records
}

// NumRecords returns the number of records on the current page.
func (p *PaginatedSearch) NumRecords() int {
	return len(p.Records())
}

// GotoPage loads page n. Moving to the current page makes no remote call.
func (p *PaginatedSearch) GotoPage(ctx context.Context, n int) error {
	if p.result == nil {
		if err := p.Search(ctx); err != nil {
			return err
		}
	}

	if n < 1 || n > p.result.totalPages {
		return &InvalidPageError{Page: n, TotalPages: p.result.totalPages}
	}
	if n == p.result.pageIndex {
		return nil
	}

	body := &api.SearchMoreWithIDRequest{
		SearchID:  p.result.searchID,
		PageIndex: n,
	}
	result, err := p.svc.search(ctx, "searchMoreWithId", body, p.pageSize, p.opts)
	if err != nil {
		return err
	}
	// searchMoreWithId responses may omit the handle; it stays valid for the whole search.
	if result.searchID == "" {
		result.searchID = p.result.searchID
	}
	p.result = result
	return nil
}

// Pages returns an iterator over every page, in order, each yielded once.
// It yields nothing when the search matches no records. Pages may be ranged
// over once the initial search has succeeded; later traversals yield
// ErrSearchExhausted. A traversal whose initial search failed may be retried.
func (p *PaginatedSearch) Pages(ctx context.Context) iter.Seq2[[]*Record, error] {
	return func(yield func([]*Record, error) bool) {
		if p.iterated {
			yield(nil, ErrSearchExhausted)
			return
		}

		if p.result == nil {
			if err := p.Search(ctx); err != nil {
				yield(nil, err)
				return
			}
		}
		p.iterated = true

		if p.TotalRecords() == 0 {
			return
		}

		numPages := p.TotalPages()
		logger := p.svc.logger
		logger.Debug("paginated search",
			zap.String("type", p.svc.typeName),
			zap.Int("total_pages", numPages),
			zap.Int("total_records", p.TotalRecords()),
			zap.Int("page_size", p.pageSize),
		)

		for page := 1; page <= numPages; page++ {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
			logger.Debug("going to page", zap.Int("page", page))
			if err := p.GotoPage(ctx, page); err != nil {
				yield(nil, err)
				return
			}
			if !yield(p.Records(), nil) {
				return
			}
		}
	}
}

func newSearchRequest(typeName string, criteria *SearchCriteria) (*api.SearchRequest, error) {
	rec, err := criteria.searchRecord(typeName)
	if err != nil {
		return nil, err
	}
	return &api.SearchRequest{SearchRecord: rec}, nil
}

// parseSearchResult reads a searchResult element.
func parseSearchResult(op string, resp *api.Response) (*searchResult, error) {
	node := resp.Payload.Child("searchResult")
	if node == nil {
		return nil, &RemoteCallError{
			Operation:  op,
			StatusCode: resp.StatusCode,
			RequestID:  resp.RequestID,
			Message:    "response carries no searchResult",
		}
	}
	if err := statusError(op, resp, node.Child("status")); err != nil {
		return nil, err
	}

	result := &searchResult{
		totalRecords: atoi(node.Child("totalRecords").Text()),
		totalPages:   atoi(node.Child("totalPages").Text()),
		pageIndex:    atoi(node.Child("pageIndex").Text()),
		pageSize:     atoi(node.Child("pageSize").Text()),
		searchID:     node.Child("searchId").Text(),
		records:      serializeRecordList(node.Child("recordList")),
	}
	return result, nil
}

func serializeRecordList(list *api.Node) []*Record {
	nodes := list.Children("record")
	records := make([]*Record, 0, len(nodes))
	for _, n := range nodes {
		records = append(records, serializeRecord(n))
	}
	return records
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
