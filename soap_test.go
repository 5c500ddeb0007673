package netsuite_test

import (
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-netsuite"
	"github.com/tphakala/go-netsuite/internal/api"
)

// soapCall is one request received by the fake SuiteTalk endpoint.
type soapCall struct {
	Action   string
	Header   http.Header
	Envelope api.Node
}

// Operation returns the operation element inside soapenv:Body.
func (c *soapCall) Operation() *api.Node {
	body := c.Envelope.Child("Body")
	if body == nil || len(body.Nodes) == 0 {
		return nil
	}
	return &body.Nodes[0]
}

// PageSize returns the searchPreferences page size, 0 when absent.
func (c *soapCall) PageSize() int {
	n, _ := strconv.Atoi(c.Envelope.Find("Header", "searchPreferences", "pageSize").Text())
	return n
}

// PageIndex returns the searchMoreWithId page index.
func (c *soapCall) PageIndex() int {
	n, _ := strconv.Atoi(c.Operation().Child("pageIndex").Text())
	return n
}

type fakeSuiteTalk struct {
	mu    sync.Mutex
	calls []*soapCall
}

func (f *fakeSuiteTalk) Calls() []*soapCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*soapCall(nil), f.calls...)
}

func (f *fakeSuiteTalk) Actions() []string {
	var actions []string
	for _, c := range f.Calls() {
		actions = append(actions, c.Action)
	}
	return actions
}

// setupTestServer starts a fake SuiteTalk endpoint and a client pointed at it.
func setupTestServer(t *testing.T, handler func(w http.ResponseWriter, call *soapCall), opts ...netsuite.ClientOption) (*netsuite.Client, *fakeSuiteTalk) {
	t.Helper()
	fake := &fakeSuiteTalk{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		call := &soapCall{
			Action: r.Header.Get("SOAPAction"),
			Header: r.Header.Clone(),
		}
		if err := xml.Unmarshal(body, &call.Envelope); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		fake.mu.Lock()
		fake.calls = append(fake.calls, call)
		fake.mu.Unlock()

		handler(w, call)
	}))
	t.Cleanup(server.Close)

	base := []netsuite.ClientOption{
		netsuite.WithAccount("TSTDRV1"),
		netsuite.WithTokenAuth("test-consumer-key", "test-consumer-secret", "test-token-id", "test-token-secret"),
		netsuite.WithEndpoint(server.URL),
		netsuite.WithNonceFunc(func() string { return "test-nonce" }),
	}
	client, err := netsuite.NewClient(append(base, opts...)...)
	require.NoError(t, err)

	return client, fake
}

func writeSOAP(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	w.WriteHeader(status)
	_, _ = fmt.Fprintf(w,
		`<?xml version="1.0" encoding="UTF-8"?><soapenv:Envelope xmlns:soapenv="%s" xmlns:xsi="%s"><soapenv:Body>%s</soapenv:Body></soapenv:Envelope>`,
		api.NSSoapEnv, api.NSXSI, body)
}

func faultXML(code, message string) string {
	return fmt.Sprintf(`<soapenv:Fault><faultcode>soapenv:Server.userException</faultcode><faultstring>%s</faultstring>`+
		`<detail><platformFaults:invalidCredentialsFault xmlns:platformFaults="urn:faults_2019_2.platform.webservices.netsuite.com">`+
		`<platformFaults:code>%s</platformFaults:code><platformFaults:message>%s</platformFaults:message>`+
		`</platformFaults:invalidCredentialsFault></detail></soapenv:Fault>`, message, code, message)
}

func statusFailureXML(code, message string) string {
	return fmt.Sprintf(`<status isSuccess="false"><statusDetail type="ERROR"><code>%s</code><message>%s</message></statusDetail></status>`,
		code, message)
}

// searchResponseXML renders page of a search over total vendors with
// internal IDs 1..total.
func searchResponseXML(action string, total, size, page int) string {
	if size == 0 {
		size = 1000
	}
	pages := (total + size - 1) / size

	var b strings.Builder
	fmt.Fprintf(&b, `<%sResponse xmlns="%s"><searchResult xmlns="%s"><status isSuccess="true"/>`, action, api.NSMessages, api.NSCore)
	fmt.Fprintf(&b, `<totalRecords>%d</totalRecords><pageSize>%d</pageSize><totalPages>%d</totalPages><pageIndex>%d</pageIndex><searchId>search-1</searchId>`,
		total, size, pages, page)
	if total > 0 {
		b.WriteString(`<recordList>`)
		for id := (page-1)*size + 1; id <= min(page*size, total); id++ {
			fmt.Fprintf(&b, `<record internalId="%d" xsi:type="listRel:Vendor"><entityId>Vendor %d</entityId></record>`, id, id)
		}
		b.WriteString(`</recordList>`)
	}
	fmt.Fprintf(&b, `</searchResult></%sResponse>`, action)
	return b.String()
}

// pagingHandler serves search and searchMoreWithId over total vendors.
func pagingHandler(t *testing.T, total int) func(http.ResponseWriter, *soapCall) {
	return func(w http.ResponseWriter, call *soapCall) {
		page := 1
		switch call.Action {
		case "search":
		case "searchMoreWithId":
			page = call.PageIndex()
			if got := call.Operation().Child("searchId").Text(); got != "search-1" {
				t.Errorf("searchId = %q, want search-1", got)
			}
		default:
			t.Errorf("unexpected action %q", call.Action)
		}
		writeSOAP(w, http.StatusOK, searchResponseXML(call.Action, total, call.PageSize(), page))
	}
}

func internalIDs(records []*netsuite.Record) []string {
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.InternalID())
	}
	return ids
}

func idRange(from, to int) []string {
	var ids []string
	for i := from; i <= to; i++ {
		ids = append(ids, strconv.Itoa(i))
	}
	return ids
}
