// Package api provides the low-level SOAP transport for SuiteTalk calls.
package api

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tphakala/go-netsuite/internal/auth"
)

const (
	defaultHTTPTimeout = 30 * time.Second
	defaultMaxBodySize = 32 * 1024 * 1024 // 32MB, search pages of full records are large
)

// RequestIDHeader carries the per-call correlation identifier.
const RequestIDHeader = "X-Request-ID"

// Transport handles HTTP communication with the SuiteTalk endpoint.
type Transport struct {
	Endpoint      *url.URL
	HTTPClient    *http.Client
	Credentials   auth.Credentials
	UserAgent     string
	ApplicationID string
	Logger        *zap.Logger
	Metrics       *Metrics

	now func() time.Time
}

// NewTransport creates a Transport with the given configuration.
func NewTransport(endpoint string, creds auth.Credentials, httpClient *http.Client) (*Transport, error) {
	if creds == nil {
		return nil, fmt.Errorf("credentials must be provided")
	}

	u, err := url.Parse(strings.TrimSuffix(endpoint, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}

	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: defaultHTTPTimeout,
		}
	}

	return &Transport{
		Endpoint:    u,
		HTTPClient:  httpClient,
		Credentials: creds,
		UserAgent:   "go-netsuite/1.0",
		Logger:      zap.NewNop(),
		now:         time.Now,
	}, nil
}

// Request represents one SOAP operation.
type Request struct {
	// Action is the operation name, sent as SOAPAction.
	Action      string
	Body        any
	Preferences *SearchPreferences
	Headers     http.Header
}

// Response represents a decoded SOAP response.
type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
	RequestID  string

	// Payload is the first element inside soapenv:Body, nil on faults.
	Payload *Node
	Fault   *Fault
}

// Do executes a SOAP request and decodes the envelope. HTTP error statuses
// are returned in the Response, not as errors; a fault body is decoded when
// present.
func (t *Transport) Do(ctx context.Context, req *Request) (*Response, error) {
	start := t.now()
	resp, err := t.do(ctx, req)
	elapsed := t.now().Sub(start)

	outcome := OutcomeOK
	switch {
	case err != nil:
		outcome = OutcomeError
	case resp.Fault != nil:
		outcome = OutcomeFault
	case resp.StatusCode >= http.StatusBadRequest:
		outcome = OutcomeHTTPError
	}
	t.Metrics.observe(req.Action, outcome, elapsed)

	fields := []zap.Field{
		zap.String("operation", req.Action),
		zap.String("outcome", outcome),
		zap.Duration("elapsed", elapsed),
	}
	if resp != nil {
		fields = append(fields, zap.Int("status", resp.StatusCode), zap.String("request_id", resp.RequestID))
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	t.logger().Debug("soap call", fields...)

	return resp, err
}

func (t *Transport) do(ctx context.Context, req *Request) (*Response, error) {
	httpReq, requestID, err := t.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	httpResp, err := t.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	limitedReader := io.LimitReader(httpResp.Body, defaultMaxBodySize+1)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if int64(len(body)) > defaultMaxBodySize {
		return nil, fmt.Errorf("response too large: exceeds %d bytes", defaultMaxBodySize)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Body:       body,
		Headers:    httpResp.Header,
		RequestID:  requestID,
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return resp, nil
	}

	var env responseEnvelope
	if err := xml.Unmarshal(body, &env); err != nil {
		// Gateways answer some HTTP errors with HTML; leave those to the caller.
		if resp.StatusCode >= http.StatusBadRequest {
			return resp, nil
		}
		return resp, fmt.Errorf("unmarshaling response: %w", err)
	}

	resp.Fault = env.Body.Fault
	if len(env.Body.Nodes) > 0 {
		resp.Payload = &env.Body.Nodes[0]
	}

	return resp, nil
}

func (t *Transport) buildRequest(ctx context.Context, req *Request) (*http.Request, string, error) {
	header := []any{t.Credentials.Header(t.now())}
	if t.ApplicationID != "" {
		header = append(header, &ApplicationInfo{ApplicationID: t.ApplicationID})
	}
	if req.Preferences != nil {
		header = append(header, req.Preferences)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(newEnvelope(header, req.Body)); err != nil {
		return nil, "", fmt.Errorf("marshaling request envelope: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.Endpoint.String(), &buf)
	if err != nil {
		return nil, "", fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "text/xml; charset=utf-8")
	httpReq.Header.Set("Accept", "text/xml")
	httpReq.Header.Set("SOAPAction", req.Action)
	httpReq.Header.Set("User-Agent", t.UserAgent)

	// Apply custom headers
	for k, v := range req.Headers {
		httpReq.Header[http.CanonicalHeaderKey(k)] = v
	}

	requestID := httpReq.Header.Get(RequestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
		httpReq.Header.Set(RequestIDHeader, requestID)
	}

	return httpReq, requestID, nil
}

func (t *Transport) logger() *zap.Logger {
	if t.Logger == nil {
		return zap.NewNop()
	}
	return t.Logger
}

// SetClock replaces the transport clock. Used by tests to pin passport timestamps.
func (t *Transport) SetClock(now func() time.Time) {
	t.now = now
}
