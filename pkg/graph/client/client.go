package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/diwise/graph-explorer/pkg/graph"
	"github.com/diwise/graph-explorer/pkg/graph/errors"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	TraceAttributeDialect  string = "graph-dialect"
	TraceAttributeEndpoint string = "graph-endpoint"
)

var tracer = otel.Tracer("graph-explorer-client")

// Transport sends queries to a single graph database endpoint over HTTP
type Transport struct {
	endpoint   string
	dialect    graph.Dialect
	headers    map[string][]string
	debug      bool
	httpClient http.Client
}

func Debug(enabled string) func(*Transport) {
	return func(t *Transport) {
		t.debug = (enabled == "true")
	}
}

// Header adds a header that is sent with every query
func Header(key, value string) func(*Transport) {
	return func(t *Transport) {
		t.headers[key] = append(t.headers[key], value)
	}
}

// NewTransport returns a transport that POSTs queries to endpoint. Gremlin queries are
// sent as a JSON document and openCypher queries as a form, the way Gremlin Server and
// Amazon Neptune expect them.
func NewTransport(endpoint string, dialect graph.Dialect, options ...func(*Transport)) *Transport {
	t := &Transport{
		endpoint: endpoint,
		dialect:  dialect,
		headers:  map[string][]string{},
		httpClient: http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}

	for _, option := range options {
		option(t)
	}

	return t
}

func (t *Transport) Execute(ctx context.Context, query string) (json.RawMessage, error) {
	var err error

	ctx, span := tracer.Start(ctx, "execute-query",
		trace.WithAttributes(attribute.String(TraceAttributeDialect, string(t.dialect))),
		trace.WithAttributes(attribute.String(TraceAttributeEndpoint, t.endpoint)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	body, contentType, err := t.encode(query)
	if err != nil {
		return nil, err
	}

	response, responseBody, err := t.post(ctx, body, contentType)
	if err != nil {
		return nil, err
	}

	if response.StatusCode >= http.StatusBadRequest {
		err = errors.NewErrorFromEnvelope(responseBody)
		if err == nil {
			err = fmt.Errorf("unexpected response code %d (%w)", response.StatusCode, errors.ErrBadResponse)
		}
		return nil, err
	}

	if !json.Valid(responseBody) {
		err = errors.NewDecodeError("response is not valid json", responseBody)
		return nil, err
	}

	return responseBody, nil
}

func (t *Transport) encode(query string) (io.Reader, string, error) {
	switch t.dialect {
	case graph.Gremlin:
		b, err := json.Marshal(struct {
			Gremlin string `json:"gremlin"`
		}{Gremlin: query})
		if err != nil {
			return nil, "", fmt.Errorf("failed to marshal query: %s (%w)", err.Error(), errors.ErrInternal)
		}
		return bytes.NewReader(b), "application/json", nil
	case graph.OpenCypher:
		form := url.Values{}
		form.Set("query", query)
		return strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", nil
	default:
		return nil, "", fmt.Errorf("unsupported dialect %s (%w)", t.dialect, errors.ErrInternal)
	}
}

func (t *Transport) post(ctx context.Context, body io.Reader, contentType string) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %s (%w)", err.Error(), errors.ErrInternal)
	}

	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	for header, headerValue := range t.headers {
		for _, val := range headerValue {
			req.Header.Add(header, val)
		}
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to send request: %s (%w)", err.Error(), errors.ErrRequest)
	}

	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response body: %s (%w)", err.Error(), errors.ErrBadResponse)
	}

	if t.debug && resp.StatusCode >= http.StatusBadRequest {
		reqbytes, _ := httputil.DumpRequest(req, false)
		respbytes, _ := httputil.DumpResponse(resp, false)

		log := logging.GetFromContext(ctx)
		log.Error("query failed", "request", string(reqbytes), "response", string(respbytes), "body", string(respBody))
	}

	return resp, respBody, nil
}

var _ graph.Transport = &Transport{}
