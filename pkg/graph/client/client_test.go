package client

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/diwise/graph-explorer/pkg/graph"
	graphErrors "github.com/diwise/graph-explorer/pkg/graph/errors"
	testutils "github.com/diwise/service-chassis/pkg/test/http"
	"github.com/diwise/service-chassis/pkg/test/http/expects"
	"github.com/diwise/service-chassis/pkg/test/http/response"
	"github.com/matryer/is"
)

var Expects = testutils.Expects
var Returns = testutils.Returns
var anyInput = expects.AnyInput
var method = expects.RequestMethod
var path = expects.RequestPath
var body = expects.RequestBody
var bodyContaining = expects.RequestBodyContaining

func TestGremlinQueryIsPostedAsJSON(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(
			is,
			method(http.MethodPost),
			path("/gremlin"),
			body(`{"gremlin":"g.V(\"1\")"}`),
		),
		Returns(
			response.ContentType("application/json"),
			response.Code(http.StatusOK),
			response.Body([]byte(`{"requestId":"r","status":{"code":200},"result":{"data":null}}`)),
		),
	)
	defer s.Close()

	transport := NewTransport(s.URL()+"/gremlin", graph.Gremlin)

	result, err := transport.Execute(context.Background(), `g.V("1")`)
	is.NoErr(err)
	is.True(len(result) > 0)
	is.Equal(s.RequestCount(), 1)
}

func TestOpenCypherQueryIsPostedAsForm(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(
			is,
			method(http.MethodPost),
			path("/openCypher"),
			bodyContaining("query=MATCH+%28v%29+RETURN+v"),
		),
		Returns(
			response.ContentType("application/json"),
			response.Code(http.StatusOK),
			response.Body([]byte(`{"results":[]}`)),
		),
	)
	defer s.Close()

	transport := NewTransport(s.URL()+"/openCypher", graph.OpenCypher)

	_, err := transport.Execute(context.Background(), "MATCH (v) RETURN v")
	is.NoErr(err)
}

func TestErrorEnvelopeIsReturnedAsDialectError(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, anyInput()),
		Returns(
			response.ContentType("application/json"),
			response.Code(http.StatusBadRequest),
			response.Body([]byte(`{"requestId":"r","code":"MalformedQueryException","detailedMessage":"Query parsing failed"}`)),
		),
	)
	defer s.Close()

	transport := NewTransport(s.URL(), graph.OpenCypher, Debug("true"))

	_, err := transport.Execute(context.Background(), "MATCH")
	is.True(errors.Is(err, graphErrors.ErrDialect))
	is.Equal(err.Error(), "Query parsing failed")
}

func TestUnexpectedErrorResponse(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, anyInput()),
		Returns(
			response.Code(http.StatusServiceUnavailable),
		),
	)
	defer s.Close()

	transport := NewTransport(s.URL(), graph.Gremlin)

	_, err := transport.Execute(context.Background(), "g.V()")
	is.True(errors.Is(err, graphErrors.ErrBadResponse))
}

func TestInvalidJSONIsADecodeError(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, anyInput()),
		Returns(
			response.Code(http.StatusOK),
			response.Body([]byte(`<html>`)),
		),
	)
	defer s.Close()

	transport := NewTransport(s.URL(), graph.Gremlin)

	_, err := transport.Execute(context.Background(), "g.V()")
	is.True(errors.Is(err, graphErrors.ErrDecode))
}

func TestUnreachableEndpointIsARequestError(t *testing.T) {
	is := is.New(t)

	transport := NewTransport("http://127.0.0.1:1/gremlin", graph.Gremlin)

	_, err := transport.Execute(context.Background(), "g.V()")
	is.True(errors.Is(err, graphErrors.ErrRequest))
}
