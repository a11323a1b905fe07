// Package problems reports API errors as RFC 7807 problem details
package problems

import (
	"encoding/json"
	"errors"
	"net/http"

	graphErrors "github.com/diwise/graph-explorer/pkg/graph/errors"
)

const (
	// ProblemReportContentType as required by https://tools.ietf.org/html/rfc7807
	ProblemReportContentType string = "application/problem+json"

	typePrefix string = "https://diwise.io/graph-explorer/errors/"
)

// ProblemDetails stores details about a certain problem according to RFC7807
type ProblemDetails struct {
	typ    string
	title  string
	detail string
	code   int
}

func (p *ProblemDetails) Type() string   { return p.typ }
func (p *ProblemDetails) Title() string  { return p.title }
func (p *ProblemDetails) Detail() string { return p.detail }

func (p *ProblemDetails) ContentType() string {
	return ProblemReportContentType
}

func (p *ProblemDetails) ResponseCode() int {
	if p.code != 0 {
		return p.code
	}

	return http.StatusBadRequest
}

func (p *ProblemDetails) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type   string `json:"type"`
		Title  string `json:"title"`
		Status int    `json:"status"`
		Detail string `json:"detail"`
	}{
		Type:   p.typ,
		Title:  p.title,
		Status: p.ResponseCode(),
		Detail: p.detail,
	})
}

// WriteResponse writes the contents of this instance to a http.ResponseWriter
func (p *ProblemDetails) WriteResponse(w http.ResponseWriter) {
	w.Header().Add("Content-Type", p.ContentType())
	w.Header().Add("Content-Language", "en")
	w.WriteHeader(p.ResponseCode())

	pdbytes, err := json.MarshalIndent(p, "", "  ")
	if err == nil {
		w.Write(pdbytes)
	}
}

func newProblem(name, title, detail string, code int) *ProblemDetails {
	return &ProblemDetails{
		typ:    typePrefix + name,
		title:  title,
		detail: detail,
		code:   code,
	}
}

func NewBadRequest(detail string) *ProblemDetails {
	return newProblem("BadRequest", "Bad Request", detail, http.StatusBadRequest)
}

func NewNotFound(detail string) *ProblemDetails {
	return newProblem("ResourceNotFound", "Not Found", detail, http.StatusNotFound)
}

func NewUnknownConnection(detail string) *ProblemDetails {
	return newProblem("UnknownConnection", "Unknown Connection", detail, http.StatusNotFound)
}

func NewForbidden(detail string) *ProblemDetails {
	return newProblem("Forbidden", "Forbidden", detail, http.StatusForbidden)
}

// NewDialectError reports the message of a database error envelope verbatim
func NewDialectError(detail string) *ProblemDetails {
	return newProblem("DialectError", "Graph Database Error", detail, http.StatusBadGateway)
}

func NewDecodeError(detail string) *ProblemDetails {
	return newProblem("DecodeError", "Unreadable Graph Database Response", detail, http.StatusBadGateway)
}

func NewBadGateway(detail string) *ProblemDetails {
	return newProblem("BadGateway", "Bad Gateway", detail, http.StatusBadGateway)
}

func NewInternalError(detail string) *ProblemDetails {
	return newProblem("InternalError", "Internal Error", detail, http.StatusInternalServerError)
}

func ReportNewBadRequest(w http.ResponseWriter, detail string) {
	NewBadRequest(detail).WriteResponse(w)
}

func ReportNewForbidden(w http.ResponseWriter, detail string) {
	NewForbidden(detail).WriteResponse(w)
}

// FromError picks the problem that matches the kind of err
func FromError(err error) *ProblemDetails {
	switch {
	case errors.Is(err, graphErrors.ErrUnknownConnection):
		return NewUnknownConnection(err.Error())
	case errors.Is(err, graphErrors.ErrNotFound):
		return NewNotFound(err.Error())
	case errors.Is(err, graphErrors.ErrBadRequest):
		return NewBadRequest(err.Error())
	case errors.Is(err, graphErrors.ErrDialect):
		return NewDialectError(dialectMessage(err))
	case errors.Is(err, graphErrors.ErrDecode):
		return NewDecodeError(err.Error())
	case errors.Is(err, graphErrors.ErrRequest), errors.Is(err, graphErrors.ErrBadResponse):
		return NewBadGateway(err.Error())
	default:
		return NewInternalError(err.Error())
	}
}

// ReportError creates a problem from err and sends it to the supplied http.ResponseWriter
func ReportError(w http.ResponseWriter, err error) {
	FromError(err).WriteResponse(w)
}

func dialectMessage(err error) string {
	var de *graphErrors.DialectError
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}
