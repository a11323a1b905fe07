package errors

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

var ErrBadRequest = fmt.Errorf("bad request")
var ErrBadResponse = fmt.Errorf("bad response")
var ErrDecode = fmt.Errorf("decode error")
var ErrDialect = fmt.Errorf("dialect error")
var ErrInternal = fmt.Errorf("internal error")
var ErrNotFound = fmt.Errorf("not found")
var ErrRequest = fmt.Errorf("request error")
var ErrUnknownConnection = fmt.Errorf("unknown connection")

type graphError struct {
	msg    string
	target error
}

func (g graphError) Error() string        { return g.msg }
func (g graphError) Is(target error) bool { return target == g.target }

func NewBadRequestError(msg string) error {
	return &graphError{
		msg:    msg,
		target: ErrBadRequest,
	}
}

func NewNotFoundError(msg string) error {
	return &graphError{
		msg:    msg,
		target: ErrNotFound,
	}
}

func NewUnknownConnectionError(connection string) error {
	return &graphError{
		msg:    fmt.Sprintf("unknown connection \"%s\"", connection),
		target: ErrUnknownConnection,
	}
}

// DialectError is returned when the database answered with an error envelope.
// Message holds the database's message verbatim.
type DialectError struct {
	Code    string
	Message string
}

func (d DialectError) Error() string        { return d.Message }
func (d DialectError) Is(target error) bool { return target == ErrDialect }

func NewDialectError(code, message string) error {
	return &DialectError{Code: code, Message: message}
}

// DecodeError is returned when a response does not have the shape its query should produce
type DecodeError struct {
	msg     string
	Payload []byte
}

const maxPayloadInMessage int = 256

func (d DecodeError) Error() string {
	payload := string(d.Payload)
	if len(payload) > maxPayloadInMessage {
		// cut at a rune boundary so the message stays valid utf-8
		end := maxPayloadInMessage
		for end > 0 && !utf8.RuneStart(payload[end]) {
			end--
		}
		payload = payload[:end] + "..."
	}
	return fmt.Sprintf("%s (payload: %s)", d.msg, payload)
}

func (d DecodeError) Is(target error) bool { return target == ErrDecode }

func NewDecodeError(msg string, payload []byte) error {
	return &DecodeError{msg: msg, Payload: payload}
}

// NewErrorFromEnvelope inspects a response body for a dialect error envelope and returns
// nil if the body is a regular result. Gremlin Server, Neptune and most openCypher endpoints
// use some combination of code, message and detailedMessage.
func NewErrorFromEnvelope(body []byte) error {
	envelope := &struct {
		Code            json.RawMessage `json:"code"`
		Message         string          `json:"message"`
		DetailedMessage string          `json:"detailedMessage"`
		Status          *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"status"`
	}{}

	if err := json.Unmarshal(body, envelope); err != nil {
		// not an object, leave it to the decoder to complain
		return nil
	}

	if envelope.Status != nil && envelope.Status.Code >= 400 {
		return NewDialectError(fmt.Sprintf("%d", envelope.Status.Code), envelope.Status.Message)
	}

	if len(envelope.Code) == 0 {
		return nil
	}

	var code string
	if err := json.Unmarshal(envelope.Code, &code); err != nil {
		var numeric int
		if json.Unmarshal(envelope.Code, &numeric) != nil || numeric < 400 {
			return nil
		}
		code = fmt.Sprintf("%d", numeric)
	}

	message := envelope.DetailedMessage
	if message == "" {
		message = envelope.Message
	}
	if strings.TrimSpace(message) == "" {
		message = code
	}

	return NewDialectError(code, message)
}
