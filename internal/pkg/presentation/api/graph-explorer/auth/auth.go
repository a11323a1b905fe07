package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/open-policy-agent/opa/rego"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("graph-explorer/api/authz")

var ErrAccessDenied = errors.New("authorization failed")

type Authenticator interface {
	CheckAccess(ctx context.Context, r *http.Request, connectionID string) error
}

type authenticatorImpl struct {
	preparedQuery rego.PreparedEvalQuery
}

// NewAuthenticator prepares the policy module read from policies. The module must
// define data.graphexplorer.authz.allow.
func NewAuthenticator(ctx context.Context, policies io.Reader) (Authenticator, error) {

	module, err := io.ReadAll(policies)
	if err != nil {
		return nil, fmt.Errorf("unable to read authz policies: %s", err.Error())
	}

	impl := &authenticatorImpl{}

	impl.preparedQuery, err = rego.New(
		rego.Query("x = data.graphexplorer.authz.allow"),
		rego.Module("graphexplorer.rego", string(module)),
	).PrepareForEval(ctx)

	if err != nil {
		return nil, err
	}

	return impl, nil
}

func (a *authenticatorImpl) CheckAccess(ctx context.Context, r *http.Request, connectionID string) error {
	var err error

	ctx, span := tracer.Start(ctx, "check-auth")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	token := r.Header.Get("Authorization")
	token, _ = strings.CutPrefix(token, "Bearer ")

	path := strings.Split(strings.Trim(r.URL.Path, "/"), "/")

	input := map[string]any{
		"method":     r.Method,
		"path":       path,
		"token":      token,
		"connection": connectionID,
	}

	results, err := a.preparedQuery.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		err = fmt.Errorf("opa eval failed: %w", err)
		return err
	}

	if len(results) == 0 {
		err = fmt.Errorf("auth failed: opa query could not be satisfied")
		return err
	}

	switch binding := results[0].Bindings["x"].(type) {
	case bool:
		if !binding {
			err = ErrAccessDenied
			return err
		}
	case map[string]any:
		// a result object grants access
	default:
		err = errors.New("opa error: unexpected result type")
		return err
	}

	return nil
}
