package graphexplorer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/diwise/graph-explorer/internal/pkg/application/explorer"
	"github.com/diwise/graph-explorer/internal/pkg/infrastructure/sessions"
	"github.com/diwise/graph-explorer/internal/pkg/presentation/api/graph-explorer/auth"
	"github.com/diwise/graph-explorer/internal/pkg/presentation/api/graph-explorer/problems"
	"github.com/diwise/graph-explorer/pkg/graph"
	"github.com/diwise/graph-explorer/pkg/graph/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const TraceAttributeConnectionID string = "graph-connection-id"

var tracer = otel.Tracer("graph-explorer/api")

func RegisterHandlers(ctx context.Context, r chi.Router, policies io.Reader, app explorer.GraphExplorer) error {

	authenticator, err := auth.NewAuthenticator(ctx, policies)
	if err != nil {
		return fmt.Errorf("failed to create api authenticator: %w", err)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(Logger(logging.GetFromContext(ctx)))

		r.Get("/connections", NewListConnectionsHandler(app))

		r.Route("/connections/{connectionId}", func(r chi.Router) {
			r.Use(ConnectionMiddleware(), Authorize(authenticator))

			r.Post("/neighbors", newPostHandler("fetch-neighbors", http.StatusOK, app.FetchNeighbors))
			r.Post("/neighbors/counts", newPostHandler("neighbor-counts", http.StatusOK, app.NeighborCounts))
			r.Post("/search", newPostHandler("keyword-search", http.StatusOK, app.KeywordSearch))
			r.Post("/filter", newPostHandler("filter-and-sort", http.StatusOK, app.FilterAndSort))

			r.Get("/schema", NewSchemaHandler(app))
			r.Post("/schema/edge-connections", newPostHandler("edge-connections", http.StatusOK,
				func(ctx context.Context, connectionID string, req edgeConnectionsRequest) ([]graph.EdgeConnection, error) {
					return app.EdgeConnections(ctx, connectionID, req.EdgeTypes)
				},
			))

			r.Post("/vertices/details", newPostHandler("vertex-details", http.StatusOK,
				func(ctx context.Context, connectionID string, req vertexDetailsRequest) (explorer.VertexDetailsResult, error) {
					return app.VertexDetails(ctx, connectionID, req.VertexIDs)
				},
			))
			r.Post("/edges/details", newPostHandler("edge-details", http.StatusOK,
				func(ctx context.Context, connectionID string, req edgeDetailsRequest) (explorer.EdgeDetailsResult, error) {
					return app.EdgeDetails(ctx, connectionID, req.EdgeIDs)
				},
			))

			r.Post("/sessions", newPostHandler("save-session", http.StatusCreated,
				func(ctx context.Context, connectionID string, s sessions.Session) (sessions.Session, error) {
					return app.SaveSession(ctx, connectionID, s)
				},
			))
			r.Get("/sessions/{sessionId}", NewRestoreSessionHandler(app))
		})
	})

	return nil
}

type edgeConnectionsRequest struct {
	EdgeTypes []string `json:"edgeTypes"`
}

type vertexDetailsRequest struct {
	VertexIDs []types.VertexID `json:"vertexIds"`
}

type edgeDetailsRequest struct {
	EdgeIDs []types.EdgeID `json:"edgeIds"`
}

func Logger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			_, ctx, _ = o11y.AddTraceIDToLoggerAndStoreInContext(
				trace.SpanFromContext(ctx),
				logger,
				ctx)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ConnectionMiddleware tags the logger and the request metrics with the connection id
func ConnectionMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			connectionID := chi.URLParam(r, "connectionId")

			if labeler, found := otelhttp.LabelerFromContext(r.Context()); found {
				labeler.Add(attribute.String(TraceAttributeConnectionID, connectionID))
			}

			ctx := logging.NewContextWithLogger(
				r.Context(),
				logging.GetFromContext(r.Context()),
				"connection",
				connectionID,
			)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func Authorize(authenticator auth.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			err := authenticator.CheckAccess(ctx, r, chi.URLParam(r, "connectionId"))
			if err != nil {
				logging.GetFromContext(ctx).Warn("access denied", "err", err.Error())
				problems.ReportNewForbidden(w, "access denied")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func NewListConnectionsHandler(app explorer.GraphExplorer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, app.Connections())
	}
}

func NewSchemaHandler(app explorer.GraphExplorer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx, span := tracer.Start(r.Context(), "fetch-schema")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		refresh := false
		if value := r.URL.Query().Get("refresh"); value != "" {
			refresh, err = strconv.ParseBool(value)
			if err != nil {
				problems.ReportNewBadRequest(w, fmt.Sprintf("invalid refresh parameter %q", value))
				return
			}
		}

		schema, err := app.Schema(ctx, chi.URLParam(r, "connectionId"), refresh)
		if err != nil {
			reportError(ctx, w, "failed to fetch schema", err)
			return
		}

		writeJSON(w, http.StatusOK, schema)
	}
}

func NewRestoreSessionHandler(app explorer.GraphExplorer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx, span := tracer.Start(r.Context(), "restore-session")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		restored, err := app.RestoreSession(ctx, chi.URLParam(r, "connectionId"), chi.URLParam(r, "sessionId"))
		if err != nil {
			reportError(ctx, w, "failed to restore session", err)
			return
		}

		writeJSON(w, http.StatusOK, restored)
	}
}

// newPostHandler decodes a JSON request body, hands it to op and encodes whatever op returns
func newPostHandler[Req, Resp any](name string, status int, op func(context.Context, string, Req) (Resp, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx, span := tracer.Start(r.Context(), name)
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		// numbers stay json.Number so that large integers in criteria are not rounded
		d := json.NewDecoder(r.Body)
		d.UseNumber()

		var req Req
		err = d.Decode(&req)
		if err != nil {
			problems.ReportNewBadRequest(w, fmt.Sprintf("unable to decode request payload: %s", err.Error()))
			return
		}

		result, err := op(ctx, chi.URLParam(r, "connectionId"), req)
		if err != nil {
			reportError(ctx, w, name+" failed", err)
			return
		}

		writeJSON(w, status, result)
	}
}

func reportError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	problem := problems.FromError(err)
	if problem.ResponseCode() >= http.StatusInternalServerError {
		logging.GetFromContext(ctx).Error(msg, "err", err.Error())
	}
	problem.WriteResponse(w)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	b, err := json.Marshal(body)
	if err != nil {
		problems.NewInternalError(err.Error()).WriteResponse(w)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(b)
}
