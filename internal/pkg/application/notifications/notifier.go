// Package notifications tells an external endpoint about entities that were fetched with full details
package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/diwise/graph-explorer/pkg/graph/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const EntitiesAdded string = "EntitiesAdded"

type Notifier interface {
	Start() error
	Stop() error

	EntitiesAdded(ctx context.Context, connectionID string, vertices []types.Vertex, edges []types.Edge)
}

type Notification struct {
	Type         string         `json:"type"`
	ConnectionID string         `json:"connectionId"`
	Vertices     []types.Vertex `json:"vertices"`
	Edges        []types.Edge   `json:"edges"`
}

var tracer = otel.Tracer("graph-explorer/notifier")

type action func()

type notifier struct {
	lifecycle sync.Mutex

	mu      sync.RWMutex
	started bool
	stopped chan struct{}

	endpoint string

	httpClient http.Client
	queue      chan action
}

const queueSize int = 32

func NewNotifier(ctx context.Context, endpoint string) (Notifier, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("no notifier endpoint")
	}

	return &notifier{
		endpoint: endpoint,
		httpClient: http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		queue: make(chan action, queueSize),
	}, nil
}

func (n *notifier) Start() error {
	n.lifecycle.Lock()
	defer n.lifecycle.Unlock()

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.started {
		return fmt.Errorf("already started")
	}

	n.started = true
	n.stopped = make(chan struct{})

	go n.run(n.stopped)

	return nil
}

// Stop refuses new notifications and waits until everything queued before
// the call has been posted. The queue is never closed so late callers can
// not panic on a send.
func (n *notifier) Stop() error {
	n.lifecycle.Lock()
	defer n.lifecycle.Unlock()

	n.mu.Lock()
	if !n.started {
		n.mu.Unlock()
		return nil
	}
	n.started = false
	stopped := n.stopped
	n.mu.Unlock()

	n.queue <- nil
	<-stopped

	return nil
}

func (n *notifier) EntitiesAdded(ctx context.Context, connectionID string, vertices []types.Vertex, edges []types.Edge) {
	if len(vertices) == 0 && len(edges) == 0 {
		return
	}

	n.mu.RLock()
	defer n.mu.RUnlock()

	if !n.started {
		return
	}

	var err error

	logger := logging.GetFromContext(ctx)

	ctx, span := tracer.Start(
		tracing.ExtractHeaders(context.Background(), tracing.InjectHeaders(ctx)),
		"post",
		trace.WithAttributes(attribute.String("connection-id", connectionID)),
	)

	notification := Notification{
		Type:         EntitiesAdded,
		ConnectionID: connectionID,
		Vertices:     nonNil(vertices),
		Edges:        nonNil(edges),
	}

	send := func() {
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		err = n.post(ctx, notification)
		if err != nil {
			logger.Error("failed to post notification", "err", err.Error())
		}
	}

	select {
	case n.queue <- send:
	default:
		err = fmt.Errorf("notification queue is full")
		logger.Warn("dropping notification", "connection_id", connectionID, "err", err.Error())
		tracing.RecordAnyErrorAndEndSpan(err, span)
	}
}

func (n *notifier) post(ctx context.Context, notification Notification) error {
	body, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("marshalling error (%w)", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("unable to create new request (%w)", err)
	}

	req.Header.Add("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request (%w)", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("notification endpoint answered %d", resp.StatusCode)
	}

	return nil
}

func (n *notifier) run(stopped chan struct{}) {
	defer close(stopped)

	for action := range n.queue {
		if action == nil {
			return
		}

		action()
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
