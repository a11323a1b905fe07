// Package sessions stores the id lists of explored graphs so that they can be restored later
package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	graphErrors "github.com/diwise/graph-explorer/pkg/graph/errors"
	"github.com/diwise/graph-explorer/pkg/graph/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Session is a named snapshot of the vertices and edges shown for a connection.
// Only ids are kept, the entities are fetched again when the session is restored.
type Session struct {
	ID           string           `json:"id"`
	ConnectionID string           `json:"connectionId"`
	Name         string           `json:"name"`
	VertexIDs    []types.VertexID `json:"vertexIds"`
	EdgeIDs      []types.EdgeID   `json:"edgeIds"`
	CreatedAt    time.Time        `json:"createdAt"`
}

type Repository interface {
	Save(ctx context.Context, s Session) (Session, error)
	Get(ctx context.Context, connectionID, sessionID string) (Session, error)
	DeleteOlderThan(ctx context.Context, t time.Time) (int64, error)
}

type Config struct {
	host     string
	user     string
	password string
	port     string
	dbname   string
	sslmode  string
}

func LoadConfiguration(ctx context.Context) Config {
	return Config{
		host:     env.GetVariableOrDefault(ctx, "POSTGRES_HOST", ""),
		user:     env.GetVariableOrDefault(ctx, "POSTGRES_USER", ""),
		password: env.GetVariableOrDefault(ctx, "POSTGRES_PASSWORD", ""),
		port:     env.GetVariableOrDefault(ctx, "POSTGRES_PORT", "5432"),
		dbname:   env.GetVariableOrDefault(ctx, "POSTGRES_DBNAME", "diwise"),
		sslmode:  env.GetVariableOrDefault(ctx, "POSTGRES_SSLMODE", "disable"),
	}
}

func (c Config) ConnStr() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", c.user, c.password, c.host, c.port, c.dbname, c.sslmode)
}

// Enabled reports whether a database host has been configured
func (c Config) Enabled() bool {
	return c.host != ""
}

func Connect(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	conn, err := pgxpool.New(ctx, cfg.ConnStr())
	if err != nil {
		return nil, err
	}

	err = conn.Ping(ctx)
	if err != nil {
		conn.Close()
		return nil, err
	}

	return conn, nil
}

// Database is the part of a *pgxpool.Pool that the repository uses
type Database interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type repository struct {
	pool Database
}

// NewRepository creates the sessions table unless it already exists
func NewRepository(ctx context.Context, pool Database) (Repository, error) {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS graph_sessions (
			id            UUID PRIMARY KEY,
			connection_id TEXT NOT NULL,
			name          TEXT NOT NULL DEFAULT '',
			vertex_ids    TEXT[] NOT NULL,
			edge_ids      TEXT[] NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS graph_sessions_created_at_idx ON graph_sessions (created_at);`)
	if err != nil {
		return nil, fmt.Errorf("failed to create sessions table: %w", err)
	}

	return &repository{pool: pool}, nil
}

func (r *repository) Save(ctx context.Context, s Session) (Session, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	} else if _, err := uuid.Parse(s.ID); err != nil {
		return Session{}, graphErrors.NewBadRequestError(fmt.Sprintf("invalid session id %q", s.ID))
	}

	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}

	// an existing session may only be overwritten from the connection that created it
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO graph_sessions (id, connection_id, name, vertex_ids, edge_ids, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET name = $3, vertex_ids = $4, edge_ids = $5
		WHERE graph_sessions.connection_id = $2`,
		s.ID, s.ConnectionID, s.Name, toStrings(s.VertexIDs), toStrings(s.EdgeIDs), s.CreatedAt,
	)
	if err != nil {
		return Session{}, fmt.Errorf("failed to save session: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return Session{}, graphErrors.NewBadRequestError(fmt.Sprintf("session %q belongs to another connection", s.ID))
	}

	return s, nil
}

func (r *repository) Get(ctx context.Context, connectionID, sessionID string) (Session, error) {
	if _, err := uuid.Parse(sessionID); err != nil {
		return Session{}, graphErrors.NewNotFoundError(fmt.Sprintf("no session with id %q", sessionID))
	}

	var vertexIDs, edgeIDs []string

	s := Session{}
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, connection_id, name, vertex_ids, edge_ids, created_at
		FROM graph_sessions WHERE id = $1 AND connection_id = $2`,
		sessionID, connectionID,
	).Scan(&s.ID, &s.ConnectionID, &s.Name, &vertexIDs, &edgeIDs, &s.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return Session{}, graphErrors.NewNotFoundError(fmt.Sprintf("no session with id %q", sessionID))
	}
	if err != nil {
		return Session{}, fmt.Errorf("failed to load session: %w", err)
	}

	s.VertexIDs = fromStrings[types.VertexID](vertexIDs)
	s.EdgeIDs = fromStrings[types.EdgeID](edgeIDs)

	return s, nil
}

func (r *repository) DeleteOlderThan(ctx context.Context, t time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM graph_sessions WHERE created_at < $1`, t)
	if err != nil {
		return 0, fmt.Errorf("failed to delete sessions: %w", err)
	}

	return tag.RowsAffected(), nil
}

// Vacuum reclaims the space of deleted sessions
func Vacuum(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, "VACUUM ANALYZE graph_sessions;")
	return err
}

func toStrings[T ~string](identifiers []T) []string {
	result := make([]string, 0, len(identifiers))
	for _, id := range identifiers {
		result = append(result, string(id))
	}
	return result
}

func fromStrings[T ~string](raw []string) []T {
	result := make([]T, 0, len(raw))
	for _, s := range raw {
		result = append(result, T(s))
	}
	return result
}
