// Package history keeps a summary of completed diagnoses. Patient metrics
// are never stored.
package history

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/chauanphu/xdoc-iu/internal/database"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

type Record struct {
	ID            uuid.UUID `json:"id"`
	Condition     string    `json:"condition"`
	Prediction    string    `json:"prediction"`
	TrustScore    float64   `json:"trustScore"`
	ExplanationOK bool      `json:"explanationOk"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Recorder persists diagnosis summaries.
type Recorder interface {
	Record(ctx context.Context, r Record) error
	Recent(ctx context.Context, condition string, limit int) ([]Record, error)
	Enabled() bool
}

const schemaSQL = `CREATE TABLE IF NOT EXISTS diagnosis_history (
	id             UUID PRIMARY KEY,
	condition      TEXT NOT NULL,
	prediction     TEXT NOT NULL,
	trust_score    DOUBLE PRECISION NOT NULL,
	explanation_ok BOOLEAN NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS diagnosis_history_created_idx ON diagnosis_history (condition, created_at DESC)`

type Store struct {
	pool database.Pool
	now  func() time.Time
}

func NewStore(pool database.Pool) *Store {
	return &Store{pool: pool, now: time.Now}
}

func (s *Store) Enabled() bool { return true }

// EnsureSchema creates the history table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return eris.Wrap(err, "history: ensure schema")
	}
	return nil
}

func (s *Store) Record(ctx context.Context, r Record) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.now().UTC()
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO diagnosis_history (id, condition, prediction, trust_score, explanation_ok, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		r.ID, r.Condition, r.Prediction, r.TrustScore, r.ExplanationOK, r.CreatedAt,
	)
	if err != nil {
		return eris.Wrapf(err, "history: record %s", r.Condition)
	}
	return nil
}

// Recent lists the newest records, optionally for one condition. limit is
// clamped to [1, MaxLimit]; zero means DefaultLimit.
func (s *Store) Recent(ctx context.Context, condition string, limit int) ([]Record, error) {
	limit = ClampLimit(limit)

	rows, err := s.pool.Query(ctx,
		`SELECT id, condition, prediction, trust_score, explanation_ok, created_at
		 FROM diagnosis_history
		 WHERE ($1 = '' OR condition = $1)
		 ORDER BY created_at DESC
		 LIMIT $2`,
		condition, limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "history: query recent")
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Condition, &r.Prediction, &r.TrustScore, &r.ExplanationOK, &r.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "history: scan")
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "history: rows")
	}
	return out, nil
}

func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}

// Noop is used when the database is disabled.
type Noop struct{}

func (Noop) Record(context.Context, Record) error { return nil }

func (Noop) Recent(context.Context, string, int) ([]Record, error) { return []Record{}, nil }

func (Noop) Enabled() bool { return false }
