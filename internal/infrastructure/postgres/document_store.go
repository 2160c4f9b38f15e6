package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Ferreteria-api/internal/domain/repository"
)

var _ repository.AtomicDocumentStore = (*DocumentStore)(nil)

const schemaDocuments = `
	CREATE TABLE IF NOT EXISTS documents (
		doc_key    TEXT PRIMARY KEY,
		body       JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

// DocumentStore implementación del puerto DocumentStore sobre PostgreSQL (una fila jsonb por clave).
type DocumentStore struct {
	q  Querier
	tx *TxRunner
}

// NewDocumentStore construye el adaptador. Llamar EnsureSchema antes del primer uso.
func NewDocumentStore(pool *pgxpool.Pool) *DocumentStore {
	return &DocumentStore{q: pool, tx: NewTxRunner(pool)}
}

// EnsureSchema crea la tabla documents si no existe.
func (s *DocumentStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.q.Exec(ctx, schemaDocuments); err != nil {
		return fmt.Errorf("crear tabla documents: %w", err)
	}
	return nil
}

// Get obtiene el documento de key.
func (s *DocumentStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return getDocument(ctx, s.q, key, false)
}

// Put inserta o reemplaza el documento de key.
func (s *DocumentStore) Put(ctx context.Context, key string, doc []byte) error {
	return putDocument(ctx, s.q, key, doc)
}

// Modify lee y reescribe key en una transacción. El advisory lock por clave serializa también
// a otros procesos, incluso cuando la fila aún no existe.
func (s *DocumentStore) Modify(ctx context.Context, key string, fn func(current []byte, found bool) ([]byte, error)) error {
	return s.tx.Run(ctx, func(q Querier) error {
		if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key); err != nil {
			return fmt.Errorf("lock document %s: %w", key, err)
		}
		current, found, err := getDocument(ctx, q, key, true)
		if err != nil {
			return err
		}
		next, err := fn(current, found)
		if err != nil {
			return err
		}
		return putDocument(ctx, q, key, next)
	})
}

func getDocument(ctx context.Context, q Querier, key string, forUpdate bool) ([]byte, bool, error) {
	query := `SELECT body FROM documents WHERE doc_key = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var body []byte
	err := q.QueryRow(ctx, query, key).Scan(&body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get document %s: %w", key, err)
	}
	return body, true, nil
}

func putDocument(ctx context.Context, q Querier, key string, doc []byte) error {
	_, err := q.Exec(ctx, `
		INSERT INTO documents (doc_key, body, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (doc_key) DO UPDATE SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at`,
		key, string(doc),
	)
	if err != nil {
		return fmt.Errorf("put document %s: %w", key, err)
	}
	return nil
}
