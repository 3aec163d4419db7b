package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/italienapp/italienapp/internal/progress"
)

// KVRepo stores opaque values by key. It implements progress.Backend.
type KVRepo struct {
	db  DBTX
	now func() time.Time
}

var _ progress.Backend = (*KVRepo)(nil)

// Get returns the value stored under key, or progress.ErrNotFound.
func (r *KVRepo) Get(ctx context.Context, key string) ([]byte, error) {
	query, args := builder().
		Select("value").
		From(entsql.Table("kv")).
		Where(entsql.EQ("key", key)).
		Query()

	var value []byte
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, progress.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return value, nil
}

// Put inserts or replaces the value under key.
func (r *KVRepo) Put(ctx context.Context, key string, value []byte) error {
	query, args := builder().
		Insert("kv").
		Columns("key", "value", "updated_at").
		Values(key, value, r.timestamp()).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (r *KVRepo) Delete(ctx context.Context, key string) error {
	query, args := builder().
		Delete("kv").
		Where(entsql.EQ("key", key)).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

func (r *KVRepo) timestamp() string {
	now := time.Now
	if r.now != nil {
		now = r.now
	}
	return now().UTC().Format(time.RFC3339Nano)
}
