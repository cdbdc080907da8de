package settingsstore

import (
	"context"
	"errors"
	"log/slog"

	"turnos-service/internal/domain/booking"
	"turnos-service/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	createTableSQL = `CREATE TABLE IF NOT EXISTS booking_settings (
	id         SMALLINT PRIMARY KEY CHECK (id = 1),
	policy     JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`
	seedSQL      = `INSERT INTO booking_settings (id, policy) VALUES (1, $1) ON CONFLICT (id) DO NOTHING`
	selectSQL    = `SELECT policy FROM booking_settings WHERE id = 1`
	selectForUpd = `SELECT policy FROM booking_settings WHERE id = 1 FOR UPDATE`
	updateSQL    = `UPDATE booking_settings SET policy = $1, updated_at = now() WHERE id = 1`
)

// Postgres keeps the policy in a single-row table. Set locks the row for the
// duration of the merge.
type Postgres struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewPostgres creates the table when missing and seeds it with defaults.
func NewPostgres(ctx context.Context, pool *pgxpool.Pool, defaults booking.Policy, logger *slog.Logger) (*Postgres, error) {
	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		return nil, infra.WrapErr(logger, infra.KindStoreFailure, "create settings table", err)
	}
	b, err := marshalRecord(defaults)
	if err != nil {
		return nil, err
	}
	if _, err := pool.Exec(ctx, seedSQL, b); err != nil {
		return nil, infra.WrapErr(logger, infra.KindStoreFailure, "seed settings", err)
	}
	return &Postgres{pool: pool, logger: logger}, nil
}

func (s *Postgres) Get(ctx context.Context) (booking.Policy, error) {
	var b []byte
	if err := s.pool.QueryRow(ctx, selectSQL).Scan(&b); err != nil {
		return booking.Policy{}, infra.WrapErr(s.logger, infra.KindStoreFailure, "read settings", err)
	}
	p, err := unmarshalRecord(b)
	if err != nil {
		return booking.Policy{}, infra.WrapErr(s.logger, infra.KindStoreFailure, "decode settings", err)
	}
	return p, nil
}

func (s *Postgres) Set(ctx context.Context, patch booking.PolicyPatch) (booking.Policy, error) {
	var merged booking.Policy
	var mergeErr error

	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		var b []byte
		if err := tx.QueryRow(ctx, selectForUpd).Scan(&b); err != nil {
			return err
		}
		current, err := unmarshalRecord(b)
		if err != nil {
			return err
		}
		merged, mergeErr = current.Merge(patch)
		if mergeErr != nil {
			return mergeErr
		}
		out, err := marshalRecord(merged)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, updateSQL, out)
		return err
	})
	if mergeErr != nil {
		return booking.Policy{}, mergeErr
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return booking.Policy{}, infra.WrapErr(s.logger, infra.KindStoreFailure, "settings row missing", err)
		}
		return booking.Policy{}, infra.WrapErr(s.logger, infra.KindStoreFailure, "update settings", err)
	}
	return merged, nil
}
