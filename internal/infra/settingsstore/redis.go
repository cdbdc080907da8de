package settingsstore

import (
	"context"
	"errors"
	"log/slog"

	"turnos-service/internal/domain/booking"
	"turnos-service/internal/infra"

	"github.com/redis/go-redis/v9"
)

const maxSetAttempts = 5

// Redis stores the policy as one JSON value. Set is an optimistic read-merge-write
// guarded by WATCH; a concurrent writer makes the transaction retry.
type Redis struct {
	client   redis.UniversalClient
	key      string
	defaults booking.Policy
	logger   *slog.Logger
}

func NewRedis(client redis.UniversalClient, key string, defaults booking.Policy, logger *slog.Logger) *Redis {
	return &Redis{client: client, key: key, defaults: defaults.Clone(), logger: logger}
}

func (s *Redis) Get(ctx context.Context) (booking.Policy, error) {
	return s.read(ctx, s.client)
}

func (s *Redis) Set(ctx context.Context, patch booking.PolicyPatch) (booking.Policy, error) {
	var merged booking.Policy
	var mergeErr error

	txf := func(tx *redis.Tx) error {
		current, err := s.read(ctx, tx)
		if err != nil {
			return err
		}
		merged, mergeErr = current.Merge(patch)
		if mergeErr != nil {
			return mergeErr
		}
		b, err := marshalRecord(merged)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, s.key, b, 0)
			return nil
		})
		return err
	}

	for range maxSetAttempts {
		err := s.client.Watch(ctx, txf, s.key)
		switch {
		case err == nil:
			return merged, nil
		case mergeErr != nil:
			return booking.Policy{}, mergeErr
		case errors.Is(err, redis.TxFailedErr):
			continue
		default:
			return booking.Policy{}, infra.WrapErr(s.logger, infra.KindStoreFailure, "update settings", err)
		}
	}
	return booking.Policy{}, infra.WrapErr(s.logger, infra.KindConflict, "settings changed concurrently", redis.TxFailedErr)
}

func (s *Redis) read(ctx context.Context, c redis.Cmdable) (booking.Policy, error) {
	b, err := c.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return s.defaults.Clone(), nil
	}
	if err != nil {
		return booking.Policy{}, infra.WrapErr(s.logger, infra.KindStoreFailure, "read settings", err)
	}
	p, err := unmarshalRecord(b)
	if err != nil {
		return booking.Policy{}, infra.WrapErr(s.logger, infra.KindStoreFailure, "decode settings", err)
	}
	return p, nil
}
