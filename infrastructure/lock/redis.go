// Package lock garante um único lote de revisão por vez entre réplicas da API.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-pacing-api/internal/config"
)

const keyPrefix = "budget-pacing:lock:"

// Locker obtém travas com expiração; obtained=false significa que outra réplica detém a trava
type Locker interface {
	Obtain(ctx context.Context, key string, ttl time.Duration) (release func(context.Context) error, obtained bool, err error)
}

type RedisLocker struct {
	rdb    *redis.Client
	locker *redislock.Client
}

func NewRedisLocker(ctx context.Context, cfg config.Redis) (*RedisLocker, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("erro ao conectar ao redis em %s: %w", cfg.Address, err)
	}

	logrus.WithField("address", cfg.Address).Info("Conexão com Redis estabelecida com sucesso")

	return &RedisLocker{
		rdb:    rdb,
		locker: redislock.New(rdb),
	}, nil
}

func (l *RedisLocker) Obtain(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, bool, error) {
	lock, err := l.locker.Obtain(ctx, keyPrefix+key, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("erro ao obter trava %s: %w", key, err)
	}

	release := func(ctx context.Context) error {
		err := lock.Release(ctx)
		if errors.Is(err, redislock.ErrLockNotHeld) {
			// expirou antes do fim do lote
			logrus.WithField("key", key).Warn("Trava já havia expirado ao liberar")
			return nil
		}
		return err
	}

	return release, true, nil
}

func (l *RedisLocker) Close() error {
	return l.rdb.Close()
}
