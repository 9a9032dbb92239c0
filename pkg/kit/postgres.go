package kit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

// OpenPostgres opens a pgx-backed *sql.DB and retries the first ping with
// exponential backoff for up to maxWait.
func OpenPostgres(ctx context.Context, dsn string, maxWait time.Duration, log *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = maxWait
	policy.MaxInterval = 5 * time.Second

	log.Info("connecting to postgres")

	err = backoff.RetryNotify(
		func() error {
			pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			defer cancel()
			return db.PingContext(pctx)
		},
		backoff.WithContext(policy, ctx),
		func(err error, next time.Duration) {
			log.Warn("postgres not ready, retrying", zap.Error(err), zap.Duration("next_attempt_in", next))
		},
	)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	log.Info("connected to postgres")
	return db, nil
}
