package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/bookshelf/bookshelf/pkg/config"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

type key int

const ctxKey key = 0

// WithLogging marks the context so that queries run with it are logged when
// database debugging is enabled.
func WithLogging(ctx context.Context) context.Context {
	return context.WithValue(ctx, ctxKey, true)
}

type logQueryHook struct {
	log logger.Logger
}

func (*logQueryHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (qh *logQueryHook) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	enabled, ok := ctx.Value(ctxKey).(bool)
	if !ok || !enabled {
		return
	}

	data := logger.Data{"duration": time.Since(event.StartTime).String()}
	if event.Err != nil && !errors.Is(event.Err, sql.ErrNoRows) {
		qh.log.Err(event.Err).Debug(event.Query, data)
		return
	}
	qh.log.Debug(event.Query, data)
}

func New(cfg *config.Config) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.DatabaseFilePath)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// SQLite allows a single writer. Funnelling every query through one
	// connection serializes writes instead of surfacing SQLITE_BUSY, and keeps
	// in-memory databases from being split across connections.
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	// print out all queries in debug mode
	if cfg.DatabaseDebug {
		db.AddQueryHook(&logQueryHook{logger.NewWithLevel("debug")})
	}

	// Retry up to a few times to ensure that the database can connect.
	for i := 0; i < cfg.DatabaseConnectRetryCount; i++ {
		_, err = db.Exec("SELECT 1")
		if err != nil {
			time.Sleep(cfg.DatabaseConnectRetryDelay)
			continue
		}
		// We've successfully connected.
		break
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// WAL mode allows concurrent reads during writes.
	_, err = db.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		return nil, errors.Wrap(err, "failed to enable WAL mode")
	}

	// busy_timeout makes SQLite wait before returning SQLITE_BUSY when another
	// process holds the file lock.
	_, err = db.Exec("PRAGMA busy_timeout=?", cfg.DatabaseBusyTimeout.Milliseconds())
	if err != nil {
		return nil, errors.Wrap(err, "failed to set busy_timeout")
	}

	return db, nil
}
