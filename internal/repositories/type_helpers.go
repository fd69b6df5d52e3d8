package repositories

import (
	"context"
	"time"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier 抽象 pgxpool.Pool 与 pgx.Tx 共有的执行能力。
// Repository 方法通过 runner 在事务内外共用同一套 SQL。
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// runner 在事务会话存在时返回事务执行器，否则退回连接池。
func runner(pool *pgxpool.Pool, sess txmanager.Session) querier {
	if sess != nil {
		if tx := sess.Tx(); tx != nil {
			return tx
		}
	}
	return pool
}

func toPgTimestamptz(ts *time.Time) pgtype.Timestamptz {
	if ts == nil {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: ts.UTC(), Valid: true}
}
