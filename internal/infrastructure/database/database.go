// Package database 负责 PostgreSQL 连接池的初始化与生命周期管理。
// 包括：连接池配置、健康检查、优雅关闭等功能。
package database

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/vidora/vidora-services-platform/internal/conf"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPgxPool 创建并配置 pgxpool.Pool。
//
// 职责：
//  1. 解析 DSN 并创建连接池配置
//  2. 应用连接池参数（最大/最小连接数、生命周期）
//  3. 集成 Kratos Logger（查询失败时记录错误）
//  4. 设置默认 Schema（search_path）
//  5. 启动时健康检查（Ping + 版本查询）
//  6. 返回清理函数（用于 Wire cleanup）
func NewPgxPool(ctx context.Context, c *conf.Data, logger log.Logger) (*pgxpool.Pool, func(), error) {
	helper := log.NewHelper(logger)

	if c == nil || c.Postgres == nil {
		return nil, nil, fmt.Errorf("postgres configuration is required")
	}
	pgCfg := c.Postgres

	dsn := pgCfg.DSN
	if dsn == "" {
		return nil, nil, fmt.Errorf("postgres DSN is required (set DATABASE_URL)")
	}

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse postgres DSN: %w", err)
	}

	if pgCfg.MaxOpenConns > 0 {
		poolConfig.MaxConns = pgCfg.MaxOpenConns
	}
	if pgCfg.MinOpenConns >= 0 {
		poolConfig.MinConns = pgCfg.MinOpenConns
	}
	if pgCfg.MaxConnLifetimeSeconds > 0 {
		poolConfig.MaxConnLifetime = time.Duration(pgCfg.MaxConnLifetimeSeconds) * time.Second
	}
	if pgCfg.MaxConnIdleTimeSeconds > 0 {
		poolConfig.MaxConnIdleTime = time.Duration(pgCfg.MaxConnIdleTimeSeconds) * time.Second
	}
	if pgCfg.HealthCheckPeriodSeconds > 0 {
		poolConfig.HealthCheckPeriod = time.Duration(pgCfg.HealthCheckPeriodSeconds) * time.Second
	}

	poolConfig.ConnConfig.Tracer = &pgxLogger{helper: helper}

	// 设置默认 Schema：配置 schema 优先于 DSN 中的 search_path
	if schema := pgCfg.Schema; schema != "" {
		poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
			_, err := conn.Exec(ctx, fmt.Sprintf("SET search_path TO %s, public", schema))
			if err != nil {
				return fmt.Errorf("failed to set search_path: %w", err)
			}
			return nil
		}
	}

	// Pooler 模式（如 Supabase/PgBouncer）必须禁用 prepared statements
	if !pgCfg.EnablePreparedStatements {
		poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	if err := healthCheck(ctx, pool, helper); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("postgres health check failed: %w", err)
	}

	helper.Infof(
		"postgres pool created: dsn=%s max_conns=%d min_conns=%d schema=%s prepared_statements=%v",
		sanitizeDSN(dsn),
		poolConfig.MaxConns,
		poolConfig.MinConns,
		pgCfg.Schema,
		pgCfg.EnablePreparedStatements,
	)

	cleanup := func() {
		helper.Info("closing postgres pool")
		pool.Close()
	}

	return pool, cleanup, nil
}

// NewTxManager 基于连接池构造事务管理器。
func NewTxManager(pool *pgxpool.Pool, cfg txmanager.Config, logger log.Logger) (txmanager.Manager, error) {
	return txmanager.NewManager(pool, cfg, txmanager.Dependencies{Logger: logger})
}

// healthCheck 执行数据库健康检查：Ping 加版本查询，失败时返回错误。
func healthCheck(ctx context.Context, pool *pgxpool.Pool, helper *log.Helper) error {
	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(healthCtx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}

	var version string
	err := pool.QueryRow(healthCtx, "SELECT version()").Scan(&version)
	if err != nil {
		return fmt.Errorf("version query failed: %w", err)
	}

	helper.Infof("database health check passed: version=%s", truncateVersion(version))
	return nil
}

// sanitizeDSN 对 DSN 进行脱敏处理，隐藏密码。
func sanitizeDSN(dsn string) string {
	parsed, err := url.Parse(dsn)
	if err != nil {
		return dsn
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if _, hasPassword := parsed.User.Password(); hasPassword {
			parsed.User = url.UserPassword(username, "***")
		}
	}

	return parsed.String()
}

// truncateVersion 截断 PostgreSQL 版本字符串，避免日志过长。
func truncateVersion(version string) string {
	if idx := strings.Index(version, "("); idx != -1 {
		return strings.TrimSpace(version[:idx])
	}
	if len(version) > 100 {
		return version[:100] + "..."
	}
	return version
}

// pgxLogger 实现 pgx.QueryTracer，把查询失败转发到 Kratos Logger。
type pgxLogger struct {
	helper *log.Helper
}

// TraceQueryStart 实现 pgx.QueryTracer 接口（查询开始时调用）。
// 不记录查询开始日志，避免噪音。
func (l *pgxLogger) TraceQueryStart(ctx context.Context, _ *pgx.Conn, _ pgx.TraceQueryStartData) context.Context {
	return ctx
}

// TraceQueryEnd 实现 pgx.QueryTracer 接口（查询结束时调用）。
// 仅在查询失败时记录错误，不记录 SQL 以避免敏感数据泄露。
func (l *pgxLogger) TraceQueryEnd(_ context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	if data.Err != nil {
		l.helper.Errorf(
			"postgres query failed: error=%v command_tag=%s",
			data.Err,
			data.CommandTag.String(),
		)
	}
}
