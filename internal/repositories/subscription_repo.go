package repositories

import (
	"context"
	"fmt"

	"github.com/vidora/vidora-services-platform/internal/models/po"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SubscriptionRepository 维护 (user, channel) 订阅关系。
type SubscriptionRepository struct {
	pool *pgxpool.Pool
	log  *log.Helper
}

// NewSubscriptionRepository 构造 SubscriptionRepository。
func NewSubscriptionRepository(pool *pgxpool.Pool, logger log.Logger) *SubscriptionRepository {
	return &SubscriptionRepository{pool: pool, log: log.NewHelper(logger)}
}

// Exists 判断订阅关系是否存在。
func (r *SubscriptionRepository) Exists(ctx context.Context, sess txmanager.Session, userID, channelID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (
		SELECT 1 FROM platform.subscriptions WHERE user_id = $1 AND channel_id = $2
	)`

	var exists bool
	if err := runner(r.pool, sess).QueryRow(ctx, query, userID, channelID).Scan(&exists); err != nil {
		return false, fmt.Errorf("subscription exists: %w", err)
	}
	return exists, nil
}

// Insert 建立订阅，重复插入静默成功（toggle 幂等）。
func (r *SubscriptionRepository) Insert(ctx context.Context, sess txmanager.Session, userID, channelID uuid.UUID) error {
	query := `
		INSERT INTO platform.subscriptions (user_id, channel_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, channel_id) DO NOTHING
	`

	if _, err := runner(r.pool, sess).Exec(ctx, query, userID, channelID); err != nil {
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

// Delete 解除订阅。
func (r *SubscriptionRepository) Delete(ctx context.Context, sess txmanager.Session, userID, channelID uuid.UUID) error {
	query := `DELETE FROM platform.subscriptions WHERE user_id = $1 AND channel_id = $2`

	if _, err := runner(r.pool, sess).Exec(ctx, query, userID, channelID); err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}
	return nil
}

// ListByUser 返回用户的订阅，按订阅时间降序。
func (r *SubscriptionRepository) ListByUser(ctx context.Context, sess txmanager.Session, userID uuid.UUID) ([]po.Subscription, error) {
	query := `
		SELECT user_id, channel_id, created_at
		FROM platform.subscriptions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := runner(r.pool, sess).Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []po.Subscription
	for rows.Next() {
		var s po.Subscription
		if err := rows.Scan(&s.UserID, &s.ChannelID, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}
