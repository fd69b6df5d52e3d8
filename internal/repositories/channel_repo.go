// Package repositories 提供数据访问层实现，负责与持久化存储交互。
// 该层实现 Service 层定义的 Repository 接口，隔离底层存储细节。
package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/vidora/vidora-services-platform/internal/models/po"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CreateChannelInput 表示创建频道的持久化输入。
type CreateChannelInput struct {
	OwnerUserID uuid.UUID
	Name        string
	Handle      string
	Description *string
}

// UpdateChannelInput 表示更新频道时的可选字段。
type UpdateChannelInput struct {
	ChannelID   uuid.UUID
	Name        *string
	Description *string
	AvatarURL   *string
}

// ChannelRepository 基于 pgx 实现频道数据访问。
type ChannelRepository struct {
	pool *pgxpool.Pool
	log  *log.Helper
}

// NewChannelRepository 构造 ChannelRepository，由 Wire 注入连接池。
func NewChannelRepository(pool *pgxpool.Pool, logger log.Logger) *ChannelRepository {
	return &ChannelRepository{pool: pool, log: log.NewHelper(logger)}
}

const channelColumns = `channel_id, owner_user_id, name, handle, description, avatar_url, created_at, updated_at`

func scanChannel(row pgx.Row) (*po.Channel, error) {
	var c po.Channel
	err := row.Scan(
		&c.ChannelID, &c.OwnerUserID, &c.Name, &c.Handle,
		&c.Description, &c.AvatarURL, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create 创建新频道记录。
func (r *ChannelRepository) Create(ctx context.Context, sess txmanager.Session, input CreateChannelInput) (*po.Channel, error) {
	query := `
		INSERT INTO platform.channels (channel_id, owner_user_id, name, handle, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + channelColumns

	channel, err := scanChannel(runner(r.pool, sess).QueryRow(ctx, query,
		uuid.New(), input.OwnerUserID, input.Name, input.Handle, input.Description,
	))
	if err != nil {
		r.log.WithContext(ctx).Errorf("create channel failed: %v", err)
		return nil, fmt.Errorf("insert channel: %w", err)
	}
	r.log.WithContext(ctx).Infof("created channel: channel_id=%s", channel.ChannelID)
	return channel, nil
}

// Update 部分更新频道资料，查不到时返回 ErrChannelNotFound。
func (r *ChannelRepository) Update(ctx context.Context, sess txmanager.Session, input UpdateChannelInput) (*po.Channel, error) {
	query := `
		UPDATE platform.channels
		SET
			name = COALESCE($2, name),
			description = COALESCE($3, description),
			avatar_url = COALESCE($4, avatar_url),
			updated_at = now()
		WHERE channel_id = $1
		RETURNING ` + channelColumns

	channel, err := scanChannel(runner(r.pool, sess).QueryRow(ctx, query,
		input.ChannelID, input.Name, input.Description, input.AvatarURL,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrChannelNotFound
		}
		return nil, fmt.Errorf("update channel: %w", err)
	}
	return channel, nil
}

// FindByID 根据 channel_id 查询频道。
func (r *ChannelRepository) FindByID(ctx context.Context, sess txmanager.Session, channelID uuid.UUID) (*po.Channel, error) {
	query := `SELECT ` + channelColumns + ` FROM platform.channels WHERE channel_id = $1`

	channel, err := scanChannel(runner(r.pool, sess).QueryRow(ctx, query, channelID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrChannelNotFound
		}
		return nil, fmt.Errorf("find channel: %w", err)
	}
	return channel, nil
}

// ListByOwner 返回某个用户拥有的全部频道，按创建时间升序。
func (r *ChannelRepository) ListByOwner(ctx context.Context, sess txmanager.Session, ownerUserID uuid.UUID) ([]po.Channel, error) {
	query := `SELECT ` + channelColumns + ` FROM platform.channels WHERE owner_user_id = $1 ORDER BY created_at`

	rows, err := runner(r.pool, sess).Query(ctx, query, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("list channels: %w", err)
	}
	defer rows.Close()

	var channels []po.Channel
	for rows.Next() {
		var c po.Channel
		if err := rows.Scan(
			&c.ChannelID, &c.OwnerUserID, &c.Name, &c.Handle,
			&c.Description, &c.AvatarURL, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan channel: %w", err)
		}
		channels = append(channels, c)
	}
	return channels, rows.Err()
}

// Stats 返回频道的订阅数与视频数聚合。
func (r *ChannelRepository) Stats(ctx context.Context, sess txmanager.Session, channelID uuid.UUID) (*po.ChannelStats, error) {
	query := `
		SELECT
			COALESCE((SELECT COUNT(*) FROM platform.subscriptions s WHERE s.channel_id = $1), 0),
			COALESCE((SELECT COUNT(*) FROM platform.videos v WHERE v.channel_id = $1), 0)
	`

	stats := po.ChannelStats{ChannelID: channelID}
	if err := runner(r.pool, sess).QueryRow(ctx, query, channelID).Scan(&stats.SubscriberCount, &stats.VideoCount); err != nil {
		return nil, fmt.Errorf("channel stats: %w", err)
	}
	return &stats, nil
}
