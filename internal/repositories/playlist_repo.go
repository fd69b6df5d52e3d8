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

// CreatePlaylistInput 表示创建播放列表的持久化输入。
type CreatePlaylistInput struct {
	ChannelID   uuid.UUID
	Title       string
	Description *string
	Visibility  po.Visibility
}

// UpdatePlaylistInput 表示更新播放列表时的可选字段。
type UpdatePlaylistInput struct {
	PlaylistID  uuid.UUID
	Title       *string
	Description *string
	Visibility  *po.Visibility
}

// PlaylistRepository 基于 pgx 实现播放列表数据访问。
type PlaylistRepository struct {
	pool *pgxpool.Pool
	log  *log.Helper
}

// NewPlaylistRepository 构造 PlaylistRepository。
func NewPlaylistRepository(pool *pgxpool.Pool, logger log.Logger) *PlaylistRepository {
	return &PlaylistRepository{pool: pool, log: log.NewHelper(logger)}
}

const playlistColumns = `playlist_id, channel_id, title, description, visibility,
		thumbnail_video_id, thumbnail_pinned, created_at, updated_at`

func scanPlaylist(row pgx.Row) (*po.Playlist, error) {
	var p po.Playlist
	err := row.Scan(
		&p.PlaylistID, &p.ChannelID, &p.Title, &p.Description, &p.Visibility,
		&p.ThumbnailVideoID, &p.ThumbnailPinned, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create 创建播放列表。
func (r *PlaylistRepository) Create(ctx context.Context, sess txmanager.Session, input CreatePlaylistInput) (*po.Playlist, error) {
	query := `
		INSERT INTO platform.playlists (playlist_id, channel_id, title, description, visibility)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + playlistColumns

	playlist, err := scanPlaylist(runner(r.pool, sess).QueryRow(ctx, query,
		uuid.New(), input.ChannelID, input.Title, input.Description, input.Visibility,
	))
	if err != nil {
		return nil, fmt.Errorf("insert playlist: %w", err)
	}
	r.log.WithContext(ctx).Infof("created playlist: playlist_id=%s", playlist.PlaylistID)
	return playlist, nil
}

// Update 部分更新播放列表元数据。
func (r *PlaylistRepository) Update(ctx context.Context, sess txmanager.Session, input UpdatePlaylistInput) (*po.Playlist, error) {
	query := `
		UPDATE platform.playlists
		SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			visibility = COALESCE($4, visibility),
			updated_at = now()
		WHERE playlist_id = $1
		RETURNING ` + playlistColumns

	playlist, err := scanPlaylist(runner(r.pool, sess).QueryRow(ctx, query,
		input.PlaylistID, input.Title, input.Description, input.Visibility,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlaylistNotFound
		}
		return nil, fmt.Errorf("update playlist: %w", err)
	}
	return playlist, nil
}

// Delete 删除播放列表，条目随外键级联删除。
func (r *PlaylistRepository) Delete(ctx context.Context, sess txmanager.Session, playlistID uuid.UUID) error {
	query := `DELETE FROM platform.playlists WHERE playlist_id = $1`

	tag, err := runner(r.pool, sess).Exec(ctx, query, playlistID)
	if err != nil {
		return fmt.Errorf("delete playlist: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPlaylistNotFound
	}
	return nil
}

// FindByID 根据 playlist_id 查询播放列表。
func (r *PlaylistRepository) FindByID(ctx context.Context, sess txmanager.Session, playlistID uuid.UUID) (*po.Playlist, error) {
	query := `SELECT ` + playlistColumns + ` FROM platform.playlists WHERE playlist_id = $1`

	playlist, err := scanPlaylist(runner(r.pool, sess).QueryRow(ctx, query, playlistID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlaylistNotFound
		}
		return nil, fmt.Errorf("find playlist: %w", err)
	}
	return playlist, nil
}

// SetThumbnail 写入精选项回指。
// pinned=true 表示拥有者显式指定，之后的自动刷新不再触碰。
func (r *PlaylistRepository) SetThumbnail(ctx context.Context, sess txmanager.Session, playlistID uuid.UUID, videoID *uuid.UUID, pinned bool) error {
	query := `
		UPDATE platform.playlists
		SET thumbnail_video_id = $2, thumbnail_pinned = $3, updated_at = now()
		WHERE playlist_id = $1
	`

	tag, err := runner(r.pool, sess).Exec(ctx, query, playlistID, videoID, pinned)
	if err != nil {
		return fmt.Errorf("set playlist thumbnail: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPlaylistNotFound
	}
	return nil
}

// ListByChannel 返回频道的播放列表，按创建时间降序。
func (r *PlaylistRepository) ListByChannel(ctx context.Context, sess txmanager.Session, channelID uuid.UUID) ([]po.Playlist, error) {
	query := `SELECT ` + playlistColumns + ` FROM platform.playlists WHERE channel_id = $1 ORDER BY created_at DESC`

	rows, err := runner(r.pool, sess).Query(ctx, query, channelID)
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	defer rows.Close()

	var playlists []po.Playlist
	for rows.Next() {
		var p po.Playlist
		if err := rows.Scan(
			&p.PlaylistID, &p.ChannelID, &p.Title, &p.Description, &p.Visibility,
			&p.ThumbnailVideoID, &p.ThumbnailPinned, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan playlist: %w", err)
		}
		playlists = append(playlists, p)
	}
	return playlists, rows.Err()
}
