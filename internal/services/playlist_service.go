package services

import (
	"context"
	"fmt"

	"github.com/vidora/vidora-services-platform/internal/models/po"
	"github.com/vidora/vidora-services-platform/internal/models/vo"
	"github.com/vidora/vidora-services-platform/internal/repositories"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// PlaylistRepo 定义播放列表元数据所需的持久化行为。
type PlaylistRepo interface {
	Create(ctx context.Context, sess txmanager.Session, input repositories.CreatePlaylistInput) (*po.Playlist, error)
	Update(ctx context.Context, sess txmanager.Session, input repositories.UpdatePlaylistInput) (*po.Playlist, error)
	Delete(ctx context.Context, sess txmanager.Session, playlistID uuid.UUID) error
	FindByID(ctx context.Context, sess txmanager.Session, playlistID uuid.UUID) (*po.Playlist, error)
	SetThumbnail(ctx context.Context, sess txmanager.Session, playlistID uuid.UUID, videoID *uuid.UUID, pinned bool) error
	ListByChannel(ctx context.Context, sess txmanager.Session, channelID uuid.UUID) ([]po.Playlist, error)
}

// PlaylistVideoRepo 定义播放列表条目及其位置维护所需的持久化行为。
type PlaylistVideoRepo interface {
	Append(ctx context.Context, sess txmanager.Session, playlistID, videoID uuid.UUID) (*po.PlaylistVideo, error)
	Find(ctx context.Context, sess txmanager.Session, playlistID, videoID uuid.UUID) (*po.PlaylistVideo, error)
	List(ctx context.Context, sess txmanager.Session, playlistID uuid.UUID) ([]po.PlaylistVideo, error)
	Delete(ctx context.Context, sess txmanager.Session, playlistID, videoID uuid.UUID) (*po.PlaylistVideo, error)
	ShiftRange(ctx context.Context, sess txmanager.Session, playlistID uuid.UUID, lo, hi, delta int32) error
	SetPosition(ctx context.Context, sess txmanager.Session, playlistID, videoID uuid.UUID, position int32) error
	Count(ctx context.Context, sess txmanager.Session, playlistID uuid.UUID) (int32, error)
	VideoAt(ctx context.Context, sess txmanager.Session, playlistID uuid.UUID, position int32) (uuid.UUID, error)
}

// CreatePlaylistInput 表示创建播放列表的用例输入。
type CreatePlaylistInput struct {
	ChannelID   uuid.UUID
	Title       string
	Description *string
	Visibility  po.Visibility
}

// UpdatePlaylistInput 表示更新播放列表的用例输入。
type UpdatePlaylistInput struct {
	PlaylistID  uuid.UUID
	Title       *string
	Description *string
	Visibility  *po.Visibility
}

// PlaylistService 封装播放列表及其条目用例。
// 条目的删除与重定位同链接一样走区间平移，且整个编排在单个事务内。
// 封面回指规则：未固定时始终跟随 position 0 的视频；
// 拥有者显式固定后，条目变动不再自动刷新，除非被指向的视频离开列表。
type PlaylistService struct {
	repo      PlaylistRepo
	entries   PlaylistVideoRepo
	videos    VideoRepo
	channels  ChannelRepo
	txManager txmanager.Manager
	log       *log.Helper
}

// NewPlaylistService 构造播放列表服务。
func NewPlaylistService(repo PlaylistRepo, entries PlaylistVideoRepo, videos VideoRepo, channels ChannelRepo, tx txmanager.Manager, logger log.Logger) *PlaylistService {
	return &PlaylistService{
		repo:      repo,
		entries:   entries,
		videos:    videos,
		channels:  channels,
		txManager: tx,
		log:       log.NewHelper(logger),
	}
}

// CreatePlaylist 为当前用户拥有的频道创建播放列表。
func (s *PlaylistService) CreatePlaylist(ctx context.Context, input CreatePlaylistInput) (*vo.PlaylistDetail, error) {
	userID, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var created *po.Playlist
	err = s.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		if _, repoErr := requireOwnedChannel(txCtx, sess, s.channels, input.ChannelID, userID); repoErr != nil {
			return repoErr
		}
		var repoErr error
		created, repoErr = s.repo.Create(txCtx, sess, repositories.CreatePlaylistInput{
			ChannelID:   input.ChannelID,
			Title:       input.Title,
			Description: input.Description,
			Visibility:  input.Visibility,
		})
		return repoErr
	})
	if err != nil {
		return nil, s.mapErr(ctx, err, "create playlist")
	}
	return vo.NewPlaylistDetail(created, nil), nil
}

// UpdatePlaylist 更新播放列表元数据。
func (s *PlaylistService) UpdatePlaylist(ctx context.Context, input UpdatePlaylistInput) (*vo.PlaylistDetail, error) {
	userID, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var updated *po.Playlist
	var entries []po.PlaylistVideo
	err = s.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		if _, repoErr := s.ownedPlaylist(txCtx, sess, input.PlaylistID, userID); repoErr != nil {
			return repoErr
		}
		var repoErr error
		if updated, repoErr = s.repo.Update(txCtx, sess, repositories.UpdatePlaylistInput{
			PlaylistID:  input.PlaylistID,
			Title:       input.Title,
			Description: input.Description,
			Visibility:  input.Visibility,
		}); repoErr != nil {
			return repoErr
		}
		entries, repoErr = s.entries.List(txCtx, sess, input.PlaylistID)
		return repoErr
	})
	if err != nil {
		return nil, s.mapErr(ctx, err, "update playlist")
	}
	return vo.NewPlaylistDetail(updated, entries), nil
}

// DeletePlaylist 删除播放列表，条目随之删除，视频本身不受影响。
func (s *PlaylistService) DeletePlaylist(ctx context.Context, playlistID uuid.UUID) error {
	userID, err := actorFromContext(ctx)
	if err != nil {
		return err
	}

	err = s.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		if _, repoErr := s.ownedPlaylist(txCtx, sess, playlistID, userID); repoErr != nil {
			return repoErr
		}
		return s.repo.Delete(txCtx, sess, playlistID)
	})
	if err != nil {
		return s.mapErr(ctx, err, "delete playlist")
	}
	return nil
}

// GetPlaylist 返回播放列表详情，条目按 position 升序。
func (s *PlaylistService) GetPlaylist(ctx context.Context, playlistID uuid.UUID) (*vo.PlaylistDetail, error) {
	var playlist *po.Playlist
	var entries []po.PlaylistVideo
	err := s.txManager.WithinReadOnlyTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		var repoErr error
		if playlist, repoErr = s.repo.FindByID(txCtx, sess, playlistID); repoErr != nil {
			return repoErr
		}
		entries, repoErr = s.entries.List(txCtx, sess, playlistID)
		return repoErr
	})
	if err != nil {
		return nil, s.mapErr(ctx, err, "get playlist")
	}
	return vo.NewPlaylistDetail(playlist, entries), nil
}

// ListPlaylists 返回频道的播放列表。
func (s *PlaylistService) ListPlaylists(ctx context.Context, channelID uuid.UUID) ([]*vo.PlaylistDetail, error) {
	var playlists []po.Playlist
	err := s.txManager.WithinReadOnlyTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		if _, repoErr := s.channels.FindByID(txCtx, sess, channelID); repoErr != nil {
			return repoErr
		}
		var repoErr error
		playlists, repoErr = s.repo.ListByChannel(txCtx, sess, channelID)
		return repoErr
	})
	if err != nil {
		return nil, s.mapErr(ctx, err, "list playlists")
	}

	out := make([]*vo.PlaylistDetail, 0, len(playlists))
	for i := range playlists {
		out = append(out, vo.NewPlaylistDetail(&playlists[i], nil))
	}
	return out, nil
}

// AddVideo 把视频追加到播放列表尾部。同一视频在一个列表中至多出现一次。
func (s *PlaylistService) AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) (*vo.PlaylistDetail, error) {
	userID, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var playlist *po.Playlist
	var entries []po.PlaylistVideo
	err = s.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		playlist, err = s.ownedPlaylist(txCtx, sess, playlistID, userID)
		if err != nil {
			return err
		}
		if _, repoErr := s.videos.FindByID(txCtx, sess, videoID); repoErr != nil {
			return repoErr
		}
		if _, repoErr := s.entries.Find(txCtx, sess, playlistID, videoID); repoErr == nil {
			return ErrVideoAlreadyInList
		} else if !errors.Is(repoErr, repositories.ErrPlaylistVideoNotFound) {
			return repoErr
		}
		added, repoErr := s.entries.Append(txCtx, sess, playlistID, videoID)
		if repoErr != nil {
			return repoErr
		}
		if added.Position == 0 {
			if repoErr = s.refreshThumbnail(txCtx, sess, playlist); repoErr != nil {
				return repoErr
			}
		}
		if playlist, repoErr = s.repo.FindByID(txCtx, sess, playlistID); repoErr != nil {
			return repoErr
		}
		entries, repoErr = s.entries.List(txCtx, sess, playlistID)
		return repoErr
	})
	if err != nil {
		return nil, s.mapErr(ctx, err, "add playlist video")
	}
	return vo.NewPlaylistDetail(playlist, entries), nil
}

// RemoveVideo 把视频移出播放列表，其后条目前移一位。
// 被移除的视频若正被封面指向，回指改挂到新的 position 0，列表空则清空。
func (s *PlaylistService) RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) (*vo.PlaylistDetail, error) {
	userID, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var playlist *po.Playlist
	var entries []po.PlaylistVideo
	err = s.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		playlist, err = s.ownedPlaylist(txCtx, sess, playlistID, userID)
		if err != nil {
			return err
		}
		removed, repoErr := s.entries.Delete(txCtx, sess, playlistID, videoID)
		if repoErr != nil {
			return repoErr
		}
		count, repoErr := s.entries.Count(txCtx, sess, playlistID)
		if repoErr != nil {
			return repoErr
		}
		plan := PlanRemoval(removed.Position, count+1)
		if plan.Lo <= plan.Hi {
			if repoErr = s.entries.ShiftRange(txCtx, sess, playlistID, plan.Lo, plan.Hi, plan.Delta); repoErr != nil {
				return repoErr
			}
		}

		thumbnailGone := playlist.ThumbnailVideoID != nil && *playlist.ThumbnailVideoID == videoID
		if thumbnailGone || (!playlist.ThumbnailPinned && removed.Position == 0) {
			if repoErr = s.reassignThumbnail(txCtx, sess, playlist); repoErr != nil {
				return repoErr
			}
		}

		if playlist, repoErr = s.repo.FindByID(txCtx, sess, playlistID); repoErr != nil {
			return repoErr
		}
		entries, repoErr = s.entries.List(txCtx, sess, playlistID)
		return repoErr
	})
	if err != nil {
		return nil, s.mapErr(ctx, err, "remove playlist video")
	}
	return vo.NewPlaylistDetail(playlist, entries), nil
}

// RepositionVideo 把条目移到目标位置，途经条目整体平移一位。
// 移动涉及 position 0 时，未固定的封面回指跟随新的首位视频。
func (s *PlaylistService) RepositionVideo(ctx context.Context, playlistID, videoID uuid.UUID, newPos int32) (*vo.PlaylistDetail, error) {
	userID, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var playlist *po.Playlist
	var entries []po.PlaylistVideo
	err = s.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		playlist, err = s.ownedPlaylist(txCtx, sess, playlistID, userID)
		if err != nil {
			return err
		}
		entry, repoErr := s.entries.Find(txCtx, sess, playlistID, videoID)
		if repoErr != nil {
			return repoErr
		}
		count, repoErr := s.entries.Count(txCtx, sess, playlistID)
		if repoErr != nil {
			return repoErr
		}
		if repoErr = ValidateTarget(entry.Position, newPos, count); repoErr != nil {
			return repoErr
		}
		plan, ok := PlanReposition(entry.Position, newPos)
		if !ok {
			return ErrSamePosition
		}
		if repoErr = s.entries.ShiftRange(txCtx, sess, playlistID, plan.Lo, plan.Hi, plan.Delta); repoErr != nil {
			return repoErr
		}
		if repoErr = s.entries.SetPosition(txCtx, sess, playlistID, videoID, newPos); repoErr != nil {
			return repoErr
		}

		if entry.Position == 0 || newPos == 0 {
			if repoErr = s.refreshThumbnail(txCtx, sess, playlist); repoErr != nil {
				return repoErr
			}
		}

		if playlist, repoErr = s.repo.FindByID(txCtx, sess, playlistID); repoErr != nil {
			return repoErr
		}
		entries, repoErr = s.entries.List(txCtx, sess, playlistID)
		return repoErr
	})
	if err != nil {
		return nil, s.mapErr(ctx, err, "reposition playlist video")
	}
	return vo.NewPlaylistDetail(playlist, entries), nil
}

// PinThumbnail 把封面显式固定到列表内的某个视频，此后不再自动刷新。
func (s *PlaylistService) PinThumbnail(ctx context.Context, playlistID, videoID uuid.UUID) (*vo.PlaylistDetail, error) {
	userID, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var playlist *po.Playlist
	var entries []po.PlaylistVideo
	err = s.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		if _, repoErr := s.ownedPlaylist(txCtx, sess, playlistID, userID); repoErr != nil {
			return repoErr
		}
		if _, repoErr := s.entries.Find(txCtx, sess, playlistID, videoID); repoErr != nil {
			return repoErr
		}
		if repoErr := s.repo.SetThumbnail(txCtx, sess, playlistID, &videoID, true); repoErr != nil {
			return repoErr
		}
		var repoErr error
		if playlist, repoErr = s.repo.FindByID(txCtx, sess, playlistID); repoErr != nil {
			return repoErr
		}
		entries, repoErr = s.entries.List(txCtx, sess, playlistID)
		return repoErr
	})
	if err != nil {
		return nil, s.mapErr(ctx, err, "pin playlist thumbnail")
	}
	return vo.NewPlaylistDetail(playlist, entries), nil
}

// UnpinThumbnail 解除封面固定并立即跟随当前首位视频。
func (s *PlaylistService) UnpinThumbnail(ctx context.Context, playlistID uuid.UUID) (*vo.PlaylistDetail, error) {
	userID, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var playlist *po.Playlist
	var entries []po.PlaylistVideo
	err = s.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		found, repoErr := s.ownedPlaylist(txCtx, sess, playlistID, userID)
		if repoErr != nil {
			return repoErr
		}
		if repoErr = s.reassignThumbnail(txCtx, sess, found); repoErr != nil {
			return repoErr
		}
		if playlist, repoErr = s.repo.FindByID(txCtx, sess, playlistID); repoErr != nil {
			return repoErr
		}
		entries, repoErr = s.entries.List(txCtx, sess, playlistID)
		return repoErr
	})
	if err != nil {
		return nil, s.mapErr(ctx, err, "unpin playlist thumbnail")
	}
	return vo.NewPlaylistDetail(playlist, entries), nil
}

// refreshThumbnail 让未固定的封面跟随当前 position 0 的视频。
// 已固定的封面不受条目变动影响。
func (s *PlaylistService) refreshThumbnail(ctx context.Context, sess txmanager.Session, playlist *po.Playlist) error {
	if playlist.ThumbnailPinned {
		return nil
	}
	return s.reassignThumbnail(ctx, sess, playlist)
}

// reassignThumbnail 无条件把封面重挂到当前首位视频，列表为空则清空。
// 固定标记随之清除。
func (s *PlaylistService) reassignThumbnail(ctx context.Context, sess txmanager.Session, playlist *po.Playlist) error {
	first, err := s.entries.VideoAt(ctx, sess, playlist.PlaylistID, 0)
	if err != nil {
		if errors.Is(err, repositories.ErrPlaylistVideoNotFound) {
			return s.repo.SetThumbnail(ctx, sess, playlist.PlaylistID, nil, false)
		}
		return err
	}
	return s.repo.SetThumbnail(ctx, sess, playlist.PlaylistID, &first, false)
}

func (s *PlaylistService) ownedPlaylist(ctx context.Context, sess txmanager.Session, playlistID, userID uuid.UUID) (*po.Playlist, error) {
	playlist, err := s.repo.FindByID(ctx, sess, playlistID)
	if err != nil {
		return nil, err
	}
	if _, err = requireOwnedChannel(ctx, sess, s.channels, playlist.ChannelID, userID); err != nil {
		return nil, err
	}
	return playlist, nil
}

func (s *PlaylistService) mapErr(ctx context.Context, err error, op string) error {
	switch {
	case errors.Is(err, repositories.ErrPlaylistNotFound):
		return ErrPlaylistNotFound
	case errors.Is(err, repositories.ErrPlaylistVideoNotFound):
		return ErrPlaylistVideoNotFound
	case errors.Is(err, repositories.ErrVideoNotFound):
		return ErrVideoNotFound
	case errors.Is(err, repositories.ErrChannelNotFound):
		return ErrChannelNotFound
	case errors.Is(err, ErrChannelForbidden), errors.Is(err, ErrVideoAlreadyInList),
		errors.Is(err, ErrSamePosition), errors.Is(err, ErrPositionNotFound):
		return err
	default:
		s.log.WithContext(ctx).Errorf("%s failed: %v", op, err)
		return errors.InternalServer("PLAYLIST_WRITE_FAILED", "failed to update playlist").WithCause(fmt.Errorf("%s: %w", op, err))
	}
}
