package services

import (
	"context"
	"fmt"
	"time"

	"github.com/vidora/vidora-services-platform/internal/models/po"
	"github.com/vidora/vidora-services-platform/internal/models/vo"
	"github.com/vidora/vidora-services-platform/internal/repositories"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// VideoRepo 定义视频用例所需的持久化行为。
type VideoRepo interface {
	Create(ctx context.Context, sess txmanager.Session, input repositories.CreateVideoInput) (*po.Video, error)
	Update(ctx context.Context, sess txmanager.Session, input repositories.UpdateVideoInput) (*po.Video, error)
	Delete(ctx context.Context, sess txmanager.Session, videoID uuid.UUID) (*po.Video, error)
	FindByID(ctx context.Context, sess txmanager.Session, videoID uuid.UUID) (*po.Video, error)
	Stats(ctx context.Context, sess txmanager.Session, videoID uuid.UUID) (*po.VideoStats, error)
	ListByChannel(ctx context.Context, sess txmanager.Session, channelID uuid.UUID, publicOnly bool) ([]po.Video, error)
}

// ViewLogRepo 定义观看计数所需的持久化行为。
type ViewLogRepo interface {
	Record(ctx context.Context, sess txmanager.Session, videoID, viewerID uuid.UUID) (*po.ViewLogEntry, error)
	TotalViews(ctx context.Context, sess txmanager.Session, videoID uuid.UUID) (int64, error)
}

// MediaSigner 抽象媒体存储协作方：给定对象名，换取带时效的上传 URL。
type MediaSigner interface {
	SignUpload(ctx context.Context, objectName, contentType string, ttl time.Duration) (url string, expires time.Time, err error)
}

// CreateVideoInput 表示创建视频的用例输入。
type CreateVideoInput struct {
	Title       string
	Description *string
	Visibility  po.Visibility
	ContentType string
}

// UpdateVideoInput 表示更新视频的用例输入。
type UpdateVideoInput struct {
	VideoID        uuid.UUID
	Title          *string
	Description    *string
	ThumbnailURL   *string
	Status         *po.VideoStatus
	Visibility     *po.Visibility
	DurationMicros *int64
}

// VideoService 封装视频写模型与详情查询用例。
type VideoService struct {
	repo      VideoRepo
	views     ViewLogRepo
	channels  ChannelRepo
	signer    MediaSigner
	uploadTTL time.Duration
	txManager txmanager.Manager
	log       *log.Helper
}

// NewVideoService 构造视频服务。
func NewVideoService(repo VideoRepo, views ViewLogRepo, channels ChannelRepo, signer MediaSigner, uploadTTL time.Duration, tx txmanager.Manager, logger log.Logger) *VideoService {
	if uploadTTL <= 0 {
		uploadTTL = 15 * time.Minute
	}
	return &VideoService{
		repo:      repo,
		views:     views,
		channels:  channels,
		signer:    signer,
		uploadTTL: uploadTTL,
		txManager: tx,
		log:       log.NewHelper(logger),
	}
}

// CreateVideo 创建视频记录并签发上传 URL。
// 签名先于落库：任一签名失败则直接返回错误，不提交任何行。
func (s *VideoService) CreateVideo(ctx context.Context, input CreateVideoInput) (*vo.VideoCreated, error) {
	userID, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	channelID, err := activeChannelFromContext(ctx)
	if err != nil {
		return nil, err
	}

	videoID := uuid.New()
	objectName := fmt.Sprintf("videos/%s/%s/raw", channelID, videoID)
	thumbObject := fmt.Sprintf("videos/%s/%s/thumbnail", channelID, videoID)

	uploadURL, expires, err := s.signer.SignUpload(ctx, objectName, input.ContentType, s.uploadTTL)
	if err != nil {
		s.log.WithContext(ctx).Errorf("sign video upload failed: video_id=%s err=%v", videoID, err)
		return nil, ErrUploadUnavailable
	}
	thumbURL, _, err := s.signer.SignUpload(ctx, thumbObject, "image/jpeg", s.uploadTTL)
	if err != nil {
		s.log.WithContext(ctx).Errorf("sign thumbnail upload failed: video_id=%s err=%v", videoID, err)
		return nil, ErrUploadUnavailable
	}

	var created *po.Video
	err = s.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		if _, repoErr := requireOwnedChannel(txCtx, sess, s.channels, channelID, userID); repoErr != nil {
			return repoErr
		}
		var repoErr error
		created, repoErr = s.repo.Create(txCtx, sess, repositories.CreateVideoInput{
			VideoID:          videoID,
			ChannelID:        channelID,
			Title:            input.Title,
			Description:      input.Description,
			RawFileReference: objectName,
			Visibility:       input.Visibility,
		})
		return repoErr
	})
	if err != nil {
		return nil, s.mapErr(ctx, err, "create video")
	}

	s.log.WithContext(ctx).Infof("CreateVideo: video_id=%s channel_id=%s", created.VideoID, channelID)
	return &vo.VideoCreated{
		VideoID:         created.VideoID,
		Status:          string(created.Status),
		UploadURL:       uploadURL,
		ThumbnailURL:    thumbURL,
		UploadExpiresAt: expires,
		CreatedAt:       created.CreatedAt,
	}, nil
}

// UpdateVideo 更新视频元数据，要求当前用户拥有视频所属频道。
func (s *VideoService) UpdateVideo(ctx context.Context, input UpdateVideoInput) (*vo.VideoDetail, error) {
	userID, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var updated *po.Video
	var stats *po.VideoStats
	err = s.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		video, repoErr := s.repo.FindByID(txCtx, sess, input.VideoID)
		if repoErr != nil {
			return repoErr
		}
		if _, repoErr = requireOwnedChannel(txCtx, sess, s.channels, video.ChannelID, userID); repoErr != nil {
			return repoErr
		}
		if updated, repoErr = s.repo.Update(txCtx, sess, repositories.UpdateVideoInput{
			VideoID:        input.VideoID,
			Title:          input.Title,
			Description:    input.Description,
			ThumbnailURL:   input.ThumbnailURL,
			Status:         input.Status,
			Visibility:     input.Visibility,
			DurationMicros: input.DurationMicros,
		}); repoErr != nil {
			return repoErr
		}
		stats, repoErr = s.repo.Stats(txCtx, sess, input.VideoID)
		return repoErr
	})
	if err != nil {
		return nil, s.mapErr(ctx, err, "update video")
	}
	return vo.NewVideoDetail(updated, stats), nil
}

// DeleteVideo 删除视频，要求当前用户拥有视频所属频道。
func (s *VideoService) DeleteVideo(ctx context.Context, videoID uuid.UUID) error {
	userID, err := actorFromContext(ctx)
	if err != nil {
		return err
	}

	err = s.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		video, repoErr := s.repo.FindByID(txCtx, sess, videoID)
		if repoErr != nil {
			return repoErr
		}
		if _, repoErr = requireOwnedChannel(txCtx, sess, s.channels, video.ChannelID, userID); repoErr != nil {
			return repoErr
		}
		_, repoErr = s.repo.Delete(txCtx, sess, videoID)
		return repoErr
	})
	if err != nil {
		return s.mapErr(ctx, err, "delete video")
	}
	return nil
}

// GetVideoDetail 查询视频详情（含聚合统计）。
func (s *VideoService) GetVideoDetail(ctx context.Context, videoID uuid.UUID) (*vo.VideoDetail, error) {
	var video *po.Video
	var stats *po.VideoStats
	err := s.txManager.WithinReadOnlyTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		var repoErr error
		if video, repoErr = s.repo.FindByID(txCtx, sess, videoID); repoErr != nil {
			return repoErr
		}
		stats, repoErr = s.repo.Stats(txCtx, sess, videoID)
		return repoErr
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			s.log.WithContext(ctx).Warnf("get video detail timeout: video_id=%s", videoID)
			return nil, errors.GatewayTimeout("QUERY_TIMEOUT", "query timeout")
		}
		return nil, s.mapErr(ctx, err, "get video detail")
	}
	return vo.NewVideoDetail(video, stats), nil
}

// ListChannelVideos 返回频道视频列表；非拥有者只能看到公开且就绪的视频。
func (s *VideoService) ListChannelVideos(ctx context.Context, channelID uuid.UUID) ([]*vo.VideoDetail, error) {
	publicOnly := true
	if meta, err := actorFromContext(ctx); err == nil {
		var ownErr error
		err = s.txManager.WithinReadOnlyTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
			_, ownErr = requireOwnedChannel(txCtx, sess, s.channels, channelID, meta)
			return nil
		})
		if err == nil && ownErr == nil {
			publicOnly = false
		}
	}

	var videos []po.Video
	err := s.txManager.WithinReadOnlyTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		var repoErr error
		videos, repoErr = s.repo.ListByChannel(txCtx, sess, channelID, publicOnly)
		return repoErr
	})
	if err != nil {
		return nil, s.mapErr(ctx, err, "list channel videos")
	}

	out := make([]*vo.VideoDetail, 0, len(videos))
	for i := range videos {
		out = append(out, vo.NewVideoDetail(&videos[i], nil))
	}
	return out, nil
}

// RecordView 为视频累加一次观看，并返回累加后的总观看数。
// 登录用户各占一个 (video, viewer) 槽位，匿名观看共享 po.AnonymousViewer 槽位；
// 总观看数是全部槽位 count 之和，与累加在同一事务内读取。
func (s *VideoService) RecordView(ctx context.Context, videoID uuid.UUID) (*vo.ViewRecorded, error) {
	viewerID := po.AnonymousViewer
	if userID, err := actorFromContext(ctx); err == nil {
		viewerID = userID
	}

	var entry *po.ViewLogEntry
	var total int64
	err := s.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		if _, repoErr := s.repo.FindByID(txCtx, sess, videoID); repoErr != nil {
			return repoErr
		}
		var repoErr error
		if entry, repoErr = s.views.Record(txCtx, sess, videoID, viewerID); repoErr != nil {
			return repoErr
		}
		total, repoErr = s.views.TotalViews(txCtx, sess, videoID)
		return repoErr
	})
	if err != nil {
		return nil, s.mapErr(ctx, err, "record view")
	}
	return &vo.ViewRecorded{
		VideoID:      entry.VideoID,
		ViewerID:     entry.ViewerID,
		Count:        entry.Count,
		TotalViews:   total,
		LastViewedAt: entry.LastViewedAt,
	}, nil
}

func (s *VideoService) mapErr(ctx context.Context, err error, op string) error {
	switch {
	case errors.Is(err, repositories.ErrVideoNotFound):
		return ErrVideoNotFound
	case errors.Is(err, repositories.ErrChannelNotFound):
		return ErrChannelNotFound
	case errors.Is(err, ErrChannelForbidden):
		return ErrChannelForbidden
	default:
		s.log.WithContext(ctx).Errorf("%s failed: %v", op, err)
		return errors.InternalServer("VIDEO_QUERY_FAILED", "failed to access video").WithCause(fmt.Errorf("%s: %w", op, err))
	}
}
