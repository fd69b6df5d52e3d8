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

// ChannelRepo 定义频道用例所需的持久化行为。
type ChannelRepo interface {
	Create(ctx context.Context, sess txmanager.Session, input repositories.CreateChannelInput) (*po.Channel, error)
	Update(ctx context.Context, sess txmanager.Session, input repositories.UpdateChannelInput) (*po.Channel, error)
	FindByID(ctx context.Context, sess txmanager.Session, channelID uuid.UUID) (*po.Channel, error)
	ListByOwner(ctx context.Context, sess txmanager.Session, ownerUserID uuid.UUID) ([]po.Channel, error)
	Stats(ctx context.Context, sess txmanager.Session, channelID uuid.UUID) (*po.ChannelStats, error)
}

// CreateChannelInput 表示创建频道的用例输入。
type CreateChannelInput struct {
	Name        string
	Handle      string
	Description *string
}

// UpdateChannelInput 表示更新频道的用例输入。
type UpdateChannelInput struct {
	ChannelID   uuid.UUID
	Name        *string
	Description *string
	AvatarURL   *string
}

// ChannelService 封装频道用例。
type ChannelService struct {
	repo      ChannelRepo
	txManager txmanager.Manager
	log       *log.Helper
}

// NewChannelService 构造频道服务。
func NewChannelService(repo ChannelRepo, tx txmanager.Manager, logger log.Logger) *ChannelService {
	return &ChannelService{repo: repo, txManager: tx, log: log.NewHelper(logger)}
}

// CreateChannel 为当前用户创建一个新频道。
func (s *ChannelService) CreateChannel(ctx context.Context, input CreateChannelInput) (*vo.ChannelDetail, error) {
	userID, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var created *po.Channel
	err = s.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		var repoErr error
		created, repoErr = s.repo.Create(txCtx, sess, repositories.CreateChannelInput{
			OwnerUserID: userID,
			Name:        input.Name,
			Handle:      input.Handle,
			Description: input.Description,
		})
		return repoErr
	})
	if err != nil {
		s.log.WithContext(ctx).Errorf("create channel failed: user_id=%s err=%v", userID, err)
		return nil, errors.InternalServer("CHANNEL_CREATE_FAILED", "failed to create channel").WithCause(fmt.Errorf("create channel: %w", err))
	}
	return vo.NewChannelDetail(created, &po.ChannelStats{ChannelID: created.ChannelID}), nil
}

// UpdateChannel 更新当前用户拥有的频道资料。
func (s *ChannelService) UpdateChannel(ctx context.Context, input UpdateChannelInput) (*vo.ChannelDetail, error) {
	userID, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var updated *po.Channel
	var stats *po.ChannelStats
	err = s.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		channel, repoErr := s.repo.FindByID(txCtx, sess, input.ChannelID)
		if repoErr != nil {
			return repoErr
		}
		if channel.OwnerUserID != userID {
			return ErrChannelForbidden
		}
		if updated, repoErr = s.repo.Update(txCtx, sess, repositories.UpdateChannelInput{
			ChannelID:   input.ChannelID,
			Name:        input.Name,
			Description: input.Description,
			AvatarURL:   input.AvatarURL,
		}); repoErr != nil {
			return repoErr
		}
		stats, repoErr = s.repo.Stats(txCtx, sess, input.ChannelID)
		return repoErr
	})
	if err != nil {
		return nil, s.mapErr(ctx, err, "update channel")
	}
	return vo.NewChannelDetail(updated, stats), nil
}

// GetChannel 查询频道详情（含订阅数/视频数）。
func (s *ChannelService) GetChannel(ctx context.Context, channelID uuid.UUID) (*vo.ChannelDetail, error) {
	var channel *po.Channel
	var stats *po.ChannelStats
	err := s.txManager.WithinReadOnlyTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		var repoErr error
		if channel, repoErr = s.repo.FindByID(txCtx, sess, channelID); repoErr != nil {
			return repoErr
		}
		stats, repoErr = s.repo.Stats(txCtx, sess, channelID)
		return repoErr
	})
	if err != nil {
		return nil, s.mapErr(ctx, err, "get channel")
	}
	return vo.NewChannelDetail(channel, stats), nil
}

// ListMyChannels 返回当前用户拥有的全部频道。
func (s *ChannelService) ListMyChannels(ctx context.Context) ([]*vo.ChannelDetail, error) {
	userID, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var channels []po.Channel
	err = s.txManager.WithinReadOnlyTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		var repoErr error
		channels, repoErr = s.repo.ListByOwner(txCtx, sess, userID)
		return repoErr
	})
	if err != nil {
		return nil, s.mapErr(ctx, err, "list channels")
	}

	out := make([]*vo.ChannelDetail, 0, len(channels))
	for i := range channels {
		out = append(out, vo.NewChannelDetail(&channels[i], nil))
	}
	return out, nil
}

func (s *ChannelService) mapErr(ctx context.Context, err error, op string) error {
	switch {
	case errors.Is(err, repositories.ErrChannelNotFound):
		return ErrChannelNotFound
	case errors.Is(err, ErrChannelForbidden):
		return ErrChannelForbidden
	default:
		s.log.WithContext(ctx).Errorf("%s failed: %v", op, err)
		return errors.InternalServer("CHANNEL_QUERY_FAILED", "failed to access channel").WithCause(err)
	}
}
