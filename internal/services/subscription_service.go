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

// SubscriptionRepo 定义订阅关系所需的持久化行为。
type SubscriptionRepo interface {
	Exists(ctx context.Context, sess txmanager.Session, userID, channelID uuid.UUID) (bool, error)
	Insert(ctx context.Context, sess txmanager.Session, userID, channelID uuid.UUID) error
	Delete(ctx context.Context, sess txmanager.Session, userID, channelID uuid.UUID) error
	ListByUser(ctx context.Context, sess txmanager.Session, userID uuid.UUID) ([]po.Subscription, error)
}

// SubscriptionService 封装订阅 toggle 与订阅列表用例。
type SubscriptionService struct {
	repo      SubscriptionRepo
	channels  ChannelRepo
	txManager txmanager.Manager
	log       *log.Helper
}

// NewSubscriptionService 构造订阅服务。
func NewSubscriptionService(repo SubscriptionRepo, channels ChannelRepo, tx txmanager.Manager, logger log.Logger) *SubscriptionService {
	return &SubscriptionService{repo: repo, channels: channels, txManager: tx, log: log.NewHelper(logger)}
}

// ToggleSubscription 翻转当前用户对频道的订阅状态。
// 不允许订阅自己拥有的频道。
func (s *SubscriptionService) ToggleSubscription(ctx context.Context, channelID uuid.UUID) (*vo.SubscriptionToggled, error) {
	userID, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var subscribed bool
	err = s.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		channel, repoErr := s.channels.FindByID(txCtx, sess, channelID)
		if repoErr != nil {
			return repoErr
		}
		if channel.OwnerUserID == userID {
			return ErrOwnChannel
		}
		exists, repoErr := s.repo.Exists(txCtx, sess, userID, channelID)
		if repoErr != nil {
			return repoErr
		}
		if exists {
			subscribed = false
			return s.repo.Delete(txCtx, sess, userID, channelID)
		}
		subscribed = true
		return s.repo.Insert(txCtx, sess, userID, channelID)
	})
	if err != nil {
		return nil, s.mapErr(ctx, err, "toggle subscription")
	}
	return &vo.SubscriptionToggled{ChannelID: channelID, Subscribed: subscribed}, nil
}

// ListSubscriptions 返回当前用户订阅的频道，按订阅时间降序。
func (s *SubscriptionService) ListSubscriptions(ctx context.Context) ([]*vo.ChannelDetail, error) {
	userID, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var out []*vo.ChannelDetail
	err = s.txManager.WithinReadOnlyTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		subs, repoErr := s.repo.ListByUser(txCtx, sess, userID)
		if repoErr != nil {
			return repoErr
		}
		out = make([]*vo.ChannelDetail, 0, len(subs))
		for i := range subs {
			channel, chErr := s.channels.FindByID(txCtx, sess, subs[i].ChannelID)
			if chErr != nil {
				if errors.Is(chErr, repositories.ErrChannelNotFound) {
					continue
				}
				return chErr
			}
			out = append(out, vo.NewChannelDetail(channel, nil))
		}
		return nil
	})
	if err != nil {
		return nil, s.mapErr(ctx, err, "list subscriptions")
	}
	return out, nil
}

func (s *SubscriptionService) mapErr(ctx context.Context, err error, op string) error {
	switch {
	case errors.Is(err, repositories.ErrChannelNotFound):
		return ErrChannelNotFound
	case errors.Is(err, ErrOwnChannel):
		return ErrOwnChannel
	default:
		s.log.WithContext(ctx).Errorf("%s failed: %v", op, err)
		return errors.InternalServer("SUBSCRIPTION_WRITE_FAILED", "failed to update subscription").WithCause(fmt.Errorf("%s: %w", op, err))
	}
}
