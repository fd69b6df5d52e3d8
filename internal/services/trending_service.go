package services

import (
	"context"
	"fmt"

	"github.com/vidora/vidora-services-platform/internal/conf"
	"github.com/vidora/vidora-services-platform/internal/models/po"
	"github.com/vidora/vidora-services-platform/internal/models/vo"
	"github.com/vidora/vidora-services-platform/internal/repositories"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
)

// TrendingService 封装趋势榜用例。
// 趋势分 = like_weight*likes + view_weight*views + comment_weight*comments，
// 权重非负，分数对三项输入均单调递增。
type TrendingService struct {
	repo      RankingRepo
	weights   repositories.TrendingWeights
	txManager txmanager.Manager
	log       *log.Helper
}

// NewTrendingService 构造趋势服务，权重取自配置。
func NewTrendingService(repo RankingRepo, cfg *conf.Trending, tx txmanager.Manager, logger log.Logger) *TrendingService {
	w := cfg.Normalize()
	return &TrendingService{
		repo: repo,
		weights: repositories.TrendingWeights{
			Like:    w.LikeWeight,
			View:    w.ViewWeight,
			Comment: w.CommentWeight,
		},
		txManager: tx,
		log:       log.NewHelper(logger),
	}
}

// Trending 返回趋势榜，分数最高的公开视频优先，响应附带每行的分数。
func (s *TrendingService) Trending(ctx context.Context, limit int32) ([]*vo.VideoSummary, error) {
	var rows []po.RankedVideo
	err := s.txManager.WithinReadOnlyTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		var repoErr error
		rows, repoErr = s.repo.Trending(txCtx, sess, s.weights, limit)
		return repoErr
	})
	if err != nil {
		s.log.WithContext(ctx).Errorf("trending failed: %v", err)
		return nil, errors.InternalServer("TRENDING_FAILED", "failed to compute trending feed").WithCause(fmt.Errorf("trending: %w", err))
	}
	return vo.NewVideoSummaries(rows, true), nil
}
