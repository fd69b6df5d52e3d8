package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vidora/vidora-services-platform/internal/models/po"
	"github.com/vidora/vidora-services-platform/internal/models/vo"
	"github.com/vidora/vidora-services-platform/internal/repositories"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
)

// RankingRepo 定义搜索与趋势所需的只读聚合查询。
type RankingRepo interface {
	Search(ctx context.Context, sess txmanager.Session, q repositories.SearchQuery) ([]po.RankedVideo, error)
	Trending(ctx context.Context, sess txmanager.Session, w repositories.TrendingWeights, limit int32) ([]po.RankedVideo, error)
}

// DateBucket 表示发布时间过滤档位。
type DateBucket string

// 档位常量：按“最近一小时/今天/本周/本月/今年”截断。
const (
	DateBucketAny       DateBucket = ""
	DateBucketLastHour  DateBucket = "LAST_HOUR"
	DateBucketToday     DateBucket = "TODAY"
	DateBucketThisWeek  DateBucket = "THIS_WEEK"
	DateBucketThisMonth DateBucket = "THIS_MONTH"
	DateBucketThisYear  DateBucket = "THIS_YEAR"
)

// SearchInput 表示搜索用例输入。
type SearchInput struct {
	Query      string
	Sort       repositories.SearchSort
	UploadDate DateBucket
	Limit      int32
}

// SearchService 封装视频搜索用例。
type SearchService struct {
	repo      RankingRepo
	txManager txmanager.Manager
	log       *log.Helper
	now       func() time.Time
}

// NewSearchService 构造搜索服务。
func NewSearchService(repo RankingRepo, tx txmanager.Manager, logger log.Logger) *SearchService {
	return &SearchService{repo: repo, txManager: tx, log: log.NewHelper(logger), now: time.Now}
}

// Search 按标题模糊匹配公开且就绪的视频。
// 空查询串返回 400；未识别的排序与时间档位回退到默认行为。
func (s *SearchService) Search(ctx context.Context, input SearchInput) ([]*vo.VideoSummary, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, ErrSearchQueryRequired
	}

	var rows []po.RankedVideo
	err := s.txManager.WithinReadOnlyTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		var repoErr error
		rows, repoErr = s.repo.Search(txCtx, sess, repositories.SearchQuery{
			Query:          query,
			PublishedAfter: s.cutoff(input.UploadDate),
			Sort:           input.Sort,
			Limit:          input.Limit,
		})
		return repoErr
	})
	if err != nil {
		s.log.WithContext(ctx).Errorf("search failed: query=%q err=%v", query, err)
		return nil, errors.InternalServer("SEARCH_FAILED", "search failed").WithCause(fmt.Errorf("search: %w", err))
	}
	return vo.NewVideoSummaries(rows, false), nil
}

// cutoff 把时间档位换算成发布时间下界，未识别档位不过滤。
func (s *SearchService) cutoff(bucket DateBucket) *time.Time {
	now := s.now()
	var cut time.Time
	switch bucket {
	case DateBucketLastHour:
		cut = now.Add(-time.Hour)
	case DateBucketToday:
		cut = now.AddDate(0, 0, -1)
	case DateBucketThisWeek:
		cut = now.AddDate(0, 0, -7)
	case DateBucketThisMonth:
		cut = now.AddDate(0, -1, 0)
	case DateBucketThisYear:
		cut = now.AddDate(-1, 0, 0)
	default:
		return nil
	}
	return &cut
}
