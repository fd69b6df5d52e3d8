package services_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/vidora/vidora-services-platform/internal/conf"
	"github.com/vidora/vidora-services-platform/internal/models/po"
	"github.com/vidora/vidora-services-platform/internal/repositories"
	"github.com/vidora/vidora-services-platform/internal/services"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

type stubRankingRepo struct {
	lastSearch   repositories.SearchQuery
	lastWeights  repositories.TrendingWeights
	lastLimit    int32
	searchRows   []po.RankedVideo
	trendingRows []po.RankedVideo
}

func (s *stubRankingRepo) Search(_ context.Context, _ txmanager.Session, q repositories.SearchQuery) ([]po.RankedVideo, error) {
	s.lastSearch = q
	return s.searchRows, nil
}

func (s *stubRankingRepo) Trending(_ context.Context, _ txmanager.Session, w repositories.TrendingWeights, limit int32) ([]po.RankedVideo, error) {
	s.lastWeights = w
	s.lastLimit = limit
	return s.trendingRows, nil
}

func newSearchService(repo services.RankingRepo) *services.SearchService {
	return services.NewSearchService(repo, noopTxManager{}, log.NewStdLogger(ioDiscard{}))
}

// rankedSeed 用原始行描述一个视频：三态反应行、观看槽位与评论数。
type rankedSeed struct {
	video     po.Video
	reactions []bool              // 每元素一条反应行，true 为点赞
	views     map[uuid.UUID]int64 // viewer 槽位 -> 累计 count
	comments  int64
}

// fakeRankingRepo 从原始行推导聚合统计并按排序模式输出，
// like_count 只统计点赞行，view_count 为全部槽位之和。
type fakeRankingRepo struct {
	seeds []rankedSeed
}

func (f *fakeRankingRepo) rank(seed rankedSeed) po.RankedVideo {
	stats := po.VideoStats{VideoID: seed.video.VideoID, CommentCount: seed.comments}
	for _, liked := range seed.reactions {
		if liked {
			stats.LikeCount++
		} else {
			stats.DislikeCount++
		}
	}
	for _, count := range seed.views {
		stats.ViewCount += count
	}
	return po.RankedVideo{Video: seed.video, Stats: stats}
}

func (f *fakeRankingRepo) Search(_ context.Context, _ txmanager.Session, q repositories.SearchQuery) ([]po.RankedVideo, error) {
	var out []po.RankedVideo
	for _, seed := range f.seeds {
		if !strings.Contains(strings.ToLower(seed.video.Title), strings.ToLower(q.Query)) {
			continue
		}
		out = append(out, f.rank(seed))
	}
	switch q.Sort {
	case repositories.SearchSortRating:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Stats.LikeCount > out[j].Stats.LikeCount })
	case repositories.SearchSortViewCount:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Stats.ViewCount > out[j].Stats.ViewCount })
	}
	return out, nil
}

func (f *fakeRankingRepo) Trending(_ context.Context, _ txmanager.Session, w repositories.TrendingWeights, _ int32) ([]po.RankedVideo, error) {
	var out []po.RankedVideo
	for _, seed := range f.seeds {
		ranked := f.rank(seed)
		ranked.TrendScore = w.Like*float64(ranked.Stats.LikeCount) +
			w.View*float64(ranked.Stats.ViewCount) +
			w.Comment*float64(ranked.Stats.CommentCount)
		out = append(out, ranked)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TrendScore > out[j].TrendScore })
	return out, nil
}

func TestSearchEmptyQueryRejected(t *testing.T) {
	svc := newSearchService(&stubRankingRepo{})

	for _, q := range []string{"", "   ", "\t"} {
		_, err := svc.Search(context.Background(), services.SearchInput{Query: q})
		if !errors.Is(err, services.ErrSearchQueryRequired) {
			t.Fatalf("query %q: expected ErrSearchQueryRequired, got %v", q, err)
		}
	}
}

func TestSearchTrimsQueryAndPassesSort(t *testing.T) {
	repo := &stubRankingRepo{}
	svc := newSearchService(repo)

	if _, err := svc.Search(context.Background(), services.SearchInput{
		Query: "  cats  ",
		Sort:  repositories.SearchSortViewCount,
		Limit: 10,
	}); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if repo.lastSearch.Query != "cats" {
		t.Fatalf("expected trimmed query, got %q", repo.lastSearch.Query)
	}
	if repo.lastSearch.Sort != repositories.SearchSortViewCount {
		t.Fatalf("expected sort passed through, got %q", repo.lastSearch.Sort)
	}
	if repo.lastSearch.PublishedAfter != nil {
		t.Fatalf("expected no date filter by default, got %v", repo.lastSearch.PublishedAfter)
	}
}

func TestSearchDateBuckets(t *testing.T) {
	cases := []struct {
		bucket services.DateBucket
		window time.Duration
	}{
		{services.DateBucketLastHour, time.Hour},
		{services.DateBucketToday, 24 * time.Hour},
		{services.DateBucketThisWeek, 7 * 24 * time.Hour},
	}
	for _, tc := range cases {
		repo := &stubRankingRepo{}
		svc := newSearchService(repo)

		before := time.Now()
		if _, err := svc.Search(context.Background(), services.SearchInput{Query: "q", UploadDate: tc.bucket}); err != nil {
			t.Fatalf("Search(%s): %v", tc.bucket, err)
		}
		if repo.lastSearch.PublishedAfter == nil {
			t.Fatalf("bucket %s: expected a cutoff", tc.bucket)
		}
		got := before.Sub(*repo.lastSearch.PublishedAfter)
		if got < tc.window-time.Minute || got > tc.window+time.Minute {
			t.Fatalf("bucket %s: cutoff off by %v", tc.bucket, got-tc.window)
		}
	}
}

func TestSearchUnknownBucketUnfiltered(t *testing.T) {
	repo := &stubRankingRepo{}
	svc := newSearchService(repo)

	if _, err := svc.Search(context.Background(), services.SearchInput{Query: "q", UploadDate: "LAST_DECADE"}); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if repo.lastSearch.PublishedAfter != nil {
		t.Fatalf("expected unknown bucket to skip filtering, got %v", repo.lastSearch.PublishedAfter)
	}
}

func TestSearchResultsCarryNoScore(t *testing.T) {
	repo := &stubRankingRepo{searchRows: []po.RankedVideo{{
		Video:      po.Video{VideoID: uuid.New(), Title: "hit"},
		Stats:      po.VideoStats{ViewCount: 7, LikeCount: 3},
		TrendScore: 42,
	}}}
	svc := newSearchService(repo)

	rows, err := svc.Search(context.Background(), services.SearchInput{Query: "hit"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].TrendScore != nil {
		t.Fatal("search rows should not expose trend score")
	}
	if rows[0].ViewCount != 7 || rows[0].LikeCount != 3 {
		t.Fatalf("unexpected stats: %+v", rows[0])
	}
}

func TestSearchRatingSortIgnoresDislikes(t *testing.T) {
	controversial := rankedSeed{
		video:     po.Video{VideoID: uuid.New(), Title: "go tutorial controversial"},
		reactions: []bool{true, true, false, false, false, false, false},
	}
	quiet := rankedSeed{
		video:     po.Video{VideoID: uuid.New(), Title: "go tutorial quiet"},
		reactions: []bool{true},
	}
	svc := newSearchService(&fakeRankingRepo{seeds: []rankedSeed{quiet, controversial}})

	rows, err := svc.Search(context.Background(), services.SearchInput{
		Query: "go tutorial",
		Sort:  repositories.SearchSortRating,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	// 2 赞 5 踩排在 1 赞 0 踩之前：点踩不参与评分排序
	if rows[0].VideoID != controversial.video.VideoID {
		t.Fatalf("expected the 2-like video first, got %s", rows[0].VideoID)
	}
	if rows[0].LikeCount != 2 || rows[1].LikeCount != 1 {
		t.Fatalf("unexpected like counts: %d, %d", rows[0].LikeCount, rows[1].LikeCount)
	}
}

func TestSearchViewCountSortSumsViewerSlots(t *testing.T) {
	spread := rankedSeed{
		video: po.Video{VideoID: uuid.New(), Title: "cats spread"},
		views: map[uuid.UUID]int64{uuid.New(): 2, po.AnonymousViewer: 3},
	}
	single := rankedSeed{
		video: po.Video{VideoID: uuid.New(), Title: "cats single"},
		views: map[uuid.UUID]int64{uuid.New(): 4},
	}
	svc := newSearchService(&fakeRankingRepo{seeds: []rankedSeed{single, spread}})

	rows, err := svc.Search(context.Background(), services.SearchInput{
		Query: "cats",
		Sort:  repositories.SearchSortViewCount,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	// 2+3（含匿名槽位）胜过单槽位的 4
	if rows[0].VideoID != spread.video.VideoID {
		t.Fatalf("expected the summed-slot video first, got %s", rows[0].VideoID)
	}
	if rows[0].ViewCount != 5 || rows[1].ViewCount != 4 {
		t.Fatalf("unexpected view counts: %d, %d", rows[0].ViewCount, rows[1].ViewCount)
	}
}

func TestTrendingScoreMonotonicInAllInputs(t *testing.T) {
	hot := rankedSeed{
		video:     po.Video{VideoID: uuid.New(), Title: "hot"},
		reactions: []bool{true, true},
		views:     map[uuid.UUID]int64{po.AnonymousViewer: 10},
		comments:  4,
	}
	mild := rankedSeed{
		video:     po.Video{VideoID: uuid.New(), Title: "mild"},
		reactions: []bool{true},
		views:     map[uuid.UUID]int64{po.AnonymousViewer: 5},
		comments:  1,
	}
	svc := services.NewTrendingService(
		&fakeRankingRepo{seeds: []rankedSeed{mild, hot}},
		&conf.Trending{LikeWeight: 3, ViewWeight: 1, CommentWeight: 2},
		noopTxManager{},
		log.NewStdLogger(ioDiscard{}),
	)

	rows, err := svc.Trending(context.Background(), 10)
	if err != nil {
		t.Fatalf("Trending: %v", err)
	}
	if len(rows) != 2 || rows[0].VideoID != hot.video.VideoID {
		t.Fatalf("expected the dominating video first, got %+v", rows)
	}
	// 3*2 + 1*10 + 2*4 = 24；3*1 + 1*5 + 2*1 = 10
	if rows[0].TrendScore == nil || *rows[0].TrendScore != 24 {
		t.Fatalf("unexpected top score: %+v", rows[0].TrendScore)
	}
	if rows[1].TrendScore == nil || *rows[1].TrendScore != 10 {
		t.Fatalf("unexpected runner-up score: %+v", rows[1].TrendScore)
	}
}

func TestTrendingUsesConfiguredWeights(t *testing.T) {
	repo := &stubRankingRepo{trendingRows: []po.RankedVideo{{
		Video:      po.Video{VideoID: uuid.New(), Title: "hot"},
		TrendScore: 12.5,
	}}}
	svc := services.NewTrendingService(repo, &conf.Trending{LikeWeight: 5, ViewWeight: 2, CommentWeight: 1}, noopTxManager{}, log.NewStdLogger(ioDiscard{}))

	rows, err := svc.Trending(context.Background(), 20)
	if err != nil {
		t.Fatalf("Trending: %v", err)
	}
	if repo.lastWeights != (repositories.TrendingWeights{Like: 5, View: 2, Comment: 1}) {
		t.Fatalf("unexpected weights: %+v", repo.lastWeights)
	}
	if repo.lastLimit != 20 {
		t.Fatalf("expected limit passed through, got %d", repo.lastLimit)
	}
	if len(rows) != 1 || rows[0].TrendScore == nil || *rows[0].TrendScore != 12.5 {
		t.Fatalf("expected trend score exposed, got %+v", rows)
	}
}

func TestTrendingFallsBackToDefaultWeights(t *testing.T) {
	repo := &stubRankingRepo{}
	svc := services.NewTrendingService(repo, nil, noopTxManager{}, log.NewStdLogger(ioDiscard{}))

	if _, err := svc.Trending(context.Background(), 5); err != nil {
		t.Fatalf("Trending: %v", err)
	}
	if repo.lastWeights != (repositories.TrendingWeights{Like: 3, View: 1, Comment: 2}) {
		t.Fatalf("expected default 3/1/2 weights, got %+v", repo.lastWeights)
	}
}
