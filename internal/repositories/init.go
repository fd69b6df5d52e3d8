package repositories

import "github.com/google/wire"

// ProviderSet 暴露数据访问层构造器供 Wire 依赖注入使用。
var ProviderSet = wire.NewSet(
	NewChannelRepository,
	NewVideoRepository,
	NewViewLogRepository,
	NewReactionRepository,
	NewCommentRepository,
	NewLinkRepository,
	NewPlaylistRepository,
	NewPlaylistVideoRepository,
	NewSubscriptionRepository,
	NewRankingRepository,
)
