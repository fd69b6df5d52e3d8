package services

import "github.com/google/wire"

// ProviderSet 暴露用例层构造器供 Wire 依赖注入使用。
// 仓储接口与具体实现的绑定在 cmd 侧的注入器中声明。
var ProviderSet = wire.NewSet(
	NewChannelService,
	NewVideoService,
	NewReactionService,
	NewCommentService,
	NewSubscriptionService,
	NewLinkService,
	NewPlaylistService,
	NewSearchService,
	NewTrendingService,
)
