package vo

import (
	"time"

	"github.com/vidora/vidora-services-platform/internal/models/po"

	"github.com/google/uuid"
)

// ChannelDetail 封装频道视图，含订阅数等聚合统计。
type ChannelDetail struct {
	ChannelID       uuid.UUID `json:"channel_id"`
	Name            string    `json:"name"`
	Handle          string    `json:"handle"`
	Description     *string   `json:"description"`
	AvatarURL       *string   `json:"avatar_url"`
	SubscriberCount int64     `json:"subscriber_count"`
	VideoCount      int64     `json:"video_count"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewChannelDetail 从实体与统计构造频道 VO。
func NewChannelDetail(channel *po.Channel, stats *po.ChannelStats) *ChannelDetail {
	if channel == nil {
		return nil
	}
	detail := &ChannelDetail{
		ChannelID:   channel.ChannelID,
		Name:        channel.Name,
		Handle:      channel.Handle,
		Description: channel.Description,
		AvatarURL:   channel.AvatarURL,
		CreatedAt:   channel.CreatedAt,
	}
	if stats != nil {
		detail.SubscriberCount = stats.SubscriberCount
		detail.VideoCount = stats.VideoCount
	}
	return detail
}

// SubscriptionToggled 表示订阅 toggle 的结果。
type SubscriptionToggled struct {
	ChannelID  uuid.UUID `json:"channel_id"`
	Subscribed bool      `json:"subscribed"`
}
