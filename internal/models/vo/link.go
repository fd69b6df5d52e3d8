package vo

import (
	"github.com/vidora/vidora-services-platform/internal/models/po"

	"github.com/google/uuid"
)

// LinkView 封装频道链接视图。
type LinkView struct {
	LinkID   uuid.UUID `json:"link_id"`
	Title    string    `json:"title"`
	URL      string    `json:"url"`
	Position int32     `json:"position"`
}

// NewLinkView 从实体构造链接 VO。
func NewLinkView(link *po.ChannelLink) *LinkView {
	if link == nil {
		return nil
	}
	return &LinkView{
		LinkID:   link.LinkID,
		Title:    link.Title,
		URL:      link.URL,
		Position: link.Position,
	}
}

// NewLinkViews 批量转换链接实体，保持 position 升序。
func NewLinkViews(links []po.ChannelLink) []*LinkView {
	out := make([]*LinkView, 0, len(links))
	for i := range links {
		out = append(out, NewLinkView(&links[i]))
	}
	return out
}
