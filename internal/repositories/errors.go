package repositories

import "errors"

// Repository 层哨兵错误。pgx.ErrNoRows 在本层被翻译成这些错误，
// Service 层再映射为带 HTTP 语义的 kratos errors。
var (
	ErrChannelNotFound       = errors.New("channel not found")
	ErrVideoNotFound         = errors.New("video not found")
	ErrCommentNotFound       = errors.New("comment not found")
	ErrLinkNotFound          = errors.New("link not found")
	ErrPlaylistNotFound      = errors.New("playlist not found")
	ErrPlaylistVideoNotFound = errors.New("playlist video not found")
	ErrReactionNotFound      = errors.New("reaction not found")
)
