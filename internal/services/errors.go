// Package services 实现业务用例层：编排事务、校验不变量、把仓储结果转换为 VO。
package services

import "github.com/go-kratos/kratos/v2/errors"

// Service 层哨兵错误，携带 HTTP 语义，由 kratos 错误编码器落到响应。
var (
	ErrUnauthenticated  = errors.Unauthorized("UNAUTHENTICATED", "authentication required")
	ErrChannelRequired  = errors.Unauthorized("CHANNEL_REQUIRED", "an active channel is required")
	ErrChannelNotFound  = errors.NotFound("CHANNEL_NOT_FOUND", "channel not found")
	ErrChannelForbidden = errors.Unauthorized("CHANNEL_FORBIDDEN", "channel does not belong to the current user")

	ErrVideoNotFound   = errors.NotFound("VIDEO_NOT_FOUND", "video not found")
	ErrCommentNotFound = errors.NotFound("COMMENT_NOT_FOUND", "comment not found")
	ErrReplyDepth      = errors.BadRequest("REPLY_DEPTH_EXCEEDED", "replies can only be added to top-level comments")
	ErrReplyWrongVideo = errors.BadRequest("REPLY_WRONG_VIDEO", "parent comment belongs to a different video")

	ErrLinkNotFound          = errors.NotFound("LINK_NOT_FOUND", "link not found")
	ErrPlaylistNotFound      = errors.NotFound("PLAYLIST_NOT_FOUND", "playlist not found")
	ErrPlaylistVideoNotFound = errors.NotFound("PLAYLIST_VIDEO_NOT_FOUND", "video is not in the playlist")
	ErrVideoAlreadyInList    = errors.BadRequest("VIDEO_ALREADY_IN_PLAYLIST", "video is already in the playlist")

	ErrSamePosition     = errors.BadRequest("POSITION_UNCHANGED", "new position must not be the same as the current position")
	ErrPositionNotFound = errors.NotFound("POSITION_NOT_FOUND", "position does not exist")

	ErrSearchQueryRequired = errors.BadRequest("SEARCH_QUERY_REQUIRED", "search query must not be empty")
	ErrOwnChannel          = errors.BadRequest("OWN_CHANNEL_SUBSCRIPTION", "cannot subscribe to your own channel")
	ErrUploadUnavailable   = errors.BadRequest("UPLOAD_UNAVAILABLE", "media upload is temporarily unavailable, please retry later")
)
