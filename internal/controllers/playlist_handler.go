package controllers

import (
	"github.com/vidora/vidora-services-platform/internal/controllers/dto"
	"github.com/vidora/vidora-services-platform/internal/services"
	"github.com/vidora/vidora-services-platform/internal/views"

	"github.com/go-kratos/kratos/v2/errors"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
)

// PlaylistHandler 处理播放列表相关的 HTTP 请求。
type PlaylistHandler struct {
	base *BaseHandler
	svc  *services.PlaylistService
}

// NewPlaylistHandler 构造播放列表 Handler。
func NewPlaylistHandler(base *BaseHandler, svc *services.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{base: base, svc: svc}
}

// Register 挂载播放列表路由。
func (h *PlaylistHandler) Register(r *khttp.Router) {
	r.POST("/playlists", h.CreatePlaylist)
	r.GET("/playlists/{playlist_id}", h.GetPlaylist)
	r.PATCH("/playlists/{playlist_id}", h.UpdatePlaylist)
	r.DELETE("/playlists/{playlist_id}", h.DeletePlaylist)
	r.GET("/channels/{channel_id}/playlists", h.ListPlaylists)
	r.POST("/playlists/{playlist_id}/videos", h.AddVideo)
	r.DELETE("/playlists/{playlist_id}/videos/{video_id}", h.RemoveVideo)
	r.PUT("/playlists/{playlist_id}/videos/{video_id}/position", h.RepositionVideo)
	r.PUT("/playlists/{playlist_id}/thumbnail", h.PinThumbnail)
	r.DELETE("/playlists/{playlist_id}/thumbnail", h.UnpinThumbnail)
}

// CreatePlaylist 处理 POST /playlists。
func (h *PlaylistHandler) CreatePlaylist(ctx khttp.Context) error {
	var req dto.CreatePlaylistRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.BadRequest("REQUEST_BODY_INVALID", err.Error())
	}
	input, err := req.ToCreatePlaylistInput()
	if err != nil {
		return errors.BadRequest("PLAYLIST_INPUT_INVALID", err.Error())
	}

	reqCtx, cancel := h.base.RequestContext(ctx, HandlerTypeCommand)
	defer cancel()

	playlist, err := h.svc.CreatePlaylist(reqCtx, input)
	if err != nil {
		return err
	}
	return ctx.Result(201, views.OK(playlist))
}

// GetPlaylist 处理 GET /playlists/{playlist_id}。
func (h *PlaylistHandler) GetPlaylist(ctx khttp.Context) error {
	playlistID, err := pathUUID(ctx, "playlist_id")
	if err != nil {
		return err
	}

	reqCtx, cancel := h.base.RequestContext(ctx, HandlerTypeQuery)
	defer cancel()

	playlist, err := h.svc.GetPlaylist(reqCtx, playlistID)
	if err != nil {
		return err
	}
	return ctx.Result(200, views.OK(playlist))
}

// UpdatePlaylist 处理 PATCH /playlists/{playlist_id}。
func (h *PlaylistHandler) UpdatePlaylist(ctx khttp.Context) error {
	playlistID, err := pathUUID(ctx, "playlist_id")
	if err != nil {
		return err
	}
	var req dto.UpdatePlaylistRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.BadRequest("REQUEST_BODY_INVALID", err.Error())
	}
	input, err := req.ToUpdatePlaylistInput(playlistID)
	if err != nil {
		return errors.BadRequest("PLAYLIST_INPUT_INVALID", err.Error())
	}

	reqCtx, cancel := h.base.RequestContext(ctx, HandlerTypeCommand)
	defer cancel()

	playlist, err := h.svc.UpdatePlaylist(reqCtx, input)
	if err != nil {
		return err
	}
	return ctx.Result(200, views.OK(playlist))
}

// DeletePlaylist 处理 DELETE /playlists/{playlist_id}。
func (h *PlaylistHandler) DeletePlaylist(ctx khttp.Context) error {
	playlistID, err := pathUUID(ctx, "playlist_id")
	if err != nil {
		return err
	}

	reqCtx, cancel := h.base.RequestContext(ctx, HandlerTypeCommand)
	defer cancel()

	if err := h.svc.DeletePlaylist(reqCtx, playlistID); err != nil {
		return err
	}
	return ctx.Result(200, views.Deleted())
}

// ListPlaylists 处理 GET /channels/{channel_id}/playlists。
func (h *PlaylistHandler) ListPlaylists(ctx khttp.Context) error {
	channelID, err := pathUUID(ctx, "channel_id")
	if err != nil {
		return err
	}

	reqCtx, cancel := h.base.RequestContext(ctx, HandlerTypeQuery)
	defer cancel()

	playlists, err := h.svc.ListPlaylists(reqCtx, channelID)
	if err != nil {
		return err
	}
	return ctx.Result(200, views.OK(playlists))
}

// AddVideo 处理 POST /playlists/{playlist_id}/videos：视频追加到尾部。
func (h *PlaylistHandler) AddVideo(ctx khttp.Context) error {
	playlistID, err := pathUUID(ctx, "playlist_id")
	if err != nil {
		return err
	}
	var req dto.AddPlaylistVideoRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.BadRequest("REQUEST_BODY_INVALID", err.Error())
	}
	videoID, err := req.ParsedVideoID()
	if err != nil {
		return errors.BadRequest("PLAYLIST_INPUT_INVALID", err.Error())
	}

	reqCtx, cancel := h.base.RequestContext(ctx, HandlerTypeCommand)
	defer cancel()

	playlist, err := h.svc.AddVideo(reqCtx, playlistID, videoID)
	if err != nil {
		return err
	}
	return ctx.Result(200, views.OK(playlist))
}

// RemoveVideo 处理 DELETE /playlists/{playlist_id}/videos/{video_id}。
func (h *PlaylistHandler) RemoveVideo(ctx khttp.Context) error {
	playlistID, err := pathUUID(ctx, "playlist_id")
	if err != nil {
		return err
	}
	videoID, err := pathUUID(ctx, "video_id")
	if err != nil {
		return err
	}

	reqCtx, cancel := h.base.RequestContext(ctx, HandlerTypeCommand)
	defer cancel()

	playlist, err := h.svc.RemoveVideo(reqCtx, playlistID, videoID)
	if err != nil {
		return err
	}
	return ctx.Result(200, views.OK(playlist))
}

// RepositionVideo 处理 PUT /playlists/{playlist_id}/videos/{video_id}/position。
func (h *PlaylistHandler) RepositionVideo(ctx khttp.Context) error {
	playlistID, err := pathUUID(ctx, "playlist_id")
	if err != nil {
		return err
	}
	videoID, err := pathUUID(ctx, "video_id")
	if err != nil {
		return err
	}
	var req dto.RepositionRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.BadRequest("REQUEST_BODY_INVALID", err.Error())
	}

	reqCtx, cancel := h.base.RequestContext(ctx, HandlerTypeCommand)
	defer cancel()

	playlist, err := h.svc.RepositionVideo(reqCtx, playlistID, videoID, req.Position)
	if err != nil {
		return err
	}
	return ctx.Result(200, views.OK(playlist))
}

// PinThumbnail 处理 PUT /playlists/{playlist_id}/thumbnail：显式固定封面。
func (h *PlaylistHandler) PinThumbnail(ctx khttp.Context) error {
	playlistID, err := pathUUID(ctx, "playlist_id")
	if err != nil {
		return err
	}
	var req dto.PinThumbnailRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.BadRequest("REQUEST_BODY_INVALID", err.Error())
	}
	videoID, err := req.ParsedVideoID()
	if err != nil {
		return errors.BadRequest("PLAYLIST_INPUT_INVALID", err.Error())
	}

	reqCtx, cancel := h.base.RequestContext(ctx, HandlerTypeCommand)
	defer cancel()

	playlist, err := h.svc.PinThumbnail(reqCtx, playlistID, videoID)
	if err != nil {
		return err
	}
	return ctx.Result(200, views.OK(playlist))
}

// UnpinThumbnail 处理 DELETE /playlists/{playlist_id}/thumbnail：恢复自动跟随。
func (h *PlaylistHandler) UnpinThumbnail(ctx khttp.Context) error {
	playlistID, err := pathUUID(ctx, "playlist_id")
	if err != nil {
		return err
	}

	reqCtx, cancel := h.base.RequestContext(ctx, HandlerTypeCommand)
	defer cancel()

	playlist, err := h.svc.UnpinThumbnail(reqCtx, playlistID)
	if err != nil {
		return err
	}
	return ctx.Result(200, views.OK(playlist))
}
