package controllers

import (
	khttp "github.com/go-kratos/kratos/v2/transport/http"
)

// Registrar 表示可以把路由挂载到 Router 的 Handler。
type Registrar interface {
	Register(r *khttp.Router)
}

// Router 聚合全部 Handler，统一挂载到 /v1 前缀下。
type Router struct {
	handlers []Registrar
}

// NewRouter 收集全部 Handler。
func NewRouter(
	channels *ChannelHandler,
	videos *VideoHandler,
	comments *CommentHandler,
	reactions *ReactionHandler,
	subscriptions *SubscriptionHandler,
	links *LinkHandler,
	playlists *PlaylistHandler,
	discovery *DiscoveryHandler,
) *Router {
	return &Router{handlers: []Registrar{
		channels, videos, comments, reactions,
		subscriptions, links, playlists, discovery,
	}}
}

// Register 把全部路由挂载到 HTTP Server。
func (r *Router) Register(srv *khttp.Server) {
	root := srv.Route("/v1")
	for _, h := range r.handlers {
		h.Register(root)
	}
}
