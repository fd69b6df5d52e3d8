//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package main

import (
	"context"

	"github.com/vidora/vidora-services-platform/internal/controllers"
	loader "github.com/vidora/vidora-services-platform/internal/infrastructure/config_loader"
	"github.com/vidora/vidora-services-platform/internal/infrastructure/database"
	"github.com/vidora/vidora-services-platform/internal/infrastructure/gcs"
	"github.com/vidora/vidora-services-platform/internal/infrastructure/httpserver"
	"github.com/vidora/vidora-services-platform/internal/infrastructure/logger"
	"github.com/vidora/vidora-services-platform/internal/repositories"
	"github.com/vidora/vidora-services-platform/internal/services"

	"github.com/go-kratos/kratos/v2"
	"github.com/google/wire"
)

//go:generate go run github.com/google/wire/cmd/wire

// wireApp init kratos application.
func wireApp(context.Context, loader.Params) (*kratos.App, func(), error) {
	panic(wire.Build(
		loader.ProviderSet,
		logger.ProviderSet,
		database.ProviderSet,
		gcs.ProviderSet,
		httpserver.ProviderSet,
		repositories.ProviderSet,
		services.ProviderSet,
		controllers.ProviderSet,
		wire.Bind(new(services.ChannelRepo), new(*repositories.ChannelRepository)),
		wire.Bind(new(services.VideoRepo), new(*repositories.VideoRepository)),
		wire.Bind(new(services.ViewLogRepo), new(*repositories.ViewLogRepository)),
		wire.Bind(new(services.ReactionRepo), new(*repositories.ReactionRepository)),
		wire.Bind(new(services.CommentRepo), new(*repositories.CommentRepository)),
		wire.Bind(new(services.SubscriptionRepo), new(*repositories.SubscriptionRepository)),
		wire.Bind(new(services.LinkRepo), new(*repositories.LinkRepository)),
		wire.Bind(new(services.PlaylistRepo), new(*repositories.PlaylistRepository)),
		wire.Bind(new(services.PlaylistVideoRepo), new(*repositories.PlaylistVideoRepository)),
		wire.Bind(new(services.RankingRepo), new(*repositories.RankingRepository)),
		wire.Bind(new(services.MediaSigner), new(*gcs.UploadSigner)),
		newApp,
	))
}
