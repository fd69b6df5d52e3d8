package loader

import (
	"time"

	"github.com/vidora/vidora-services-platform/internal/conf"
	"github.com/vidora/vidora-services-platform/internal/controllers"
	"github.com/vidora/vidora-services-platform/internal/infrastructure/logger"

	txconfig "github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/google/wire"
)

// ProviderSet exposes configuration-derived dependencies for Wire graphs.
var ProviderSet = wire.NewSet(
	ProvideBundle,
	ProvideServiceMetadata,
	ProvideBootstrap,
	ProvideServerConfig,
	ProvideDataConfig,
	ProvideMediaConfig,
	ProvideTrendingConfig,
	ProvideUploadTTL,
	ProvideLoggerConfig,
	ProvideTxConfig,
	ProvideHandlerTimeouts,
)

// ProvideBundle builds the configuration bundle from runtime params.
func ProvideBundle(params Params) (*Bundle, error) {
	return Build(params)
}

// ProvideServiceMetadata returns the resolved ServiceMetadata from the bundle.
func ProvideServiceMetadata(b *Bundle) ServiceMetadata {
	if b == nil {
		return ServiceMetadata{}
	}
	return b.Service
}

// ProvideBootstrap exposes the strongly typed bootstrap configuration.
func ProvideBootstrap(b *Bundle) *conf.Bootstrap {
	if b == nil {
		return nil
	}
	return b.Bootstrap
}

// ProvideServerConfig returns the server section of the bootstrap configuration.
func ProvideServerConfig(bc *conf.Bootstrap) *conf.Server {
	if bc == nil {
		return nil
	}
	return bc.Server
}

// ProvideDataConfig returns the data section of the bootstrap configuration.
func ProvideDataConfig(bc *conf.Bootstrap) *conf.Data {
	if bc == nil {
		return nil
	}
	return bc.Data
}

// ProvideMediaConfig returns the media section of the bootstrap configuration.
func ProvideMediaConfig(bc *conf.Bootstrap) *conf.Media {
	if bc == nil {
		return nil
	}
	return bc.Media
}

// ProvideTrendingConfig returns the trending section of the bootstrap configuration.
func ProvideTrendingConfig(bc *conf.Bootstrap) *conf.Trending {
	if bc == nil {
		return nil
	}
	return bc.Trending
}

// ProvideUploadTTL returns the signed upload URL lifetime.
func ProvideUploadTTL(media *conf.Media) time.Duration {
	return media.UploadTTL()
}

// ProvideLoggerConfig derives logger configuration from service metadata.
func ProvideLoggerConfig(meta ServiceMetadata) logger.Config {
	return meta.LoggerConfig()
}

// ProvideTxConfig exposes the transaction manager configuration.
func ProvideTxConfig(b *Bundle) txconfig.Config {
	if b == nil {
		return txconfig.Config{}
	}
	return b.TxConfig
}

// ProvideHandlerTimeouts derives handler timeout policy from the HTTP server timeout.
func ProvideHandlerTimeouts(server *conf.Server) controllers.HandlerTimeouts {
	if server == nil || server.HTTP == nil {
		return controllers.HandlerTimeouts{}
	}
	timeout := server.HTTP.Timeout()
	return controllers.HandlerTimeouts{
		Default: timeout,
		Command: timeout,
		Query:   timeout / 2,
	}
}
