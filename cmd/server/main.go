// Package main 为平台 HTTP 服务提供进程入口。
package main

import (
	"context"
	"flag"
	"os"

	loader "github.com/vidora/vidora-services-platform/internal/infrastructure/config_loader"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"

	_ "go.uber.org/automaxprocs"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	// Name is the name of the compiled software.
	Name string
	// Version is the version of the compiled software.
	Version string

	id, _ = os.Hostname()
)

func newApp(logger log.Logger, hs *http.Server) *kratos.App {
	return kratos.New(
		kratos.ID(id),
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Metadata(map[string]string{}),
		kratos.Logger(logger),
		kratos.Server(
			hs,
		),
	)
}

func main() {
	ctx := context.Background()

	confFlag := flag.String("conf", "", "config path or directory, eg: -conf configs/config.yaml")
	flag.Parse()

	if Name != "" {
		os.Setenv("SERVICE_NAME", Name)
	}
	if Version != "" {
		os.Setenv("SERVICE_VERSION", Version)
	}

	params := loader.Params{ConfPath: *confFlag}
	app, cleanup, err := wireApp(ctx, params)
	if err != nil {
		panic(err)
	}
	defer cleanup()

	// start and wait for stop signal
	if err := app.Run(); err != nil {
		panic(err)
	}
}
