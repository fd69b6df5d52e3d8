package httpserver

import "github.com/google/wire"

// ProviderSet 暴露 HTTP 服务器构造器供 Wire 依赖注入使用。
var ProviderSet = wire.NewSet(NewHTTPServer)
