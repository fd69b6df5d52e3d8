// Package loader 负责启动配置的装载：.env 文件、YAML 配置与环境变量覆盖。
package loader

import (
	"fmt"
	"net"
	"os"
	"path/filepath"

	"github.com/vidora/vidora-services-platform/internal/conf"
	"github.com/vidora/vidora-services-platform/internal/infrastructure/logger"

	txconfig "github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/file"
	"github.com/joho/godotenv"
)

const (
	envServiceName    = "SERVICE_NAME"
	envServiceVersion = "SERVICE_VERSION"
	envAppEnv         = "APP_ENV"
	envDatabaseURL    = "DATABASE_URL"
	envPort           = "PORT"
	envMediaBucket    = "MEDIA_BUCKET"
)

var envFileNames = []string{".env.local", ".env"}

// Params 包含构造配置 Bundle 所需的运行时输入参数。
type Params struct {
	ConfPath string // 配置文件路径（可为空，使用默认值）
}

// ServiceMetadata 保存服务标识信息，供日志组件使用。
type ServiceMetadata struct {
	Name        string
	Version     string
	Environment string
	InstanceID  string
}

// LoggerConfig 将服务元信息转换为 logger.Config。
func (m ServiceMetadata) LoggerConfig() logger.Config {
	return logger.Config{
		Service: m.Name,
		Version: m.Version,
		HostID:  m.InstanceID,
		Env:     m.Environment,
	}
}

// Bundle 聚合强类型的配置片段，供下游 Wire 注入使用。
type Bundle struct {
	Bootstrap *conf.Bootstrap
	Service   ServiceMetadata
	TxConfig  txconfig.Config
}

// BuildError 捕获配置构建过程中的上下文错误信息。
type BuildError struct {
	Stage string
	Path  string
	Err   error
}

// Error 实现 error 接口，提供包含上下文的错误信息。
func (e BuildError) Error() string {
	if e.Stage == "" {
		return e.Err.Error()
	}
	if e.Path != "" {
		return fmt.Sprintf("config %s at %q: %v", e.Stage, e.Path, e.Err)
	}
	return fmt.Sprintf("config %s: %v", e.Stage, e.Err)
}

// Unwrap 暴露底层错误，支持 errors.Is/As 链式查询。
func (e BuildError) Unwrap() error {
	return e.Err
}

// Build 从 bootstrap 配置文件构建 Bundle，包含配置对象和服务元信息。
func Build(params Params) (*Bundle, error) {
	confPath := ResolveConfPath(params.ConfPath)
	loadEnvFiles(confPath)

	bootstrap, err := loadBootstrap(confPath)
	if err != nil {
		return nil, err
	}

	return &Bundle{
		Bootstrap: bootstrap,
		Service:   buildServiceMetadata(),
		TxConfig:  txconfig.Config{},
	}, nil
}

// ResolveConfPath 应用回退规则确定要加载的配置目录/文件路径。
// 优先级：显式传入路径 > CONF_PATH 环境变量 > 默认路径。
func ResolveConfPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(envConfPath); env != "" {
		return env
	}
	return defaultConfPath
}

// loadBootstrap 使用 kratos config 加载 YAML 并扫描到 Bootstrap，
// 随后应用环境变量覆盖与缺省值校验。
func loadBootstrap(confPath string) (*conf.Bootstrap, error) {
	c := config.New(config.WithSource(file.NewSource(confPath)))
	if err := c.Load(); err != nil {
		return nil, BuildError{Stage: "load", Path: confPath, Err: err}
	}
	defer c.Close()

	var bc conf.Bootstrap
	if err := c.Scan(&bc); err != nil {
		return nil, BuildError{Stage: "scan", Path: confPath, Err: err}
	}
	applyEnvOverrides(&bc)

	if err := validate(&bc); err != nil {
		return nil, BuildError{Stage: "validate", Path: confPath, Err: err}
	}
	return &bc, nil
}

// validate 检查必填节点，缺失时尽早失败而不是等到首次请求。
func validate(bc *conf.Bootstrap) error {
	if bc.Server == nil || bc.Server.HTTP == nil || bc.Server.HTTP.Addr == "" {
		return fmt.Errorf("server.http.addr is required")
	}
	if bc.Data == nil || bc.Data.Postgres == nil || bc.Data.Postgres.DSN == "" {
		return fmt.Errorf("data.postgres.dsn is required (set DATABASE_URL)")
	}
	if bc.Media == nil || bc.Media.Bucket == "" {
		return fmt.Errorf("media.bucket is required (set MEDIA_BUCKET)")
	}
	return nil
}

// applyEnvOverrides 应用环境变量覆盖：敏感信息与部署差异走环境注入，
// 配置文件保持可提交的模板形态。
func applyEnvOverrides(bc *conf.Bootstrap) {
	if bc == nil {
		return
	}
	if dsn := os.Getenv(envDatabaseURL); dsn != "" {
		if bc.Data != nil && bc.Data.Postgres != nil {
			bc.Data.Postgres.DSN = dsn
		}
	}
	if port := os.Getenv(envPort); port != "" {
		if bc.Server != nil && bc.Server.HTTP != nil {
			bc.Server.HTTP.Addr = replacePort(bc.Server.HTTP.Addr, port)
		}
	}
	if bucket := os.Getenv(envMediaBucket); bucket != "" {
		if bc.Media != nil {
			bc.Media.Bucket = bucket
		}
	}
}

// replacePort 替换 host:port 形式地址的端口部分，保留 host。
func replacePort(addr, port string) string {
	if addr == "" {
		return ":" + port
	}
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return net.JoinHostPort(host, port)
}

// buildServiceMetadata 构建服务元信息，环境变量优先于默认值。
func buildServiceMetadata() ServiceMetadata {
	name := os.Getenv(envServiceName)
	if name == "" {
		name = defaultServiceName
	}
	version := os.Getenv(envServiceVersion)
	if version == "" {
		version = "dev"
	}
	env := os.Getenv(envAppEnv)
	if env == "" {
		env = defaultEnvironment
	}
	host, _ := os.Hostname()

	return ServiceMetadata{
		Name:        name,
		Version:     version,
		Environment: env,
		InstanceID:  host,
	}
}

// loadEnvFiles best-effort 加载配置相关的 .env 文件，失败时忽略以保持幂等。
func loadEnvFiles(confPath string) {
	files := envFileCandidates(confPath)
	if len(files) == 0 {
		return
	}
	_ = godotenv.Load(files...)
}

// envFileCandidates 按优先级返回存在的 .env 文件：
// confPath 目录下的 .env.local、.env，其次当前工作目录。
func envFileCandidates(confPath string) []string {
	dirs := orderedDirs(confPath)
	seen := make(map[string]struct{})
	var files []string
	for _, dir := range dirs {
		for _, name := range envFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err != nil {
				continue
			}
			if _, ok := seen[candidate]; ok {
				continue
			}
			files = append(files, candidate)
			seen[candidate] = struct{}{}
		}
	}
	return files
}

func orderedDirs(confPath string) []string {
	var dirs []string
	if confPath != "" {
		dir := confPath
		if info, err := os.Stat(confPath); err == nil && !info.IsDir() {
			dir = filepath.Dir(confPath)
		}
		dirs = append(dirs, filepath.Clean(dir))
	}
	if wd, err := os.Getwd(); err == nil {
		wd = filepath.Clean(wd)
		duplicate := false
		for _, existing := range dirs {
			if existing == wd {
				duplicate = true
				break
			}
		}
		if !duplicate {
			dirs = append(dirs, wd)
		}
	}
	return dirs
}
