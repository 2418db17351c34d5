package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	GRPC    GRPC    `yaml:"grpc"`
	Server  Server  `yaml:"server"`
	Logger  Logger  `yaml:"logger"`
	Banners Banners `yaml:"banners"`
	OTel    OTel    `yaml:"otel"`
}

type GRPC struct {
	Addr                 string        `env:"BANNERS_GRPC_ADDR"   env-default:":51234" yaml:"addr"`
	MaxConcurrentStreams uint32        `env-default:"100"          yaml:"maxConcurrentStreams"`
	NumStreamWorkers     uint32        `env-default:"10"           yaml:"numStreamWorkers"`
	ConnectionTimeout    time.Duration `env-default:"5s"           yaml:"connectionTimeout"`
}

// Server configures the HTTP gateway. An empty Addr disables it.
type Server struct {
	Addr         string        `env:"BANNERS_HTTP_ADDR" yaml:"addr"`
	ReadTimeout  time.Duration `env-default:"5s"         yaml:"readTimeout"`
	IdleTimeout  time.Duration `env-default:"30s"        yaml:"idleTimeout"`
	WriteTimeout time.Duration `env-default:"5s"         yaml:"writeTimeout"`
}

type Logger struct {
	Level     string   `env:"BANNERS_LOG_LEVEL" env-default:"info" yaml:"level"`
	Output    []string `yaml:"output"`
	ErrOutput []string `yaml:"errOutput"`
}

type Banners struct {
	ConfigDir  string `env:"BANNERS_CONFIG_DIR"  env-default:"resources/configs" yaml:"configDir"`
	ContentDir string `env:"BANNERS_CONTENT_DIR" env-default:"resources/content" yaml:"contentDir"`
}

type OTel struct {
	Enabled     bool   `env:"BANNERS_OTEL_ENABLED"  yaml:"enabled"`
	Endpoint    string `env:"BANNERS_OTEL_ENDPOINT" yaml:"endpoint"`
	ServiceName string `env-default:"banners"       yaml:"serviceName"`
}

func New(configPath string) (Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return Config{}, fmt.Errorf("read config error: %w", err)
	}

	return cfg, nil
}

// FromEnv builds a Config from defaults and environment variables only.
func FromEnv() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env error: %w", err)
	}

	return cfg, nil
}
