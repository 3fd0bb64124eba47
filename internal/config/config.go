package config

import (
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/spf13/viper"
)

const (
	ServerModeDev  = "dev"
	ServerModeProd = "prod"
)

// Configuration holds the full service configuration. Defaults come from the
// struct tags; every field can be overridden through MOVIE_CATALOG_* env
// variables (e.g. MOVIE_CATALOG_SERVER_HTTP_PORT) or the CLI flags bound in
// cmd.
type Configuration struct {
	Server    Server `mapstructure:"server"`
	Store     Store  `mapstructure:"store"`
	Ingest    Ingest `mapstructure:"ingest"`
	LogLevel  string `mapstructure:"log_level" default:"info"`
	LogFormat string `mapstructure:"log_format" default:"console"`
}

type Server struct {
	// Mode is "dev" or "prod"; prod switches gin to release mode.
	Mode     string `mapstructure:"mode" default:"dev"`
	HTTPPort int    `mapstructure:"http_port" default:"6000"`
}

type Store struct {
	// Path is the DuckDB database file; ":memory:" keeps the catalog
	// ephemeral.
	Path string `mapstructure:"path" default:"movies.db"`
	// Timeout bounds every store call.
	Timeout time.Duration `mapstructure:"timeout" default:"5s"`
}

type Ingest struct {
	// File is the tabular source loaded once at startup (CSV or XLSX).
	// Empty skips ingestion.
	File string `mapstructure:"file" default:""`
	// Workers is the insert concurrency of the bulk load.
	Workers int `mapstructure:"workers" default:"4"`
}

var envKeys = []string{
	"server.mode",
	"server.http_port",
	"store.path",
	"store.timeout",
	"ingest.file",
	"ingest.workers",
	"log_level",
	"log_format",
}

// Load builds the configuration from defaults and environment.
func Load() (*Configuration, error) {
	cfg := &Configuration{}
	if err := defaults.Set(cfg); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix("MOVIE_CATALOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
