// Package config loads QuizFlow settings from defaults, an optional config
// file, QUIZFLOW_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. QUIZFLOW_STORE_BACKEND.
const EnvPrefix = "QUIZFLOW"

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// Quiz source formats.
const (
	FormatFiles    = "files"
	FormatMarkdown = "markdown"
)

// Config holds application configuration.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	MCP     MCPConfig     `mapstructure:"mcp"`
	Quizzes QuizzesConfig `mapstructure:"quizzes"`
	Locale  LocaleConfig  `mapstructure:"locale"`
	Store   StoreConfig   `mapstructure:"store"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type HTTPConfig struct {
	Addr    string   `mapstructure:"addr"`
	Origins []string `mapstructure:"origins"`
}

type MCPConfig struct {
	Transport string `mapstructure:"transport"`
	Port      int    `mapstructure:"port"`
}

// QuizzesConfig locates the quiz decks.
type QuizzesConfig struct {
	Dir string `mapstructure:"dir"`
	// Format is "files" (YAML/JSON, one quiz per file) or "markdown" (loam vault).
	Format string `mapstructure:"format"`
}

// LocaleConfig selects the button label catalog.
type LocaleConfig struct {
	File string `mapstructure:"file"`
	Lang string `mapstructure:"lang"`
}

type StoreConfig struct {
	Backend string       `mapstructure:"backend"`
	File    FileConfig   `mapstructure:"file"`
	Redis   RedisConfig  `mapstructure:"redis"`
	SQLite  SQLiteConfig `mapstructure:"sqlite"`
}

type FileConfig struct {
	Dir string `mapstructure:"dir"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
	Prefix   string        `mapstructure:"prefix"`
	// Lock enables the distributed session lock, for several servers on one Redis.
	Lock bool `mapstructure:"lock"`
}

type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

// flagKeys maps command-line flags to config keys.
var flagKeys = map[string]string{
	"log-level":     "log.level",
	"addr":          "http.addr",
	"transport":     "mcp.transport",
	"port":          "mcp.port",
	"dir":           "quizzes.dir",
	"format":        "quizzes.format",
	"locale":        "locale.file",
	"lang":          "locale.lang",
	"store":         "store.backend",
	"store-dir":     "store.file.dir",
	"redis-addr":    "store.redis.addr",
	"sqlite-path":   "store.sqlite.path",
	"redis-ttl":     "store.redis.ttl",
	"redis-db":      "store.redis.db",
	"redis-lock":    "store.redis.lock",
	"allow-origins": "http.origins",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.origins", []string{"*"})
	v.SetDefault("mcp.transport", "stdio")
	v.SetDefault("mcp.port", 8081)
	v.SetDefault("quizzes.dir", ".")
	v.SetDefault("quizzes.format", FormatFiles)
	v.SetDefault("locale.file", "")
	v.SetDefault("locale.lang", "en")
	v.SetDefault("store.backend", BackendMemory)
	v.SetDefault("store.file.dir", ".quizflow/sessions")
	v.SetDefault("store.redis.addr", "localhost:6379")
	v.SetDefault("store.redis.password", "")
	v.SetDefault("store.redis.db", 0)
	v.SetDefault("store.redis.ttl", 24*time.Hour)
	v.SetDefault("store.redis.prefix", "quizflow:session:")
	v.SetDefault("store.redis.lock", false)
	v.SetDefault("store.sqlite.path", ".quizflow/sessions.db")
}

// Load reads configuration. path is an optional config file; when empty,
// QUIZFLOW_CONFIG is used, then quizflow.yaml in the working directory if present.
// flags may be nil.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("quizflow")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case BackendMemory, BackendFile, BackendRedis, BackendSQLite:
	default:
		return fmt.Errorf("unknown store backend %q (want memory, file, redis or sqlite)", c.Store.Backend)
	}
	switch c.Quizzes.Format {
	case FormatFiles, FormatMarkdown:
	default:
		return fmt.Errorf("unknown quizzes format %q (want files or markdown)", c.Quizzes.Format)
	}
	switch c.MCP.Transport {
	case "stdio", "sse":
	default:
		return fmt.Errorf("unknown mcp transport %q (want stdio or sse)", c.MCP.Transport)
	}
	return nil
}
