// Package config loads application configuration and initializes the
// global logger.
package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
	Cache   CacheConfig   `yaml:"cache" mapstructure:"cache"`
	Limits  LimitsConfig  `yaml:"limits" mapstructure:"limits"`
	Hotlist HotlistConfig `yaml:"hotlist" mapstructure:"hotlist"`
	Reddit  RedditConfig  `yaml:"reddit" mapstructure:"reddit"`
	Twitter TwitterConfig `yaml:"twitter" mapstructure:"twitter"`
	SerpAPI SerpAPIConfig `yaml:"serpapi" mapstructure:"serpapi"`
}

// ServerConfig configures the HTTP shell.
type ServerConfig struct {
	Port           int     `yaml:"port" mapstructure:"port"`
	RequestsPerSec float64 `yaml:"requests_per_sec" mapstructure:"requests_per_sec"`
	Burst          int     `yaml:"burst" mapstructure:"burst"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// CacheConfig configures listing cache behavior.
type CacheConfig struct {
	TTLSecs int `yaml:"ttl_secs" mapstructure:"ttl_secs"`
}

// LimitsConfig bounds caller-supplied item counts. Enforced by the
// shell only; the core truncates but never rejects.
type LimitsConfig struct {
	DefaultLimit int `yaml:"default_limit" mapstructure:"default_limit"`
	MaxLimit     int `yaml:"max_limit" mapstructure:"max_limit"`
}

// HotlistConfig configures the fixed-endpoint hotlist API.
type HotlistConfig struct {
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// RedditConfig holds the OAuth client-credentials pair.
type RedditConfig struct {
	ClientID     string `yaml:"client_id" mapstructure:"client_id"`
	ClientSecret string `yaml:"client_secret" mapstructure:"client_secret"`
	UserAgent    string `yaml:"user_agent" mapstructure:"user_agent"`
}

// TwitterConfig holds the trend-proxy credential slots, in the same
// priority order the catalog walks them.
type TwitterConfig struct {
	APIIOToken  string `yaml:"apiio_token" mapstructure:"apiio_token"`
	ZylaKey     string `yaml:"zyla_key" mapstructure:"zyla_key"`
	RapidAPIKey string `yaml:"rapidapi_key" mapstructure:"rapidapi_key"`
}

// SerpAPIConfig holds the Google Trends proxy credentials.
type SerpAPIConfig struct {
	Key string `yaml:"key" mapstructure:"key"`
	Geo string `yaml:"geo" mapstructure:"geo"`
}

// HasReddit reports whether the OAuth pair is complete.
func (c *Config) HasReddit() bool {
	return c.Reddit.ClientID != "" && c.Reddit.ClientSecret != ""
}

// IntegrationStatus is one credential slot's configured flag, for the
// health surface.
type IntegrationStatus struct {
	Name       string `json:"name"`
	Configured bool   `json:"configured"`
}

// Integrations lists every credential slot with its configured flag.
func (c *Config) Integrations() []IntegrationStatus {
	return []IntegrationStatus{
		{Name: "reddit", Configured: c.HasReddit()},
		{Name: "twitterapiio", Configured: c.Twitter.APIIOToken != ""},
		{Name: "zyla", Configured: c.Twitter.ZylaKey != ""},
		{Name: "rapidapi", Configured: c.Twitter.RapidAPIKey != ""},
		{Name: "serpapi", Configured: c.SerpAPI.Key != ""},
	}
}

// Load reads configuration from .env, config file, and environment.
func Load() (*Config, error) {
	// Credentials commonly live in a .env next to the binary; missing
	// is fine, the process environment still applies.
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("TRENDLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The credential slots also honor their conventional unprefixed
	// environment names.
	_ = v.BindEnv("reddit.client_id", "TRENDLENS_REDDIT_CLIENT_ID", "REDDIT_CLIENT_ID")
	_ = v.BindEnv("reddit.client_secret", "TRENDLENS_REDDIT_CLIENT_SECRET", "REDDIT_CLIENT_SECRET")
	_ = v.BindEnv("reddit.user_agent", "TRENDLENS_REDDIT_USER_AGENT", "REDDIT_USER_AGENT")
	_ = v.BindEnv("twitter.apiio_token", "TRENDLENS_TWITTER_APIIO_TOKEN", "TWITTER_API_IO_TOKEN")
	_ = v.BindEnv("twitter.zyla_key", "TRENDLENS_TWITTER_ZYLA_KEY", "ZYLA_API_KEY")
	_ = v.BindEnv("twitter.rapidapi_key", "TRENDLENS_TWITTER_RAPIDAPI_KEY", "RAPIDAPI_KEY")
	_ = v.BindEnv("serpapi.key", "TRENDLENS_SERPAPI_KEY", "SERPAPI_KEY")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.requests_per_sec", 20.0)
	v.SetDefault("server.burst", 40)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("cache.ttl_secs", 3600)
	v.SetDefault("limits.default_limit", 20)
	v.SetDefault("limits.max_limit", 50)
	v.SetDefault("hotlist.base_url", "https://api.vvhan.com/api/hotlist")
	v.SetDefault("reddit.user_agent", "trendlens/1.0")
	v.SetDefault("serpapi.geo", "US")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
