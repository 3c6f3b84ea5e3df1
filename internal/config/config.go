package config

// AppConfig holds application-level settings.
type AppConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

// RedisConfig holds redis connection settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// OpenAIConfig enables the AI enrichment collaborator. With an empty
// api_key the pipeline runs without enrichment.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// FeedsConfig controls feed ingestion.
type FeedsConfig struct {
	SourcesFile  string `mapstructure:"sources_file"`  // yaml subscription list
	FetchTimeout string `mapstructure:"fetch_timeout"` // duration string, per source
	Retention    string `mapstructure:"retention"`     // how long fetched items are kept
}

// TrendingConfig controls ranking runs.
type TrendingConfig struct {
	Hours         int    `mapstructure:"hours"`           // trailing candidate window
	TopCount      int    `mapstructure:"top_count"`       // entries per list
	OutputDir     string `mapstructure:"output_dir"`      // snapshot store directory
	SummaryMaxLen int    `mapstructure:"summary_max_len"` // runes per AI summary
	EnrichDelay   string `mapstructure:"enrich_delay"`    // delay between AI calls
	Interval      string `mapstructure:"interval"`        // serve-mode regeneration interval
}

// ServerConfig holds the HTTP read API settings.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// Config is the top-level configuration structure.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Redis    RedisConfig    `mapstructure:"redis"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Feeds    FeedsConfig    `mapstructure:"feeds"`
	Trending TrendingConfig `mapstructure:"trending"`
	Server   ServerConfig   `mapstructure:"server"`
}

// FillDefaults applies default values if not provided.
func (c *Config) FillDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "127.0.0.1:6379"
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o-mini"
	}
	if c.Feeds.SourcesFile == "" {
		c.Feeds.SourcesFile = "feeds.yaml"
	}
	if c.Feeds.FetchTimeout == "" {
		c.Feeds.FetchTimeout = "20s"
	}
	if c.Feeds.Retention == "" {
		c.Feeds.Retention = "168h"
	}
	if c.Trending.Hours == 0 {
		c.Trending.Hours = 24
	}
	if c.Trending.TopCount == 0 {
		c.Trending.TopCount = 20
	}
	if c.Trending.OutputDir == "" {
		c.Trending.OutputDir = "./trending_output"
	}
	if c.Trending.SummaryMaxLen == 0 {
		c.Trending.SummaryMaxLen = 150
	}
	if c.Trending.EnrichDelay == "" {
		c.Trending.EnrichDelay = "500ms"
	}
	if c.Trending.Interval == "" {
		c.Trending.Interval = "1h"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
}
