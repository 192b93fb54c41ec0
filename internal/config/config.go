package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Crawler CrawlerConfig `yaml:"crawler" mapstructure:"crawler"`
	AI      AIConfig      `yaml:"ai" mapstructure:"ai"`
	Scrape  ScrapeConfig  `yaml:"scrape" mapstructure:"scrape"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the run history database.
type StoreConfig struct {
	Driver      string     `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string     `yaml:"database_url" mapstructure:"database_url"`
	Pool        PoolConfig `yaml:"pool" mapstructure:"pool"`
}

// PoolConfig bounds the postgres connection pool. Ignored by sqlite.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// CrawlerConfig holds Crawl4AI service settings.
type CrawlerConfig struct {
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	APIToken    string `yaml:"api_token" mapstructure:"api_token"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	CacheMode   string `yaml:"cache_mode" mapstructure:"cache_mode"`
}

// AIConfig selects the LLM provider used for extraction and scoring.
type AIConfig struct {
	Provider    string  `yaml:"provider" mapstructure:"provider"`
	Model       string  `yaml:"model" mapstructure:"model"`
	APIKey      string  `yaml:"api_key" mapstructure:"api_key"`
	Temperature float64 `yaml:"temperature" mapstructure:"temperature"`
	MaxTokens   int     `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// ScrapeConfig configures the paged scrape loop.
type ScrapeConfig struct {
	Source           string   `yaml:"source" mapstructure:"source"`
	MaxPages         int      `yaml:"max_pages" mapstructure:"max_pages"`
	PageDelaySecs    int      `yaml:"page_delay_secs" mapstructure:"page_delay_secs"`
	SessionPrefix    string   `yaml:"session_prefix" mapstructure:"session_prefix"`
	NoResultsMarkers []string `yaml:"no_results_markers" mapstructure:"no_results_markers"`
	RequiredFields   []string `yaml:"required_fields" mapstructure:"required_fields"`
	SourcesFile      string   `yaml:"sources_file" mapstructure:"sources_file"`
}

// OutputConfig configures export files and terminal display.
type OutputConfig struct {
	CSVFile            string `yaml:"csv_file" mapstructure:"csv_file"`
	JSONFile           string `yaml:"json_file" mapstructure:"json_file"`
	XLSXFile           string `yaml:"xlsx_file" mapstructure:"xlsx_file"`
	JobDescriptionFile string `yaml:"job_description_file" mapstructure:"job_description_file"`
	TopDisplay         int    `yaml:"top_display" mapstructure:"top_display"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "scout.db")
	v.SetDefault("store.pool.max_conns", 4)
	v.SetDefault("store.pool.min_conns", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("crawler.base_url", "http://localhost:11235")
	v.SetDefault("crawler.api_token", "")
	v.SetDefault("crawler.timeout_secs", 90)
	v.SetDefault("crawler.cache_mode", "bypass")
	v.SetDefault("ai.provider", "groq")
	v.SetDefault("ai.model", "deepseek-r1-distill-llama-70b")
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.temperature", 0.3)
	v.SetDefault("ai.max_tokens", 2048)
	v.SetDefault("scrape.source", "github")
	v.SetDefault("scrape.max_pages", 3)
	v.SetDefault("scrape.page_delay_secs", 3)
	v.SetDefault("scrape.session_prefix", "cv-scrape")
	v.SetDefault("scrape.required_fields", []string{"personal_info", "contact_info"})
	v.SetDefault("scrape.sources_file", "")
	v.SetDefault("output.csv_file", "candidates_cv_data.csv")
	v.SetDefault("output.json_file", "candidates_cv_data.json")
	v.SetDefault("output.xlsx_file", "")
	v.SetDefault("output.job_description_file", "job_description.txt")
	v.SetDefault("output.top_display", 5)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	// GROQ_API_KEY is honored as a fallback for the default provider.
	if cfg.AI.APIKey == "" && (cfg.AI.Provider == "" || strings.HasPrefix(cfg.AI.Provider, "groq")) {
		cfg.AI.APIKey = os.Getenv("GROQ_API_KEY")
	}

	return &cfg, nil
}

// Validate checks the configuration before a scrape run starts.
func (c *Config) Validate() error {
	var problems []string

	switch c.Store.Driver {
	case "sqlite", "postgres":
	default:
		problems = append(problems, fmt.Sprintf("store.driver must be sqlite or postgres, got %q", c.Store.Driver))
	}
	if c.Store.DatabaseURL == "" {
		problems = append(problems, "store.database_url is required")
	}
	if c.Crawler.BaseURL == "" {
		problems = append(problems, "crawler.base_url is required")
	}
	if c.AI.APIKey == "" {
		problems = append(problems, "ai.api_key is required (set SCOUT_AI_API_KEY or GROQ_API_KEY)")
	}
	if c.Scrape.MaxPages < 1 || c.Scrape.MaxPages > 50 {
		problems = append(problems, "scrape.max_pages must be between 1 and 50")
	}
	if c.Scrape.PageDelaySecs < 0 {
		problems = append(problems, "scrape.page_delay_secs must be >= 0")
	}
	if c.AI.Temperature < 0 || c.AI.Temperature > 2 {
		problems = append(problems, "ai.temperature must be between 0 and 2")
	}
	if c.Output.TopDisplay < 0 {
		problems = append(problems, "output.top_display must be >= 0")
	}

	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
	}
	return nil
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
