package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"SentimentScanner/internal/filter"
)

const (
	configPathEnv     = "SENTIMENT_SCANNER_CONFIG"
	newsAPIKeyEnv     = "NEWSAPI_KEY"
	hfTokenEnv        = "HF_API_TOKEN"
	hfModelURLEnv     = "HF_MODEL_URL"
	outputPathEnv     = "OUTPUT_PATH"
	logLevelEnv       = "LOG_LEVEL"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
	pushgatewayEnv    = "PUSHGATEWAY_URL"
)

// ErrMissingCredentials is returned by Validate before any network activity.
var ErrMissingCredentials = errors.New("missing required credentials")

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	NewsAPI       NewsAPIConfig      `yaml:"newsapi"`
	GoogleNews    GoogleNewsConfig   `yaml:"googleNews"`
	TopicFeeds    []TopicFeedConfig  `yaml:"topicFeeds"`
	Sources       SourcesConfig      `yaml:"sources"`
	Classifier    ClassifierConfig   `yaml:"classifier"`
	Output        OutputConfig       `yaml:"output"`
	Notifications NotificationConfig `yaml:"notifications"`
	Metrics       MetricsConfig      `yaml:"metrics"`
}

// LoggingConfig selects the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// NewsAPIConfig drives the keyword-search adapter.
type NewsAPIConfig struct {
	Endpoint   string        `yaml:"endpoint"`
	APIKey     string        `yaml:"apiKey"`
	Queries    []string      `yaml:"queries"`
	WindowDays int           `yaml:"windowDays"`
	PageSize   int           `yaml:"pageSize"`
	Language   string        `yaml:"language"`
	Timeout    time.Duration `yaml:"timeout"`
	Interval   time.Duration `yaml:"interval"`
}

// GoogleNewsConfig drives the encoded-title RSS adapter.
type GoogleNewsConfig struct {
	Endpoint      string        `yaml:"endpoint"`
	Queries       []string      `yaml:"queries"`
	MaxEntries    int           `yaml:"maxEntries"`
	DefaultSource string        `yaml:"defaultSource"`
	UserAgent     string        `yaml:"userAgent"`
	Timeout       time.Duration `yaml:"timeout"`
}

// TopicFeedConfig describes one single-outlet feed gated by keywords.
type TopicFeedConfig struct {
	Name     string        `yaml:"name"`
	URL      string        `yaml:"url"`
	Source   string        `yaml:"source"`
	Keywords []string      `yaml:"keywords"`
	Timeout  time.Duration `yaml:"timeout"`
}

// SourcesConfig holds adapter priority and the publisher allow-list.
type SourcesConfig struct {
	Priority       []string          `yaml:"priority"`
	Publishers     []PublisherConfig `yaml:"publishers"`
	RemovedMarkers []string          `yaml:"removedMarkers"`
}

// PublisherConfig is one allow-listed outlet with its naming variants.
type PublisherConfig struct {
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases"`
}

// ClassifierConfig describes the hosted sentiment model.
type ClassifierConfig struct {
	Endpoint          string        `yaml:"endpoint"`
	APIToken          string        `yaml:"apiToken"`
	Timeout           time.Duration `yaml:"timeout"`
	Concurrency       int           `yaml:"concurrency"`
	RequestsPerSecond float64       `yaml:"requestsPerSecond"`
}

// OutputConfig points at the report document.
type OutputConfig struct {
	Path string `yaml:"path"`
}

// NotificationConfig encapsulates outbound channels (Telegram, etc.).
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	APIURL   string `yaml:"apiUrl"`
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// MetricsConfig enables a Pushgateway push at the end of a run.
type MetricsConfig struct {
	PushgatewayURL string `yaml:"pushgatewayUrl"`
	Job            string `yaml:"job"`
}

// Load reads .env and YAML configuration (if present) and applies environment
// overrides. path takes precedence over SENTIMENT_SCANNER_CONFIG.
func Load(path string) Config {
	_ = godotenv.Load()

	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

// Validate fails fast on configuration the run cannot proceed without.
func (c Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.NewsAPI.APIKey) == "" {
		missing = append(missing, newsAPIKeyEnv)
	}
	if strings.TrimSpace(c.Classifier.APIToken) == "" {
		missing = append(missing, hfTokenEnv)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: set %s", ErrMissingCredentials, strings.Join(missing, " and "))
	}
	if c.Output.Path == "" {
		return errors.New("output path is empty")
	}
	return nil
}

// FilterPublishers converts the allow-list for the filter package.
func (s SourcesConfig) FilterPublishers() []filter.Publisher {
	out := make([]filter.Publisher, 0, len(s.Publishers))
	for _, p := range s.Publishers {
		out = append(out, filter.Publisher{Name: p.Name, Aliases: p.Aliases})
	}
	return out
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(newsAPIKeyEnv); v != "" {
		c.NewsAPI.APIKey = v
	}

	if v := os.Getenv(hfTokenEnv); v != "" {
		c.Classifier.APIToken = v
	}

	if v := os.Getenv(hfModelURLEnv); v != "" {
		c.Classifier.Endpoint = v
	}

	if v := os.Getenv(outputPathEnv); v != "" {
		c.Output.Path = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}

	if v := os.Getenv(pushgatewayEnv); v != "" {
		c.Metrics.PushgatewayURL = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.NewsAPI.Endpoint != "" {
		base.NewsAPI.Endpoint = override.NewsAPI.Endpoint
	}
	if override.NewsAPI.APIKey != "" {
		base.NewsAPI.APIKey = override.NewsAPI.APIKey
	}
	if len(override.NewsAPI.Queries) > 0 {
		base.NewsAPI.Queries = override.NewsAPI.Queries
	}
	if override.NewsAPI.WindowDays > 0 {
		base.NewsAPI.WindowDays = override.NewsAPI.WindowDays
	}
	if override.NewsAPI.PageSize > 0 {
		base.NewsAPI.PageSize = override.NewsAPI.PageSize
	}
	if override.NewsAPI.Language != "" {
		base.NewsAPI.Language = override.NewsAPI.Language
	}
	if override.NewsAPI.Timeout > 0 {
		base.NewsAPI.Timeout = override.NewsAPI.Timeout
	}
	if override.NewsAPI.Interval > 0 {
		base.NewsAPI.Interval = override.NewsAPI.Interval
	}

	if override.GoogleNews.Endpoint != "" {
		base.GoogleNews.Endpoint = override.GoogleNews.Endpoint
	}
	if len(override.GoogleNews.Queries) > 0 {
		base.GoogleNews.Queries = override.GoogleNews.Queries
	}
	if override.GoogleNews.MaxEntries > 0 {
		base.GoogleNews.MaxEntries = override.GoogleNews.MaxEntries
	}
	if override.GoogleNews.DefaultSource != "" {
		base.GoogleNews.DefaultSource = override.GoogleNews.DefaultSource
	}
	if override.GoogleNews.UserAgent != "" {
		base.GoogleNews.UserAgent = override.GoogleNews.UserAgent
	}
	if override.GoogleNews.Timeout > 0 {
		base.GoogleNews.Timeout = override.GoogleNews.Timeout
	}

	if len(override.TopicFeeds) > 0 {
		base.TopicFeeds = override.TopicFeeds
	}

	if len(override.Sources.Priority) > 0 {
		base.Sources.Priority = override.Sources.Priority
	}
	if len(override.Sources.Publishers) > 0 {
		base.Sources.Publishers = override.Sources.Publishers
	}
	if len(override.Sources.RemovedMarkers) > 0 {
		base.Sources.RemovedMarkers = override.Sources.RemovedMarkers
	}

	if override.Classifier.Endpoint != "" {
		base.Classifier.Endpoint = override.Classifier.Endpoint
	}
	if override.Classifier.APIToken != "" {
		base.Classifier.APIToken = override.Classifier.APIToken
	}
	if override.Classifier.Timeout > 0 {
		base.Classifier.Timeout = override.Classifier.Timeout
	}
	if override.Classifier.Concurrency > 0 {
		base.Classifier.Concurrency = override.Classifier.Concurrency
	}
	if override.Classifier.RequestsPerSecond > 0 {
		base.Classifier.RequestsPerSecond = override.Classifier.RequestsPerSecond
	}

	if override.Output.Path != "" {
		base.Output.Path = override.Output.Path
	}

	if override.Notifications.Telegram.APIURL != "" {
		base.Notifications.Telegram.APIURL = override.Notifications.Telegram.APIURL
	}
	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	if override.Metrics.PushgatewayURL != "" {
		base.Metrics.PushgatewayURL = override.Metrics.PushgatewayURL
	}
	if override.Metrics.Job != "" {
		base.Metrics.Job = override.Metrics.Job
	}

	return base
}

func defaultConfig() Config {
	publishers := make([]PublisherConfig, 0, len(filter.DefaultPublishers))
	for _, p := range filter.DefaultPublishers {
		publishers = append(publishers, PublisherConfig{Name: p.Name, Aliases: p.Aliases})
	}

	return Config{
		Logging: LoggingConfig{Level: "info"},
		NewsAPI: NewsAPIConfig{
			Endpoint: "https://newsapi.org/v2/everything",
			Queries: []string{
				"artificial intelligence",
				"machine learning",
				"ChatGPT",
				"OpenAI",
				"generative AI",
			},
			WindowDays: 7,
			PageSize:   100,
			Language:   "en",
			Timeout:    30 * time.Second,
			Interval:   time.Second,
		},
		GoogleNews: GoogleNewsConfig{
			Endpoint: "https://news.google.com/rss/search",
			Queries: []string{
				"artificial intelligence",
				"OpenAI ChatGPT",
				"machine learning",
				"generative AI",
			},
			MaxEntries:    50,
			DefaultSource: "Google News",
			UserAgent:     "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			Timeout:       15 * time.Second,
		},
		TopicFeeds: []TopicFeedConfig{
			{
				Name:     "bbc-technology",
				URL:      "http://feeds.bbci.co.uk/news/technology/rss.xml",
				Source:   "BBC News",
				Keywords: filter.DefaultKeywords,
				Timeout:  15 * time.Second,
			},
		},
		Sources: SourcesConfig{
			Priority:       []string{"newsapi", "googlenews", "bbc-technology"},
			Publishers:     publishers,
			RemovedMarkers: filter.DefaultRemovedMarkers,
		},
		Classifier: ClassifierConfig{
			Endpoint:          "https://router.huggingface.co/hf-inference/models/ProsusAI/finbert",
			Timeout:           30 * time.Second,
			Concurrency:       4,
			RequestsPerSecond: 5,
		},
		Output: OutputConfig{Path: "frontend/public/data.json"},
		Notifications: NotificationConfig{
			Telegram: TelegramConfig{APIURL: "https://api.telegram.org"},
		},
		Metrics: MetricsConfig{Job: "sentimentscanner"},
	}
}
