package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.yaml.in/yaml/v4"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// LLM providers.
const (
	ProviderOpenRouter = "openrouter"
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
)

// Search backends, see SearchBackend.
const (
	SearchNone      = ""
	SearchSerpAPI   = "serpapi"
	SearchGoogleCSE = "google_cse"
)

type Config struct {
	Host  string `yaml:"host"`
	Port  string `yaml:"port"`
	Debug bool   `yaml:"debug"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		File   string `yaml:"file"`
	} `yaml:"log"`

	LLM struct {
		Provider    string  `yaml:"provider"`
		APIKey      string  `yaml:"api_key"`
		APIURL      string  `yaml:"api_url"`
		Model       string  `yaml:"model"`
		Temperature float64 `yaml:"temperature"`
		MaxTokens   int     `yaml:"max_tokens"`
		AppTitle    string  `yaml:"app_title"`
		Referer     string  `yaml:"referer"`
	} `yaml:"llm"`

	Search struct {
		SerpAPIKey   string `yaml:"serp_api_key"`
		GoogleAPIKey string `yaml:"google_api_key"`
		GoogleCSEID  string `yaml:"google_cse_id"`
	} `yaml:"search"`

	// Время в секундах, как в переменных окружения.
	UserAgent        string `yaml:"user_agent"`
	RequestTimeout   int    `yaml:"request_timeout"`
	MaxIterations    int    `yaml:"max_iterations"`
	MaxExecutionTime int    `yaml:"max_execution_time"`
	RequestDeadline  int    `yaml:"request_deadline"`

	Jobs struct {
		ResultRetention int           `yaml:"result_retention"`
		ReapInterval    time.Duration `yaml:"reap_interval"`
		Workers         int           `yaml:"workers"`
		QueueSize       int           `yaml:"queue_size"`
		RedisURL        string        `yaml:"redis_url"`
	} `yaml:"jobs"`

	JWT struct {
		Secret     string `yaml:"secret"`
		Issuer     string `yaml:"issuer"`
		TTLMinutes int    `yaml:"ttl_minutes"`
	} `yaml:"jwt"`
}

// Load reads .env (if present), then the YAML file named by CONFIG_FILE (if set),
// then environment variables. Later sources win.
func Load() (Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	cfg := defaultConfig()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func defaultConfig() Config {
	var cfg Config
	cfg.Host = "0.0.0.0"
	cfg.Port = "8000"
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.LLM.Provider = ProviderOpenRouter
	cfg.LLM.Temperature = 0.7
	cfg.LLM.MaxTokens = 2000
	cfg.UserAgent = defaultUserAgent
	cfg.RequestTimeout = 10
	cfg.MaxIterations = 5
	cfg.MaxExecutionTime = 60
	cfg.RequestDeadline = 120
	cfg.Jobs.ResultRetention = 3600
	cfg.Jobs.ReapInterval = 5 * time.Minute
	cfg.Jobs.Workers = 4
	cfg.Jobs.QueueSize = 64
	cfg.JWT.Issuer = "icebreaker"
	cfg.JWT.TTLMinutes = 60
	return cfg
}

func applyEnv(cfg *Config) {
	cfg.Host = getEnv("HOST", cfg.Host)
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Debug = getEnvBool("DEBUG", cfg.Debug)

	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("LOG_FORMAT", cfg.Log.Format)
	cfg.Log.File = getEnv("LOG_FILE", cfg.Log.File)

	cfg.LLM.Provider = strings.ToLower(getEnv("LLM_PROVIDER", cfg.LLM.Provider))
	cfg.LLM.APIKey = getEnv("LLM_API_KEY", cfg.LLM.APIKey)
	cfg.LLM.APIURL = getEnv("LLM_API_URL", cfg.LLM.APIURL)
	cfg.LLM.Model = getEnv("LLM_MODEL", cfg.LLM.Model)
	cfg.LLM.Temperature = getEnvFloat("LLM_TEMPERATURE", cfg.LLM.Temperature)
	cfg.LLM.MaxTokens = getEnvInt("LLM_MAX_TOKENS", cfg.LLM.MaxTokens)
	cfg.LLM.AppTitle = getEnv("LLM_APP_TITLE", cfg.LLM.AppTitle)
	cfg.LLM.Referer = getEnv("LLM_REFERER", cfg.LLM.Referer)

	cfg.Search.SerpAPIKey = getEnv("SERP_API_KEY", cfg.Search.SerpAPIKey)
	cfg.Search.GoogleAPIKey = getEnv("GOOGLE_API_KEY", cfg.Search.GoogleAPIKey)
	cfg.Search.GoogleCSEID = getEnv("GOOGLE_CSE_ID", cfg.Search.GoogleCSEID)

	cfg.UserAgent = getEnv("USER_AGENT", cfg.UserAgent)
	cfg.RequestTimeout = getEnvInt("REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.MaxIterations = getEnvInt("MAX_ITERATIONS", cfg.MaxIterations)
	cfg.MaxExecutionTime = getEnvInt("MAX_EXECUTION_TIME", cfg.MaxExecutionTime)
	cfg.RequestDeadline = getEnvInt("REQUEST_DEADLINE", cfg.RequestDeadline)

	cfg.Jobs.ResultRetention = getEnvInt("RESULT_RETENTION", cfg.Jobs.ResultRetention)
	cfg.Jobs.ReapInterval = getEnvDuration("REAP_INTERVAL", cfg.Jobs.ReapInterval)
	cfg.Jobs.Workers = getEnvInt("ASYNC_WORKERS", cfg.Jobs.Workers)
	cfg.Jobs.QueueSize = getEnvInt("ASYNC_QUEUE_SIZE", cfg.Jobs.QueueSize)
	cfg.Jobs.RedisURL = getEnv("REDIS_URL", cfg.Jobs.RedisURL)

	cfg.JWT.Secret = getEnv("JWT_SECRET", cfg.JWT.Secret)
	cfg.JWT.Issuer = getEnv("JWT_ISSUER", cfg.JWT.Issuer)
	cfg.JWT.TTLMinutes = getEnvInt("JWT_TTL_MINUTES", cfg.JWT.TTLMinutes)
}

func (c Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderOpenRouter, ProviderOpenAI, ProviderAnthropic:
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LLM.Provider)
	}
	for _, v := range []struct {
		key string
		n   int
	}{
		{"REQUEST_TIMEOUT", c.RequestTimeout},
		{"MAX_ITERATIONS", c.MaxIterations},
		{"MAX_EXECUTION_TIME", c.MaxExecutionTime},
		{"REQUEST_DEADLINE", c.RequestDeadline},
		{"RESULT_RETENTION", c.Jobs.ResultRetention},
		{"ASYNC_WORKERS", c.Jobs.Workers},
		{"ASYNC_QUEUE_SIZE", c.Jobs.QueueSize},
		{"LLM_MAX_TOKENS", c.LLM.MaxTokens},
	} {
		if v.n <= 0 {
			return fmt.Errorf("%s must be > 0", v.key)
		}
	}
	if c.Jobs.ReapInterval <= 0 {
		return errors.New("REAP_INTERVAL must be > 0")
	}
	if c.Search.SerpAPIKey == "" && c.Search.GoogleAPIKey != "" && c.Search.GoogleCSEID == "" {
		return errors.New("GOOGLE_API_KEY is set but GOOGLE_CSE_ID is empty")
	}
	if c.JWT.Secret != "" && c.JWT.TTLMinutes <= 0 {
		return errors.New("JWT_TTL_MINUTES must be > 0")
	}
	return nil
}

// SearchBackend picks serpapi when its key is set, google_cse when both Google
// keys are set, otherwise none.
func (c Config) SearchBackend() string {
	switch {
	case c.Search.SerpAPIKey != "":
		return SearchSerpAPI
	case c.Search.GoogleAPIKey != "" && c.Search.GoogleCSEID != "":
		return SearchGoogleCSE
	default:
		return SearchNone
	}
}

func (c Config) Addr() string { return c.Host + ":" + c.Port }

// Seconds converts a seconds setting to a duration.
func Seconds(n int) time.Duration { return time.Duration(n) * time.Second }

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

// getEnvDuration accepts "5m"-style values and bare seconds.
func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return def
}
