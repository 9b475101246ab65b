// Package config resolves runtime settings for the taskflow binary.
//
// Priority: CLI flags > environment variables > .env file > defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// EnvPrefix is prepended to every environment key.
const EnvPrefix = "TASKFLOW_"

// Store backends.
const (
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

const (
	defaultStore       = StoreFile
	defaultTasksFile   = "tasks.yaml"
	defaultRedisAddr   = "localhost:6379"
	defaultRedisKey    = "taskflow:tasks"
	defaultSQLitePath  = "tasks.db"
	defaultOllamaURL   = "http://localhost:11434"
	defaultModel       = "gemma:2b"
	defaultTemperature = 0.2
)

// RedisConfig holds the Redis backend settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

// LLMConfig holds the breakdown service settings.
type LLMConfig struct {
	URL         string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// Config holds all runtime configuration options.
type Config struct {
	Store      string
	TasksFile  string
	SQLitePath string
	Redis      RedisConfig
	LLM        LLMConfig

	DateLanguages []string
	LogLevel      string
	Debug         bool
	MetricsAddr   string
	Plain         bool
	MaxInputSize  int
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Store:      defaultStore,
		TasksFile:  defaultTasksFile,
		SQLitePath: defaultSQLitePath,
		Redis: RedisConfig{
			Addr: defaultRedisAddr,
			Key:  defaultRedisKey,
		},
		LLM: LLMConfig{
			URL:         defaultOllamaURL,
			Model:       defaultModel,
			Temperature: defaultTemperature,
		},
		DateLanguages: []string{"ro", "en"},
	}
}

// Load builds a Config from defaults, the optional .env files and the
// environment. Missing .env files are ignored.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	def := Default()
	cfg := &Config{
		Store:      strings.ToLower(getEnvString("STORE", def.Store)),
		TasksFile:  getEnvString("TASKS_FILE", def.TasksFile),
		SQLitePath: getEnvString("SQLITE_PATH", def.SQLitePath),
		Redis: RedisConfig{
			Addr:     getEnvString("REDIS_ADDR", def.Redis.Addr),
			Password: getEnvString("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			Key:      getEnvString("REDIS_KEY", def.Redis.Key),
		},
		LLM: LLMConfig{
			URL:         getEnvString("OLLAMA_URL", def.LLM.URL),
			Model:       getEnvString("MODEL", def.LLM.Model),
			Temperature: getEnvFloat("TEMPERATURE", def.LLM.Temperature),
			Timeout:     getEnvDuration("LLM_TIMEOUT", 0),
		},
		DateLanguages: getEnvList("DATE_LANGUAGES", def.DateLanguages),
		LogLevel:      getEnvString("LOG_LEVEL", ""),
		MetricsAddr:   getEnvString("METRICS_ADDR", ""),
		Plain:         getEnvBool("PLAIN", false),
		MaxInputSize:  getEnvInt("MAX_INPUT_SIZE", 0),
	}
	return cfg, cfg.Validate()
}

// BindFlags registers the overriding CLI flags on fs.
// Flag defaults are the values already resolved from the environment, so
// unset flags leave them untouched.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.Store, "store", c.Store, "Task store backend (file, redis, sqlite)")
	fs.StringVar(&c.TasksFile, "file", c.TasksFile, "Path of the YAML task file")
	fs.StringVar(&c.SQLitePath, "sqlite-path", c.SQLitePath, "Path of the SQLite database")
	fs.StringVar(&c.Redis.Addr, "redis-addr", c.Redis.Addr, "Redis address")
	fs.StringVar(&c.Redis.Key, "redis-key", c.Redis.Key, "Redis key holding the task list")
	fs.StringVar(&c.LLM.URL, "ollama-url", c.LLM.URL, "Base URL of the Ollama server")
	fs.StringVar(&c.LLM.Model, "model", c.LLM.Model, "Model used for micro-step breakdowns")
	fs.DurationVar(&c.LLM.Timeout, "llm-timeout", c.LLM.Timeout, "Timeout of a breakdown request (0 = none)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level (debug, info, warn, error)")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "Enable debug logging")
	fs.StringVar(&c.MetricsAddr, "metrics-addr", c.MetricsAddr, "Serve Prometheus metrics on this address")
	fs.BoolVar(&c.Plain, "plain", c.Plain, "Disable markdown rendering and banner")
}

// EffectiveLogLevel returns the level name to log at, or "" for no logging.
func (c *Config) EffectiveLogLevel() string {
	if c.Debug {
		return "debug"
	}
	return c.LogLevel
}

// Validate reports settings that cannot be used.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreFile, StoreRedis, StoreSQLite, StoreMemory:
	default:
		return fmt.Errorf("unknown store %q (want file, redis or sqlite)", c.Store)
	}
	if c.MaxInputSize < 0 {
		return fmt.Errorf("max input size must not be negative, got %d", c.MaxInputSize)
	}
	return nil
}

func getEnvString(key, defaultVal string) string {
	if val, ok := os.LookupEnv(EnvPrefix + key); ok {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(EnvPrefix + key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val, ok := os.LookupEnv(EnvPrefix + key); ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val, ok := os.LookupEnv(EnvPrefix + key); ok {
		lower := strings.ToLower(strings.TrimSpace(val))
		return lower == "true" || lower == "1" || lower == "yes"
	}
	return defaultVal
}

// getEnvDuration accepts Go durations ("30s") and bare seconds ("30").
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val, ok := os.LookupEnv(EnvPrefix + key)
	if !ok {
		return defaultVal
	}
	val = strings.TrimSpace(val)
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	if secs, err := strconv.ParseFloat(val, 64); err == nil {
		return time.Duration(secs * float64(time.Second))
	}
	return defaultVal
}

func getEnvList(key string, defaultVal []string) []string {
	val, ok := os.LookupEnv(EnvPrefix + key)
	if !ok {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
