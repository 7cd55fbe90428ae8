package config

import (
	"errors"
	"io/fs"
	"log"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
)

// AppConfig holds environment driven configuration values.
// Sensitive data should never have defaults inside code and must be provided via config files or the environment.
type AppConfig struct {
	AppPort string `mapstructure:"APP_PORT"`
	GinMode string `mapstructure:"GIN_MODE"`
	// Sessions
	JWTSecret       string `mapstructure:"JWT_SECRET"`
	SessionCookie   string `mapstructure:"SESSION_COOKIE"`
	SessionTTLHours int    `mapstructure:"SESSION_TTL_HOURS"`
	// Database
	DBDriver    string `mapstructure:"DB_DRIVER"`
	DatabaseURI string `mapstructure:"DATABASE_URI"`
	DBHost      string `mapstructure:"DB_HOST"`
	DBPort      string `mapstructure:"DB_PORT"`
	DBUser      string `mapstructure:"DB_USER"`
	DBPassword  string `mapstructure:"DB_PASSWORD"`
	DBName      string `mapstructure:"DB_NAME"`
	// Redis for the page cache
	RedisHost     string `mapstructure:"REDIS_HOST"`
	RedisPort     int    `mapstructure:"REDIS_PORT"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	// Cache backend: redis, memory or none
	CacheBackend      string `mapstructure:"CACHE_BACKEND"`
	IndexCacheSeconds int    `mapstructure:"INDEX_CACHE_SECONDS"`
	// Listing and display
	PostsPerPage    int `mapstructure:"POSTS_PER_PAGE"`
	PostTitleLength int `mapstructure:"POST_TITLE_LENGTH"`
	// Uploaded images
	MediaRoot   string `mapstructure:"MEDIA_ROOT"`
	MediaURL    string `mapstructure:"MEDIA_URL"`
	MaxUploadMB int    `mapstructure:"MAX_UPLOAD_MB"`
	// HTTP
	RateLimitPerMinute int      `mapstructure:"RATE_LIMIT_PER_MINUTE"`
	AllowedOrigins     []string `mapstructure:"ALLOWED_ORIGINS"`
	// Logging configuration
	LogLevel      string `mapstructure:"LOG_LEVEL"`
	LogPath       string `mapstructure:"LOG_PATH"`
	GinLogPath    string `mapstructure:"GIN_LOG_PATH"`
	LogMaxSizeMB  int    `mapstructure:"LOG_MAX_SIZE_MB"`
	LogMaxBackups int    `mapstructure:"LOG_MAX_BACKUPS"`
	LogMaxAgeDays int    `mapstructure:"LOG_MAX_AGE_DAYS"`
	LogCompress   bool   `mapstructure:"LOG_COMPRESS"`
}

// ErrMissingSecret is returned when no JWT secret was configured.
var ErrMissingSecret = errors.New("JWT_SECRET must be set in config or environment")

var (
	cfg    AppConfig
	loaded bool
	mu     sync.Mutex
)

// defaults applied for any key absent from both the config file and the environment.
var defaults = map[string]any{
	"APP_PORT":              "8080",
	"GIN_MODE":              "release",
	"JWT_SECRET":            "",
	"SESSION_COOKIE":        "yatube_session",
	"SESSION_TTL_HOURS":     72,
	"DB_DRIVER":             "sqlite",
	"DATABASE_URI":          "",
	"DB_HOST":               "127.0.0.1",
	"DB_PORT":               "3306",
	"DB_USER":               "root",
	"DB_PASSWORD":           "",
	"DB_NAME":               "yatube",
	"REDIS_HOST":            "127.0.0.1",
	"REDIS_PORT":            6379,
	"REDIS_DB":              0,
	"REDIS_PASSWORD":        "",
	"CACHE_BACKEND":         "memory",
	"INDEX_CACHE_SECONDS":   20,
	"POSTS_PER_PAGE":        10,
	"POST_TITLE_LENGTH":     15,
	"MEDIA_ROOT":            "media",
	"MEDIA_URL":             "/media",
	"MAX_UPLOAD_MB":         10,
	"RATE_LIMIT_PER_MINUTE": 60,
	"ALLOWED_ORIGINS":       []string{"*"},
	"LOG_LEVEL":             "info",
	"LOG_PATH":              "logs/yatube.log",
	"GIN_LOG_PATH":          "logs/gin.log",
	"LOG_MAX_SIZE_MB":       100,
	"LOG_MAX_BACKUPS":       3,
	"LOG_MAX_AGE_DAYS":      7,
	"LOG_COMPRESS":          false,
}

// Load loads the application configuration. It should be called once during boot.
func Load() AppConfig {
	mu.Lock()
	defer mu.Unlock()
	if loaded {
		return cfg
	}

	// Precedence: defaults -> config/config.json -> environment variable overrides
	c, err := LoadFrom(filepath.Join("config", "config.json"))
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if c.JWTSecret == "" {
		log.Fatal(ErrMissingSecret)
	}

	cfg = c
	loaded = true
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	mu.Lock()
	ok := loaded
	mu.Unlock()
	if !ok {
		return Load()
	}
	return cfg
}

// LoadFrom reads path (silently ignored when missing), applies defaults and environment overrides.
func LoadFrom(path string) (AppConfig, error) {
	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
		if err := v.BindEnv(key); err != nil {
			return AppConfig{}, err
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return AppConfig{}, err
			}
		}
	}

	var out AppConfig
	if err := v.Unmarshal(&out); err != nil {
		return AppConfig{}, err
	}
	normalize(&out)
	return out, nil
}

// normalize repairs values that would break pagination or caching.
func normalize(c *AppConfig) {
	if c.PostsPerPage <= 0 {
		c.PostsPerPage = 10
	}
	if c.PostTitleLength <= 0 {
		c.PostTitleLength = 15
	}
	if c.IndexCacheSeconds < 0 {
		c.IndexCacheSeconds = 0
	}
	if c.SessionTTLHours <= 0 {
		c.SessionTTLHours = 72
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
}
