package configuration

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"media-gateway/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	App         App         `json:"app"`
	Extractor   Extractor   `json:"extractor"`
	Timeouts    Timeouts    `json:"timeouts"`
	Cache       Cache       `json:"cache"`
	RedisClient RedisClient `json:"redisClient"`
	Search      Search      `json:"search"`
}

type App struct {
	Port int `json:"port"`
}

// Extractor configures how the external extraction binary is invoked.
type Extractor struct {
	BinaryPath          string `json:"binaryPath"`
	CookieFile          string `json:"cookieFile"`
	TempDir             string `json:"tempDir"`
	Workers             int    `json:"workers"`
	ConcurrentFragments int    `json:"concurrentFragments"`
}

// Timeouts are per-route extraction deadlines in seconds; zero means wait
// indefinitely.
type Timeouts struct {
	Meta     int `json:"meta"`
	Full     int `json:"full"`
	Channel  int `json:"channel"`
	Playlist int `json:"playlist"`
	Social   int `json:"social"`
	Download int `json:"download"`
}

// Cache selects the response-cache backend: "memory" (default) or "redis".
type Cache struct {
	Backend string `json:"backend"`
}

type RedisClient struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Search configures the lightweight search provider.
type Search struct {
	Host       string `json:"host"`
	MaxResults int    `json:"maxResults"`
}

var C Config

func init() {
	LoadConfig()
	initApp(&C)
	initExtractor(&C)
	initTimeouts(&C)
	initCache(&C)
}

// LoadConfig reads config.json (or config-<ENV>.json) into C. A missing file
// is fine; every value has an env override or a default.
func LoadConfig() {
	name := getConfig()
	viper.SetConfigName(name)
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("../../")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().Warn("Config file not found")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

func initApp(C *Config) {
	// Port resolution order (env overrides config): APP_PORT -> PORT -> config -> default 8000
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	}
	if C.App.Port == 0 {
		C.App.Port = 8000
	}
}

func initExtractor(C *Config) {
	if v := os.Getenv("YTDLP_PATH"); v != "" {
		C.Extractor.BinaryPath = v
	}
	if C.Extractor.BinaryPath == "" {
		C.Extractor.BinaryPath = "yt-dlp"
	}
	if v := os.Getenv("YDLP_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			C.Extractor.Workers = n
		}
	}
	if C.Extractor.Workers == 0 {
		C.Extractor.Workers = 4
	}
	if v := os.Getenv("YT_CONCURRENT_FRAGMENTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			C.Extractor.ConcurrentFragments = n
		}
	}
	if C.Extractor.ConcurrentFragments == 0 {
		C.Extractor.ConcurrentFragments = 3
	}
	if v := os.Getenv("TMPDIR"); v != "" && C.Extractor.TempDir == "" {
		C.Extractor.TempDir = v
	}
	if C.Extractor.TempDir == "" {
		C.Extractor.TempDir = os.TempDir()
	}
	if v := os.Getenv("COOKIE_FILE"); v != "" {
		C.Extractor.CookieFile = v
	}
	if C.Extractor.CookieFile == "" {
		C.Extractor.CookieFile = filepath.Join(C.Extractor.TempDir, "cookies.txt")
	}
}

func initTimeouts(C *Config) {
	overrideSeconds := func(dst *int, envKey string, fallback int) {
		if v := os.Getenv(envKey); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n >= 0 {
				*dst = n
				return
			}
		}
		if *dst == 0 && fallback != 0 {
			*dst = fallback
		}
	}

	overrideSeconds(&C.Timeouts.Meta, "META_TIMEOUT", 6)
	overrideSeconds(&C.Timeouts.Full, "FULL_INFO_TIMEOUT", 30)
	overrideSeconds(&C.Timeouts.Channel, "CHANNEL_TIMEOUT", 20)
	overrideSeconds(&C.Timeouts.Playlist, "PLAYLIST_TIMEOUT", 60)
	overrideSeconds(&C.Timeouts.Social, "SOCIAL_TIMEOUT", 20)
	// Download keeps a zero default: full extraction may take as long as it needs.
	overrideSeconds(&C.Timeouts.Download, "DOWNLOAD_TIMEOUT", 0)
}

func initCache(C *Config) {
	if v := os.Getenv("CACHE_BACKEND"); v != "" {
		C.Cache.Backend = v
	}
	if C.Cache.Backend == "" {
		C.Cache.Backend = "memory"
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		C.RedisClient.Host = v
	}
	if v := os.Getenv("REDIS_PORT"); v != "" {
		C.RedisClient.Port = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		C.RedisClient.Password = v
	}
	if C.Search.Host == "" {
		C.Search.Host = "https://www.youtube.com"
	}
	if C.Search.MaxResults == 0 {
		C.Search.MaxResults = 1
	}
}
