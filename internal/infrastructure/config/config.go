package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config アプリ設定
type Config struct {
	App         AppConfig       `mapstructure:"app"`
	Server      ServerConfig    `mapstructure:"server"`
	OpenAI      OpenAIConfig    `mapstructure:"openai"`
	Shop        ShopConfig      `mapstructure:"shop"`
	Resolve     ResolveConfig   `mapstructure:"resolve"`
	Cache       CacheConfig     `mapstructure:"cache"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
	CORS        CORSConfig      `mapstructure:"cors"`
	DedupWindow time.Duration   `mapstructure:"dedup_window"`
	LogLevel    string          `mapstructure:"log_level"`
}

// AppConfig アプリケーション設定
type AppConfig struct {
	Env      string `mapstructure:"env"`
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	Version  string `mapstructure:"version"`
	Name     string `mapstructure:"name"`
}

// ServerConfig サーバ設定
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// OpenAIConfig 対話生成コラボレータ設定
type OpenAIConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Temperature float64       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// ShopConfig EC ショップ商品 API 設定
type ShopConfig struct {
	APIBase string        `mapstructure:"api_base"`
	Token   string        `mapstructure:"token"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ResolveConfig レコメンド解決カスケード設定
type ResolveConfig struct {
	TopSellingDays    int `mapstructure:"top_selling_days"`
	TopSellingLimit   int `mapstructure:"top_selling_limit"`
	CategoryListLimit int `mapstructure:"category_list_limit"`
	MaxPicks          int `mapstructure:"max_picks"`
	MaxTitles         int `mapstructure:"max_titles"`
}

// CacheConfig 商品スナップショットキャッシュ設定
type CacheConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	RedisAddr string        `mapstructure:"redis_addr"`
	TTL       time.Duration `mapstructure:"ttl"`
	SyncLimit int           `mapstructure:"sync_limit"`
}

// RateLimitConfig レート制限設定
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// CORSConfig 許可オリジン設定
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LoadConfig 設定を読み込む
func LoadConfig() (*Config, error) {
	// .env を読み込む（無くても環境変数だけで動かせる）
	_ = godotenv.Load()

	// デフォルト値設定
	setDefaults()

	// 環境変数プレフィックス設定
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 環境変数バインド
	viper.BindEnv("openai.api_key", "OPENAI_API_KEY")
	viper.BindEnv("openai.model", "OPENAI_MODEL")
	viper.BindEnv("shop.api_base", "SHOP_API_BASE")
	viper.BindEnv("shop.token", "SHOP_TOKEN")
	viper.BindEnv("cache.enabled", "CACHE_ENABLED")
	viper.BindEnv("cache.redis_addr", "REDIS_ADDR")
	viper.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	viper.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	viper.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	viper.BindEnv("cors.allowed_origins", "ALLOWED_ORIGINS")
	viper.BindEnv("dedup_window", "DEDUP_WINDOW")
	viper.BindEnv("log_level", "LOG_LEVEL")

	// 設定ファイル名とパス
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// 設定ファイル読み込み
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// logger 未初期化のため fmt.Println で出力
	fmt.Println("Loading configuration", "openai_api_key:", maskAPIKey(viper.GetString("openai.api_key")), "openai_model:", viper.GetString("openai.model"))

	// 設定を構造体へ展開
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 必須設定の検証
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// maskAPIKey API キーをマスクし前後 4 文字のみ表示する
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// setDefaults デフォルト値を設定する
func setDefaults() {
	// アプリケーション設定
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.name", "game-concierge")

	// サーバ設定
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	// OpenAI 設定
	viper.SetDefault("openai.model", "gpt-4.1-mini")
	viper.SetDefault("openai.max_tokens", 1000)
	viper.SetDefault("openai.temperature", 0.7)
	viper.SetDefault("openai.timeout", "60s")

	// ショップ API 設定
	viper.SetDefault("shop.api_base", "https://shop.jellyjellycafe.com/chatbot-api/products")
	viper.SetDefault("shop.timeout", "10s")

	// 解決カスケード設定
	viper.SetDefault("resolve.top_selling_days", 90)
	viper.SetDefault("resolve.top_selling_limit", 10)
	viper.SetDefault("resolve.category_list_limit", 200)
	viper.SetDefault("resolve.max_picks", 3)
	viper.SetDefault("resolve.max_titles", 3)

	// スナップショットキャッシュ設定
	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.redis_addr", "localhost:6379")
	viper.SetDefault("cache.ttl", "1h")
	viper.SetDefault("cache.sync_limit", 5000)

	// レート制限設定
	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests", 100)
	viper.SetDefault("rate_limit.window", "1m")

	// CORS 設定
	viper.SetDefault("cors.allowed_origins", []string{"https://shop.jellyjellycafe.com"})

	// 重複排除ウィンドウ
	viper.SetDefault("dedup_window", "1s")
}

// validateConfig 設定を検証する
func validateConfig(config *Config) error {
	// サーバ設定の検証
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	// ショップ API 設定の検証
	if config.Shop.APIBase == "" {
		return fmt.Errorf("shop api base is required")
	}

	// 解決カスケード設定の検証
	if config.Resolve.MaxPicks <= 0 {
		return fmt.Errorf("invalid resolve max picks")
	}
	if config.Resolve.MaxTitles <= 0 {
		return fmt.Errorf("invalid resolve max titles")
	}
	if config.Resolve.TopSellingDays <= 0 {
		return fmt.Errorf("invalid resolve top selling days")
	}

	// キャッシュ設定の検証
	if config.Cache.Enabled {
		if config.Cache.RedisAddr == "" {
			return fmt.Errorf("invalid cache redis addr")
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
		if config.Cache.SyncLimit <= 0 {
			return fmt.Errorf("invalid cache sync limit")
		}
	}

	return nil
}
