package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestSetDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	setDefaults()

	t.Run("サーバとモデルの既定値", func(t *testing.T) {
		assert.Equal(t, 8080, viper.GetInt("server.port"))
		assert.Equal(t, "gpt-4.1-mini", viper.GetString("openai.model"))
		assert.InDelta(t, 0.7, viper.GetFloat64("openai.temperature"), 0.001)
	})

	t.Run("解決カスケードの既定値", func(t *testing.T) {
		assert.Equal(t, 90, viper.GetInt("resolve.top_selling_days"))
		assert.Equal(t, 10, viper.GetInt("resolve.top_selling_limit"))
		assert.Equal(t, 200, viper.GetInt("resolve.category_list_limit"))
		assert.Equal(t, 3, viper.GetInt("resolve.max_picks"))
		assert.Equal(t, 3, viper.GetInt("resolve.max_titles"))
	})

	t.Run("キャッシュの既定値", func(t *testing.T) {
		assert.Equal(t, time.Hour, viper.GetDuration("cache.ttl"))
		assert.Equal(t, 5000, viper.GetInt("cache.sync_limit"))
	})
}

func validTestConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080},
		Shop: ShopConfig{
			APIBase: "https://shop.example.com/chatbot-api/products",
			Timeout: 10 * time.Second,
		},
		Resolve: ResolveConfig{
			TopSellingDays:    90,
			TopSellingLimit:   10,
			CategoryListLimit: 200,
			MaxPicks:          3,
			MaxTitles:         3,
		},
		Cache: CacheConfig{
			Enabled:   true,
			RedisAddr: "localhost:6379",
			TTL:       time.Hour,
			SyncLimit: 5000,
		},
	}
}

func TestValidateConfig(t *testing.T) {
	t.Run("妥当な設定は通る", func(t *testing.T) {
		assert.NoError(t, validateConfig(validTestConfig()))
	})

	t.Run("ポート未設定はエラー", func(t *testing.T) {
		cfg := validTestConfig()
		cfg.Server.Port = 0
		assert.Error(t, validateConfig(cfg))
	})

	t.Run("ショップ API ベース URL 未設定はエラー", func(t *testing.T) {
		cfg := validTestConfig()
		cfg.Shop.APIBase = ""
		assert.Error(t, validateConfig(cfg))
	})

	t.Run("抽選件数ゼロはエラー", func(t *testing.T) {
		cfg := validTestConfig()
		cfg.Resolve.MaxPicks = 0
		assert.Error(t, validateConfig(cfg))
	})

	t.Run("キャッシュ有効時は Redis アドレス必須", func(t *testing.T) {
		cfg := validTestConfig()
		cfg.Cache.RedisAddr = ""
		assert.Error(t, validateConfig(cfg))
	})

	t.Run("キャッシュ無効ならキャッシュ設定は見ない", func(t *testing.T) {
		cfg := validTestConfig()
		cfg.Cache = CacheConfig{Enabled: false}
		assert.NoError(t, validateConfig(cfg))
	})
}

func TestMaskAPIKey(t *testing.T) {
	t.Run("短いキーは全桁マスク", func(t *testing.T) {
		assert.Equal(t, "****", maskAPIKey("sk-123"))
		assert.Equal(t, "****", maskAPIKey(""))
	})

	t.Run("長いキーは前後 4 文字のみ残す", func(t *testing.T) {
		assert.Equal(t, "sk-a...wxyz", maskAPIKey("sk-abcdefghijklmnopqrstuvwxyz"))
	})
}
