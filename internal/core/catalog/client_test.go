package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"game-concierge/internal/infrastructure/config"
	"game-concierge/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	common.Logger = zap.NewNop()
	os.Exit(m.Run())
}

func newTestConfig(baseURL string) *config.Config {
	return &config.Config{
		Shop: config.ShopConfig{
			APIBase: baseURL,
			Token:   "test-token",
			Timeout: 5 * time.Second,
		},
	}
}

func TestClientSearch(t *testing.T) {
	t.Run("クエリパラメータと認証ヘッダを付けて items を返す", func(t *testing.T) {
		var gotAuth string
		var gotQuery map[string]string

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotQuery = map[string]string{
				"q":      r.URL.Query().Get("q"),
				"limit":  r.URL.Query().Get("limit"),
				"offset": r.URL.Query().Get("offset"),
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"items": [{"id": 1, "name": "カタン", "is_visible": true, "in_stock": true}]}`))
		}))
		defer srv.Close()

		client := NewClient(newTestConfig(srv.URL))
		items, err := client.Search(context.Background(), "カタン", 50, 0)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, 1, items[0].ID)
		assert.Equal(t, "カタン", items[0].Name)
		assert.Equal(t, "Bearer test-token", gotAuth)
		assert.Equal(t, map[string]string{"q": "カタン", "limit": "50", "offset": "0"}, gotQuery)
	})

	t.Run("素の配列ペイロードも受け付ける", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"id": 2, "name": "ito"}]`))
		}))
		defer srv.Close()

		client := NewClient(newTestConfig(srv.URL))
		items, err := client.Search(context.Background(), "ito", 50, 0)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "ito", items[0].Name)
	})

	t.Run("異常ステータスはエラーになる", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		client := NewClient(newTestConfig(srv.URL))
		_, err := client.Search(context.Background(), "カタン", 50, 0)
		assert.Error(t, err)
	})
}

func TestClientTopSelling(t *testing.T) {
	t.Run("ranking パスにカテゴリと期間を付けて呼ぶ", func(t *testing.T) {
		var gotPath string
		var gotQuery map[string]string

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = map[string]string{
				"category_id": r.URL.Query().Get("category_id"),
				"limit":       r.URL.Query().Get("limit"),
				"days":        r.URL.Query().Get("days"),
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"items": []}`))
		}))
		defer srv.Close()

		client := NewClient(newTestConfig(srv.URL))
		_, err := client.TopSelling(context.Background(), 64, 10, 90)
		require.NoError(t, err)
		assert.Equal(t, "/ranking", gotPath)
		assert.Equal(t, map[string]string{"category_id": "64", "limit": "10", "days": "90"}, gotQuery)
	})

	t.Run("カテゴリ 0 は category_id を付けない", func(t *testing.T) {
		var hasCategory bool

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hasCategory = r.URL.Query().Has("category_id")
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"items": []}`))
		}))
		defer srv.Close()

		client := NewClient(newTestConfig(srv.URL))
		_, err := client.TopSelling(context.Background(), 0, 10, 90)
		require.NoError(t, err)
		assert.False(t, hasCategory)
	})
}

func TestCoerceItems(t *testing.T) {
	t.Run("items 欠落は空扱い", func(t *testing.T) {
		items, err := coerceItems([]byte(`{}`))
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("items が配列以外なら空扱い", func(t *testing.T) {
		items, err := coerceItems([]byte(`{"items": "broken"}`))
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("items が null でも空扱い", func(t *testing.T) {
		items, err := coerceItems([]byte(`{"items": null}`))
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("JSON ですらなければエラー", func(t *testing.T) {
		_, err := coerceItems([]byte(`<html>error</html>`))
		assert.Error(t, err)
	})
}
