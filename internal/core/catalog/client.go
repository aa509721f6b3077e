package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"game-concierge/internal/infrastructure/config"
	"game-concierge/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Client EC ショップ商品 API クライアント
type Client struct {
	config *config.Config
	client *resty.Client
}

// NewClient 商品 API クライアントを生成する
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(cfg.Shop.APIBase).
		SetTimeout(cfg.Shop.Timeout).
		SetHeader("Accept", "application/json").
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.Shop.Token))

	return &Client{
		config: cfg,
		client: client,
	}
}

// Search フリーテキスト検索
func (c *Client) Search(ctx context.Context, query string, limit, offset int) ([]Item, error) {
	return c.get(ctx, "", map[string]string{
		"q":      query,
		"limit":  strconv.Itoa(limit),
		"offset": strconv.Itoa(offset),
	})
}

// ListByCategory カテゴリ指定で商品一覧を取得する
func (c *Client) ListByCategory(ctx context.Context, categoryID, limit, offset int) ([]Item, error) {
	return c.get(ctx, "", map[string]string{
		"category_id": strconv.Itoa(categoryID),
		"limit":       strconv.Itoa(limit),
		"offset":      strconv.Itoa(offset),
	})
}

// TopSelling 直近 days 日間の売上ランキングを取得する。categoryID が 0 なら全カテゴリ対象
func (c *Client) TopSelling(ctx context.Context, categoryID, limit, days int) ([]Item, error) {
	params := map[string]string{
		"limit": strconv.Itoa(limit),
		"days":  strconv.Itoa(days),
	}
	if categoryID != 0 {
		params["category_id"] = strconv.Itoa(categoryID)
	}
	return c.get(ctx, "/ranking", params)
}

// FetchAll スナップショット同期用に全商品を取得する
func (c *Client) FetchAll(ctx context.Context, limit int) ([]Item, error) {
	return c.get(ctx, "", map[string]string{
		"limit": strconv.Itoa(limit),
	})
}

// get GET リクエストを送り items を取り出す
func (c *Client) get(ctx context.Context, path string, params map[string]string) ([]Item, error) {
	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(path)
	common.LogExternalCall("shop.products"+path, time.Since(start), err)

	if err != nil {
		return nil, fmt.Errorf("failed to call shop API: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		common.LogWarn("商品 API が異常ステータスを返却",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("path", path),
		)
		return nil, fmt.Errorf("shop API returned status %d", resp.StatusCode())
	}

	items, err := coerceItems(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("failed to parse shop API response: %w", err)
	}

	return items, nil
}

// coerceItems 応答ペイロードを防御的に Item 配列へ変換する。
// {items: [...]} と素の配列の両方を受け付け、items が配列でない場合は空扱い
func coerceItems(body []byte) ([]Item, error) {
	var envelope struct {
		Items json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if len(envelope.Items) == 0 {
			// items 欠落は空扱い
			return []Item{}, nil
		}
		var items []Item
		if err := json.Unmarshal(envelope.Items, &items); err != nil {
			// items が配列以外なら空リストに落とす
			return []Item{}, nil
		}
		return items, nil
	}

	// オブジェクトでなければ素の配列として解釈を試みる
	var items []Item
	if err := json.Unmarshal(body, &items); err == nil {
		return items, nil
	}

	return nil, fmt.Errorf("unrecognized shop API payload")
}
