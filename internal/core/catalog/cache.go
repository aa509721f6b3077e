package catalog

import (
	"context"
	"fmt"
	"time"

	"game-concierge/internal/infrastructure/config"
	"game-concierge/internal/pkg/common"

	"github.com/go-redis/redis/v8"
)

const snapshotKey = "ec_products_v1"

// Snapshot 商品スナップショット。エンジン外のコラボレータとして Redis に保持する
type Snapshot struct {
	UpdatedAt time.Time `json:"updated_at"`
	Items     []Item    `json:"items"`
}

// SnapshotCache Redis 上の商品スナップショットキャッシュ
type SnapshotCache struct {
	client *redis.Client
	config *config.CacheConfig
}

// NewSnapshotCache スナップショットキャッシュを生成する。無効時は nil クライアントのまま返す
func NewSnapshotCache(cfg *config.CacheConfig) (*SnapshotCache, error) {
	if !cfg.Enabled {
		return &SnapshotCache{config: cfg}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	// 接続確認
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &SnapshotCache{
		client: client,
		config: cfg,
	}, nil
}

// Store 全商品スナップショットを TTL 付きで保存する
func (s *SnapshotCache) Store(ctx context.Context, items []Item) error {
	if !s.config.Enabled || s.client == nil {
		return fmt.Errorf("snapshot cache is disabled")
	}

	snapshot := Snapshot{
		UpdatedAt: time.Now(),
		Items:     items,
	}

	data, err := common.ToJSON(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := s.client.Set(ctx, snapshotKey, data, s.config.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set snapshot: %w", err)
	}

	return nil
}

// Load 保存済みスナップショットを取得する
func (s *SnapshotCache) Load(ctx context.Context) (*Snapshot, error) {
	if !s.config.Enabled || s.client == nil {
		return nil, fmt.Errorf("snapshot cache is disabled")
	}

	data, err := s.client.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("snapshot not found")
		}
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := common.ParseJSONBytes(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return &snapshot, nil
}

// Close Redis 接続を閉じる
func (s *SnapshotCache) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}
