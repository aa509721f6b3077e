package products

import (
	"net/http"

	"game-concierge/internal/core/catalog"
	"game-concierge/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 商品スナップショット同期処理
type Handler struct {
	client    *catalog.Client
	cache     *catalog.SnapshotCache
	syncLimit int
}

// NewHandler 同期処理を生成する
func NewHandler(client *catalog.Client, cache *catalog.SnapshotCache, syncLimit int) *Handler {
	return &Handler{
		client:    client,
		cache:     cache,
		syncLimit: syncLimit,
	}
}

// HandleSync 全商品を取得してスナップショットを保存する
func (h *Handler) HandleSync(c *gin.Context) {
	items, err := h.client.FetchAll(c.Request.Context(), h.syncLimit)
	if err != nil {
		common.LogError("商品全件取得に失敗", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "failed to fetch products",
			"code":  common.ErrShopAPIError.Code,
		})
		return
	}

	if err := h.cache.Store(c.Request.Context(), items); err != nil {
		common.LogError("スナップショット保存に失敗", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "failed to store snapshot",
			"code":  common.ErrServiceUnavailable.Code,
		})
		return
	}

	common.LogInfo("商品スナップショット更新",
		zap.Int("count", len(items)),
	)

	c.JSON(http.StatusOK, gin.H{
		"ok":    true,
		"count": len(items),
	})
}

// HandleStatus 保存済みスナップショットの状態を返す
func (h *Handler) HandleStatus(c *gin.Context) {
	snapshot, err := h.cache.Load(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "snapshot not found",
			"code":  common.ErrSnapshotMissing.Code,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"updated_at": snapshot.UpdatedAt,
		"count":      len(snapshot.Items),
	})
}
