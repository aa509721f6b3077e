package chat

import (
	"net/http"

	"game-concierge/internal/core/catalog"
	"game-concierge/internal/core/llm"
	"game-concierge/internal/core/resolve"
	"game-concierge/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// APIVersion 応答の目印。クライアント側のデバッグ用
const APIVersion = "2025-12-14-a"

// Request チャットリクエスト
type Request struct {
	Messages []llm.Message `json:"messages" binding:"required"`
}

// Response チャット応答。
// recommended_items は確定した段が選んだ商品そのもの（雑談時は空）
type Response struct {
	Reply            string         `json:"reply"`
	RecommendedItems []catalog.Item `json:"recommended_items"`
	APIVersion       string         `json:"api_version"`
}

// Handler チャット処理
type Handler struct {
	resolver *resolve.Resolver
}

// NewHandler チャット処理を生成する
func NewHandler(resolver *resolve.Resolver) *Handler {
	return &Handler{resolver: resolver}
}

// HandleChat 発話を解決して応答とおすすめ商品を返す
func (h *Handler) HandleChat(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = common.GenerateUUID()
		c.Header("X-Request-ID", requestID)
	}

	common.LogInfo("チャット処理開始",
		zap.String("request_id", requestID),
		zap.String("client_ip", c.ClientIP()),
	)

	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("リクエスト形式が不正",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "messages is required"})
		return
	}

	if len(req.Messages) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "messages is required"})
		return
	}

	result := h.resolver.Resolve(c.Request.Context(), req.Messages)

	// トレースは永続化せずログに引き渡すだけ
	common.LogInfo("解決トレース",
		zap.String("request_id", requestID),
		zap.Any("stages", result.Trace.Stages()),
		zap.Int("items", len(result.Items)),
	)

	items := result.Items
	if items == nil {
		items = []catalog.Item{}
	}

	c.JSON(http.StatusOK, Response{
		Reply:            result.Reply,
		RecommendedItems: items,
		APIVersion:       APIVersion,
	})
}
