package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"game-concierge/internal/infrastructure/config"
	"game-concierge/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const baseURL = "https://api.openai.com/v1"

// systemPrompt 店員ペルソナ＋提案時の出力形式の指定
const systemPrompt = "あなたはボードゲームカフェの店員です。日本語でカジュアルに答えてください。" +
	"おすすめのボードゲームを提案するときは、必ず {\"reply\": \"返答文\", \"titles\": [\"タイトル\"]} という JSON で答え、" +
	"titles には実在するボードゲームのタイトルを最大5件入れてください。" +
	"雑談や条件確認の質問には普通の文章で答えてください。"

// Message 会話の 1 ターン
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client OpenAI チャット API クライアント
type Client struct {
	config *config.Config
	client *resty.Client
}

// NewClient 対話生成クライアントを生成する
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.OpenAI.Timeout).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.OpenAI.APIKey))

	return &Client{
		config: cfg,
		client: client,
	}
}

// Chat 会話履歴を渡して応答テキストを得る
func (c *Client) Chat(ctx context.Context, messages []Message) (string, error) {
	// システムプロンプトを先頭に付ける
	payload := make([]Message, 0, len(messages)+1)
	payload = append(payload, Message{Role: "system", Content: systemPrompt})
	payload = append(payload, messages...)

	req := map[string]interface{}{
		"model":       c.config.OpenAI.Model,
		"messages":    payload,
		"temperature": c.config.OpenAI.Temperature,
		"max_tokens":  c.config.OpenAI.MaxTokens,
	}

	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/chat/completions")
	common.LogExternalCall("openai.chat_completions", time.Since(start), err)

	if err != nil {
		return "", fmt.Errorf("failed to send request to OpenAI: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		common.LogWarn("OpenAI API が異常ステータスを返却",
			zap.Int("status_code", resp.StatusCode()),
		)
		return "", fmt.Errorf("OpenAI API returned status %d", resp.StatusCode())
	}

	// 応答を解析する
	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse OpenAI response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in OpenAI response")
	}

	return result.Choices[0].Message.Content, nil
}
