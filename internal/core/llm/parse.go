package llm

import (
	"strings"

	"game-concierge/internal/pkg/common"
)

// MaxSuggestedTitles コラボレータから受け取るタイトルの上限
const MaxSuggestedTitles = 5

// Suggestion 対話生成コラボレータの出力。titles が空なら雑談ターン
type Suggestion struct {
	Reply  string   `json:"reply"`
	Titles []string `json:"titles"`
}

// ParseSuggestion コラボレータ出力から応答文とタイトル候補を取り出す。
// 構造化 JSON → テキスト中の最初の均衡した {...} 抽出の順で試み、
// どちらも失敗したら全文を応答文として雑談扱いにする
func ParseSuggestion(content string) Suggestion {
	trimmed := strings.TrimSpace(content)

	span, ok := extractJSONObject(trimmed)
	if !ok {
		return Suggestion{Reply: trimmed}
	}

	var s Suggestion
	if err := common.ParseJSON(span, &s); err != nil {
		// キーのクォート漏れを補正して再試行
		if err := common.ParseJSON(common.QuoteJSONKeys(span), &s); err != nil {
			return Suggestion{Reply: trimmed}
		}
	}

	s.Titles = cleanTitles(s.Titles)
	if s.Reply == "" && len(s.Titles) == 0 {
		// JSON は読めたが中身が無い。雑談として全文を返す
		return Suggestion{Reply: trimmed}
	}
	if s.Reply == "" {
		s.Reply = trimmed
	}
	return s
}

// cleanTitles 空要素を除き上限までに切り詰める
func cleanTitles(titles []string) []string {
	cleaned := make([]string, 0, len(titles))
	for _, t := range titles {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		cleaned = append(cleaned, t)
		if len(cleaned) == MaxSuggestedTitles {
			break
		}
	}
	return cleaned
}

// extractJSONObject テキスト中の最初の均衡した {...} 区間を取り出す。
// 文字列リテラル内の括弧とエスケープは数えない
func extractJSONObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		ch := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}

	return "", false
}
