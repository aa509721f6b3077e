package title

import (
	"regexp"
	"strings"
)

// 版・拡張などのノイズトークン。長いものから順に消す
var noiseTokens = []string{
	"完全日本語版",
	"日本語版",
	"多言語版",
	"完全版",
	"新版",
	"リメイク版",
	"拡張セット",
	"拡張",
	"再販",
}

var (
	// 括弧・引用符類
	bracketStripper = strings.NewReplacer(
		"「", "", "」", "", "『", "", "』", "", "【", "", "】", "",
		"（", "", "）", "", "(", "", ")", "", "[", "", "]", "",
		"［", "", "］", "", `"`, "", "'", "", "“", "", "”", "",
		"‘", "", "’", "",
	)

	// 第n版（数字は全角半角どちらも、省略も許す）
	editionPattern = regexp.MustCompile(`第[0-9０-９]*版`)

	// 数字（ASCII と全角の両方）
	digitPattern = regexp.MustCompile(`[0-9０-９]`)

	// 空白の連続（全角スペース含む）
	spacePattern = regexp.MustCompile(`[\s　]+`)

	// サブタイトル区切り（コロン・ダッシュ類）
	subtitleSeparators = []string{"：", ":", "−", "―", "—", "–", "-", "〜", "~"}
)

// Normalize 商品名を照合用に正規化する。
// 数字除去でノイズトークンが新たに現れることがある（例: 拡4張 → 拡張）ため、
// 結果が変化しなくなるまで除去を繰り返す。これで任意の入力に対して冪等になる
func Normalize(s string) string {
	for {
		next := normalizeOnce(s)
		if next == s {
			return next
		}
		s = next
	}
}

func normalizeOnce(s string) string {
	s = bracketStripper.Replace(s)
	s = editionPattern.ReplaceAllString(s, "")
	for _, token := range noiseTokens {
		s = strings.ReplaceAll(s, token, "")
	}
	s = digitPattern.ReplaceAllString(s, "")
	s = spacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// StripSubtitle 最初のコロン・ダッシュ類より後ろ（サブタイトル）を落とす
func StripSubtitle(s string) string {
	cut := len(s)
	for _, sep := range subtitleSeparators {
		if idx := strings.Index(s, sep); idx >= 0 && idx < cut {
			cut = idx
		}
	}
	return strings.TrimSpace(s[:cut])
}

// BuildQueryVariants 検索クエリの候補を決まった順で返す。
// 順序: 原文 → 正規化 → 原文サブタイトル除去 → 正規化サブタイトル除去。
// 重複と空文字は除外する
func BuildQueryVariants(rawTitle string) []string {
	raw := strings.TrimSpace(rawTitle)
	// Normalize は区切り文字を増やしも消しもしないので、
	// 区切ってから正規化しても正規化後に区切っても結果は同じ
	candidates := []string{
		raw,
		Normalize(raw),
		StripSubtitle(raw),
		Normalize(StripSubtitle(raw)),
	}

	variants := make([]string, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		variants = append(variants, c)
	}
	return variants
}
