package title

import (
	"strings"

	"game-concierge/internal/core/catalog"
)

// スコア帯。完全一致 > 候補がクエリを包含 > クエリが候補を包含
const (
	scoreExact             = 100
	scoreCandidateContains = 70
	scoreQueryContains     = 60
)

// Score クエリと候補商品名の照合スコアを返す。
// どちらかの正規化結果が空なら 0
func Score(query, candidateName string) int {
	q := Normalize(query)
	c := Normalize(candidateName)

	if q == "" || c == "" {
		return 0
	}
	if q == c {
		return scoreExact
	}
	if strings.Contains(c, q) {
		return scoreCandidateContains
	}
	if strings.Contains(q, c) {
		return scoreQueryContains
	}
	return 0
}

// PickBestEligible 表示可能かつ在庫ありの商品からスコア最大のものを選ぶ。
// スコア 0 しか無ければ選ばない。同点は走査順で先の商品を保持する
func PickBestEligible(query string, items []catalog.Item) (catalog.Item, bool) {
	var best catalog.Item
	bestScore := 0

	for _, it := range items {
		if !it.Eligible() {
			continue
		}
		if s := Score(query, it.Name); s > bestScore {
			best = it
			bestScore = s
		}
	}

	return best, bestScore > 0
}
