package sample

import (
	"math/rand"

	"game-concierge/internal/core/catalog"
)

// Sampler 表示可能かつ在庫ありの商品から偏りなく抜き出す
type Sampler struct {
	rng *rand.Rand
}

// NewSampler 乱数源を指定してサンプラーを生成する。
// テストでは固定シードの rand.Rand を渡す
func NewSampler(rng *rand.Rand) *Sampler {
	return &Sampler{rng: rng}
}

// Pick pool から最大 n 件を等確率で選ぶ。
// 対象は表示可能かつ在庫ありの商品のみ。元のスライスは並べ替えない
func (s *Sampler) Pick(pool []catalog.Item, n int) []catalog.Item {
	eligible := catalog.FilterEligible(pool)
	if len(eligible) == 0 || n <= 0 {
		return []catalog.Item{}
	}

	// コピーした対象リストだけをシャッフルする
	s.rng.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})

	if n > len(eligible) {
		n = len(eligible)
	}
	return eligible[:n]
}
