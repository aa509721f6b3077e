package title

import (
	"testing"

	"game-concierge/internal/core/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore(t *testing.T) {
	t.Run("正規化後の完全一致は 100", func(t *testing.T) {
		assert.Equal(t, 100, Score("カタン", "「カタン」 完全日本語版"))
	})

	t.Run("自分自身とのスコアは 100", func(t *testing.T) {
		assert.Equal(t, 100, Score("ドミニオン", "ドミニオン"))
	})

	t.Run("候補がクエリを包含するなら 70", func(t *testing.T) {
		assert.Equal(t, 70, Score("パンデミック", "パンデミック：新たなる試練"))
	})

	t.Run("クエリが候補を包含するなら 60", func(t *testing.T) {
		assert.Equal(t, 60, Score("パンデミック：新たなる試練", "パンデミック"))
	})

	t.Run("無関係なら 0", func(t *testing.T) {
		assert.Equal(t, 0, Score("カタン", "ドミニオン"))
	})

	t.Run("空文字は常に 0", func(t *testing.T) {
		assert.Equal(t, 0, Score("", "カタン"))
		assert.Equal(t, 0, Score("カタン", ""))
		// 正規化で空になるケースも同様
		assert.Equal(t, 0, Score("123", "カタン"))
	})
}

func TestPickBestEligible(t *testing.T) {
	t.Run("在庫ありで最高スコアの商品を選ぶ", func(t *testing.T) {
		items := []catalog.Item{
			{ID: 1, Name: "パンデミック：新たなる試練", Visible: true, InStock: true},
			{ID: 2, Name: "パンデミック", Visible: true, InStock: true},
		}
		best, ok := PickBestEligible("パンデミック", items)
		require.True(t, ok)
		assert.Equal(t, 2, best.ID) // 完全一致(100) > 包含(70)
	})

	t.Run("在庫切れはスコアが高くても選ばない", func(t *testing.T) {
		items := []catalog.Item{
			{ID: 1, Name: "カタン", Visible: true, InStock: false},
			{ID: 2, Name: "カタンの開拓者たち", Visible: true, InStock: true},
		}
		best, ok := PickBestEligible("カタン", items)
		require.True(t, ok)
		assert.Equal(t, 2, best.ID)
	})

	t.Run("同点は走査順で先の商品が勝つ", func(t *testing.T) {
		items := []catalog.Item{
			{ID: 1, Name: "カタンの開拓者たち", Visible: true, InStock: true},
			{ID: 2, Name: "カタンジュニア", Visible: true, InStock: true},
		}
		best, ok := PickBestEligible("カタン", items)
		require.True(t, ok)
		assert.Equal(t, 1, best.ID)
	})

	t.Run("スコア 0 しか無ければ選ばない", func(t *testing.T) {
		items := []catalog.Item{
			{ID: 1, Name: "ドミニオン", Visible: true, InStock: true},
		}
		_, ok := PickBestEligible("カタン", items)
		assert.False(t, ok)
	})

	t.Run("空プールでは選ばない", func(t *testing.T) {
		_, ok := PickBestEligible("カタン", nil)
		assert.False(t, ok)
	})
}
