package sample

import (
	"math/rand"
	"testing"

	"game-concierge/internal/core/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSampler() *Sampler {
	return NewSampler(rand.New(rand.NewSource(1)))
}

func TestPick(t *testing.T) {
	t.Run("対象 1 件なら必ずその 1 件を返す", func(t *testing.T) {
		pool := []catalog.Item{
			{ID: 1, Name: "ito", Visible: true, InStock: true},
		}
		picks := newTestSampler().Pick(pool, 3)
		require.Len(t, picks, 1)
		assert.Equal(t, 1, picks[0].ID)
	})

	t.Run("空プールなら空を返す", func(t *testing.T) {
		assert.Empty(t, newTestSampler().Pick(nil, 3))
		assert.Empty(t, newTestSampler().Pick([]catalog.Item{}, 3))
	})

	t.Run("在庫切れ・非表示は決して選ばない", func(t *testing.T) {
		pool := []catalog.Item{
			{ID: 1, Name: "a", Visible: true, InStock: false},
			{ID: 2, Name: "b", Visible: false, InStock: true},
			{ID: 3, Name: "c", Visible: true, InStock: true},
			{ID: 4, Name: "d", Visible: false, InStock: false},
		}
		for i := 0; i < 50; i++ {
			sampler := NewSampler(rand.New(rand.NewSource(int64(i))))
			for _, p := range sampler.Pick(pool, 3) {
				assert.True(t, p.Visible && p.InStock)
			}
		}
	})

	t.Run("同じ商品を二度選ばない", func(t *testing.T) {
		pool := make([]catalog.Item, 0, 10)
		for i := 1; i <= 10; i++ {
			pool = append(pool, catalog.Item{ID: i, Visible: true, InStock: true})
		}
		for seed := int64(0); seed < 20; seed++ {
			sampler := NewSampler(rand.New(rand.NewSource(seed)))
			picks := sampler.Pick(pool, 3)
			require.Len(t, picks, 3)
			seen := make(map[int]bool)
			for _, p := range picks {
				assert.False(t, seen[p.ID])
				seen[p.ID] = true
			}
		}
	})

	t.Run("元のプールの並びは変えない", func(t *testing.T) {
		pool := []catalog.Item{
			{ID: 1, Visible: true, InStock: true},
			{ID: 2, Visible: true, InStock: true},
			{ID: 3, Visible: true, InStock: true},
		}
		newTestSampler().Pick(pool, 3)
		assert.Equal(t, 1, pool[0].ID)
		assert.Equal(t, 2, pool[1].ID)
		assert.Equal(t, 3, pool[2].ID)
	})

	t.Run("n が 0 以下なら空を返す", func(t *testing.T) {
		pool := []catalog.Item{{ID: 1, Visible: true, InStock: true}}
		assert.Empty(t, newTestSampler().Pick(pool, 0))
	})
}
