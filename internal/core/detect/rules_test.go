package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupTables(t *testing.T) {
	t.Run("年齢表は 3〜16 を網羅し ID が重複しない", func(t *testing.T) {
		seen := make(map[int]bool)
		for age := minAge; age <= maxAge; age++ {
			id, ok := ageCategoryTable[age]
			require.True(t, ok, "age %d missing", age)
			assert.False(t, seen[id], "duplicate category id %d", id)
			seen[id] = true
		}
	})

	t.Run("人数表は 1〜10 を網羅し ID が重複しない", func(t *testing.T) {
		seen := make(map[int]bool)
		for n := 1; n <= 10; n++ {
			id, ok := countCategoryTable[n]
			require.True(t, ok, "count %d missing", n)
			assert.False(t, seen[id], "duplicate category id %d", id)
			seen[id] = true
		}
	})

	t.Run("デフォルト子供年齢は表に載っている", func(t *testing.T) {
		_, ok := ageCategoryTable[defaultChildAge]
		assert.True(t, ok)
	})
}

func TestDefaultRules(t *testing.T) {
	for _, rule := range DefaultRules() {
		assert.NotEmpty(t, rule.Keywords, "rule %d has no keywords", rule.CategoryID)
		assert.Positive(t, rule.Priority, "rule %d has no priority", rule.CategoryID)
	}
}
