package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect_Count(t *testing.T) {
	d := NewDetector()

	t.Run("4人 は検出される", func(t *testing.T) {
		res := d.Detect("4人で遊べるゲームを探してる")
		require.True(t, res.HasCount)
		assert.Equal(t, 64, res.CountCategoryID)
	})

	t.Run("全角の４人も検出される", func(t *testing.T) {
		res := d.Detect("４人で遊びたい")
		require.True(t, res.HasCount)
		assert.Equal(t, 64, res.CountCategoryID)
	})

	t.Run("10人 は上限として検出される", func(t *testing.T) {
		res := d.Detect("10人で盛り上がれるやつ")
		require.True(t, res.HasCount)
		assert.Equal(t, 70, res.CountCategoryID)
	})

	t.Run("14人 は検出されない", func(t *testing.T) {
		res := d.Detect("14人で遊べる？")
		assert.False(t, res.HasCount)
	})

	t.Run("0人 は検出されない", func(t *testing.T) {
		res := d.Detect("0人でもできる？")
		assert.False(t, res.HasCount)
	})

	t.Run("人数単位なしでは検出されない", func(t *testing.T) {
		res := d.Detect("4つください")
		assert.False(t, res.HasCount)
	})

	t.Run("名 でも検出される", func(t *testing.T) {
		res := d.Detect("5名で遊びます")
		require.True(t, res.HasCount)
		assert.Equal(t, 65, res.CountCategoryID)
	})
}

func TestDetect_Age(t *testing.T) {
	d := NewDetector()

	t.Run("3才 はそのまま検出される", func(t *testing.T) {
		res := d.Detect("3才の子に合うゲーム")
		require.True(t, res.HasAge)
		assert.Equal(t, ageCategoryTable[3], res.AgeCategoryID)
	})

	t.Run("2才 は下限 3 にクランプされる", func(t *testing.T) {
		res := d.Detect("2才でも遊べる？")
		require.True(t, res.HasAge)
		assert.Equal(t, ageCategoryTable[3], res.AgeCategoryID)
	})

	t.Run("20歳 は上限 16 にクランプされる", func(t *testing.T) {
		res := d.Detect("20歳の集まりで")
		require.True(t, res.HasAge)
		assert.Equal(t, ageCategoryTable[16], res.AgeCategoryID)
	})

	t.Run("7才向け は検出される", func(t *testing.T) {
		res := d.Detect("7才向けの簡単なゲーム")
		require.True(t, res.HasAge)
		assert.Equal(t, ageCategoryTable[7], res.AgeCategoryID)
	})

	t.Run("数字なしの子供ワードは 6 歳相当になる", func(t *testing.T) {
		res := d.Detect("子供と一緒に遊べるものある？")
		require.True(t, res.HasAge)
		assert.Equal(t, ageCategoryTable[defaultChildAge], res.AgeCategoryID)
	})

	t.Run("手がかりなしでは検出されない", func(t *testing.T) {
		res := d.Detect("なにか面白いゲームない？")
		assert.False(t, res.HasAge)
	})
}

func TestDetect_Keyword(t *testing.T) {
	d := NewDetector()

	t.Run("優先度が高いルールが勝つ", func(t *testing.T) {
		// 協力(350) と カード(20) が同時にマッチするケース
		res := d.Detect("協力系のカードゲームが好き")
		require.True(t, res.HasKeyword)
		assert.Equal(t, 101, res.KeywordCategoryID)
	})

	t.Run("同点はテーブル順で先のルールが勝つ", func(t *testing.T) {
		rules := []CategoryRule{
			{CategoryID: 1, Keywords: []string{"あ"}, Priority: 50},
			{CategoryID: 2, Keywords: []string{"い"}, Priority: 50},
		}
		res := NewDetectorWithRules(rules).Detect("あい")
		require.True(t, res.HasKeyword)
		assert.Equal(t, 1, res.KeywordCategoryID)
	})

	t.Run("マッチなしでは検出されない", func(t *testing.T) {
		res := d.Detect("こんにちは")
		assert.False(t, res.HasKeyword)
	})
}

func TestDetect_Independent(t *testing.T) {
	d := NewDetector()

	// 年齢・人数・キーワードは独立に同時成立する
	res := d.Detect("7才の子供を含めて4人で遊べる協力ゲーム")
	assert.True(t, res.HasAge)
	assert.Equal(t, ageCategoryTable[7], res.AgeCategoryID)
	assert.True(t, res.HasCount)
	assert.Equal(t, 64, res.CountCategoryID)
	assert.True(t, res.HasKeyword)
	assert.Equal(t, 101, res.KeywordCategoryID)
}
