package detect

import (
	"regexp"
	"strconv"
	"strings"
)

// Result 1 発話から導出されたカテゴリ。3 種は独立で同時に成立し得る
type Result struct {
	AgeCategoryID     int
	HasAge            bool
	CountCategoryID   int
	HasCount          bool
	KeywordCategoryID int
	HasKeyword        bool
}

// Detector 発話からカテゴリを検出する。ルールテーブルは構築時に固定
type Detector struct {
	rules []CategoryRule
}

// NewDetector 既定ルールで検出器を生成する
func NewDetector() *Detector {
	return NewDetectorWithRules(DefaultRules())
}

// NewDetectorWithRules 任意ルールで検出器を生成する
func NewDetectorWithRules(rules []CategoryRule) *Detector {
	return &Detector{rules: rules}
}

var (
	// 1〜2 桁の数字＋年齢単位。直前に数字が続く場合は除外
	agePattern = regexp.MustCompile(`(?:^|[^0-9])([0-9]{1,2})\s*(?:才|歳|さい)`)

	// 1〜10 の数字＋人数単位。11 以上の 2 桁（例: 14人）は正規表現自体が弾く
	countPattern = regexp.MustCompile(`(?:^|[^0-9])(10|[1-9])\s*(?:人|名)`)

	// 数字なしでも年齢カテゴリ扱いにする子供向けワード
	childWords = []string{"子供", "子ども", "こども", "キッズ", "小学生", "幼児"}

	// 全角数字を半角へ寄せる
	digitNormalizer = strings.NewReplacer(
		"０", "0", "１", "1", "２", "2", "３", "3", "４", "4",
		"５", "5", "６", "6", "７", "7", "８", "8", "９", "9",
	)
)

// Detect 発話テキストから年齢・人数・キーワードの各カテゴリを導出する
func (d *Detector) Detect(text string) Result {
	normalized := digitNormalizer.Replace(text)

	result := Result{}

	// 年齢カテゴリ
	if m := agePattern.FindStringSubmatch(normalized); m != nil {
		age, err := strconv.Atoi(m[1])
		if err == nil {
			result.AgeCategoryID = ageCategoryTable[clampAge(age)]
			result.HasAge = true
		}
	} else if containsAny(text, childWords) {
		result.AgeCategoryID = ageCategoryTable[defaultChildAge]
		result.HasAge = true
	}

	// 人数カテゴリ
	if m := countPattern.FindStringSubmatch(normalized); m != nil {
		count, err := strconv.Atoi(m[1])
		if err == nil {
			result.CountCategoryID = countCategoryTable[count]
			result.HasCount = true
		}
	}

	// キーワードカテゴリ。大文字小文字は区別し、トークン分割もしない
	if id, ok := d.matchKeywordCategory(text); ok {
		result.KeywordCategoryID = id
		result.HasKeyword = true
	}

	return result
}

// matchKeywordCategory ルールテーブルから最優先のカテゴリを 1 つ選ぶ
func (d *Detector) matchKeywordCategory(text string) (int, bool) {
	bestID := 0
	bestPriority := 0
	found := false

	for _, rule := range d.rules {
		if !containsAny(text, rule.Keywords) {
			continue
		}
		// 同点はテーブル順で先のルールを保持する
		if !found || rule.Priority > bestPriority {
			bestID = rule.CategoryID
			bestPriority = rule.Priority
			found = true
		}
	}

	return bestID, found
}

// clampAge 年齢を [minAge, maxAge] に丸める
func clampAge(age int) int {
	if age < minAge {
		return minAge
	}
	if age > maxAge {
		return maxAge
	}
	return age
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
