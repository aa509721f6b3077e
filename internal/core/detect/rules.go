package detect

// CategoryRule キーワードカテゴリの静的ルール。
// keywords はリテラル部分一致（OR 条件）、priority が高いものが優先され、
// 同点の場合はテーブル宣言順で先のルールが勝つ
type CategoryRule struct {
	CategoryID int
	Keywords   []string
	Priority   int
}

// ageCategoryTable 年齢（3〜16 歳にクランプ済み）→ カテゴリ ID
var ageCategoryTable = map[int]int{
	3:  33,
	4:  34,
	5:  35,
	6:  36,
	7:  37,
	8:  38,
	9:  39,
	10: 40,
	11: 41,
	12: 42,
	13: 43,
	14: 44,
	15: 45,
	16: 46,
}

// 年齢クランプ範囲
const (
	minAge = 3
	maxAge = 16
)

// defaultChildAge 数字なしで子供向けワードだけ出た場合の運用デフォルト
// （クランプ表から導出される値ではない）
const defaultChildAge = 6

// countCategoryTable プレイ人数（1〜10 人）→ カテゴリ ID
var countCategoryTable = map[int]int{
	1:  61,
	2:  62,
	3:  63,
	4:  64,
	5:  65,
	6:  66,
	7:  67,
	8:  68,
	9:  69,
	10: 70,
}

// defaultRules キーワードカテゴリのルールテーブル。
// ジャンル系（高優先）→ プレイ感系 → 汎用ワード（低優先）の順
var defaultRules = []CategoryRule{
	{CategoryID: 101, Keywords: []string{"協力", "力を合わせ"}, Priority: 350},
	{CategoryID: 102, Keywords: []string{"人狼", "正体隠匿", "裏切り者"}, Priority: 340},
	{CategoryID: 103, Keywords: []string{"心理戦", "ブラフ", "駆け引き", "はったり"}, Priority: 330},
	{CategoryID: 104, Keywords: []string{"推理", "謎解き", "ミステリー"}, Priority: 320},
	{CategoryID: 105, Keywords: []string{"デッキ構築", "ドラフト"}, Priority: 310},
	{CategoryID: 106, Keywords: []string{"戦略", "じっくり", "ガチ"}, Priority: 300},
	{CategoryID: 107, Keywords: []string{"パーティ", "ワイワイ", "盛り上が", "大人数"}, Priority: 200},
	{CategoryID: 108, Keywords: []string{"大喜利", "お笑い"}, Priority: 190},
	{CategoryID: 109, Keywords: []string{"2人用", "ふたりで", "夫婦", "カップル"}, Priority: 180},
	{CategoryID: 110, Keywords: []string{"簡単", "かんたん", "軽い", "手軽", "初心者"}, Priority: 100},
	{CategoryID: 111, Keywords: []string{"カード"}, Priority: 20},
	{CategoryID: 112, Keywords: []string{"定番", "有名"}, Priority: 10},
}

// DefaultRules 既定のルールテーブルを返す
func DefaultRules() []CategoryRule {
	return defaultRules
}
