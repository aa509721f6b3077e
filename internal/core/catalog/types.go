package catalog

// Item 商品カタログの 1 商品
type Item struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	ImageURL    string `json:"image_url,omitempty"`
	CategoryIDs []int  `json:"category_ids"`
	Visible     bool   `json:"is_visible"`
	InStock     bool   `json:"in_stock"`
}

// Eligible 表示可能かつ在庫ありの商品のみ最終出力に載せられる
func (i Item) Eligible() bool {
	return i.Visible && i.InStock
}

// HasCategory 指定カテゴリ ID を持つかどうか
func (i Item) HasCategory(categoryID int) bool {
	for _, id := range i.CategoryIDs {
		if id == categoryID {
			return true
		}
	}
	return false
}

// FilterEligible 表示可能かつ在庫ありの商品に絞り込む
func FilterEligible(items []Item) []Item {
	eligible := make([]Item, 0, len(items))
	for _, it := range items {
		if it.Eligible() {
			eligible = append(eligible, it)
		}
	}
	return eligible
}

// FilterByCategory 指定カテゴリ ID を持つ商品に絞り込む（AND 条件の 1 段）
func FilterByCategory(items []Item, categoryID int) []Item {
	filtered := make([]Item, 0, len(items))
	for _, it := range items {
		if it.HasCategory(categoryID) {
			filtered = append(filtered, it)
		}
	}
	return filtered
}
