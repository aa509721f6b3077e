package resolve

import (
	"context"
	"strings"

	"game-concierge/internal/core/catalog"
	"game-concierge/internal/core/detect"
	"game-concierge/internal/core/llm"
	"game-concierge/internal/core/sample"
	"game-concierge/internal/core/title"
	"game-concierge/internal/infrastructure/config"
	"game-concierge/internal/pkg/common"

	"go.uber.org/zap"
)

// フリーテキスト検索の 1 回あたりの取得件数
const searchLimit = 50

// 固定応答文
const (
	// カテゴリは分かったが在庫に合う商品が無かったとき
	replyBroaden = "ごめんね、条件に合うゲームが見つからなかった…！対象年齢や人数をもう少しゆるめてもらえると探しやすいよ！"

	// 手がかりが何も無かったとき
	replyNoClue = "ごめんね、うまく見つけられなかった…！遊ぶ人数や遊べる時間、好みの雰囲気（ワイワイ系？じっくり系？）を教えてもらえると、ぴったりのゲームを紹介できるよ！"
)

// CatalogClient カタログ API への読み取り操作。
// 失敗はすべてソフト扱いで、該当段を諦めて次の段へ進むだけ
type CatalogClient interface {
	Search(ctx context.Context, query string, limit, offset int) ([]catalog.Item, error)
	ListByCategory(ctx context.Context, categoryID, limit, offset int) ([]catalog.Item, error)
	TopSelling(ctx context.Context, categoryID, limit, days int) ([]catalog.Item, error)
}

// ChatCompleter 対話生成コラボレータ
type ChatCompleter interface {
	Chat(ctx context.Context, messages []llm.Message) (string, error)
}

// Result 解決結果。Reply は必ず空でない
type Result struct {
	Reply string
	Items []catalog.Item
	Trace *Trace
}

// Resolver レコメンド解決カスケード。
// 各段を固定順に試し、最初に商品を出せた段で打ち切る
type Resolver struct {
	detector *detect.Detector
	catalog  CatalogClient
	chat     ChatCompleter
	sampler  *sample.Sampler
	cfg      config.ResolveConfig
}

// NewResolver カスケードを構築する
func NewResolver(detector *detect.Detector, catalogClient CatalogClient, chat ChatCompleter, sampler *sample.Sampler, cfg config.ResolveConfig) *Resolver {
	return &Resolver{
		detector: detector,
		catalog:  catalogClient,
		chat:     chat,
		sampler:  sampler,
		cfg:      cfg,
	}
}

// requestContext 1 リクエスト分の状態。リクエスト間で共有される可変状態は無い
type requestContext struct {
	messages  []llm.Message
	utterance string
	detection detect.Result
	trace     *Trace
}

// outcome 1 段の結果
type outcome struct {
	reply string
	items []catalog.Item
}

type stageFunc func(ctx context.Context, rc *requestContext) (outcome, bool)

// Resolve 会話履歴から応答文とおすすめ商品を決める。
// 外部依存が全滅しても必ず応答文を返す
func (r *Resolver) Resolve(ctx context.Context, messages []llm.Message) Result {
	utterance := lastUserContent(messages)
	detection := r.detector.Detect(utterance)

	rc := &requestContext{
		messages:  messages,
		utterance: utterance,
		detection: detection,
		trace:     &Trace{},
	}

	rc.trace.Add(StageTrace{
		Stage:  "detect",
		CallOK: true,
		Note:   detectionNote(detection),
	})

	// 段は固定順。最初に成立した段で終了する
	stages := []stageFunc{
		r.stageTopSellingByCount,
		r.stageKeywordListing,
		r.stageTitleResolution,
		r.stageCategoryFallback,
	}

	for _, stage := range stages {
		if out, done := stage(ctx, rc); done {
			return Result{Reply: out.reply, Items: out.items, Trace: rc.trace}
		}
	}

	// どの段も成立しなかった。固定の聞き返しで終了
	rc.trace.Add(StageTrace{Stage: "terminal", CallOK: true, Terminal: true})
	return Result{Reply: replyNoClue, Items: []catalog.Item{}, Trace: rc.trace}
}

// stageTopSellingByCount 第 1 段: 人数カテゴリの売れ筋から選ぶ
func (r *Resolver) stageTopSellingByCount(ctx context.Context, rc *requestContext) (outcome, bool) {
	det := rc.detection
	if !det.HasCount {
		return outcome{}, false
	}

	items, err := r.catalog.TopSelling(ctx, det.CountCategoryID, r.cfg.TopSellingLimit, r.cfg.TopSellingDays)
	if err != nil {
		common.LogWarn("売れ筋取得に失敗、次の段へ", zap.Error(err))
		rc.trace.Add(StageTrace{Stage: "top_selling_by_count", CallOK: false})
		return outcome{}, false
	}

	// キーワード・年齢カテゴリが同時に出ていれば AND で絞る
	filtered := items
	if det.HasKeyword {
		filtered = catalog.FilterByCategory(filtered, det.KeywordCategoryID)
	}
	if det.HasAge {
		filtered = catalog.FilterByCategory(filtered, det.AgeCategoryID)
	}

	picks := r.sampler.Pick(filtered, r.cfg.MaxPicks)
	rc.trace.Add(StageTrace{
		Stage:    "top_selling_by_count",
		CallOK:   true,
		Fetched:  len(items),
		Picked:   len(picks),
		Terminal: len(picks) > 0,
	})

	if len(picks) == 0 {
		return outcome{}, false
	}
	return outcome{reply: composePicksReply(picks), items: picks}, true
}

// stageKeywordListing 第 2 段: キーワードカテゴリの商品一覧から選ぶ
func (r *Resolver) stageKeywordListing(ctx context.Context, rc *requestContext) (outcome, bool) {
	det := rc.detection
	if !det.HasKeyword {
		return outcome{}, false
	}

	items, err := r.catalog.ListByCategory(ctx, det.KeywordCategoryID, r.cfg.CategoryListLimit, 0)
	if err != nil {
		common.LogWarn("カテゴリ一覧取得に失敗、次の段へ", zap.Error(err))
		rc.trace.Add(StageTrace{Stage: "keyword_listing", CallOK: false})
		return outcome{}, false
	}

	filtered := items
	if det.HasAge {
		filtered = catalog.FilterByCategory(filtered, det.AgeCategoryID)
	}
	if det.HasCount {
		filtered = catalog.FilterByCategory(filtered, det.CountCategoryID)
	}

	picks := r.sampler.Pick(filtered, r.cfg.MaxPicks)
	rc.trace.Add(StageTrace{
		Stage:    "keyword_listing",
		CallOK:   true,
		Fetched:  len(items),
		Picked:   len(picks),
		Terminal: len(picks) > 0,
	})

	if len(picks) == 0 {
		return outcome{}, false
	}
	return outcome{reply: composePicksReply(picks), items: picks}, true
}

// stageTitleResolution 第 3 段: 対話生成に提案させたタイトルを商品に引き当てる
func (r *Resolver) stageTitleResolution(ctx context.Context, rc *requestContext) (outcome, bool) {
	content, err := r.chat.Chat(ctx, rc.messages)
	if err != nil {
		// 応答文が得られないので後段のフォールバックに任せる
		common.LogWarn("対話生成の呼び出しに失敗、次の段へ", zap.Error(err))
		rc.trace.Add(StageTrace{Stage: "title_resolution", CallOK: false})
		return outcome{}, false
	}

	suggestion := llm.ParseSuggestion(content)

	// 呼び出しは成功したが中身が空。応答文を出せないのでソフト失敗扱い
	if suggestion.Reply == "" && len(suggestion.Titles) == 0 {
		common.LogWarn("対話生成が空応答、次の段へ")
		rc.trace.Add(StageTrace{Stage: "title_resolution", CallOK: false, Note: "empty"})
		return outcome{}, false
	}

	// タイトルが 1 件も取れなければ雑談ターン。カタログ呼び出しはしない
	if len(suggestion.Titles) == 0 {
		rc.trace.Add(StageTrace{
			Stage:    "title_resolution",
			CallOK:   true,
			Terminal: true,
			Note:     "chit-chat",
		})
		return outcome{reply: suggestion.Reply, items: []catalog.Item{}}, true
	}

	titles := suggestion.Titles
	if len(titles) > r.cfg.MaxTitles {
		titles = titles[:r.cfg.MaxTitles]
	}

	// タイトルごとに最大 1 商品を集める（確定マッチ優先、無ければ補欠候補）
	collected := make([]catalog.Item, 0, len(titles))
	seen := make(map[int]bool)
	for _, t := range titles {
		item, ok := r.resolveTitle(ctx, t)
		if !ok || seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		collected = append(collected, item)
	}

	// 年齢・人数カテゴリが出ていれば AND で絞る（再検出はしない）
	det := rc.detection
	filtered := collected
	if det.HasAge {
		filtered = catalog.FilterByCategory(filtered, det.AgeCategoryID)
	}
	if det.HasCount {
		filtered = catalog.FilterByCategory(filtered, det.CountCategoryID)
	}

	// 補欠候補が在庫切れの場合はここで落ちる
	eligible := catalog.FilterEligible(filtered)

	rc.trace.Add(StageTrace{
		Stage:    "title_resolution",
		CallOK:   true,
		Fetched:  len(collected),
		Picked:   len(eligible),
		Terminal: len(eligible) > 0,
	})

	if len(eligible) == 0 {
		return outcome{}, false
	}

	// 商品が出せたときだけコラボレータの応答文をそのまま使う
	return outcome{reply: suggestion.Reply, items: eligible}, true
}

// resolveTitle 1 タイトルをクエリ候補の順で検索し商品を 1 件引き当てる。
// スコア付きマッチが無ければ、表示可能な商品を補欠として返す
func (r *Resolver) resolveTitle(ctx context.Context, t string) (catalog.Item, bool) {
	var fallback catalog.Item
	hasFallback := false

	for _, variant := range title.BuildQueryVariants(t) {
		items, err := r.catalog.Search(ctx, variant, searchLimit, 0)
		if err != nil {
			common.LogWarn("タイトル検索に失敗",
				zap.String("query", variant),
				zap.Error(err),
			)
			continue
		}

		if best, ok := title.PickBestEligible(variant, items); ok {
			return best, true
		}

		// スコアが付かなくても表示可能な商品があれば補欠に取っておく
		if !hasFallback {
			for _, it := range items {
				if it.Visible {
					fallback = it
					hasFallback = true
					break
				}
			}
		}
	}

	return fallback, hasFallback
}

// stageCategoryFallback 第 4 段: 年齢・人数カテゴリの一覧から選ぶ。
// 到達したら必ずこの段で確定する
func (r *Resolver) stageCategoryFallback(ctx context.Context, rc *requestContext) (outcome, bool) {
	det := rc.detection
	if !det.HasAge && !det.HasCount {
		return outcome{}, false
	}

	// 両方あるときは年齢を主カテゴリにする
	primary := det.CountCategoryID
	secondary := 0
	if det.HasAge {
		primary = det.AgeCategoryID
		if det.HasCount {
			secondary = det.CountCategoryID
		}
	}

	items, err := r.catalog.ListByCategory(ctx, primary, r.cfg.CategoryListLimit, 0)
	if err != nil {
		common.LogWarn("フォールバック一覧取得に失敗", zap.Error(err))
		items = nil
	}

	filtered := items
	if secondary != 0 {
		filtered = catalog.FilterByCategory(filtered, secondary)
	}

	picks := r.sampler.Pick(filtered, r.cfg.MaxPicks)
	rc.trace.Add(StageTrace{
		Stage:    "category_fallback",
		CallOK:   err == nil,
		Fetched:  len(items),
		Picked:   len(picks),
		Terminal: true,
	})

	if len(picks) == 0 {
		return outcome{reply: replyBroaden, items: []catalog.Item{}}, true
	}
	return outcome{reply: composePicksReply(picks), items: picks}, true
}

// composePicksReply 抽選で選んだ商品名を並べた定型文を作る
func composePicksReply(picks []catalog.Item) string {
	var sb strings.Builder
	sb.WriteString("おすすめは")
	for _, it := range picks {
		sb.WriteString("「")
		sb.WriteString(it.Name)
		sb.WriteString("」")
	}
	sb.WriteString("あたり！気になるのはどれ？")
	return sb.String()
}

// lastUserContent 会話履歴から最新のユーザ発話を取り出す
func lastUserContent(messages []llm.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			return messages[i].Content
		}
	}
	if len(messages) > 0 {
		return messages[len(messages)-1].Content
	}
	return ""
}

// detectionNote トレース用の検出サマリ
func detectionNote(det detect.Result) string {
	var parts []string
	if det.HasAge {
		parts = append(parts, "age")
	}
	if det.HasCount {
		parts = append(parts, "count")
	}
	if det.HasKeyword {
		parts = append(parts, "keyword")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ",")
}
