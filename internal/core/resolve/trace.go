package resolve

// StageTrace カスケード 1 段の実行記録
type StageTrace struct {
	Stage    string `json:"stage"`
	CallOK   bool   `json:"call_ok"`
	Fetched  int    `json:"fetched"`
	Picked   int    `json:"picked"`
	Terminal bool   `json:"terminal"`
	Note     string `json:"note,omitempty"`
}

// Trace リクエスト単位の追記専用の解決記録。
// エンジン自身は永続化せず、外部のロガーへ引き渡すだけ
type Trace struct {
	stages []StageTrace
}

// Add 実行記録を 1 件追記する
func (t *Trace) Add(st StageTrace) {
	t.stages = append(t.stages, st)
}

// Stages 記録のコピーを返す
func (t *Trace) Stages() []StageTrace {
	out := make([]StageTrace, len(t.stages))
	copy(out, t.stages)
	return out
}
