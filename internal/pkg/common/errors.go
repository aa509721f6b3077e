package common

import (
	"net/http"
)

// CustomError カスタムエラー型
type CustomError struct {
	Code    string // エラーコード
	Message string // エラーメッセージ
	Err     error  // 元のエラー
	Status  int    // HTTP ステータスコード
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// NewError カスタムエラーを生成する
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// 事前定義エラーコード
const (
	// クライアントエラー (4xx)
	ErrCodeInvalidRequest   = "INVALID_REQUEST"    // 400
	ErrCodeUnauthorized     = "UNAUTHORIZED"       // 401
	ErrCodeForbidden        = "FORBIDDEN"          // 403
	ErrCodeNotFound         = "NOT_FOUND"          // 404
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED" // 405
	ErrCodeRequestTimeout   = "REQUEST_TIMEOUT"    // 408
	ErrCodeTooManyRequests  = "TOO_MANY_REQUESTS"  // 429

	// サーバエラー (5xx)
	ErrCodeInternalError      = "INTERNAL_ERROR"      // 500
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE" // 503
	ErrCodeGatewayTimeout     = "GATEWAY_TIMEOUT"     // 504
)

// 事前定義エラー
var (
	// クライアントエラー
	ErrInvalidRequest   = NewError(ErrCodeInvalidRequest, "不正なリクエスト", http.StatusBadRequest, nil)
	ErrUnauthorized     = NewError(ErrCodeUnauthorized, "認証されていないアクセス", http.StatusUnauthorized, nil)
	ErrForbidden        = NewError(ErrCodeForbidden, "アクセス禁止", http.StatusForbidden, nil)
	ErrNotFound         = NewError(ErrCodeNotFound, "リソースが存在しません", http.StatusNotFound, nil)
	ErrMethodNotAllowed = NewError(ErrCodeMethodNotAllowed, "許可されていないメソッド", http.StatusMethodNotAllowed, nil)
	ErrRequestTimeout   = NewError(ErrCodeRequestTimeout, "リクエストタイムアウト", http.StatusRequestTimeout, nil)
	ErrTooManyRequests  = NewError(ErrCodeTooManyRequests, "リクエストが多すぎます", http.StatusTooManyRequests, nil)

	// サーバエラー
	ErrInternalError      = NewError(ErrCodeInternalError, "サーバ内部エラー", http.StatusInternalServerError, nil)
	ErrServiceUnavailable = NewError(ErrCodeServiceUnavailable, "サービス一時停止中", http.StatusServiceUnavailable, nil)
	ErrGatewayTimeout     = NewError(ErrCodeGatewayTimeout, "ゲートウェイタイムアウト", http.StatusGatewayTimeout, nil)

	// 業務エラー
	ErrShopAPIError    = NewError("SHOP_API_ERROR", "商品 API エラー", http.StatusServiceUnavailable, nil)
	ErrSnapshotMissing = NewError("SNAPSHOT_MISSING", "商品スナップショット未作成", http.StatusNotFound, nil)
)
