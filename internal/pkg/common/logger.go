package common

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Logger グローバルロガー
	Logger  *zap.Logger
	LogMode string // 宣言のみ、初期化は InitLogger で行う

	// ログレベルごとの色
	levelColors = map[zapcore.Level]string{
		zapcore.DebugLevel: "\033[36m", // シアン
		zapcore.InfoLevel:  "\033[32m", // 緑
		zapcore.WarnLevel:  "\033[33m", // 黄
		zapcore.ErrorLevel: "\033[31m", // 赤
		zapcore.FatalLevel: "\033[35m", // 紫
	}
	resetColor = "\033[0m"
)

// カスタムエンコーダ設定
func getEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "", // ロガー名は不要
		CallerKey:      "", // 呼び出し元情報は不要
		MessageKey:     "msg",
		StacktraceKey:  "", // スタックトレースは不要
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    customLevelEncoder,
		EncodeTime:     customTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   nil,
	}
}

// カスタム時刻フォーマット（ミリ秒まで）
func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("15:04:05.000"))
}

// カスタムレベルエンコーダ（色付き）
func customLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	color := levelColors[l]
	level := l.String()
	// レベル表示幅を揃える
	switch l {
	case zapcore.DebugLevel:
		level = "DBG"
	case zapcore.InfoLevel:
		level = "INF"
	case zapcore.WarnLevel:
		level = "WRN"
	case zapcore.ErrorLevel:
		level = "ERR"
	case zapcore.FatalLevel:
		level = "FAT"
	}
	enc.AppendString(color + level + resetColor)
}

// InitLogger ログシステムを初期化する
func InitLogger(logLevel string) error {
	// ログレベル設定
	var level zapcore.Level
	switch strings.ToLower(logLevel) {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	case "fatal":
		level = zapcore.FatalLevel
	default:
		level = zapcore.InfoLevel
	}

	// LOG_MODE を読む（.env 読み込み後であること）
	LogMode = os.Getenv("LOG_MODE")

	// ログディレクトリ作成
	if err := os.MkdirAll("logs", 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	// ログファイル作成
	logFile, err := os.OpenFile("logs/app.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	// 出力先を複数用意
	fileWriter := zapcore.AddSync(logFile)
	consoleWriter := zapcore.AddSync(os.Stdout)

	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(getEncoderConfig()),
		fileWriter,
		level,
	)
	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(getEncoderConfig()),
		consoleWriter,
		level,
	)

	// 複数コアを束ねる
	core := zapcore.NewTee(fileCore, consoleCore)

	Logger = zap.New(core,
		zap.AddCallerSkip(1),
		zap.Fields(
			zap.String("service", "game-concierge"),
		),
	)

	// グローバルロガーを差し替え
	zap.ReplaceGlobals(Logger)

	return nil
}

// filterSecretFields トークンや API キーを含むフィールドを除外する
func filterSecretFields(fields []zap.Field) []zap.Field {
	filtered := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.ToLower(field.Key)
		if strings.Contains(key, "token") || strings.Contains(key, "api_key") || strings.Contains(key, "secret") {
			continue
		}
		filtered = append(filtered, field)
	}
	return filtered
}

// LogInfo 情報ログを記録する
func LogInfo(msg string, fields ...zap.Field) {
	if LogMode == "concise" {
		// middleware の「リクエスト完了」とサーバ起動/終了メッセージのみ許可
		if msg != "リクエスト完了" && msg != "アプリ起動" && msg != "Server exited" && msg != "Shutting down server..." {
			return
		}
	}
	Logger.Info(msg, filterSecretFields(fields)...)
}

// LogError エラーログを記録する
func LogError(msg string, fields ...zap.Field) {
	Logger.Error(msg, filterSecretFields(fields)...)
}

// LogWarn 警告ログを記録する
func LogWarn(msg string, fields ...zap.Field) {
	Logger.Warn(msg, filterSecretFields(fields)...)
}

// LogDebug デバッグログを記録する
func LogDebug(msg string, fields ...zap.Field) {
	Logger.Debug(msg, filterSecretFields(fields)...)
}

// LogFatal 致命的エラーを記録する
func LogFatal(msg string, fields ...zap.Field) {
	Logger.Fatal(msg, fields...)
}

// Sync ログバッファを書き出す
func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}

// LogExternalCall 外部 API 呼び出しの結果を記録する
func LogExternalCall(target string, duration time.Duration, err error) {
	if err != nil {
		LogWarn("外部呼び出し失敗",
			zap.String("target", target),
			zap.Duration("所要時間", duration),
			zap.Error(err),
		)
		return
	}
	LogDebug("外部呼び出し成功",
		zap.String("target", target),
		zap.Duration("所要時間", duration),
	)
}
