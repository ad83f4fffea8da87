package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/serhatyuna/cengonline-backend/config"
)

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		l, err := NewLogger(&config.LogConfig{Level: "warn", Format: format})
		if err != nil {
			t.Fatalf("format=%s 初始化失败: %v", format, err)
		}
		if l.Core().Enabled(zapcore.InfoLevel) {
			t.Errorf("format=%s 日志级别 warn 时不应输出 info", format)
		}
		if !l.Core().Enabled(zapcore.ErrorLevel) {
			t.Errorf("format=%s 应输出 error", format)
		}
	}
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	if _, err := NewLogger(&config.LogConfig{Level: "verbose"}); err == nil {
		t.Error("无效日志级别应返回错误")
	}
}
