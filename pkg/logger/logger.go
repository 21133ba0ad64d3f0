// Package logger 提供统一的日志框架
package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	once   sync.Once
	logger zerolog.Logger
)

// Config 日志配置
type Config struct {
	Level      string `json:"level"`
	Format     string `json:"format"` // json/console
	Output     string `json:"output"` // stdout/stderr
	TimeFormat string `json:"time_format,omitempty"`
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Format:     "console",
		Output:     "stdout",
		TimeFormat: time.RFC3339,
	}
}

// Init 初始化日志器
func Init(cfg Config) {
	once.Do(func() {
		zerolog.SetGlobalLevel(parseLevel(cfg.Level))

		var output io.Writer = os.Stdout
		if cfg.Output == "stderr" {
			output = os.Stderr
		}

		if cfg.Format == "console" {
			output = zerolog.ConsoleWriter{
				Out:        output,
				TimeFormat: cfg.TimeFormat,
			}
		}

		logger = zerolog.New(output).With().Timestamp().Logger()
	})
}

// parseLevel 解析日志级别
func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// Get 获取日志器，未初始化时按默认配置初始化
func Get() *zerolog.Logger {
	Init(DefaultConfig())
	return &logger
}

// Debug 记录调试日志
func Debug() *zerolog.Event {
	return Get().Debug()
}

// Info 记录信息日志
func Info() *zerolog.Event {
	return Get().Info()
}

// Warn 记录警告日志
func Warn() *zerolog.Event {
	return Get().Warn()
}

// Error 记录错误日志
func Error() *zerolog.Event {
	return Get().Error()
}

// Fatal 记录致命错误日志
func Fatal() *zerolog.Event {
	return Get().Fatal()
}

// WithError 添加错误信息
func WithError(err error) *zerolog.Event {
	return Get().Error().Err(err)
}

// EngineLogger 排班引擎专用日志器
type EngineLogger struct {
	base *zerolog.Logger
}

// NewEngineLogger 创建排班引擎日志器
func NewEngineLogger() *EngineLogger {
	l := Get().With().Str("component", "engine").Logger()
	return &EngineLogger{base: &l}
}

// StartWeek 记录周排班开始
func (l *EngineLogger) StartWeek(weekStart string, employees int) {
	l.base.Info().
		Str("week_start", weekStart).
		Int("employees", employees).
		Msg("开始生成周排班")
}

// RuleViolation 记录被接受的规则违反
func (l *EngineLogger) RuleViolation(rule, employee string, day int, details string) {
	l.base.Warn().
		Str("rule", rule).
		Str("employee", employee).
		Int("day", day).
		Str("details", details).
		Msg("规则违反")
}

// RepairApplied 记录修复动作
func (l *EngineLogger) RepairApplied(kind, employee string, day int) {
	l.base.Info().
		Str("kind", kind).
		Str("employee", employee).
		Int("day", day).
		Msg("覆盖修复")
}

// SwapApplied 记录公平性优化换班
func (l *EngineLogger) SwapApplied(kind, from, to string, day int) {
	l.base.Info().
		Str("kind", kind).
		Str("from", from).
		Str("to", to).
		Int("day", day).
		Msg("公平性换班")
}

// WeekComplete 记录周排班完成
func (l *EngineLogger) WeekComplete(weekStart string, duration time.Duration, degraded bool, violations int) {
	l.base.Info().
		Str("week_start", weekStart).
		Dur("duration", duration).
		Bool("degraded", degraded).
		Int("violations", violations).
		Msg("周排班生成完成")
}
