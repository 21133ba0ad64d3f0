// Package config 提供配置管理
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config 应用配置
type Config struct {
	App      AppConfig      `envPrefix:"APP_"`
	Database DatabaseConfig `envPrefix:"DB_"`
	Engine   EngineConfig   `envPrefix:"ENGINE_"`
	Metrics  MetricsConfig  `envPrefix:"METRICS_"`
}

// AppConfig 应用基础配置
type AppConfig struct {
	Name     string `env:"NAME" envDefault:"tingban"`
	Env      string `env:"ENV" envDefault:"development"`
	Port     int    `env:"PORT" envDefault:"7012"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host            string        `env:"HOST" envDefault:"localhost"`
	Port            int           `env:"PORT" envDefault:"5432"`
	Name            string        `env:"NAME" envDefault:"tingban"`
	User            string        `env:"USER" envDefault:"tingban"`
	Password        string        `env:"PASSWORD" envDefault:"tingban123"`
	SSLMode         string        `env:"SSL_MODE" envDefault:"disable"`
	MaxOpenConns    int           `env:"MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"5m"`
}

// DSN 返回数据库连接字符串
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// EngineConfig 排班引擎配置
type EngineConfig struct {
	// Roster 花名册，逗号分隔
	Roster []string `env:"ROSTER" envSeparator:","`
	// HistoryWeeks 生成时回看的历史周数
	HistoryWeeks int `env:"HISTORY_WEEKS" envDefault:"8"`
	// MaxNodes 回溯搜索节点上限
	MaxNodes int `env:"MAX_NODES" envDefault:"200000"`
	// Backend 存储后端：file 或 postgres
	Backend string `env:"BACKEND" envDefault:"file"`
	// StorePath 文件存储路径（Backend=file 时生效）
	StorePath string `env:"STORE_PATH" envDefault:"data/tingban.json"`
}

// MetricsConfig 监控配置
type MetricsConfig struct {
	Enabled bool   `env:"ENABLED" envDefault:"true"`
	Path    string `env:"PATH" envDefault:"/metrics"`
}

// Load 从环境变量加载配置
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	return cfg, nil
}

// IsDevelopment 检查是否为开发环境
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction 检查是否为生产环境
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// IsTest 检查是否为测试环境
func (c *Config) IsTest() bool {
	return c.App.Env == "test"
}
