// TingBan 听班排班服务
// 主程序入口

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tingban/tingban/internal/config"
	"github.com/tingban/tingban/internal/database"
	"github.com/tingban/tingban/internal/handler"
	"github.com/tingban/tingban/internal/repository"
	"github.com/tingban/tingban/pkg/engine"
	"github.com/tingban/tingban/pkg/logger"
	"github.com/tingban/tingban/pkg/model"
	"github.com/tingban/tingban/pkg/store"
)

// 构建信息（通过 ldflags 注入）
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logger.Init(logger.Config{
		Level:  cfg.App.LogLevel,
		Format: "console",
	})

	fmt.Printf("TingBan 听班排班服务 v%s\n", Version)
	fmt.Printf("Build: %s (%s)\n", BuildTime, GitCommit)
	fmt.Println()

	st, health, cleanup, err := buildStore(cfg)
	if err != nil {
		logger.WithError(err).Msg("初始化存储失败")
		os.Exit(1)
	}
	defer cleanup()

	eng := engine.New()
	eng.SetMaxNodes(cfg.Engine.MaxNodes)

	h := handler.New(eng, st, model.Roster(cfg.Engine.Roster), cfg.Engine.HistoryWeeks)
	if health != nil {
		h.SetHealth(health)
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      h.Router(cfg.Metrics.Enabled, cfg.Metrics.Path),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info().
			Int("port", cfg.App.Port).
			Str("version", Version).
			Str("backend", cfg.Engine.Backend).
			Msg("服务器启动")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("服务器启动失败")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("服务器关闭失败")
		os.Exit(1)
	}

	logger.Info().Msg("服务器已关闭")
}

// buildStore 按配置选择存储后端，数据库后端附带健康检查函数
func buildStore(cfg *config.Config) (handler.Store, func(context.Context) error, func(), error) {
	switch cfg.Engine.Backend {
	case "postgres":
		db, err := database.New(&cfg.Database)
		if err != nil {
			return nil, nil, nil, err
		}
		repo := repository.NewWeekRepository(db)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := repo.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		return repo, db.Health, func() { db.Close() }, nil

	default:
		fs, err := store.NewFileStore(cfg.Engine.StorePath)
		if err != nil {
			return nil, nil, nil, err
		}
		return fs, nil, func() {}, nil
	}
}
