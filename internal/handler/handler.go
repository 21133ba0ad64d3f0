// Package handler 提供HTTP请求处理器
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tingban/tingban/internal/metrics"
	"github.com/tingban/tingban/pkg/engine"
	apperrors "github.com/tingban/tingban/pkg/errors"
	"github.com/tingban/tingban/pkg/logger"
	"github.com/tingban/tingban/pkg/model"
)

// Store 处理器依赖的存储能力，文件存储与数据库仓储都满足
type Store interface {
	SaveWeek(ctx context.Context, week *model.WeekAssignment) error
	LoadWeek(ctx context.Context, weekStart time.Time) (*model.WeekAssignment, error)
	LoadPreviousWeeks(ctx context.Context, before time.Time, limit int) (model.History, error)
	MonthWeeks(ctx context.Context, year int, month time.Month) ([]*model.WeekAssignment, error)
	DeleteWeek(ctx context.Context, weekStart time.Time) (bool, error)
}

// Handler 听班排班服务处理器
type Handler struct {
	engine       *engine.Engine
	store        Store
	roster       model.Roster
	historyWeeks int
	health       func(ctx context.Context) error
}

// SetHealth 注册存储后端的健康检查，/health 据此反映后端状态。
// 数据库后端下传入 db.Health；文件后端不注册，只报告服务存活。
func (h *Handler) SetHealth(fn func(ctx context.Context) error) {
	h.health = fn
}

// New 创建处理器
func New(eng *engine.Engine, store Store, roster model.Roster, historyWeeks int) *Handler {
	return &Handler{
		engine:       eng,
		store:        store,
		roster:       roster,
		historyWeeks: historyWeeks,
	}
}

// Router 组装路由
func (h *Handler) Router(metricsEnabled bool, metricsPath string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(loggingMiddleware)

	r.Get("/health", h.healthHandler)

	if metricsEnabled {
		r.Handle(metricsPath, metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/schedule", func(r chi.Router) {
			r.Post("/week", h.GenerateWeek)
			r.Post("/month", h.GenerateMonth)
			r.Post("/validate", h.Validate)
			r.Get("/week/{date}", h.GetWeek)
			r.Delete("/week/{date}", h.DeleteWeek)
			r.Get("/month/{year}-{month}", h.GetMonth)
		})
		r.Get("/rules", h.ListRules)
		r.Get("/stats/report", h.StatsReport)
		r.Get("/export/month", h.ExportMonth)
	})

	return r
}

// healthHandler 健康检查，后端检查失败时报告降级
func (h *Handler) healthHandler(w http.ResponseWriter, req *http.Request) {
	if h.health != nil {
		if err := h.health(req.Context()); err != nil {
			logger.WithError(err).Msg("存储后端健康检查失败")
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status":  "degraded",
				"service": "tingban",
				"error":   err.Error(),
			})
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "tingban"})
}

// loggingMiddleware 请求日志与指标
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		logger.Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", duration).
			Msg("请求处理")

		metrics.RecordRequest(r.Method, r.URL.Path, ww.Status(), duration)
	})
}

// respondJSON 写出JSON响应
func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}

// errorBody 错误响应体
type errorBody struct {
	Error   bool           `json:"error"`
	Code    apperrors.Code `json:"code"`
	Message string         `json:"message"`
	Details string         `json:"details,omitempty"`
}

// respondError 按错误码映射HTTP状态并写出统一错误体
func respondError(w http.ResponseWriter, err error) {
	status := apperrors.GetHTTPStatus(err)
	body := errorBody{
		Error:   true,
		Code:    apperrors.GetCode(err),
		Message: err.Error(),
	}
	respondJSON(w, status, body)
}

// parseDate 解析路径中的周一日期
func parseDate(raw string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, apperrors.New(apperrors.CodeInvalidInput, "日期格式应为 YYYY-MM-DD").WithCause(err)
	}
	return t, nil
}
