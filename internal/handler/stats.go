// Package handler 提供HTTP请求处理器
package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/tingban/tingban/internal/metrics"
	apperrors "github.com/tingban/tingban/pkg/errors"
	"github.com/tingban/tingban/pkg/stats"
)

// StatsReportResponse 统计报告响应
type StatsReportResponse struct {
	Year     int                    `json:"year"`
	Month    int                    `json:"month"`
	Fairness *stats.FairnessMetrics `json:"fairness"`
	Coverage *stats.CoverageMetrics `json:"coverage"`
}

// StatsReport 生成某月的公平性与覆盖统计报告
func (h *Handler) StatsReport(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseYearMonth(r)
	if err != nil {
		respondError(w, err)
		return
	}

	weeks, err := h.store.MonthWeeks(r.Context(), year, month)
	if err != nil {
		respondError(w, err)
		return
	}
	if len(weeks) == 0 {
		respondError(w, apperrors.NotFound("月排班", month.String()))
		return
	}

	fairness := stats.NewFairnessAnalyzer().Analyze(weeks, h.roster)
	coverage := stats.NewCoverageAnalyzer().Analyze(weeks)

	metrics.SetFairnessGini("on_call", fairness.OnCallGini)
	metrics.SetFairnessGini("weekend", fairness.WeekendGini)
	metrics.SetCoverageRate(coverage.OverallCoverage)

	respondJSON(w, http.StatusOK, StatsReportResponse{
		Year:     year,
		Month:    int(month),
		Fairness: fairness,
		Coverage: coverage,
	})
}

// parseYearMonth 解析 year/month 查询参数
func parseYearMonth(r *http.Request) (int, time.Month, error) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		return 0, 0, apperrors.New(apperrors.CodeInvalidInput, "年份无效")
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, apperrors.New(apperrors.CodeInvalidInput, "月份无效")
	}
	return year, time.Month(month), nil
}
