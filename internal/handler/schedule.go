// Package handler 提供HTTP请求处理器
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tingban/tingban/internal/metrics"
	apperrors "github.com/tingban/tingban/pkg/errors"
	"github.com/tingban/tingban/pkg/model"
)

// GenerateWeekRequest 周排班生成请求
type GenerateWeekRequest struct {
	// WeekStart 周一日期，格式 YYYY-MM-DD
	WeekStart string `json:"week_start"`
	// Roster 为空时使用服务配置的花名册
	Roster []string `json:"roster,omitempty"`
	// Save 是否写入存储，默认写入
	Save *bool `json:"save,omitempty"`
}

// GenerateWeekResponse 周排班生成响应
type GenerateWeekResponse struct {
	Week     *model.WeekAssignment `json:"week"`
	Degraded bool                  `json:"degraded"`
	Message  string                `json:"message,omitempty"`
}

// GenerateWeek 生成一周排班
func (h *Handler) GenerateWeek(w http.ResponseWriter, r *http.Request) {
	var req GenerateWeekRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperrors.New(apperrors.CodeInvalidInput, "解析请求失败").WithCause(err))
		return
	}

	weekStart, err := parseDate(req.WeekStart)
	if err != nil {
		respondError(w, err)
		return
	}

	roster := h.roster
	if len(req.Roster) > 0 {
		roster = model.Roster(req.Roster)
	}

	history, err := h.store.LoadPreviousWeeks(r.Context(), weekStart, h.historyWeeks)
	if err != nil {
		respondError(w, err)
		return
	}

	start := time.Now()
	week, genErr := h.engine.GenerateWeek(r.Context(), weekStart, roster, history)
	if week == nil {
		metrics.RecordWeekGeneration(false, genErr, time.Since(start))
		respondError(w, genErr)
		return
	}
	metrics.RecordWeekGeneration(week.Metadata.Degraded, nil, time.Since(start))
	for _, v := range week.Metadata.Violations {
		metrics.RecordViolation(v.Rule)
	}

	if req.Save == nil || *req.Save {
		if err := h.store.SaveWeek(r.Context(), week); err != nil {
			respondError(w, err)
			return
		}
	}

	resp := GenerateWeekResponse{Week: week, Degraded: week.Metadata.Degraded}
	if genErr != nil {
		resp.Message = genErr.Error()
	}
	respondJSON(w, http.StatusOK, resp)
}

// GenerateMonthRequest 月排班生成请求
type GenerateMonthRequest struct {
	Year   int      `json:"year"`
	Month  int      `json:"month"`
	Roster []string `json:"roster,omitempty"`
}

// GenerateMonthResponse 月排班生成响应
type GenerateMonthResponse struct {
	Weeks         []*model.WeekAssignment `json:"weeks"`
	DegradedWeeks int                     `json:"degraded_weeks"`
}

// GenerateMonth 生成整月排班并写入存储
func (h *Handler) GenerateMonth(w http.ResponseWriter, r *http.Request) {
	var req GenerateMonthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperrors.New(apperrors.CodeInvalidInput, "解析请求失败").WithCause(err))
		return
	}
	if req.Month < 1 || req.Month > 12 {
		respondError(w, apperrors.New(apperrors.CodeInvalidInput, "月份应在 1 到 12 之间"))
		return
	}

	roster := h.roster
	if len(req.Roster) > 0 {
		roster = model.Roster(req.Roster)
	}

	weeks, err := h.engine.GenerateMonth(r.Context(), h.store, req.Year, time.Month(req.Month), roster)
	if err != nil {
		respondError(w, err)
		return
	}

	degraded := 0
	for _, week := range weeks {
		if week.Metadata.Degraded {
			degraded++
		}
	}
	respondJSON(w, http.StatusOK, GenerateMonthResponse{Weeks: weeks, DegradedWeeks: degraded})
}

// GetWeek 查询某周排班
func (h *Handler) GetWeek(w http.ResponseWriter, r *http.Request) {
	weekStart, err := parseDate(chi.URLParam(r, "date"))
	if err != nil {
		respondError(w, err)
		return
	}

	week, err := h.store.LoadWeek(r.Context(), weekStart)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, week)
}

// DeleteWeek 删除某周排班
func (h *Handler) DeleteWeek(w http.ResponseWriter, r *http.Request) {
	weekStart, err := parseDate(chi.URLParam(r, "date"))
	if err != nil {
		respondError(w, err)
		return
	}

	found, err := h.store.DeleteWeek(r.Context(), weekStart)
	if err != nil {
		respondError(w, err)
		return
	}
	if !found {
		respondError(w, apperrors.NotFound("周排班", weekStart.Format("2006-01-02")))
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// GetMonth 查询某月全部排班
func (h *Handler) GetMonth(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		respondError(w, apperrors.New(apperrors.CodeInvalidInput, "年份无效"))
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || month < 1 || month > 12 {
		respondError(w, apperrors.New(apperrors.CodeInvalidInput, "月份无效"))
		return
	}

	weeks, err := h.store.MonthWeeks(r.Context(), year, time.Month(month))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, weeks)
}

// ValidateRequest 指派校验请求
type ValidateRequest struct {
	WeekStart string `json:"week_start"`
	Employee  string `json:"employee"`
	Day       int    `json:"day"`
	Duty      string `json:"duty"`
}

// ValidateResponse 指派校验响应
type ValidateResponse struct {
	Valid    bool            `json:"valid"`
	Failures []FailureOutput `json:"failures,omitempty"`
}

// FailureOutput 违反的规则
type FailureOutput struct {
	Rule     string `json:"rule"`
	Priority int    `json:"priority"`
}

// Validate 评估一次指派是否违反规则。
// 以存储中的该周排班为上下文，周排班不存在时按空白周评估。
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperrors.New(apperrors.CodeInvalidInput, "解析请求失败").WithCause(err))
		return
	}

	weekStart, err := parseDate(req.WeekStart)
	if err != nil {
		respondError(w, err)
		return
	}
	if !model.ValidDay(req.Day) {
		respondError(w, apperrors.New(apperrors.CodeInvalidInput, "星期序号应在 0 到 6 之间"))
		return
	}
	duty := model.DutyType(req.Duty)
	if !duty.Valid() {
		respondError(w, apperrors.New(apperrors.CodeInvalidInput, "班型无效"))
		return
	}

	week, err := h.store.LoadWeek(r.Context(), weekStart)
	if err != nil {
		if !apperrors.Is(err, apperrors.CodeNotFound) {
			respondError(w, err)
			return
		}
		week = model.NewWeekAssignment(weekStart)
	}

	history, err := h.store.LoadPreviousWeeks(r.Context(), weekStart, h.historyWeeks)
	if err != nil {
		respondError(w, err)
		return
	}

	failures := h.engine.Validate(req.Employee, req.Day, duty, week, history)
	resp := ValidateResponse{Valid: len(failures) == 0}
	for _, f := range failures {
		resp.Failures = append(resp.Failures, FailureOutput{Rule: f.Name, Priority: f.Priority})
	}
	respondJSON(w, http.StatusOK, resp)
}

// RuleOutput 规则摘要
type RuleOutput struct {
	Name     string `json:"name"`
	Priority int    `json:"priority"`
}

// ListRules 列出当前规则（按执行顺序）
func (h *Handler) ListRules(w http.ResponseWriter, r *http.Request) {
	var out []RuleOutput
	for _, info := range h.engine.Rules() {
		out = append(out, RuleOutput{Name: info.Name, Priority: info.Priority})
	}
	respondJSON(w, http.StatusOK, out)
}
