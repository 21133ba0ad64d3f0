// Package handler 提供HTTP请求处理器
package handler

import (
	"fmt"
	"net/http"

	"github.com/tingban/tingban/internal/export"
	apperrors "github.com/tingban/tingban/pkg/errors"
	"github.com/tingban/tingban/pkg/logger"
)

// ExportMonth 导出某月排班为 Excel 文件
func (h *Handler) ExportMonth(w http.ResponseWriter, r *http.Request) {
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

	f, err := export.MonthExcel(weeks, h.roster)
	if err != nil {
		respondError(w, err)
		return
	}

	filename := fmt.Sprintf("tingban-%04d-%02d.xlsx", year, int(month))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	if err := f.Write(w); err != nil {
		logger.WithError(err).Msg("写出Excel失败")
	}
}
