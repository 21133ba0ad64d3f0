// Package engine 实现听班排班的求解、修复与公平性优化
package engine

import (
	"context"
	"time"

	apperrors "github.com/tingban/tingban/pkg/errors"
	"github.com/tingban/tingban/pkg/model"
)

// Store 月度编排所需的周排班存取能力
type Store interface {
	SaveWeek(ctx context.Context, week *model.WeekAssignment) error
	LoadWeek(ctx context.Context, weekStart time.Time) (*model.WeekAssignment, error)
	// LoadPreviousWeeks 返回 before 之前最近的至多 limit 周（最近优先）
	LoadPreviousWeeks(ctx context.Context, before time.Time, limit int) (model.History, error)
}

// MonthMondays 返回某月内的全部周一（按日期升序）
func MonthMondays(year int, month time.Month) []time.Time {
	var out []time.Time
	d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	for d.Month() == month {
		if d.Weekday() == time.Monday {
			out = append(out, d)
		}
		d = d.AddDate(0, 0, 1)
	}
	return out
}

// GenerateMonth 逐周生成整月排班并写入存储。
// 每周生成前从存储加载此前八周作历史，周与周之间的跨周约束
// 由此自然衔接；已存在的周会被重新生成覆盖。
// 某周降级不中断整月，无可行解错误随排班记录后继续。
func (e *Engine) GenerateMonth(ctx context.Context, store Store, year int, month time.Month, roster model.Roster) ([]*model.WeekAssignment, error) {
	mondays := MonthMondays(year, month)
	out := make([]*model.WeekAssignment, 0, len(mondays))

	for _, monday := range mondays {
		history, err := store.LoadPreviousWeeks(ctx, monday, historyWindow)
		if err != nil {
			return out, apperrors.StorageError("load_previous_weeks", err)
		}

		week, err := e.GenerateWeek(ctx, monday, roster, history)
		if err != nil && week == nil {
			return out, err
		}

		if err := store.SaveWeek(ctx, week); err != nil {
			return out, apperrors.StorageError("save_week", err)
		}
		out = append(out, week)
	}
	return out, nil
}
