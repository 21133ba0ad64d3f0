package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tingban/tingban/pkg/model"
)

var (
	thisMonday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	lastMonday = thisMonday.AddDate(0, 0, -7)
)

// historyWith 构造上一周历史，指定若干员工的听班日
func historyWith(onCall map[string][]int) model.History {
	w := model.NewWeekAssignment(lastMonday)
	for emp, days := range onCall {
		for _, day := range days {
			w.SetDuty(day, emp, model.DutyOnCall)
		}
	}
	return model.History{w}
}

func TestApplyCarryoverThursday(t *testing.T) {
	week := model.NewWeekAssignment(thisMonday)
	history := historyWith(map[string][]int{"张三": {model.Thursday}})

	ApplyCarryover(week, model.Roster{"张三", "李四"}, history)

	// 上周四听班：本周一强制白班，无强制休息
	d, ok := week.Duty(model.Monday, "张三")
	assert.True(t, ok)
	assert.Equal(t, model.DutyWork, d)
	_, ok = week.Duty(model.Tuesday, "张三")
	assert.False(t, ok)
	_, ok = week.Duty(model.Monday, "李四")
	assert.False(t, ok, "无听班记录的员工不受跨周影响")
}

func TestApplyCarryoverFriday(t *testing.T) {
	week := model.NewWeekAssignment(thisMonday)
	history := historyWith(map[string][]int{"张三": {model.Friday}})

	ApplyCarryover(week, model.Roster{"张三"}, history)

	d, _ := week.Duty(model.Monday, "张三")
	assert.Equal(t, model.DutyRest, d)
	d, _ = week.Duty(model.Tuesday, "张三")
	assert.Equal(t, model.DutyWork, d)
}

func TestApplyCarryoverWeekend(t *testing.T) {
	for _, prevDay := range []int{model.Saturday, model.Sunday} {
		week := model.NewWeekAssignment(thisMonday)
		history := historyWith(map[string][]int{"张三": {prevDay}})

		ApplyCarryover(week, model.Roster{"张三"}, history)

		d, _ := week.Duty(model.Monday, "张三")
		assert.Equal(t, model.DutyRest, d)
		d, _ = week.Duty(model.Tuesday, "张三")
		assert.Equal(t, model.DutyRest, d)
		d, _ = week.Duty(model.Wednesday, "张三")
		assert.Equal(t, model.DutyWork, d)
	}
}

func TestApplyCarryoverRestWinsOverWork(t *testing.T) {
	// 上周五+周六都听班：周一应为休息（周六的休息覆盖周五之外），
	// 周二既被周六要求休息又被周五要求白班，休息优先。
	week := model.NewWeekAssignment(thisMonday)
	history := historyWith(map[string][]int{"张三": {model.Friday, model.Saturday}})

	ApplyCarryover(week, model.Roster{"张三"}, history)

	d, _ := week.Duty(model.Monday, "张三")
	assert.Equal(t, model.DutyRest, d)
	d, _ = week.Duty(model.Tuesday, "张三")
	assert.Equal(t, model.DutyRest, d, "休息与白班冲突时休息优先")
	d, _ = week.Duty(model.Wednesday, "张三")
	assert.Equal(t, model.DutyWork, d)
}

func TestApplyCarryoverNoHistory(t *testing.T) {
	week := model.NewWeekAssignment(thisMonday)
	ApplyCarryover(week, model.Roster{"张三"}, nil)

	for day := 0; day < model.DaysPerWeek; day++ {
		_, ok := week.Duty(day, "张三")
		assert.False(t, ok, "无历史时不应有任何固定格")
	}
}

func TestIsCarryoverFixed(t *testing.T) {
	history := historyWith(map[string][]int{"张三": {model.Saturday}})

	assert.True(t, IsCarryoverFixed("张三", model.Monday, history))
	assert.True(t, IsCarryoverFixed("张三", model.Tuesday, history))
	assert.True(t, IsCarryoverFixed("张三", model.Wednesday, history))
	assert.False(t, IsCarryoverFixed("张三", model.Thursday, history))
	assert.False(t, IsCarryoverFixed("李四", model.Monday, history))
	assert.False(t, IsCarryoverFixed("张三", model.Monday, nil))
}
