package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tingban/tingban/pkg/model"
)

var testMonday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

// weekWith 按 day → 听班人 构造一周排班
func weekWith(weekStart time.Time, onCall map[int]string) *model.WeekAssignment {
	w := model.NewWeekAssignment(weekStart)
	for day, emp := range onCall {
		w.SetDuty(day, emp, model.DutyOnCall)
	}
	return w
}

func TestFairnessAnalyzeEqualDistribution(t *testing.T) {
	roster := model.Roster{"甲", "乙", "丙", "丁", "戊", "己", "庚"}
	week := weekWith(testMonday, map[int]string{
		0: "甲", 1: "乙", 2: "丙", 3: "丁", 4: "戊", 5: "己", 6: "庚",
	})

	m := NewFairnessAnalyzer().Analyze([]*model.WeekAssignment{week}, roster)

	assert.InDelta(t, 0, m.OnCallGini, 1e-9, "完全均匀分布基尼系数为零")
	assert.InDelta(t, 0, m.OnCallVariance, 1e-9)
	assert.InDelta(t, 1, m.AvgOnCall, 1e-9)
	assert.Equal(t, 1, m.MaxOnCall)
	assert.Equal(t, 1, m.MinOnCall)
	assert.InDelta(t, 100, m.OverallFairnessScore, 1e-9)

	require.Len(t, m.EmployeeStats, 7)
	for _, stat := range m.EmployeeStats {
		assert.Equal(t, 1, stat.OnCallDays)
		assert.InDelta(t, 0, stat.Deviation, 1e-9)
	}
}

func TestFairnessAnalyzeSkewedDistribution(t *testing.T) {
	roster := model.Roster{"甲", "乙", "丙"}
	// 甲包揽五天，乙丙各一天
	week := weekWith(testMonday, map[int]string{
		0: "甲", 1: "甲", 2: "甲", 3: "甲", 4: "甲", 5: "乙", 6: "丙",
	})

	m := NewFairnessAnalyzer().Analyze([]*model.WeekAssignment{week}, roster)

	assert.Greater(t, m.OnCallGini, 0.3)
	assert.Equal(t, 5, m.MaxOnCall)
	assert.Equal(t, 1, m.MinOnCall)
	assert.Less(t, m.OverallFairnessScore, 70.0)

	// 员工统计按听班次数降序
	require.Len(t, m.EmployeeStats, 3)
	assert.Equal(t, "甲", m.EmployeeStats[0].Employee)
	assert.Equal(t, 5, m.EmployeeStats[0].OnCallDays)
	assert.Greater(t, m.EmployeeStats[0].Deviation, 0.0)
	assert.Less(t, m.EmployeeStats[1].Deviation, 0.0)
}

func TestFairnessAnalyzeWeekendCalls(t *testing.T) {
	roster := model.Roster{"甲", "乙"}
	week := weekWith(testMonday, map[int]string{
		model.Saturday: "甲",
		model.Sunday:   "甲",
		model.Monday:   "乙",
	})

	m := NewFairnessAnalyzer().Analyze([]*model.WeekAssignment{week}, roster)

	require.Len(t, m.EmployeeStats, 2)
	assert.Equal(t, "甲", m.EmployeeStats[0].Employee)
	assert.Equal(t, 2, m.EmployeeStats[0].WeekendCalls)
	assert.Equal(t, 0, m.EmployeeStats[1].WeekendCalls)
	assert.Greater(t, m.WeekendGini, 0.0)
}

func TestFairnessAnalyzeMultipleWeeks(t *testing.T) {
	roster := model.Roster{"甲", "乙"}
	w1 := weekWith(testMonday, map[int]string{0: "甲", 1: "乙"})
	w2 := weekWith(testMonday.AddDate(0, 0, 7), map[int]string{0: "乙", 1: "甲"})

	m := NewFairnessAnalyzer().Analyze([]*model.WeekAssignment{w1, w2}, roster)

	assert.InDelta(t, 2, m.AvgOnCall, 1e-9, "两周各听一次累计两次")
	assert.InDelta(t, 0, m.OnCallGini, 1e-9)
}

func TestFairnessAnalyzeEmptyInput(t *testing.T) {
	m := NewFairnessAnalyzer().Analyze(nil, model.Roster{"甲"})
	assert.InDelta(t, 100, m.OverallFairnessScore, 1e-9)

	m = NewFairnessAnalyzer().Analyze([]*model.WeekAssignment{weekWith(testMonday, nil)}, nil)
	assert.InDelta(t, 100, m.OverallFairnessScore, 1e-9)
}

func TestCompareSchedules(t *testing.T) {
	roster := model.Roster{"甲", "乙"}
	balanced := weekWith(testMonday, map[int]string{0: "甲", 3: "乙"})
	skewed := weekWith(testMonday, map[int]string{0: "甲", 3: "甲", 5: "甲"})

	diff := NewFairnessAnalyzer().CompareSchedules(
		[]*model.WeekAssignment{balanced},
		[]*model.WeekAssignment{skewed},
		roster,
	)

	assert.Greater(t, diff["on_call_gini_diff"], 0.0, "第二套更不公平")
	assert.Less(t, diff["overall_score_diff"], 0.0)
	assert.Greater(t, diff["schedule1_overall_score"], diff["schedule2_overall_score"])
}
