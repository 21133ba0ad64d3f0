package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tingban/tingban/pkg/model"
	"github.com/tingban/tingban/pkg/rule/builtin"
)

func TestCoverageAnalyzeFullCoverage(t *testing.T) {
	week := weekWith(testMonday, map[int]string{
		0: "甲", 1: "乙", 2: "丙", 3: "丁", 4: "戊", 5: "己", 6: "庚",
	})

	m := NewCoverageAnalyzer().Analyze([]*model.WeekAssignment{week})

	assert.Equal(t, 7, m.TotalDays)
	assert.Equal(t, 7, m.CoveredDays)
	assert.InDelta(t, 100, m.OverallCoverage, 1e-9)
	assert.Equal(t, 0, m.DegradedWeeks)
	assert.Empty(t, m.UncoveredDays)

	require.Len(t, m.WeekSummaries, 1)
	assert.Equal(t, 7, m.WeekSummaries[0].Covered)
	assert.False(t, m.WeekSummaries[0].Degraded)
}

func TestCoverageAnalyzeUncoveredDays(t *testing.T) {
	// 周三与周日无人听班
	week := weekWith(testMonday, map[int]string{
		0: "甲", 1: "乙", 3: "甲", 4: "乙", 5: "甲",
	})

	m := NewCoverageAnalyzer().Analyze([]*model.WeekAssignment{week})

	assert.Equal(t, 5, m.CoveredDays)
	assert.InDelta(t, 5.0/7.0*100, m.OverallCoverage, 1e-9)

	require.Len(t, m.UncoveredDays, 2)
	assert.Equal(t, model.Wednesday, m.UncoveredDays[0].Day)
	assert.Equal(t, model.Sunday, m.UncoveredDays[1].Day)
	assert.Equal(t, "2026-03-02", m.UncoveredDays[0].WeekStart)
	assert.Equal(t, model.DayName(model.Wednesday), m.UncoveredDays[0].DayName)
}

func TestCoverageAnalyzeViolations(t *testing.T) {
	degraded := weekWith(testMonday, map[int]string{
		0: "甲", 1: "乙", 2: "甲", 3: "乙", 4: "甲", 5: "乙", 6: "甲",
	})
	degraded.AddViolation(model.Violation{Rule: builtin.NameMaxTwo, Priority: builtin.PriorityMaxTwo, Employee: "甲", Day: 4})
	degraded.AddViolation(model.Violation{Rule: builtin.NameMaxTwo, Priority: builtin.PriorityMaxTwo, Employee: "乙", Day: 5})
	degraded.AddViolation(model.Violation{Rule: builtin.NameRest, Priority: builtin.PriorityRest, Employee: "甲", Day: 2})
	clean := weekWith(testMonday.AddDate(0, 0, 7), map[int]string{
		0: "甲", 1: "乙", 2: "丙", 3: "丁", 4: "戊", 5: "己", 6: "庚",
	})

	m := NewCoverageAnalyzer().Analyze([]*model.WeekAssignment{degraded, clean})

	assert.Equal(t, 1, m.DegradedWeeks)
	assert.Equal(t, 3, m.TotalViolations)
	assert.Equal(t, 2, m.ViolationsBy[builtin.NameMaxTwo])
	assert.Equal(t, 1, m.ViolationsBy[builtin.NameRest])

	require.Len(t, m.WeekSummaries, 2)
	assert.True(t, m.WeekSummaries[0].Degraded)
	assert.Equal(t, 3, m.WeekSummaries[0].Violations)
	assert.False(t, m.WeekSummaries[1].Degraded)
}

func TestCoverageAnalyzeEmptyInput(t *testing.T) {
	m := NewCoverageAnalyzer().Analyze(nil)
	assert.Equal(t, 0, m.TotalDays)
	assert.InDelta(t, 100, m.OverallCoverage, 1e-9)
}
