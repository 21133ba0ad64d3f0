// Package engine 实现听班排班的求解、修复与公平性优化
package engine

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/tingban/tingban/pkg/errors"
	"github.com/tingban/tingban/pkg/logger"
	"github.com/tingban/tingban/pkg/model"
	"github.com/tingban/tingban/pkg/rule"
	"github.com/tingban/tingban/pkg/rule/builtin"
)

// Engine 周排班引擎。
// 流水线：跨周固定 → 严格求解 → 覆盖修复 → 公平性优化 → 补齐空格。
// 相同输入产生相同排班（生成时间戳除外）。
type Engine struct {
	catalog  *rule.Catalog
	log      *logger.EngineLogger
	maxNodes int
	now      func() time.Time
}

// New 创建带默认规则集的排班引擎
func New() *Engine {
	return &Engine{
		catalog:  rule.NewCatalog(builtin.Default()...),
		log:      logger.NewEngineLogger(),
		maxNodes: defaultMaxNodes,
		now:      time.Now,
	}
}

// SetMaxNodes 调整回溯搜索节点上限（非正数恢复默认值）
func (e *Engine) SetMaxNodes(n int) {
	if n <= 0 {
		n = defaultMaxNodes
	}
	e.maxNodes = n
}

// SetClock 替换时钟，测试用
func (e *Engine) SetClock(now func() time.Time) {
	if now != nil {
		e.now = now
	}
}

// Rules 返回当前规则摘要（按执行顺序）
func (e *Engine) Rules() []rule.Info {
	return e.catalog.List()
}

// AddRule 注册规则，同名规则被替换
func (e *Engine) AddRule(r rule.Rule) {
	e.catalog.Register(r)
}

// RemoveRule 按名称移除规则
func (e *Engine) RemoveRule(name string) bool {
	return e.catalog.Remove(name)
}

// Validate 评估一次指派会违反哪些规则，全部通过时返回空
func (e *Engine) Validate(employee string, day int, duty model.DutyType, week *model.WeekAssignment, history model.History) []rule.Failure {
	return e.catalog.Explain(employee, day, duty, week, history)
}

// GenerateWeek 生成一周排班。
// weekStart 必须是周一；history 按最近优先排列，最多回看八周。
// 人手不足时返回降级排班而非失败；只有修复后仍有日子无人听班
// 才连同排班一起返回无可行解错误。
func (e *Engine) GenerateWeek(ctx context.Context, weekStart time.Time, roster model.Roster, history model.History) (*model.WeekAssignment, error) {
	start := e.now()

	if err := validateInput(weekStart, roster); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.log.StartWeek(weekStart.Format("2006-01-02"), len(roster))

	week := model.NewWeekAssignment(weekStart)
	ApplyCarryover(week, roster, history)

	p := newPlan(week, roster, history, e.catalog)

	// 回溯失败时所有指派都已撤销，修复器从仅含跨周固定格的状态接手
	var uncovered []int
	if !newSolver(p, modeStrict, e.maxNodes).run() {
		uncovered = newRepairer(p, e.log, e.maxNodes).repair()
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	newOptimizer(p, e.log).run()
	finalize(week, roster)

	week.Metadata.ID = uuid.New()
	week.Metadata.GeneratedAt = e.now()
	for _, info := range e.catalog.List() {
		week.Metadata.RulesApplied = append(week.Metadata.RulesApplied, info.Name)
	}

	for _, day := range uncovered {
		week.Metadata.UncoveredDays = append(week.Metadata.UncoveredDays, day)
		week.AddViolation(model.Violation{
			Rule:     builtin.NameCoverage,
			Priority: builtin.PriorityCoverage,
			Day:      day,
			Message:  "修复后当日仍无人听班",
		})
	}

	e.log.WeekComplete(weekStart.Format("2006-01-02"), e.now().Sub(start),
		week.Metadata.Degraded, len(week.Metadata.Violations))

	if len(uncovered) > 0 {
		return week, apperrors.NoFeasibleSolution("存在无人听班的日子")
	}
	return week, nil
}

// validateInput 校验生成入参
func validateInput(weekStart time.Time, roster model.Roster) error {
	if len(roster) == 0 {
		return apperrors.InvalidRoster("花名册为空")
	}
	if dups := roster.Duplicates(); len(dups) > 0 {
		return apperrors.InvalidRoster("花名册存在重名: " + dups[0])
	}
	if weekStart.Weekday() != time.Monday {
		return apperrors.InvalidWeekStart(weekStart.Format("2006-01-02"))
	}
	return nil
}

// finalize 把剩余未定格子补齐：周末补休息，工作日补白班
func finalize(week *model.WeekAssignment, roster model.Roster) {
	for day := 0; day < model.DaysPerWeek; day++ {
		for _, emp := range roster {
			if _, ok := week.Duty(day, emp); ok {
				continue
			}
			if model.IsWeekend(day) {
				week.SetDuty(day, emp, model.DutyRest)
			} else {
				week.SetDuty(day, emp, model.DutyWork)
			}
		}
	}
}
