// Package engine 实现听班排班的求解、修复与公平性优化
package engine

import "github.com/tingban/tingban/pkg/model"

// defaultMaxNodes 回溯搜索的防御性节点上限，超限按无解处理
const defaultMaxNodes = 200000

// solveMode 求解模式
type solveMode int

const (
	// modeStrict 终态要求每人至少听班一次
	modeStrict solveMode = iota
	// modeCoverage 仅要求每日有人听班，终态不检查
	modeCoverage
)

// solver 逐日深度优先回溯搜索。
// 候选人按花名册固定顺序尝试，结果对相同输入完全可复现。
type solver struct {
	p        *plan
	mode     solveMode
	maxNodes int
	nodes    int
}

func newSolver(p *plan, mode solveMode, maxNodes int) *solver {
	if maxNodes <= 0 {
		maxNodes = defaultMaxNodes
	}
	return &solver{p: p, mode: mode, maxNodes: maxNodes}
}

// run 执行搜索，返回是否找到满足终态条件的完整指派
func (s *solver) run() bool {
	return s.assignDay(0)
}

// assignDay 为第 day 天挑选听班人并递归到下一天；
// 失败时撤销指派（含派生休息格）换下一个候选人。
func (s *solver) assignDay(day int) bool {
	if day == model.DaysPerWeek {
		if s.mode == modeStrict {
			return s.p.everyoneOnCall()
		}
		return true
	}

	s.nodes++
	if s.nodes > s.maxNodes {
		return false
	}

	for _, emp := range s.p.roster {
		if !s.p.legal(emp, day) {
			continue
		}
		s.p.place(emp, day)
		if s.assignDay(day + 1) {
			return true
		}
		s.p.unplace(day)
	}
	return false
}
