// Package engine 实现听班排班的求解、修复与公平性优化
package engine

import (
	"github.com/tingban/tingban/pkg/logger"
	"github.com/tingban/tingban/pkg/model"
)

const (
	// fairnessRounds 公平性优化的最大轮数
	fairnessRounds = 3
	// fairnessGain 接受换班所需的最小差距缩小量
	fairnessGain = 0.2
	// historyWindow 负担评分回看的历史周数
	historyWindow = 8
)

// Score 计算某员工的听班负担评分，分数越高负担越重。
// 历史部分按周衰减（一周前权重 0.9，两周前 0.8，以此类推），
// 当周次数权重最大，最近两周再额外加权，避免同一个人连续数周吃重。
func Score(employee string, week *model.WeekAssignment, history model.History) float64 {
	hist := 0.0
	for ago := 1; ago <= historyWindow; ago++ {
		count := history.OnCallCount(ago, employee)
		hist += float64(count) * (1.0 - 0.1*float64(ago))
	}
	recent := 2.0*float64(history.OnCallCount(1, employee)) +
		1.0*float64(history.OnCallCount(2, employee))
	return 0.5*hist + 3.0*float64(week.OnCallCount(employee)) + 0.2*recent
}

// fairMove 一次候选换班：低负担者接手高负担者的 dayA；
// 交换式换班再把高负担者放到低负担者原来的 dayB。
type fairMove struct {
	kind string // takeover / exchange
	high string
	low  string
	dayA int
	dayB int
}

// optimizer 公平性优化器。每轮找出负担最高与最低的员工，
// 枚举两人之间的换班，在副本上试算，只有差距明显缩小才落地。
type optimizer struct {
	p   *plan
	log *logger.EngineLogger
}

func newOptimizer(p *plan, log *logger.EngineLogger) *optimizer {
	return &optimizer{p: p, log: log}
}

// run 执行至多 fairnessRounds 轮优化
func (o *optimizer) run() {
	for round := 0; round < fairnessRounds; round++ {
		high, low, gap := o.extremes(o.p)
		if high == "" || high == low {
			return
		}

		move, newGap := o.bestMove(high, low)
		if move == nil || gap-newGap <= fairnessGain {
			return
		}

		o.tryMove(o.p, *move)
		o.log.SwapApplied(move.kind, move.high, move.low, move.dayA)
	}
}

// extremes 返回负担最高者、最低者与两者分差，平局取花名册靠前者
func (o *optimizer) extremes(p *plan) (high, low string, gap float64) {
	var highScore, lowScore float64
	for _, emp := range p.roster {
		s := Score(emp, p.week, p.history)
		if high == "" || s > highScore {
			high = emp
			highScore = s
		}
		if low == "" || s < lowScore {
			low = emp
			lowScore = s
		}
	}
	return high, low, highScore - lowScore
}

// bestMove 枚举两人之间的全部换班，返回试算后分差最小的一个
func (o *optimizer) bestMove(high, low string) (*fairMove, float64) {
	var moves []fairMove
	for dayA := 0; dayA < model.DaysPerWeek; dayA++ {
		if o.p.onCall[dayA] != high {
			continue
		}
		moves = append(moves, fairMove{kind: "takeover", high: high, low: low, dayA: dayA, dayB: -1})
		for dayB := 0; dayB < model.DaysPerWeek; dayB++ {
			if o.p.onCall[dayB] != low {
				continue
			}
			moves = append(moves, fairMove{kind: "exchange", high: high, low: low, dayA: dayA, dayB: dayB})
		}
	}

	var best *fairMove
	bestGap := 0.0
	for i := range moves {
		trial := o.p.clone()
		if !o.tryMove(trial, moves[i]) {
			continue
		}
		_, _, gap := o.extremes(trial)
		if best == nil || gap < bestGap {
			best = &moves[i]
			bestGap = gap
		}
	}
	return best, bestGap
}

// tryMove 在给定状态上执行换班，任何一步不合法即返回 false。
// 失败不做复原，调用方须在副本上试算确认后再对真实状态执行。
func (o *optimizer) tryMove(p *plan, m fairMove) bool {
	if IsCarryoverFixed(m.low, m.dayA, p.history) {
		return false
	}
	if p.onCall[m.dayA] != m.high {
		return false
	}

	switch m.kind {
	case "takeover":
		p.unplace(m.dayA)
		p.forgetDerived(m.low, m.dayA)
		p.week.ClearDuty(m.dayA, m.low)
		if !p.legal(m.low, m.dayA) {
			return false
		}
		p.place(m.low, m.dayA)
		return true

	case "exchange":
		if p.onCall[m.dayB] != m.low {
			return false
		}
		if IsCarryoverFixed(m.high, m.dayB, p.history) {
			return false
		}
		p.unplace(m.dayA)
		p.unplace(m.dayB)
		p.forgetDerived(m.low, m.dayA)
		p.week.ClearDuty(m.dayA, m.low)
		if !p.legal(m.low, m.dayA) {
			return false
		}
		p.place(m.low, m.dayA)
		p.forgetDerived(m.high, m.dayB)
		p.week.ClearDuty(m.dayB, m.high)
		if !p.legal(m.high, m.dayB) {
			return false
		}
		p.place(m.high, m.dayB)
		return true
	}
	return false
}
