// Package rule 定义排班规则接口与规则目录
package rule

import (
	"sort"
	"sync"

	"github.com/tingban/tingban/pkg/model"
)

// Catalog 规则目录：按优先级降序排列，同优先级按注册顺序。
// 注册与移除是目录仅有的两种变更，变更后重新排序。
type Catalog struct {
	rules []entry
	seq   int
	mu    sync.RWMutex
}

type entry struct {
	rule Rule
	seq  int // 注册顺序，用于同优先级平局
}

// NewCatalog 创建规则目录
func NewCatalog(rules ...Rule) *Catalog {
	c := &Catalog{}
	for _, r := range rules {
		c.Register(r)
	}
	return c
}

// Register 注册规则；同名规则被替换
func (c *Catalog) Register(r Rule) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, e := range c.rules {
		if e.rule.Name() == r.Name() {
			c.rules[i].rule = r
			c.sortLocked()
			return
		}
	}

	c.rules = append(c.rules, entry{rule: r, seq: c.seq})
	c.seq++
	c.sortLocked()
}

// Remove 按名称移除规则，返回是否找到
func (c *Catalog) Remove(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, e := range c.rules {
		if e.rule.Name() == name {
			c.rules = append(c.rules[:i], c.rules[i+1:]...)
			return true
		}
	}
	return false
}

// sortLocked 按优先级降序、注册顺序升序排序（调用方须持写锁）
func (c *Catalog) sortLocked() {
	sort.SliceStable(c.rules, func(i, j int) bool {
		if c.rules[i].rule.Priority() != c.rules[j].rule.Priority() {
			return c.rules[i].rule.Priority() > c.rules[j].rule.Priority()
		}
		return c.rules[i].seq < c.rules[j].seq
	})
}

// Rules 返回当前规则快照（按执行顺序）
func (c *Catalog) Rules() []Rule {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Rule, len(c.rules))
	for i, e := range c.rules {
		out[i] = e.rule
	}
	return out
}

// List 返回规则摘要列表
func (c *Catalog) List() []Info {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Info, len(c.rules))
	for i, e := range c.rules {
		out[i] = Info{Name: e.rule.Name(), Priority: e.rule.Priority()}
	}
	return out
}

// Count 返回规则数量
func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.rules)
}

// Validate 对目录内全部规则取逻辑与
func (c *Catalog) Validate(employee string, day int, duty model.DutyType, week *model.WeekAssignment, history model.History) bool {
	for _, r := range c.Rules() {
		if !r.Validate(employee, day, duty, week, history) {
			return false
		}
	}
	return true
}

// Explain 返回校验失败的规则（按优先级降序），全部通过时为空。
// 覆盖修复阶段用它评估"强制赋值要付出的代价"。
func (c *Catalog) Explain(employee string, day int, duty model.DutyType, week *model.WeekAssignment, history model.History) []Failure {
	var failures []Failure
	for _, r := range c.Rules() {
		if !r.Validate(employee, day, duty, week, history) {
			failures = append(failures, Failure{Name: r.Name(), Priority: r.Priority()})
		}
	}
	return failures
}

// ValidateAbove 只校验优先级不低于 minPriority 的规则
func (c *Catalog) ValidateAbove(minPriority int, employee string, day int, duty model.DutyType, week *model.WeekAssignment, history model.History) bool {
	for _, r := range c.Rules() {
		if r.Priority() < minPriority {
			// 目录按优先级降序，后面的更低
			return true
		}
		if !r.Validate(employee, day, duty, week, history) {
			return false
		}
	}
	return true
}
