// Package model 定义听班排班引擎的核心数据模型
package model

// Roster 员工花名册：有序且不重复的姓名列表，一次排班运行内固定不变。
// 顺序即求解器尝试候选人的顺序，保证结果可复现。
type Roster []string

// Contains 判断花名册是否包含某员工
func (r Roster) Contains(employee string) bool {
	for _, e := range r {
		if e == employee {
			return true
		}
	}
	return false
}

// Duplicates 返回重复出现的姓名（用于输入校验）
func (r Roster) Duplicates() []string {
	seen := make(map[string]bool, len(r))
	var dups []string
	for _, e := range r {
		if seen[e] {
			dups = append(dups, e)
		}
		seen[e] = true
	}
	return dups
}

// Clone 返回花名册副本
func (r Roster) Clone() Roster {
	return append(Roster(nil), r...)
}
