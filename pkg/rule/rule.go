// Package rule 定义排班规则接口与规则目录
package rule

import (
	"github.com/tingban/tingban/pkg/model"
)

// Rule 排班规则：无状态的带优先级谓词。
// Validate 判断"给某员工某日赋某班型"是否被本规则允许，
// 只依赖入参，不持有可变状态。
type Rule interface {
	// Name 返回规则名称（目录内唯一）
	Name() string

	// Priority 返回优先级，数值越大越先被满足、越晚被牺牲
	Priority() int

	// Validate 校验单个格子的赋值是否合规
	Validate(employee string, day int, duty model.DutyType, week *model.WeekAssignment, history model.History) bool
}

// Info 规则摘要（对外列表用）
type Info struct {
	Name     string `json:"name"`
	Priority int    `json:"priority"`
}

// Failure 单条规则校验失败
type Failure struct {
	Name     string `json:"name"`
	Priority int    `json:"priority"`
}
