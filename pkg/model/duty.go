// Package model 定义听班排班引擎的核心数据模型
package model

// DutyType 每日班型
type DutyType string

const (
	DutyWork   DutyType = "白" // 白班（正常上班）
	DutyOnCall DutyType = "听" // 听班（值班待命）
	DutyRest   DutyType = "休" // 休息
)

// Valid 检查班型取值是否合法
func (d DutyType) Valid() bool {
	switch d {
	case DutyWork, DutyOnCall, DutyRest:
		return true
	}
	return false
}

// String 返回班型的单字表示
func (d DutyType) String() string {
	return string(d)
}

// 一周七天，周一=0
const (
	Monday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday

	DaysPerWeek = 7
)

var dayNames = [DaysPerWeek]string{"周一", "周二", "周三", "周四", "周五", "周六", "周日"}

// IsWeekend 判断是否为周末（周六或周日）
func IsWeekend(day int) bool {
	return day == Saturday || day == Sunday
}

// ValidDay 判断是否为合法的星期序号
func ValidDay(day int) bool {
	return day >= 0 && day < DaysPerWeek
}

// DayName 返回星期序号的中文名称
func DayName(day int) string {
	if !ValidDay(day) {
		return "未知"
	}
	return dayNames[day]
}
