// Package builtin 提供内置排班规则
package builtin

import "github.com/tingban/tingban/pkg/model"

// RestWindow 返回某日听班在本周内产生的休息日。
// 周四听班休到周日，周五/周六的剩余休息落在下一周（见跨周表）。
func RestWindow(day int) []int {
	switch day {
	case model.Monday:
		return []int{model.Tuesday}
	case model.Tuesday:
		return []int{model.Wednesday}
	case model.Wednesday:
		return []int{model.Thursday}
	case model.Thursday:
		return []int{model.Friday, model.Saturday, model.Sunday}
	case model.Friday:
		return []int{model.Saturday, model.Sunday}
	case model.Saturday:
		return []int{model.Sunday}
	default:
		return nil
	}
}

// WorkEcho 返回某日听班在本周内强制白班的日子，无则返回 -1。
// 周一听班→周三白班，周二→周四，周三→周五；周四及以后落在下一周。
func WorkEcho(day int) int {
	if day >= model.Monday && day <= model.Wednesday {
		return day + 2
	}
	return -1
}

// CarryoverRest 返回上周某日听班带给本周的强制休息日
func CarryoverRest(prevDay int) []int {
	switch prevDay {
	case model.Friday:
		return []int{model.Monday}
	case model.Saturday, model.Sunday:
		return []int{model.Monday, model.Tuesday}
	default:
		return nil
	}
}

// CarryoverWork 返回上周某日听班带给本周的强制白班日，无则返回 -1
func CarryoverWork(prevDay int) int {
	switch prevDay {
	case model.Thursday:
		return model.Monday
	case model.Friday:
		return model.Tuesday
	case model.Saturday, model.Sunday:
		return model.Wednesday
	default:
		return -1
	}
}

func containsDay(days []int, day int) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}
