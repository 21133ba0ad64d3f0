// Package export 提供排班表导出
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/tingban/tingban/pkg/errors"
	"github.com/tingban/tingban/pkg/model"
)

const sheetName = "听班表"

// MonthExcel 把若干周排班导出为 Excel 工作簿。
// 行是员工，列是日期，单元格为班型；听班格高亮。
func MonthExcel(weeks []*model.WeekAssignment, roster model.Roster) (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, apperrors.StorageError("new_sheet", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	onCallStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#FFEB9C"}},
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, apperrors.StorageError("new_style", err)
	}

	// 表头：第一行日期，第二行星期
	f.SetCellValue(sheetName, "A1", "姓名")
	if err := f.MergeCell(sheetName, "A1", "A2"); err != nil {
		return nil, apperrors.StorageError("merge_cell", err)
	}

	col := 2
	for _, week := range weeks {
		for day := 0; day < model.DaysPerWeek; day++ {
			cell, _ := excelize.CoordinatesToCellName(col, 1)
			f.SetCellValue(sheetName, cell, week.DateOf(day).Format("01-02"))
			cell, _ = excelize.CoordinatesToCellName(col, 2)
			f.SetCellValue(sheetName, cell, model.DayName(day))
			col++
		}
	}

	for i, emp := range roster {
		row := i + 3
		cell, _ := excelize.CoordinatesToCellName(1, row)
		f.SetCellValue(sheetName, cell, emp)

		col = 2
		for _, week := range weeks {
			for day := 0; day < model.DaysPerWeek; day++ {
				duty := model.DutyWork
				if d, ok := week.Duty(day, emp); ok {
					duty = d
				}
				cell, _ := excelize.CoordinatesToCellName(col, row)
				f.SetCellValue(sheetName, cell, duty.String())
				if duty == model.DutyOnCall {
					f.SetCellStyle(sheetName, cell, cell, onCallStyle)
				}
				col++
			}
		}
	}

	// 汇总块：每人的听班/休息/白班合计
	sumRow := len(roster) + 4
	for i, title := range []string{"员工", "听班", "休息", "白班"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, sumRow)
		f.SetCellValue(sheetName, cell, title)
	}
	for i, emp := range roster {
		onCall, rest, work := 0, 0, 0
		for _, week := range weeks {
			onCall += week.OnCallCount(emp)
			rest += week.DutyCount(emp, model.DutyRest)
			work += week.DutyCount(emp, model.DutyWork)
		}
		row := sumRow + 1 + i
		for j, v := range []interface{}{emp, onCall, rest, work} {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	// 降级周备注
	noteRow := sumRow + len(roster) + 2
	for _, week := range weeks {
		if !week.Metadata.Degraded {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(1, noteRow)
		f.SetCellValue(sheetName, cell, fmt.Sprintf(
			"注：%s 起的一周为降级排班，共接受 %d 条规则违反",
			week.WeekStart.Format("2006-01-02"), len(week.Metadata.Violations)))
		noteRow++
	}

	return f, nil
}
