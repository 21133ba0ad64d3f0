// TingBan 听班排班命令行工具

package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tingban/tingban/internal/config"
	"github.com/tingban/tingban/internal/export"
	"github.com/tingban/tingban/pkg/engine"
	"github.com/tingban/tingban/pkg/logger"
	"github.com/tingban/tingban/pkg/model"
	"github.com/tingban/tingban/pkg/stats"
	"github.com/tingban/tingban/pkg/store"
)

var (
	flagRoster string
	flagStore  string
	flagOut    string
)

func main() {
	root := &cobra.Command{
		Use:   "tingban",
		Short: "听班排班命令行工具",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(logger.Config{Level: "warn", Format: "console"})
		},
	}
	root.PersistentFlags().StringVar(&flagRoster, "roster", "", "花名册，逗号分隔（默认取 ENGINE_ROSTER）")
	root.PersistentFlags().StringVar(&flagStore, "store", "", "存储文件路径（默认取 ENGINE_STORE_PATH）")

	generateCmd := &cobra.Command{
		Use:   "generate YYYY-MM",
		Short: "生成整月排班并写入存储",
		Args:  cobra.ExactArgs(1),
		RunE:  runGenerate,
	}

	exportCmd := &cobra.Command{
		Use:   "export YYYY-MM",
		Short: "把某月排班导出为 Excel 文件",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}
	exportCmd.Flags().StringVarP(&flagOut, "out", "o", "", "输出文件名（默认 tingban-YYYY-MM.xlsx）")

	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "列出内置规则及优先级",
		RunE:  runRules,
	}

	reportCmd := &cobra.Command{
		Use:   "report YYYY-MM",
		Short: "输出某月的公平性与覆盖统计",
		Args:  cobra.ExactArgs(1),
		RunE:  runReport,
	}

	root.AddCommand(generateCmd, exportCmd, rulesCmd, reportCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// parseYearMonth 解析 YYYY-MM 参数
func parseYearMonth(raw string) (int, time.Month, error) {
	parts := strings.SplitN(raw, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("月份格式应为 YYYY-MM: %s", raw)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("年份无效: %s", parts[0])
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("月份无效: %s", parts[1])
	}
	return year, time.Month(month), nil
}

// setup 加载配置并按命令行参数覆盖
func setup() (*config.Config, model.Roster, *store.FileStore, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	roster := model.Roster(cfg.Engine.Roster)
	if flagRoster != "" {
		roster = nil
		for _, name := range strings.Split(flagRoster, ",") {
			if name = strings.TrimSpace(name); name != "" {
				roster = append(roster, name)
			}
		}
	}

	path := cfg.Engine.StorePath
	if flagStore != "" {
		path = flagStore
	}
	fs, err := store.NewFileStore(path)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, roster, fs, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	year, month, err := parseYearMonth(args[0])
	if err != nil {
		return err
	}
	cfg, roster, fs, err := setup()
	if err != nil {
		return err
	}
	if len(roster) == 0 {
		return fmt.Errorf("花名册为空，请设置 --roster 或 ENGINE_ROSTER")
	}

	eng := engine.New()
	eng.SetMaxNodes(cfg.Engine.MaxNodes)

	weeks, err := eng.GenerateMonth(context.Background(), fs, year, month, roster)
	if err != nil {
		return err
	}

	for _, week := range weeks {
		status := "正常"
		if week.Metadata.Degraded {
			status = fmt.Sprintf("降级（%d 条违反）", len(week.Metadata.Violations))
		}
		fmt.Printf("%s  %s\n", week.WeekStart.Format("2006-01-02"), status)
	}
	fmt.Printf("共生成 %d 周\n", len(weeks))
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	year, month, err := parseYearMonth(args[0])
	if err != nil {
		return err
	}
	_, roster, fs, err := setup()
	if err != nil {
		return err
	}

	weeks, err := fs.MonthWeeks(context.Background(), year, month)
	if err != nil {
		return err
	}
	if len(weeks) == 0 {
		return fmt.Errorf("%d-%02d 没有已生成的排班", year, int(month))
	}
	if len(roster) == 0 {
		roster = rosterFromWeeks(weeks)
	}

	f, err := export.MonthExcel(weeks, roster)
	if err != nil {
		return err
	}

	out := flagOut
	if out == "" {
		out = fmt.Sprintf("tingban-%04d-%02d.xlsx", year, int(month))
	}
	if err := f.SaveAs(out); err != nil {
		return err
	}
	fmt.Printf("已导出 %s\n", out)
	return nil
}

// rosterFromWeeks 从已有排班里还原花名册（按姓名排序）
func rosterFromWeeks(weeks []*model.WeekAssignment) model.Roster {
	seen := map[string]bool{}
	var roster model.Roster
	for _, week := range weeks {
		for day := 0; day < model.DaysPerWeek; day++ {
			for emp := range week.Assignments[day] {
				if !seen[emp] {
					seen[emp] = true
					roster = append(roster, emp)
				}
			}
		}
	}
	sort.Strings(roster)
	return roster
}

func runRules(cmd *cobra.Command, args []string) error {
	eng := engine.New()
	fmt.Printf("%-4s %-10s %s\n", "序", "优先级", "规则")
	for i, info := range eng.Rules() {
		fmt.Printf("%-4d %-10d %s\n", i+1, info.Priority, info.Name)
	}
	return nil
}

func runReport(cmd *cobra.Command, args []string) error {
	year, month, err := parseYearMonth(args[0])
	if err != nil {
		return err
	}
	_, roster, fs, err := setup()
	if err != nil {
		return err
	}

	weeks, err := fs.MonthWeeks(context.Background(), year, month)
	if err != nil {
		return err
	}
	if len(weeks) == 0 {
		return fmt.Errorf("%d-%02d 没有已生成的排班", year, int(month))
	}
	if len(roster) == 0 {
		roster = rosterFromWeeks(weeks)
	}

	fairness := stats.NewFairnessAnalyzer().Analyze(weeks, roster)
	coverage := stats.NewCoverageAnalyzer().Analyze(weeks)

	fmt.Printf("%d-%02d 统计报告\n\n", year, int(month))
	fmt.Printf("覆盖率: %.1f%%（%d/%d 天）\n", coverage.OverallCoverage, coverage.CoveredDays, coverage.TotalDays)
	fmt.Printf("降级周数: %d，违反总数: %d\n", coverage.DegradedWeeks, coverage.TotalViolations)
	fmt.Printf("听班基尼系数: %.3f，周末基尼系数: %.3f\n", fairness.OnCallGini, fairness.WeekendGini)
	fmt.Printf("综合公平性评分: %.1f\n\n", fairness.OverallFairnessScore)

	fmt.Printf("%-10s %-6s %-6s %-6s %-6s\n", "员工", "听班", "周末", "休息", "白班")
	for _, s := range fairness.EmployeeStats {
		fmt.Printf("%-10s %-6d %-6d %-6d %-6d\n", s.Employee, s.OnCallDays, s.WeekendCalls, s.RestDays, s.WorkDays)
	}
	return nil
}
