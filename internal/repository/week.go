// Package repository 提供数据访问层
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tingban/tingban/internal/database"
	apperrors "github.com/tingban/tingban/pkg/errors"
	"github.com/tingban/tingban/pkg/model"
)

// WeekRepository 周排班仓储：整周序列化为 JSONB，周一日期作主键。
// 排班表结构稳定且整周读写，不值得拆成逐格的行。
type WeekRepository struct {
	db DB
}

// NewWeekRepository 创建周排班仓储
func NewWeekRepository(db DB) *WeekRepository {
	return &WeekRepository{db: db}
}

// EnsureSchema 建表与索引（幂等），两条语句在同一事务内执行，
// 避免留下建了表没建索引的半成品库
func (r *WeekRepository) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS duty_weeks (
			week_start DATE PRIMARY KEY,
			payload    JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_duty_weeks_start_desc
			ON duty_weeks (week_start DESC)`,
	}
	return r.db.Transaction(ctx, func(tx database.Execer) error {
		for _, stmt := range stmts {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("初始化排班表失败: %w", err)
			}
		}
		return nil
	})
}

// SaveWeek 保存一周排班，同一周一的旧数据被覆盖
func (r *WeekRepository) SaveWeek(ctx context.Context, week *model.WeekAssignment) error {
	payload, err := json.Marshal(week)
	if err != nil {
		return fmt.Errorf("序列化周排班失败: %w", err)
	}

	query := `
		INSERT INTO duty_weeks (week_start, payload, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (week_start) DO UPDATE
		SET payload = EXCLUDED.payload, updated_at = now()
	`
	if _, err := r.db.ExecContext(ctx, query, week.WeekStart.Format("2006-01-02"), payload); err != nil {
		return apperrors.StorageError("save_week", err)
	}
	return nil
}

// LoadWeek 加载某周排班，不存在时返回未找到错误
func (r *WeekRepository) LoadWeek(ctx context.Context, weekStart time.Time) (*model.WeekAssignment, error) {
	query := `SELECT payload FROM duty_weeks WHERE week_start = $1`
	row := r.db.QueryRowContext(ctx, query, weekStart.Format("2006-01-02"))

	week, err := scanWeek(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("周排班", weekStart.Format("2006-01-02"))
	}
	return week, err
}

// LoadPreviousWeeks 返回 before 之前最近的至多 limit 周（最近优先）
func (r *WeekRepository) LoadPreviousWeeks(ctx context.Context, before time.Time, limit int) (model.History, error) {
	query := `
		SELECT payload FROM duty_weeks
		WHERE week_start < $1
		ORDER BY week_start DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, before.Format("2006-01-02"), limit)
	if err != nil {
		return nil, apperrors.StorageError("load_previous_weeks", err)
	}
	defer rows.Close()

	var history model.History
	for rows.Next() {
		week, err := scanWeek(rows)
		if err != nil {
			return nil, err
		}
		history = append(history, week)
	}
	return history, rows.Err()
}

// MonthWeeks 返回周一落在某月内的全部排班（按日期升序）
func (r *WeekRepository) MonthWeeks(ctx context.Context, year int, month time.Month) ([]*model.WeekAssignment, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)

	query := `
		SELECT payload FROM duty_weeks
		WHERE week_start >= $1 AND week_start < $2
		ORDER BY week_start ASC
	`
	rows, err := r.db.QueryContext(ctx, query, first.Format("2006-01-02"), next.Format("2006-01-02"))
	if err != nil {
		return nil, apperrors.StorageError("month_weeks", err)
	}
	defer rows.Close()

	var out []*model.WeekAssignment
	for rows.Next() {
		week, err := scanWeek(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, week)
	}
	return out, rows.Err()
}

// DeleteWeek 删除某周排班，返回是否存在
func (r *WeekRepository) DeleteWeek(ctx context.Context, weekStart time.Time) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM duty_weeks WHERE week_start = $1`, weekStart.Format("2006-01-02"))
	if err != nil {
		return false, apperrors.StorageError("delete_week", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.StorageError("delete_week", err)
	}
	return n > 0, nil
}

// scanWeek 从单列 payload 反序列化周排班
func scanWeek(s Scanner) (*model.WeekAssignment, error) {
	var payload []byte
	if err := s.Scan(&payload); err != nil {
		return nil, err
	}
	week := &model.WeekAssignment{}
	if err := json.Unmarshal(payload, week); err != nil {
		return nil, fmt.Errorf("反序列化周排班失败: %w", err)
	}
	return week, nil
}
