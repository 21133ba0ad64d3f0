// Package store 提供周排班的持久化实现
package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	apperrors "github.com/tingban/tingban/pkg/errors"
	"github.com/tingban/tingban/pkg/model"
)

// dateKey 存储键使用的日期格式
const dateKey = "2006-01-02"

// FileStore 单文件 JSON 存储：周一日期 → 周排班。
// 每次操作整读整写，适合小团队的数据量；并发访问由互斥锁串行化。
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore 创建文件存储，父目录不存在时自动创建
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, apperrors.StorageError("mkdir", err)
	}
	return &FileStore{path: path}, nil
}

// load 读入全部数据，文件不存在视为空库
func (s *FileStore) load() (map[string]*model.WeekAssignment, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]*model.WeekAssignment{}, nil
		}
		return nil, apperrors.StorageError("read", err)
	}
	out := map[string]*model.WeekAssignment{}
	if len(data) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, apperrors.StorageError("decode", err)
	}
	return out, nil
}

// flush 先写临时文件再改名，避免写一半留下坏文件
func (s *FileStore) flush(weeks map[string]*model.WeekAssignment) error {
	data, err := json.MarshalIndent(weeks, "", "  ")
	if err != nil {
		return apperrors.StorageError("encode", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return apperrors.StorageError("write", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return apperrors.StorageError("rename", err)
	}
	return nil
}

// SaveWeek 保存一周排班，同一周一的旧数据被覆盖
func (s *FileStore) SaveWeek(ctx context.Context, week *model.WeekAssignment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	weeks, err := s.load()
	if err != nil {
		return err
	}
	weeks[week.WeekStart.Format(dateKey)] = week
	return s.flush(weeks)
}

// LoadWeek 加载某周排班，不存在时返回未找到错误
func (s *FileStore) LoadWeek(ctx context.Context, weekStart time.Time) (*model.WeekAssignment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	weeks, err := s.load()
	if err != nil {
		return nil, err
	}
	week, ok := weeks[weekStart.Format(dateKey)]
	if !ok {
		return nil, apperrors.NotFound("周排班", weekStart.Format(dateKey))
	}
	return week, nil
}

// LoadPreviousWeeks 返回 before 之前最近的至多 limit 周（最近优先）
func (s *FileStore) LoadPreviousWeeks(ctx context.Context, before time.Time, limit int) (model.History, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	weeks, err := s.load()
	if err != nil {
		return nil, err
	}

	var starts []string
	for key := range weeks {
		t, err := time.Parse(dateKey, key)
		if err != nil {
			continue
		}
		if t.Before(before) {
			starts = append(starts, key)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(starts)))
	if limit > 0 && len(starts) > limit {
		starts = starts[:limit]
	}

	history := make(model.History, 0, len(starts))
	for _, key := range starts {
		history = append(history, weeks[key])
	}
	return history, nil
}

// MonthWeeks 返回周一落在某月内的全部排班（按日期升序）
func (s *FileStore) MonthWeeks(ctx context.Context, year int, month time.Month) ([]*model.WeekAssignment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	weeks, err := s.load()
	if err != nil {
		return nil, err
	}

	var keys []string
	for key := range weeks {
		t, err := time.Parse(dateKey, key)
		if err != nil {
			continue
		}
		if t.Year() == year && t.Month() == month {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	out := make([]*model.WeekAssignment, 0, len(keys))
	for _, key := range keys {
		out = append(out, weeks[key])
	}
	return out, nil
}

// DeleteWeek 删除某周排班，返回是否存在
func (s *FileStore) DeleteWeek(ctx context.Context, weekStart time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	weeks, err := s.load()
	if err != nil {
		return false, err
	}
	key := weekStart.Format(dateKey)
	if _, ok := weeks[key]; !ok {
		return false, nil
	}
	delete(weeks, key)
	return true, s.flush(weeks)
}

// ClearAll 清空全部数据
func (s *FileStore) ClearAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flush(map[string]*model.WeekAssignment{})
}

// Backup 把当前数据复制到指定路径
func (s *FileStore) Backup(ctx context.Context, dest string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	weeks, err := s.load()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(weeks, "", "  ")
	if err != nil {
		return apperrors.StorageError("encode", err)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return apperrors.StorageError("backup", err)
	}
	return nil
}

// Restore 用备份文件整体替换当前数据
func (s *FileStore) Restore(ctx context.Context, src string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(src)
	if err != nil {
		return apperrors.StorageError("restore", err)
	}
	weeks := map[string]*model.WeekAssignment{}
	if err := json.Unmarshal(data, &weeks); err != nil {
		return apperrors.StorageError("decode", err)
	}
	return s.flush(weeks)
}
