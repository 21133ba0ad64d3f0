// Package repository 提供数据访问层
package repository

import (
	"context"
	"database/sql"

	"github.com/tingban/tingban/internal/database"
)

// DB 数据库接口，*database.DB 满足
type DB interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	Transaction(ctx context.Context, fn func(tx database.Execer) error) error
}

// Scanner 行扫描接口
type Scanner interface {
	Scan(dest ...interface{}) error
}
