package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"

	appErr "github.com/iac-studio/projects/pkg/errors"
	"gorm.io/gorm"
)

// BaseRepository defines common write operations.
type BaseRepository[T any] interface {
	Create(ctx context.Context, obj *T) error
}

type baseRepository[T any] struct {
	db *gorm.DB
}

func NewBaseRepository[T any](db *gorm.DB) BaseRepository[T] {
	return &baseRepository[T]{db: db}
}

func (r *baseRepository[T]) Create(ctx context.Context, obj *T) error {
	if err := r.db.WithContext(ctx).Create(obj).Error; err != nil {
		return wrapDBError(r.db, err, "create entity failed")
	}
	return nil
}

// wrapDBError tags connectivity failures as unavailable and everything else
// as internal. The driver name rides along as metadata for the logs.
func wrapDBError(db *gorm.DB, err error, msg string) *appErr.AppError {
	code := appErr.CodeInternal
	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || errors.As(err, &netErr) {
		code = appErr.CodeUnavailable
	}
	return appErr.Wrap(err, code, msg).WithMeta("driver", db.Dialector.Name())
}
