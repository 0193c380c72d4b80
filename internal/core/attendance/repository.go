package attendance

import (
	"context"
	"time"
)

// Repository は勤怠永続化の抽象です。Upsert は 1 文で完結する原子的な
// insert-or-update として実装されることを期待します。
type Repository interface {
	Upsert(ctx context.Context, record *Record) (*Record, error)
	ListByEmployee(ctx context.Context, employeeID string, date *time.Time) ([]*Record, error)
	List(ctx context.Context, date *time.Time) ([]*Record, error)
	CountByEmployeeAndStatus(ctx context.Context, employeeID string, status Status) (int64, error)
	CountByDateAndStatus(ctx context.Context, date time.Time, status Status) (int64, error)
}

// Directory は社員の存在確認に使う参照ポートです。
type Directory interface {
	ExistsByEmployeeID(ctx context.Context, employeeID string) (bool, error)
}
