package dashboard

import (
	"context"
	"time"

	"github.com/ogurasousui/hrms-lite/internal/core/attendance"
)

// Clock は現在時刻を提供します。"今日" の判定はサーバーローカルの
// カレンダー日付で行います。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// EmployeeCounter は社員数の集計ポートです。
type EmployeeCounter interface {
	Count(ctx context.Context) (int64, error)
}

// AttendanceCounter は日付・ステータス別の勤怠集計ポートです。
type AttendanceCounter interface {
	CountByDateAndStatus(ctx context.Context, date time.Time, status attendance.Status) (int64, error)
}

// Stats はダッシュボードの集計結果です。
type Stats struct {
	TotalEmployees int64
	PresentToday   int64
	AbsentToday    int64
}

// Service はダッシュボード集計のユースケースです。
type Service struct {
	employees  EmployeeCounter
	attendance AttendanceCounter
	clock      Clock
	tx         TransactionManager
}

// UseCase はダッシュボードユースケースの公開インターフェースです。
type UseCase interface {
	Stats(ctx context.Context) (*Stats, error)
}

// NewService は Service を生成します。
func NewService(employees EmployeeCounter, att AttendanceCounter, clock Clock, tx TransactionManager) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{employees: employees, attendance: att, clock: clock, tx: tx}
}

// Stats は総社員数と当日の出欠数を返します。3 つのカウントは独立した
// クエリとして実行します。
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	now := s.clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var stats Stats
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		total, err := s.employees.Count(txCtx)
		if err != nil {
			return err
		}

		present, err := s.attendance.CountByDateAndStatus(txCtx, today, attendance.StatusPresent)
		if err != nil {
			return err
		}

		absent, err := s.attendance.CountByDateAndStatus(txCtx, today, attendance.StatusAbsent)
		if err != nil {
			return err
		}

		stats = Stats{TotalEmployees: total, PresentToday: present, AbsentToday: absent}
		return nil
	}); err != nil {
		return nil, err
	}

	return &stats, nil
}
