package attendance

import (
	"context"
	"strings"
	"time"
)

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

// Service は勤怠台帳に関するユースケースをまとめます。
type Service struct {
	repo      Repository
	directory Directory
	tx        TransactionManager
}

// UseCase は勤怠ユースケースの公開インターフェースです。
type UseCase interface {
	Mark(ctx context.Context, in MarkInput) (*Record, error)
	ListByEmployee(ctx context.Context, in ListByEmployeeInput) ([]*Record, error)
	List(ctx context.Context, in ListInput) ([]*Record, error)
	PresentCount(ctx context.Context, in PresentCountInput) (int64, error)
}

// NewService は Service を生成します。
func NewService(repo Repository, directory Directory, tx TransactionManager) *Service {
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, directory: directory, tx: tx}
}

// MarkInput は勤怠記録時の入力です。
type MarkInput struct {
	EmployeeID string
	Date       time.Time
	Status     Status
}

// ListByEmployeeInput は社員別一覧取得の入力です。Date を指定すると
// その日付のレコードだけに絞り込みます。
type ListByEmployeeInput struct {
	EmployeeID string
	Date       *time.Time
}

// ListInput は全件一覧取得の入力です。
type ListInput struct {
	Date *time.Time
}

// PresentCountInput は出勤日数集計の入力です。
type PresentCountInput struct {
	EmployeeID string
}

// Mark は (社員, 日付) に対する勤怠を記録します。既存レコードがあれば
// ステータスだけを上書きし、なければ新規作成します。書き込みはリポジトリの
// 原子的な upsert 1 回で行われます。
func (s *Service) Mark(ctx context.Context, in MarkInput) (*Record, error) {
	employeeID, err := normalizeEmployeeID(in.EmployeeID)
	if err != nil {
		return nil, err
	}

	if in.Date.IsZero() {
		return nil, ErrInvalidDate
	}
	date := normalizeDate(in.Date)

	if !isValidStatus(in.Status) {
		return nil, ErrInvalidStatus
	}

	var marked *Record
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		if err := s.ensureEmployeeExists(txCtx, employeeID); err != nil {
			return err
		}

		result, err := s.repo.Upsert(txCtx, &Record{
			EmployeeID: employeeID,
			Date:       date,
			Status:     in.Status,
		})
		if err != nil {
			return err
		}

		marked = result
		return nil
	}); err != nil {
		return nil, err
	}

	return marked, nil
}

// ListByEmployee は指定社員の勤怠レコードを日付降順で取得します。
func (s *Service) ListByEmployee(ctx context.Context, in ListByEmployeeInput) ([]*Record, error) {
	employeeID, err := normalizeEmployeeID(in.EmployeeID)
	if err != nil {
		return nil, err
	}

	date := normalizeDatePtr(in.Date)

	var records []*Record
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		if err := s.ensureEmployeeExists(txCtx, employeeID); err != nil {
			return err
		}

		result, err := s.repo.ListByEmployee(txCtx, employeeID, date)
		if err != nil {
			return err
		}
		records = result
		return nil
	}); err != nil {
		return nil, err
	}

	return records, nil
}

// List は全社員の勤怠レコードを日付降順で取得します。社員の存在確認は
// 行わないため、削除済み社員の残存レコードもここから参照できます。
func (s *Service) List(ctx context.Context, in ListInput) ([]*Record, error) {
	date := normalizeDatePtr(in.Date)

	var records []*Record
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.List(txCtx, date)
		if err != nil {
			return err
		}
		records = result
		return nil
	}); err != nil {
		return nil, err
	}

	return records, nil
}

// PresentCount は指定社員の Present レコード数を返します。
func (s *Service) PresentCount(ctx context.Context, in PresentCountInput) (int64, error) {
	employeeID, err := normalizeEmployeeID(in.EmployeeID)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		if err := s.ensureEmployeeExists(txCtx, employeeID); err != nil {
			return err
		}

		result, err := s.repo.CountByEmployeeAndStatus(txCtx, employeeID, StatusPresent)
		if err != nil {
			return err
		}
		count = result
		return nil
	}); err != nil {
		return 0, err
	}

	return count, nil
}

func (s *Service) ensureEmployeeExists(ctx context.Context, employeeID string) error {
	exists, err := s.directory.ExistsByEmployeeID(ctx, employeeID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrEmployeeNotFound
	}
	return nil
}

func normalizeEmployeeID(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidEmployeeID
	}
	return trimmed, nil
}

func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func normalizeDatePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	normalized := normalizeDate(*t)
	return &normalized
}

func isValidStatus(status Status) bool {
	switch status {
	case StatusPresent, StatusAbsent:
		return true
	default:
		return false
	}
}
