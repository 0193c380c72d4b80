package postgres

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/hrms-lite/internal/core/attendance"
	pgdb "github.com/ogurasousui/hrms-lite/internal/platform/db/postgres"
)

// AttendanceRepository は PostgreSQL を利用した勤怠永続化の実装です。
type AttendanceRepository struct {
	pool pgdb.Queryer
}

// NewAttendanceRepository は AttendanceRepository を生成します。
func NewAttendanceRepository(pool pgdb.Queryer) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// Upsert は (employee_id, date) の一意インデックスを前提に、1 文で
// insert-or-update を行います。既存行がある場合はステータスのみ上書きします。
func (r *AttendanceRepository) Upsert(ctx context.Context, record *attendance.Record) (*attendance.Record, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO attendance (employee_id, date, status)
        VALUES ($1, $2, $3)
        ON CONFLICT (employee_id, date)
        DO UPDATE SET status = EXCLUDED.status
        RETURNING id, employee_id, date, status
    `,
		record.EmployeeID,
		record.Date,
		string(record.Status),
	)

	upserted, err := scanAttendance(row)
	if err != nil {
		return nil, err
	}
	return upserted, nil
}

// ListByEmployee は指定社員の勤怠を日付降順で取得します。
func (r *AttendanceRepository) ListByEmployee(ctx context.Context, employeeID string, date *time.Time) ([]*attendance.Record, error) {
	args := []any{employeeID}
	query := `
        SELECT id, employee_id, date, status
          FROM attendance
         WHERE employee_id = $1`

	if date != nil {
		args = append(args, *date)
		query += ` AND date = $` + strconv.Itoa(len(args))
	}

	query += `
         ORDER BY date DESC, id DESC
    `

	return r.queryRecords(ctx, query, args...)
}

// List は全社員の勤怠を日付降順で取得します。
func (r *AttendanceRepository) List(ctx context.Context, date *time.Time) ([]*attendance.Record, error) {
	args := make([]any, 0, 1)
	query := `
        SELECT id, employee_id, date, status
          FROM attendance`

	if date != nil {
		args = append(args, *date)
		query += `
         WHERE date = $1`
	}

	query += `
         ORDER BY date DESC, id DESC
    `

	return r.queryRecords(ctx, query, args...)
}

// CountByEmployeeAndStatus は社員・ステータス別のレコード数を返します。
func (r *AttendanceRepository) CountByEmployeeAndStatus(ctx context.Context, employeeID string, status attendance.Status) (int64, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT COUNT(*) FROM attendance WHERE employee_id = $1 AND status = $2
    `, employeeID, string(status))

	var count int64
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// CountByDateAndStatus は日付・ステータス別のレコード数を返します。
func (r *AttendanceRepository) CountByDateAndStatus(ctx context.Context, date time.Time, status attendance.Status) (int64, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT COUNT(*) FROM attendance WHERE date = $1 AND status = $2
    `, date, string(status))

	var count int64
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *AttendanceRepository) queryRecords(ctx context.Context, query string, args ...any) ([]*attendance.Record, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*attendance.Record, 0)
	for rows.Next() {
		record, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func scanAttendance(row pgx.Row) (*attendance.Record, error) {
	var (
		id         int64
		employeeID string
		day        time.Time
		status     string
	)

	if err := row.Scan(&id, &employeeID, &day, &status); err != nil {
		return nil, err
	}

	normalized := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	return &attendance.Record{
		ID:         id,
		EmployeeID: employeeID,
		Date:       normalized,
		Status:     attendance.Status(status),
	}, nil
}
