package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/hrms-lite/internal/core/employee"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

type stubRow struct {
	scanFn func(dest ...interface{}) error
}

func (s stubRow) Scan(dest ...interface{}) error {
	return s.scanFn(dest...)
}

func TestScanEmployee_Success(t *testing.T) {
	t.Parallel()

	row := stubRow{scanFn: func(dest ...interface{}) error {
		if len(dest) != 5 {
			return errors.New("unexpected dest length")
		}
		*(dest[0].(*int64)) = 42
		*(dest[1].(*string)) = "EMP-001"
		*(dest[2].(*string)) = "Taro Yamada"
		*(dest[3].(*string)) = "taro@example.com"
		*(dest[4].(*string)) = "Engineering"
		return nil
	}}

	emp, err := scanEmployee(row)
	if err != nil {
		t.Fatalf("scanEmployee returned error: %v", err)
	}

	if emp.ID != 42 || emp.EmployeeID != "EMP-001" {
		t.Fatalf("unexpected employee: %+v", emp)
	}
	if emp.Email != "taro@example.com" || emp.Department != "Engineering" {
		t.Fatalf("unexpected fields: %+v", emp)
	}
}

func TestScanEmployee_NoRows(t *testing.T) {
	t.Parallel()

	row := stubRow{scanFn: func(dest ...interface{}) error {
		return pgx.ErrNoRows
	}}

	_, err := scanEmployee(row)
	if !errors.Is(err, employee.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestTranslateEmployeePgError(t *testing.T) {
	t.Parallel()

	idErr := &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: employeeIDConstraint}
	if !errors.Is(translateEmployeePgError(idErr), employee.ErrEmployeeIDAlreadyExists) {
		t.Fatalf("expected employee id unique violation to map to ErrEmployeeIDAlreadyExists")
	}

	emailErr := &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: employeeEmailConstraint}
	if !errors.Is(translateEmployeePgError(emailErr), employee.ErrEmailAlreadyExists) {
		t.Fatalf("expected email unique violation to map to ErrEmailAlreadyExists")
	}

	if !errors.Is(translateEmployeePgError(pgx.ErrNoRows), employee.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrNoRows to map to ErrEmployeeNotFound")
	}

	other := errors.New("other")
	if translateEmployeePgError(other) != other {
		t.Fatalf("unexpected translation for generic error")
	}
}

func TestEmployeeRepository_Create(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewEmployeeRepository(mock)

	query := regexp.QuoteMeta(`
        INSERT INTO employees (employee_id, full_name, email, department)
        VALUES ($1, $2, $3, $4)
        RETURNING id, employee_id, full_name, email, department
    `)

	rows := pgxmock.NewRows([]string{"id", "employee_id", "full_name", "email", "department"}).
		AddRow(int64(1), "EMP-001", "Taro Yamada", "taro@example.com", "Engineering")

	mock.ExpectQuery(query).
		WithArgs("EMP-001", "Taro Yamada", "taro@example.com", "Engineering").
		WillReturnRows(rows)

	created, err := repo.Create(context.Background(), &employee.Employee{
		EmployeeID: "EMP-001",
		FullName:   "Taro Yamada",
		Email:      "taro@example.com",
		Department: "Engineering",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if created.ID != 1 {
		t.Fatalf("expected assigned id 1, got %d", created.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_Delete_NotFound(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewEmployeeRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM employees WHERE employee_id = $1`)).
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	if err := repo.Delete(context.Background(), "missing"); !errors.Is(err, employee.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_ExistsByEmployeeID(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewEmployeeRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM employees WHERE employee_id = $1)`)).
		WithArgs("EMP-001").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByEmployeeID(context.Background(), "EMP-001")
	if err != nil {
		t.Fatalf("ExistsByEmployeeID returned error: %v", err)
	}
	if !exists {
		t.Fatalf("expected employee to exist")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_List(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewEmployeeRepository(mock)

	query := regexp.QuoteMeta(`
        SELECT id, employee_id, full_name, email, department
          FROM employees
         ORDER BY id ASC
    `)

	rows := pgxmock.NewRows([]string{"id", "employee_id", "full_name", "email", "department"}).
		AddRow(int64(1), "EMP-001", "Taro Yamada", "taro@example.com", "Engineering").
		AddRow(int64(2), "EMP-002", "Hanako Sato", "hanako@example.com", "Sales")

	mock.ExpectQuery(query).WillReturnRows(rows)

	employees, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	if len(employees) != 2 {
		t.Fatalf("expected 2 employees, got %d", len(employees))
	}
	if employees[0].ID != 1 || employees[1].ID != 2 {
		t.Fatalf("expected storage order, got %+v", employees)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
