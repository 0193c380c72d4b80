package employee

// Employee は社員エンティティです。
type Employee struct {
	ID         int64
	EmployeeID string
	FullName   string
	Email      string
	Department string
}
