package attendance

import (
	"strings"
	"time"
)

// Status は勤怠ステータスを表します。
type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
)

// ParseStatus は文字列表現を Status に変換します。
func ParseStatus(raw string) (Status, error) {
	switch Status(strings.TrimSpace(raw)) {
	case StatusPresent:
		return StatusPresent, nil
	case StatusAbsent:
		return StatusAbsent, nil
	default:
		return "", ErrInvalidStatus
	}
}

// Record は社員 1 名・1 日分の勤怠レコードです。Date は時刻成分を持たない
// カレンダー日付として扱い、UTC 深夜 0 時に正規化して保持します。
type Record struct {
	ID         int64
	EmployeeID string
	Date       time.Time
	Status     Status
}
