package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ogurasousui/hrms-lite/internal/core/attendance"
)

type stubClock struct {
	now time.Time
}

func (s *stubClock) Now() time.Time {
	return s.now
}

type stubEmployeeCounter struct {
	total int64
	err   error
}

func (s *stubEmployeeCounter) Count(_ context.Context) (int64, error) {
	return s.total, s.err
}

type stubAttendanceCounter struct {
	counts map[string]int64
	calls  []time.Time
}

func (s *stubAttendanceCounter) CountByDateAndStatus(_ context.Context, date time.Time, status attendance.Status) (int64, error) {
	s.calls = append(s.calls, date)
	return s.counts[date.Format("2006-01-02")+"/"+string(status)], nil
}

func TestService_Stats_CountsOnlyToday(t *testing.T) {
	t.Parallel()

	clk := &stubClock{now: time.Date(2024, 6, 10, 15, 30, 0, 0, time.Local)}
	att := &stubAttendanceCounter{counts: map[string]int64{
		"2024-06-10/Present": 4,
		"2024-06-10/Absent":  2,
		"2024-06-09/Present": 99,
	}}
	svc := NewService(&stubEmployeeCounter{total: 7}, att, clk, nil)

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}

	if stats.TotalEmployees != 7 {
		t.Errorf("expected total 7, got %d", stats.TotalEmployees)
	}
	if stats.PresentToday != 4 {
		t.Errorf("expected present today 4, got %d", stats.PresentToday)
	}
	if stats.AbsentToday != 2 {
		t.Errorf("expected absent today 2, got %d", stats.AbsentToday)
	}

	if len(att.calls) != 2 {
		t.Fatalf("expected two independent attendance counts, got %d", len(att.calls))
	}
	for _, call := range att.calls {
		if call.Hour() != 0 || call.Minute() != 0 {
			t.Fatalf("expected queries with a normalized calendar date, got %v", call)
		}
		if call.Format("2006-01-02") != "2024-06-10" {
			t.Fatalf("expected queries for the clock's local date, got %v", call)
		}
	}
}

func TestService_Stats_PropagatesError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("count failed")
	svc := NewService(&stubEmployeeCounter{err: wantErr}, &stubAttendanceCounter{counts: map[string]int64{}}, &stubClock{now: time.Now()}, nil)

	if _, err := svc.Stats(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("expected %v, got %v", wantErr, err)
	}
}
