package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/ogurasousui/hrms-lite/internal/core/attendance"
)

const dateLayout = "2006-01-02"

// AttendanceHandler は勤怠 API の HTTP 実装です。
type AttendanceHandler struct {
	svc attendance.UseCase
}

// NewAttendanceHandler は AttendanceHandler を生成します。
func NewAttendanceHandler(svc attendance.UseCase) *AttendanceHandler {
	return &AttendanceHandler{svc: svc}
}

type markAttendanceRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Status     string `json:"status"`
}

type attendanceResponse struct {
	ID         int64  `json:"id"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Status     string `json:"status"`
}

// Mark は勤怠を記録します。同じ社員・同じ日付の再記録はステータスの
// 上書きになります。
func (h *AttendanceHandler) Mark(c *gin.Context) {
	var req markAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid request body"})
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "date: invalid format, expected YYYY-MM-DD"})
		return
	}

	status, err := attendance.ParseStatus(req.Status)
	if err != nil {
		respondError(c, err, "Status must be 'Present' or 'Absent'")
		return
	}

	record, err := h.svc.Mark(c.Request.Context(), attendance.MarkInput{
		EmployeeID: req.EmployeeID,
		Date:       date,
		Status:     status,
	})
	if err != nil {
		if errors.Is(err, attendance.ErrEmployeeNotFound) {
			respondError(c, err, fmt.Sprintf("Employee with ID '%s' not found", req.EmployeeID))
			return
		}
		respondError(c, err, "")
		return
	}

	c.JSON(http.StatusCreated, toAttendanceResponse(record))
}

// ListByEmployee は指定社員の勤怠を新しい日付から順に返します。
func (h *AttendanceHandler) ListByEmployee(c *gin.Context) {
	employeeID := c.Param("employee_id")

	date, ok := dateQueryParam(c)
	if !ok {
		return
	}

	records, err := h.svc.ListByEmployee(c.Request.Context(), attendance.ListByEmployeeInput{
		EmployeeID: employeeID,
		Date:       date,
	})
	if err != nil {
		if errors.Is(err, attendance.ErrEmployeeNotFound) {
			respondError(c, err, fmt.Sprintf("Employee with ID '%s' not found", employeeID))
			return
		}
		respondError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, toAttendanceResponses(records))
}

// List は全社員の勤怠を新しい日付から順に返します。
func (h *AttendanceHandler) List(c *gin.Context) {
	date, ok := dateQueryParam(c)
	if !ok {
		return
	}

	records, err := h.svc.List(c.Request.Context(), attendance.ListInput{Date: date})
	if err != nil {
		respondError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, toAttendanceResponses(records))
}

// PresentCount は指定社員の出勤日数を返します。
func (h *AttendanceHandler) PresentCount(c *gin.Context) {
	employeeID := c.Param("employee_id")

	count, err := h.svc.PresentCount(c.Request.Context(), attendance.PresentCountInput{EmployeeID: employeeID})
	if err != nil {
		if errors.Is(err, attendance.ErrEmployeeNotFound) {
			respondError(c, err, fmt.Sprintf("Employee with ID '%s' not found", employeeID))
			return
		}
		respondError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"employee_id":  employeeID,
		"present_days": count,
	})
}

// Export は勤怠一覧を Excel ファイルとしてダウンロードさせます。
// date クエリで 1 日分に絞り込めます。
func (h *AttendanceHandler) Export(c *gin.Context) {
	date, ok := dateQueryParam(c)
	if !ok {
		return
	}

	records, err := h.svc.List(c.Request.Context(), attendance.ListInput{Date: date})
	if err != nil {
		respondError(c, err, "")
		return
	}

	file := excelize.NewFile()
	defer file.Close()

	sheet := "Attendance"
	index, err := file.NewSheet(sheet)
	if err != nil {
		respondError(c, err, "failed to build export file")
		return
	}
	file.SetActiveSheet(index)
	file.DeleteSheet("Sheet1")

	headers := []string{"No", "Employee ID", "Date", "Status"}
	for i, title := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		file.SetCellValue(sheet, cell, title)
	}

	for i, record := range records {
		row := i + 2
		file.SetCellValue(sheet, fmt.Sprintf("A%d", row), i+1)
		file.SetCellValue(sheet, fmt.Sprintf("B%d", row), record.EmployeeID)
		file.SetCellValue(sheet, fmt.Sprintf("C%d", row), record.Date.Format(dateLayout))
		file.SetCellValue(sheet, fmt.Sprintf("D%d", row), string(record.Status))
	}

	filename := fmt.Sprintf("attendance_%s.xlsx", time.Now().Format(dateLayout))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := file.Write(c.Writer); err != nil {
		respondError(c, err, "failed to write export file")
		return
	}
}

// dateQueryParam は date クエリパラメータを読み取ります。不正な形式なら
// 422 を書き込み false を返します。
func dateQueryParam(c *gin.Context) (*time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return nil, true
	}

	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "date: invalid format, expected YYYY-MM-DD"})
		return nil, false
	}
	return &date, true
}

func toAttendanceResponse(r *attendance.Record) attendanceResponse {
	return attendanceResponse{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		Date:       r.Date.Format(dateLayout),
		Status:     string(r.Status),
	}
}

func toAttendanceResponses(records []*attendance.Record) []attendanceResponse {
	responses := make([]attendanceResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, toAttendanceResponse(r))
	}
	return responses
}
