package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ogurasousui/hrms-lite/internal/core/employee"
)

// EmployeeHandler は社員 API の HTTP 実装です。
type EmployeeHandler struct {
	svc employee.UseCase
}

// NewEmployeeHandler は EmployeeHandler を生成します。
func NewEmployeeHandler(svc employee.UseCase) *EmployeeHandler {
	return &EmployeeHandler{svc: svc}
}

type createEmployeeRequest struct {
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

type employeeResponse struct {
	ID         int64  `json:"id"`
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

// List は全社員を返します。
func (h *EmployeeHandler) List(c *gin.Context) {
	employees, err := h.svc.ListEmployees(c.Request.Context())
	if err != nil {
		respondError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, toEmployeeResponses(employees))
}

// Get は社員 ID で社員を返します。
func (h *EmployeeHandler) Get(c *gin.Context) {
	employeeID := c.Param("employee_id")

	found, err := h.svc.GetEmployee(c.Request.Context(), employee.GetEmployeeInput{EmployeeID: employeeID})
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			respondError(c, err, fmt.Sprintf("Employee with ID '%s' not found", employeeID))
			return
		}
		respondError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, toEmployeeResponse(found))
}

// Create は社員を登録します。
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req createEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.svc.CreateEmployee(c.Request.Context(), employee.CreateEmployeeInput{
		EmployeeID: req.EmployeeID,
		FullName:   req.FullName,
		Email:      req.Email,
		Department: req.Department,
	})
	if err != nil {
		switch {
		case errors.Is(err, employee.ErrEmployeeIDAlreadyExists):
			respondError(c, err, fmt.Sprintf("Employee with ID '%s' already exists", req.EmployeeID))
		case errors.Is(err, employee.ErrEmailAlreadyExists):
			respondError(c, err, fmt.Sprintf("Employee with email '%s' already exists", req.Email))
		default:
			respondError(c, err, "")
		}
		return
	}

	c.JSON(http.StatusCreated, toEmployeeResponse(created))
}

// Delete は社員を削除します。勤怠レコードは残ります。
func (h *EmployeeHandler) Delete(c *gin.Context) {
	employeeID := c.Param("employee_id")

	if err := h.svc.DeleteEmployee(c.Request.Context(), employee.DeleteEmployeeInput{EmployeeID: employeeID}); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			respondError(c, err, fmt.Sprintf("Employee with ID '%s' not found", employeeID))
			return
		}
		respondError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Employee '%s' deleted successfully", employeeID)})
}

func toEmployeeResponse(e *employee.Employee) employeeResponse {
	return employeeResponse{
		ID:         e.ID,
		EmployeeID: e.EmployeeID,
		FullName:   e.FullName,
		Email:      e.Email,
		Department: e.Department,
	}
}

func toEmployeeResponses(employees []*employee.Employee) []employeeResponse {
	responses := make([]employeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, toEmployeeResponse(e))
	}
	return responses
}
