package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ogurasousui/hrms-lite/internal/core/dashboard"
)

// DashboardHandler はダッシュボード API の HTTP 実装です。
type DashboardHandler struct {
	svc dashboard.UseCase
}

// NewDashboardHandler は DashboardHandler を生成します。
func NewDashboardHandler(svc dashboard.UseCase) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

type dashboardResponse struct {
	TotalEmployees int64 `json:"total_employees"`
	PresentToday   int64 `json:"present_today"`
	AbsentToday    int64 `json:"absent_today"`
}

// Stats は総社員数と当日の出欠数を返します。
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, dashboardResponse{
		TotalEmployees: stats.TotalEmployees,
		PresentToday:   stats.PresentToday,
		AbsentToday:    stats.AbsentToday,
	})
}
