package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pinger はデータベース接続の生存確認を表します。pgxpool.Pool が満たします。
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler はルートバナーとヘルスチェックの HTTP 実装です。
type SystemHandler struct {
	db Pinger
}

// NewSystemHandler は SystemHandler を生成します。
func NewSystemHandler(db Pinger) *SystemHandler {
	return &SystemHandler{db: db}
}

// Root はサービスの稼働バナーを返します。
func (h *SystemHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "HRMS Lite API is running",
		"version": "1.0.0",
	})
}

// Health はデータベース接続を確認し、疎通できなければ 503 を返します。
func (h *SystemHandler) Health(c *gin.Context) {
	if h.db != nil {
		if err := h.db.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
