package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ogurasousui/hrms-lite/internal/adapters/http/handler"
	"github.com/ogurasousui/hrms-lite/internal/core/attendance"
	"github.com/ogurasousui/hrms-lite/internal/core/dashboard"
	"github.com/ogurasousui/hrms-lite/internal/core/employee"
)

const shutdownTimeout = 10 * time.Second

// Dependencies はサーバー構築に必要なユースケース群です。
type Dependencies struct {
	Employees  employee.UseCase
	Attendance attendance.UseCase
	Dashboard  dashboard.UseCase
	DB         handler.Pinger
	Logger     *logrus.Logger
}

// Server は HTTP サーバーのライフサイクルを管理します。
type Server struct {
	listenAddr string
	httpServer *http.Server
}

// New は指定されたアドレスで待ち受ける HTTP サーバーを構築します。
func New(listenAddr string, deps Dependencies) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestID())
	if deps.Logger != nil {
		engine.Use(RequestLogger(deps.Logger))
	}
	engine.Use(cors.New(corsConfig()))

	registerRoutes(engine, deps)

	return &Server{
		listenAddr: listenAddr,
		httpServer: &http.Server{
			Addr:    listenAddr,
			Handler: engine,
		},
	}
}

func corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowAllOrigins = true
	cfg.AllowHeaders = append(cfg.AllowHeaders, requestIDHeader)
	return cfg
}

func registerRoutes(engine *gin.Engine, deps Dependencies) {
	system := handler.NewSystemHandler(deps.DB)
	engine.GET("/", system.Root)
	engine.GET("/healthz", system.Health)

	employees := handler.NewEmployeeHandler(deps.Employees)
	employeeGroup := engine.Group("/api/employees")
	employeeGroup.GET("", employees.List)
	employeeGroup.POST("", employees.Create)
	employeeGroup.GET("/:employee_id", employees.Get)
	employeeGroup.DELETE("/:employee_id", employees.Delete)

	att := handler.NewAttendanceHandler(deps.Attendance)
	attendanceGroup := engine.Group("/api/attendance")
	attendanceGroup.POST("", att.Mark)
	attendanceGroup.GET("", att.List)
	attendanceGroup.GET("/export", att.Export)
	attendanceGroup.GET("/employee/:employee_id", att.ListByEmployee)
	attendanceGroup.GET("/present-count/:employee_id", att.PresentCount)

	engine.GET("/api/dashboard", handler.NewDashboardHandler(deps.Dashboard).Stats)
}

// Run はサーバーを起動し、コンテキストがキャンセルされると Shutdown します。
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("serve HTTP on %s: %w", s.listenAddr, err)
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown HTTP server: %w", err)
	}

	return <-errCh
}
