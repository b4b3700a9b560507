package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/rishebss/fifac-backend/attendance"
	"github.com/rishebss/fifac-backend/config"
	"github.com/rishebss/fifac-backend/database"
	"github.com/rishebss/fifac-backend/handlers"
	"github.com/rishebss/fifac-backend/logger"
	"github.com/rishebss/fifac-backend/middlewares"
)

// Register wires all HTTP routes.
func Register(e *echo.Echo, cfg *config.Config) {
	// ===== Handlers (shared singletons) =====
	auth := handlers.NewAuthHandler(cfg)
	leads := handlers.NewLeadHandler()
	std := handlers.NewStudentHandler()
	pay := handlers.NewPaymentHandler()
	dash := handlers.NewDashboardHandler()

	reconciler := attendance.NewReconciler(attendance.NewGormStore(database.DB), logger.Get())
	att := handlers.NewAttendanceHandler(reconciler)

	// ===== Public =====
	e.GET("/health", handlers.Health)
	e.GET("/ready", handlers.Ready)
	e.POST("/auth/login", auth.Login)

	// ===== Protected =====
	authMW := middlewares.RequireAuth(cfg.JWTSecret)
	api := e.Group("", authMW)

	api.PUT("/auth/password", auth.ChangePassword)

	api.GET("/leads", leads.List)
	api.POST("/leads", leads.Create)
	api.GET("/leads/:id", leads.Get)
	api.PUT("/leads/:id", leads.Update)
	api.DELETE("/leads/:id", leads.Delete)
	api.POST("/leads/:id/convert", leads.Convert)

	api.GET("/students", std.List)
	api.POST("/students", std.Create)
	api.GET("/students/:id", std.Get)
	api.PUT("/students/:id", std.Update)
	api.DELETE("/students/:id", std.Delete)

	api.GET("/attendance", att.List)
	api.POST("/attendance", att.Mark)
	api.DELETE("/attendance/:id", att.Delete)
	api.GET("/attendance/student/:id", att.ListByStudent)
	api.GET("/attendance/student/:id/summary", att.Summary)
	// bulk monthly cleanup stays admin-only
	api.DELETE("/attendance/student/:id/month", att.DeleteMonth, middlewares.RequireRole("admin"))

	api.GET("/payments", pay.List)
	api.POST("/payments", pay.Create)
	api.GET("/payments/summary", pay.MonthSummary)
	api.GET("/payments/:id", pay.Get)
	api.PUT("/payments/:id", pay.Update)
	api.DELETE("/payments/:id", pay.Delete)

	api.GET("/dashboard/overview", dash.Overview)
}
