package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/buckneer/CheckMateV2/config"
	"github.com/buckneer/CheckMateV2/handlers"
	"github.com/buckneer/CheckMateV2/middlewares"
)

// Register wires all HTTP routes.
func Register(e *echo.Echo, cfg *config.Config) {
	// ===== Handlers (shared singletons) =====
	auth := handlers.NewAuthHandler(cfg)
	sub := handlers.NewSubjectHandler()
	std := handlers.NewStudentHandler()
	enr := handlers.NewEnrollmentHandler(cfg.StrictOwnership)
	cls := handlers.NewClassHandler()
	att := handlers.NewAttendanceHandler()
	rep := handlers.NewReportHandler()

	// ===== Public =====
	e.GET("/health", handlers.Health)
	e.POST("/register", auth.Register)
	e.POST("/login", auth.Login)

	authMW := middlewares.RequireAuth(cfg.JWTSecret)

	// ===== Protected =====
	api := e.Group("", authMW)

	api.GET("/subjects", sub.List)
	api.POST("/subjects", sub.Create)
	api.GET("/subjects/:id", sub.Get)

	api.GET("/students", std.List)
	api.POST("/students", std.Create)
	api.GET("/students/:id", std.Get)

	api.POST("/classes", cls.Create)
	api.GET("/subject/:id/classes", cls.ListForSubject)
	api.GET("/classes/:id", cls.GetAttendance)
	api.POST("/classes/:id/attendance", att.Mark)
	api.GET("/classes/:id/report", rep.SessionReport)

	api.GET("/attendance/report/subject", rep.SubjectReport)
	api.GET("/attendance/report/subject/export", rep.ExportSubjectReport)

	// Enrollment endpoints were public in the legacy system; strict mode
	// puts them behind auth and owner checks.
	if cfg.StrictOwnership {
		api.POST("/assign_student", enr.Assign)
		api.GET("/subject/:id/students", enr.SubjectRoster)
	} else {
		e.POST("/assign_student", enr.Assign)
		e.GET("/subject/:id/students", enr.SubjectRoster)
	}
}
