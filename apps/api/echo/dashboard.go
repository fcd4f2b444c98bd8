package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core/admission"
	"github.com/trezcool/elimu/core/fee"
	"github.com/trezcool/elimu/core/student"
	"github.com/trezcool/elimu/core/teacher"
)

type dashboardApi struct {
	studentSvc   *student.Service
	teacherSvc   *teacher.Service
	admissionSvc *admission.Service
	feeSvc       *fee.Service
}

func registerDashboardAPI(g *echo.Group, deps ServerDeps) {
	api := dashboardApi{
		studentSvc:   deps.StudentSvc,
		teacherSvc:   deps.TeacherSvc,
		admissionSvc: deps.AdmissionSvc,
		feeSvc:       deps.FeeSvc,
	}
	g.GET("/dashboard", api.stats)
}

type dashboardStats struct {
	StudentCount      int       `json:"student_count"`
	TeacherCount      int       `json:"teacher_count"`
	PendingAdmissions int       `json:"pending_admissions"`
	Fees              fee.Stats `json:"fees"`
}

func (api *dashboardApi) stats(ctx echo.Context) error {
	rctx := ctx.Request().Context()

	students, err := api.studentSvc.List(rctx)
	if err != nil {
		return errors.Wrap(err, "counting students")
	}
	teachers, err := api.teacherSvc.List(rctx)
	if err != nil {
		return errors.Wrap(err, "counting teachers")
	}
	admissions, err := api.admissionSvc.List(rctx)
	if err != nil {
		return errors.Wrap(err, "counting admissions")
	}
	feeStats, err := api.feeSvc.Stats(rctx, time.Now().UTC())
	if err != nil {
		return errors.Wrap(err, "computing fee stats")
	}

	stats := dashboardStats{
		StudentCount: len(students),
		TeacherCount: len(teachers),
		Fees:         feeStats,
	}
	for _, adm := range admissions {
		if adm.Status == admission.StatusPending {
			stats.PendingAdmissions++
		}
	}
	return ctx.JSON(http.StatusOK, stats)
}
