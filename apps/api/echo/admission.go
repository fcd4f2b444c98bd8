package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core/admission"
)

type admissionApi struct {
	svc      *admission.Service
	validate *validator.Validate
}

func registerAdmissionAPI(g *echo.Group, deps ServerDeps) {
	api := admissionApi{
		svc:      deps.AdmissionSvc,
		validate: deps.Validate,
	}

	ag := g.Group("/admissions")
	ag.GET("", api.list)
	ag.GET("/:id", api.retrieve)
	ag.PUT("/:id/status", api.updateStatus)
	ag.DELETE("/:id", api.destroy)
}

// Handlers

func (api *admissionApi) list(ctx echo.Context) error {
	adms, err := api.svc.List(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing admissions")
	}
	if adms == nil {
		adms = []admission.Admission{}
	}
	return ctx.JSON(http.StatusOK, adms)
}

func (api *admissionApi) retrieve(ctx echo.Context) error {
	adm, err := api.svc.Get(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding admission")
	}
	return ctx.JSON(http.StatusOK, adm)
}

func (api *admissionApi) updateStatus(ctx echo.Context) error {
	var data admission.StatusUpdate
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to StatusUpdate")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	adm, err := api.svc.UpdateStatus(ctx.Request().Context(), ctx.Param("id"), data.Status)
	if err != nil {
		return errors.Wrap(err, "updating admission status")
	}
	return ctx.JSON(http.StatusOK, adm)
}

func (api *admissionApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting admission")
	}
	return ctx.NoContent(http.StatusNoContent)
}
