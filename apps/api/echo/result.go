package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core/result"
)

type resultApi struct {
	svc      *result.Service
	validate *validator.Validate
}

func registerResultAPI(g *echo.Group, deps ServerDeps) {
	api := resultApi{
		svc:      deps.ResultSvc,
		validate: deps.Validate,
	}

	rg := g.Group("/results")
	rg.PUT("", api.upsert)
	rg.GET("", api.list)
	rg.POST("/import", api.importDoc)
	rg.GET("/:roll", api.retrieve)
	rg.DELETE("/:roll", api.destroy)
}

// Handlers

func (api *resultApi) upsert(ctx echo.Context) error {
	var data result.UpsertResult
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpsertResult")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	res, err := api.svc.Upsert(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "upserting result")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *resultApi) list(ctx echo.Context) error {
	ress, err := api.svc.List(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing results")
	}
	if ress == nil {
		ress = []result.StudentResult{}
	}
	return ctx.JSON(http.StatusOK, ress)
}

func (api *resultApi) retrieve(ctx echo.Context) error {
	res, err := api.svc.Get(ctx.Request().Context(), ctx.Param("roll"))
	if err != nil {
		return errors.Wrap(err, "finding result")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *resultApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("roll")); err != nil {
		return errors.Wrap(err, "deleting result")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// importDoc ingests one pre-structured result document from the request
// body; aggregates present in the document are trusted as-is.
func (api *resultApi) importDoc(ctx echo.Context) error {
	res, err := api.svc.ImportJSON(ctx.Request().Context(), ctx.Request().Body)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, res)
}
