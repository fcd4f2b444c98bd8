package echoapi

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core/fee"
)

type feeApi struct {
	svc      *fee.Service
	validate *validator.Validate
}

func registerFeeAPI(g *echo.Group, deps ServerDeps) {
	api := feeApi{
		svc:      deps.FeeSvc,
		validate: deps.Validate,
	}

	fg := g.Group("/fees")
	fg.POST("", api.create)
	fg.GET("", api.list)
	fg.GET("/stats", api.stats)
	fg.GET("/:id", api.retrieve)
	fg.POST("/:id/pay", api.markPaid)
	fg.DELETE("/:id", api.destroy)
}

// Handlers

func (api *feeApi) create(ctx echo.Context) error {
	var data fee.NewFee
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewFee")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	f, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating fee")
	}
	return ctx.JSON(http.StatusCreated, f)
}

func (api *feeApi) list(ctx echo.Context) error {
	fees, err := api.svc.List(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing fees")
	}
	if fees == nil {
		fees = []fee.Fee{}
	}
	return ctx.JSON(http.StatusOK, fees)
}

func (api *feeApi) retrieve(ctx echo.Context) error {
	f, err := api.svc.Get(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding fee")
	}
	return ctx.JSON(http.StatusOK, f)
}

func (api *feeApi) markPaid(ctx echo.Context) error {
	f, err := api.svc.MarkPaid(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "marking fee paid")
	}
	return ctx.JSON(http.StatusOK, f)
}

func (api *feeApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting fee")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *feeApi) stats(ctx echo.Context) error {
	stats, err := api.svc.Stats(ctx.Request().Context(), time.Now().UTC())
	if err != nil {
		return errors.Wrap(err, "computing fee stats")
	}
	return ctx.JSON(http.StatusOK, stats)
}
