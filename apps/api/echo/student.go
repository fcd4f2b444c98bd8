package echoapi

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core/bulkimport"
	"github.com/trezcool/elimu/core/student"
)

type studentApi struct {
	svc      *student.Service
	validate *validator.Validate
}

func registerStudentAPI(g *echo.Group, deps ServerDeps) {
	api := studentApi{
		svc:      deps.StudentSvc,
		validate: deps.Validate,
	}

	sg := g.Group("/students")
	sg.POST("", api.create)
	sg.GET("", api.list)
	sg.POST("/import", api.bulkImport)
	sg.GET("/:roll", api.retrieve)
	sg.PUT("/:roll", api.update)
	sg.DELETE("/:roll", api.destroy)
}

// Handlers

func (api *studentApi) create(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	std, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	return ctx.JSON(http.StatusCreated, std)
}

func (api *studentApi) list(ctx echo.Context) error {
	stds, err := api.svc.List(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing students")
	}
	if stds == nil {
		stds = []student.Student{}
	}
	return ctx.JSON(http.StatusOK, stds)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	std, err := api.svc.Get(ctx.Request().Context(), ctx.Param("roll"))
	if err != nil {
		return errors.Wrap(err, "finding student")
	}
	return ctx.JSON(http.StatusOK, std)
}

func (api *studentApi) update(ctx echo.Context) error {
	var data student.UpdateStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	std, err := api.svc.Update(ctx.Request().Context(), ctx.Param("roll"), data)
	if err != nil {
		return errors.Wrap(err, "updating student")
	}
	return ctx.JSON(http.StatusOK, std)
}

func (api *studentApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("roll")); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// bulkImport replaces the whole collection from an uploaded CSV or XLSX
// file; any row error rejects the entire upload.
func (api *studentApi) bulkImport(ctx echo.Context) error {
	tbl, err := bindImportFile(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Import(ctx.Request().Context(), tbl); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Students imported."})
}

// bindImportFile reads the uploaded "file" form part and parses it
// according to its extension.
func bindImportFile(ctx echo.Context) (*bulkimport.Table, error) {
	fh, err := ctx.FormFile("file")
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "a csv or xlsx file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, errors.Wrap(err, "opening uploaded file")
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(fh.Filename)) {
	case ".csv":
		return bulkimport.ParseCSV(f)
	case ".xlsx":
		return bulkimport.ParseXLSX(f)
	default:
		return nil, echo.NewHTTPError(http.StatusBadRequest, "unsupported file type; use csv or xlsx")
	}
}
