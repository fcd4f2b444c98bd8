package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core/admission"
	"github.com/trezcool/elimu/core/contact"
	"github.com/trezcool/elimu/core/settings"
)

// publicApi serves the marketing site: no authentication, read-mostly.
type publicApi struct {
	settingsSvc  *settings.Service
	contactSvc   *contact.Service
	admissionSvc *admission.Service
	validate     *validator.Validate
}

func registerPublicAPI(g *echo.Group, deps ServerDeps) {
	api := publicApi{
		settingsSvc:  deps.SettingsSvc,
		contactSvc:   deps.ContactSvc,
		admissionSvc: deps.AdmissionSvc,
		validate:     deps.Validate,
	}

	g.GET("/site/settings", api.siteSettings)
	g.POST("/contact", api.contactMessage)
	g.POST("/admissions/apply", api.apply)
}

func (api *publicApi) siteSettings(ctx echo.Context) error {
	sett, err := api.settingsSvc.Get(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "getting site settings")
	}
	return ctx.JSON(http.StatusOK, sett.Public())
}

func (api *publicApi) contactMessage(ctx echo.Context) error {
	var data contact.Message
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Message")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	api.contactSvc.Send(data)
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Thank you for reaching out. We will get back to you shortly."})
}

func (api *publicApi) apply(ctx echo.Context) error {
	var data admission.NewAdmission
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAdmission")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	adm, err := api.admissionSvc.Submit(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "submitting application")
	}
	return ctx.JSON(http.StatusCreated, adm)
}
