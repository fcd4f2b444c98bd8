package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core/settings"
)

type settingsApi struct {
	svc      *settings.Service
	validate *validator.Validate
}

func registerSettingsAPI(g *echo.Group, deps ServerDeps) {
	api := settingsApi{
		svc:      deps.SettingsSvc,
		validate: deps.Validate,
	}

	sg := g.Group("/settings")
	sg.GET("", api.retrieve)
	sg.PUT("", api.update)
	sg.PUT("/hero", api.updateHero)
	sg.PUT("/about", api.updateAbout)
	sg.PUT("/contact", api.updateContactInfo)
	sg.PUT("/social", api.updateSocial)
	sg.PUT("/features", api.replaceFeatures)
	sg.PUT("/announcements", api.replaceAnnouncements)
	sg.PUT("/events", api.replaceEvents)
	sg.PUT("/testimonials", api.replaceTestimonials)
	sg.PUT("/gallery", api.replaceGallery)
}

// Handlers

func (api *settingsApi) retrieve(ctx echo.Context) error {
	sett, err := api.svc.Get(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "getting settings")
	}
	return ctx.JSON(http.StatusOK, sett)
}

func (api *settingsApi) update(ctx echo.Context) error {
	var data settings.Settings
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Settings")
	}

	sett, err := api.svc.Update(ctx.Request().Context(), data, api.validate)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sett)
}

func (api *settingsApi) updateHero(ctx echo.Context) error {
	var data settings.Hero
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Hero")
	}
	if err := api.validate.Struct(data); err != nil {
		return err
	}
	sett, err := api.svc.UpdateHero(ctx.Request().Context(), data)
	return api.respond(ctx, sett, err)
}

func (api *settingsApi) updateAbout(ctx echo.Context) error {
	var data settings.About
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to About")
	}
	sett, err := api.svc.UpdateAbout(ctx.Request().Context(), data)
	return api.respond(ctx, sett, err)
}

func (api *settingsApi) updateContactInfo(ctx echo.Context) error {
	var data settings.ContactInfo
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ContactInfo")
	}
	if err := api.validate.Struct(data); err != nil {
		return err
	}
	sett, err := api.svc.UpdateContactInfo(ctx.Request().Context(), data)
	return api.respond(ctx, sett, err)
}

func (api *settingsApi) updateSocial(ctx echo.Context) error {
	var data settings.Social
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Social")
	}
	sett, err := api.svc.UpdateSocial(ctx.Request().Context(), data)
	return api.respond(ctx, sett, err)
}

func (api *settingsApi) replaceFeatures(ctx echo.Context) error {
	var items []settings.Feature
	if err := ctx.Bind(&items); err != nil {
		return errors.Wrap(err, "binding to []Feature")
	}
	if err := api.validate.Var(items, "dive"); err != nil {
		return err
	}
	sett, err := api.svc.ReplaceFeatures(ctx.Request().Context(), items)
	return api.respond(ctx, sett, err)
}

func (api *settingsApi) replaceAnnouncements(ctx echo.Context) error {
	var items []settings.Announcement
	if err := ctx.Bind(&items); err != nil {
		return errors.Wrap(err, "binding to []Announcement")
	}
	if err := api.validate.Var(items, "dive"); err != nil {
		return err
	}
	sett, err := api.svc.ReplaceAnnouncements(ctx.Request().Context(), items)
	return api.respond(ctx, sett, err)
}

func (api *settingsApi) replaceEvents(ctx echo.Context) error {
	var items []settings.Event
	if err := ctx.Bind(&items); err != nil {
		return errors.Wrap(err, "binding to []Event")
	}
	if err := api.validate.Var(items, "dive"); err != nil {
		return err
	}
	sett, err := api.svc.ReplaceEvents(ctx.Request().Context(), items)
	return api.respond(ctx, sett, err)
}

func (api *settingsApi) replaceTestimonials(ctx echo.Context) error {
	var items []settings.Testimonial
	if err := ctx.Bind(&items); err != nil {
		return errors.Wrap(err, "binding to []Testimonial")
	}
	if err := api.validate.Var(items, "dive"); err != nil {
		return err
	}
	sett, err := api.svc.ReplaceTestimonials(ctx.Request().Context(), items)
	return api.respond(ctx, sett, err)
}

func (api *settingsApi) replaceGallery(ctx echo.Context) error {
	var items []settings.GalleryImage
	if err := ctx.Bind(&items); err != nil {
		return errors.Wrap(err, "binding to []GalleryImage")
	}
	if err := api.validate.Var(items, "dive"); err != nil {
		return err
	}
	sett, err := api.svc.ReplaceGallery(ctx.Request().Context(), items)
	return api.respond(ctx, sett, err)
}

func (api *settingsApi) respond(ctx echo.Context, sett settings.Settings, err error) error {
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sett)
}
