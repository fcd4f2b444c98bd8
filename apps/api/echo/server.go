package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/elimu/core"
	"github.com/trezcool/elimu/core/admission"
	"github.com/trezcool/elimu/core/contact"
	"github.com/trezcool/elimu/core/fee"
	"github.com/trezcool/elimu/core/result"
	"github.com/trezcool/elimu/core/settings"
	"github.com/trezcool/elimu/core/staff"
	"github.com/trezcool/elimu/core/student"
	"github.com/trezcool/elimu/core/teacher"
)

type (
	ServerDeps struct {
		Conf   *core.Config
		Logger core.Logger

		StaffSvc     *staff.Service
		StudentSvc   *student.Service
		TeacherSvc   *teacher.Service
		AdmissionSvc *admission.Service
		FeeSvc       *fee.Service
		ResultSvc    *result.Service
		SettingsSvc  *settings.Service
		ContactSvc   *contact.Service

		Validate   *validator.Validate
		Translator ut.Translator
	}

	Server interface {
		http.Handler
		Start()
		Shutdown(context.Context) error
		Close() error
		Errors() chan error
		ShutdownSignal() chan os.Signal
	}

	server struct {
		deps     ServerDeps
		app      *echo.Echo
		errors   chan error
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(deps ServerDeps) Server {
	s := &server{
		deps:     deps,
		app:      echo.New(),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, syscall.SIGINT, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", home(conf))

	api := s.app.Group("/api")
	jwt := middleware.JWTWithConfig(newAppJWTConfig(conf))

	registerPublicAPI(api, s.deps)
	registerAuthAPI(api, jwt, s.deps)

	// back-office endpoints
	admin := api.Group("/admin", jwt, adminMiddleware())
	registerStudentAPI(admin, s.deps)
	registerTeacherAPI(admin, s.deps)
	registerAdmissionAPI(admin, s.deps)
	registerFeeAPI(admin, s.deps)
	registerResultAPI(admin, s.deps)
	registerSettingsAPI(admin, s.deps)
	registerStaffAPI(admin, s.deps)
	registerDashboardAPI(admin, s.deps)
}

func (s *server) Start() {
	s.errors <- s.app.Start(s.deps.Conf.Server.Addr)
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) Errors() chan error {
	return s.errors
}

func (s *server) ShutdownSignal() chan os.Signal {
	return s.shutdown
}

// signalShutdown triggers a graceful shutdown from within a request.
func (s *server) signalShutdown() {
	s.shutdown <- syscall.SIGTERM
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(conf *core.Config) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		return ctx.String(http.StatusOK, "Welcome to "+conf.AppName+" API!")
	}
}
