package admission

import (
	"context"
	"fmt"
	"net/mail"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/elimu/core"
)

var (
	ErrNotFound       = errors.New("admission not found")
	ErrAlreadyDecided = errors.New("application has already been decided")
)

type (
	Repository interface {
		GetAllAdmissions(ctx context.Context) ([]Admission, error)
		GetAdmission(ctx context.Context, id string) (Admission, error)
		SaveAdmission(ctx context.Context, adm Admission) (Admission, error)
		DeleteAdmission(ctx context.Context, id string) error
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
		conf    *core.Config
		logger  core.Logger
	}
)

func NewService(repo Repository, mailSvc core.EmailService, conf *core.Config, logger core.Logger) *Service {
	return &Service{
		repo:    repo,
		mailSvc: mailSvc,
		conf:    conf,
		logger:  logger,
	}
}

// Submit persists a new Pending application, then dispatches notification
// emails best-effort: a mail failure is logged, never surfaced, and never
// rolls the record back.
func (svc *Service) Submit(ctx context.Context, na NewAdmission) (Admission, error) {
	id, err := uuid.NewUUID() // v1, time-ordered
	if err != nil {
		return Admission{}, errors.Wrap(err, "generating admission ID")
	}
	dob, err := core.ParseDate(na.DateOfBirth)
	if err != nil {
		return Admission{}, core.NewValidationError(err,
			core.FieldError{Field: "date_of_birth", Error: "invalid date, want YYYY-MM-DD"})
	}

	adm := Admission{
		ID:              id.String(),
		StudentName:     na.StudentName,
		DateOfBirth:     dob,
		Grade:           na.Grade,
		ParentName:      na.ParentName,
		ParentEmail:     na.ParentEmail,
		ParentPhone:     na.ParentPhone,
		PreviousSchool:  null.NewString(na.PreviousSchool, na.PreviousSchool != ""),
		Comments:        null.NewString(na.Comments, na.Comments != ""),
		Status:          StatusPending,
		ApplicationDate: time.Now().UTC(),
	}
	adm, err = svc.repo.SaveAdmission(ctx, adm)
	if err != nil {
		return Admission{}, errors.Wrap(err, "saving admission")
	}

	svc.sendSubmissionMails(adm)
	return adm, nil
}

func (svc *Service) sendSubmissionMails(adm Admission) {
	svc.mailSvc.SendMessages(
		&core.EmailMessage{
			To:           []mail.Address{svc.conf.ContactEmail},
			Subject:      fmt.Sprintf("New admission application: %s (%s)", adm.StudentName, adm.Grade),
			TemplateName: "admission-notify",
			TemplateData: adm,
		},
		&core.EmailMessage{
			To:           []mail.Address{{Name: adm.ParentName, Address: adm.ParentEmail}},
			Subject:      "We received your application",
			TemplateName: "admission-received",
			TemplateData: adm,
		},
	)
}

// List returns all applications, most recent first.
func (svc *Service) List(ctx context.Context) ([]Admission, error) {
	adms, err := svc.repo.GetAllAdmissions(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(adms, func(i, j int) bool { return adms[i].ApplicationDate.After(adms[j].ApplicationDate) })
	return adms, nil
}

func (svc *Service) Get(ctx context.Context, id string) (Admission, error) {
	return svc.repo.GetAdmission(ctx, id)
}

// UpdateStatus applies the staff decision. Repeating a decision is a no-op
// (idempotent); flipping an already-decided application is rejected.
func (svc *Service) UpdateStatus(ctx context.Context, id string, status Status) (Admission, error) {
	adm, err := svc.repo.GetAdmission(ctx, id)
	if err != nil {
		return Admission{}, err
	}
	if adm.Status == status {
		return adm, nil
	}
	if adm.IsDecided() {
		return Admission{}, core.NewValidationError(ErrAlreadyDecided,
			core.FieldError{Field: "status", Error: ErrAlreadyDecided.Error()})
	}

	adm.Status = status
	return svc.repo.SaveAdmission(ctx, adm)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteAdmission(ctx, id)
}
