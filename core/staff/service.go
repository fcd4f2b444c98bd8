package staff

import (
	"context"
	"net/mail"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core"
)

var (
	ErrNotFound       = errors.New("staff member not found")
	ErrEmailExists    = errors.New("an account with this email already exists")
	ErrUsernameExists = errors.New("an account with this username already exists")
)

type (
	Repository interface {
		GetAllStaff(ctx context.Context) ([]Staff, error)
		GetStaff(ctx context.Context, id string) (Staff, error)
		GetStaffByUsername(ctx context.Context, username string) (Staff, error)
		GetStaffByEmail(ctx context.Context, email string) (Staff, error)
		SaveStaff(ctx context.Context, s Staff) (Staff, error)
		DeleteStaff(ctx context.Context, id string) error
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
		conf    *core.Config
	}
)

func NewService(repo Repository, mailSvc core.EmailService, conf *core.Config) *Service {
	return &Service{
		repo:    repo,
		mailSvc: mailSvc,
		conf:    conf,
	}
}

// CheckUniqueness reports a field-level ValidationError when the username
// or email is taken by an account other than the excluded ones.
func (svc *Service) CheckUniqueness(uname, email string, excluded ...Staff) error {
	ctx := context.Background()

	excludes := func(s Staff) bool {
		for _, ex := range excluded {
			if ex.ID == s.ID {
				return true
			}
		}
		return false
	}

	if s, err := svc.repo.GetStaffByUsername(ctx, uname); err == nil && !excludes(s) {
		return core.NewValidationError(ErrUsernameExists,
			core.FieldError{Field: "username", Error: ErrUsernameExists.Error()})
	} else if err != nil && errors.Cause(err) != ErrNotFound {
		return err
	}

	if s, err := svc.repo.GetStaffByEmail(ctx, email); err == nil && !excludes(s) {
		return core.NewValidationError(ErrEmailExists,
			core.FieldError{Field: "email", Error: ErrEmailExists.Error()})
	} else if err != nil && errors.Cause(err) != ErrNotFound {
		return err
	}
	return nil
}

func (svc *Service) Create(ctx context.Context, ns NewStaff) (Staff, error) {
	id, err := uuid.NewUUID()
	if err != nil {
		return Staff{}, errors.Wrap(err, "generating staff ID")
	}

	now := time.Now().UTC()
	s := Staff{
		ID:        id.String(),
		Name:      ns.Name,
		Username:  ns.Username,
		Email:     ns.Email,
		IsActive:  true,
		Roles:     ns.Roles,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = s.SetPassword(ns.Password); err != nil {
		return Staff{}, err
	}
	return svc.repo.SaveStaff(ctx, s)
}

func (svc *Service) List(ctx context.Context) ([]Staff, error) {
	all, err := svc.repo.GetAllStaff(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Username < all[j].Username })
	return all, nil
}

func (svc *Service) GetByID(ctx context.Context, id string) (Staff, error) {
	return svc.repo.GetStaff(ctx, id)
}

func (svc *Service) GetByUsername(ctx context.Context, uname string) (Staff, error) {
	return svc.repo.GetStaffByUsername(ctx, core.CleanString(uname, true /* lower */))
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (Staff, error) {
	return svc.repo.GetStaffByEmail(ctx, core.CleanString(email, true /* lower */))
}

func (svc *Service) GetByUsernameOrEmail(ctx context.Context, uname string) (Staff, error) {
	uname = core.CleanString(uname, true /* lower */)
	s, err := svc.repo.GetStaffByUsername(ctx, uname)
	if errors.Cause(err) == ErrNotFound {
		return svc.repo.GetStaffByEmail(ctx, uname)
	}
	return s, err
}

func (svc *Service) Update(ctx context.Context, id string, us UpdateStaff) (Staff, error) {
	s, err := svc.repo.GetStaff(ctx, id)
	if err != nil {
		return Staff{}, err
	}

	s.Name = us.Name
	s.Username = us.Username
	s.Email = us.Email
	if us.IsActive != nil {
		s.IsActive = *us.IsActive
	}
	if us.Roles != nil {
		s.Roles = us.Roles
	}
	if us.Password != "" {
		if err = s.SetPassword(us.Password); err != nil {
			return Staff{}, err
		}
	}
	s.UpdatedAt = time.Now().UTC()
	return svc.repo.SaveStaff(ctx, s)
}

func (svc *Service) SetLastLogin(ctx context.Context, s Staff) (Staff, error) {
	s.LastLogin = time.Now().UTC()
	return svc.repo.SaveStaff(ctx, s)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteStaff(ctx, id)
}

// RequestPasswordReset emails a signed reset link to the account, if one
// exists for the address.
func (svc *Service) RequestPasswordReset(ctx context.Context, email string) error {
	s, err := svc.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if svc.conf.TestMode {
		// synchronous so tests can assert on sent mail
		svc.sendPasswordResetMail(s)
		return nil
	}
	go svc.sendPasswordResetMail(s)
	return nil
}

func (svc *Service) sendPasswordResetMail(s Staff) {
	token, err := MakeToken(s, svc.conf)
	if err != nil {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: s.Name, Address: s.Email}},
		Subject:      "Password reset",
		TemplateName: "password-reset",
		TemplateData: struct {
			Name  string
			UID   string
			Token string
		}{s.Name, EncodeUID(s), token},
	})
}

// ResetPassword verifies the emailed token and applies the new password.
func (svc *Service) ResetPassword(ctx context.Context, rp ResetStaffPassword) error {
	id, err := decodeUID(rp.UID)
	if err != nil {
		return core.NewValidationError(errInvalidToken)
	}
	s, err := svc.repo.GetStaff(ctx, id)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return core.NewValidationError(errInvalidToken)
		}
		return err
	}
	if err = verifyToken(s, rp.Token, svc.conf); err != nil {
		return core.NewValidationError(err)
	}

	if err = s.SetPassword(rp.Password); err != nil {
		return err
	}
	s.UpdatedAt = time.Now().UTC()
	_, err = svc.repo.SaveStaff(ctx, s)
	return err
}
