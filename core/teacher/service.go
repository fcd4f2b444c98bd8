package teacher

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core"
)

var ErrNotFound = errors.New("teacher not found")

type (
	Repository interface {
		GetAllTeachers(ctx context.Context) ([]Teacher, error)
		GetTeacher(ctx context.Context, id string) (Teacher, error)
		SaveTeacher(ctx context.Context, tch Teacher) (Teacher, error)
		DeleteTeacher(ctx context.Context, id string) error
		// ReplaceAllTeachers swaps the whole collection; used by bulk import.
		ReplaceAllTeachers(ctx context.Context, tchs []Teacher) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nt NewTeacher) (Teacher, error) {
	id, err := uuid.NewUUID()
	if err != nil {
		return Teacher{}, errors.Wrap(err, "generating teacher ID")
	}

	joined := time.Now().UTC()
	if nt.JoiningDate != "" {
		joined, _ = core.ParseDate(nt.JoiningDate) // validated upstream
	}
	tch := Teacher{
		ID:          id.String(),
		Name:        nt.Name,
		Subject:     nt.Subject,
		Email:       nt.Email,
		Phone:       nt.Phone,
		Salary:      nt.Salary,
		PhotoPath:   nt.PhotoPath,
		JoiningDate: joined,
		Status:      StatusActive,
	}
	return svc.repo.SaveTeacher(ctx, tch)
}

func (svc *Service) List(ctx context.Context) ([]Teacher, error) {
	tchs, err := svc.repo.GetAllTeachers(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(tchs, func(i, j int) bool { return tchs[i].Name < tchs[j].Name })
	return tchs, nil
}

func (svc *Service) Get(ctx context.Context, id string) (Teacher, error) {
	return svc.repo.GetTeacher(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id string, ut UpdateTeacher) (Teacher, error) {
	tch, err := svc.repo.GetTeacher(ctx, id)
	if err != nil {
		return Teacher{}, err
	}
	if ut.Name != "" {
		tch.Name = ut.Name
	}
	if ut.Subject != "" {
		tch.Subject = ut.Subject
	}
	if ut.Email != "" {
		tch.Email = ut.Email
	}
	if ut.Phone != "" {
		tch.Phone = ut.Phone
	}
	if ut.Salary > 0 {
		tch.Salary = ut.Salary
	}
	if ut.PhotoPath != "" {
		tch.PhotoPath = ut.PhotoPath
	}
	if ut.Status != "" {
		tch.Status = ut.Status
	}
	return svc.repo.SaveTeacher(ctx, tch)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteTeacher(ctx, id)
}
