package student

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core"
)

var (
	ErrNotFound         = errors.New("student not found")
	ErrRollNumberExists = errors.New("a student with this roll number already exists")
)

type (
	Repository interface {
		GetAllStudents(ctx context.Context) ([]Student, error)
		GetStudent(ctx context.Context, rollNumber string) (Student, error)
		SaveStudent(ctx context.Context, std Student) (Student, error)
		DeleteStudent(ctx context.Context, rollNumber string) error
		// ReplaceAllStudents swaps the whole collection; used by bulk import.
		ReplaceAllStudents(ctx context.Context, stds []Student) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	if _, err := svc.repo.GetStudent(ctx, ns.RollNumber); err == nil {
		return Student{}, core.NewValidationError(ErrRollNumberExists,
			core.FieldError{Field: "roll_number", Error: ErrRollNumberExists.Error()})
	} else if errors.Cause(err) != ErrNotFound {
		return Student{}, err
	}

	std := Student{
		RollNumber: ns.RollNumber,
		Name:       ns.Name,
		Class:      ns.Class,
		Gender:     ns.Gender,
		Contact:    ns.Contact,
		Address:    ns.Address,
	}
	return svc.repo.SaveStudent(ctx, std)
}

func (svc *Service) List(ctx context.Context) ([]Student, error) {
	stds, err := svc.repo.GetAllStudents(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(stds, func(i, j int) bool { return stds[i].RollNumber < stds[j].RollNumber })
	return stds, nil
}

func (svc *Service) Get(ctx context.Context, rollNumber string) (Student, error) {
	return svc.repo.GetStudent(ctx, core.CleanString(rollNumber))
}

func (svc *Service) Update(ctx context.Context, rollNumber string, us UpdateStudent) (Student, error) {
	std, err := svc.repo.GetStudent(ctx, rollNumber)
	if err != nil {
		return Student{}, err
	}
	if us.Name != "" {
		std.Name = us.Name
	}
	if us.Class != "" {
		std.Class = us.Class
	}
	if us.Gender != "" {
		std.Gender = us.Gender
	}
	if us.Contact != "" {
		std.Contact = us.Contact
	}
	if us.Address != "" {
		std.Address = us.Address
	}
	return svc.repo.SaveStudent(ctx, std)
}

func (svc *Service) Delete(ctx context.Context, rollNumber string) error {
	return svc.repo.DeleteStudent(ctx, rollNumber)
}
