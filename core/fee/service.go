package fee

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/elimu/core"
	"github.com/trezcool/elimu/core/student"
)

var (
	ErrNotFound       = errors.New("fee not found")
	ErrUnknownStudent = errors.New("no student with this roll number")
)

type (
	Repository interface {
		GetAllFees(ctx context.Context) ([]Fee, error)
		GetFee(ctx context.Context, id string) (Fee, error)
		SaveFee(ctx context.Context, f Fee) (Fee, error)
		DeleteFee(ctx context.Context, id string) error
	}

	// StudentDirectory resolves roll numbers; satisfied by *student.Service.
	StudentDirectory interface {
		Get(ctx context.Context, rollNumber string) (student.Student, error)
	}

	Service struct {
		repo     Repository
		students StudentDirectory
	}
)

func NewService(repo Repository, students StudentDirectory) *Service {
	return &Service{repo: repo, students: students}
}

// Create bills a student, snapshotting their name and class on the Fee.
func (svc *Service) Create(ctx context.Context, nf NewFee) (Fee, error) {
	std, err := svc.students.Get(ctx, nf.StudentRollNumber)
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return Fee{}, core.NewValidationError(ErrUnknownStudent,
				core.FieldError{Field: "student_roll_number", Error: ErrUnknownStudent.Error()})
		}
		return Fee{}, errors.Wrap(err, "resolving student")
	}

	id, err := uuid.NewUUID()
	if err != nil {
		return Fee{}, errors.Wrap(err, "generating fee ID")
	}
	due, err := core.ParseDate(nf.DueDate)
	if err != nil {
		return Fee{}, core.NewValidationError(err,
			core.FieldError{Field: "due_date", Error: "invalid date, want YYYY-MM-DD"})
	}

	f := Fee{
		ID:                id.String(),
		StudentRollNumber: std.RollNumber,
		StudentName:       std.Name,
		Class:             std.Class,
		Amount:            nf.Amount,
		DueDate:           due,
		Status:            StatusPending,
		CreatedAt:         time.Now().UTC(),
	}
	return svc.repo.SaveFee(ctx, f)
}

// List returns all fees, earliest due date first.
func (svc *Service) List(ctx context.Context) ([]Fee, error) {
	fees, err := svc.repo.GetAllFees(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(fees, func(i, j int) bool { return fees[i].DueDate.Before(fees[j].DueDate) })
	return fees, nil
}

func (svc *Service) Get(ctx context.Context, id string) (Fee, error) {
	return svc.repo.GetFee(ctx, id)
}

// MarkPaid settles a fee (Pending or Overdue). Repeating the call on an
// already-Paid fee keeps the original payment date (idempotent).
func (svc *Service) MarkPaid(ctx context.Context, id string) (Fee, error) {
	f, err := svc.repo.GetFee(ctx, id)
	if err != nil {
		return Fee{}, err
	}
	if f.Status == StatusPaid {
		return f, nil
	}

	f.Status = StatusPaid
	f.PaymentDate = null.TimeFrom(time.Now().UTC())
	return svc.repo.SaveFee(ctx, f)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteFee(ctx, id)
}

// SweepOverdue stamps Pending fees past their due date as Overdue.
// Run daily from the API binary; IsOverdue covers the window in between.
func (svc *Service) SweepOverdue(ctx context.Context, now time.Time) (int, error) {
	fees, err := svc.repo.GetAllFees(ctx)
	if err != nil {
		return 0, err
	}

	var swept int
	for _, f := range fees {
		if f.Status != StatusPending || !f.DueDate.Before(now) {
			continue
		}
		f.Status = StatusOverdue
		if _, err = svc.repo.SaveFee(ctx, f); err != nil {
			if errors.Cause(err) == core.ErrConflict {
				continue // someone raced us (e.g. marked it paid); skip
			}
			return swept, errors.Wrap(err, "sweeping fee "+f.ID)
		}
		swept++
	}
	return swept, nil
}
