package result

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("result not found")

type (
	Repository interface {
		GetAllResults(ctx context.Context) ([]StudentResult, error)
		GetResult(ctx context.Context, rollNumber string) (StudentResult, error)
		SaveResult(ctx context.Context, res StudentResult) (StudentResult, error)
		DeleteResult(ctx context.Context, rollNumber string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Upsert computes the aggregates and writes the result document, replacing
// any existing one for the roll number. A brand-new result gets the default
// session label and a fresh creation date; editing preserves both.
func (svc *Service) Upsert(ctx context.Context, ur UpsertResult) (StudentResult, error) {
	marks, total, max, pct := aggregate(ur.Subjects)

	now := time.Now().UTC()
	res := StudentResult{
		RollNumber:  ur.RollNumber,
		StudentName: ur.StudentName,
		Class:       ur.Class,
		Session:     ur.Session,
		Subjects:    marks,
		TotalMarks:  total,
		MaxMarks:    max,
		Percentage:  pct,
		Grade:       GradeFor(pct),
		CreatedAt:   now,
	}

	existing, err := svc.repo.GetResult(ctx, ur.RollNumber)
	switch errors.Cause(err) {
	case nil:
		res.CreatedAt = existing.CreatedAt
		res.Version = existing.Version
		// the session is stamped at creation; edits never move a result to
		// another session, whatever the payload says
		res.Session = existing.Session
	case ErrNotFound:
		if res.Session == "" {
			res.Session = DefaultSession(now)
		}
	default:
		return StudentResult{}, err
	}

	return svc.repo.SaveResult(ctx, res)
}

// List returns all results ordered by roll number.
func (svc *Service) List(ctx context.Context) ([]StudentResult, error) {
	ress, err := svc.repo.GetAllResults(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(ress, func(i, j int) bool { return ress[i].RollNumber < ress[j].RollNumber })
	return ress, nil
}

func (svc *Service) Get(ctx context.Context, rollNumber string) (StudentResult, error) {
	return svc.repo.GetResult(ctx, rollNumber)
}

func (svc *Service) Delete(ctx context.Context, rollNumber string) error {
	return svc.repo.DeleteResult(ctx, rollNumber)
}
