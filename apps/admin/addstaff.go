package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core"
	"github.com/trezcool/elimu/core/staff"
)

// addStaff updates or creates a back-office account. This is the only way
// to bootstrap the first admin; there is no default credential.
func (cli *commandLine) addStaff(uname, email, pwd string, isOwner bool) error {
	ctx := context.Background()
	uname = core.CleanString(uname, true /* lower */)
	email = core.CleanString(email, true /* lower */)

	acc, err := cli.findStaff(ctx, uname, email)
	if err != nil {
		if errors.Cause(err) != staff.ErrNotFound {
			return err
		}
		id, err := uuid.NewUUID()
		if err != nil {
			return errors.Wrap(err, "generating staff ID")
		}
		acc = staff.Staff{
			ID:        id.String(),
			Name:      uname,
			Username:  uname,
			Email:     email,
			CreatedAt: time.Now().UTC(),
		}
	}

	if isOwner {
		acc.Roles = staff.AllRoles
	} else if len(acc.Roles) == 0 {
		acc.Roles = []string{staff.RoleAdmin}
	}
	acc.IsActive = true
	if err := acc.SetPassword(pwd); err != nil {
		return err
	}
	acc.UpdatedAt = time.Now().UTC()

	_, err = cli.staffRepo.SaveStaff(ctx, acc)
	return err
}

func (cli *commandLine) findStaff(ctx context.Context, uname, email string) (staff.Staff, error) {
	acc, err := cli.staffRepo.GetStaffByUsername(ctx, uname)
	if errors.Cause(err) == staff.ErrNotFound {
		return cli.staffRepo.GetStaffByEmail(ctx, email)
	}
	return acc, err
}
