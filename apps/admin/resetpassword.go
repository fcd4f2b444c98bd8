package main

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core"
)

func (cli *commandLine) resetPassword(uname, pwd string) error {
	ctx := context.Background()
	uname = core.CleanString(uname, true /* lower */)

	acc, err := cli.findStaff(ctx, uname, uname)
	if err != nil {
		return errors.Cause(err)
	}
	if err := acc.SetPassword(pwd); err != nil {
		return err
	}
	acc.UpdatedAt = time.Now().UTC()

	_, err = cli.staffRepo.SaveStaff(ctx, acc)
	return err
}
