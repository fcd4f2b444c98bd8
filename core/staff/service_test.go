package staff_test

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core"
	"github.com/trezcool/elimu/core/staff"
	emailsvc "github.com/trezcool/elimu/services/email"
	dummydb "github.com/trezcool/elimu/storage/database/dummy"
	testutil "github.com/trezcool/elimu/tests"
)

func setup(t *testing.T) (*staff.Service, staff.Repository, *core.Config) {
	t.Helper()

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed: %v", err)
	}
	repo := dummydb.NewStaffRepository(db)

	conf := testutil.NewConfig()
	core.ParseEmailTemplates(conf, testutil.Logger{})
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	return staff.NewService(repo, mailSvc, conf), repo, conf
}

func TestService_CheckUniqueness(t *testing.T) {
	svc, repo, _ := setup(t)

	acc := testutil.CreateStaff(t, repo, "Admin", "admin", "admin@test.cd", "", []string{staff.RoleAdmin}, true)

	if err := svc.CheckUniqueness("other", "other@test.cd"); err != nil {
		t.Errorf("CheckUniqueness() failed: %v", err)
	}
	if err := svc.CheckUniqueness("admin", "other@test.cd"); err == nil {
		t.Error("CheckUniqueness() passed a taken username")
	}
	if err := svc.CheckUniqueness("other", "admin@test.cd"); err == nil {
		t.Error("CheckUniqueness() passed a taken email")
	}
	// the account itself is excluded when updating
	if err := svc.CheckUniqueness("admin", "admin@test.cd", acc); err != nil {
		t.Errorf("CheckUniqueness() failed with exclusion: %v", err)
	}
}

func TestService_Create(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()

	acc, err := svc.Create(ctx, staff.NewStaff{
		Name: "Admin", Username: "admin", Email: "admin@test.cd",
		Password: "LolC@t123", PasswordConfirm: "LolC@t123",
		Roles: []string{staff.RoleAdmin},
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if acc.ID == "" || !acc.IsActive {
		t.Errorf("Create() = %+v", acc)
	}
	if err = acc.CheckPassword("LolC@t123"); err != nil {
		t.Errorf("CheckPassword() failed: %v", err)
	}

	got, err := svc.GetByUsernameOrEmail(ctx, "ADMIN@test.cd")
	if err != nil {
		t.Fatalf("GetByUsernameOrEmail() failed: %v", err)
	}
	if got.ID != acc.ID {
		t.Errorf("GetByUsernameOrEmail() = %+v, want %+v", got, acc)
	}
}

func TestService_ResetPassword(t *testing.T) {
	svc, repo, conf := setup(t)
	ctx := context.Background()

	acc := testutil.CreateStaff(t, repo, "Admin", "admin", "admin@test.cd", "oldpwd", []string{staff.RoleAdmin}, true)

	emailsvc.SentMessages = nil // reset
	if err := svc.RequestPasswordReset(ctx, acc.Email); err != nil {
		t.Fatalf("RequestPasswordReset() failed: %v", err)
	}
	if len(emailsvc.SentMessages) != 1 {
		t.Fatalf("len(SentMessages) = %d, want 1", len(emailsvc.SentMessages))
	}
	if !strings.Contains(emailsvc.SentMessages[0].TextContent, staff.EncodeUID(acc)) {
		t.Error("reset mail does not carry the account UID")
	}

	// unknown address is reported to the caller, not the visitor
	if err := svc.RequestPasswordReset(ctx, "lol@test.cd"); errors.Cause(err) != staff.ErrNotFound {
		t.Errorf("RequestPasswordReset() error = %v, want ErrNotFound", err)
	}

	token, err := staff.MakeToken(acc, conf)
	if err != nil {
		t.Fatalf("MakeToken() failed: %v", err)
	}
	err = svc.ResetPassword(ctx, staff.ResetStaffPassword{
		Token: token, UID: staff.EncodeUID(acc),
		Password: "LolC@t123", PasswordConfirm: "LolC@t123",
	})
	if err != nil {
		t.Fatalf("ResetPassword() failed: %v", err)
	}

	refreshed, err := repo.GetStaff(ctx, acc.ID)
	if err != nil {
		t.Fatalf("GetStaff() failed: %v", err)
	}
	if err = refreshed.CheckPassword("LolC@t123"); err != nil {
		t.Errorf("CheckPassword() after reset failed: %v", err)
	}

	// a spent or tampered token is rejected
	err = svc.ResetPassword(ctx, staff.ResetStaffPassword{
		Token: "HE4TS-sigsig-sig", UID: staff.EncodeUID(acc),
		Password: "LolC@t123", PasswordConfirm: "LolC@t123",
	})
	if _, ok := err.(*core.ValidationError); !ok {
		t.Errorf("ResetPassword() error = %v, want ValidationError", err)
	}
}
