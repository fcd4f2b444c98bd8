package settings_test

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/elimu/core"
	"github.com/trezcool/elimu/core/settings"
	dummydb "github.com/trezcool/elimu/storage/database/dummy"
	testutil "github.com/trezcool/elimu/tests"
)

func setup(t *testing.T) *settings.Service {
	t.Helper()

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed: %v", err)
	}
	return settings.NewService(dummydb.NewSettingsRepository(db), testutil.NewConfig())
}

func TestService_Get_seedsDefaults(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	s, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if s.SchoolName != "Elimu" {
		t.Errorf("SchoolName = %q, want Elimu", s.SchoolName)
	}
	if s.Hero.Title != "Welcome to Elimu" {
		t.Errorf("Hero.Title = %q", s.Hero.Title)
	}
	if s.Version == 0 {
		t.Error("Version not set on seeded singleton")
	}

	// second read returns the stored singleton, not fresh defaults
	s2, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if s2.Version != s.Version {
		t.Errorf("Version = %d, want %d", s2.Version, s.Version)
	}
}

func TestService_Update(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()
	validate := validator.New()

	s, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}

	s.SchoolName = "  St. Mary's Academy  "
	s.Tagline = "Per aspera ad astra"
	s, err = svc.Update(ctx, s, validate)
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if s.SchoolName != "St. Mary's Academy" {
		t.Errorf("SchoolName = %q, want trimmed", s.SchoolName)
	}

	// a blank school name is rejected
	s.SchoolName = ""
	if _, err = svc.Update(ctx, s, validate); err == nil {
		t.Error("Update() succeeded with blank school name")
	}

	// a stale version is rejected
	s, _ = svc.Get(ctx)
	s.Version--
	if _, err = svc.Update(ctx, s, validate); err != core.ErrConflict {
		t.Errorf("Update() error = %v, want ErrConflict", err)
	}
}

func TestService_sectionUpdates(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	s, err := svc.UpdateHero(ctx, settings.Hero{Title: "Open day", CTAText: "Visit us"})
	if err != nil {
		t.Fatalf("UpdateHero() failed: %v", err)
	}
	if s.Hero.Title != "Open day" {
		t.Errorf("Hero.Title = %q", s.Hero.Title)
	}

	s, err = svc.ReplaceEvents(ctx, []settings.Event{{Title: "Sports day", Location: "Main field"}})
	if err != nil {
		t.Fatalf("ReplaceEvents() failed: %v", err)
	}
	if len(s.Events) != 1 || s.Events[0].Title != "Sports day" {
		t.Errorf("Events = %+v", s.Events)
	}
	// sections update independently
	if s.Hero.Title != "Open day" {
		t.Errorf("Hero.Title = %q after event update", s.Hero.Title)
	}
	if s.SchoolName != "Elimu" {
		t.Errorf("SchoolName = %q after section updates", s.SchoolName)
	}
}
