package settings

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core"
)

var ErrNotFound = errors.New("settings not found")

type (
	Repository interface {
		GetSettings(ctx context.Context) (Settings, error)
		SaveSettings(ctx context.Context, s Settings) (Settings, error)
	}

	Service struct {
		repo Repository
		conf *core.Config
	}
)

func NewService(repo Repository, conf *core.Config) *Service {
	return &Service{repo: repo, conf: conf}
}

// Get returns the singleton, seeding it with defaults on first read.
func (svc *Service) Get(ctx context.Context) (Settings, error) {
	s, err := svc.repo.GetSettings(ctx)
	if errors.Cause(err) == ErrNotFound {
		return svc.repo.SaveSettings(ctx, Defaults(svc.conf.AppName))
	}
	return s, err
}

// Update replaces the whole document (the admin "save all" action).
// The caller must carry the current version; a stale one is rejected
// with core.ErrConflict.
func (svc *Service) Update(ctx context.Context, s Settings, validate *validator.Validate) (Settings, error) {
	if err := s.Validate(validate); err != nil {
		return Settings{}, err
	}
	return svc.repo.SaveSettings(ctx, s)
}

func (svc *Service) update(ctx context.Context, mutate func(*Settings)) (Settings, error) {
	s, err := svc.Get(ctx)
	if err != nil {
		return Settings{}, err
	}
	mutate(&s)
	return svc.repo.SaveSettings(ctx, s)
}

// Per-section updates. Each one is a read-modify-write of the singleton
// guarded by the stored version.

func (svc *Service) UpdateHero(ctx context.Context, h Hero) (Settings, error) {
	return svc.update(ctx, func(s *Settings) { s.Hero = h })
}

func (svc *Service) UpdateAbout(ctx context.Context, a About) (Settings, error) {
	return svc.update(ctx, func(s *Settings) { s.About = a })
}

func (svc *Service) UpdateContactInfo(ctx context.Context, c ContactInfo) (Settings, error) {
	return svc.update(ctx, func(s *Settings) { s.Contact = c })
}

func (svc *Service) UpdateSocial(ctx context.Context, soc Social) (Settings, error) {
	return svc.update(ctx, func(s *Settings) { s.Social = soc })
}

func (svc *Service) ReplaceFeatures(ctx context.Context, items []Feature) (Settings, error) {
	return svc.update(ctx, func(s *Settings) { s.Features = items })
}

func (svc *Service) ReplaceAnnouncements(ctx context.Context, items []Announcement) (Settings, error) {
	return svc.update(ctx, func(s *Settings) { s.Announcements = items })
}

func (svc *Service) ReplaceEvents(ctx context.Context, items []Event) (Settings, error) {
	return svc.update(ctx, func(s *Settings) { s.Events = items })
}

func (svc *Service) ReplaceTestimonials(ctx context.Context, items []Testimonial) (Settings, error) {
	return svc.update(ctx, func(s *Settings) { s.Testimonials = items })
}

func (svc *Service) ReplaceGallery(ctx context.Context, items []GalleryImage) (Settings, error) {
	return svc.update(ctx, func(s *Settings) { s.Gallery = items })
}
