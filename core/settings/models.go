package settings

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/elimu/core"
)

type (
	Hero struct {
		Title    string `json:"title" validate:"required"`
		Subtitle string `json:"subtitle"`
		ImageURL string `json:"image_url"`
		CTAText  string `json:"cta_text"`
		CTALink  string `json:"cta_link"`
	}

	About struct {
		Heading  string `json:"heading"`
		Body     string `json:"body"`
		ImageURL string `json:"image_url"`
	}

	ContactInfo struct {
		Email   string `json:"email" validate:"omitempty,email"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
		MapURL  string `json:"map_url"`
	}

	Social struct {
		Facebook  string `json:"facebook"`
		Twitter   string `json:"twitter"`
		Instagram string `json:"instagram"`
		YouTube   string `json:"youtube"`
	}

	Feature struct {
		Title       string `json:"title" validate:"required"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	}

	Announcement struct {
		Title string    `json:"title" validate:"required"`
		Body  string    `json:"body"`
		Date  time.Time `json:"date"`
	}

	Event struct {
		Title       string    `json:"title" validate:"required"`
		Description string    `json:"description"`
		Date        time.Time `json:"date"`
		Location    string    `json:"location"`
		ImageURL    string    `json:"image_url"`
	}

	Testimonial struct {
		Author string `json:"author" validate:"required"`
		Role   string `json:"role"`
		Quote  string `json:"quote" validate:"required"`
	}

	GalleryImage struct {
		URL     string `json:"url" validate:"required"`
		Caption string `json:"caption"`
	}

	// Settings is the singleton public-site configuration aggregate.
	// Sections are typed and updated through explicit per-section
	// operations; there is no generic key-indexed mutator.
	Settings struct {
		SchoolName    string         `json:"school_name" validate:"required"`
		Tagline       string         `json:"tagline"`
		Hero          Hero           `json:"hero"`
		About         About          `json:"about"`
		Contact       ContactInfo    `json:"contact"`
		Social        Social         `json:"social"`
		Features      []Feature      `json:"features" validate:"dive"`
		Announcements []Announcement `json:"announcements" validate:"dive"`
		Events        []Event        `json:"events" validate:"dive"`
		Testimonials  []Testimonial  `json:"testimonials" validate:"dive"`
		Gallery       []GalleryImage `json:"gallery" validate:"dive"`
		Version       int64          `json:"version"`
	}
)

// PublicSettings is the subset of the aggregate served to the marketing
// site; versioning stays a back-office concern.
type PublicSettings struct {
	SchoolName    string         `json:"school_name"`
	Tagline       string         `json:"tagline"`
	Hero          Hero           `json:"hero"`
	About         About          `json:"about"`
	Contact       ContactInfo    `json:"contact"`
	Social        Social         `json:"social"`
	Features      []Feature      `json:"features"`
	Announcements []Announcement `json:"announcements"`
	Events        []Event        `json:"events"`
	Testimonials  []Testimonial  `json:"testimonials"`
	Gallery       []GalleryImage `json:"gallery"`
}

func (s Settings) Public() PublicSettings {
	return PublicSettings{
		SchoolName:    s.SchoolName,
		Tagline:       s.Tagline,
		Hero:          s.Hero,
		About:         s.About,
		Contact:       s.Contact,
		Social:        s.Social,
		Features:      s.Features,
		Announcements: s.Announcements,
		Events:        s.Events,
		Testimonials:  s.Testimonials,
		Gallery:       s.Gallery,
	}
}

func (s *Settings) Validate(validate *validator.Validate) error {
	s.SchoolName = core.CleanString(s.SchoolName)
	return validate.Struct(s)
}

// Defaults seeds the singleton on first read so the public site always has
// copy to render.
func Defaults(appName string) Settings {
	return Settings{
		SchoolName: appName,
		Tagline:    "Nurturing tomorrow's leaders",
		Hero: Hero{
			Title:    "Welcome to " + appName,
			Subtitle: "A caring community with a passion for learning",
			CTAText:  "Apply for admission",
			CTALink:  "/admissions",
		},
		Features:      []Feature{},
		Announcements: []Announcement{},
		Events:        []Event{},
		Testimonials:  []Testimonial{},
		Gallery:       []GalleryImage{},
	}
}
