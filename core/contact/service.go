package contact

import (
	"net/mail"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/elimu/core"
)

// Message is the public contact form payload. Messages are dispatched to
// the school office by email and not persisted.
type Message struct {
	Name    string `json:"name" validate:"required,min=2"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

func (m *Message) Validate(validate *validator.Validate) error {
	m.Name = core.CleanString(m.Name)
	m.Email = core.CleanString(m.Email, true /* lower */)
	m.Subject = core.CleanString(m.Subject)
	m.Message = core.CleanString(m.Message)
	return validate.Struct(m)
}

type Service struct {
	mailSvc core.EmailService
	conf    *core.Config
}

func NewService(mailSvc core.EmailService, conf *core.Config) *Service {
	return &Service{mailSvc: mailSvc, conf: conf}
}

// Send dispatches the message to the school office, fire-and-forget.
func (svc *Service) Send(msg Message) {
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{svc.conf.ContactEmail},
		Subject:      "Contact form: " + msg.Subject,
		TemplateName: "contact-message",
		TemplateData: msg,
	})
}
