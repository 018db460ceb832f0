package services

import (
	"context"
	"fmt"

	"meetlink/internal/domain"
)

const templateRegistrationConfirmation = "registration_confirmation"

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService creates an EmailService backed by the given mailer and
// template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

func (s *emailService) SendRegistrationConfirmation(ctx context.Context, data *domain.RegistrationConfirmationEmailData) error {
	subject, html, text, err := s.renderer.Render(templateRegistrationConfirmation, data)
	if err != nil {
		return fmt.Errorf("render registration confirmation: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, html, text); err != nil {
		return fmt.Errorf("send registration confirmation: %w", err)
	}
	return nil
}
