package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"meetlink/internal/domain"
	"meetlink/internal/linkedin"
)

type registrationService struct {
	eventRepo       domain.EventRepository
	userRepo        domain.UserRepository
	participantRepo domain.ParticipantRepository
	emailService    domain.EmailService
	publicBaseURL   string
	logger          *slog.Logger
}

// NewRegistrationService creates a RegistrationService with the given
// repositories. emailService may be nil; confirmation emails are then skipped.
func NewRegistrationService(
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	participantRepo domain.ParticipantRepository,
	emailService domain.EmailService,
	publicBaseURL string,
	logger *slog.Logger,
) domain.RegistrationService {
	return &registrationService{
		eventRepo:       eventRepo,
		userRepo:        userRepo,
		participantRepo: participantRepo,
		emailService:    emailService,
		publicBaseURL:   publicBaseURL,
		logger:          logger,
	}
}

func (s *registrationService) Status(ctx context.Context, slug string, identity *domain.Identity) (domain.RegistrationState, error) {
	if identity == nil {
		return domain.StateUnauthenticated, nil
	}

	event, err := s.activeEventBySlug(ctx, slug)
	if err != nil {
		return "", err
	}

	user, err := s.userRepo.GetByAuthUserID(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.StateAuthenticatedUnregistered, nil
		}
		return "", fmt.Errorf("get user by identity: %w", err)
	}

	if _, err := s.participantRepo.GetByEventAndUser(ctx, event.ID, user.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.StateAuthenticatedUnregistered, nil
		}
		return "", fmt.Errorf("get participant: %w", err)
	}
	return domain.StateRegistered, nil
}

func (s *registrationService) Join(ctx context.Context, slug string, identity *domain.Identity, in *domain.JoinInput) (*domain.Participant, bool, error) {
	if identity == nil {
		return nil, false, domain.ErrForbidden
	}

	event, err := s.activeEventBySlug(ctx, slug)
	if err != nil {
		return nil, false, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, false, &domain.ValidationError{Field: "name", Code: domain.CodeNameRequired}
	}
	if strings.TrimSpace(in.LinkedInURL) == "" {
		return nil, false, &domain.ValidationError{Field: "linkedin_url", Code: domain.CodeLinkRequired}
	}
	link, err := linkedin.Normalize(in.LinkedInURL)
	if err != nil {
		return nil, false, &domain.ValidationError{Field: "linkedin_url", Code: domain.CodeLinkInvalid}
	}
	visibility := in.Visibility
	if visibility == "" {
		visibility = domain.VisibilityPublic
	}
	if !visibility.Valid() {
		return nil, false, &domain.ValidationError{Field: "visibility", Code: domain.CodeVisibilityInvalid}
	}

	user, err := s.upsertUser(ctx, identity, name, link, in)
	if err != nil {
		return nil, false, err
	}

	// The (event_id, user_id) uniqueness constraint is what closes the
	// duplicate-join race; this read only short-circuits the common case.
	if existing, err := s.participantRepo.GetByEventAndUser(ctx, event.ID, user.ID); err == nil {
		return existing, false, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, fmt.Errorf("get participant: %w", err)
	}

	now := time.Now()
	p := domain.NewParticipant(event.ID, user.ID, visibility, newQRCodeData(event.ID, user.ID), false, now, now)
	if note := strings.TrimSpace(in.CustomNote); note != "" {
		p.CustomNote = &note
	}
	if err := s.participantRepo.Create(ctx, p); err != nil {
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			existing, err := s.participantRepo.GetByEventAndUser(ctx, event.ID, user.ID)
			if err != nil {
				return nil, false, fmt.Errorf("get participant after duplicate insert: %w", err)
			}
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("create participant: %w", err)
	}

	s.sendConfirmation(ctx, event, user)
	return p, true, nil
}

// upsertUser resolves or creates the user row for the identity. An existing
// row's mutable fields are overwritten with the submitted values; the photo is
// preserved when the submission omits it.
func (s *registrationService) upsertUser(ctx context.Context, identity *domain.Identity, name, link string, in *domain.JoinInput) (*domain.User, error) {
	headline := strings.TrimSpace(in.Headline)
	company := strings.TrimSpace(in.Company)
	photoURL := strings.TrimSpace(in.PhotoURL)
	linkedInID := linkedin.ExtractID(link)

	update := func(user *domain.User) (*domain.User, error) {
		user.Name = name
		user.LinkedInURL = link
		user.LinkedInID = optional(linkedInID)
		user.Headline = optional(headline)
		user.Company = optional(company)
		if photoURL != "" {
			user.PhotoURL = &photoURL
		}
		user.UpdatedAt = time.Now()
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
		return user, nil
	}

	user, err := s.userRepo.GetByAuthUserID(ctx, identity.ID)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("get user by identity: %w", err)
	}
	if user != nil {
		return update(user)
	}

	now := time.Now()
	user = domain.NewUser(identity.ID, link, name, now, now)
	user.LinkedInID = optional(linkedInID)
	user.Headline = optional(headline)
	user.Company = optional(company)
	user.PhotoURL = optional(photoURL)
	user.Email = optional(identity.Email)
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateUser) {
			// Lost a create race with a concurrent submission; the other
			// request's row wins and we update it instead.
			existing, err := s.userRepo.GetByAuthUserID(ctx, identity.ID)
			if err != nil {
				return nil, fmt.Errorf("get user after duplicate insert: %w", err)
			}
			return update(existing)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *registrationService) activeEventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event by slug: %w", err)
	}
	if !event.IsActive {
		return nil, domain.ErrNotFound
	}
	return event, nil
}

func (s *registrationService) sendConfirmation(ctx context.Context, event *domain.Event, user *domain.User) {
	if s.emailService == nil || user.Email == nil || *user.Email == "" {
		return
	}
	data := &domain.RegistrationConfirmationEmailData{
		Email:        *user.Email,
		Name:         user.Name,
		EventName:    event.Name,
		DirectoryURL: fmt.Sprintf("%s/e/%s/directory", s.publicBaseURL, event.Slug),
		Language:     event.Language,
	}
	// Best effort: registration already succeeded, a mail failure is only logged.
	if err := s.emailService.SendRegistrationConfirmation(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "confirmation email failed", "event", event.Slug, "err", err)
	}
}

// DraftFromIdentity pre-fills a profile draft from identity claims. When the
// provider supplied a profile link but no display name, a name is guessed
// from the link's identifier.
func DraftFromIdentity(identity *domain.Identity) *domain.ProfileDraft {
	draft := &domain.ProfileDraft{
		Name:     strings.TrimSpace(identity.Name),
		PhotoURL: identity.PictureURL,
		Email:    identity.Email,
	}
	if link, err := linkedin.Normalize(identity.ProfileLink); err == nil {
		draft.LinkedInURL = link
		if draft.Name == "" {
			draft.Name = linkedin.IDToName(linkedin.ExtractID(link))
		}
	}
	return draft
}

// newQRCodeData derives the participant's unique QR token from the event and
// user it belongs to plus a random suffix.
func newQRCodeData(eventID, userID string) string {
	return fmt.Sprintf("meetlink:%s:%s:%s", eventID, userID, uuid.NewString())
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
