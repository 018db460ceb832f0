package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"meetlink/internal/domain"
)

var slugRegexp = regexp.MustCompile(`^[a-z0-9-]+$`)

type eventService struct {
	eventRepo       domain.EventRepository
	userRepo        domain.UserRepository
	participantRepo domain.ParticipantRepository
	contextTimeout  time.Duration
}

// NewEventService creates an EventService with the given repositories.
func NewEventService(
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	participantRepo domain.ParticipantRepository,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:       eventRepo,
		userRepo:        userRepo,
		participantRepo: participantRepo,
		contextTimeout:  timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, authUserID string, in *domain.CreateEventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, &domain.ValidationError{Field: "name", Code: domain.CodeEventNameRequired}
	}
	slug := strings.ToLower(strings.TrimSpace(in.Slug))
	if slug == "" {
		return nil, &domain.ValidationError{Field: "slug", Code: domain.CodeSlugRequired}
	}
	if !slugRegexp.MatchString(slug) {
		return nil, &domain.ValidationError{Field: "slug", Code: domain.CodeSlugInvalid}
	}
	if in.Date.IsZero() {
		return nil, &domain.ValidationError{Field: "date", Code: domain.CodeDateRequired}
	}
	location := strings.TrimSpace(in.Location)
	if location == "" {
		return nil, &domain.ValidationError{Field: "location", Code: domain.CodeLocationRequired}
	}

	now := time.Now()
	event := domain.NewEvent(slug, name, in.Date, location, now, now)
	event.EndDate = in.EndDate
	if desc := strings.TrimSpace(in.Description); desc != "" {
		event.Description = &desc
	}
	if cover := strings.TrimSpace(in.CoverImageURL); cover != "" {
		event.CoverImageURL = &cover
	}
	if in.DirectoryAccessDays != nil {
		if *in.DirectoryAccessDays < 0 {
			return nil, &domain.ValidationError{Field: "directory_access_days", Code: domain.CodeAccessDaysInvalid}
		}
		event.DirectoryAccessDays = *in.DirectoryAccessDays
	}
	switch in.Language {
	case domain.LanguageKorean, domain.LanguageEnglish, domain.LanguageBoth:
		event.Language = in.Language
	case "":
		// keep default
	default:
		return nil, fmt.Errorf("unknown language %q: %w", in.Language, domain.ErrInvalidInput)
	}

	// The creator may not have a user row yet; the event is still created and
	// the organizer link is filled in only when one exists.
	creator, err := s.userRepo.GetByAuthUserID(ctx, authUserID)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("get creator: %w", err)
	}
	if creator != nil {
		event.OrganizerID = &creator.ID
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		if errors.Is(err, domain.ErrSlugTaken) {
			return nil, domain.ErrSlugTaken
		}
		return nil, fmt.Errorf("create event: %w", err)
	}

	if creator != nil {
		p := domain.NewParticipant(event.ID, creator.ID, domain.VisibilityPublic, newQRCodeData(event.ID, creator.ID), true, now, now)
		if err := s.participantRepo.Create(ctx, p); err != nil && !errors.Is(err, domain.ErrAlreadyRegistered) {
			return nil, fmt.Errorf("register organizer: %w", err)
		}
	}
	return event, nil
}

func (s *eventService) GetEventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
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
