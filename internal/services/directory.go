package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"meetlink/internal/domain"
	"meetlink/internal/linkedin"
)

type directoryService struct {
	eventRepo       domain.EventRepository
	userRepo        domain.UserRepository
	participantRepo domain.ParticipantRepository
	now             func() time.Time
}

// NewDirectoryService creates a DirectoryService with the given repositories.
func NewDirectoryService(
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	participantRepo domain.ParticipantRepository,
) domain.DirectoryService {
	return &directoryService{
		eventRepo:       eventRepo,
		userRepo:        userRepo,
		participantRepo: participantRepo,
		now:             time.Now,
	}
}

// Authorize runs before any participant data is fetched. It never caches:
// registration state can change between visits.
func (s *directoryService) Authorize(ctx context.Context, slug string, identity *domain.Identity) (domain.DirectoryDecision, *domain.Event, error) {
	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrNotFound
		}
		return "", nil, fmt.Errorf("get event by slug: %w", err)
	}
	if !event.IsActive {
		return "", nil, domain.ErrNotFound
	}

	if identity == nil {
		return domain.DirectoryRequiresLogin, event, nil
	}

	user, err := s.userRepo.GetByAuthUserID(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.DirectoryRequiresRegistration, event, nil
		}
		return "", nil, fmt.Errorf("get user by identity: %w", err)
	}

	p, err := s.participantRepo.GetByEventAndUser(ctx, event.ID, user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.DirectoryRequiresRegistration, event, nil
		}
		return "", nil, fmt.Errorf("get participant: %w", err)
	}

	// Organizers keep access to their own event after the window closes.
	if !event.DirectoryOpenAt(s.now()) && !p.IsOrganizer {
		return domain.DirectoryWindowClosed, event, nil
	}
	return domain.DirectoryAllowed, event, nil
}

func (s *directoryService) List(ctx context.Context, eventID, query string) ([]*domain.ParticipantView, error) {
	rows, err := s.participantRepo.ListPublicByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}

	query = strings.ToLower(strings.TrimSpace(query))
	views := make([]*domain.ParticipantView, 0, len(rows))
	for _, row := range rows {
		if query != "" && !matchesQuery(row.User, query) {
			continue
		}
		views = append(views, &domain.ParticipantView{
			Participant:     row.Participant,
			User:            row.User,
			LinkPresentable: linkedin.IsPresentable(row.User.LinkedInURL),
		})
	}
	return views, nil
}

func (s *directoryService) Count(ctx context.Context, eventID string) (int, error) {
	n, err := s.participantRepo.CountPublicByEventID(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("count participants: %w", err)
	}
	return n, nil
}

// matchesQuery reports whether the lowercased query is a substring of the
// user's name, headline, or company. Absent fields never match.
func matchesQuery(u *domain.User, query string) bool {
	if strings.Contains(strings.ToLower(u.Name), query) {
		return true
	}
	if u.Headline != nil && strings.Contains(strings.ToLower(*u.Headline), query) {
		return true
	}
	if u.Company != nil && strings.Contains(strings.ToLower(*u.Company), query) {
		return true
	}
	return false
}
