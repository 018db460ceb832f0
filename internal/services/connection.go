package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"meetlink/internal/domain"
)

type connectionService struct {
	eventRepo       domain.EventRepository
	userRepo        domain.UserRepository
	participantRepo domain.ParticipantRepository
	connectionRepo  domain.ConnectionRepository
}

// NewConnectionService creates a ConnectionService with the given repositories.
func NewConnectionService(
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	participantRepo domain.ParticipantRepository,
	connectionRepo domain.ConnectionRepository,
) domain.ConnectionService {
	return &connectionService{
		eventRepo:       eventRepo,
		userRepo:        userRepo,
		participantRepo: participantRepo,
		connectionRepo:  connectionRepo,
	}
}

func (s *connectionService) Connect(ctx context.Context, authUserID, eventSlug, scannedParticipantID string, connectionType domain.ConnectionType) (*domain.Connection, error) {
	event, err := s.eventRepo.GetBySlug(ctx, eventSlug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event by slug: %w", err)
	}
	if !event.IsActive {
		return nil, domain.ErrNotFound
	}

	scanner, err := s.participantForUser(ctx, event.ID, authUserID)
	if err != nil {
		return nil, err
	}

	scanned, err := s.participantRepo.GetByID(ctx, scannedParticipantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get scanned participant: %w", err)
	}
	if scanned.EventID != event.ID {
		return nil, domain.ErrNotFound
	}
	if scanned.ID == scanner.ID {
		return nil, domain.ErrInvalidInput
	}

	if connectionType == "" {
		connectionType = domain.ConnectionQRScan
	}
	if !connectionType.Valid() {
		return nil, domain.ErrInvalidInput
	}

	conn := domain.NewConnection(event.ID, scanner.ID, scanned.ID, connectionType, time.Now())
	if err := s.connectionRepo.Create(ctx, conn); err != nil {
		return nil, fmt.Errorf("create connection: %w", err)
	}
	return conn, nil
}

func (s *connectionService) ListMine(ctx context.Context, authUserID, participantID string) ([]*domain.ParticipantWithUser, error) {
	p, err := s.participantRepo.GetByID(ctx, participantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get participant: %w", err)
	}

	user, err := s.userRepo.GetByAuthUserID(ctx, authUserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrForbidden
		}
		return nil, fmt.Errorf("get user by identity: %w", err)
	}
	// Connections are visible only to the participant who collected them.
	if p.UserID != user.ID {
		return nil, domain.ErrForbidden
	}

	rows, err := s.connectionRepo.ListByParticipantA(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}
	return rows, nil
}

func (s *connectionService) participantForUser(ctx context.Context, eventID, authUserID string) (*domain.Participant, error) {
	user, err := s.userRepo.GetByAuthUserID(ctx, authUserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrForbidden
		}
		return nil, fmt.Errorf("get user by identity: %w", err)
	}
	p, err := s.participantRepo.GetByEventAndUser(ctx, eventID, user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrForbidden
		}
		return nil, fmt.Errorf("get participant: %w", err)
	}
	return p, nil
}
