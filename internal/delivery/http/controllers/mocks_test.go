package controllers

import (
	"context"
	"io"
	"log/slog"
	"time"

	"meetlink/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubRegistrationService struct {
	state       domain.RegistrationState
	statusErr   error
	participant *domain.Participant
	created     bool
	joinErr     error
	joinedWith  *domain.JoinInput
}

func (s *stubRegistrationService) Status(ctx context.Context, slug string, identity *domain.Identity) (domain.RegistrationState, error) {
	if s.statusErr != nil {
		return "", s.statusErr
	}
	return s.state, nil
}

func (s *stubRegistrationService) Join(ctx context.Context, slug string, identity *domain.Identity, in *domain.JoinInput) (*domain.Participant, bool, error) {
	s.joinedWith = in
	if s.joinErr != nil {
		return nil, false, s.joinErr
	}
	return s.participant, s.created, nil
}

type stubDirectoryService struct {
	decision domain.DirectoryDecision
	event    *domain.Event
	authErr  error
	views    []*domain.ParticipantView
	count    int
}

func (s *stubDirectoryService) Authorize(ctx context.Context, slug string, identity *domain.Identity) (domain.DirectoryDecision, *domain.Event, error) {
	if s.authErr != nil {
		return "", nil, s.authErr
	}
	return s.decision, s.event, nil
}

func (s *stubDirectoryService) List(ctx context.Context, eventID, query string) ([]*domain.ParticipantView, error) {
	return s.views, nil
}

func (s *stubDirectoryService) Count(ctx context.Context, eventID string) (int, error) {
	return s.count, nil
}

type stubEventService struct {
	event     *domain.Event
	createErr error
	getErr    error
}

func (s *stubEventService) CreateEvent(ctx context.Context, authUserID string, in *domain.CreateEventInput) (*domain.Event, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.event, nil
}

func (s *stubEventService) GetEventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.event, nil
}

type stubConnectionService struct {
	conn       *domain.Connection
	connectErr error
	rows       []*domain.ParticipantWithUser
	listErr    error
}

func (s *stubConnectionService) Connect(ctx context.Context, authUserID, eventSlug, scannedParticipantID string, connectionType domain.ConnectionType) (*domain.Connection, error) {
	if s.connectErr != nil {
		return nil, s.connectErr
	}
	return s.conn, nil
}

func (s *stubConnectionService) ListMine(ctx context.Context, authUserID, participantID string) ([]*domain.ParticipantWithUser, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.rows, nil
}

type stubProvider struct {
	identity *domain.Identity
	exchErr  error
}

func (p *stubProvider) AuthCodeURL(state string) string {
	return "https://provider.example/authorize?state=" + state
}

func (p *stubProvider) Exchange(ctx context.Context, code string) (*domain.Identity, error) {
	if p.exchErr != nil {
		return nil, p.exchErr
	}
	return p.identity, nil
}

type stubIssuer struct {
	token string
	err   error
}

func (i *stubIssuer) Issue(authUserID, email string, expiry time.Duration) (string, error) {
	return i.token, i.err
}
