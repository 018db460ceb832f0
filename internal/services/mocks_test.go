package services

import (
	"context"

	"meetlink/internal/domain"
)

type mockEventRepository struct {
	bySlug    map[string]*domain.Event
	byID      map[string]*domain.Event
	createErr error
	created   []*domain.Event
}

func (m *mockEventRepository) Create(ctx context.Context, event *domain.Event) error {
	if m.createErr != nil {
		return m.createErr
	}
	if event.ID == "" {
		event.ID = "ev-created"
	}
	m.created = append(m.created, event)
	return nil
}

func (m *mockEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if ev, ok := m.byID[id]; ok {
		return ev, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockEventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	if ev, ok := m.bySlug[slug]; ok {
		return ev, nil
	}
	return nil, domain.ErrNotFound
}

type mockUserRepository struct {
	byAuthID  map[string]*domain.User
	createErr error
	created   []*domain.User
	updated   []*domain.User
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	if user.ID == "" {
		user.ID = "u-created"
	}
	m.created = append(m.created, user)
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	for _, u := range m.byAuthID {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepository) GetByAuthUserID(ctx context.Context, authUserID string) (*domain.User, error) {
	if u, ok := m.byAuthID[authUserID]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepository) Update(ctx context.Context, user *domain.User) error {
	m.updated = append(m.updated, user)
	return nil
}

type mockParticipantRepository struct {
	byID        map[string]*domain.Participant
	byEventUser map[string]*domain.Participant
	public      []*domain.ParticipantWithUser
	count       int
	createErr   error
	created     []*domain.Participant
}

func (m *mockParticipantRepository) Create(ctx context.Context, p *domain.Participant) error {
	if m.createErr != nil {
		return m.createErr
	}
	if p.ID == "" {
		p.ID = "p-created"
	}
	m.created = append(m.created, p)
	return nil
}

func (m *mockParticipantRepository) GetByID(ctx context.Context, id string) (*domain.Participant, error) {
	if p, ok := m.byID[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockParticipantRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Participant, error) {
	if p, ok := m.byEventUser[eventID+":"+userID]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockParticipantRepository) ListPublicByEventID(ctx context.Context, eventID string) ([]*domain.ParticipantWithUser, error) {
	return m.public, nil
}

func (m *mockParticipantRepository) CountPublicByEventID(ctx context.Context, eventID string) (int, error) {
	return m.count, nil
}

type mockConnectionRepository struct {
	rows    []*domain.ParticipantWithUser
	created []*domain.Connection
	err     error
}

func (m *mockConnectionRepository) Create(ctx context.Context, c *domain.Connection) error {
	if m.err != nil {
		return m.err
	}
	if c.ID == "" {
		c.ID = "c-created"
	}
	m.created = append(m.created, c)
	return nil
}

func (m *mockConnectionRepository) ListByParticipantA(ctx context.Context, participantID string) ([]*domain.ParticipantWithUser, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.rows, nil
}

type mockEmailService struct {
	sent []*domain.RegistrationConfirmationEmailData
	err  error
}

func (m *mockEmailService) SendRegistrationConfirmation(ctx context.Context, data *domain.RegistrationConfirmationEmailData) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, data)
	return nil
}

func strptr(s string) *string { return &s }
