// Package memory implements the repository interfaces on an in-process store.
// It backs local development and demo deployments that run without Postgres.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"meetlink/internal/domain"
)

// Store holds all tables behind a single lock. Values are copied on the way
// in and out so callers never share memory with the store.
type Store struct {
	mu           sync.RWMutex
	events       map[string]*domain.Event
	eventsBySlug map[string]string
	users        map[string]*domain.User
	usersByAuth  map[string]string
	participants map[string]*domain.Participant
	connections  []*domain.Connection
}

func NewStore() *Store {
	return &Store{
		events:       make(map[string]*domain.Event),
		eventsBySlug: make(map[string]string),
		users:        make(map[string]*domain.User),
		usersByAuth:  make(map[string]string),
		participants: make(map[string]*domain.Participant),
	}
}

func (s *Store) Events() domain.EventRepository             { return &eventStore{s} }
func (s *Store) Users() domain.UserRepository               { return &userStore{s} }
func (s *Store) Participants() domain.ParticipantRepository { return &participantStore{s} }
func (s *Store) Connections() domain.ConnectionRepository   { return &connectionStore{s} }

type eventStore struct{ s *Store }

func (r *eventStore) Create(ctx context.Context, e *domain.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, taken := r.s.eventsBySlug[e.Slug]; taken {
		return domain.ErrSlugTaken
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	cp := *e
	r.s.events[e.ID] = &cp
	r.s.eventsBySlug[e.Slug] = e.ID
	return nil
}

func (r *eventStore) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *eventStore) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.eventsBySlug[strings.ToLower(strings.TrimSpace(slug))]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *r.s.events[id]
	return &cp, nil
}

type userStore struct{ s *Store }

func (r *userStore) Create(ctx context.Context, u *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u.AuthUserID != nil {
		if _, taken := r.s.usersByAuth[*u.AuthUserID]; taken {
			return domain.ErrDuplicateUser
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	cp := *u
	r.s.users[u.ID] = &cp
	if u.AuthUserID != nil {
		r.s.usersByAuth[*u.AuthUserID] = u.ID
	}
	return nil
}

func (r *userStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *userStore) GetByAuthUserID(ctx context.Context, authUserID string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.usersByAuth[authUserID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *r.s.users[id]
	return &cp, nil
}

func (r *userStore) Update(ctx context.Context, u *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

type participantStore struct{ s *Store }

func (r *participantStore) Create(ctx context.Context, p *domain.Participant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.participants {
		if existing.EventID == p.EventID && existing.UserID == p.UserID {
			return domain.ErrAlreadyRegistered
		}
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	cp := *p
	r.s.participants[p.ID] = &cp
	return nil
}

func (r *participantStore) GetByID(ctx context.Context, id string) (*domain.Participant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.participants[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *participantStore) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Participant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.participants {
		if p.EventID == eventID && p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *participantStore) ListPublicByEventID(ctx context.Context, eventID string) ([]*domain.ParticipantWithUser, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.ParticipantWithUser, 0)
	for _, p := range r.s.participants {
		if p.EventID != eventID || p.Visibility != domain.VisibilityPublic {
			continue
		}
		u, ok := r.s.users[p.UserID]
		if !ok {
			continue
		}
		pc, uc := *p, *u
		out = append(out, &domain.ParticipantWithUser{Participant: &pc, User: &uc})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Participant.CreatedAt.After(out[j].Participant.CreatedAt)
	})
	return out, nil
}

func (r *participantStore) CountPublicByEventID(ctx context.Context, eventID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, p := range r.s.participants {
		if p.EventID == eventID && p.Visibility == domain.VisibilityPublic {
			n++
		}
	}
	return n, nil
}

type connectionStore struct{ s *Store }

func (r *connectionStore) Create(ctx context.Context, c *domain.Connection) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	cp := *c
	r.s.connections = append(r.s.connections, &cp)
	return nil
}

func (r *connectionStore) ListByParticipantA(ctx context.Context, participantID string) ([]*domain.ParticipantWithUser, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.ParticipantWithUser, 0)
	for i := len(r.s.connections) - 1; i >= 0; i-- {
		c := r.s.connections[i]
		if c.ParticipantAID != participantID {
			continue
		}
		p, ok := r.s.participants[c.ParticipantBID]
		if !ok {
			continue
		}
		u, ok := r.s.users[p.UserID]
		if !ok {
			continue
		}
		pc, uc := *p, *u
		out = append(out, &domain.ParticipantWithUser{Participant: &pc, User: &uc})
	}
	return out, nil
}
