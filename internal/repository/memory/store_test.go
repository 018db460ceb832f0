package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"meetlink/internal/domain"
)

func TestStore_EventSlugUniqueness(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	now := time.Now()

	first := domain.NewEvent("seoul-tech", "Seoul Tech Meetup", now, "Seoul", now, now)
	if err := s.Events().Create(ctx, first); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if first.ID == "" {
		t.Fatal("Create() did not assign an id")
	}

	dup := domain.NewEvent("seoul-tech", "Another Meetup", now, "Busan", now, now)
	if err := s.Events().Create(ctx, dup); !errors.Is(err, domain.ErrSlugTaken) {
		t.Fatalf("duplicate slug error = %v, want ErrSlugTaken", err)
	}

	got, err := s.Events().GetBySlug(ctx, "  SEOUL-tech ")
	if err != nil {
		t.Fatalf("GetBySlug() error = %v", err)
	}
	if got.ID != first.ID {
		t.Errorf("GetBySlug() = %q, want %q", got.ID, first.ID)
	}
}

func TestStore_UserIdentityUniqueness(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	now := time.Now()

	u := domain.NewUser("auth-1", "https://www.linkedin.com/in/kim-minji", "Kim Minji", now, now)
	if err := s.Users().Create(ctx, u); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	dup := domain.NewUser("auth-1", "https://www.linkedin.com/in/other", "Other", now, now)
	if err := s.Users().Create(ctx, dup); !errors.Is(err, domain.ErrDuplicateUser) {
		t.Fatalf("duplicate identity error = %v, want ErrDuplicateUser", err)
	}

	if _, err := s.Users().GetByAuthUserID(ctx, "auth-404"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("unknown identity error = %v, want ErrUserNotFound", err)
	}
}

func TestStore_ParticipantUniquePerEvent(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	now := time.Now()

	p := domain.NewParticipant("e1", "u1", domain.VisibilityPublic, "qr-1", false, now, now)
	if err := s.Participants().Create(ctx, p); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	dup := domain.NewParticipant("e1", "u1", domain.VisibilityPublic, "qr-2", false, now, now)
	if err := s.Participants().Create(ctx, dup); !errors.Is(err, domain.ErrAlreadyRegistered) {
		t.Fatalf("duplicate registration error = %v, want ErrAlreadyRegistered", err)
	}

	other := domain.NewParticipant("e2", "u1", domain.VisibilityPublic, "qr-3", false, now, now)
	if err := s.Participants().Create(ctx, other); err != nil {
		t.Errorf("same user on another event error = %v", err)
	}
}

func TestStore_ListPublicByEventID(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	now := time.Now()

	for i, name := range []string{"First", "Second", "Hidden"} {
		u := domain.NewUser("", "https://www.linkedin.com/in/u", name, now, now)
		if err := s.Users().Create(ctx, u); err != nil {
			t.Fatalf("Create user error = %v", err)
		}
		visibility := domain.VisibilityPublic
		if name == "Hidden" {
			visibility = domain.VisibilityHidden
		}
		registeredAt := now.Add(time.Duration(i) * time.Minute)
		p := domain.NewParticipant("e1", u.ID, visibility, "qr", false, registeredAt, registeredAt)
		if err := s.Participants().Create(ctx, p); err != nil {
			t.Fatalf("Create participant error = %v", err)
		}
	}

	got, err := s.Participants().ListPublicByEventID(ctx, "e1")
	if err != nil {
		t.Fatalf("ListPublicByEventID() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("listed %d participants, want 2 public", len(got))
	}
	if got[0].User.Name != "Second" || got[1].User.Name != "First" {
		t.Errorf("unexpected order: %q then %q", got[0].User.Name, got[1].User.Name)
	}

	n, err := s.Participants().CountPublicByEventID(ctx, "e1")
	if err != nil {
		t.Fatalf("CountPublicByEventID() error = %v", err)
	}
	if n != 2 {
		t.Errorf("count = %d, want 2", n)
	}
}

func TestStore_Connections(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	now := time.Now()

	u := domain.NewUser("", "https://www.linkedin.com/in/john-doe", "John Doe", now, now)
	if err := s.Users().Create(ctx, u); err != nil {
		t.Fatalf("Create user error = %v", err)
	}
	scanned := domain.NewParticipant("e1", u.ID, domain.VisibilityPublic, "qr", false, now, now)
	if err := s.Participants().Create(ctx, scanned); err != nil {
		t.Fatalf("Create participant error = %v", err)
	}

	c := domain.NewConnection("e1", "p-scanner", scanned.ID, domain.ConnectionQRScan, now)
	if err := s.Connections().Create(ctx, c); err != nil {
		t.Fatalf("Create connection error = %v", err)
	}

	got, err := s.Connections().ListByParticipantA(ctx, "p-scanner")
	if err != nil {
		t.Fatalf("ListByParticipantA() error = %v", err)
	}
	if len(got) != 1 || got[0].User.Name != "John Doe" {
		t.Errorf("ListByParticipantA() = %+v, want the scanned participant", got)
	}

	if rows, _ := s.Connections().ListByParticipantA(ctx, "p-nobody"); len(rows) != 0 {
		t.Errorf("expected no connections for stranger, got %d", len(rows))
	}
}

func TestLoadFixtures(t *testing.T) {
	s := NewStore()
	if err := LoadFixtures(s); err != nil {
		t.Fatalf("LoadFixtures() error = %v", err)
	}

	ctx := context.Background()
	event, err := s.Events().GetBySlug(ctx, "vibe-coding-sf-2025")
	if err != nil {
		t.Fatalf("seeded event missing: %v", err)
	}
	if event.OrganizerID == nil {
		t.Error("seeded event has no organizer")
	}

	n, err := s.Participants().CountPublicByEventID(ctx, event.ID)
	if err != nil {
		t.Fatalf("CountPublicByEventID() error = %v", err)
	}
	if n != 5 {
		t.Errorf("seeded %d participants, want 5", n)
	}
}
