package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"meetlink/internal/domain"
)

func TestDirectoryService_Authorize(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	open := activeEvent("e1", "seoul-tech")
	open.Date = now.AddDate(0, 0, -1)

	closed := activeEvent("e2", "last-year")
	closed.Date = now.AddDate(0, -6, 0)
	closed.DirectoryAccessDays = 30

	user := &domain.User{ID: "u1", AuthUserID: strptr("auth-1"), Name: "Kim Minji"}
	identity := &domain.Identity{ID: "auth-1"}

	tests := []struct {
		name     string
		slug     string
		identity *domain.Identity
		userRepo *mockUserRepository
		partRepo *mockParticipantRepository
		want     domain.DirectoryDecision
		wantErr  error
	}{
		{
			name:     "unknown slug",
			slug:     "nope",
			identity: identity,
			userRepo: &mockUserRepository{},
			partRepo: &mockParticipantRepository{},
			wantErr:  domain.ErrNotFound,
		},
		{
			name:     "anonymous visitor",
			slug:     "seoul-tech",
			identity: nil,
			userRepo: &mockUserRepository{},
			partRepo: &mockParticipantRepository{},
			want:     domain.DirectoryRequiresLogin,
		},
		{
			name:     "authenticated without user row",
			slug:     "seoul-tech",
			identity: identity,
			userRepo: &mockUserRepository{byAuthID: map[string]*domain.User{}},
			partRepo: &mockParticipantRepository{},
			want:     domain.DirectoryRequiresRegistration,
		},
		{
			name:     "user row but not a participant",
			slug:     "seoul-tech",
			identity: identity,
			userRepo: &mockUserRepository{byAuthID: map[string]*domain.User{"auth-1": user}},
			partRepo: &mockParticipantRepository{byEventUser: map[string]*domain.Participant{}},
			want:     domain.DirectoryRequiresRegistration,
		},
		{
			name:     "registered within window",
			slug:     "seoul-tech",
			identity: identity,
			userRepo: &mockUserRepository{byAuthID: map[string]*domain.User{"auth-1": user}},
			partRepo: &mockParticipantRepository{byEventUser: map[string]*domain.Participant{
				"e1:u1": {ID: "p1", EventID: "e1", UserID: "u1"},
			}},
			want: domain.DirectoryAllowed,
		},
		{
			name:     "window closed for attendee",
			slug:     "last-year",
			identity: identity,
			userRepo: &mockUserRepository{byAuthID: map[string]*domain.User{"auth-1": user}},
			partRepo: &mockParticipantRepository{byEventUser: map[string]*domain.Participant{
				"e2:u1": {ID: "p2", EventID: "e2", UserID: "u1"},
			}},
			want: domain.DirectoryWindowClosed,
		},
		{
			name:     "organizer bypasses closed window",
			slug:     "last-year",
			identity: identity,
			userRepo: &mockUserRepository{byAuthID: map[string]*domain.User{"auth-1": user}},
			partRepo: &mockParticipantRepository{byEventUser: map[string]*domain.Participant{
				"e2:u1": {ID: "p2", EventID: "e2", UserID: "u1", IsOrganizer: true},
			}},
			want: domain.DirectoryAllowed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eventRepo := &mockEventRepository{bySlug: map[string]*domain.Event{
				"seoul-tech": open,
				"last-year":  closed,
			}}
			svc := &directoryService{
				eventRepo:       eventRepo,
				userRepo:        tt.userRepo,
				participantRepo: tt.partRepo,
				now:             func() time.Time { return now },
			}

			got, event, err := svc.Authorize(context.Background(), tt.slug, tt.identity)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Authorize() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Authorize() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Authorize() = %q, want %q", got, tt.want)
			}
			if event == nil || event.Slug != tt.slug {
				t.Errorf("Authorize() event = %+v, want slug %q", event, tt.slug)
			}
		})
	}
}

func TestDirectoryService_List(t *testing.T) {
	rows := []*domain.ParticipantWithUser{
		{
			Participant: &domain.Participant{ID: "p1", EventID: "e1"},
			User:        &domain.User{ID: "u1", Name: "Kim Minji", Headline: strptr("Backend Engineer"), Company: strptr("Acme"), LinkedInURL: "https://www.linkedin.com/in/kim-minji"},
		},
		{
			Participant: &domain.Participant{ID: "p2", EventID: "e1"},
			User:        &domain.User{ID: "u2", Name: "John Doe", Company: strptr("Globex"), LinkedInURL: "https://www.linkedin.com/in/john-doe"},
		},
		{
			Participant: &domain.Participant{ID: "p3", EventID: "e1"},
			User:        &domain.User{ID: "u3", Name: "Lee Jiwoo", LinkedInURL: "https://linkedin.com/company/acme"},
		},
	}

	tests := []struct {
		name    string
		query   string
		wantIDs []string
	}{
		{"empty query returns all", "", []string{"p1", "p2", "p3"}},
		{"matches name case-insensitively", "MINJI", []string{"p1"}},
		{"matches headline", "backend", []string{"p1"}},
		{"matches company", "globex", []string{"p2"}},
		{"no match", "quantum", []string{}},
		{"query is trimmed", "  doe  ", []string{"p2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewDirectoryService(&mockEventRepository{}, &mockUserRepository{}, &mockParticipantRepository{public: rows})

			got, err := svc.List(context.Background(), "e1", tt.query)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("List() returned %d entries, want %d", len(got), len(tt.wantIDs))
			}
			for i, v := range got {
				if v.Participant.ID != tt.wantIDs[i] {
					t.Errorf("List()[%d] = %q, want %q", i, v.Participant.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestDirectoryService_List_LinkPresentable(t *testing.T) {
	rows := []*domain.ParticipantWithUser{
		{
			Participant: &domain.Participant{ID: "p1"},
			User:        &domain.User{ID: "u1", Name: "Kim Minji", LinkedInURL: "https://www.linkedin.com/in/kim-minji"},
		},
		{
			Participant: &domain.Participant{ID: "p2"},
			User:        &domain.User{ID: "u2", Name: "Lee Jiwoo", LinkedInURL: "https://linkedin.com/company/acme"},
		},
	}
	svc := NewDirectoryService(&mockEventRepository{}, &mockUserRepository{}, &mockParticipantRepository{public: rows})

	got, err := svc.List(context.Background(), "e1", "")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if !got[0].LinkPresentable {
		t.Error("profile link should be presentable")
	}
	if got[1].LinkPresentable {
		t.Error("company link should not be presentable")
	}
}

func TestDirectoryService_Count(t *testing.T) {
	svc := NewDirectoryService(&mockEventRepository{}, &mockUserRepository{}, &mockParticipantRepository{count: 42})

	n, err := svc.Count(context.Background(), "e1")
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 42 {
		t.Errorf("Count() = %d, want 42", n)
	}
}
