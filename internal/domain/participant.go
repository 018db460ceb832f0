package domain

import (
	"context"
	"time"
)

// Visibility controls whether a participant appears in the event directory.
type Visibility string

const (
	VisibilityPublic          Visibility = "public"
	VisibilityConnectionsOnly Visibility = "connections_only"
	VisibilityHidden          Visibility = "hidden"
)

// Valid reports whether v is one of the known visibility values.
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityConnectionsOnly, VisibilityHidden:
		return true
	}
	return false
}

// Participant links one User to one Event. The (event_id, user_id) pair is
// unique: a person registers at most once per event.
// swagger:model Participant
type Participant struct {
	ID          string     `json:"id"`
	EventID     string     `json:"event_id"`
	UserID      string     `json:"user_id"`
	Visibility  Visibility `json:"visibility"`
	QRCodeData  string     `json:"qr_code_data"`
	CustomNote  *string    `json:"custom_note,omitempty"`
	IsOrganizer bool       `json:"is_organizer"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewParticipant creates a new Participant. ID is typically set by the repository on create.
func NewParticipant(eventID, userID string, visibility Visibility, qrCodeData string, isOrganizer bool, createdAt, updatedAt time.Time) *Participant {
	return &Participant{
		EventID:     eventID,
		UserID:      userID,
		Visibility:  visibility,
		QRCodeData:  qrCodeData,
		IsOrganizer: isOrganizer,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// ParticipantWithUser bundles a participant with its user row.
type ParticipantWithUser struct {
	Participant *Participant `json:"participant"`
	User        *User        `json:"user"`
}

// ParticipantRepository defines storage operations for participants.
type ParticipantRepository interface {
	// Create inserts the participant. A uniqueness violation on the
	// (event_id, user_id) pair is reported as ErrAlreadyRegistered.
	Create(ctx context.Context, p *Participant) error
	GetByID(ctx context.Context, id string) (*Participant, error)
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*Participant, error)
	// ListPublicByEventID returns public participants joined to their users,
	// most recently registered first.
	ListPublicByEventID(ctx context.Context, eventID string) ([]*ParticipantWithUser, error)
	CountPublicByEventID(ctx context.Context, eventID string) (int, error)
}

// RegistrationState describes where a visiting identity stands in the
// registration workflow for a given event.
type RegistrationState string

const (
	StateUnauthenticated           RegistrationState = "unauthenticated"
	StateAuthenticatedUnregistered RegistrationState = "authenticated_unregistered"
	StateRegistered                RegistrationState = "registered"
)

// JoinInput carries the profile a visitor submits when joining an event.
type JoinInput struct {
	Name        string
	Headline    string
	PhotoURL    string
	LinkedInURL string
	Company     string
	CustomNote  string
	Visibility  Visibility
}

// ProfileDraft is the pre-filled profile derived from identity claims,
// offered to the visitor before they submit the join form.
type ProfileDraft struct {
	Name        string `json:"name"`
	PhotoURL    string `json:"photo_url"`
	LinkedInURL string `json:"linkedin_url"`
	Email       string `json:"email"`
}

// RegistrationService governs the unauthenticated -> authenticated_unregistered
// -> registered workflow for an event resolved by slug.
type RegistrationService interface {
	// Status reports the caller's registration state for the event. A nil
	// identity yields StateUnauthenticated. An unresolvable slug is ErrNotFound.
	Status(ctx context.Context, slug string, identity *Identity) (RegistrationState, error)
	// Join validates the submitted profile, upserts the user row for the
	// identity, and creates the participant. Returns created=false when the
	// identity was already registered; a storage-level duplicate is treated
	// the same way, never as an error.
	Join(ctx context.Context, slug string, identity *Identity, in *JoinInput) (*Participant, bool, error)
}

// DirectoryDecision is the outcome of the directory access guard.
type DirectoryDecision string

const (
	DirectoryAllowed              DirectoryDecision = "allowed"
	DirectoryRequiresRegistration DirectoryDecision = "requires_registration"
	DirectoryRequiresLogin        DirectoryDecision = "requires_login"
	DirectoryWindowClosed         DirectoryDecision = "window_closed"
)

// ParticipantView is a directory entry. LinkPresentable reports whether the
// stored profile link still passes the domain/path check; consumers must not
// render a connect affordance when it is false.
type ParticipantView struct {
	Participant     *Participant `json:"participant"`
	User            *User        `json:"user"`
	LinkPresentable bool         `json:"link_presentable"`
}

// DirectoryService guards and serves the participant directory of an event.
type DirectoryService interface {
	// Authorize decides whether the identity may view the event's directory.
	// It is evaluated fresh on every call; registration state can change
	// between visits.
	Authorize(ctx context.Context, slug string, identity *Identity) (DirectoryDecision, *Event, error)
	// List returns public participants, newest first, filtered by the
	// optional case-insensitive query over name, headline, and company.
	List(ctx context.Context, eventID, query string) ([]*ParticipantView, error)
	Count(ctx context.Context, eventID string) (int, error)
}
