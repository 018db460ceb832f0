package domain

import (
	"context"
	"time"
)

// Event languages supported by the rendering layer.
const (
	LanguageKorean  = "ko"
	LanguageEnglish = "en"
	LanguageBoth    = "both"
)

// DefaultDirectoryAccessDays is the window after an event's end date during
// which the participant directory stays browsable.
const DefaultDirectoryAccessDays = 30

// Event represents a networking event
// swagger:model Event
type Event struct {
	ID                  string     `json:"id"`
	Slug                string     `json:"slug"`
	Name                string     `json:"name"`
	Date                time.Time  `json:"date"`
	EndDate             *time.Time `json:"end_date,omitempty"`
	Location            string     `json:"location"`
	Description         *string    `json:"description,omitempty"`
	CoverImageURL       *string    `json:"cover_image_url,omitempty"`
	DirectoryAccessDays int        `json:"directory_access_days"`
	Language            string     `json:"language"`
	OrganizerID         *string    `json:"organizer_id,omitempty"`
	IsActive            bool       `json:"is_active"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is typically set by the repository on create.
func NewEvent(slug, name string, date time.Time, location string, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Slug:                slug,
		Name:                name,
		Date:                date,
		Location:            location,
		DirectoryAccessDays: DefaultDirectoryAccessDays,
		Language:            LanguageBoth,
		IsActive:            true,
		CreatedAt:           createdAt,
		UpdatedAt:           updatedAt,
	}
}

// DirectoryOpenAt reports whether the directory access window is still open at t.
// The window runs until DirectoryAccessDays after the end date (or the event
// date when no end date is set).
func (e *Event) DirectoryOpenAt(t time.Time) bool {
	end := e.Date
	if e.EndDate != nil {
		end = *e.EndDate
	}
	return !t.After(end.AddDate(0, 0, e.DirectoryAccessDays))
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
}

// CreateEventInput carries the organizer-submitted event fields.
type CreateEventInput struct {
	Name                string
	Slug                string
	Date                time.Time
	EndDate             *time.Time
	Location            string
	Description         string
	CoverImageURL       string
	DirectoryAccessDays *int
	Language            string
}

// EventService defines organizer-facing event operations.
type EventService interface {
	// CreateEvent validates and stores a new event and auto-registers the
	// creator as an organizer participant when a user row exists for the
	// authenticated identity.
	CreateEvent(ctx context.Context, authUserID string, in *CreateEventInput) (*Event, error)
	GetEventBySlug(ctx context.Context, slug string) (*Event, error)
}
