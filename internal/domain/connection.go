package domain

import (
	"context"
	"time"
)

// ConnectionType tags how a connection was made.
type ConnectionType string

const (
	ConnectionQRScan      ConnectionType = "qr_scan"
	ConnectionProfileView ConnectionType = "profile_view"
	ConnectionMutualScan  ConnectionType = "mutual_scan"
)

// Valid reports whether t is one of the known connection types.
func (t ConnectionType) Valid() bool {
	switch t {
	case ConnectionQRScan, ConnectionProfileView, ConnectionMutualScan:
		return true
	}
	return false
}

// Connection is a directed record from a scanning participant to a scanned
// participant. Both endpoints must belong to the same event.
// swagger:model Connection
type Connection struct {
	ID             string         `json:"id"`
	EventID        string         `json:"event_id"`
	ParticipantAID string         `json:"participant_a_id"`
	ParticipantBID string         `json:"participant_b_id"`
	ConnectionType ConnectionType `json:"connection_type"`
	CreatedAt      time.Time      `json:"created_at"`
}

// NewConnection creates a new Connection. ID is typically set by the repository on create.
func NewConnection(eventID, participantAID, participantBID string, connectionType ConnectionType, createdAt time.Time) *Connection {
	return &Connection{
		EventID:        eventID,
		ParticipantAID: participantAID,
		ParticipantBID: participantBID,
		ConnectionType: connectionType,
		CreatedAt:      createdAt,
	}
}

// ConnectionRepository defines storage operations for connections.
type ConnectionRepository interface {
	Create(ctx context.Context, c *Connection) error
	// ListByParticipantA returns the participants the given participant has
	// connected to, each joined to its user row, newest first.
	ListByParticipantA(ctx context.Context, participantID string) ([]*ParticipantWithUser, error)
}

// ConnectionService records and lists contact exchanges between participants.
type ConnectionService interface {
	// Connect records a connection from the caller's participant at the event
	// to the scanned participant. Both must belong to the event.
	Connect(ctx context.Context, authUserID, eventSlug, scannedParticipantID string, connectionType ConnectionType) (*Connection, error)
	// ListMine lists connections made by the given participant, which must
	// belong to the calling identity.
	ListMine(ctx context.Context, authUserID, participantID string) ([]*ParticipantWithUser, error)
}
