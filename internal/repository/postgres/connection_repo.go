package postgres

import (
	"context"
	"database/sql"

	"meetlink/internal/domain"
)

type connectionRepository struct {
	DB *sql.DB
}

func NewConnectionRepository(db *sql.DB) domain.ConnectionRepository {
	return &connectionRepository{
		DB: db,
	}
}

func (r *connectionRepository) Create(ctx context.Context, c *domain.Connection) error {
	query := `
		INSERT INTO connections (event_id, participant_a_id, participant_b_id, connection_type, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		c.EventID, c.ParticipantAID, c.ParticipantBID, c.ConnectionType, c.CreatedAt,
	).Scan(&c.ID)
}

func (r *connectionRepository) ListByParticipantA(ctx context.Context, participantID string) ([]*domain.ParticipantWithUser, error) {
	query := `
		SELECT p.id, p.event_id, p.user_id, p.visibility, p.qr_code_data, p.custom_note, p.is_organizer, p.created_at, p.updated_at,
			u.id, u.auth_user_id, u.linkedin_url, u.linkedin_id, u.name, u.headline, u.photo_url, u.company, u.email, u.created_at, u.updated_at
		FROM connections c
		JOIN participants p ON p.id = c.participant_b_id
		JOIN users u ON u.id = p.user_id
		WHERE c.participant_a_id = $1
		ORDER BY c.created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, participantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*domain.ParticipantWithUser, 0)
	for rows.Next() {
		p := &domain.Participant{}
		u := &domain.User{}
		var noteNull sql.NullString
		var authIDNull, linkedInIDNull, headlineNull, photoNull, companyNull, emailNull sql.NullString
		if err := rows.Scan(
			&p.ID, &p.EventID, &p.UserID, &p.Visibility, &p.QRCodeData, &noteNull, &p.IsOrganizer, &p.CreatedAt, &p.UpdatedAt,
			&u.ID, &authIDNull, &u.LinkedInURL, &linkedInIDNull, &u.Name, &headlineNull, &photoNull, &companyNull, &emailNull, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if noteNull.Valid {
			p.CustomNote = &noteNull.String
		}
		if authIDNull.Valid {
			u.AuthUserID = &authIDNull.String
		}
		if linkedInIDNull.Valid {
			u.LinkedInID = &linkedInIDNull.String
		}
		if headlineNull.Valid {
			u.Headline = &headlineNull.String
		}
		if photoNull.Valid {
			u.PhotoURL = &photoNull.String
		}
		if companyNull.Valid {
			u.Company = &companyNull.String
		}
		if emailNull.Valid {
			u.Email = &emailNull.String
		}
		out = append(out, &domain.ParticipantWithUser{Participant: p, User: u})
	}
	return out, rows.Err()
}
