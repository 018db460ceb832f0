package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"meetlink/internal/domain"
)

type participantRepository struct {
	DB *sql.DB
}

func NewParticipantRepository(db *sql.DB) domain.ParticipantRepository {
	return &participantRepository{
		DB: db,
	}
}

func (r *participantRepository) Create(ctx context.Context, p *domain.Participant) error {
	query := `
		INSERT INTO participants (event_id, user_id, visibility, qr_code_data, custom_note, is_organizer, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		p.EventID, p.UserID, p.Visibility, p.QRCodeData, p.CustomNote, p.IsOrganizer, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return domain.ErrAlreadyRegistered
		}
		return err
	}
	return nil
}

func (r *participantRepository) GetByID(ctx context.Context, id string) (*domain.Participant, error) {
	query := `
		SELECT id, event_id, user_id, visibility, qr_code_data, custom_note, is_organizer, created_at, updated_at
		FROM participants
		WHERE id = $1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *participantRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Participant, error) {
	query := `
		SELECT id, event_id, user_id, visibility, qr_code_data, custom_note, is_organizer, created_at, updated_at
		FROM participants
		WHERE event_id = $1 AND user_id = $2
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, eventID, userID))
}

func (r *participantRepository) ListPublicByEventID(ctx context.Context, eventID string) ([]*domain.ParticipantWithUser, error) {
	query := `
		SELECT p.id, p.event_id, p.user_id, p.visibility, p.qr_code_data, p.custom_note, p.is_organizer, p.created_at, p.updated_at,
			u.id, u.auth_user_id, u.linkedin_url, u.linkedin_id, u.name, u.headline, u.photo_url, u.company, u.email, u.created_at, u.updated_at
		FROM participants p
		JOIN users u ON u.id = p.user_id
		WHERE p.event_id = $1 AND p.visibility = 'public'
		ORDER BY p.created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
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

func (r *participantRepository) CountPublicByEventID(ctx context.Context, eventID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM participants
		WHERE event_id = $1 AND visibility = 'public'
	`
	var n int
	if err := r.DB.QueryRowContext(ctx, query, eventID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *participantRepository) scanOne(row *sql.Row) (*domain.Participant, error) {
	p := &domain.Participant{}
	var noteNull sql.NullString
	err := row.Scan(
		&p.ID, &p.EventID, &p.UserID, &p.Visibility, &p.QRCodeData, &noteNull, &p.IsOrganizer, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if noteNull.Valid {
		p.CustomNote = &noteNull.String
	}
	return p, nil
}
