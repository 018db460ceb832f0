package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"

	"meetlink/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (slug, name, date, end_date, location, description, cover_image_url,
			directory_access_days, language, organizer_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		e.Slug, e.Name, e.Date, e.EndDate, e.Location, e.Description, e.CoverImageURL,
		e.DirectoryAccessDays, e.Language, e.OrganizerID, e.IsActive, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return domain.ErrSlugTaken
		}
		return err
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, slug, name, date, end_date, location, description, cover_image_url,
			directory_access_days, language, organizer_id, is_active, created_at, updated_at
		FROM events
		WHERE id = $1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *eventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	query := `
		SELECT id, slug, name, date, end_date, location, description, cover_image_url,
			directory_access_days, language, organizer_id, is_active, created_at, updated_at
		FROM events
		WHERE slug = $1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, slug))
}

func (r *eventRepository) scanOne(row *sql.Row) (*domain.Event, error) {
	e := &domain.Event{}
	var endDateNull sql.NullTime
	var descNull, coverNull, organizerNull sql.NullString
	err := row.Scan(
		&e.ID, &e.Slug, &e.Name, &e.Date, &endDateNull, &e.Location, &descNull, &coverNull,
		&e.DirectoryAccessDays, &e.Language, &organizerNull, &e.IsActive, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if endDateNull.Valid {
		e.EndDate = &endDateNull.Time
	}
	if descNull.Valid {
		e.Description = &descNull.String
	}
	if coverNull.Valid {
		e.CoverImageURL = &coverNull.String
	}
	if organizerNull.Valid {
		e.OrganizerID = &organizerNull.String
	}
	return e, nil
}
