package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"meetlink/internal/domain"
)

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{
		DB: db,
	}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (auth_user_id, linkedin_url, linkedin_id, name, headline, photo_url, company, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		u.AuthUserID, u.LinkedInURL, u.LinkedInID, u.Name, u.Headline, u.PhotoURL, u.Company, u.Email,
		u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return domain.ErrDuplicateUser
		}
		return err
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, auth_user_id, linkedin_url, linkedin_id, name, headline, photo_url, company, email, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByAuthUserID(ctx context.Context, authUserID string) (*domain.User, error) {
	query := `
		SELECT id, auth_user_id, linkedin_url, linkedin_id, name, headline, photo_url, company, email, created_at, updated_at
		FROM users
		WHERE auth_user_id = $1
	`
	u, err := r.scanOne(r.DB.QueryRowContext(ctx, query, authUserID))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `
		UPDATE users
		SET linkedin_url = $1, linkedin_id = $2, name = $3, headline = $4, photo_url = $5,
			company = $6, email = $7, updated_at = $8
		WHERE id = $9
	`
	result, err := r.DB.ExecContext(ctx, query,
		u.LinkedInURL, u.LinkedInID, u.Name, u.Headline, u.PhotoURL, u.Company, u.Email, u.UpdatedAt, u.ID,
	)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) scanOne(row *sql.Row) (*domain.User, error) {
	u := &domain.User{}
	var authIDNull, linkedInIDNull, headlineNull, photoNull, companyNull, emailNull sql.NullString
	err := row.Scan(
		&u.ID, &authIDNull, &u.LinkedInURL, &linkedInIDNull, &u.Name, &headlineNull, &photoNull,
		&companyNull, &emailNull, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
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
	return u, nil
}
