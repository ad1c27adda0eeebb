package repositories

import (
	"context"
	"errors"

	"wardrobe-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

const userColumns = `id, name, email, phone, country_code, password_hash, phone_verified, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Phone,
		&u.CountryCode,
		&u.PasswordHash,
		&u.PhoneVerified,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users(name, email, phone, country_code, password_hash)
		VALUES($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	return r.DB.QueryRow(ctx, query,
		user.Name,
		user.Email,
		user.Phone,
		user.CountryCode,
		user.PasswordHash,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *UserRepository) Get(ctx context.Context, id int) (*models.User, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return user, err
}

// GetByPhone looks up a user by country code and national number
func (r *UserRepository) GetByPhone(ctx context.Context, countryCode, phone string) (*models.User, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE country_code = $1 AND phone = $2`,
		countryCode, phone,
	)
	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return user, err
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`,
		id, passwordHash,
	)
	return err
}

// MarkPhoneVerified records that the user completed OTP verification
func (r *UserRepository) MarkPhoneVerified(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE users SET phone_verified = TRUE, updated_at = NOW() WHERE id = $1`,
		id,
	)
	return err
}
