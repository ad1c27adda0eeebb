package repositories

import (
	"context"
	"errors"
	"time"

	"wardrobe-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OTPRepository struct {
	DB *pgxpool.Pool
}

func NewOTPRepository(db *pgxpool.Pool) *OTPRepository {
	return &OTPRepository{DB: db}
}

// Issue invalidates every outstanding OTP for the phone number and inserts
// the new one in a single transaction, so a racing double issuance can
// never leave two rows valid at once.
func (r *OTPRepository) Issue(ctx context.Context, otp *models.OTP) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`UPDATE otps SET is_valid = FALSE WHERE phone_number = $1 AND is_valid = TRUE`,
		otp.PhoneNumber,
	)
	if err != nil {
		return err
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO otps(phone_number, country_code, generated_otp, is_valid, attempts, expires_at)
		VALUES($1, $2, $3, TRUE, 0, $4)
		RETURNING id, created_at
	`,
		otp.PhoneNumber,
		otp.CountryCode,
		otp.Code,
		otp.ExpiresAt,
	).Scan(&otp.ID, &otp.CreatedAt)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// GetLatestValid retrieves the most recent outstanding OTP for a phone
// number. Returns (nil, nil) when none exists.
func (r *OTPRepository) GetLatestValid(ctx context.Context, phoneNumber string) (*models.OTP, error) {
	query := `
		SELECT id, phone_number, country_code, generated_otp, is_valid, attempts, created_at, expires_at, validated_at
		FROM otps
		WHERE phone_number = $1 AND is_valid = TRUE
		ORDER BY created_at DESC
		LIMIT 1
	`

	var otp models.OTP
	err := r.DB.QueryRow(ctx, query, phoneNumber).Scan(
		&otp.ID,
		&otp.PhoneNumber,
		&otp.CountryCode,
		&otp.Code,
		&otp.IsValid,
		&otp.Attempts,
		&otp.CreatedAt,
		&otp.ExpiresAt,
		&otp.ValidatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &otp, nil
}

// IncrementAttempts increments the verification attempt counter
func (r *OTPRepository) IncrementAttempts(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `UPDATE otps SET attempts = attempts + 1 WHERE id = $1`, id)
	return err
}

// Invalidate terminates an OTP without consuming it (expiry or lockout)
func (r *OTPRepository) Invalidate(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `UPDATE otps SET is_valid = FALSE WHERE id = $1`, id)
	return err
}

// Consume marks an OTP as successfully validated. A consumed row is never
// reactivated; resend always creates a new row.
func (r *OTPRepository) Consume(ctx context.Context, id int, validatedAt time.Time) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE otps SET is_valid = FALSE, validated_at = $2 WHERE id = $1`,
		id, validatedAt,
	)
	return err
}

// CleanupExpired removes day-old expired OTP records (run as a background job)
func (r *OTPRepository) CleanupExpired(ctx context.Context) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM otps WHERE expires_at < NOW() - INTERVAL '1 day'`)
	return err
}
