package repositories

import (
	"context"
	"errors"

	"wardrobe-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProfileRepository struct {
	DB *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

const profileColumns = `id, user_id, gender, height, weight, skin_tone, profile_picture_url,
	chest_measurement, waist_measurement, hips_measurement, inseam_measurement,
	shoe_size, clothing_size, preferred_fit, style_preferences, body_type,
	additional_notes, measurements_metadata, created_at, updated_at`

func scanProfile(row pgx.Row) (*models.UserProfile, error) {
	var p models.UserProfile
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Gender,
		&p.Height,
		&p.Weight,
		&p.SkinTone,
		&p.ProfilePictureURL,
		&p.ChestMeasurement,
		&p.WaistMeasurement,
		&p.HipsMeasurement,
		&p.InseamMeasurement,
		&p.ShoeSize,
		&p.ClothingSize,
		&p.PreferredFit,
		&p.StylePreferences,
		&p.BodyType,
		&p.AdditionalNotes,
		&p.MeasurementsMetadata,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) Create(ctx context.Context, p *models.UserProfile) error {
	query := `
		INSERT INTO user_profiles(user_id, gender, height, weight, skin_tone, profile_picture_url,
			chest_measurement, waist_measurement, hips_measurement, inseam_measurement,
			shoe_size, clothing_size, preferred_fit, style_preferences, body_type,
			additional_notes, measurements_metadata)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id, created_at, updated_at
	`

	return r.DB.QueryRow(ctx, query,
		p.UserID, p.Gender, p.Height, p.Weight, p.SkinTone, p.ProfilePictureURL,
		p.ChestMeasurement, p.WaistMeasurement, p.HipsMeasurement, p.InseamMeasurement,
		p.ShoeSize, p.ClothingSize, p.PreferredFit, p.StylePreferences, p.BodyType,
		p.AdditionalNotes, p.MeasurementsMetadata,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// GetByUserID returns (nil, nil) when the user has no profile yet
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int) (*models.UserProfile, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM user_profiles WHERE user_id = $1`, userID)
	profile, err := scanProfile(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return profile, err
}

func (r *ProfileRepository) Update(ctx context.Context, p *models.UserProfile) error {
	query := `
		UPDATE user_profiles SET
			gender = $2, height = $3, weight = $4, skin_tone = $5, profile_picture_url = $6,
			chest_measurement = $7, waist_measurement = $8, hips_measurement = $9,
			inseam_measurement = $10, shoe_size = $11, clothing_size = $12, preferred_fit = $13,
			style_preferences = $14, body_type = $15, additional_notes = $16,
			measurements_metadata = $17, updated_at = NOW()
		WHERE user_id = $1
		RETURNING id, created_at, updated_at
	`

	return r.DB.QueryRow(ctx, query,
		p.UserID, p.Gender, p.Height, p.Weight, p.SkinTone, p.ProfilePictureURL,
		p.ChestMeasurement, p.WaistMeasurement, p.HipsMeasurement, p.InseamMeasurement,
		p.ShoeSize, p.ClothingSize, p.PreferredFit, p.StylePreferences, p.BodyType,
		p.AdditionalNotes, p.MeasurementsMetadata,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// Upsert inserts or updates the profile keyed by user_id
func (r *ProfileRepository) Upsert(ctx context.Context, p *models.UserProfile) error {
	query := `
		INSERT INTO user_profiles(user_id, gender, height, weight, skin_tone, profile_picture_url,
			chest_measurement, waist_measurement, hips_measurement, inseam_measurement,
			shoe_size, clothing_size, preferred_fit, style_preferences, body_type,
			additional_notes, measurements_metadata)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (user_id) DO UPDATE SET
			gender = EXCLUDED.gender,
			height = EXCLUDED.height,
			weight = EXCLUDED.weight,
			skin_tone = EXCLUDED.skin_tone,
			profile_picture_url = EXCLUDED.profile_picture_url,
			chest_measurement = EXCLUDED.chest_measurement,
			waist_measurement = EXCLUDED.waist_measurement,
			hips_measurement = EXCLUDED.hips_measurement,
			inseam_measurement = EXCLUDED.inseam_measurement,
			shoe_size = EXCLUDED.shoe_size,
			clothing_size = EXCLUDED.clothing_size,
			preferred_fit = EXCLUDED.preferred_fit,
			style_preferences = EXCLUDED.style_preferences,
			body_type = EXCLUDED.body_type,
			additional_notes = EXCLUDED.additional_notes,
			measurements_metadata = EXCLUDED.measurements_metadata,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	return r.DB.QueryRow(ctx, query,
		p.UserID, p.Gender, p.Height, p.Weight, p.SkinTone, p.ProfilePictureURL,
		p.ChestMeasurement, p.WaistMeasurement, p.HipsMeasurement, p.InseamMeasurement,
		p.ShoeSize, p.ClothingSize, p.PreferredFit, p.StylePreferences, p.BodyType,
		p.AdditionalNotes, p.MeasurementsMetadata,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProfileRepository) SetProfilePicture(ctx context.Context, userID int, url string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE user_profiles SET profile_picture_url = $2, updated_at = NOW() WHERE user_id = $1`,
		userID, url,
	)
	return err
}

func (r *ProfileRepository) Delete(ctx context.Context, userID int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM user_profiles WHERE user_id = $1`, userID)
	return err
}
