package repositories

import (
	"context"
	"errors"

	"wardrobe-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OfferRepository struct {
	DB *pgxpool.Pool
}

func NewOfferRepository(db *pgxpool.Pool) *OfferRepository {
	return &OfferRepository{DB: db}
}

const offerColumns = `id, brand, discount, description, special_offer, image_url, validity_till,
	categories, terms, redemption_steps, is_active, created_at, updated_at`

// ListActive returns offers that are active and not past their validity
// date, newest first.
func (r *OfferRepository) ListActive(ctx context.Context) ([]models.Offer, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT `+offerColumns+`
		FROM offers
		WHERE is_active = TRUE AND validity_till >= CURRENT_DATE
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	offers := []models.Offer{}
	for rows.Next() {
		var o models.Offer
		if err := rows.Scan(
			&o.ID, &o.Brand, &o.Discount, &o.Description, &o.SpecialOffer,
			&o.ImageURL, &o.ValidityTill, &o.Categories, &o.Terms,
			&o.RedemptionSteps, &o.IsActive, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, err
		}
		offers = append(offers, o)
	}

	return offers, rows.Err()
}

// Get returns (nil, nil) when the offer does not exist
func (r *OfferRepository) Get(ctx context.Context, id int) (*models.Offer, error) {
	var o models.Offer
	err := r.DB.QueryRow(ctx,
		`SELECT `+offerColumns+` FROM offers WHERE id = $1`, id,
	).Scan(
		&o.ID, &o.Brand, &o.Discount, &o.Description, &o.SpecialOffer,
		&o.ImageURL, &o.ValidityTill, &o.Categories, &o.Terms,
		&o.RedemptionSteps, &o.IsActive, &o.CreatedAt, &o.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}
