package repositories

import (
	"context"

	"wardrobe-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WardrobeRepository struct {
	DB *pgxpool.Pool
}

func NewWardrobeRepository(db *pgxpool.Pool) *WardrobeRepository {
	return &WardrobeRepository{DB: db}
}

const itemColumns = `id, user_id, name, category, sub_category, image_url, color, brand, size, created_at, updated_at`

func scanItems(rows pgx.Rows) ([]models.WardrobeItem, error) {
	defer rows.Close()

	items := []models.WardrobeItem{}
	for rows.Next() {
		var it models.WardrobeItem
		if err := rows.Scan(
			&it.ID, &it.UserID, &it.Name, &it.Category, &it.SubCategory,
			&it.ImageURL, &it.Color, &it.Brand, &it.Size, &it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// ListItems returns a user's wardrobe, newest first, optionally filtered
// by category.
func (r *WardrobeRepository) ListItems(ctx context.Context, userID int, category string) ([]models.WardrobeItem, error) {
	if category != "" {
		rows, err := r.DB.Query(ctx,
			`SELECT `+itemColumns+` FROM wardrobe_items WHERE user_id = $1 AND category = $2 ORDER BY created_at DESC`,
			userID, category,
		)
		if err != nil {
			return nil, err
		}
		return scanItems(rows)
	}

	rows, err := r.DB.Query(ctx,
		`SELECT `+itemColumns+` FROM wardrobe_items WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	return scanItems(rows)
}

func (r *WardrobeRepository) ListItemsBySubCategory(ctx context.Context, userID int, subCategory string) ([]models.WardrobeItem, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+itemColumns+` FROM wardrobe_items WHERE user_id = $1 AND sub_category = $2 ORDER BY created_at DESC`,
		userID, subCategory,
	)
	if err != nil {
		return nil, err
	}
	return scanItems(rows)
}

func (r *WardrobeRepository) CreateItem(ctx context.Context, item *models.WardrobeItem) error {
	query := `
		INSERT INTO wardrobe_items(user_id, name, category, sub_category, image_url, color, brand, size)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	return r.DB.QueryRow(ctx, query,
		item.UserID, item.Name, item.Category, item.SubCategory,
		item.ImageURL, item.Color, item.Brand, item.Size,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

func (r *WardrobeRepository) DeleteItem(ctx context.Context, userID, itemID int) error {
	_, err := r.DB.Exec(ctx,
		`DELETE FROM wardrobe_items WHERE id = $1 AND user_id = $2`,
		itemID, userID,
	)
	return err
}

const outfitColumns = `id, user_id, name, image_url, items, last_tried_at, favorite, created_at, updated_at`

func scanOutfits(rows pgx.Rows) ([]models.Outfit, error) {
	defer rows.Close()

	outfits := []models.Outfit{}
	for rows.Next() {
		var o models.Outfit
		if err := rows.Scan(
			&o.ID, &o.UserID, &o.Name, &o.ImageURL, &o.Items,
			&o.LastTriedAt, &o.Favorite, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, err
		}
		outfits = append(outfits, o)
	}
	return outfits, rows.Err()
}

// RecentOutfits returns outfits the user has actually tried, most recent
// first.
func (r *WardrobeRepository) RecentOutfits(ctx context.Context, userID, limit int) ([]models.Outfit, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT `+outfitColumns+`
		FROM outfits
		WHERE user_id = $1 AND last_tried_at IS NOT NULL
		ORDER BY last_tried_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	return scanOutfits(rows)
}

func (r *WardrobeRepository) ListOutfits(ctx context.Context, userID int) ([]models.Outfit, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+outfitColumns+` FROM outfits WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	return scanOutfits(rows)
}

func (r *WardrobeRepository) CreateOutfit(ctx context.Context, outfit *models.Outfit) error {
	query := `
		INSERT INTO outfits(user_id, name, image_url, items, favorite)
		VALUES($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	return r.DB.QueryRow(ctx, query,
		outfit.UserID, outfit.Name, outfit.ImageURL, outfit.Items, outfit.Favorite,
	).Scan(&outfit.ID, &outfit.CreatedAt, &outfit.UpdatedAt)
}

// MarkOutfitTried stamps last_tried_at for the recent-outfits carousel
func (r *WardrobeRepository) MarkOutfitTried(ctx context.Context, userID, outfitID int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE outfits SET last_tried_at = NOW(), updated_at = NOW() WHERE id = $1 AND user_id = $2`,
		outfitID, userID,
	)
	return err
}

func (r *WardrobeRepository) SetOutfitFavorite(ctx context.Context, userID, outfitID int, favorite bool) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE outfits SET favorite = $3, updated_at = NOW() WHERE id = $1 AND user_id = $2`,
		outfitID, userID, favorite,
	)
	return err
}
