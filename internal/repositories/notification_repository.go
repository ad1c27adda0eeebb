package repositories

import (
	"context"

	"wardrobe-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type NotificationRepository struct {
	DB *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID int) ([]models.Notification, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, user_id, title, message, type, is_read, created_at, updated_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(
			&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type,
			&n.IsRead, &n.CreatedAt, &n.UpdatedAt,
		); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	query := `
		INSERT INTO notifications(user_id, title, message, type)
		VALUES($1, $2, $3, $4)
		RETURNING id, is_read, created_at, updated_at
	`

	return r.DB.QueryRow(ctx, query,
		n.UserID, n.Title, n.Message, n.Type,
	).Scan(&n.ID, &n.IsRead, &n.CreatedAt, &n.UpdatedAt)
}

func (r *NotificationRepository) MarkRead(ctx context.Context, userID, id int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE, updated_at = NOW() WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	return err
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE, updated_at = NOW() WHERE user_id = $1 AND is_read = FALSE`,
		userID,
	)
	return err
}

func (r *NotificationRepository) Delete(ctx context.Context, userID, id int) error {
	_, err := r.DB.Exec(ctx,
		`DELETE FROM notifications WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	return err
}

func (r *NotificationRepository) ClearAll(ctx context.Context, userID int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM notifications WHERE user_id = $1`, userID)
	return err
}
