package repositories

import (
	"context"

	"wardrobe-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type SMSLogRepository struct {
	DB *pgxpool.Pool
}

func NewSMSLogRepository(db *pgxpool.Pool) *SMSLogRepository {
	return &SMSLogRepository{DB: db}
}

func (r *SMSLogRepository) Create(ctx context.Context, log *models.SMSLog) error {
	query := `
		INSERT INTO sms_logs(phone, message_type, message, status, error_message, reference_id)
		VALUES($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	return r.DB.QueryRow(ctx, query,
		log.Phone,
		log.MessageType,
		log.Message,
		log.Status,
		log.ErrorMessage,
		log.ReferenceID,
	).Scan(&log.ID, &log.CreatedAt)
}

// List returns recent SMS logs for the admin view
func (r *SMSLogRepository) List(ctx context.Context, limit, offset int) ([]models.SMSLog, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, phone, message_type, message, status, COALESCE(error_message, ''), COALESCE(reference_id, ''), created_at
		FROM sms_logs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []models.SMSLog{}
	for rows.Next() {
		var l models.SMSLog
		if err := rows.Scan(
			&l.ID, &l.Phone, &l.MessageType, &l.Message,
			&l.Status, &l.ErrorMessage, &l.ReferenceID, &l.CreatedAt,
		); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}

	return logs, rows.Err()
}
