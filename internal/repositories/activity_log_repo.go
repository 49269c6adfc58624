package repositories

import (
	"context"

	"rentora/internal/models"

	"github.com/google/uuid"
)

// ActivityLogRepository is the append-only audit trail. Failures to write a
// log entry are logged and swallowed by callers; they never fail the
// operation being audited.
type ActivityLogRepository interface {
	Create(ctx context.Context, entry *models.ActivityLog) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.ActivityLog, error)
}

type activityLogRepo struct {
	db DB
}

func NewActivityLogRepository(db DB) ActivityLogRepository {
	return &activityLogRepo{db: db}
}

func (r *activityLogRepo) Create(ctx context.Context, entry *models.ActivityLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	query := `
		INSERT INTO activity_logs (id, user_id, action, details, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	_, err := r.db.Exec(ctx, query, entry.ID, entry.UserID, entry.Action, entry.Details, entry.IPAddress)
	return err
}

func (r *activityLogRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.ActivityLog, error) {
	query := `
		SELECT id, user_id, action, details, ip_address, created_at
		FROM activity_logs
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.ActivityLog
	for rows.Next() {
		entry := &models.ActivityLog{}
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Action, &entry.Details, &entry.IPAddress, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
