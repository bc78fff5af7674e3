package repository

import (
	"context"

	"github.com/saeid-a/ProgramTrackBack/internal/models"
)

type AuditRepository struct {
	db DBTX
}

func NewAuditRepository(db DBTX) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Create(ctx context.Context, record *models.AuditRecord) error {
	query := `
		INSERT INTO audit_records (actor_id, action, target_id, detail)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	return r.db.QueryRow(ctx, query, record.ActorID, record.Action, record.TargetID, record.Detail).
		Scan(&record.ID, &record.CreatedAt)
}

// List returns newest records first. Records are append-only; there is no
// update or delete path.
func (r *AuditRepository) List(ctx context.Context, limit, offset int) ([]models.AuditRecord, error) {
	query := `
		SELECT id, actor_id, action, target_id, detail, created_at
		FROM audit_records
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]models.AuditRecord, 0)
	for rows.Next() {
		var record models.AuditRecord
		if err := rows.Scan(
			&record.ID,
			&record.ActorID,
			&record.Action,
			&record.TargetID,
			&record.Detail,
			&record.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
