package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/Rrens/shopchat/internal/domain"
)

// RequestRepository implements domain.RequestRepository
type RequestRepository struct {
	db *DB
}

// NewRequestRepository creates a new request repository
func NewRequestRepository(db *DB) *RequestRepository {
	return &RequestRepository{db: db}
}

// Create inserts a new request record
func (r *RequestRepository) Create(ctx context.Context, record *domain.RequestRecord) error {
	query := `
		INSERT INTO solicitudes (id, nombre, email, tipo, mensaje, cotizacion, respuesta_ia, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.conn.ExecContext(ctx, query,
		record.ID.String(),
		nullString(record.Nombre),
		nullString(record.Email),
		record.Tipo,
		record.Mensaje,
		record.Cotizacion,
		record.Respuesta,
		r.db.timeArg(record.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return nil
}

// ListRecent retrieves the newest request records first
func (r *RequestRepository) ListRecent(ctx context.Context, limit int) ([]domain.RequestRecord, error) {
	query := `
		SELECT id, nombre, email, tipo, mensaje, cotizacion, respuesta_ia, created_at
		FROM solicitudes
		ORDER BY ` + r.db.orderNewest() + `
		LIMIT ?
	`

	rows, err := r.db.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	defer rows.Close()

	records := []domain.RequestRecord{}
	for rows.Next() {
		var (
			rec           domain.RequestRecord
			id            string
			nombre, email sql.NullString
			createdAt     timestamp
		)
		if err := rows.Scan(&id, &nombre, &email, &rec.Tipo, &rec.Mensaje, &rec.Cotizacion, &rec.Respuesta, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}

		rec.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("invalid request id %q: %w", id, err)
		}
		rec.Nombre = fromNull(nombre)
		rec.Email = fromNull(email)
		rec.CreatedAt = createdAt.Time
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	return records, nil
}
