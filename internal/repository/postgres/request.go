package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Rrens/shopchat/internal/domain"
)

// RequestRepository implements domain.RequestRepository
type RequestRepository struct {
	pool *pgxpool.Pool
}

// NewRequestRepository creates a new request repository
func NewRequestRepository(pool *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{pool: pool}
}

// Create inserts a new request record
func (r *RequestRepository) Create(ctx context.Context, record *domain.RequestRecord) error {
	query := `
		INSERT INTO solicitudes (id, nombre, email, tipo, mensaje, cotizacion, respuesta_ia, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		record.ID,
		record.Nombre,
		record.Email,
		record.Tipo,
		record.Mensaje,
		record.Cotizacion,
		record.Respuesta,
		record.CreatedAt,
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
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	defer rows.Close()

	records := []domain.RequestRecord{}
	for rows.Next() {
		var rec domain.RequestRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.Nombre,
			&rec.Email,
			&rec.Tipo,
			&rec.Mensaje,
			&rec.Cotizacion,
			&rec.Respuesta,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	return records, nil
}
