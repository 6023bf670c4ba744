package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MaxRequestListLimit caps how many request records a listing returns
const MaxRequestListLimit = 200

// RequestRecord is one persisted chat turn pair (a "solicitud")
type RequestRecord struct {
	ID         uuid.UUID `json:"id"`
	Nombre     *string   `json:"nombre"`
	Email      *string   `json:"email"`
	Tipo       string    `json:"tipo"`
	Mensaje    string    `json:"mensaje"`
	Cotizacion string    `json:"cotizacion"`
	Respuesta  string    `json:"respuesta_ia"`
	CreatedAt  time.Time `json:"created_at"`
}

// RequestRepository defines the interface for request record storage
type RequestRepository interface {
	Create(ctx context.Context, record *RequestRecord) error
	ListRecent(ctx context.Context, limit int) ([]RequestRecord, error)
}

// ChatRequest is the inbound body of POST /chat
type ChatRequest struct {
	SessionID string `json:"session_id" validate:"omitempty,max=128"`
	Mensaje   string `json:"mensaje" validate:"required"`
	Nombre    string `json:"nombre" validate:"omitempty,max=255"`
	Email     string `json:"email" validate:"omitempty,max=255"`
}

// ChatResponse is the body returned by POST /chat
type ChatResponse struct {
	Respuesta  string `json:"respuesta"`
	Cotizacion string `json:"cotizacion"`
	Modo       string `json:"modo"`
	SessionID  string `json:"session_id"`
	Intent     string `json:"intent,omitempty"`
}

// SetModeRequest is the inbound body of POST /set-mode
type SetModeRequest struct {
	SessionID string `json:"session_id" validate:"required,max=128"`
	Mode      string `json:"mode" validate:"omitempty,max=64"`
}

// ContactRequest is the inbound body of POST /contact
type ContactRequest struct {
	Nombre  string `json:"nombre" validate:"required,max=255"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Mensaje string `json:"mensaje" validate:"required,max=5000"`
}
