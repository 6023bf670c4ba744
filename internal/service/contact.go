package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Rrens/shopchat/internal/domain"
	"github.com/Rrens/shopchat/internal/mailer"
	"github.com/Rrens/shopchat/internal/observability"
)

const (
	contactDisabledText = "El servicio de contacto no está activo en este momento. Por favor, usa el chat para obtener cotizaciones o detalles."
	contactSentText     = "Mensaje de contacto enviado exitosamente."
)

// ContactResult mirrors the body of POST /contact on a 200 response
type ContactResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ContactService forwards contact-form submissions by email
type ContactService struct {
	sender  mailer.Sender
	from    string
	to      string
	metrics *observability.Metrics
}

func NewContactService(sender mailer.Sender, from, to string, metrics *observability.Metrics) *ContactService {
	return &ContactService{sender: sender, from: from, to: to, metrics: metrics}
}

// Send validates the form, then emails it. Without a configured sender the
// result is {ok:false} and nothing is sent.
func (s *ContactService) Send(ctx context.Context, req domain.ContactRequest) (*ContactResult, error) {
	nombre := strings.TrimSpace(req.Nombre)
	email := strings.TrimSpace(req.Email)
	mensaje := strings.TrimSpace(req.Mensaje)
	if nombre == "" || email == "" || mensaje == "" {
		return nil, invalidInput("Datos de contacto incompletos.")
	}

	if s.sender == nil || !s.sender.Enabled() {
		s.metrics.IncContact("disabled")
		return &ContactResult{OK: false, Error: contactDisabledText}, nil
	}

	msg := mailer.ContactMessage(s.from, s.to, nombre, email, mensaje)
	if err := s.sender.Send(ctx, msg); err != nil {
		s.metrics.IncContact("failed")
		log.Error().Err(err).Str("email", email).Msg("failed to send contact email")
		return nil, fmt.Errorf("failed to send contact email: %w", err)
	}

	s.metrics.IncContact("sent")
	return &ContactResult{OK: true, Message: contactSentText}, nil
}
