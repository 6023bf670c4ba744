package handler

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/Rrens/shopchat/internal/api/response"
	"github.com/Rrens/shopchat/internal/service"
)

// RequestHandler exposes the persisted chat requests
type RequestHandler struct {
	requestService *service.RequestService
}

func NewRequestHandler(requestService *service.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

// List handles GET /solicitudes?limit=
func (h *RequestHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			response.BadRequest(w, "limit inválido")
			return
		}
		limit = n
	}

	records, err := h.requestService.Recent(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to list requests")
		response.InternalError(w, "Error DB")
		return
	}

	response.OK(w, records)
}
