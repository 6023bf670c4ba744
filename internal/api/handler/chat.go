package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/Rrens/shopchat/internal/api/response"
	"github.com/Rrens/shopchat/internal/domain"
	"github.com/Rrens/shopchat/internal/service"
)

// ChatHandler handles the conversation endpoints
type ChatHandler struct {
	chatService *service.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Chat handles POST /chat
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req domain.ChatRequest
	if !decode(w, r, &req) {
		return
	}

	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, fieldMessage(err, map[string]string{
			"Mensaje":   "mensaje requerido",
			"SessionID": "session_id inválido",
		}, "datos inválidos"))
		return
	}

	resp, err := h.chatService.Chat(r.Context(), req)
	if err != nil {
		log.Error().Err(err).Str("session_id", req.SessionID).Msg("chat turn failed")
		serviceError(w, err, "Error conectando a la IA.")
		return
	}

	response.OK(w, resp)
}

// SetMode handles POST /set-mode
func (h *ChatHandler) SetMode(w http.ResponseWriter, r *http.Request) {
	var req domain.SetModeRequest
	if !decode(w, r, &req) {
		return
	}

	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, fieldMessage(err, map[string]string{
			"SessionID.required": "session_id requerido",
		}, "datos inválidos"))
		return
	}

	mode, err := h.chatService.SetMode(r.Context(), req)
	if err != nil {
		serviceError(w, err, "no se pudo cambiar el modo")
		return
	}

	response.OK(w, map[string]any{
		"ok":   true,
		"mode": mode,
	})
}

// Session handles GET /sessions/{sessionID}; ?full=1 adds the stored log
func (h *ChatHandler) Session(w http.ResponseWriter, r *http.Request) {
	full := false
	if raw := r.URL.Query().Get("full"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			response.BadRequest(w, "full inválido")
			return
		}
		full = v
	}

	view, err := h.chatService.History(r.Context(), chi.URLParam(r, "sessionID"), full)
	if err != nil {
		serviceError(w, err, "no se pudo leer la sesión")
		return
	}

	response.OK(w, view)
}
