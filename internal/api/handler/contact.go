package handler

import (
	"net/http"

	"github.com/Rrens/shopchat/internal/api/response"
	"github.com/Rrens/shopchat/internal/domain"
	"github.com/Rrens/shopchat/internal/service"
)

// ContactHandler handles the contact form
type ContactHandler struct {
	contactService *service.ContactService
}

func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Send handles POST /contact
func (h *ContactHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req domain.ContactRequest
	if !decode(w, r, &req) {
		return
	}

	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, fieldMessage(err, map[string]string{
			"Email.email": "Email inválido.",
		}, "Datos de contacto incompletos."))
		return
	}

	result, err := h.contactService.Send(r.Context(), req)
	if err != nil {
		serviceError(w, err, "Error enviando correo de contacto.")
		return
	}

	response.OK(w, result)
}
