package handler

import (
	"errors"
	"net/http"

	"github.com/Rrens/shopchat/internal/api/response"
	"github.com/Rrens/shopchat/internal/service"
)

// AdminHandler handles back-office authentication
type AdminHandler struct {
	adminService *service.AdminService
}

func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// Login handles POST /admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Password string `json:"password" validate:"required"`
	}
	if !decode(w, r, &input) {
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, "password requerido")
		return
	}

	token, err := h.adminService.Login(r.Context(), input.Password)
	switch {
	case errors.Is(err, service.ErrAuthDisabled):
		response.NotFound(w, "admin login disabled")
		return
	case errors.Is(err, service.ErrUnauthorized):
		response.Unauthorized(w, "invalid credentials")
		return
	case err != nil:
		response.InternalError(w, "login failed")
		return
	}

	response.OK(w, token)
}
