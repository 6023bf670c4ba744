package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Rrens/shopchat/internal/api/response"
	"github.com/Rrens/shopchat/internal/service"
)

var validate = validator.New()

// maxBodyBytes bounds every JSON request body
const maxBodyBytes = 1 << 20

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.BadRequest(w, "invalid request body")
		return false
	}
	return true
}

// fieldMessage maps the first failed field of err to a client message.
// Fields not listed fall back to def.
func fieldMessage(err error, messages map[string]string, def string) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return def
	}
	e := validationErrors[0]
	if msg, ok := messages[e.Field()+"."+e.Tag()]; ok {
		return msg
	}
	if msg, ok := messages[e.Field()]; ok {
		return msg
	}
	return def
}

// serviceError writes the response for an error returned by a service
func serviceError(w http.ResponseWriter, err error, internal string) {
	var inputErr *service.InputError
	if errors.As(err, &inputErr) {
		response.BadRequest(w, inputErr.Message)
		return
	}
	response.InternalError(w, internal)
}
