package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/rasoi/app/services"
	"github.com/shashiranjanraj/rasoi/pkg/bind"
	"github.com/shashiranjanraj/rasoi/pkg/response"
	"github.com/shashiranjanraj/rasoi/pkg/validate"
)

// ContactController serves the support inbox endpoints.
type ContactController struct {
	contacts *services.ContactService
}

func NewContactController(contacts *services.ContactService) *ContactController {
	return &ContactController{contacts: contacts}
}

// Send handles POST /api/contact. Customer or manager.
func (c *ContactController) Send(w http.ResponseWriter, r *http.Request) {
	var in services.ContactInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	} else if validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	msg, err := c.contacts.Send(r.Context(), caller(r), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, msg)
}

// All handles GET /api/contact. Admin, newest first.
func (c *ContactController) All(w http.ResponseWriter, r *http.Request) {
	out, err := c.contacts.All(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, out)
}
