package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/rasoi/app/services"
	"github.com/shashiranjanraj/rasoi/pkg/bind"
	"github.com/shashiranjanraj/rasoi/pkg/response"
	"github.com/shashiranjanraj/rasoi/pkg/validate"
)

// FeedbackController serves the rating endpoints.
type FeedbackController struct {
	feedback *services.FeedbackService
}

func NewFeedbackController(feedback *services.FeedbackService) *FeedbackController {
	return &FeedbackController{feedback: feedback}
}

// Create handles POST /api/feedback. Customer.
func (c *FeedbackController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.FeedbackInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	} else if validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	fb, err := c.feedback.Create(r.Context(), caller(r), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, fb)
}

// ForService handles GET /api/feedback/{cateringServiceId}. Public.
func (c *FeedbackController) ForService(w http.ResponseWriter, r *http.Request) {
	out, err := c.feedback.ListForService(r.Context(), chi.URLParam(r, "cateringServiceId"))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, out)
}

// Managed handles GET /api/feedback/managed/{cateringServiceId}. Owning
// manager.
func (c *FeedbackController) Managed(w http.ResponseWriter, r *http.Request) {
	out, err := c.feedback.ListManaged(r.Context(), caller(r), chi.URLParam(r, "cateringServiceId"))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, out)
}

// All handles GET /api/feedback. Admin.
func (c *FeedbackController) All(w http.ResponseWriter, r *http.Request) {
	out, err := c.feedback.All(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, out)
}

// Delete handles DELETE /api/feedback/{id}. Admin moderation.
func (c *FeedbackController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.feedback.Delete(r.Context(), caller(r), chi.URLParam(r, "id")); err != nil {
		fail(w, r, err)
		return
	}
	response.Message(w, "Feedback deleted successfully")
}
