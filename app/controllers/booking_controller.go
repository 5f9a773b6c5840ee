package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/rasoi/app/services"
	"github.com/shashiranjanraj/rasoi/pkg/bind"
	"github.com/shashiranjanraj/rasoi/pkg/response"
	"github.com/shashiranjanraj/rasoi/pkg/validate"
)

// BookingController serves the booking endpoints.
type BookingController struct {
	bookings *services.BookingService
}

func NewBookingController(bookings *services.BookingService) *BookingController {
	return &BookingController{bookings: bookings}
}

// Create handles POST /api/bookings. Customer.
func (c *BookingController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.BookingInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	} else if validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	booking, err := c.bookings.Create(r.Context(), caller(r), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, booking)
}

// Mine handles GET /api/bookings/my. Customer.
func (c *BookingController) Mine(w http.ResponseWriter, r *http.Request) {
	out, err := c.bookings.ListMine(r.Context(), caller(r))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, out)
}

// Managed handles GET /api/bookings/managed. Manager; bookings across every
// service they own.
func (c *BookingController) Managed(w http.ResponseWriter, r *http.Request) {
	out, err := c.bookings.ListManaged(r.Context(), caller(r))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, out)
}

// ForService handles GET /api/bookings/{cateringServiceId}. Owning manager.
func (c *BookingController) ForService(w http.ResponseWriter, r *http.Request) {
	out, err := c.bookings.ListForService(r.Context(), caller(r), chi.URLParam(r, "cateringServiceId"))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, out)
}

// SetStatus handles PUT /api/bookings/{id}. Manager owning the booked
// service; body carries only the status.
func (c *BookingController) SetStatus(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Status string `json:"status" validate:"required"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	} else if validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	booking, err := c.bookings.SetStatus(r.Context(), caller(r), chi.URLParam(r, "id"), in.Status)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, booking)
}

// All handles GET /api/bookings. Admin.
func (c *BookingController) All(w http.ResponseWriter, r *http.Request) {
	out, err := c.bookings.All(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, out)
}
