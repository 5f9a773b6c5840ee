package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/rasoi/app/services"
	"github.com/shashiranjanraj/rasoi/pkg/bind"
	"github.com/shashiranjanraj/rasoi/pkg/response"
	"github.com/shashiranjanraj/rasoi/pkg/validate"
)

// CateringController serves the provider listing endpoints.
type CateringController struct {
	catalog *services.CateringService
}

func NewCateringController(catalog *services.CateringService) *CateringController {
	return &CateringController{catalog: catalog}
}

// List handles GET /api/catering-services. Public; optional ?location=
// substring filter.
func (c *CateringController) List(w http.ResponseWriter, r *http.Request) {
	out, err := c.catalog.List(r.Context(), r.URL.Query().Get("location"))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, out)
}

// Filter handles GET /api/catering-services/filter?category=Veg|Non-Veg.
func (c *CateringController) Filter(w http.ResponseWriter, r *http.Request) {
	out, err := c.catalog.FilterByCategory(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, out)
}

// Get handles GET /api/catering-services/{id}. Public.
func (c *CateringController) Get(w http.ResponseWriter, r *http.Request) {
	svc, err := c.catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, svc)
}

// Managed handles GET /api/catering-services/managed. Manager-only.
func (c *CateringController) Managed(w http.ResponseWriter, r *http.Request) {
	out, err := c.catalog.Managed(r.Context(), caller(r))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, out)
}

// Create handles POST /api/catering-services. Manager, multipart.
func (c *CateringController) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	in := services.ServiceInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Location:    r.FormValue("location"),
	}
	if errs := bind.Validate(&in); validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	image, err := saveUpload(r, "image")
	if err != nil {
		fail(w, r, err)
		return
	}
	in.Image = image

	svc, err := c.catalog.Create(r.Context(), caller(r), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, svc)
}

// Update handles PUT /api/catering-services/{id}. Owning manager, multipart.
func (c *CateringController) Update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	in := services.UpdateServiceInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Location:    r.FormValue("location"),
	}
	if errs := bind.Validate(&in); validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	image, err := saveUpload(r, "image")
	if err != nil {
		fail(w, r, err)
		return
	}
	in.Image = image

	svc, err := c.catalog.Update(r.Context(), caller(r), chi.URLParam(r, "id"), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, svc)
}

// Delete handles DELETE /api/catering-services/{id}. Owning manager.
func (c *CateringController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.catalog.Delete(r.Context(), caller(r), chi.URLParam(r, "id")); err != nil {
		fail(w, r, err)
		return
	}
	response.Message(w, "Catering service deleted successfully")
}

// SetStatus handles PUT /api/catering-services/{id}/status. Admin.
func (c *CateringController) SetStatus(w http.ResponseWriter, r *http.Request) {
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

	svc, err := c.catalog.SetStatus(r.Context(), caller(r), chi.URLParam(r, "id"), in.Status)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, svc)
}
