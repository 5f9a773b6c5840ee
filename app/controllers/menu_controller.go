package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/rasoi/app/services"
	"github.com/shashiranjanraj/rasoi/pkg/bind"
	"github.com/shashiranjanraj/rasoi/pkg/response"
	"github.com/shashiranjanraj/rasoi/pkg/validate"
)

// MenuController serves the category and menu item endpoints.
type MenuController struct {
	menu *services.MenuService
}

func NewMenuController(menu *services.MenuService) *MenuController {
	return &MenuController{menu: menu}
}

// ─── Categories ───────────────────────────────────────────────────────────────

// ListCategories handles GET /api/categories?cateringServiceId=. Public.
func (c *MenuController) ListCategories(w http.ResponseWriter, r *http.Request) {
	out, err := c.menu.ListCategories(r.Context(), r.URL.Query().Get("cateringServiceId"))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, out)
}

// AddCategory handles POST /api/categories. Owning manager.
func (c *MenuController) AddCategory(w http.ResponseWriter, r *http.Request) {
	var in services.CategoryInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	} else if validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	category, err := c.menu.AddCategory(r.Context(), caller(r), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, category)
}

// DeleteCategory handles DELETE /api/categories/{id}. Owning manager.
func (c *MenuController) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := c.menu.DeleteCategory(r.Context(), caller(r), chi.URLParam(r, "id")); err != nil {
		fail(w, r, err)
		return
	}
	response.Message(w, "Category deleted successfully")
}

// ─── Items ────────────────────────────────────────────────────────────────────

// ListItems handles GET /api/menu-items. Public; filters category,
// cateringServiceId, minPrice, maxPrice.
func (c *MenuController) ListItems(w http.ResponseWriter, r *http.Request) {
	q := services.ItemQuery{
		Category:          r.URL.Query().Get("category"),
		CateringServiceID: r.URL.Query().Get("cateringServiceId"),
	}

	var err error
	if q.MinPrice, err = priceParam(r, "minPrice"); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid price range")
		return
	}
	if q.MaxPrice, err = priceParam(r, "maxPrice"); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid price range")
		return
	}

	out, err := c.menu.ListItems(r.Context(), q)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, out)
}

// ItemsByCategory handles GET /api/menu-items/{categoryId}. Public.
func (c *MenuController) ItemsByCategory(w http.ResponseWriter, r *http.Request) {
	out, err := c.menu.ItemsByCategory(r.Context(), chi.URLParam(r, "categoryId"))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, out)
}

// AddItem handles POST /api/menu-items. Owning manager, multipart.
func (c *MenuController) AddItem(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "The price field must be a number.")
		return
	}

	in := services.ItemInput{
		CategoryID:        r.FormValue("categoryId"),
		CateringServiceID: r.FormValue("cateringServiceId"),
		Name:              r.FormValue("name"),
		Price:             price,
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

	item, err := c.menu.AddItem(r.Context(), caller(r), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, item)
}

// UpdateItem handles PUT /api/menu-items/{id}. Owning manager, multipart.
// The stored cateringServiceId must be resubmitted as a confirmation value.
func (c *MenuController) UpdateItem(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	in := services.UpdateItemInput{
		CateringServiceID: r.FormValue("cateringServiceId"),
		Name:              r.FormValue("name"),
	}
	if raw := r.FormValue("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "The price field must be a number.")
			return
		}
		in.Price = &price
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

	item, err := c.menu.UpdateItem(r.Context(), caller(r), chi.URLParam(r, "id"), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, item)
}

// DeleteItem handles DELETE /api/menu-items/{id}. Owning manager.
func (c *MenuController) DeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := c.menu.DeleteItem(r.Context(), caller(r), chi.URLParam(r, "id")); err != nil {
		fail(w, r, err)
		return
	}
	response.Message(w, "Menu item deleted successfully")
}

func priceParam(r *http.Request, name string) (*float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
