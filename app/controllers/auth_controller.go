package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/rasoi/app/models"
	"github.com/shashiranjanraj/rasoi/app/services"
	"github.com/shashiranjanraj/rasoi/pkg/bind"
	"github.com/shashiranjanraj/rasoi/pkg/middleware"
	"github.com/shashiranjanraj/rasoi/pkg/response"
	"github.com/shashiranjanraj/rasoi/pkg/validate"
)

// AuthController serves registration, login and profile endpoints.
type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

type sessionPayload struct {
	Token string             `json:"token"`
	User  models.AccountView `json:"user"`
}

// Register handles POST /api/auth/register. Multipart form with an optional
// image. The endpoint fixes the role to customer.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	c.register(w, r, models.RoleCustomer)
}

// RegisterManager handles POST /api/auth/register-manager. Same form plus an
// optional free-text cateringService business name.
func (c *AuthController) RegisterManager(w http.ResponseWriter, r *http.Request) {
	c.register(w, r, models.RoleManager)
}

func (c *AuthController) register(w http.ResponseWriter, r *http.Request, role models.Role) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	in := services.RegisterInput{
		Name:            r.FormValue("name"),
		Email:           r.FormValue("email"),
		Password:        r.FormValue("password"),
		PhoneNumber:     r.FormValue("phoneNumber"),
		CateringService: r.FormValue("cateringService"),
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

	account, token, err := c.auth.Register(r.Context(), in, role)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, sessionPayload{Token: token, User: account.View()})
}

// Login handles POST /api/auth/login.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	} else if validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	account, token, err := c.auth.Login(r.Context(), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, sessionPayload{Token: token, User: account.View()})
}

// Me handles GET /api/auth/me.
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.UserIDFromCtx(r.Context())

	account, err := c.auth.Me(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, account.View())
}

// UpdateProfile handles PUT /api/auth/profile. Multipart; empty fields keep
// the stored values. A fresh token is returned; old tokens stay valid until
// they expire.
func (c *AuthController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	in := services.ProfileInput{
		Name:            r.FormValue("name"),
		Email:           r.FormValue("email"),
		Password:        r.FormValue("password"),
		PhoneNumber:     r.FormValue("phoneNumber"),
		CateringService: r.FormValue("cateringService"),
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

	id, _ := middleware.UserIDFromCtx(r.Context())
	account, token, err := c.auth.UpdateProfile(r.Context(), id, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, sessionPayload{Token: token, User: account.View()})
}
