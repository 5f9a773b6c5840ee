// Package routes declares the HTTP surface. Role gates are attached here so
// the whole access table is readable in one place; ownership checks live in
// the services.
package routes

import (
	"github.com/shashiranjanraj/rasoi/app/controllers"
	"github.com/shashiranjanraj/rasoi/app/models"
	"github.com/shashiranjanraj/rasoi/pkg/rbac"
	"github.com/shashiranjanraj/rasoi/pkg/router"
)

// Controllers bundles the handlers wired by Register.
type Controllers struct {
	Auth     *controllers.AuthController
	Catering *controllers.CateringController
	Menu     *controllers.MenuController
	Booking  *controllers.BookingController
	Feedback *controllers.FeedbackController
	Contact  *controllers.ContactController
}

// Register mounts the API under /api. authn resolves the bearer token into a
// principal; routes without it are public.
func Register(r *router.Router, c Controllers, authn router.Middleware) {
	customer := rbac.HasRole(string(models.RoleCustomer))
	manager := rbac.HasRole(string(models.RoleManager))
	admin := rbac.HasRole(string(models.RoleAdmin))
	customerOrManager := rbac.HasRole(string(models.RoleCustomer), string(models.RoleManager))

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", "auth.register", c.Auth.Register)
	auth.Post("/register-manager", "auth.register-manager", c.Auth.RegisterManager)
	auth.Post("/login", "auth.login", c.Auth.Login)
	auth.Get("/me", "auth.me", c.Auth.Me, authn)
	auth.Put("/profile", "auth.profile", c.Auth.UpdateProfile, authn)

	catering := api.Group("/catering-services")
	catering.Get("/", "catering.list", c.Catering.List)
	catering.Get("/filter", "catering.filter", c.Catering.Filter)
	catering.Get("/managed", "catering.managed", c.Catering.Managed, authn, manager)
	catering.Get("/{id}", "catering.get", c.Catering.Get)
	catering.Post("/", "catering.create", c.Catering.Create, authn, manager)
	catering.Put("/{id}", "catering.update", c.Catering.Update, authn, manager)
	catering.Delete("/{id}", "catering.delete", c.Catering.Delete, authn, manager)
	catering.Put("/{id}/status", "catering.set-status", c.Catering.SetStatus, authn, admin)

	categories := api.Group("/categories")
	categories.Get("/", "categories.list", c.Menu.ListCategories)
	categories.Post("/", "categories.create", c.Menu.AddCategory, authn, manager)
	categories.Delete("/{id}", "categories.delete", c.Menu.DeleteCategory, authn, manager)

	items := api.Group("/menu-items")
	items.Get("/", "menu-items.list", c.Menu.ListItems)
	items.Get("/{categoryId}", "menu-items.by-category", c.Menu.ItemsByCategory)
	items.Post("/", "menu-items.create", c.Menu.AddItem, authn, manager)
	items.Put("/{id}", "menu-items.update", c.Menu.UpdateItem, authn, manager)
	items.Delete("/{id}", "menu-items.delete", c.Menu.DeleteItem, authn, manager)

	bookings := api.Group("/bookings")
	bookings.Post("/", "bookings.create", c.Booking.Create, authn, customer)
	bookings.Get("/my", "bookings.mine", c.Booking.Mine, authn, customer)
	bookings.Get("/managed", "bookings.managed", c.Booking.Managed, authn, manager)
	bookings.Get("/{cateringServiceId}", "bookings.for-service", c.Booking.ForService, authn, manager)
	bookings.Put("/{id}", "bookings.set-status", c.Booking.SetStatus, authn, manager)
	bookings.Get("/", "bookings.all", c.Booking.All, authn, admin)

	feedback := api.Group("/feedback")
	feedback.Post("/", "feedback.create", c.Feedback.Create, authn, customer)
	feedback.Get("/managed/{cateringServiceId}", "feedback.managed", c.Feedback.Managed, authn, manager)
	feedback.Get("/{cateringServiceId}", "feedback.for-service", c.Feedback.ForService)
	feedback.Get("/", "feedback.all", c.Feedback.All, authn, admin)
	feedback.Delete("/{id}", "feedback.delete", c.Feedback.Delete, authn, admin)

	contact := api.Group("/contact")
	contact.Post("/", "contact.send", c.Contact.Send, authn, customerOrManager)
	contact.Get("/", "contact.all", c.Contact.All, authn, admin)
}
