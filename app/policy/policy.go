// Package policy centralises ownership and role rules for guarded
// operations. Route-level role gates reject callers whose role can never
// perform an operation; policy decides the per-resource cases, where the
// answer depends on who owns the thing being touched.
//
// Admins get no implicit bypass here: an admin may only do what a rule
// explicitly grants. Rules are evaluated against the resource owner, so the
// caller must already have resolved the resource (a missing resource is a
// not-found error upstream, never a policy decision).
package policy

import "github.com/shashiranjanraj/rasoi/app/models"

// Action names a guarded operation.
type Action string

const (
	UpdateService       Action = "catering-service.update"
	DeleteService       Action = "catering-service.delete"
	SetServiceStatus    Action = "catering-service.set-status"
	ManageMenu          Action = "menu.manage"
	ViewServiceBookings Action = "booking.view-for-service"
	DecideBooking       Action = "booking.decide"
	DeleteFeedback      Action = "feedback.delete"
	ViewServiceFeedback Action = "feedback.view-for-service"
)

// Caller identifies the authenticated account asking to act.
type Caller struct {
	ID   string
	Role models.Role
}

type rule struct {
	roles     []models.Role
	ownerOnly bool
}

var rules = map[Action]rule{
	UpdateService:       {roles: []models.Role{models.RoleManager}, ownerOnly: true},
	DeleteService:       {roles: []models.Role{models.RoleManager}, ownerOnly: true},
	SetServiceStatus:    {roles: []models.Role{models.RoleAdmin}},
	ManageMenu:          {roles: []models.Role{models.RoleManager}, ownerOnly: true},
	ViewServiceBookings: {roles: []models.Role{models.RoleManager}, ownerOnly: true},
	DecideBooking:       {roles: []models.Role{models.RoleManager}, ownerOnly: true},
	DeleteFeedback:      {roles: []models.Role{models.RoleAdmin}},
	ViewServiceFeedback: {roles: []models.Role{models.RoleManager}, ownerOnly: true},
}

// Can reports whether caller may perform action on the resource owned by
// ownerID. For admin-only actions ownerID is ignored.
func Can(caller Caller, action Action, ownerID string) bool {
	r, ok := rules[action]
	if !ok {
		return false
	}
	allowed := false
	for _, role := range r.roles {
		if caller.Role == role {
			allowed = true
			break
		}
	}
	if !allowed {
		return false
	}
	if r.ownerOnly && caller.ID != ownerID {
		return false
	}
	return true
}
