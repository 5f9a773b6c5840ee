package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/rasoi/app/models"
)

func TestCanOwnership(t *testing.T) {
	owner := Caller{ID: "m1", Role: models.RoleManager}
	other := Caller{ID: "m2", Role: models.RoleManager}

	ownerActions := []Action{UpdateService, DeleteService, ManageMenu, ViewServiceBookings, DecideBooking, ViewServiceFeedback}
	for _, action := range ownerActions {
		assert.True(t, Can(owner, action, "m1"), "owner should pass %s", action)
		assert.False(t, Can(other, action, "m1"), "non-owner should fail %s", action)
	}
}

func TestCanAdminOnly(t *testing.T) {
	admin := Caller{ID: "a1", Role: models.RoleAdmin}
	manager := Caller{ID: "m1", Role: models.RoleManager}
	customer := Caller{ID: "c1", Role: models.RoleCustomer}

	for _, action := range []Action{SetServiceStatus, DeleteFeedback} {
		assert.True(t, Can(admin, action, "anyone"), "admin should pass %s", action)
		assert.False(t, Can(manager, action, "m1"), "manager should fail %s even as owner", action)
		assert.False(t, Can(customer, action, "c1"), "customer should fail %s", action)
	}
}

func TestAdminHasNoOwnershipBypass(t *testing.T) {
	admin := Caller{ID: "a1", Role: models.RoleAdmin}

	// Manager-owned actions are closed to admins outright.
	assert.False(t, Can(admin, UpdateService, "m1"))
	assert.False(t, Can(admin, DecideBooking, "m1"))
	assert.False(t, Can(admin, DeleteService, "a1"))
}

func TestCustomerNeverPassesGuardedActions(t *testing.T) {
	customer := Caller{ID: "c1", Role: models.RoleCustomer}
	for action := range map[Action]struct{}{
		UpdateService: {}, DeleteService: {}, SetServiceStatus: {},
		ManageMenu: {}, ViewServiceBookings: {}, DecideBooking: {},
		DeleteFeedback: {}, ViewServiceFeedback: {},
	} {
		assert.False(t, Can(customer, action, "c1"), "customer should fail %s", action)
	}
}

func TestUnknownActionDenied(t *testing.T) {
	admin := Caller{ID: "a1", Role: models.RoleAdmin}
	assert.False(t, Can(admin, Action("nonsense"), "a1"))
}
