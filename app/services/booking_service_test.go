package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/rasoi/app/models"
	"github.com/shashiranjanraj/rasoi/app/policy"
)

type bookingFixture struct {
	bookings *BookingService
	catalog  *CateringService
	items    *fakeItemRepo
	owner    policy.Caller
	customer policy.Caller
	service  models.CateringService
	item     models.MenuItem
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()
	services := newFakeServiceRepo()
	categories := newFakeCategoryRepo()
	items := newFakeItemRepo()
	bookingRepo := newFakeBookingRepo()

	catalog := NewCateringService(services, categories, items)
	owner := manager()
	customer := policy.Caller{ID: primitive.NewObjectID().Hex(), Role: models.RoleCustomer}

	svc, err := catalog.Create(context.Background(), owner, ServiceInput{Name: "Sunrise", Location: "Pune"})
	require.NoError(t, err)

	item := models.MenuItem{CateringService: svc.ID, Name: "Biryani", Price: 250}
	require.NoError(t, items.Create(context.Background(), &item))

	return &bookingFixture{
		bookings: NewBookingService(bookingRepo, services, items),
		catalog:  catalog,
		items:    items,
		owner:    owner,
		customer: customer,
		service:  svc,
		item:     item,
	}
}

func (f *bookingFixture) input() BookingInput {
	return BookingInput{
		CateringServiceID: f.service.ID.Hex(),
		MenuItems:         []BookingLine{{Item: f.item.ID.Hex(), Quantity: 10}},
		EventDate:         "2026-10-02",
		EventLocation:     "Pune",
	}
}

func TestCreateBookingStartsPending(t *testing.T) {
	f := newBookingFixture(t)

	booking, err := f.bookings.Create(context.Background(), f.customer, f.input())
	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, booking.Status)
	assert.Equal(t, f.customer.ID, booking.User.Hex())
	require.Len(t, booking.MenuItems, 1)
	assert.Equal(t, 10, booking.MenuItems[0].Quantity)
}

func TestCreateBookingChecksReferences(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	in := f.input()
	in.CateringServiceID = primitive.NewObjectID().Hex()
	_, err := f.bookings.Create(ctx, f.customer, in)
	svcErr := requireKind(t, err, KindNotFound)
	assert.Equal(t, "Catering Service Not Found", svcErr.Message)

	in = f.input()
	in.MenuItems = []BookingLine{{Item: primitive.NewObjectID().Hex(), Quantity: 1}}
	_, err = f.bookings.Create(ctx, f.customer, in)
	svcErr = requireKind(t, err, KindNotFound)
	assert.Equal(t, "Menu item not found", svcErr.Message)

	in = f.input()
	in.MenuItems[0].Quantity = 0
	_, err = f.bookings.Create(ctx, f.customer, in)
	requireKind(t, err, KindValidation)

	in = f.input()
	in.MenuItems = nil
	_, err = f.bookings.Create(ctx, f.customer, in)
	requireKind(t, err, KindValidation)
}

func TestListMine(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	_, err := f.bookings.Create(ctx, f.customer, f.input())
	require.NoError(t, err)

	other := policy.Caller{ID: primitive.NewObjectID().Hex(), Role: models.RoleCustomer}
	_, err = f.bookings.Create(ctx, other, f.input())
	require.NoError(t, err)

	mine, err := f.bookings.ListMine(ctx, f.customer)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, f.customer.ID, mine[0].User.Hex())
}

func TestListForServiceRequiresOwnership(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	_, err := f.bookings.Create(ctx, f.customer, f.input())
	require.NoError(t, err)

	out, err := f.bookings.ListForService(ctx, f.owner, f.service.ID.Hex())
	require.NoError(t, err)
	assert.Len(t, out, 1)

	_, err = f.bookings.ListForService(ctx, manager(), f.service.ID.Hex())
	requireKind(t, err, KindForbidden)

	_, err = f.bookings.ListForService(ctx, f.owner, primitive.NewObjectID().Hex())
	requireKind(t, err, KindNotFound)
}

func TestListManagedSpansOwnedServices(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	second, err := f.catalog.Create(ctx, f.owner, ServiceInput{Name: "Moonlight", Location: "Mumbai"})
	require.NoError(t, err)
	item := models.MenuItem{CateringService: second.ID, Name: "Paneer", Price: 180}
	require.NoError(t, f.items.Create(ctx, &item))

	_, err = f.bookings.Create(ctx, f.customer, f.input())
	require.NoError(t, err)
	_, err = f.bookings.Create(ctx, f.customer, BookingInput{
		CateringServiceID: second.ID.Hex(),
		MenuItems:         []BookingLine{{Item: item.ID.Hex(), Quantity: 2}},
		EventDate:         "2026-11-01",
		EventLocation:     "Mumbai",
	})
	require.NoError(t, err)

	out, err := f.bookings.ListManaged(ctx, f.owner)
	require.NoError(t, err)
	assert.Len(t, out, 2)

	none, err := f.bookings.ListManaged(ctx, manager())
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSetBookingStatusEnforcesServiceOwnership(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	booking, err := f.bookings.Create(ctx, f.customer, f.input())
	require.NoError(t, err)

	// A manager who does not own the booked service is rejected.
	_, err = f.bookings.SetStatus(ctx, manager(), booking.ID.Hex(), "approved")
	svcErr := requireKind(t, err, KindForbidden)
	assert.Equal(t, "Not authorized to update this booking", svcErr.Message)

	approved, err := f.bookings.SetStatus(ctx, f.owner, booking.ID.Hex(), "approved")
	require.NoError(t, err)
	assert.Equal(t, models.BookingApproved, approved.Status)

	mine, err := f.bookings.ListMine(ctx, f.customer)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, models.BookingApproved, mine[0].Status)

	// No terminal state: the decision can flip again.
	rejected, err := f.bookings.SetStatus(ctx, f.owner, booking.ID.Hex(), "rejected")
	require.NoError(t, err)
	assert.Equal(t, models.BookingRejected, rejected.Status)
}

func TestSetBookingStatusValidation(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	booking, err := f.bookings.Create(ctx, f.customer, f.input())
	require.NoError(t, err)

	_, err = f.bookings.SetStatus(ctx, f.owner, booking.ID.Hex(), "done")
	requireKind(t, err, KindValidation)

	_, err = f.bookings.SetStatus(ctx, f.owner, primitive.NewObjectID().Hex(), "approved")
	svcErr := requireKind(t, err, KindNotFound)
	assert.Equal(t, "Booking not found", svcErr.Message)
}
