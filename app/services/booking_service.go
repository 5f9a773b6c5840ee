package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/rasoi/app/models"
	"github.com/shashiranjanraj/rasoi/app/policy"
	"github.com/shashiranjanraj/rasoi/app/repositories"
)

// BookingService manages event bookings.
type BookingService struct {
	bookings repositories.BookingRepository
	services repositories.CateringServiceRepository
	items    repositories.MenuItemRepository
}

func NewBookingService(bookings repositories.BookingRepository, services repositories.CateringServiceRepository, items repositories.MenuItemRepository) *BookingService {
	return &BookingService{bookings: bookings, services: services, items: items}
}

// BookingLine is one requested dish.
type BookingLine struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

// BookingInput creates a booking.
type BookingInput struct {
	CateringServiceID string        `json:"cateringServiceId" validate:"required"`
	MenuItems         []BookingLine `json:"menuItems"`
	EventDate         string        `json:"eventDate" validate:"required,date"`
	EventLocation     string        `json:"eventLocation" validate:"required,min=2,max=200"`
}

// Create places a pending booking. The service and every referenced menu
// item must exist; nothing checks that the items belong to that service, so
// a mixed booking is accepted and left to the manager to reject.
func (s *BookingService) Create(ctx context.Context, caller policy.Caller, in BookingInput) (models.Booking, error) {
	if len(in.MenuItems) == 0 {
		return models.Booking{}, Invalid("At least one menu item is required")
	}

	serviceID, err := primitive.ObjectIDFromHex(in.CateringServiceID)
	if err != nil {
		return models.Booking{}, NotFound("Catering Service Not Found")
	}
	if _, err := s.services.FindByID(ctx, serviceID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return models.Booking{}, NotFound("Catering Service Not Found")
		}
		return models.Booking{}, err
	}

	lines := make([]models.BookingItem, 0, len(in.MenuItems))
	for _, line := range in.MenuItems {
		if line.Quantity < 1 {
			return models.Booking{}, Invalid("Quantity must be at least 1")
		}
		itemID, err := primitive.ObjectIDFromHex(line.Item)
		if err != nil {
			return models.Booking{}, NotFound("Menu item not found")
		}
		if _, err := s.items.FindByID(ctx, itemID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return models.Booking{}, NotFound("Menu item not found")
			}
			return models.Booking{}, err
		}
		lines = append(lines, models.BookingItem{Item: itemID, Quantity: line.Quantity})
	}

	eventDate, err := parseEventDate(in.EventDate)
	if err != nil {
		return models.Booking{}, Invalid("The eventDate is not a valid date.")
	}

	userID, err := primitive.ObjectIDFromHex(caller.ID)
	if err != nil {
		return models.Booking{}, NotFound("User not found!")
	}

	booking := models.Booking{
		User:            userID,
		CateringService: serviceID,
		MenuItems:       lines,
		EventDate:       eventDate,
		EventLocation:   in.EventLocation,
		Status:          models.BookingPending,
	}
	if err := s.bookings.Create(ctx, &booking); err != nil {
		return models.Booking{}, err
	}
	return booking, nil
}

// ListMine returns the caller's own bookings, newest first.
func (s *BookingService) ListMine(ctx context.Context, caller policy.Caller) ([]models.Booking, error) {
	userID, err := primitive.ObjectIDFromHex(caller.ID)
	if err != nil {
		return nil, NotFound("User not found!")
	}
	return s.bookings.FindByUser(ctx, userID)
}

// ListForService returns the bookings of one service the caller owns.
func (s *BookingService) ListForService(ctx context.Context, caller policy.Caller, serviceID string) ([]models.Booking, error) {
	oid, err := primitive.ObjectIDFromHex(serviceID)
	if err != nil {
		return nil, NotFound("Catering Service Not Found")
	}
	svc, err := s.services.FindByID(ctx, oid)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, NotFound("Catering Service Not Found")
	}
	if err != nil {
		return nil, err
	}
	if !policy.Can(caller, policy.ViewServiceBookings, svc.Manager.Hex()) {
		return nil, Forbidden("Not authorized to view bookings for this service")
	}
	return s.bookings.FindByServices(ctx, []primitive.ObjectID{svc.ID})
}

// ListManaged returns the bookings across every service the caller owns.
func (s *BookingService) ListManaged(ctx context.Context, caller policy.Caller) ([]models.Booking, error) {
	managerID, err := primitive.ObjectIDFromHex(caller.ID)
	if err != nil {
		return nil, NotFound("User not found!")
	}
	owned, err := s.services.FindByManager(ctx, managerID)
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(owned))
	for _, svc := range owned {
		ids = append(ids, svc.ID)
	}
	return s.bookings.FindByServices(ctx, ids)
}

// All returns every booking. Route access is admin-only.
func (s *BookingService) All(ctx context.Context) ([]models.Booking, error) {
	return s.bookings.All(ctx)
}

// SetStatus lets the manager owning the booked service approve or reject a
// booking. There is no terminal state; a later call can flip the decision.
func (s *BookingService) SetStatus(ctx context.Context, caller policy.Caller, id, status string) (models.Booking, error) {
	next := models.BookingStatus(status)
	if !next.IsValid() {
		return models.Booking{}, Invalid("Invalid status. Use 'pending', 'approved' or 'rejected'")
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Booking{}, NotFound("Booking not found")
	}
	booking, err := s.bookings.FindByID(ctx, oid)
	if errors.Is(err, repositories.ErrNotFound) {
		return models.Booking{}, NotFound("Booking not found")
	}
	if err != nil {
		return models.Booking{}, err
	}

	svc, err := s.services.FindByID(ctx, booking.CateringService)
	if errors.Is(err, repositories.ErrNotFound) {
		return models.Booking{}, NotFound("Catering Service Not Found")
	}
	if err != nil {
		return models.Booking{}, err
	}
	if !policy.Can(caller, policy.DecideBooking, svc.Manager.Hex()) {
		return models.Booking{}, Forbidden("Not authorized to update this booking")
	}

	if err := s.bookings.SetStatus(ctx, booking.ID, next); err != nil {
		return models.Booking{}, err
	}
	booking.Status = next
	return booking, nil
}

var eventDateLayouts = []string{time.RFC3339, "2006-01-02", "2006-01-02 15:04:05"}

func parseEventDate(s string) (time.Time, error) {
	var err error
	for _, layout := range eventDateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
