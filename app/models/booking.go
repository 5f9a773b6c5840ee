package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookingStatus is the lifecycle state of a booking. There are no transition
// constraints: an approved booking may later be rejected and vice versa.
type BookingStatus string

const (
	BookingPending  BookingStatus = "pending"
	BookingApproved BookingStatus = "approved"
	BookingRejected BookingStatus = "rejected"
)

func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingPending, BookingApproved, BookingRejected:
		return true
	}
	return false
}

// BookingItem is one menu item line within a booking.
type BookingItem struct {
	Item     primitive.ObjectID `bson:"item" json:"item"`
	Quantity int                `bson:"quantity" json:"quantity"`
}

// Booking is a customer's event request against a catering service.
type Booking struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	User            primitive.ObjectID `bson:"user" json:"user"`
	CateringService primitive.ObjectID `bson:"cateringService" json:"cateringService"`
	MenuItems       []BookingItem      `bson:"menuItems" json:"menuItems"`
	EventDate       time.Time          `bson:"eventDate" json:"eventDate"`
	EventLocation   string             `bson:"eventLocation" json:"eventLocation"`
	Status          BookingStatus      `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}
