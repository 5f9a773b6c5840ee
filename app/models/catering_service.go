package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServiceStatus is the moderation state of a catering service listing. Only
// admins mutate it, and only to approved or rejected; pending is the start
// state and is never set explicitly.
type ServiceStatus string

const (
	ServicePending  ServiceStatus = "pending"
	ServiceApproved ServiceStatus = "approved"
	ServiceRejected ServiceStatus = "rejected"
)

func (s ServiceStatus) IsValid() bool {
	switch s {
	case ServicePending, ServiceApproved, ServiceRejected:
		return true
	}
	return false
}

// CateringService is a provider listing owned by a manager account.
//
// Categories and MenuItems are soft references: deleting a category or item
// does not rewrite these arrays, and readers tolerate dangling ids.
type CateringService struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Manager     primitive.ObjectID   `bson:"manager" json:"manager"`
	Name        string               `bson:"name" json:"name"`
	Description string               `bson:"description,omitempty" json:"description,omitempty"`
	Location    string               `bson:"location" json:"location"`
	Image       string               `bson:"image,omitempty" json:"image,omitempty"`
	Status      ServiceStatus        `bson:"status" json:"status"`
	Categories  []primitive.ObjectID `bson:"categories" json:"categories"`
	MenuItems   []primitive.ObjectID `bson:"menuItems" json:"menuItems"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
}
