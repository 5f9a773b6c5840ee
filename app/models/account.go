package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role classifies an account. It is fixed by the registration endpoint used
// (customer or manager) — never by a request payload — and the admin role is
// only ever granted by the database seeder.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// Account is a registered identity. Password holds the bcrypt hash and is
// never serialised; AccountView is the wire projection.
type Account struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Email       string             `bson:"email"`
	Password    string             `bson:"password"`
	Role        Role               `bson:"role"`
	PhoneNumber string             `bson:"phoneNumber,omitempty"`
	Image       string             `bson:"image,omitempty"`
	// CateringService is the free-text business name a manager supplies at
	// registration, before any service listing exists.
	CateringService string    `bson:"cateringService,omitempty"`
	CreatedAt       time.Time `bson:"createdAt"`
}

// AccountView is the projection returned by the API: everything but the hash.
type AccountView struct {
	ID              primitive.ObjectID `json:"_id"`
	Name            string             `json:"name"`
	Email           string             `json:"email"`
	Role            Role               `json:"role"`
	PhoneNumber     string             `json:"phoneNumber,omitempty"`
	Image           string             `json:"image,omitempty"`
	CateringService string             `json:"cateringService,omitempty"`
}

// View strips the credential hash from an account.
func (a Account) View() AccountView {
	return AccountView{
		ID:              a.ID,
		Name:            a.Name,
		Email:           a.Email,
		Role:            a.Role,
		PhoneNumber:     a.PhoneNumber,
		Image:           a.Image,
		CateringService: a.CateringService,
	}
}
