package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feedback is a customer rating and comment on a catering service. Nothing
// requires the author to have booked the service first.
type Feedback struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	User            primitive.ObjectID `bson:"user" json:"user"`
	CateringService primitive.ObjectID `bson:"cateringService" json:"cateringService"`
	Rating          int                `bson:"rating" json:"rating"`
	Comment         string             `bson:"comment,omitempty" json:"comment,omitempty"`
	Date            time.Time          `bson:"date" json:"date"`
}
