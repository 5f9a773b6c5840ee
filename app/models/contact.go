package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContactMessage is a support message sent by any authenticated account.
type ContactMessage struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	User    primitive.ObjectID `bson:"user" json:"user"`
	Subject string             `bson:"subject" json:"subject"`
	Message string             `bson:"message" json:"message"`
	Date    time.Time          `bson:"date" json:"date"`
}
