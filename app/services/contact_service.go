package services

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/rasoi/app/models"
	"github.com/shashiranjanraj/rasoi/app/policy"
	"github.com/shashiranjanraj/rasoi/app/repositories"
)

// ContactService manages the support inbox.
type ContactService struct {
	contacts repositories.ContactRepository
}

func NewContactService(contacts repositories.ContactRepository) *ContactService {
	return &ContactService{contacts: contacts}
}

// ContactInput is a support message.
type ContactInput struct {
	Subject string `json:"subject" validate:"nullable,max=200"`
	Message string `json:"message" validate:"nullable,max=5000"`
}

// Send stores a message from the caller.
func (s *ContactService) Send(ctx context.Context, caller policy.Caller, in ContactInput) (models.ContactMessage, error) {
	if strings.TrimSpace(in.Subject) == "" || strings.TrimSpace(in.Message) == "" {
		return models.ContactMessage{}, Invalid("Subject and message are required")
	}

	userID, err := primitive.ObjectIDFromHex(caller.ID)
	if err != nil {
		return models.ContactMessage{}, NotFound("User not found!")
	}

	msg := models.ContactMessage{
		User:    userID,
		Subject: strings.TrimSpace(in.Subject),
		Message: strings.TrimSpace(in.Message),
	}
	if err := s.contacts.Create(ctx, &msg); err != nil {
		return models.ContactMessage{}, err
	}
	return msg, nil
}

// All returns every message, newest first. Route access is admin-only.
func (s *ContactService) All(ctx context.Context) ([]models.ContactMessage, error) {
	return s.contacts.All(ctx)
}
