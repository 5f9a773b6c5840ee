package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/rasoi/app/models"
	"github.com/shashiranjanraj/rasoi/app/policy"
	"github.com/shashiranjanraj/rasoi/app/repositories"
)

// FeedbackService manages service ratings.
type FeedbackService struct {
	feedback repositories.FeedbackRepository
	services repositories.CateringServiceRepository
}

func NewFeedbackService(feedback repositories.FeedbackRepository, services repositories.CateringServiceRepository) *FeedbackService {
	return &FeedbackService{feedback: feedback, services: services}
}

// FeedbackInput creates a rating. Nothing requires the author to have booked
// the service.
type FeedbackInput struct {
	CateringServiceID string `json:"cateringServiceId" validate:"required"`
	Rating            int    `json:"rating" validate:"required,integer,gte=1,lte=5"`
	Comment           string `json:"comment" validate:"required,max=2000"`
}

// Create records a rating against an existing service.
func (s *FeedbackService) Create(ctx context.Context, caller policy.Caller, in FeedbackInput) (models.Feedback, error) {
	serviceID, err := primitive.ObjectIDFromHex(in.CateringServiceID)
	if err != nil {
		return models.Feedback{}, NotFound("Catering Service Not Found")
	}
	if _, err := s.services.FindByID(ctx, serviceID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return models.Feedback{}, NotFound("Catering Service Not Found")
		}
		return models.Feedback{}, err
	}

	userID, err := primitive.ObjectIDFromHex(caller.ID)
	if err != nil {
		return models.Feedback{}, NotFound("User not found!")
	}

	fb := models.Feedback{
		User:            userID,
		CateringService: serviceID,
		Rating:          in.Rating,
		Comment:         in.Comment,
	}
	if err := s.feedback.Create(ctx, &fb); err != nil {
		return models.Feedback{}, err
	}
	return fb, nil
}

// ListForService returns the ratings of one service, newest first. Public.
func (s *FeedbackService) ListForService(ctx context.Context, serviceID string) ([]models.Feedback, error) {
	oid, err := primitive.ObjectIDFromHex(serviceID)
	if err != nil {
		return nil, Invalid("Invalid catering service id")
	}
	return s.feedback.FindByService(ctx, oid)
}

// ListManaged returns the ratings of a service the caller owns.
func (s *FeedbackService) ListManaged(ctx context.Context, caller policy.Caller, serviceID string) ([]models.Feedback, error) {
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
	if !policy.Can(caller, policy.ViewServiceFeedback, svc.Manager.Hex()) {
		return nil, Forbidden("Access denied")
	}
	return s.feedback.FindByService(ctx, svc.ID)
}

// All returns every rating. Route access is admin-only.
func (s *FeedbackService) All(ctx context.Context) ([]models.Feedback, error) {
	return s.feedback.All(ctx)
}

// Delete removes a rating. Admin moderation only.
func (s *FeedbackService) Delete(ctx context.Context, caller policy.Caller, id string) error {
	if !policy.Can(caller, policy.DeleteFeedback, "") {
		return Forbidden("Access denied")
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return NotFound("Feedback not found")
	}
	if err := s.feedback.Delete(ctx, oid); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return NotFound("Feedback not found")
		}
		return err
	}
	return nil
}
