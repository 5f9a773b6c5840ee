package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/rasoi/app/models"
	"github.com/shashiranjanraj/rasoi/app/policy"
	"github.com/shashiranjanraj/rasoi/app/repositories"
	"github.com/shashiranjanraj/rasoi/pkg/logger"
	"github.com/shashiranjanraj/rasoi/pkg/storage"
)

// CateringService manages provider listings.
type CateringService struct {
	services   repositories.CateringServiceRepository
	categories repositories.MenuCategoryRepository
	items      repositories.MenuItemRepository
}

func NewCateringService(services repositories.CateringServiceRepository, categories repositories.MenuCategoryRepository, items repositories.MenuItemRepository) *CateringService {
	return &CateringService{services: services, categories: categories, items: items}
}

// List returns all listings, optionally narrowed by a location substring.
func (s *CateringService) List(ctx context.Context, location string) ([]models.CateringService, error) {
	filter := repositories.ServiceFilter{}
	if location != "" {
		filter.Location = &location
	}
	return s.services.Find(ctx, filter)
}

// FilterByCategory returns services that offer at least one menu item under
// a category with the given label.
func (s *CateringService) FilterByCategory(ctx context.Context, label string) ([]models.CateringService, error) {
	name := models.CategoryLabel(label)
	if !name.IsValid() {
		return nil, Invalid("Invalid category. Use 'Veg' or 'Non-Veg'")
	}

	categories, err := s.categories.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}

	seen := map[primitive.ObjectID]bool{}
	ids := []primitive.ObjectID{}
	for _, category := range categories {
		if seen[category.CateringService] {
			continue
		}
		catID := category.ID
		items, err := s.items.Find(ctx, repositories.ItemFilter{CategoryID: &catID})
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			continue
		}
		seen[category.CateringService] = true
		ids = append(ids, category.CateringService)
	}

	return s.services.FindByIDs(ctx, ids)
}

// Get returns one listing by id.
func (s *CateringService) Get(ctx context.Context, id string) (models.CateringService, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.CateringService{}, NotFound("Catering Service Not Found")
	}
	svc, err := s.services.FindByID(ctx, oid)
	if errors.Is(err, repositories.ErrNotFound) {
		return models.CateringService{}, NotFound("Catering Service Not Found")
	}
	return svc, err
}

// Managed returns the caller's own listings.
func (s *CateringService) Managed(ctx context.Context, caller policy.Caller) ([]models.CateringService, error) {
	managerID, err := primitive.ObjectIDFromHex(caller.ID)
	if err != nil {
		return nil, NotFound("User not found!")
	}
	return s.services.FindByManager(ctx, managerID)
}

// ServiceInput carries the create/update form. Image is the stored upload
// path, filled by the controller.
type ServiceInput struct {
	Name        string `json:"name" validate:"required,min=2,max=150"`
	Description string `json:"description" validate:"nullable,max=2000"`
	Location    string `json:"location" validate:"required,min=2,max=200"`
	Image       string `json:"-"`
}

// Create adds a listing owned by the caller. It always starts pending; only
// an admin moves it out of that state.
func (s *CateringService) Create(ctx context.Context, caller policy.Caller, in ServiceInput) (models.CateringService, error) {
	managerID, err := primitive.ObjectIDFromHex(caller.ID)
	if err != nil {
		return models.CateringService{}, NotFound("User not found!")
	}

	svc := models.CateringService{
		Manager:     managerID,
		Name:        in.Name,
		Description: in.Description,
		Location:    in.Location,
		Image:       in.Image,
		Status:      models.ServicePending,
	}
	if err := s.services.Create(ctx, &svc); err != nil {
		return models.CateringService{}, err
	}
	return svc, nil
}

// UpdateInput carries the partial update form; empty fields keep the stored
// value.
type UpdateServiceInput struct {
	Name        string `json:"name" validate:"nullable,min=2,max=150"`
	Description string `json:"description" validate:"nullable,max=2000"`
	Location    string `json:"location" validate:"nullable,min=2,max=200"`
	Image       string `json:"-"`
}

// Update overwrites the non-empty fields of a listing the caller owns.
// Replacing the image removes the previous file best-effort.
func (s *CateringService) Update(ctx context.Context, caller policy.Caller, id string, in UpdateServiceInput) (models.CateringService, error) {
	svc, err := s.Get(ctx, id)
	if err != nil {
		return models.CateringService{}, err
	}
	if !policy.Can(caller, policy.UpdateService, svc.Manager.Hex()) {
		return models.CateringService{}, Forbidden("Not authorized to update this service")
	}

	if in.Name != "" {
		svc.Name = in.Name
	}
	if in.Description != "" {
		svc.Description = in.Description
	}
	if in.Location != "" {
		svc.Location = in.Location
	}
	oldImage := svc.Image
	if in.Image != "" {
		svc.Image = in.Image
	}

	if err := s.services.Update(ctx, &svc); err != nil {
		return models.CateringService{}, err
	}

	if in.Image != "" && oldImage != "" && oldImage != in.Image {
		if err := storage.Delete(oldImage); err != nil {
			logger.WithCtx(ctx).Warn("failed to remove replaced service image", "path", oldImage, "error", err)
		}
	}
	return svc, nil
}

// Delete removes a listing the caller owns along with its image file.
// Categories and items keep their dangling references.
func (s *CateringService) Delete(ctx context.Context, caller policy.Caller, id string) error {
	svc, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !policy.Can(caller, policy.DeleteService, svc.Manager.Hex()) {
		return Forbidden("Not authorized to delete this service")
	}

	if err := s.services.Delete(ctx, svc.ID); err != nil {
		return err
	}

	if svc.Image != "" {
		if err := storage.Delete(svc.Image); err != nil {
			logger.WithCtx(ctx).Warn("failed to remove service image", "path", svc.Image, "error", err)
		}
	}
	return nil
}

// SetStatus approves or rejects a listing. Repeating the same decision is a
// no-op, and a decision can be reversed later.
func (s *CateringService) SetStatus(ctx context.Context, caller policy.Caller, id, status string) (models.CateringService, error) {
	next := models.ServiceStatus(status)
	if next != models.ServiceApproved && next != models.ServiceRejected {
		return models.CateringService{}, Invalid("Invalid status. Use 'approved' or 'rejected'")
	}

	svc, err := s.Get(ctx, id)
	if err != nil {
		return models.CateringService{}, err
	}
	if !policy.Can(caller, policy.SetServiceStatus, svc.Manager.Hex()) {
		return models.CateringService{}, Forbidden("Access denied")
	}

	svc.Status = next
	if err := s.services.Update(ctx, &svc); err != nil {
		return models.CateringService{}, err
	}
	return svc, nil
}
