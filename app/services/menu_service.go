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

// MenuService manages the Veg/Non-Veg categories and the dishes under them.
type MenuService struct {
	services   repositories.CateringServiceRepository
	categories repositories.MenuCategoryRepository
	items      repositories.MenuItemRepository
}

func NewMenuService(services repositories.CateringServiceRepository, categories repositories.MenuCategoryRepository, items repositories.MenuItemRepository) *MenuService {
	return &MenuService{services: services, categories: categories, items: items}
}

// ownedService resolves a service and checks the caller may manage its menu.
func (s *MenuService) ownedService(ctx context.Context, caller policy.Caller, serviceID primitive.ObjectID) (models.CateringService, error) {
	svc, err := s.services.FindByID(ctx, serviceID)
	if errors.Is(err, repositories.ErrNotFound) {
		return models.CateringService{}, NotFound("Catering Service Not Found")
	}
	if err != nil {
		return models.CateringService{}, err
	}
	if !policy.Can(caller, policy.ManageMenu, svc.Manager.Hex()) {
		return models.CateringService{}, Forbidden("Not authorized to modify this service")
	}
	return svc, nil
}

// ─── Categories ───────────────────────────────────────────────────────────────

// ListCategories returns the categories of one service.
func (s *MenuService) ListCategories(ctx context.Context, serviceID string) ([]models.MenuCategory, error) {
	oid, err := primitive.ObjectIDFromHex(serviceID)
	if err != nil {
		return nil, Invalid("Invalid catering service id")
	}
	return s.categories.FindByService(ctx, oid)
}

// CategoryInput creates a menu section.
type CategoryInput struct {
	CateringServiceID string `json:"cateringServiceId" validate:"required"`
	Name              string `json:"name" validate:"required"`
}

// AddCategory creates a Veg or Non-Veg section under a service the caller
// owns and records the reference on the service document.
func (s *MenuService) AddCategory(ctx context.Context, caller policy.Caller, in CategoryInput) (models.MenuCategory, error) {
	name := models.CategoryLabel(in.Name)
	if !name.IsValid() {
		return models.MenuCategory{}, Invalid("Invalid category. Use 'Veg' or 'Non-Veg'")
	}
	serviceID, err := primitive.ObjectIDFromHex(in.CateringServiceID)
	if err != nil {
		return models.MenuCategory{}, NotFound("Catering Service Not Found")
	}
	svc, err := s.ownedService(ctx, caller, serviceID)
	if err != nil {
		return models.MenuCategory{}, err
	}

	category := models.MenuCategory{CateringService: svc.ID, Name: name}
	if err := s.categories.Create(ctx, &category); err != nil {
		return models.MenuCategory{}, err
	}
	if err := s.services.PushCategory(ctx, svc.ID, category.ID); err != nil {
		logger.WithCtx(ctx).Warn("failed to attach category to service", "service", svc.ID.Hex(), "error", err)
	}
	return category, nil
}

// DeleteCategory removes a section. Items under it are left with a dangling
// category reference rather than cascaded.
func (s *MenuService) DeleteCategory(ctx context.Context, caller policy.Caller, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return NotFound("Category not found")
	}
	category, err := s.categories.FindByID(ctx, oid)
	if errors.Is(err, repositories.ErrNotFound) {
		return NotFound("Category not found")
	}
	if err != nil {
		return err
	}
	if _, err := s.ownedService(ctx, caller, category.CateringService); err != nil {
		return err
	}
	return s.categories.Delete(ctx, category.ID)
}

// ─── Items ────────────────────────────────────────────────────────────────────

// ItemQuery narrows the public menu item listing.
type ItemQuery struct {
	Category          string
	CateringServiceID string
	MinPrice          *float64
	MaxPrice          *float64
}

// ListItems returns menu items matching the query.
func (s *MenuService) ListItems(ctx context.Context, q ItemQuery) ([]models.MenuItem, error) {
	filter := repositories.ItemFilter{}
	if q.Category != "" {
		oid, err := primitive.ObjectIDFromHex(q.Category)
		if err != nil {
			return nil, Invalid("Invalid category id")
		}
		filter.CategoryID = &oid
	}
	if q.CateringServiceID != "" {
		oid, err := primitive.ObjectIDFromHex(q.CateringServiceID)
		if err != nil {
			return nil, Invalid("Invalid catering service id")
		}
		filter.ServiceID = &oid
	}
	if q.MinPrice != nil && *q.MinPrice < 0 {
		return nil, Invalid("Invalid price range")
	}
	if q.MaxPrice != nil && *q.MaxPrice < 0 {
		return nil, Invalid("Invalid price range")
	}
	if q.MinPrice != nil && q.MaxPrice != nil && *q.MinPrice > *q.MaxPrice {
		return nil, Invalid("Invalid price range")
	}
	filter.MinPrice = q.MinPrice
	filter.MaxPrice = q.MaxPrice

	return s.items.Find(ctx, filter)
}

// ItemsByCategory returns the items of one category.
func (s *MenuService) ItemsByCategory(ctx context.Context, categoryID string) ([]models.MenuItem, error) {
	oid, err := primitive.ObjectIDFromHex(categoryID)
	if err != nil {
		return nil, Invalid("Invalid category id")
	}
	return s.items.Find(ctx, repositories.ItemFilter{CategoryID: &oid})
}

// ItemInput creates a dish. Image is the stored upload path, filled by the
// controller.
type ItemInput struct {
	CategoryID        string  `json:"categoryId" validate:"required"`
	CateringServiceID string  `json:"cateringServiceId" validate:"required"`
	Name              string  `json:"name" validate:"required,min=2,max=150"`
	Price             float64 `json:"price" validate:"gte=0"`
	Image             string  `json:"-"`
}

// AddItem creates a dish under a category of a service the caller owns.
func (s *MenuService) AddItem(ctx context.Context, caller policy.Caller, in ItemInput) (models.MenuItem, error) {
	categoryID, err := primitive.ObjectIDFromHex(in.CategoryID)
	if err != nil {
		return models.MenuItem{}, NotFound("Category not found")
	}
	category, err := s.categories.FindByID(ctx, categoryID)
	if errors.Is(err, repositories.ErrNotFound) {
		return models.MenuItem{}, NotFound("Category not found")
	}
	if err != nil {
		return models.MenuItem{}, err
	}

	serviceID, err := primitive.ObjectIDFromHex(in.CateringServiceID)
	if err != nil {
		return models.MenuItem{}, NotFound("Catering Service Not Found")
	}
	svc, err := s.ownedService(ctx, caller, serviceID)
	if err != nil {
		return models.MenuItem{}, err
	}

	item := models.MenuItem{
		CateringService: svc.ID,
		Category:        category.ID,
		Name:            in.Name,
		Price:           in.Price,
		Image:           in.Image,
	}
	if err := s.items.Create(ctx, &item); err != nil {
		return models.MenuItem{}, err
	}
	if err := s.services.PushMenuItem(ctx, svc.ID, item.ID); err != nil {
		logger.WithCtx(ctx).Warn("failed to attach menu item to service", "service", svc.ID.Hex(), "error", err)
	}
	return item, nil
}

// UpdateItemInput carries the partial dish update; empty fields keep the
// stored value. CateringServiceID must resubmit the stored value as a
// confirmation; any other value is rejected.
type UpdateItemInput struct {
	CateringServiceID string   `json:"cateringServiceId" validate:"required"`
	Name              string   `json:"name" validate:"nullable,min=2,max=150"`
	Price             *float64 `json:"price"`
	Image             string   `json:"-"`
}

// UpdateItem overwrites the non-empty fields of a dish the caller owns.
func (s *MenuService) UpdateItem(ctx context.Context, caller policy.Caller, id string, in UpdateItemInput) (models.MenuItem, error) {
	item, err := s.findItem(ctx, id)
	if err != nil {
		return models.MenuItem{}, err
	}
	if in.CateringServiceID != item.CateringService.Hex() {
		return models.MenuItem{}, Forbidden("Not authorized to update this menu item")
	}
	if _, err := s.ownedService(ctx, caller, item.CateringService); err != nil {
		return models.MenuItem{}, err
	}

	if in.Name != "" {
		item.Name = in.Name
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return models.MenuItem{}, Invalid("Invalid price range")
		}
		item.Price = *in.Price
	}
	oldImage := item.Image
	if in.Image != "" {
		item.Image = in.Image
	}

	if err := s.items.Update(ctx, &item); err != nil {
		return models.MenuItem{}, err
	}

	if in.Image != "" && oldImage != "" && oldImage != in.Image {
		if err := storage.Delete(oldImage); err != nil {
			logger.WithCtx(ctx).Warn("failed to remove replaced item image", "path", oldImage, "error", err)
		}
	}
	return item, nil
}

// DeleteItem removes a dish of a service the caller owns.
func (s *MenuService) DeleteItem(ctx context.Context, caller policy.Caller, id string) error {
	item, err := s.findItem(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.ownedService(ctx, caller, item.CateringService); err != nil {
		return err
	}

	if err := s.items.Delete(ctx, item.ID); err != nil {
		return err
	}
	if item.Image != "" {
		if err := storage.Delete(item.Image); err != nil {
			logger.WithCtx(ctx).Warn("failed to remove item image", "path", item.Image, "error", err)
		}
	}
	return nil
}

func (s *MenuService) findItem(ctx context.Context, id string) (models.MenuItem, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.MenuItem{}, NotFound("Menu item not found")
	}
	item, err := s.items.FindByID(ctx, oid)
	if errors.Is(err, repositories.ErrNotFound) {
		return models.MenuItem{}, NotFound("Menu item not found")
	}
	return item, err
}
