package services

import (
	"context"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/rasoi/app/models"
	"github.com/shashiranjanraj/rasoi/app/repositories"
	"github.com/shashiranjanraj/rasoi/pkg/storage"
)

func TestMain(m *testing.M) {
	storage.RegisterDisk("mem", newMemDisk())
	storage.SetDefault("mem")
	os.Exit(m.Run())
}

// ─── In-memory storage disk ───────────────────────────────────────────────────

type memDisk struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemDisk() *memDisk { return &memDisk{files: map[string][]byte{}} }

func (d *memDisk) Put(path string, content []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.files[path] = content
	return nil
}

func (d *memDisk) PutStream(path string, r io.Reader) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return d.Put(path, b)
}

func (d *memDisk) Get(path string) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if b, ok := d.files[path]; ok {
		return b, nil
	}
	return nil, os.ErrNotExist
}

func (d *memDisk) Exists(path string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.files[path]
	return ok
}

func (d *memDisk) Delete(path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.files, path)
	return nil
}

func (d *memDisk) URL(path string) string { return "/uploads/" + path }

// ─── In-memory repositories ───────────────────────────────────────────────────

type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[primitive.ObjectID]models.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: map[primitive.ObjectID]models.Account{}}
}

func (r *fakeAccountRepo) Create(_ context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if strings.EqualFold(a.Email, account.Email) {
			return repositories.ErrDuplicate
		}
	}
	account.ID = primitive.NewObjectID()
	r.accounts[account.ID] = *account
	return nil
}

func (r *fakeAccountRepo) FindByEmail(_ context.Context, email string) (models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if strings.EqualFold(a.Email, email) {
			return a, nil
		}
	}
	return models.Account{}, repositories.ErrNotFound
}

func (r *fakeAccountRepo) FindByID(_ context.Context, id primitive.ObjectID) (models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.accounts[id]; ok {
		return a, nil
	}
	return models.Account{}, repositories.ErrNotFound
}

func (r *fakeAccountRepo) Update(_ context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[account.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.accounts[account.ID] = *account
	return nil
}

type fakeServiceRepo struct {
	mu       sync.Mutex
	services map[primitive.ObjectID]models.CateringService
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{services: map[primitive.ObjectID]models.CateringService{}}
}

func (r *fakeServiceRepo) Create(_ context.Context, svc *models.CateringService) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	svc.ID = primitive.NewObjectID()
	if svc.Categories == nil {
		svc.Categories = []primitive.ObjectID{}
	}
	if svc.MenuItems == nil {
		svc.MenuItems = []primitive.ObjectID{}
	}
	r.services[svc.ID] = *svc
	return nil
}

func (r *fakeServiceRepo) FindByID(_ context.Context, id primitive.ObjectID) (models.CateringService, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.services[id]; ok {
		return s, nil
	}
	return models.CateringService{}, repositories.ErrNotFound
}

func (r *fakeServiceRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.CateringService, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.CateringService{}
	for _, id := range ids {
		if s, ok := r.services[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeServiceRepo) Find(_ context.Context, filter repositories.ServiceFilter) ([]models.CateringService, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.CateringService{}
	for _, s := range r.services {
		if filter.Location != nil && !strings.Contains(strings.ToLower(s.Location), strings.ToLower(*filter.Location)) {
			continue
		}
		out = append(out, s)
	}
	sortServices(out)
	return out, nil
}

func (r *fakeServiceRepo) FindByManager(_ context.Context, managerID primitive.ObjectID) ([]models.CateringService, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.CateringService{}
	for _, s := range r.services {
		if s.Manager == managerID {
			out = append(out, s)
		}
	}
	sortServices(out)
	return out, nil
}

func (r *fakeServiceRepo) Update(_ context.Context, svc *models.CateringService) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.services[svc.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.services[svc.ID] = *svc
	return nil
}

func (r *fakeServiceRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.services[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.services, id)
	return nil
}

func (r *fakeServiceRepo) PushCategory(_ context.Context, serviceID, categoryID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.services[serviceID]
	s.Categories = append(s.Categories, categoryID)
	r.services[serviceID] = s
	return nil
}

func (r *fakeServiceRepo) PushMenuItem(_ context.Context, serviceID, itemID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.services[serviceID]
	s.MenuItems = append(s.MenuItems, itemID)
	r.services[serviceID] = s
	return nil
}

func sortServices(out []models.CateringService) {
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
}

type fakeCategoryRepo struct {
	mu         sync.Mutex
	categories map[primitive.ObjectID]models.MenuCategory
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: map[primitive.ObjectID]models.MenuCategory{}}
}

func (r *fakeCategoryRepo) Create(_ context.Context, category *models.MenuCategory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	category.ID = primitive.NewObjectID()
	r.categories[category.ID] = *category
	return nil
}

func (r *fakeCategoryRepo) FindByID(_ context.Context, id primitive.ObjectID) (models.MenuCategory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.categories[id]; ok {
		return c, nil
	}
	return models.MenuCategory{}, repositories.ErrNotFound
}

func (r *fakeCategoryRepo) FindByService(_ context.Context, serviceID primitive.ObjectID) ([]models.MenuCategory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.MenuCategory{}
	for _, c := range r.categories {
		if c.CateringService == serviceID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) FindByName(_ context.Context, name models.CategoryLabel) ([]models.MenuCategory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.MenuCategory{}
	for _, c := range r.categories {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.categories, id)
	return nil
}

type fakeItemRepo struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]models.MenuItem
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: map[primitive.ObjectID]models.MenuItem{}}
}

func (r *fakeItemRepo) Create(_ context.Context, item *models.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item.ID = primitive.NewObjectID()
	r.items[item.ID] = *item
	return nil
}

func (r *fakeItemRepo) FindByID(_ context.Context, id primitive.ObjectID) (models.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if it, ok := r.items[id]; ok {
		return it, nil
	}
	return models.MenuItem{}, repositories.ErrNotFound
}

func (r *fakeItemRepo) Find(_ context.Context, filter repositories.ItemFilter) ([]models.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.MenuItem{}
	for _, it := range r.items {
		if filter.ServiceID != nil && it.CateringService != *filter.ServiceID {
			continue
		}
		if filter.CategoryID != nil && it.Category != *filter.CategoryID {
			continue
		}
		if filter.MinPrice != nil && it.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && it.Price > *filter.MaxPrice {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func (r *fakeItemRepo) Update(_ context.Context, item *models.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.items[item.ID] = *item
	return nil
}

func (r *fakeItemRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[primitive.ObjectID]models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[primitive.ObjectID]models.Booking{}}
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking.ID = primitive.NewObjectID()
	r.bookings[booking.ID] = *booking
	return nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id primitive.ObjectID) (models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.bookings[id]; ok {
		return b, nil
	}
	return models.Booking{}, repositories.ErrNotFound
}

func (r *fakeBookingRepo) FindByUser(_ context.Context, userID primitive.ObjectID) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Booking{}
	for _, b := range r.bookings {
		if b.User == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) FindByServices(_ context.Context, serviceIDs []primitive.ObjectID) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	in := map[primitive.ObjectID]bool{}
	for _, id := range serviceIDs {
		in[id] = true
	}
	out := []models.Booking{}
	for _, b := range r.bookings {
		if in[b.CateringService] {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) All(_ context.Context) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Booking{}
	for _, b := range r.bookings {
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBookingRepo) SetStatus(_ context.Context, id primitive.ObjectID, status models.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return repositories.ErrNotFound
	}
	b.Status = status
	r.bookings[id] = b
	return nil
}

type fakeFeedbackRepo struct {
	mu       sync.Mutex
	feedback map[primitive.ObjectID]models.Feedback
}

func newFakeFeedbackRepo() *fakeFeedbackRepo {
	return &fakeFeedbackRepo{feedback: map[primitive.ObjectID]models.Feedback{}}
}

func (r *fakeFeedbackRepo) Create(_ context.Context, fb *models.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	fb.ID = primitive.NewObjectID()
	r.feedback[fb.ID] = *fb
	return nil
}

func (r *fakeFeedbackRepo) FindByID(_ context.Context, id primitive.ObjectID) (models.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if fb, ok := r.feedback[id]; ok {
		return fb, nil
	}
	return models.Feedback{}, repositories.ErrNotFound
}

func (r *fakeFeedbackRepo) FindByService(_ context.Context, serviceID primitive.ObjectID) ([]models.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Feedback{}
	for _, fb := range r.feedback {
		if fb.CateringService == serviceID {
			out = append(out, fb)
		}
	}
	return out, nil
}

func (r *fakeFeedbackRepo) All(_ context.Context) ([]models.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Feedback{}
	for _, fb := range r.feedback {
		out = append(out, fb)
	}
	return out, nil
}

func (r *fakeFeedbackRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.feedback[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.feedback, id)
	return nil
}

type fakeContactRepo struct {
	mu       sync.Mutex
	messages []models.ContactMessage
}

func newFakeContactRepo() *fakeContactRepo { return &fakeContactRepo{} }

func (r *fakeContactRepo) Create(_ context.Context, msg *models.ContactMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	msg.ID = primitive.NewObjectID()
	r.messages = append(r.messages, *msg)
	return nil
}

func (r *fakeContactRepo) All(_ context.Context) ([]models.ContactMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.ContactMessage, len(r.messages))
	copy(out, r.messages)
	return out, nil
}
