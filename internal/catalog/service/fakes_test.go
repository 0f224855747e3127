package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	catalogerrors "storefront/internal/catalog/errors"
	"storefront/pkg/config"
	"storefront/pkg/currency"
	apperrors "storefront/pkg/errors"
	"storefront/pkg/events"
	"storefront/pkg/locale"
	"storefront/pkg/logger"
	"storefront/pkg/model"
	"storefront/pkg/validator"
)

const (
	testAdminPassword = "s3cret-pass"
	testAdminToken    = "0123456789abcdef-token"
)

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return &config.Config{
		Log:               logger.Discard(),
		ReadTimeout:       5 * time.Second,
		Country:           "IN",
		StorefrontURL:     "https://shop.example.com",
		ContactPhone:      "+91 81234 56789",
		SearchLimit:       20,
		AdminUsername:     "admin",
		AdminPasswordHash: string(hash),
		AdminToken:        testAdminToken,
	}
}

func newTestValidator() *validator.Validator {
	return validator.New(validator.WithCurrency(currency.NewCodec(locale.Default())))
}

func parseID(id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return fmt.Errorf("%w: %s", catalogerrors.ErrInvalidID, id)
	}
	return nil
}

func requireCode(t *testing.T, err error, code string) *apperrors.AppError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}
	if appErr.Code != code {
		t.Fatalf("expected code %s, got %s (%v)", code, appErr.Code, err)
	}
	return appErr
}

func hasDetail(appErr *apperrors.AppError, field string) bool {
	for _, d := range appErr.Details {
		if d.Field == field {
			return true
		}
	}
	return false
}

// ────────────────────────────────────────────────
// In-memory repositories
// ────────────────────────────────────────────────

type fakeCategoryRepo struct {
	mu    sync.Mutex
	items []*model.Category
}

func (f *fakeCategoryRepo) seed(name, slug string) *model.Category {
	c := &model.Category{ID: primitive.NewObjectID().Hex(), Name: name, Slug: slug}
	f.items = append(f.items, c)
	return c
}

func (f *fakeCategoryRepo) Create(_ context.Context, c *model.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.ID = primitive.NewObjectID().Hex()
	cp := *c
	f.items = append(f.items, &cp)
	return nil
}

func (f *fakeCategoryRepo) FindAll(context.Context) ([]*model.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*model.Category{}, f.items...), nil
}

func (f *fakeCategoryRepo) FindByID(_ context.Context, id string) (*model.Category, error) {
	if err := parseID(id); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.items {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, catalogerrors.ErrNotFound
}

func (f *fakeCategoryRepo) FindBySlug(_ context.Context, slug string) (*model.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.items {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, catalogerrors.ErrNotFound
}

func (f *fakeCategoryRepo) SlugExists(_ context.Context, slug, excludeID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.items {
		if c.Slug == slug && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCategoryRepo) Update(_ context.Context, id string, c *model.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.items {
		if existing.ID == id {
			cp := *c
			cp.ID = id
			f.items[i] = &cp
			return nil
		}
	}
	return catalogerrors.ErrNotFound
}

func (f *fakeCategoryRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, c := range f.items {
		if c.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return catalogerrors.ErrNotFound
}

type fakeProductRepo struct {
	mu          sync.Mutex
	items       []*model.Product
	searchLimit int
	searchCalls int
	findAllErr  error
}

func (f *fakeProductRepo) seed(p model.Product) *model.Product {
	p.ID = primitive.NewObjectID().Hex()
	f.items = append(f.items, &p)
	return &p
}

func matches(p *model.Product, filter model.ProductFilter) bool {
	if filter.CategoryID != "" && p.CategoryID != filter.CategoryID {
		return false
	}
	if filter.Featured && !p.Featured {
		return false
	}
	if filter.Premium && !p.Premium {
		return false
	}
	if filter.Custom && !p.Custom {
		return false
	}
	return true
}

func (f *fakeProductRepo) Create(_ context.Context, p *model.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = primitive.NewObjectID().Hex()
	cp := *p
	f.items = append(f.items, &cp)
	return nil
}

func (f *fakeProductRepo) FindAll(_ context.Context, filter model.ProductFilter, skip int64, limit int) ([]*model.Product, error) {
	if f.findAllErr != nil {
		return nil, f.findAllErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*model.Product{}
	var seen int64
	for _, p := range f.items {
		if !matches(p, filter) {
			continue
		}
		seen++
		if seen <= skip || len(out) >= limit {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductRepo) Count(_ context.Context, filter model.ProductFilter) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, p := range f.items {
		if matches(p, filter) {
			n++
		}
	}
	return n, nil
}

func (f *fakeProductRepo) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	return f.Count(ctx, model.ProductFilter{CategoryID: categoryID})
}

func (f *fakeProductRepo) FindByID(_ context.Context, id string) (*model.Product, error) {
	if err := parseID(id); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.items {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, catalogerrors.ErrNotFound
}

func (f *fakeProductRepo) FindBySlug(_ context.Context, slug string) (*model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.items {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, catalogerrors.ErrNotFound
}

func (f *fakeProductRepo) Search(_ context.Context, query string, limit int) ([]*model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchCalls++
	f.searchLimit = limit
	out := []*model.Product{}
	q := strings.ToLower(query)
	for _, p := range f.items {
		if len(out) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) SlugExists(_ context.Context, slug, excludeID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.items {
		if p.Slug == slug && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProductRepo) Update(_ context.Context, id string, p *model.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.items {
		if existing.ID == id {
			cp := *p
			cp.ID = id
			f.items[i] = &cp
			return nil
		}
	}
	return catalogerrors.ErrNotFound
}

func (f *fakeProductRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.items {
		if p.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return catalogerrors.ErrNotFound
}

type fakeReviewRepo struct {
	mu    sync.Mutex
	items []*model.Review
}

func (f *fakeReviewRepo) Create(_ context.Context, r *model.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r.ID = primitive.NewObjectID().Hex()
	cp := *r
	f.items = append(f.items, &cp)
	return nil
}

func (f *fakeReviewRepo) FindByProduct(_ context.Context, productID string) ([]*model.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*model.Review{}
	for _, r := range f.items {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) DeleteByProduct(_ context.Context, productID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.items[:0]
	var removed int64
	for _, r := range f.items {
		if r.ProductID == productID {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	f.items = kept
	return removed, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.CatalogEvent
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, e events.CatalogEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *fakePublisher) Close() error { return nil }

func (p *fakePublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Name()
	}
	return out
}
