package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	catalogerrors "storefront/internal/catalog/errors"
	"storefront/internal/catalog/repository"
	"storefront/pkg/config"
	"storefront/pkg/currency"
	apperrors "storefront/pkg/errors"
	"storefront/pkg/events"
	"storefront/pkg/locale"
	"storefront/pkg/messaging"
	"storefront/pkg/model"
	"storefront/pkg/pagination"
	"storefront/pkg/sanitizer"
	"storefront/pkg/validator"
)

const maxProductSlugLen = 170

// ProductQuery is the public listing filter. Category is a category slug.
type ProductQuery struct {
	Category string
	Featured bool
	Premium  bool
	Custom   bool
}

type ProductService interface {
	List(ctx context.Context, query ProductQuery, window pagination.Window) ([]*model.Product, pagination.Window, error)
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)
	Search(ctx context.Context, query string, limit int) ([]*model.Product, error)
	Contact(ctx context.Context, slug string) (*model.ContactLink, error)
	Create(ctx context.Context, p *model.Product) error
	Update(ctx context.Context, id string, updates *model.ProductUpdate) (*model.Product, error)
	Delete(ctx context.Context, id string) error
}

type productService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	reviews    repository.ReviewRepository
	validator  *validator.Validator
	publisher  events.Publisher
	codec      *currency.Codec
	cfg        *config.Config
}

func NewProductService(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	reviews repository.ReviewRepository,
	validator *validator.Validator,
	publisher events.Publisher,
	cfg *config.Config,
) ProductService {
	return &productService{
		products:   products,
		categories: categories,
		reviews:    reviews,
		validator:  validator,
		publisher:  publisher,
		codec:      currency.NewCodec(cfg.Locale()),
		cfg:        cfg,
	}
}

// List returns one page of products, newest first. An unknown category slug
// yields an empty page rather than an error.
func (s *productService) List(ctx context.Context, query ProductQuery, window pagination.Window) ([]*model.Product, pagination.Window, error) {
	filter := model.ProductFilter{
		Featured: query.Featured,
		Premium:  query.Premium,
		Custom:   query.Custom,
	}

	if slug := sanitizer.GenerateSlug(query.Category); slug != "" {
		category, err := s.categories.FindBySlug(ctx, slug)
		if errors.Is(err, catalogerrors.ErrNotFound) {
			return []*model.Product{}, window.WithTotal(0), nil
		}
		if err != nil {
			s.cfg.Log.Error("Failed to resolve category filter", "category", slug, "error", err)
			return nil, window, apperrors.Internal("Failed to retrieve products", err)
		}
		filter.CategoryID = category.ID
	}

	var count int64
	var products []*model.Product
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		var err error
		count, err = s.products.Count(ctx, filter)
		if err != nil {
			s.cfg.Log.Error("Failed to count products", "error", err)
			errCount = apperrors.Internal("Failed to count products", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		products, err = s.products.FindAll(ctx, filter, window.Skip, window.Limit)
		if err != nil {
			s.cfg.Log.Error("Failed to list products",
				"page", window.Page,
				"limit", window.Limit,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to retrieve products", err)
		}
	}()
	wg.Wait()

	if errCount != nil {
		return nil, window, errCount
	}
	if errFind != nil {
		return nil, window, errFind
	}

	return products, window.WithTotal(count), nil
}

func (s *productService) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	slug = sanitizer.GenerateSlug(slug)
	if slug == "" {
		return nil, apperrors.InvalidInput("Product slug cannot be empty")
	}

	p, err := s.products.FindBySlug(ctx, slug)
	if err != nil {
		return nil, repoErr(err, "Product", slug, "Failed to retrieve product")
	}
	return p, nil
}

// Search matches name and description. A blank query returns no products.
// limit 0 means the configured default; anything else is clamped to the
// list bounds.
func (s *productService) Search(ctx context.Context, query string, limit int) ([]*model.Product, error) {
	query = sanitizer.CleanText(query)
	if query == "" {
		return []*model.Product{}, nil
	}

	if limit == 0 {
		limit = s.cfg.SearchLimit
	}
	limit = sanitizer.ClampInt(limit, pagination.MinLimit, pagination.MaxLimit)

	products, err := s.products.Search(ctx, query, limit)
	if err != nil {
		s.cfg.Log.Error("Failed to search products", "query", query, "error", err)
		return nil, apperrors.Internal("Failed to search products", err)
	}
	return products, nil
}

// Contact builds the messaging link a customer follows to ask about a
// product.
func (s *productService) Contact(ctx context.Context, slug string) (*model.ContactLink, error) {
	p, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	phone := sanitizer.NormalizePhone(s.cfg.ContactPhone, locale.RegionForPhone(s.cfg.ContactPhone))
	if phone == "" {
		phone = s.cfg.ContactPhone
	}
	if sanitizer.DigitsOnly(phone) == "" {
		return nil, apperrors.Unavailable("Contact")
	}

	productURL := s.cfg.StorefrontURL + "/products/" + p.Slug
	message := messaging.InquiryMessage(p.Name, p.Price, productURL)

	return &model.ContactLink{
		URL:     messaging.WhatsAppLink(phone, message),
		Phone:   phone,
		Message: message,
	}, nil
}

func (s *productService) sanitize(p *model.Product) {
	p.Name = sanitizer.CleanText(p.Name)
	p.Description = sanitizer.SanitizeInput(p.Description)
	p.CategoryID = strings.TrimSpace(p.CategoryID)
	p.Images = sanitizer.SanitizeSlice(p.Images, strings.TrimSpace)

	if canonical, amount, ok := s.codec.Canonicalize(p.Price); ok {
		p.Price = canonical
		p.PriceAmount = amount
	} else {
		p.Price = strings.TrimSpace(p.Price)
		p.PriceAmount = 0
	}
}

// checkCategory reports a missing category as a field error on categoryId.
func (s *productService) checkCategory(ctx context.Context, categoryID string) error {
	_, err := s.categories.FindByID(ctx, categoryID)
	if err == nil {
		return nil
	}
	if errors.Is(err, catalogerrors.ErrNotFound) || errors.Is(err, catalogerrors.ErrInvalidID) {
		return apperrors.Validation("Validation failed", nil).
			WithDetails(apperrors.FieldError{Field: "categoryId", Message: "does not exist"})
	}
	s.cfg.Log.Error("Failed to check product category", "category_id", categoryID, "error", err)
	return apperrors.Internal("Failed to check product category", err)
}

func (s *productService) Create(ctx context.Context, p *model.Product) error {
	s.sanitize(p)
	p.Slug = baseSlug(p.Slug, p.Name)

	if result := s.validator.Validate(p); !result.Valid {
		s.cfg.Log.Warn("Product validation failed", "name", p.Name, "errors", result.Errors)
		return result.Err()
	}
	if err := s.checkCategory(ctx, p.CategoryID); err != nil {
		return err
	}

	slug, err := uniqueSlug(ctx, s.products.SlugExists, p.Slug, "", maxProductSlugLen)
	if err != nil {
		return repoErr(err, "Product", "", "Failed to check product slug")
	}
	p.Slug = slug

	if err := s.products.Create(ctx, p); err != nil {
		s.cfg.Log.Error("Failed to create product", "name", p.Name, "slug", p.Slug, "error", err)
		return repoErr(err, "Product", "", "Failed to create product")
	}

	s.cfg.Log.Info("Product created successfully",
		"id", p.ID,
		"slug", p.Slug,
		"category_id", p.CategoryID,
		"price", p.Price,
	)
	publish(ctx, s.publisher, s.cfg.Log, events.NewCatalogEvent(events.TypeCreated, events.EntityProduct, p.ID, p.Slug))
	return nil
}

func mergeProductUpdates(existing *model.Product, updates *model.ProductUpdate) model.Product {
	merged := *existing
	if updates.Name != nil {
		merged.Name = *updates.Name
	}
	if updates.Description != nil {
		merged.Description = *updates.Description
	}
	if updates.Price != nil {
		merged.Price = *updates.Price
	}
	if updates.CategoryID != nil {
		merged.CategoryID = *updates.CategoryID
	}
	if updates.Images != nil {
		merged.Images = *updates.Images
	}
	if updates.Featured != nil {
		merged.Featured = *updates.Featured
	}
	if updates.Premium != nil {
		merged.Premium = *updates.Premium
	}
	if updates.Custom != nil {
		merged.Custom = *updates.Custom
	}
	if updates.InStock != nil {
		merged.InStock = *updates.InStock
	}
	return merged
}

func (s *productService) Update(ctx context.Context, id string, updates *model.ProductUpdate) (*model.Product, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Product ID cannot be empty")
	}

	existing, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, repoErr(err, "Product", id, "Failed to check product existence")
	}

	merged := mergeProductUpdates(existing, updates)
	s.sanitize(&merged)
	if updates.Slug != nil {
		merged.Slug = baseSlug(*updates.Slug, merged.Name)
	}

	if result := s.validator.Validate(&merged); !result.Valid {
		s.cfg.Log.Warn("Product update validation failed", "id", id, "errors", result.Errors)
		return nil, result.Err()
	}
	if merged.CategoryID != existing.CategoryID {
		if err := s.checkCategory(ctx, merged.CategoryID); err != nil {
			return nil, err
		}
	}

	if merged.Slug != existing.Slug {
		slug, err := uniqueSlug(ctx, s.products.SlugExists, merged.Slug, id, maxProductSlugLen)
		if err != nil {
			return nil, repoErr(err, "Product", id, "Failed to check product slug")
		}
		merged.Slug = slug
	}

	if err := s.products.Update(ctx, id, &merged); err != nil {
		s.cfg.Log.Error("Failed to update product", "id", id, "error", err)
		return nil, repoErr(err, "Product", id, "Failed to update product")
	}

	s.cfg.Log.Info("Product updated successfully", "id", id, "slug", merged.Slug)
	publish(ctx, s.publisher, s.cfg.Log, events.NewCatalogEvent(events.TypeUpdated, events.EntityProduct, id, merged.Slug))
	return &merged, nil
}

// Delete removes the product and its reviews. A failure to remove reviews is
// logged; the product is already gone by then.
func (s *productService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Product ID cannot be empty")
	}

	existing, err := s.products.FindByID(ctx, id)
	if err != nil {
		return repoErr(err, "Product", id, "Failed to check product existence")
	}

	if err := s.products.Delete(ctx, id); err != nil {
		s.cfg.Log.Error("Failed to delete product", "id", id, "error", err)
		return repoErr(err, "Product", id, "Failed to delete product")
	}

	removed, err := s.reviews.DeleteByProduct(ctx, id)
	if err != nil {
		s.cfg.Log.Error("Failed to delete product reviews", "id", id, "error", err)
	}

	s.cfg.Log.Info("Product deleted successfully", "id", id, "slug", existing.Slug, "reviews_removed", removed)
	publish(ctx, s.publisher, s.cfg.Log, events.NewCatalogEvent(events.TypeDeleted, events.EntityProduct, id, existing.Slug))
	return nil
}
