package service

import (
	"context"

	"storefront/internal/catalog/repository"
	"storefront/pkg/config"
	apperrors "storefront/pkg/errors"
	"storefront/pkg/events"
	"storefront/pkg/model"
	"storefront/pkg/sanitizer"
	"storefront/pkg/validator"
)

const maxCategorySlugLen = 120

type CategoryService interface {
	List(ctx context.Context) ([]*model.Category, error)
	GetBySlug(ctx context.Context, slug string) (*model.Category, error)
	Create(ctx context.Context, c *model.Category) error
	Update(ctx context.Context, id string, updates *model.CategoryUpdate) (*model.Category, error)
	Delete(ctx context.Context, id string) error
}

type categoryService struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	validator  *validator.Validator
	publisher  events.Publisher
	cfg        *config.Config
}

func NewCategoryService(
	categories repository.CategoryRepository,
	products repository.ProductRepository,
	validator *validator.Validator,
	publisher events.Publisher,
	cfg *config.Config,
) CategoryService {
	return &categoryService{
		categories: categories,
		products:   products,
		validator:  validator,
		publisher:  publisher,
		cfg:        cfg,
	}
}

func (s *categoryService) List(ctx context.Context) ([]*model.Category, error) {
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list categories", "error", err)
		return nil, repoErr(err, "Category", "", "Failed to retrieve categories")
	}
	return categories, nil
}

func (s *categoryService) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	slug = sanitizer.GenerateSlug(slug)
	if slug == "" {
		return nil, apperrors.InvalidInput("Category slug cannot be empty")
	}

	c, err := s.categories.FindBySlug(ctx, slug)
	if err != nil {
		return nil, repoErr(err, "Category", slug, "Failed to retrieve category")
	}
	return c, nil
}

func (s *categoryService) sanitize(c *model.Category) {
	c.Name = sanitizer.CleanText(c.Name)
	c.Description = sanitizer.SanitizeInput(c.Description)
	c.Image = sanitizer.TrimAndNormalize(c.Image)
}

func (s *categoryService) Create(ctx context.Context, c *model.Category) error {
	s.sanitize(c)
	c.Slug = baseSlug(c.Slug, c.Name)

	if result := s.validator.Validate(c); !result.Valid {
		s.cfg.Log.Warn("Category validation failed", "name", c.Name, "errors", result.Errors)
		return result.Err()
	}

	slug, err := uniqueSlug(ctx, s.categories.SlugExists, c.Slug, "", maxCategorySlugLen)
	if err != nil {
		return repoErr(err, "Category", "", "Failed to check category slug")
	}
	c.Slug = slug

	if err := s.categories.Create(ctx, c); err != nil {
		s.cfg.Log.Error("Failed to create category", "name", c.Name, "slug", c.Slug, "error", err)
		return repoErr(err, "Category", "", "Failed to create category")
	}

	s.cfg.Log.Info("Category created successfully", "id", c.ID, "slug", c.Slug)
	publish(ctx, s.publisher, s.cfg.Log, events.NewCatalogEvent(events.TypeCreated, events.EntityCategory, c.ID, c.Slug))
	return nil
}

func (s *categoryService) Update(ctx context.Context, id string, updates *model.CategoryUpdate) (*model.Category, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Category ID cannot be empty")
	}

	existing, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, repoErr(err, "Category", id, "Failed to check category existence")
	}

	merged := *existing
	if updates.Name != nil {
		merged.Name = *updates.Name
	}
	if updates.Description != nil {
		merged.Description = *updates.Description
	}
	if updates.Image != nil {
		merged.Image = *updates.Image
	}
	s.sanitize(&merged)

	if updates.Slug != nil {
		merged.Slug = baseSlug(*updates.Slug, merged.Name)
	}

	if result := s.validator.Validate(&merged); !result.Valid {
		s.cfg.Log.Warn("Category update validation failed", "id", id, "errors", result.Errors)
		return nil, result.Err()
	}

	if merged.Slug != existing.Slug {
		slug, err := uniqueSlug(ctx, s.categories.SlugExists, merged.Slug, id, maxCategorySlugLen)
		if err != nil {
			return nil, repoErr(err, "Category", id, "Failed to check category slug")
		}
		merged.Slug = slug
	}

	if err := s.categories.Update(ctx, id, &merged); err != nil {
		s.cfg.Log.Error("Failed to update category", "id", id, "error", err)
		return nil, repoErr(err, "Category", id, "Failed to update category")
	}

	s.cfg.Log.Info("Category updated successfully", "id", id, "slug", merged.Slug)
	publish(ctx, s.publisher, s.cfg.Log, events.NewCatalogEvent(events.TypeUpdated, events.EntityCategory, id, merged.Slug))
	return &merged, nil
}

// Delete refuses to remove a category that still has products.
func (s *categoryService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Category ID cannot be empty")
	}

	existing, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return repoErr(err, "Category", id, "Failed to check category existence")
	}

	n, err := s.products.CountByCategory(ctx, id)
	if err != nil {
		s.cfg.Log.Error("Failed to count category products", "id", id, "error", err)
		return apperrors.Internal("Failed to check category products", err)
	}
	if n > 0 {
		return apperrors.Conflict("Category still has products")
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		s.cfg.Log.Error("Failed to delete category", "id", id, "error", err)
		return repoErr(err, "Category", id, "Failed to delete category")
	}

	s.cfg.Log.Info("Category deleted successfully", "id", id, "slug", existing.Slug)
	publish(ctx, s.publisher, s.cfg.Log, events.NewCatalogEvent(events.TypeDeleted, events.EntityCategory, id, existing.Slug))
	return nil
}
