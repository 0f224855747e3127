package service

import (
	"context"
	"strings"

	"storefront/internal/catalog/repository"
	"storefront/pkg/config"
	apperrors "storefront/pkg/errors"
	"storefront/pkg/events"
	"storefront/pkg/model"
	"storefront/pkg/sanitizer"
	"storefront/pkg/validator"
)

type ReviewService interface {
	ListByProduct(ctx context.Context, productID string) ([]*model.Review, error)
	Create(ctx context.Context, review *model.Review) error
}

type reviewService struct {
	reviews   repository.ReviewRepository
	products  repository.ProductRepository
	validator *validator.Validator
	publisher events.Publisher
	cfg       *config.Config
}

func NewReviewService(
	reviews repository.ReviewRepository,
	products repository.ProductRepository,
	validator *validator.Validator,
	publisher events.Publisher,
	cfg *config.Config,
) ReviewService {
	return &reviewService{
		reviews:   reviews,
		products:  products,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *reviewService) ListByProduct(ctx context.Context, productID string) ([]*model.Review, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, apperrors.InvalidInput("Product ID is required")
	}

	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, repoErr(err, "Product", productID, "Failed to check product existence")
	}

	reviews, err := s.reviews.FindByProduct(ctx, productID)
	if err != nil {
		s.cfg.Log.Error("Failed to list reviews", "product_id", productID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve reviews", err)
	}
	return reviews, nil
}

func (s *reviewService) Create(ctx context.Context, review *model.Review) error {
	review.ProductID = strings.TrimSpace(review.ProductID)
	review.Name = sanitizer.CleanText(review.Name)
	review.Comment = sanitizer.SanitizeInput(review.Comment)

	if result := s.validator.Validate(review); !result.Valid {
		s.cfg.Log.Warn("Review validation failed", "product_id", review.ProductID, "errors", result.Errors)
		return result.Err()
	}

	product, err := s.products.FindByID(ctx, review.ProductID)
	if err != nil {
		return repoErr(err, "Product", review.ProductID, "Failed to check product existence")
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		s.cfg.Log.Error("Failed to create review", "product_id", review.ProductID, "error", err)
		return repoErr(err, "Review", "", "Failed to create review")
	}

	s.cfg.Log.Info("Review created successfully",
		"id", review.ID,
		"product_id", review.ProductID,
		"rating", review.Rating,
	)
	publish(ctx, s.publisher, s.cfg.Log, events.NewCatalogEvent(events.TypeCreated, events.EntityReview, review.ID, product.Slug))
	return nil
}
