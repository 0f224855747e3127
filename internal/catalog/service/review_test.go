package service

import (
	"context"
	"testing"

	apperrors "storefront/pkg/errors"
	"storefront/pkg/model"
)

func newReviewFixture(t *testing.T) (ReviewService, *fakeReviewRepo, *fakeProductRepo, *fakePublisher) {
	t.Helper()
	reviews := &fakeReviewRepo{}
	products := &fakeProductRepo{}
	publisher := &fakePublisher{}
	svc := NewReviewService(reviews, products, newTestValidator(), publisher, newTestConfig(t))
	return svc, reviews, products, publisher
}

func TestReviewCreate(t *testing.T) {
	svc, reviews, products, publisher := newReviewFixture(t)
	p := products.seed(model.Product{Name: "Silk Saree", Slug: "silk-saree"})

	r := &model.Review{ProductID: p.ID, Name: " Asha ", Rating: 5, Comment: "<b>Lovely</b> drape<script>x</script>"}
	if err := svc.Create(context.Background(), r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r.Name != "Asha" || r.Comment != "Lovely drape" {
		t.Errorf("expected sanitized review, got %+v", r)
	}
	if len(reviews.items) != 1 {
		t.Errorf("expected review to be stored")
	}
	if len(publisher.events) != 1 || publisher.events[0].Slug != "silk-saree" || publisher.events[0].Name() != "review.created" {
		t.Errorf("unexpected events %+v", publisher.events)
	}
}

func TestReviewCreate_Rejections(t *testing.T) {
	svc, reviews, products, _ := newReviewFixture(t)
	p := products.seed(model.Product{Name: "Silk Saree", Slug: "silk-saree"})

	tests := []struct {
		name      string
		review    model.Review
		wantCode  string
		wantField string
	}{
		{"missing rating", model.Review{ProductID: p.ID, Name: "Asha", Comment: "Nice"}, apperrors.CodeValidation, "rating"},
		{"rating too high", model.Review{ProductID: p.ID, Name: "Asha", Rating: 6, Comment: "Nice"}, apperrors.CodeValidation, "rating"},
		{"comment only markup", model.Review{ProductID: p.ID, Name: "Asha", Rating: 4, Comment: "<i></i>"}, apperrors.CodeValidation, "comment"},
		{"malformed product id", model.Review{ProductID: "abc", Name: "Asha", Rating: 4, Comment: "Nice"}, apperrors.CodeValidation, "productId"},
		{"unknown product", model.Review{ProductID: "507f1f77bcf86cd799439011", Name: "Asha", Rating: 4, Comment: "Nice"}, apperrors.CodeNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.review
			appErr := requireCode(t, svc.Create(context.Background(), &r), tt.wantCode)
			if tt.wantField != "" && !hasDetail(appErr, tt.wantField) {
				t.Errorf("expected detail for %s, got %+v", tt.wantField, appErr.Details)
			}
		})
	}
	if len(reviews.items) != 0 {
		t.Errorf("rejected reviews must not be stored, got %d", len(reviews.items))
	}
}

func TestReviewListByProduct(t *testing.T) {
	svc, reviews, products, _ := newReviewFixture(t)
	p := products.seed(model.Product{Name: "Silk Saree", Slug: "silk-saree"})
	reviews.items = []*model.Review{{ID: "r1", ProductID: p.ID}, {ID: "r2", ProductID: "other"}}

	got, err := svc.ListByProduct(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "r1" {
		t.Errorf("expected only r1, got %+v", got)
	}

	requireCode(t, func() error { _, err := svc.ListByProduct(context.Background(), " "); return err }(), apperrors.CodeInvalidInput)
	requireCode(t, func() error { _, err := svc.ListByProduct(context.Background(), "xyz"); return err }(), apperrors.CodeInvalidInput)
	requireCode(t, func() error {
		_, err := svc.ListByProduct(context.Background(), "507f1f77bcf86cd799439011")
		return err
	}(), apperrors.CodeNotFound)
}
