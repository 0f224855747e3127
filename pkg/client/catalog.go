package client

import (
	"context"
	"net/http"
	"net/url"

	"storefront/pkg/model"
	"storefront/pkg/pagination"
)

// CatalogClient wraps the catalog endpoints with typed methods.
type CatalogClient struct {
	http *HttpClient
}

func NewCatalogClient(httpClient *HttpClient) *CatalogClient {
	return &CatalogClient{http: httpClient}
}

type ProductQuery struct {
	Category string
	Featured bool
	Premium  bool
	Custom   bool
	Page     int
	Limit    int
}

func (q ProductQuery) params() Params {
	return Params{
		"category": q.Category,
		"featured": q.Featured,
		"premium":  q.Premium,
		"custom":   q.Custom,
		"page":     q.Page,
		"limit":    q.Limit,
	}
}

type ProductPage struct {
	Products   []model.Product
	Pagination pagination.Info
}

func (c *CatalogClient) Categories(ctx context.Context) ([]model.Category, error) {
	env, err := Do[[]model.Category](ctx, c.http, "/api/categories", RequestOptions{})
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *CatalogClient) Category(ctx context.Context, slug string) (*model.Category, error) {
	env, err := Do[*model.Category](ctx, c.http, "/api/categories/"+url.PathEscape(slug), RequestOptions{})
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *CatalogClient) Products(ctx context.Context, query ProductQuery) (*ProductPage, error) {
	env, err := Do[[]model.Product](ctx, c.http, "/api/products", RequestOptions{Query: query.params()})
	if err != nil {
		return nil, err
	}
	page := &ProductPage{Products: env.Data}
	if env.Pagination != nil {
		page.Pagination = *env.Pagination
	}
	return page, nil
}

func (c *CatalogClient) Product(ctx context.Context, slug string) (*model.Product, error) {
	env, err := Do[*model.Product](ctx, c.http, "/api/products/"+url.PathEscape(slug), RequestOptions{})
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *CatalogClient) Search(ctx context.Context, q string, limit int) ([]model.Product, error) {
	env, err := Do[[]model.Product](ctx, c.http, "/api/search", RequestOptions{
		Query: Params{"q": q, "limit": limit},
	})
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *CatalogClient) ContactLink(ctx context.Context, slug string) (*model.ContactLink, error) {
	env, err := Do[*model.ContactLink](ctx, c.http, "/api/products/"+url.PathEscape(slug)+"/contact", RequestOptions{})
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *CatalogClient) Reviews(ctx context.Context, productID string) ([]model.Review, error) {
	env, err := Do[[]model.Review](ctx, c.http, "/api/reviews", RequestOptions{
		Query: Params{"product": productID},
	})
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *CatalogClient) CreateReview(ctx context.Context, review *model.Review) (*model.Review, error) {
	env, err := Do[*model.Review](ctx, c.http, "/api/reviews", RequestOptions{
		Method: http.MethodPost,
		Body:   review,
	})
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

// Login exchanges admin credentials for a bearer token and stores it for
// later authenticated calls.
func (c *CatalogClient) Login(ctx context.Context, username, password string) error {
	env, err := Do[model.Session](ctx, c.http, "/api/auth/login", RequestOptions{
		Method: http.MethodPost,
		Body:   model.Credentials{Username: username, Password: password},
	})
	if err != nil {
		return err
	}
	return c.http.Tokens().SetToken(ctx, env.Data.Token)
}

func (c *CatalogClient) Logout(ctx context.Context) error {
	return c.http.Tokens().ClearToken(ctx)
}

func (c *CatalogClient) CreateCategory(ctx context.Context, category *model.Category) (*model.Category, error) {
	env, err := DoAuth[*model.Category](ctx, c.http, "/api/admin/categories", RequestOptions{
		Method: http.MethodPost,
		Body:   category,
	})
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *CatalogClient) UpdateCategory(ctx context.Context, id string, update *model.CategoryUpdate) (*model.Category, error) {
	env, err := DoAuth[*model.Category](ctx, c.http, "/api/admin/categories/"+url.PathEscape(id), RequestOptions{
		Method: http.MethodPut,
		Body:   update,
	})
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *CatalogClient) DeleteCategory(ctx context.Context, id string) error {
	_, err := DoAuth[any](ctx, c.http, "/api/admin/categories/"+url.PathEscape(id), RequestOptions{
		Method: http.MethodDelete,
	})
	return err
}

func (c *CatalogClient) CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	env, err := DoAuth[*model.Product](ctx, c.http, "/api/admin/products", RequestOptions{
		Method: http.MethodPost,
		Body:   product,
	})
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *CatalogClient) UpdateProduct(ctx context.Context, id string, update *model.ProductUpdate) (*model.Product, error) {
	env, err := DoAuth[*model.Product](ctx, c.http, "/api/admin/products/"+url.PathEscape(id), RequestOptions{
		Method: http.MethodPut,
		Body:   update,
	})
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *CatalogClient) DeleteProduct(ctx context.Context, id string) error {
	_, err := DoAuth[any](ctx, c.http, "/api/admin/products/"+url.PathEscape(id), RequestOptions{
		Method: http.MethodDelete,
	})
	return err
}
