package usecase

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"nothingelse-storefront/internal/domain"
	"nothingelse-storefront/internal/remote"
	"nothingelse-storefront/pkg/cache"
)

// CatalogUsecase is the read side of the product catalog. The backend
// owns the data; this layer adds read-through caching so browsing does
// not hammer the public endpoints.
type CatalogUsecase struct {
	api        *remote.Client
	cache      cache.CacheService
	productTTL time.Duration
	listTTL    time.Duration
}

func NewCatalogUsecase(api *remote.Client, cacheSvc cache.CacheService, productTTL, listTTL time.Duration) *CatalogUsecase {
	return &CatalogUsecase{
		api:        api,
		cache:      cacheSvc,
		productTTL: productTTL,
		listTTL:    listTTL,
	}
}

// List returns the paged product listing.
func (u *CatalogUsecase) List(ctx context.Context, params domain.ListParams) ([]domain.Product, error) {
	key := fmt.Sprintf("catalog:products:%d:%d", params.Page, params.Limit)
	return u.cachedList(ctx, key, "/products"+listQuery(params), u.listTTL)
}

// GetByID returns a single product.
func (u *CatalogUsecase) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	key := "catalog:product:" + id
	if val, found := u.cache.Get(key); found {
		product := val.(domain.Product)
		return &product, nil
	}

	var product domain.Product
	if err := u.api.Get(ctx, "/products/"+id, &product); err != nil {
		return nil, err
	}
	u.cache.Set(key, product, u.productTTL)
	return &product, nil
}

// GetByCategory returns products in a category.
func (u *CatalogUsecase) GetByCategory(ctx context.Context, category string, params domain.ListParams) ([]domain.Product, error) {
	key := fmt.Sprintf("catalog:category:%s:%d:%d", category, params.Page, params.Limit)
	path := "/products/category/" + url.PathEscape(category) + listQuery(params)
	return u.cachedList(ctx, key, path, u.listTTL)
}

// GetDigital returns the digital-products listing.
func (u *CatalogUsecase) GetDigital(ctx context.Context, params domain.ListParams) ([]domain.Product, error) {
	key := fmt.Sprintf("catalog:digital:%d:%d", params.Page, params.Limit)
	return u.cachedList(ctx, key, "/products/digital"+listQuery(params), u.listTTL)
}

// GetFeatured returns the featured products.
func (u *CatalogUsecase) GetFeatured(ctx context.Context) ([]domain.Product, error) {
	return u.cachedList(ctx, "catalog:featured", "/products/featured", u.listTTL)
}

// GetBestSellers returns the best-sellers listing.
func (u *CatalogUsecase) GetBestSellers(ctx context.Context) ([]domain.Product, error) {
	return u.cachedList(ctx, "catalog:best-sellers", "/products/best-sellers", u.listTTL)
}

// Search runs a text search. Results are not cached; queries are too
// varied for a small cache to help.
func (u *CatalogUsecase) Search(ctx context.Context, query string) ([]domain.Product, error) {
	var products []domain.Product
	path := "/products/search?q=" + url.QueryEscape(query)
	if err := u.api.Get(ctx, path, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetReviews returns a product's reviews.
func (u *CatalogUsecase) GetReviews(ctx context.Context, productID string) ([]domain.Review, error) {
	key := "catalog:reviews:" + productID
	if val, found := u.cache.Get(key); found {
		return val.([]domain.Review), nil
	}

	var reviews []domain.Review
	if err := u.api.Get(ctx, "/products/"+productID+"/reviews", &reviews); err != nil {
		return nil, err
	}
	u.cache.Set(key, reviews, u.productTTL)
	return reviews, nil
}

// AddReview posts a review and invalidates that product's cached reviews.
func (u *CatalogUsecase) AddReview(ctx context.Context, productID string, review domain.Review) error {
	if review.Rating < 1 || review.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}
	if err := u.api.Post(ctx, "/products/"+productID+"/reviews", review, nil); err != nil {
		return err
	}
	u.cache.Delete("catalog:reviews:" + productID)
	return nil
}

func (u *CatalogUsecase) cachedList(ctx context.Context, key, path string, ttl time.Duration) ([]domain.Product, error) {
	if val, found := u.cache.Get(key); found {
		return val.([]domain.Product), nil
	}

	var products []domain.Product
	if err := u.api.Get(ctx, path, &products); err != nil {
		return nil, err
	}
	u.cache.Set(key, products, ttl)
	return products, nil
}

func listQuery(params domain.ListParams) string {
	q := url.Values{}
	if params.Page > 0 {
		q.Set("page", fmt.Sprint(params.Page))
	}
	if params.Limit > 0 {
		q.Set("limit", fmt.Sprint(params.Limit))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}
