package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"nothingelse-storefront/internal/domain"
	"nothingelse-storefront/internal/remote"
)

// AdminUsecase is the back-office client surface. Every call rides the
// shared remote client, so bearer injection and the 401 redirect to the
// admin login page come for free.
type AdminUsecase struct {
	api *remote.Client
}

func NewAdminUsecase(api *remote.Client) *AdminUsecase {
	return &AdminUsecase{api: api}
}

// --- Products ---

func (u *AdminUsecase) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if strings.TrimSpace(product.Name) == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if product.Price <= 0 {
		return nil, fmt.Errorf("product price must be greater than 0")
	}

	var created domain.Product
	if err := u.api.Post(ctx, "/admin/products", product, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (u *AdminUsecase) UpdateProduct(ctx context.Context, id string, product *domain.Product) (*domain.Product, error) {
	var updated domain.Product
	if err := u.api.Put(ctx, "/admin/products/"+id, product, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (u *AdminUsecase) DeleteProduct(ctx context.Context, id string) error {
	return u.api.Delete(ctx, "/admin/products/"+id, nil)
}

// --- Orders ---

func (u *AdminUsecase) ListOrders(ctx context.Context, params domain.ListParams) ([]domain.Order, error) {
	var orders []domain.Order
	if err := u.api.Get(ctx, "/admin/orders"+listQuery(params), &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (u *AdminUsecase) UpdateOrderStatus(ctx context.Context, id, status string) error {
	if strings.TrimSpace(status) == "" {
		return fmt.Errorf("order status is required")
	}
	body := map[string]string{"status": status}
	return u.api.Put(ctx, "/admin/orders/"+id+"/status", body, nil)
}

// --- Analytics ---

// validateRange applies the dashboard's date-range limits before a call
// goes out: the range must be forward and at most one year wide.
func validateRange(start, end time.Time) error {
	if end.Before(start) {
		return fmt.Errorf("end date must be after start date")
	}
	if end.Sub(start) > 365*24*time.Hour {
		return fmt.Errorf("date range cannot exceed 1 year")
	}
	return nil
}

func rangeQuery(start, end time.Time) string {
	q := url.Values{}
	q.Set("start", start.Format("2006-01-02"))
	q.Set("end", end.Format("2006-01-02"))
	return "?" + q.Encode()
}

func (u *AdminUsecase) GetAnalytics(ctx context.Context, start, end time.Time) (*domain.AnalyticsSummary, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}
	var summary domain.AnalyticsSummary
	if err := u.api.Get(ctx, "/admin/analytics"+rangeQuery(start, end), &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (u *AdminUsecase) GetSalesData(ctx context.Context, start, end time.Time) ([]domain.SalesPoint, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}
	var points []domain.SalesPoint
	if err := u.api.Get(ctx, "/admin/analytics/sales"+rangeQuery(start, end), &points); err != nil {
		return nil, err
	}
	return points, nil
}

func (u *AdminUsecase) GetVisitorData(ctx context.Context, start, end time.Time) ([]domain.VisitorPoint, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}
	var points []domain.VisitorPoint
	if err := u.api.Get(ctx, "/admin/analytics/visitors"+rangeQuery(start, end), &points); err != nil {
		return nil, err
	}
	return points, nil
}

func (u *AdminUsecase) GetBestSellers(ctx context.Context, start, end time.Time) ([]domain.BestSeller, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}
	var sellers []domain.BestSeller
	if err := u.api.Get(ctx, "/admin/analytics/best-sellers"+rangeQuery(start, end), &sellers); err != nil {
		return nil, err
	}
	return sellers, nil
}

// --- Social Media ---

func (u *AdminUsecase) PostToSocial(ctx context.Context, post domain.SocialPost) error {
	if len(post.Platforms) == 0 {
		return fmt.Errorf("at least one platform is required")
	}
	if strings.TrimSpace(post.Message) == "" {
		return fmt.Errorf("post message is required")
	}
	return u.api.Post(ctx, "/admin/social/post", post, nil)
}

func (u *AdminUsecase) GetSocialAccounts(ctx context.Context) ([]domain.SocialAccount, error) {
	var accounts []domain.SocialAccount
	if err := u.api.Get(ctx, "/admin/social/accounts", &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// --- Promo Codes ---

// validatePromo enforces promo-code shape before the backend sees it.
func validatePromo(promo *domain.PromoCode) error {
	promo.Code = strings.ToUpper(strings.TrimSpace(promo.Code))
	if promo.Code == "" {
		return fmt.Errorf("promo code is required")
	}
	if promo.Type != "percentage" && promo.Type != "fixed" {
		return fmt.Errorf("promo type must be 'percentage' or 'fixed'")
	}
	if promo.Value <= 0 {
		return fmt.Errorf("promo value must be greater than 0")
	}
	if promo.Type == "percentage" && promo.Value > 100 {
		return fmt.Errorf("percentage discount cannot exceed 100%%")
	}
	if promo.StartAt != "" && promo.ExpiresAt != "" {
		start, err := time.Parse(time.RFC3339, promo.StartAt)
		if err != nil {
			return fmt.Errorf("invalid start date: %w", err)
		}
		expires, err := time.Parse(time.RFC3339, promo.ExpiresAt)
		if err != nil {
			return fmt.Errorf("invalid expiry date: %w", err)
		}
		if !expires.After(start) {
			return fmt.Errorf("expiry must be after start")
		}
	}
	return nil
}

func (u *AdminUsecase) ListPromos(ctx context.Context) ([]domain.PromoCode, error) {
	var promos []domain.PromoCode
	if err := u.api.Get(ctx, "/admin/promos", &promos); err != nil {
		return nil, err
	}
	return promos, nil
}

func (u *AdminUsecase) CreatePromo(ctx context.Context, promo domain.PromoCode) (*domain.PromoCode, error) {
	if err := validatePromo(&promo); err != nil {
		return nil, err
	}
	var created domain.PromoCode
	if err := u.api.Post(ctx, "/admin/promos", promo, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (u *AdminUsecase) UpdatePromo(ctx context.Context, id string, promo domain.PromoCode) (*domain.PromoCode, error) {
	if err := validatePromo(&promo); err != nil {
		return nil, err
	}
	var updated domain.PromoCode
	if err := u.api.Put(ctx, "/admin/promos/"+id, promo, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (u *AdminUsecase) DeletePromo(ctx context.Context, id string) error {
	return u.api.Delete(ctx, "/admin/promos/"+id, nil)
}

// --- Contacts ---

func (u *AdminUsecase) ListContacts(ctx context.Context, params domain.ListParams) ([]domain.ContactRecord, error) {
	var contacts []domain.ContactRecord
	if err := u.api.Get(ctx, "/admin/contacts"+listQuery(params), &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

// --- Settings ---

func (u *AdminUsecase) GetSettings(ctx context.Context) (domain.Settings, error) {
	var settings domain.Settings
	if err := u.api.Get(ctx, "/admin/settings", &settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (u *AdminUsecase) UpdateSettings(ctx context.Context, settings domain.Settings) error {
	return u.api.Put(ctx, "/admin/settings", settings, nil)
}
