package usecase

import (
	"context"
	"fmt"
	"math"
	"net/http"

	"nothingelse-storefront/internal/domain"
	"nothingelse-storefront/internal/infrastructure/stripe"
	"nothingelse-storefront/internal/notify"
	"nothingelse-storefront/internal/remote"

	"github.com/google/uuid"
)

// OrderUsecase drives checkout and order history. The money flow is:
// backend mints a PaymentIntent, the client confirms the card against
// Stripe, and only a succeeded intent creates an order and empties the
// cart. Any earlier failure aborts with no partial state.
type OrderUsecase struct {
	api      *remote.Client
	cart     *CartUsecase
	payments *stripe.Client
	notifier notify.Notifier

	freeShippingThreshold float64
	flatShippingRate      float64
}

func NewOrderUsecase(api *remote.Client, cart *CartUsecase, payments *stripe.Client, notifier notify.Notifier, freeShippingThreshold, flatShippingRate float64) *OrderUsecase {
	return &OrderUsecase{
		api:                   api,
		cart:                  cart,
		payments:              payments,
		notifier:              notifier,
		freeShippingThreshold: freeShippingThreshold,
		flatShippingRate:      flatShippingRate,
	}
}

// Quote computes the order totals from the current cart: the sale-price
// rule for the subtotal, flat-rate shipping for physical carts below the
// free-shipping threshold.
func (u *OrderUsecase) Quote() (subtotal, shipping, total float64) {
	subtotal = u.cart.Total()
	if u.cart.HasPhysical() && subtotal < u.freeShippingThreshold {
		shipping = u.flatShippingRate
	}
	return subtotal, shipping, subtotal + shipping
}

// CreatePaymentIntent asks the backend for a Stripe client secret.
func (u *OrderUsecase) CreatePaymentIntent(ctx context.Context, amountCents int64, currency string) (string, error) {
	var resp struct {
		ClientSecret string `json:"clientSecret"`
	}
	body := map[string]interface{}{
		"amount":   amountCents,
		"currency": currency,
	}
	if err := u.api.Post(ctx, "/orders/create-payment-intent", body, &resp); err != nil {
		return "", err
	}
	return resp.ClientSecret, nil
}

// Checkout runs the full payment flow for the current cart and returns
// the created order. The cart is cleared only after the order exists.
func (u *OrderUsecase) Checkout(ctx context.Context, addr domain.ShippingAddress, card stripe.Card) (*domain.Order, error) {
	if u.cart.IsEmpty() {
		return nil, fmt.Errorf("cart is empty")
	}

	subtotal, shipping, total := u.Quote()

	clientSecret, err := u.CreatePaymentIntent(ctx, int64(math.Round(total*100)), "usd")
	if err != nil {
		return nil, err
	}

	intent, err := u.payments.ConfirmCardPayment(ctx, clientSecret, card, stripe.BillingDetails{
		Name:       addr.FirstName + " " + addr.LastName,
		Email:      addr.Email,
		Line1:      addr.Address,
		City:       addr.City,
		State:      addr.State,
		PostalCode: addr.ZipCode,
		Country:    addr.Country,
	})
	if err != nil {
		return nil, err
	}
	if intent.Status != "succeeded" {
		msg := "payment not completed"
		if intent.LastPaymentErr != nil && intent.LastPaymentErr.Message != "" {
			msg = intent.LastPaymentErr.Message
		}
		return nil, fmt.Errorf("stripe: %s (status %s)", msg, intent.Status)
	}

	req := domain.CreateOrderRequest{
		Items:           u.cart.Items(),
		ShippingAddress: addr,
		Subtotal:        subtotal,
		Shipping:        shipping,
		Total:           total,
		PaymentIntentID: intent.ID,
		IsDigital:       !u.cart.HasPhysical(),
	}

	var order domain.Order
	opts := &remote.RequestOptions{
		// The payment already went through; if the order POST is ever
		// replayed it must not create a duplicate.
		Headers: map[string]string{"Idempotency-Key": uuid.NewString()},
	}
	if err := u.api.Do(ctx, http.MethodPost, "/orders", req, &order, opts); err != nil {
		return nil, err
	}

	if err := u.cart.Clear(); err != nil {
		return &order, err
	}
	u.notifier.Success("Order placed successfully!")
	return &order, nil
}

// MyOrders returns the caller's order history.
func (u *OrderUsecase) MyOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := u.api.Get(ctx, "/orders/my-orders", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder returns one order by id.
func (u *OrderUsecase) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	var order domain.Order
	if err := u.api.Get(ctx, "/orders/"+id, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
