package usecase

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"nothingelse-storefront/internal/domain"
	"nothingelse-storefront/internal/infrastructure/web3forms"
	"nothingelse-storefront/internal/notify"
	"nothingelse-storefront/internal/remote"
)

// ContentUsecase covers the messaging edges of the storefront: newsletter
// signup through the backend and the contact form straight to the form
// service.
type ContentUsecase struct {
	api      *remote.Client
	forms    *web3forms.Client
	notifier notify.Notifier
}

func NewContentUsecase(api *remote.Client, forms *web3forms.Client, notifier notify.Notifier) *ContentUsecase {
	return &ContentUsecase{
		api:      api,
		forms:    forms,
		notifier: notifier,
	}
}

// SubscribeNewsletter signs an address up for the newsletter.
func (u *ContentUsecase) SubscribeNewsletter(ctx context.Context, email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("invalid email address")
	}
	body := map[string]string{"email": email}
	if err := u.api.Post(ctx, "/newsletter/subscribe", body, nil); err != nil {
		return err
	}
	u.notifier.Success("Subscribed to newsletter")
	return nil
}

// SubmitContact sends a contact message directly to the form service.
// The backend is not involved.
func (u *ContentUsecase) SubmitContact(ctx context.Context, msg domain.ContactMessage) error {
	if strings.TrimSpace(msg.Name) == "" || strings.TrimSpace(msg.Message) == "" {
		return fmt.Errorf("name and message are required")
	}
	if _, err := mail.ParseAddress(msg.Email); err != nil {
		return fmt.Errorf("invalid email address")
	}

	if err := u.forms.Submit(ctx, msg); err != nil {
		u.notifier.Error("Failed to send message. Please try again.")
		return err
	}
	u.notifier.Success("Message sent successfully")
	return nil
}
