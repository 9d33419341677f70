package orders

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/MarceliJankowski/pizza-project/internal/mailer"
	"github.com/MarceliJankowski/pizza-project/internal/modules/cart"
	"github.com/MarceliJankowski/pizza-project/internal/shared/apperr"
)

const submitTimeout = 15 * time.Second

// Service validates and dispatches order submissions.
type Service struct {
	submitter Submitter
	mail      mailer.Service
	fromAddr  string
	validate  *validator.Validate
	log       *slog.Logger
}

// NewService wires a submitter and an optional mailer (nil disables
// receipt mail).
func NewService(sub Submitter, mail mailer.Service, fromAddr string, l *slog.Logger) *Service {
	return &Service{
		submitter: sub,
		mail:      mail,
		fromAddr:  fromAddr,
		validate:  validator.New(),
		log:       l,
	}
}

// Place validates the contact fields and dispatches the payload.
//
// Submission is fire-and-forget: the send runs in the background with
// its own timeout and its outcome is logged but never surfaced to the
// customer. The storefront does not wait for, inspect or retry the
// backend call.
func (s *Service) Place(ctx context.Context, contact cart.Contact, payload cart.OrderPayload) (string, error) {
	if err := s.validate.Struct(contact); err != nil {
		return "", apperr.InvalidErr("Contact info is invalid.", fieldMessages(err))
	}
	if len(payload.Products) == 0 {
		return "", apperr.InvalidErr("Cart is empty.", nil)
	}

	ref := uuid.NewString()

	go func() {
		sctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()

		if err := s.submitter.Submit(sctx, ref, payload); err != nil {
			s.log.LogAttrs(sctx, slog.LevelWarn, "order_submit_failed",
				slog.String("order_ref", ref),
				slog.Any("err", err),
			)
			return
		}
		s.log.LogAttrs(sctx, slog.LevelInfo, "order_submitted",
			slog.String("order_ref", ref),
			slog.Int("total_cents", payload.TotalCents),
			slog.Int("items", payload.ItemCount),
		)

		s.sendReceipt(sctx, ref, payload)
	}()

	return ref, nil
}

func (s *Service) sendReceipt(ctx context.Context, ref string, p cart.OrderPayload) {
	if s.mail == nil || p.Email == "" {
		return
	}

	err := s.mail.Send(ctx, mailer.Email{
		FromName: "Pizza Project",
		From:     s.fromAddr,
		To:       []string{p.Email},
		Subject:  fmt.Sprintf("Order %s received", shortRef(ref)),
		TextBody: receiptText(ref, p),
	})
	if err != nil {
		s.log.LogAttrs(ctx, slog.LevelWarn, "order_receipt_mail_failed",
			slog.String("order_ref", ref),
			slog.Any("err", err),
		)
	}
}

func receiptText(ref string, p cart.OrderPayload) string {
	body := fmt.Sprintf("Thanks! Your order %s is on its way to the kitchen.\n\n", shortRef(ref))
	for _, pr := range p.Products {
		body += fmt.Sprintf("  %dx %s  %d.%02d\n", pr.Quantity, pr.Name, pr.PriceCents/100, pr.PriceCents%100)
	}
	body += fmt.Sprintf("\nSubtotal: %d.%02d\nDelivery: %d.%02d\nTotal:    %d.%02d\n\nDelivery to: %s\n",
		p.SubtotalCents/100, p.SubtotalCents%100,
		p.DeliveryFeeCents/100, p.DeliveryFeeCents%100,
		p.TotalCents/100, p.TotalCents%100,
		p.Address,
	)
	return body
}

func shortRef(ref string) string {
	if len(ref) > 8 {
		return ref[:8]
	}
	return ref
}

func fieldMessages(err error) map[string]string {
	out := map[string]string{}
	if ve, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range ve {
			switch fe.Tag() {
			case "required":
				out[fe.Field()] = "This field is required."
			case "email":
				out[fe.Field()] = "Enter a valid email address."
			case "min":
				out[fe.Field()] = "Too short."
			case "max":
				out[fe.Field()] = "Too long."
			default:
				out[fe.Field()] = "Invalid value."
			}
		}
	}
	return out
}
