package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/MarceliJankowski/pizza-project/internal/modules/cart"
)

// Submitter hands a finished order payload to the backend. The caller
// treats the outcome as best-effort; implementations must not retry.
type Submitter interface {
	Submit(ctx context.Context, ref string, p cart.OrderPayload) error
}

// HTTPSubmitter POSTs the payload to a remote order backend.
type HTTPSubmitter struct {
	URL    string
	Client *http.Client
}

func NewHTTPSubmitter(url string) *HTTPSubmitter {
	return &HTTPSubmitter{
		URL:    url,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *HTTPSubmitter) Submit(ctx context.Context, ref string, p cart.OrderPayload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal order %s: %w", ref, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Order-Ref", ref)

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("submit order %s: %w", ref, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("submit order %s: backend returned %d", ref, resp.StatusCode)
	}
	return nil
}

// DBSubmitter writes the order straight into the local database, for
// deployments that run their own kitchen dashboard off the same MySQL.
type DBSubmitter struct{ db *gorm.DB }

func NewDBSubmitter(db *gorm.DB) *DBSubmitter { return &DBSubmitter{db: db} }

func (s *DBSubmitter) Submit(ctx context.Context, ref string, p cart.OrderPayload) error {
	now := time.Now()
	o := Order{
		ID:               ref,
		Phone:            p.Phone,
		Address:          p.Address,
		Email:            p.Email,
		SubtotalCents:    p.SubtotalCents,
		DeliveryFeeCents: p.DeliveryFeeCents,
		TotalCents:       p.TotalCents,
		ItemCount:        p.ItemCount,
		Status:           "received",
		CreatedAt:        now,
	}

	items, err := buildOrderItems(ref, p, now)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&o).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}

// buildOrderItems flattens the payload's lines into rows, with each
// line's selection summary serialized into the Params JSON column.
func buildOrderItems(ref string, p cart.OrderPayload, now time.Time) ([]OrderItem, error) {
	items := make([]OrderItem, 0, len(p.Products))
	for _, pr := range p.Products {
		params, err := json.Marshal(pr.Params)
		if err != nil {
			return nil, fmt.Errorf("marshal params for order %s: %w", ref, err)
		}
		items = append(items, OrderItem{
			ID:             uuid.NewString(),
			OrderID:        ref,
			ProductID:      pr.ID,
			ProductCode:    pr.Code,
			ProductName:    pr.Name,
			Quantity:       pr.Quantity,
			UnitPriceCents: pr.UnitPriceCents,
			LineTotalCents: pr.PriceCents,
			Params:         datatypes.JSON(params),
			CreatedAt:      now,
		})
	}
	return items, nil
}

// FromEnv picks a submitter by ORDER_SUBMITTER ("http" needs
// ORDER_BACKEND_URL, "db" writes locally; default "db").
func FromEnv(db *gorm.DB) (Submitter, error) {
	driver := os.Getenv("ORDER_SUBMITTER")
	if driver == "" {
		driver = "db"
	}

	switch driver {
	case "db":
		return NewDBSubmitter(db), nil
	case "http":
		url := os.Getenv("ORDER_BACKEND_URL")
		if url == "" {
			return nil, fmt.Errorf("ORDER_BACKEND_URL required when ORDER_SUBMITTER=http")
		}
		return NewHTTPSubmitter(url), nil
	default:
		return nil, fmt.Errorf("unknown ORDER_SUBMITTER: %s", driver)
	}
}
