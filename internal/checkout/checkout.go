// Package checkout creates hosted payment links for pending payments.
package checkout

import (
	"context"
	"fmt"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/shopspring/decimal"
)

// Line is one charged item of a checkout.
type Line struct {
	Title     string
	Quantity  int
	UnitPrice decimal.Decimal
}

type Request struct {
	// ExternalReference lets the webhook find the payment again.
	ExternalReference string
	Lines             []Line
}

type Result struct {
	PreferenceID string `json:"preference_id"`
	InitPoint    string `json:"init_point"`
}

// Provider is implemented by MercadoPago and by test fakes.
type Provider interface {
	CreatePreference(ctx context.Context, req Request) (*Result, error)
}

// ======================================================
// MercadoPago
// ======================================================

const currencyCOP = "COP"

type MercadoPago struct {
	client          preference.Client
	notificationURL string
}

func NewMercadoPago(accessToken, notificationURL string) (*MercadoPago, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &MercadoPago{
		client:          preference.NewClient(cfg),
		notificationURL: notificationURL,
	}, nil
}

func (m *MercadoPago) CreatePreference(ctx context.Context, req Request) (*Result, error) {
	items := make([]preference.ItemRequest, 0, len(req.Lines))
	for _, l := range req.Lines {
		items = append(items, preference.ItemRequest{
			Title:      l.Title,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice.InexactFloat64(),
			CurrencyID: currencyCOP,
		})
	}

	res, err := m.client.Create(ctx, preference.Request{
		Items:             items,
		ExternalReference: req.ExternalReference,
		NotificationURL:   m.notificationURL,
	})
	if err != nil {
		return nil, fmt.Errorf("mercadopago preference: %w", err)
	}

	return &Result{PreferenceID: res.ID, InitPoint: res.InitPoint}, nil
}

var _ Provider = (*MercadoPago)(nil)
