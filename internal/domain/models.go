package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/truong-kyle/ht6/pkg/errors"
)

// Item is one cart entry as submitted by the frontend. Price is in major
// currency units; a nil Price means the field was absent from the payload.
type Item struct {
	Name        string
	Description string
	Price       *decimal.Decimal
	Quantity    int
}

// FeeSet maps a fee name to its major-unit amount. Fee names use underscores
// as word separators ("rush_fee"). All fees are charged regardless of sign:
// dropping a zero or negative fee would silently change the total.
type FeeSet map[string]decimal.Decimal

// Cart is the unit of work for both creation endpoints. Carts arrive complete
// in each request body; the service keeps no cart state between requests.
type Cart struct {
	Items []Item
	Fees  FeeSet
}

// Validate checks the cart against the request contract and normalizes
// defaults in place: a missing quantity becomes 1 and a blank description
// becomes absent. Returns *errors.ErrValidation with per-field messages.
func (c *Cart) Validate() error {
	fields := make(map[string]string)

	if len(c.Items) == 0 {
		fields["items"] = "at least one item is required"
	}

	for i := range c.Items {
		item := &c.Items[i]
		if strings.TrimSpace(item.Name) == "" {
			fields[fmt.Sprintf("items[%d].name", i)] = "name is required"
		}
		if item.Price == nil {
			fields[fmt.Sprintf("items[%d].price", i)] = "price is required"
		} else if item.Price.IsNegative() {
			fields[fmt.Sprintf("items[%d].price", i)] = "price must not be negative"
		}
		if item.Quantity < 0 {
			fields[fmt.Sprintf("items[%d].quantity", i)] = "quantity must be positive"
		}
		if item.Quantity == 0 {
			item.Quantity = 1
		}
		item.Description = strings.TrimSpace(item.Description)
	}

	if len(fields) > 0 {
		return &errors.ErrValidation{Message: "invalid cart", Fields: fields}
	}
	return nil
}

// LineItem is the provider-facing representation of one charge line.
// UnitAmount is in minor currency units (cents).
type LineItem struct {
	Name        string
	Description string
	UnitAmount  int64
	Quantity    int64
}

// PricedOrder is a cart after pricing. TotalAmount is in minor units and is
// the exact amount charged by either creation path.
type PricedOrder struct {
	LineItems   []LineItem
	TotalAmount int64
}

// CheckoutSession is the normalized view of a provider checkout session.
// The provider owns the authoritative state; this service never persists it.
type CheckoutSession struct {
	ID                  string
	Status              string
	PaymentStatus       string
	ClientSecret        string
	URL                 string
	AmountTotal         int64
	CustomerEmail       string
	PaymentIntentID     string
	PaymentIntentStatus string
}

// PaymentIntent is the normalized view of a provider payment intent.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Amount       int64
	Status       string
}
