package pricing

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/truong-kyle/ht6/internal/domain"
)

// UnitAmount converts a major-unit price to minor currency units using
// round-half-even on the cent value: 19.99 -> 1999, 10.005 -> 1000.
// This is the single conversion rule for items and fees; every total in the
// service derives from it.
func UnitAmount(price decimal.Decimal) int64 {
	return price.Shift(2).RoundBank(0).IntPart()
}

// FeeDisplayName formats a fee key for display: "rush_fee" -> "Rush Fee".
// A cases.Caser carries mutable internal state and is not safe for
// concurrent use, so each call builds its own.
func FeeDisplayName(name string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(name, "_", " "))
}

// Price converts a validated cart into a priced order. Pure and deterministic:
// fee line items are emitted in sorted key order. All fees are included
// regardless of sign.
func Price(cart domain.Cart) domain.PricedOrder {
	lineItems := make([]domain.LineItem, 0, len(cart.Items)+len(cart.Fees))

	for _, item := range cart.Items {
		price := decimal.Zero
		if item.Price != nil {
			price = *item.Price
		}
		lineItems = append(lineItems, domain.LineItem{
			Name:        item.Name,
			Description: item.Description,
			UnitAmount:  UnitAmount(price),
			Quantity:    int64(item.Quantity),
		})
	}

	feeNames := make([]string, 0, len(cart.Fees))
	for name := range cart.Fees {
		feeNames = append(feeNames, name)
	}
	sort.Strings(feeNames)

	for _, name := range feeNames {
		display := FeeDisplayName(name)
		lineItems = append(lineItems, domain.LineItem{
			Name:        display,
			Description: display + " fee",
			UnitAmount:  UnitAmount(cart.Fees[name]),
			Quantity:    1,
		})
	}

	var total int64
	for _, li := range lineItems {
		total += li.UnitAmount * li.Quantity
	}

	return domain.PricedOrder{LineItems: lineItems, TotalAmount: total}
}

// DirectTotal sums the cart without building line items. It must agree with
// Price for every cart since both use UnitAmount per entry; the pricing tests
// hold the two paths to that.
func DirectTotal(cart domain.Cart) int64 {
	var total int64
	for _, item := range cart.Items {
		price := decimal.Zero
		if item.Price != nil {
			price = *item.Price
		}
		qty := item.Quantity
		if qty == 0 {
			qty = 1
		}
		total += UnitAmount(price) * int64(qty)
	}
	for _, amount := range cart.Fees {
		total += UnitAmount(amount)
	}
	return total
}
