package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/truong-kyle/ht6/internal/domain"
	"github.com/truong-kyle/ht6/internal/pricing"
)

type cartFile struct {
	Items []struct {
		Name        string           `json:"name"`
		Description string           `json:"description"`
		Price       *decimal.Decimal `json:"price"`
		Quantity    int              `json:"quantity"`
	} `json:"items"`
	Fees map[string]decimal.Decimal `json:"fees"`
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/price-cart/main.go <cart.json>")
		fmt.Println("Example: go run cmd/price-cart/main.go testdata/cart.json")
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read cart file: %v\n", err)
		os.Exit(1)
	}

	var raw cartFile
	if err := json.Unmarshal(data, &raw); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse cart file: %v\n", err)
		os.Exit(1)
	}

	cart := domain.Cart{Fees: domain.FeeSet(raw.Fees)}
	for _, item := range raw.Items {
		cart.Items = append(cart.Items, domain.Item{
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Price,
			Quantity:    item.Quantity,
		})
	}

	if err := cart.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid cart: %v\n", err)
		os.Exit(1)
	}

	order := pricing.Price(cart)

	fmt.Printf("💰 Priced %d line item(s):\n\n", len(order.LineItems))
	for _, li := range order.LineItems {
		fmt.Printf("  %-30s %6d x %d\n", li.Name, li.UnitAmount, li.Quantity)
	}
	fmt.Printf("\nTotal (minor units): %d\n", order.TotalAmount)
}
