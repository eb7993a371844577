package pricing

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truong-kyle/ht6/internal/domain"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func decPtr(t *testing.T, s string) *decimal.Decimal {
	t.Helper()
	d := dec(t, s)
	return &d
}

func TestUnitAmount(t *testing.T) {
	tests := []struct {
		name  string
		price string
		want  int64
	}{
		{"exact cents", "19.99", 1999},
		{"whole dollars", "10.00", 1000},
		{"zero", "0", 0},
		{"single cent", "0.01", 1},
		{"half cent rounds to even down", "10.005", 1000},
		{"half cent rounds to even up", "10.015", 1002},
		{"fractional rounds nearest", "2.676", 268},
		{"negative amount", "-2.50", -250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UnitAmount(dec(t, tt.price)))
		})
	}
}

func TestFeeDisplayName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"rush_fee", "Rush Fee"},
		{"shipping", "Shipping"},
		{"fuel_surcharge", "Fuel Surcharge"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FeeDisplayName(tt.in))
	}
}

func TestPrice_WidgetWithShippingFee(t *testing.T) {
	cart := domain.Cart{
		Items: []domain.Item{
			{Name: "Widget", Price: decPtr(t, "10.00"), Quantity: 2},
		},
		Fees: domain.FeeSet{"shipping": dec(t, "5.00")},
	}
	require.NoError(t, cart.Validate())

	order := Price(cart)

	require.Len(t, order.LineItems, 2)
	assert.Equal(t, int64(2500), order.TotalAmount)

	widget := order.LineItems[0]
	assert.Equal(t, "Widget", widget.Name)
	assert.Equal(t, int64(1000), widget.UnitAmount)
	assert.Equal(t, int64(2), widget.Quantity)

	shipping := order.LineItems[1]
	assert.Equal(t, "Shipping", shipping.Name)
	assert.Equal(t, "Shipping fee", shipping.Description)
	assert.Equal(t, int64(500), shipping.UnitAmount)
	assert.Equal(t, int64(1), shipping.Quantity)
}

func TestPrice_KeepsZeroAndNegativeFees(t *testing.T) {
	cart := domain.Cart{
		Items: []domain.Item{
			{Name: "Delivery", Price: decPtr(t, "20.00"), Quantity: 1},
		},
		Fees: domain.FeeSet{
			"promo_discount": dec(t, "-2.50"),
			"base_fee":       dec(t, "0"),
		},
	}
	require.NoError(t, cart.Validate())

	order := Price(cart)

	require.Len(t, order.LineItems, 3)
	assert.Equal(t, int64(2000-250), order.TotalAmount)
}

func TestPrice_FeeOrderIsDeterministic(t *testing.T) {
	cart := domain.Cart{
		Items: []domain.Item{
			{Name: "Delivery", Price: decPtr(t, "12.00"), Quantity: 1},
		},
		Fees: domain.FeeSet{
			"rush_fee":  dec(t, "3.00"),
			"base_fee":  dec(t, "1.00"),
			"night_fee": dec(t, "2.00"),
		},
	}
	require.NoError(t, cart.Validate())

	order := Price(cart)

	require.Len(t, order.LineItems, 4)
	assert.Equal(t, "Base Fee", order.LineItems[1].Name)
	assert.Equal(t, "Night Fee", order.LineItems[2].Name)
	assert.Equal(t, "Rush Fee", order.LineItems[3].Name)
}

// Price must stay pure under concurrent callers: fee-name formatting shares
// no mutable state, so parallel carts can never corrupt each other's line
// items. Run with -race.
func TestPrice_ConcurrentFeeCarts(t *testing.T) {
	cart := domain.Cart{
		Items: []domain.Item{
			{Name: "Delivery", Price: decPtr(t, "12.00"), Quantity: 1},
		},
		Fees: domain.FeeSet{
			"rush_fee":       dec(t, "3.00"),
			"fuel_surcharge": dec(t, "1.50"),
		},
	}
	require.NoError(t, cart.Validate())

	const goroutines = 50
	results := make(chan domain.PricedOrder, goroutines)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- Price(cart)
		}()
	}
	wg.Wait()
	close(results)

	for order := range results {
		require.Len(t, order.LineItems, 3)
		assert.Equal(t, "Fuel Surcharge", order.LineItems[1].Name)
		assert.Equal(t, "Rush Fee", order.LineItems[2].Name)
		assert.Equal(t, int64(1650), order.TotalAmount)
	}
}

// The line-item path and the direct-sum path must charge the same amount for
// every cart; both creation endpoints rely on that.
func TestPrice_AgreesWithDirectTotal(t *testing.T) {
	carts := []domain.Cart{
		{
			Items: []domain.Item{
				{Name: "Widget", Price: decPtr(t, "10.00"), Quantity: 2},
			},
			Fees: domain.FeeSet{"shipping": dec(t, "5.00")},
		},
		{
			Items: []domain.Item{
				{Name: "Ride", Price: decPtr(t, "19.99"), Quantity: 1},
				{Name: "Tip", Price: decPtr(t, "10.005"), Quantity: 3},
			},
			Fees: domain.FeeSet{
				"rush_fee":       dec(t, "4.135"),
				"promo_discount": dec(t, "-1.25"),
			},
		},
		{
			Items: []domain.Item{
				{Name: "Freebie", Price: decPtr(t, "0")},
			},
		},
	}

	for _, cart := range carts {
		require.NoError(t, cart.Validate())
		order := Price(cart)
		assert.Equal(t, DirectTotal(cart), order.TotalAmount)
	}
}
