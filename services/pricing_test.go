package services

import (
	"testing"

	"salonbook-backend/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestFinalPrice(t *testing.T) {
	assert.True(t, models.FinalPrice(d("100"), decimal.NewNullDecimal(d("20"))).Equal(d("80")))
	assert.True(t, models.FinalPrice(d("100"), decimal.NullDecimal{}).Equal(d("100")))
	assert.True(t, models.FinalPrice(d("19.99"), decimal.NewNullDecimal(d("15"))).Equal(d("16.99")))
	assert.True(t, models.FinalPrice(d("0.10"), decimal.NewNullDecimal(d("0"))).Equal(d("0.10")))
}

func TestComputeTotals(t *testing.T) {
	booking := &models.Booking{
		TipsAmount: d("10"),
		Services: []models.Service{
			{Price: d("100"), DiscountPercentage: decimal.NewNullDecimal(d("20"))},
		},
		Products: []models.Product{{Price: d("50")}},
	}

	totals := ComputeTotals(booking)

	assert.Equal(t, 1, totals.TotalServices)
	assert.Equal(t, 1, totals.TotalProducts)
	assert.Equal(t, "100.00", totals.TotalServicesPrice.StringFixed(2))
	assert.Equal(t, "80.00", totals.ServicesDiscountPrice.StringFixed(2))
	assert.Equal(t, "50.00", totals.TotalProductsPrice.StringFixed(2))
	assert.Equal(t, "150.00", totals.TotalPrice.StringFixed(2))
	assert.Equal(t, "140.00", totals.FinalPrice.StringFixed(2))
}

func TestComputeTotals_NoFloatDrift(t *testing.T) {
	booking := &models.Booking{}
	for i := 0; i < 10; i++ {
		booking.Products = append(booking.Products, models.Product{Price: d("0.10")})
	}

	totals := ComputeTotals(booking)

	assert.True(t, totals.TotalProductsPrice.Equal(d("1.00")))
	assert.True(t, totals.FinalPrice.Equal(d("1.00")), "tips default to zero")
}

func TestTextReceiptRenderer(t *testing.T) {
	receipt := &Receipt{
		SalonName:    "Downtown",
		CustomerName: "Ada Tester",
		BookingTime:  "10:30",
		PaymentType:  "card",
		Lines: []ReceiptLine{
			{Kind: LineService, Name: "Facial", Price: d("100"), FinalPrice: d("80")},
			{Kind: LineProduct, Name: "Serum", Price: d("50"), FinalPrice: d("50")},
		},
		Tips:  d("10"),
		Total: d("140"),
	}

	doc, contentType, err := TextReceiptRenderer{}.Render(receipt)

	assert.NoError(t, err)
	assert.Equal(t, "text/plain; charset=utf-8", contentType)
	out := string(doc)
	assert.Contains(t, out, "Downtown")
	assert.Contains(t, out, "Ada Tester")
	assert.Contains(t, out, "80.00")
	assert.Contains(t, out, "140.00")
	assert.Contains(t, out, "Paid by card")
}
