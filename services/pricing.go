package services

import (
	"salonbook-backend/models"

	"github.com/shopspring/decimal"
)

// BookingTotals are the derived money fields of a booking. They are computed
// from the current associations on every read and never stored.
type BookingTotals struct {
	TotalServices         int             `json:"total_services"`
	TotalProducts         int             `json:"total_products"`
	TotalServicesPrice    decimal.Decimal `json:"total_services_price"`
	ServicesDiscountPrice decimal.Decimal `json:"services_discount_price"`
	TotalProductsPrice    decimal.Decimal `json:"total_products_price"`
	TotalPrice            decimal.Decimal `json:"total_price"`
	FinalPrice            decimal.Decimal `json:"final_price"`
}

// ComputeTotals aggregates a booking's services, products and tips.
// total_price uses undiscounted service prices; final_price is what the
// customer pays.
func ComputeTotals(b *models.Booking) BookingTotals {
	t := BookingTotals{
		TotalServices:         len(b.Services),
		TotalProducts:         len(b.Products),
		TotalServicesPrice:    decimal.Zero,
		ServicesDiscountPrice: decimal.Zero,
		TotalProductsPrice:    decimal.Zero,
	}
	for _, s := range b.Services {
		t.TotalServicesPrice = t.TotalServicesPrice.Add(s.Price)
		t.ServicesDiscountPrice = t.ServicesDiscountPrice.Add(s.FinalPrice())
	}
	for _, p := range b.Products {
		t.TotalProductsPrice = t.TotalProductsPrice.Add(p.Price)
	}

	t.TotalServicesPrice = t.TotalServicesPrice.Round(2)
	t.ServicesDiscountPrice = t.ServicesDiscountPrice.Round(2)
	t.TotalProductsPrice = t.TotalProductsPrice.Round(2)
	t.TotalPrice = t.TotalServicesPrice.Add(t.TotalProductsPrice)
	t.FinalPrice = t.ServicesDiscountPrice.Add(t.TotalProductsPrice).Add(b.TipsAmount).Round(2)
	return t
}

// BookingView is a booking together with its derived totals.
type BookingView struct {
	*models.Booking
	BookingTotals
}

func NewBookingView(b *models.Booking) *BookingView {
	return &BookingView{Booking: b, BookingTotals: ComputeTotals(b)}
}
