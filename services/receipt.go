package services

import (
	"bytes"
	"fmt"
	"text/tabwriter"
	"time"

	"salonbook-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	LineService = "service"
	LineProduct = "product"
)

type ReceiptLine struct {
	Kind       string          `json:"kind"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	FinalPrice decimal.Decimal `json:"final_price"`
}

// Receipt is what a completed booking hands to a document renderer.
type Receipt struct {
	BookingID    uuid.UUID       `json:"booking_id"`
	SalonName    string          `json:"salon_name"`
	CustomerName string          `json:"customer_name"`
	BookingDate  time.Time       `json:"booking_date"`
	BookingTime  string          `json:"booking_time"`
	CompletedAt  *time.Time      `json:"completed_at"`
	PaymentType  string          `json:"payment_type"`
	Lines        []ReceiptLine   `json:"lines"`
	Tips         decimal.Decimal `json:"tips"`
	Total        decimal.Decimal `json:"total"`
}

func newReceipt(b *models.Booking) *Receipt {
	r := &Receipt{
		BookingID:   b.ID,
		BookingDate: b.BookingDate,
		BookingTime: b.BookingTime,
		CompletedAt: b.CompletedAt,
		PaymentType: b.PaymentType,
		Tips:        b.TipsAmount,
		Total:       ComputeTotals(b).FinalPrice,
	}
	if b.Salon != nil {
		r.SalonName = b.Salon.Name
	}
	if b.Customer != nil {
		r.CustomerName = b.Customer.FullName()
	}
	for _, s := range b.Services {
		r.Lines = append(r.Lines, ReceiptLine{Kind: LineService, Name: s.Name, Price: s.Price, FinalPrice: s.FinalPrice()})
	}
	for _, p := range b.Products {
		r.Lines = append(r.Lines, ReceiptLine{Kind: LineProduct, Name: p.Name, Price: p.Price, FinalPrice: p.Price.Round(2)})
	}
	return r
}

// ReceiptRenderer turns a receipt into a document.
type ReceiptRenderer interface {
	Render(r *Receipt) (data []byte, contentType string, err error)
}

// TextReceiptRenderer renders a plain-text receipt.
type TextReceiptRenderer struct{}

func (TextReceiptRenderer) Render(r *Receipt) ([]byte, string, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s\n", r.SalonName)
	fmt.Fprintf(&buf, "Receipt %s\n", r.BookingID)
	fmt.Fprintf(&buf, "Customer: %s\n", r.CustomerName)
	fmt.Fprintf(&buf, "Date: %s %s\n\n", r.BookingDate.Format("02 Jan 2006"), r.BookingTime)

	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Item\tPrice\tAmount\t")
	for _, l := range r.Lines {
		fmt.Fprintf(w, "%s\t%s\t%s\t\n", l.Name, l.Price.StringFixed(2), l.FinalPrice.StringFixed(2))
	}
	fmt.Fprintf(w, "Tips\t\t%s\t\n", r.Tips.StringFixed(2))
	fmt.Fprintf(w, "Total\t\t%s\t\n", r.Total.StringFixed(2))
	if err := w.Flush(); err != nil {
		return nil, "", err
	}

	if r.PaymentType != "" {
		fmt.Fprintf(&buf, "\nPaid by %s\n", r.PaymentType)
	}
	return buf.Bytes(), "text/plain; charset=utf-8", nil
}
