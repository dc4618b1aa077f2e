package services

import (
	"context"
	"sort"
	"time"

	"salonbook-backend/models"
	"salonbook-backend/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReportFilter struct {
	SalonID *uuid.UUID
	From    time.Time
	To      time.Time
}

type ServiceSummary struct {
	Name    string          `json:"name"`
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

// ReportSummary aggregates bookings in a date range. Revenue only counts
// COMPLETED bookings.
type ReportSummary struct {
	From         time.Time                    `json:"from"`
	To           time.Time                    `json:"to"`
	Bookings     int                          `json:"bookings"`
	ByStatus     map[models.BookingStatus]int `json:"by_status"`
	Revenue      decimal.Decimal              `json:"revenue"`
	Tips         decimal.Decimal              `json:"tips"`
	AvgTicket    decimal.Decimal              `json:"avg_ticket"`
	NewCustomers int64                        `json:"new_customers"`
	NewLeads     int64                        `json:"new_leads"`
	TopServices  []ServiceSummary             `json:"top_services"`
}

const topServicesLimit = 5

type ReportService struct {
	db       *gorm.DB
	bookings *BookingService
}

func NewReportService(db *gorm.DB, bookings *BookingService) *ReportService {
	return &ReportService{db: db, bookings: bookings}
}

// Summary computes the report for [From, To], both days inclusive.
func (s *ReportService) Summary(ctx context.Context, actor Actor, f ReportFilter) (*ReportSummary, error) {
	from, to := f.From, f.To
	views, err := s.bookings.List(ctx, actor, BookingFilter{SalonID: f.SalonID, From: &from, To: &to})
	if err != nil {
		return nil, err
	}

	summary := &ReportSummary{
		From:      from,
		To:        to,
		Bookings:  len(views),
		ByStatus:  map[models.BookingStatus]int{},
		Revenue:   decimal.Zero,
		Tips:      decimal.Zero,
		AvgTicket: decimal.Zero,
	}
	services := map[uuid.UUID]*ServiceSummary{}
	completed := 0
	for _, v := range views {
		summary.ByStatus[v.Status]++
		if v.Status != models.BookingCompleted {
			continue
		}
		completed++
		summary.Revenue = summary.Revenue.Add(v.FinalPrice)
		summary.Tips = summary.Tips.Add(v.TipsAmount)
		for _, svc := range v.Services {
			row, ok := services[svc.ID]
			if !ok {
				row = &ServiceSummary{Name: svc.Name, Revenue: decimal.Zero}
				services[svc.ID] = row
			}
			row.Count++
			row.Revenue = row.Revenue.Add(svc.FinalPrice())
		}
	}
	if completed > 0 {
		summary.AvgTicket = summary.Revenue.Div(decimal.NewFromInt(int64(completed))).Round(2)
	}

	summary.TopServices = make([]ServiceSummary, 0, len(services))
	for _, row := range services {
		summary.TopServices = append(summary.TopServices, *row)
	}
	sort.Slice(summary.TopServices, func(i, j int) bool {
		a, b := summary.TopServices[i], summary.TopServices[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Name < b.Name
	})
	if len(summary.TopServices) > topServicesLimit {
		summary.TopServices = summary.TopServices[:topServicesLimit]
	}

	start := utils.BeginningOfDay(from.UTC())
	_, end := utils.DayRange(to.UTC())
	customers := func(kind models.CustomerType) (int64, error) {
		q := tenant(s.db.WithContext(ctx).Model(&models.Customer{}), actor).
			Where("type = ? AND created_at >= ? AND created_at < ?", kind, start, end)
		if f.SalonID != nil {
			q = q.Where("salon_id = ?", *f.SalonID)
		}
		var n int64
		return n, q.Count(&n).Error
	}
	if summary.NewCustomers, err = customers(models.CustomerTypeCustomer); err != nil {
		return nil, err
	}
	if summary.NewLeads, err = customers(models.CustomerTypeLead); err != nil {
		return nil, err
	}
	return summary, nil
}

// Today returns the bookings scheduled for the current day in time order.
func (s *ReportService) Today(ctx context.Context, actor Actor, salonID *uuid.UUID) ([]*BookingView, error) {
	today := s.bookings.now().UTC()
	views, err := s.bookings.List(ctx, actor, BookingFilter{SalonID: salonID, From: &today, To: &today})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(views, func(i, j int) bool { return views[i].BookingTime < views[j].BookingTime })
	return views, nil
}
