package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"salonbook-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	to   string
	body string
}

type fakeSender struct {
	mu   sync.Mutex
	sent []sentMessage
	fail map[string]bool
}

func (f *fakeSender) Send(_ context.Context, to, body string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail[to] {
		return ChannelWhatsApp, errors.New("undeliverable")
	}
	f.sent = append(f.sent, sentMessage{to: to, body: body})
	return ChannelWhatsApp, nil
}

func seedBooking(t *testing.T, svc *BookingService, actor Actor, salon *models.Salon, phone, name string, day time.Time) *BookingView {
	t.Helper()
	view, err := svc.Create(context.Background(), actor, salon.ID, BookingInput{
		Customer:    ContactInput{FirstName: name, Phone: phone},
		BookingDate: day,
		BookingTime: "09:15",
	})
	require.NoError(t, err)
	return view
}

func TestSendUpcomingReminders(t *testing.T) {
	db := setupSQLiteTestDB(t)
	actor := createTenant(t, db, "Acme")
	salon := createSalon(t, db, actor, "Downtown")
	bookings := NewBookingService(db, BookingDeps{Customers: NewCustomerService(db, NewCategoryService(db)), Images: newMemoryImageStore()})
	ctx := context.Background()

	day := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)
	seedBooking(t, bookings, actor, salon, "+15550000201", "Ada", day)
	failing := seedBooking(t, bookings, actor, salon, "+15550000202", "Grace", day)
	cancelled := seedBooking(t, bookings, actor, salon, "+15550000203", "Alan", day)
	seedBooking(t, bookings, actor, salon, "+15550000204", "Edsger", day.AddDate(0, 0, 1))

	status := models.BookingCancelled
	reason := "travel"
	_, err := bookings.Update(ctx, actor, cancelled.ID, BookingPatch{Status: &status, CancellationReason: &reason})
	require.NoError(t, err)

	sender := &fakeSender{fail: map[string]bool{"+15550000202": true}}
	svc := NewNotificationService(db, sender, nil)

	sent, err := svc.SendUpcomingReminders(ctx, day.Add(13*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "+15550000201", sender.sent[0].to)
	assert.Contains(t, sender.sent[0].body, "Ada")
	assert.Contains(t, sender.sent[0].body, "Downtown")
	assert.Contains(t, sender.sent[0].body, "02 May 2026")
	assert.Contains(t, sender.sent[0].body, "09:15")

	var logs []models.ReminderLog
	require.NoError(t, db.Order("status").Find(&logs).Error)
	require.Len(t, logs, 2)
	assert.Equal(t, "failed", logs[0].Status)
	assert.Equal(t, failing.ID, logs[0].BookingID)
	assert.Equal(t, "undeliverable", logs[0].ErrorMessage)
	assert.Equal(t, "sent", logs[1].Status)
	assert.Equal(t, models.TemplateReminder, logs[1].Type)
}

func TestSendBookingConfirmation_UsesAccountTemplate(t *testing.T) {
	db := setupSQLiteTestDB(t)
	actor := createTenant(t, db, "Acme")
	salon := createSalon(t, db, actor, "Downtown")
	bookings := NewBookingService(db, BookingDeps{Customers: NewCustomerService(db, NewCategoryService(db)), Images: newMemoryImageStore()})
	templates := NewTemplateService(db)
	ctx := context.Background()

	_, err := templates.Create(ctx, actor, TemplateInput{Type: models.TemplateConfirmation, Message: "See you [Date], [CustomerName]!"})
	require.NoError(t, err)
	view := seedBooking(t, bookings, actor, salon, "+15550000205", "Ada", time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC))

	sender := &fakeSender{}
	svc := NewNotificationService(db, sender, nil)
	require.NoError(t, svc.SendBookingConfirmation(ctx, view.ID))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "See you 02 May 2026, Ada!", sender.sent[0].body)
}

func TestSendBookingConfirmation_DisabledTemplateSendsNothing(t *testing.T) {
	db := setupSQLiteTestDB(t)
	actor := createTenant(t, db, "Acme")
	salon := createSalon(t, db, actor, "Downtown")
	bookings := NewBookingService(db, BookingDeps{Customers: NewCustomerService(db, NewCategoryService(db)), Images: newMemoryImageStore()})
	templates := NewTemplateService(db)
	ctx := context.Background()

	off := false
	_, err := templates.Create(ctx, actor, TemplateInput{Type: models.TemplateConfirmation, Message: "Hi", IsActive: &off})
	require.NoError(t, err)
	view := seedBooking(t, bookings, actor, salon, "+15550000206", "Ada", time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC))

	sender := &fakeSender{}
	require.NoError(t, NewNotificationService(db, sender, nil).SendBookingConfirmation(ctx, view.ID))
	assert.Empty(t, sender.sent)
}

func TestStartScheduler_RejectsBadSpec(t *testing.T) {
	db := setupSQLiteTestDB(t)
	svc := NewNotificationService(db, &fakeSender{}, nil)

	_, err := svc.StartScheduler("not a schedule")
	assert.Error(t, err)

	c, err := svc.StartScheduler("0 9 * * *")
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)
	c.Stop()
}
