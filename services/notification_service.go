// services/notification_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"salonbook-backend/models"
	"salonbook-backend/utils"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

const (
	ChannelWhatsApp = "whatsapp"
	ChannelSMS      = "sms"
)

// MessageSender delivers one text message and reports the channel used.
type MessageSender interface {
	Send(ctx context.Context, to, body string) (channel string, err error)
}

// TwilioSender sends over WhatsApp when the number is in E.164 form and
// falls back to SMS otherwise.
type TwilioSender struct {
	client       *twilio.RestClient
	whatsappFrom string
	smsFrom      string
}

func NewTwilioSender(accountSID, authToken, whatsappFrom, smsFrom string) *TwilioSender {
	return &TwilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		whatsappFrom: whatsappFrom,
		smsFrom:      smsFrom,
	}
}

func (t *TwilioSender) Send(ctx context.Context, to, body string) (string, error) {
	channel := ChannelSMS
	params := &twilioApi.CreateMessageParams{}
	params.SetBody(body)

	if strings.HasPrefix(to, "+") && t.whatsappFrom != "" {
		channel = ChannelWhatsApp
		params.SetTo("whatsapp:" + to)
		params.SetFrom("whatsapp:" + t.whatsappFrom)
	} else {
		params.SetTo(to)
		params.SetFrom(t.smsFrom)
	}

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return channel, err
	}
	if resp.Sid != nil {
		utils.LoggerFromContext(ctx).Debug("Message sent", slog.String("sid", *resp.Sid), slog.String("channel", channel))
	}
	return channel, nil
}

// NotificationService sends booking confirmations and appointment reminders
// and records every attempt in the reminder log.
type NotificationService struct {
	db     *gorm.DB
	sender MessageSender
	logger *slog.Logger
}

func NewNotificationService(db *gorm.DB, sender MessageSender, logger *slog.Logger) *NotificationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &NotificationService{db: db, sender: sender, logger: logger}
}

// SendBookingConfirmation messages the customer of a freshly created booking.
func (s *NotificationService) SendBookingConfirmation(ctx context.Context, bookingID uuid.UUID) error {
	var booking models.Booking
	err := s.db.WithContext(ctx).Preload("Customer").Preload("Salon").First(&booking, "id = ?", bookingID).Error
	if err != nil {
		return err
	}
	_, err = s.notify(ctx, &booking, models.TemplateConfirmation)
	return err
}

// SendUpcomingReminders messages every customer with a PLACED booking on day.
// It returns how many messages were delivered.
func (s *NotificationService) SendUpcomingReminders(ctx context.Context, day time.Time) (int, error) {
	start, end := utils.DayRange(day.UTC())

	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Preload("Customer").
		Preload("Salon").
		Where("status = ? AND booking_date >= ? AND booking_date < ?", models.BookingPlaced, start, end).
		Where("customer_id IS NOT NULL").
		Order("booking_time").
		Find(&bookings).Error
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range bookings {
		ok, err := s.notify(ctx, &bookings[i], models.TemplateReminder)
		if err != nil {
			s.logger.Warn("Failed to send reminder",
				slog.String("booking_id", bookings[i].ID.String()),
				slog.String("error", err.Error()),
			)
			continue
		}
		if ok {
			sent++
		}
	}
	s.logger.Info("Reminder processing completed",
		slog.String("day", start.Format("2006-01-02")),
		slog.Int("bookings", len(bookings)),
		slog.Int("sent", sent),
	)
	return sent, nil
}

// StartScheduler runs SendUpcomingReminders for the next day on schedule. The
// returned cron must be stopped by the caller.
func (s *NotificationService) StartScheduler(schedule string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		tomorrow := time.Now().AddDate(0, 0, 1)
		if _, err := s.SendUpcomingReminders(context.Background(), tomorrow); err != nil {
			s.logger.Error("Reminder run failed", slog.String("error", err.Error()))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid reminder schedule %q: %w", schedule, err)
	}
	c.Start()
	s.logger.Info("Reminder scheduler started", slog.String("schedule", schedule))
	return c, nil
}

// notify renders the account's template for kind and sends it. A disabled
// template sends nothing and reports false.
func (s *NotificationService) notify(ctx context.Context, booking *models.Booking, kind string) (bool, error) {
	if booking.Customer == nil {
		return false, errors.New("booking has no customer")
	}
	message, active, err := s.template(ctx, booking.AccountID, kind)
	if err != nil || !active {
		return false, err
	}

	salonName := ""
	if booking.Salon != nil {
		salonName = booking.Salon.Name
	}
	body := models.RenderTemplate(message, booking.Customer.FullName(), salonName, booking.BookingDate, booking.BookingTime)

	channel, sendErr := s.sender.Send(ctx, booking.Customer.Phone, body)
	entry := models.ReminderLog{
		AccountID:  booking.AccountID,
		BookingID:  booking.ID,
		CustomerID: booking.Customer.ID,
		Type:       kind,
		Message:    body,
		Status:     "sent",
		Channel:    channel,
		SentAt:     time.Now(),
	}
	if sendErr != nil {
		entry.Status = "failed"
		entry.ErrorMessage = sendErr.Error()
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		s.logger.Error("Failed to log reminder",
			slog.String("booking_id", booking.ID.String()),
			slog.String("error", err.Error()),
		)
	}
	return sendErr == nil, sendErr
}

func (s *NotificationService) template(ctx context.Context, accountID uuid.UUID, kind string) (string, bool, error) {
	var t models.ReminderTemplate
	err := s.db.WithContext(ctx).Where("account_id = ? AND type = ?", accountID, kind).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DefaultReminderTemplates[kind], true, nil
	}
	if err != nil {
		return "", false, err
	}
	return t.Message, t.IsActive, nil
}
