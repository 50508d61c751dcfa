package notification

import (
	"context"
	"fmt"

	"rosa/models"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// NotificationService pushes booking events to the staff devices.
type NotificationService interface {
	BookingConfirmed(ctx context.Context, b models.Booking) error
}

var (
	_ NotificationService = (*DefaultNotificationService)(nil)
	_ NotificationService = NopNotificationService{}
)

// Sender is the part of the FCM client used here; *messaging.Client satisfies it.
type Sender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// DefaultNotificationService sends to an FCM topic the staff app subscribes to.
type DefaultNotificationService struct {
	Sender Sender
	Topic  string
	Logger *zap.Logger
}

func NewDefaultNotificationService(sender Sender, topic string, logger *zap.Logger) (*DefaultNotificationService, error) {
	if sender == nil {
		return nil, fmt.Errorf("notification service initialization error: fcm client is nil")
	}
	if topic == "" {
		return nil, fmt.Errorf("notification service initialization error: topic is empty")
	}
	return &DefaultNotificationService{Sender: sender, Topic: topic, Logger: logger}, nil
}

// BookingConfirmed tells staff a guest booked something.
func (s *DefaultNotificationService) BookingConfirmed(ctx context.Context, b models.Booking) error {
	title, body := bookingMessage(b)
	msg := &messaging.Message{
		Topic: s.Topic,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: map[string]string{
			"type":      "booking_confirmed",
			"bookingId": b.ID,
			"serviceId": b.ServiceID,
			"date":      b.Date,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default"},
			},
		},
	}

	id, err := s.Sender.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("BookingConfirmed: failed to send FCM message: %w", err)
	}
	s.Logger.Debug("Staff notified of booking", zap.String("bookingId", b.ID), zap.String("messageId", id))
	return nil
}

// bookingMessage renders the staff notification, in Portuguese like the rest
// of the staff app.
func bookingMessage(b models.Booking) (string, string) {
	title := fmt.Sprintf("Novo agendamento: %s", b.ServiceName)
	if b.IsSlotBooking() {
		return title, fmt.Sprintf("%s (%s) reservou %s, %s em %s.", b.GuestName, b.CabinName, b.Unit, b.TimeSlotLabel, b.Date)
	}
	body := fmt.Sprintf("%s (%s) pediu %s em %s.", b.GuestName, b.CabinName, b.PreferenceTime, b.Date)
	if b.HasPet {
		body += " Hóspede com pet."
	}
	return title, body
}

// NopNotificationService is used when push notifications are disabled.
type NopNotificationService struct{}

func (NopNotificationService) BookingConfirmed(context.Context, models.Booking) error { return nil }
