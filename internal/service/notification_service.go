package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gentlemens13/booking-api/internal/models"
	"github.com/gentlemens13/booking-api/pkg/jobs"
	"github.com/gentlemens13/booking-api/pkg/mailer"
)

const (
	jobTypeCustomerMail = "customer_mail"
	jobTypeAdminMail    = "admin_mail"
)

// NotificationService builds booking emails and dispatches them through a
// background queue. With no sender configured it logs and skips delivery.
type NotificationService struct {
	queue       *jobs.Queue
	sender      mailer.Sender
	notifyEmail string
	metrics     *MetricsService
	logger      *zap.Logger
}

// NewNotificationService constructs a NotificationService. The returned
// service owns the queue handler; call Start before enqueueing.
func NewNotificationService(sender mailer.Sender, notifyEmail string, metrics *MetricsService, logger *zap.Logger, queueCfg jobs.QueueConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &NotificationService{
		sender:      sender,
		notifyEmail: notifyEmail,
		metrics:     metrics,
		logger:      logger,
	}
	queueCfg.Logger = logger
	s.queue = jobs.NewQueue("notifications", s.handle, queueCfg)
	return s
}

// Start launches the dispatch workers.
func (s *NotificationService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the dispatch workers.
func (s *NotificationService) Stop() {
	s.queue.Stop()
}

func (s *NotificationService) handle(_ context.Context, job jobs.Job) error {
	msg, ok := job.Payload.(mailer.Message)
	if !ok {
		s.logger.Error("unexpected notification payload", zap.String("job_id", job.ID))
		return nil
	}
	if s.sender == nil {
		s.logger.Info("mail delivery disabled, skipping",
			zap.String("type", job.Type),
			zap.String("subject", msg.Subject))
		return nil
	}
	return s.sender.Send(msg)
}

func (s *NotificationService) enqueue(jobType string, msg mailer.Message) {
	if len(msg.To) == 0 || msg.To[0] == "" {
		return
	}
	err := s.queue.Enqueue(jobs.Job{
		ID:      uuid.NewString(),
		Type:    jobType,
		Payload: msg,
	})
	if err != nil {
		s.logger.Warn("failed to enqueue notification", zap.String("type", jobType), zap.Error(err))
	}
}

func describeSlot(b *models.Booking) string {
	return fmt.Sprintf("%s at %s", b.Date, b.Time)
}

// BookingReceived notifies the customer and the shop about a new request.
func (s *NotificationService) BookingReceived(b *models.Booking) {
	s.enqueue(jobTypeCustomerMail, mailer.Message{
		To:      []string{b.Email},
		Subject: "We received your booking request",
		Body: fmt.Sprintf("Hi %s,\n\nYour booking for %s on %s is pending confirmation.\nWe will let you know as soon as it is reviewed.\n",
			b.FullName, b.Service, describeSlot(b)),
	})
	s.enqueue(jobTypeAdminMail, mailer.Message{
		To:      []string{s.notifyEmail},
		Subject: fmt.Sprintf("New booking request: %s", describeSlot(b)),
		Body: fmt.Sprintf("New request from %s (%s, %s)\nService: %s\nSlot: %s\nComment: %s\n",
			b.FullName, b.Email, b.Phone, b.Service, describeSlot(b), b.Comment),
	})
}

// BookingApproved notifies the customer that the slot is confirmed.
func (s *NotificationService) BookingApproved(b *models.Booking) {
	s.enqueue(jobTypeCustomerMail, mailer.Message{
		To:      []string{b.Email},
		Subject: "Your booking is confirmed",
		Body: fmt.Sprintf("Hi %s,\n\nYour booking for %s on %s is confirmed. See you there!\n",
			b.FullName, b.Service, describeSlot(b)),
	})
}

// BookingRejected notifies the customer, listing suggested alternatives when
// the admin provided any.
func (s *NotificationService) BookingRejected(b *models.Booking, reason string, alternatives []models.SlotAlternative) {
	var body strings.Builder
	fmt.Fprintf(&body, "Hi %s,\n\nUnfortunately we cannot take your booking for %s on %s.\n",
		b.FullName, b.Service, describeSlot(b))
	if reason != "" {
		fmt.Fprintf(&body, "Reason: %s\n", reason)
	}
	if len(alternatives) > 0 {
		body.WriteString("\nYou could try one of these slots instead:\n")
		for _, alt := range alternatives {
			fmt.Fprintf(&body, "  - %s at %s\n", alt.Date, alt.Time)
		}
	}
	s.enqueue(jobTypeCustomerMail, mailer.Message{
		To:      []string{b.Email},
		Subject: "Your booking could not be confirmed",
		Body:    body.String(),
	})
}

// BookingRescheduled notifies the customer about the new slot.
func (s *NotificationService) BookingRescheduled(b *models.Booking) {
	s.enqueue(jobTypeCustomerMail, mailer.Message{
		To:      []string{b.Email},
		Subject: "Your booking was moved",
		Body: fmt.Sprintf("Hi %s,\n\nYour booking for %s was moved to %s.\n",
			b.FullName, b.Service, describeSlot(b)),
	})
}

// BookingReminder sends the upcoming-appointment reminder.
func (s *NotificationService) BookingReminder(b *models.Booking) {
	s.enqueue(jobTypeCustomerMail, mailer.Message{
		To:      []string{b.Email},
		Subject: "Reminder: your appointment is coming up",
		Body: fmt.Sprintf("Hi %s,\n\nThis is a reminder about your %s appointment on %s.\n",
			b.FullName, b.Service, describeSlot(b)),
	})
	s.metrics.RecordReminderSent()
}
