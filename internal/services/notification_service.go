package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"rentora/internal/models"
	"rentora/internal/repositories"
)

type NotificationType string

const (
	NotifyEmail NotificationType = "email"
	NotifySMS   NotificationType = "sms"
)

// NotificationService delivers user-facing messages. The shipped
// implementation simulates delivery on the console and records an
// activity-log entry; a Twilio/SendGrid client would slot in behind the
// same interface.
type NotificationService interface {
	Notify(ctx context.Context, user *models.User, kind NotificationType, subject, message string)
	SendContactMessage(ctx context.Context, fromName, fromEmail, message string)
}

type consoleNotificationService struct {
	activityRepo repositories.ActivityLogRepository
	recipient    string
}

// NewConsoleNotificationService builds the console-simulated notifier.
// recipient is where contact-form messages are addressed.
func NewConsoleNotificationService(activityRepo repositories.ActivityLogRepository, recipient string) NotificationService {
	return &consoleNotificationService{
		activityRepo: activityRepo,
		recipient:    recipient,
	}
}

func (s *consoleNotificationService) Notify(ctx context.Context, user *models.User, kind NotificationType, subject, message string) {
	log.Printf("[NOTIFICATION] %s to %s (%s)", kind, user.Email, user.Phone)
	log.Printf("Subject: %s", subject)
	log.Printf("Message: %s", message)

	err := s.activityRepo.Create(ctx, &models.ActivityLog{
		UserID:  user.ID,
		Action:  fmt.Sprintf("NOTIFICATION_SENT_%s", strings.ToUpper(string(kind))),
		Details: fmt.Sprintf("Sent %q to %s", subject, user.Email),
	})
	if err != nil {
		log.Printf("Failed to log notification: %v", err)
	}
}

func (s *consoleNotificationService) SendContactMessage(ctx context.Context, fromName, fromEmail, message string) {
	log.Printf("[CONTACT] to %s from %s <%s>", s.recipient, fromName, fromEmail)
	log.Printf("Message: %s", message)
}
