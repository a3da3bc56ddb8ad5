package notifier

import (
	"art-auction/utils"
)

// Notifier delivers email and in-app notifications to a user. Delivery is
// best-effort: callers log failures and never propagate them.
type Notifier interface {
	Notify(userID, subject, body string) error
}

// LogNotifier hands the message to the logging pipeline; actual delivery is
// owned by the external notification service.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Notify(userID, subject, body string) error {
	utils.Info("notification dispatched", map[string]any{
		"user_id": userID,
		"subject": subject,
		"body":    body,
	})
	return nil
}
