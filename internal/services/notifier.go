package services

import (
	"context"
	"log"
)

// Recipient identifies who a notification goes to. Role disambiguates ids
// across the customers and professionals tables.
type Recipient struct {
	UserID   int
	Role     string
	Username string
	Email    string
}

// Notifier delivers a short message to a user. Implementations include the
// websocket hub, FCM push and the log fallback; delivery is best effort and
// never blocks a lifecycle transition.
type Notifier interface {
	Notify(ctx context.Context, to Recipient, subject, body string) error
}

// LogNotifier writes notifications to the error log. It backs development
// setups and acts as the last resort when no push channel is configured.
type LogNotifier struct {
	Logger *log.Logger
}

func (n *LogNotifier) Notify(_ context.Context, to Recipient, subject, body string) error {
	n.Logger.Printf("notify %s %d (%s): %s: %s", to.Role, to.UserID, to.Username, subject, body)
	return nil
}

// MultiNotifier fans a notification out to every channel. Individual channel
// failures are logged and swallowed so one dead channel does not silence the
// rest.
type MultiNotifier struct {
	Channels []Notifier
	ErrorLog *log.Logger
}

func (n *MultiNotifier) Notify(ctx context.Context, to Recipient, subject, body string) error {
	for _, ch := range n.Channels {
		if err := ch.Notify(ctx, to, subject, body); err != nil {
			n.ErrorLog.Printf("notification channel failed for %s %d: %v", to.Role, to.UserID, err)
		}
	}
	return nil
}
