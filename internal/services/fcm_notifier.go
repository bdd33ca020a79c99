package services

import (
	"context"
	"database/sql"
	"log"

	"firebase.google.com/go/messaging"
)

// FCMNotifier pushes notifications to the user's registered devices. Device
// tokens are registered out of band into notify_tokens keyed by user id and
// role.
type FCMNotifier struct {
	Client   *messaging.Client
	DB       *sql.DB
	ErrorLog *log.Logger
}

func (n *FCMNotifier) Notify(ctx context.Context, to Recipient, subject, body string) error {
	tokens, err := n.tokensFor(ctx, to.UserID, to.Role)
	if err != nil {
		return err
	}

	for _, token := range tokens {
		message := &messaging.Message{
			Token: token,
			Notification: &messaging.Notification{
				Title: subject,
				Body:  body,
			},
			Android: &messaging.AndroidConfig{
				Priority: "high",
				Notification: &messaging.AndroidNotification{
					ChannelID: "high_priority_channel",
				},
			},
			APNS: &messaging.APNSConfig{
				Headers: map[string]string{
					"apns-priority": "10",
				},
				Payload: &messaging.APNSPayload{
					Aps: &messaging.Aps{
						Alert: &messaging.ApsAlert{
							Title: subject,
							Body:  body,
						},
						Sound: "default",
					},
				},
			},
		}
		if _, err := n.Client.Send(ctx, message); err != nil {
			n.ErrorLog.Printf("fcm send to %s %d: %v", to.Role, to.UserID, err)
		}
	}
	return nil
}

func (n *FCMNotifier) tokensFor(ctx context.Context, userID int, role string) ([]string, error) {
	rows, err := n.DB.QueryContext(ctx,
		`SELECT token FROM notify_tokens WHERE user_id = ? AND role = ?`, userID, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	return tokens, rows.Err()
}

// RegisterToken stores a device token, replacing a stale row for the same
// device.
func (n *FCMNotifier) RegisterToken(ctx context.Context, userID int, role, token string) error {
	_, err := n.DB.ExecContext(ctx, `
		INSERT INTO notify_tokens (user_id, role, token)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE user_id = VALUES(user_id), role = VALUES(role)
	`, userID, role, token)
	return err
}
