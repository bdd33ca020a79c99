package main

import (
	"context"
	"log"
	"time"

	"homeservBack/internal/models"
	"homeservBack/internal/services"
)

const reminderRunTimeout = 1 * time.Minute

// startReminderWorker pings every approved professional who still has
// visible pending requests. It only reads lifecycle state; a slow run never
// blocks a request mutation.
func startReminderWorker(ctx context.Context, professionals *services.ProfessionalService, requests *services.RequestService, notifier services.Notifier, infoLog, errorLog *log.Logger) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		runOnce := func() {
			runCtx, cancel := context.WithTimeout(ctx, reminderRunTimeout)
			defer cancel()

			list, err := professionals.ListApproved(runCtx)
			if err != nil {
				errorLog.Printf("reminder worker: list professionals: %v", err)
				return
			}

			reminded := 0
			for _, p := range list {
				has, err := requests.HasPendingRequests(runCtx, p)
				if err != nil {
					errorLog.Printf("reminder worker: check professional %d: %v", p.ID, err)
					continue
				}
				if !has {
					continue
				}
				to := services.Recipient{UserID: p.ID, Role: models.RoleProfessional, Username: p.Username, Email: p.Email}
				if err := notifier.Notify(runCtx, to, "Pending Service Requests Reminder",
					"You have pending service requests waiting for your response. Please visit your dashboard."); err != nil {
					errorLog.Printf("reminder worker: notify professional %d: %v", p.ID, err)
					continue
				}
				reminded++
			}
			if reminded > 0 {
				infoLog.Printf("reminder worker: reminded %d professionals", reminded)
			}
		}

		runOnce()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runOnce()
			}
		}
	}()
}
