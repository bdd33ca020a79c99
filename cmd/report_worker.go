package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"homeservBack/internal/models"
	"homeservBack/internal/repositories"
	"homeservBack/internal/services"
)

const reportRunTimeout = 5 * time.Minute

// startReportWorker sends each customer a summary of last month's activity on
// the first day of the month. The hourly tick plus the lastSent guard means a
// restart mid-day does not double-send.
func startReportWorker(ctx context.Context, customers *repositories.CustomerRepository, requests *repositories.RequestRepository, notifier services.Notifier, loc *time.Location, infoLog, errorLog *log.Logger) {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		lastSent := ""

		runOnce := func() {
			now := time.Now().In(loc)
			if now.Day() != 1 {
				return
			}
			month := now.Format("2006-01")
			if month == lastSent {
				return
			}

			runCtx, cancel := context.WithTimeout(ctx, reportRunTimeout)
			defer cancel()

			monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
			prevStart := monthStart.AddDate(0, -1, 0)

			list, err := customers.GetCustomers(runCtx, "")
			if err != nil {
				errorLog.Printf("report worker: list customers: %v", err)
				return
			}

			for _, c := range list {
				requested, closed, err := requests.MonthlyCountsByCustomer(runCtx, c.ID, prevStart, monthStart)
				if err != nil {
					errorLog.Printf("report worker: counts for customer %d: %v", c.ID, err)
					continue
				}
				if requested == 0 {
					continue
				}
				to := services.Recipient{UserID: c.ID, Role: models.RoleCustomer, Username: c.Username, Email: c.Email}
				body := fmt.Sprintf("Monthly activity report for %s: %d service requests created, %d closed.",
					prevStart.Format("January 2006"), requested, closed)
				if err := notifier.Notify(runCtx, to, "Monthly Activity Report", body); err != nil {
					errorLog.Printf("report worker: notify customer %d: %v", c.ID, err)
				}
			}

			lastSent = month
			infoLog.Printf("report worker: sent reports for %s to %d customers", prevStart.Format("2006-01"), len(list))
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
