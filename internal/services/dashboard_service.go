package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"homeservBack/internal/models"
	"homeservBack/internal/repositories"
)

// Dashboard cache TTLs. Dashboards are aggregate counts that tolerate a
// little staleness, so they are served from Redis between refreshes.
const (
	adminDashboardTTL = 120 * time.Second
	userDashboardTTL  = 60 * time.Second
)

// DashboardService aggregates the per-role dashboard payloads and caches
// them in Redis. A nil Redis client disables caching entirely.
type DashboardService struct {
	Redis         *redis.Client
	Services      *repositories.ServiceRepository
	Customers     *repositories.CustomerRepository
	Professionals *repositories.ProfessionalRepository
	Requests      *repositories.RequestRepository
	ErrorLog      *log.Logger
}

func (s *DashboardService) AdminDashboard(ctx context.Context) (models.AdminDashboard, error) {
	var dash models.AdminDashboard
	if s.cacheGet(ctx, "dashboard:admin", &dash) {
		return dash, nil
	}

	total, err := s.Services.CountServices(ctx)
	if err != nil {
		return models.AdminDashboard{}, err
	}
	active, blocked, err := s.Customers.CountByBlocked(ctx)
	if err != nil {
		return models.AdminDashboard{}, err
	}
	approved, unapproved, err := s.Professionals.CountByApproval(ctx)
	if err != nil {
		return models.AdminDashboard{}, err
	}

	dash = models.AdminDashboard{
		TotalServices:           total,
		ActiveCustomers:         active,
		BlockedCustomers:        blocked,
		ApprovedProfessionals:   approved,
		UnapprovedProfessionals: unapproved,
	}
	s.cacheSet(ctx, "dashboard:admin", dash, adminDashboardTTL)
	return dash, nil
}

func (s *DashboardService) CustomerDashboard(ctx context.Context, customerID int) (models.CustomerDashboard, error) {
	key := fmt.Sprintf("dashboard:customer:%d", customerID)
	var dash models.CustomerDashboard
	if s.cacheGet(ctx, key, &dash) {
		return dash, nil
	}

	customer, err := s.Customers.GetCustomerByID(ctx, customerID)
	if err != nil {
		return models.CustomerDashboard{}, err
	}
	counts, err := s.Requests.StatusCountsByCustomer(ctx, customerID)
	if err != nil {
		return models.CustomerDashboard{}, err
	}
	customer.Password = ""

	dash = models.CustomerDashboard{Customer: customer, Counts: counts}
	s.cacheSet(ctx, key, dash, userDashboardTTL)
	return dash, nil
}

func (s *DashboardService) ProfessionalDashboard(ctx context.Context, professionalID int) (models.ProfessionalDashboard, error) {
	key := fmt.Sprintf("dashboard:professional:%d", professionalID)
	var dash models.ProfessionalDashboard
	if s.cacheGet(ctx, key, &dash) {
		return dash, nil
	}

	professional, err := s.Professionals.GetProfessionalByID(ctx, professionalID)
	if err != nil {
		return models.ProfessionalDashboard{}, err
	}
	accepted, inProgress, err := s.Requests.CountActiveByProfessional(ctx, professionalID)
	if err != nil {
		return models.ProfessionalDashboard{}, err
	}
	visible, err := s.Requests.ListVisiblePending(ctx, professional)
	if err != nil {
		return models.ProfessionalDashboard{}, err
	}
	sets, err := s.Professionals.RequestSetCounts(ctx, professionalID)
	if err != nil {
		return models.ProfessionalDashboard{}, err
	}
	professional.Password = ""

	dash = models.ProfessionalDashboard{
		Professional: professional,
		Counts: models.ProfessionalRequestCounts{
			Pending:    len(visible),
			Accepted:   accepted,
			InProgress: inProgress,
			Completed:  sets[models.RequestSetCompleted],
			Rejected:   sets[models.RequestSetRejected],
		},
	}
	s.cacheSet(ctx, key, dash, userDashboardTTL)
	return dash, nil
}

// cacheGet fills v from Redis and reports a hit. Cache errors other than a
// miss are logged and treated as misses.
func (s *DashboardService) cacheGet(ctx context.Context, key string, v interface{}) bool {
	if s.Redis == nil {
		return false
	}
	data, err := s.Redis.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.ErrorLog.Printf("dashboard cache get %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.ErrorLog.Printf("dashboard cache decode %s: %v", key, err)
		return false
	}
	return true
}

func (s *DashboardService) cacheSet(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	if s.Redis == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		s.ErrorLog.Printf("dashboard cache encode %s: %v", key, err)
		return
	}
	if err := s.Redis.Set(ctx, key, data, ttl).Err(); err != nil {
		s.ErrorLog.Printf("dashboard cache set %s: %v", key, err)
	}
}
