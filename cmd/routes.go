package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"

	"homeservBack/internal/models"
)

func (app *application) JWTMiddlewareWithRole(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return app.JWTMiddleware(next, requiredRole)
	}
}

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders)
	adminAuth := standardMiddleware.Append(app.JWTMiddlewareWithRole(models.RoleAdmin))
	customerAuth := standardMiddleware.Append(app.JWTMiddlewareWithRole(models.RoleCustomer))
	professionalAuth := standardMiddleware.Append(app.JWTMiddlewareWithRole(models.RoleProfessional))
	anyAuth := standardMiddleware.Append(app.JWTMiddlewareWithRole(""))

	mux := pat.New()

	// Accounts
	mux.Post("/register", standardMiddleware.ThenFunc(app.accountHandler.Register))
	mux.Post("/notify/token", anyAuth.ThenFunc(app.accountHandler.RegisterToken))

	// Admin
	mux.Get("/admin/dashboard", adminAuth.ThenFunc(app.dashboardHandler.AdminDashboard))
	mux.Get("/admin/customers", adminAuth.ThenFunc(app.adminHandler.GetCustomers))
	mux.Get("/admin/professionals", adminAuth.ThenFunc(app.adminHandler.GetProfessionals))
	mux.Post("/admin/customers/:id/block", adminAuth.ThenFunc(app.adminHandler.BlockCustomer))
	mux.Post("/admin/customers/:id/unblock", adminAuth.ThenFunc(app.adminHandler.UnblockCustomer))
	mux.Post("/admin/professionals/:id/approve", adminAuth.ThenFunc(app.adminHandler.ApproveProfessional))
	mux.Post("/admin/professionals/:id/unapprove", adminAuth.ThenFunc(app.adminHandler.UnapproveProfessional))
	mux.Post("/admin/service", adminAuth.ThenFunc(app.serviceHandler.CreateService))
	mux.Get("/admin/service", adminAuth.ThenFunc(app.serviceHandler.GetServices))
	mux.Put("/admin/service/:id", adminAuth.ThenFunc(app.serviceHandler.UpdateService))
	mux.Del("/admin/service/:id", adminAuth.ThenFunc(app.serviceHandler.DeleteService))

	// Customer
	mux.Get("/customer/dashboard", customerAuth.ThenFunc(app.dashboardHandler.CustomerDashboard))
	mux.Get("/customer/services", customerAuth.ThenFunc(app.serviceHandler.GetServices))
	mux.Get("/customer/services/search", customerAuth.ThenFunc(app.serviceHandler.SearchServices))
	mux.Post("/customer/request", customerAuth.ThenFunc(app.requestHandler.CreateRequest))
	mux.Get("/customer/requests", customerAuth.ThenFunc(app.requestHandler.ListCustomerRequests))
	mux.Put("/customer/request/:id/remarks", customerAuth.ThenFunc(app.requestHandler.UpdateRemarks))
	mux.Post("/customer/request/:id/close", customerAuth.ThenFunc(app.requestHandler.CloseRequest))

	// Professional
	mux.Get("/professional/dashboard", professionalAuth.ThenFunc(app.dashboardHandler.ProfessionalDashboard))
	mux.Get("/professional/requests/pending", professionalAuth.ThenFunc(app.requestHandler.ListPendingRequests))
	mux.Get("/professional/requests/active", professionalAuth.ThenFunc(app.requestHandler.ListActiveRequests))
	mux.Post("/professional/request/:id/accept", professionalAuth.ThenFunc(app.requestHandler.AcceptRequest))
	mux.Post("/professional/request/:id/reject", professionalAuth.ThenFunc(app.requestHandler.RejectRequest))
	mux.Post("/professional/request/:id/status", professionalAuth.ThenFunc(app.requestHandler.AdvanceStatus))
	mux.Post("/professional/export", professionalAuth.ThenFunc(app.exportHandler.TriggerExport))
	mux.Get("/professional/export/latest", professionalAuth.ThenFunc(app.exportHandler.DownloadExport))

	// Notifications
	mux.Get("/ws", standardMiddleware.ThenFunc(app.ServeWS))

	return mux
}
