package main

import (
	"database/sql"
	"log"
	"time"

	"firebase.google.com/go/messaging"
	"github.com/redis/go-redis/v9"

	"homeservBack/internal/config"
	"homeservBack/internal/handlers"
	"homeservBack/internal/repositories"
	"homeservBack/internal/services"
	"homeservBack/utils"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger
	jwtKey   []byte
	db       *sql.DB

	wsManager *WebSocketManager

	serviceRepo      *repositories.ServiceRepository
	customerRepo     *repositories.CustomerRepository
	professionalRepo *repositories.ProfessionalRepository
	requestRepo      *repositories.RequestRepository

	catalogService      *services.CatalogService
	customerService     *services.CustomerService
	professionalService *services.ProfessionalService
	requestService      *services.RequestService
	dashboardService    *services.DashboardService
	exportService       *services.ExportService
	fcmNotifier         *services.FCMNotifier
	notifier            services.Notifier

	accountHandler   *handlers.AccountHandler
	serviceHandler   *handlers.ServiceHandler
	requestHandler   *handlers.RequestHandler
	adminHandler     *handlers.AdminHandler
	dashboardHandler *handlers.DashboardHandler
	exportHandler    *handlers.ExportHandler
}

func initializeApp(db *sql.DB, rdb *redis.Client, fcmClient *messaging.Client, cfg config.Config, loc *time.Location, errorLog, infoLog *log.Logger) *application {
	// Repositories
	serviceRepo := &repositories.ServiceRepository{DB: db}
	customerRepo := &repositories.CustomerRepository{DB: db}
	professionalRepo := &repositories.ProfessionalRepository{DB: db}
	requestRepo := &repositories.RequestRepository{DB: db}

	wsManager := NewWebSocketManager()

	// Notification channels: websocket always, FCM when configured.
	channels := []services.Notifier{wsManager}
	var fcmNotifier *services.FCMNotifier
	if fcmClient != nil {
		fcmNotifier = &services.FCMNotifier{Client: fcmClient, DB: db, ErrorLog: errorLog}
		channels = append(channels, fcmNotifier)
	} else {
		channels = append(channels, &services.LogNotifier{Logger: infoLog})
	}
	notifier := &services.MultiNotifier{Channels: channels, ErrorLog: errorLog}

	// Services
	catalogService := &services.CatalogService{Repo: serviceRepo}
	customerService := &services.CustomerService{Repo: customerRepo}
	professionalService := &services.ProfessionalService{Repo: professionalRepo}
	// Lifecycle timestamps are stored in the reporting timezone.
	requestService := &services.RequestService{
		Requests:      requestRepo,
		Catalog:       catalogService,
		Customers:     customerRepo,
		Professionals: professionalRepo,
		Notifier:      notifier,
		ErrorLog:      errorLog,
		Now:           func() time.Time { return time.Now().In(loc) },
	}
	dashboardService := &services.DashboardService{
		Redis:         rdb,
		Services:      serviceRepo,
		Customers:     customerRepo,
		Professionals: professionalRepo,
		Requests:      requestRepo,
		ErrorLog:      errorLog,
	}

	var uploader services.FileUploader
	if cfg.Exports.S3Upload {
		uploader = &utils.S3Storage{
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
		}
	}
	exportService := &services.ExportService{
		Requests:      requestRepo,
		Professionals: professionalRepo,
		Notifier:      notifier,
		Uploader:      uploader,
		ErrorLog:      errorLog,
		Dir:           cfg.Exports.Dir,
		Loc:           loc,
		Now:           func() time.Time { return time.Now().In(loc) },
	}

	app := &application{
		errorLog:            errorLog,
		infoLog:             infoLog,
		jwtKey:              []byte(cfg.JWT.SigningKey),
		db:                  db,
		wsManager:           wsManager,
		serviceRepo:         serviceRepo,
		customerRepo:        customerRepo,
		professionalRepo:    professionalRepo,
		requestRepo:         requestRepo,
		catalogService:      catalogService,
		customerService:     customerService,
		professionalService: professionalService,
		requestService:      requestService,
		dashboardService:    dashboardService,
		exportService:       exportService,
		fcmNotifier:         fcmNotifier,
		notifier:            notifier,
	}

	// Handlers
	app.accountHandler = &handlers.AccountHandler{
		Customers:     customerService,
		Professionals: professionalService,
		FCM:           fcmNotifier,
	}
	app.serviceHandler = &handlers.ServiceHandler{Catalog: catalogService}
	app.requestHandler = &handlers.RequestHandler{Requests: requestService}
	app.adminHandler = &handlers.AdminHandler{Customers: customerService, Professionals: professionalService}
	app.dashboardHandler = &handlers.DashboardHandler{Dashboards: dashboardService}
	app.exportHandler = &handlers.ExportHandler{Exports: exportService, ErrorLog: errorLog}

	return app
}
