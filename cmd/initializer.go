package main

import (
	"database/sql"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"lokalBack/internal/config"
	"lokalBack/internal/geo"
	"lokalBack/internal/handlers"
	"lokalBack/internal/repositories"
	"lokalBack/internal/services"
	"lokalBack/utils"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger
	db       *sql.DB

	tokenManager *utils.Manager
	accessTTL    time.Duration

	userRepo *repositories.UserRepository

	userHandler         *handlers.UserHandler
	categoryHandler     *handlers.CategoryHandler
	providerHandler     *handlers.ProviderHandler
	availabilityHandler *handlers.AvailabilityHandler
	bookingHandler      *handlers.BookingHandler
	reviewHandler       *handlers.ReviewHandler
	adminHandler        *handlers.AdminHandler
}

func initializeApp(db *sql.DB, rdb *redis.Client, cfg config.Config, errorLog, infoLog *log.Logger) (*application, error) {
	tokenManager, err := utils.NewManager(cfg.JWT.SigningKey)
	if err != nil {
		return nil, err
	}
	uploader, err := utils.NewUploader(cfg.Storage.Endpoint, cfg.Storage.Region,
		cfg.Storage.Bucket, cfg.Storage.AccessKey, cfg.Storage.SecretKey)
	if err != nil {
		return nil, err
	}

	accessTTL := time.Duration(cfg.JWT.AccessTTLMin) * time.Minute
	refreshTTL := time.Duration(cfg.JWT.RefreshTTLDays) * 24 * time.Hour

	var locator *geo.ProviderLocator
	if rdb != nil {
		locator = geo.NewProviderLocator(rdb)
	}

	// Repositories
	userRepo := repositories.UserRepository{DB: db}
	categoryRepo := repositories.CategoryRepository{DB: db}
	providerRepo := repositories.ProviderRepository{DB: db}
	availabilityRepo := repositories.AvailabilityRepository{DB: db}
	bookingRepo := repositories.BookingRepository{DB: db}
	reviewRepo := repositories.ReviewRepository{DB: db}

	// Services
	userService := &services.UserService{
		UserRepo:     &userRepo,
		TokenManager: tokenManager,
		AccessTTL:    accessTTL,
		RefreshTTL:   refreshTTL,
	}
	categoryService := &services.CategoryService{CategoryRepo: &categoryRepo, Uploader: uploader}
	providerService := &services.ProviderService{
		ProviderRepo:     &providerRepo,
		AvailabilityRepo: &availabilityRepo,
		ReviewRepo:       &reviewRepo,
		BookingRepo:      &bookingRepo,
		Locator:          locator,
		Uploader:         uploader,
	}
	availabilityService := &services.AvailabilityService{
		AvailabilityRepo: &availabilityRepo,
		ProviderRepo:     &providerRepo,
	}
	bookingService := &services.BookingService{
		BookingRepo:  &bookingRepo,
		ProviderRepo: &providerRepo,
	}
	reviewService := &services.ReviewService{ReviewRepo: &reviewRepo}

	return &application{
		errorLog:            errorLog,
		infoLog:             infoLog,
		db:                  db,
		tokenManager:        tokenManager,
		accessTTL:           accessTTL,
		userRepo:            &userRepo,
		userHandler:         &handlers.UserHandler{Service: userService},
		categoryHandler:     &handlers.CategoryHandler{Service: categoryService},
		providerHandler:     &handlers.ProviderHandler{Service: providerService},
		availabilityHandler: &handlers.AvailabilityHandler{Service: availabilityService},
		bookingHandler:      &handlers.BookingHandler{Service: bookingService},
		reviewHandler:       &handlers.ReviewHandler{Service: reviewService},
		adminHandler:        &handlers.AdminHandler{ProviderService: providerService},
	}, nil
}
