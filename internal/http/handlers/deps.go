package handlers

import (
	"github.com/jmoiron/sqlx"

	"workersdeck/internal/auth"
	"workersdeck/internal/repos"
	"workersdeck/internal/services"
)

type Deps struct {
	Tokens *auth.Tokens

	AuthHandler    *AuthHandler
	ServiceHandler *ServiceHandler
	BookingHandler *BookingHandler
	AdminHandler   *AdminHandler
	WorkerHandler  *WorkerHandler
}

func NewDeps(db *sqlx.DB, tokens *auth.Tokens, mailer services.ResetMailer) *Deps {
	userRepo := repos.NewUserRepo(db)
	serviceRepo := repos.NewServiceRepo(db)
	bookingRepo := repos.NewBookingRepo(db)

	authSvc := services.NewAuthService(userRepo, bookingRepo, tokens, mailer)
	catalogSvc := services.NewCatalogService(serviceRepo)
	bookingSvc := services.NewBookingService(bookingRepo)
	userSvc := services.NewUserService(userRepo)

	return &Deps{
		Tokens:         tokens,
		AuthHandler:    &AuthHandler{Auth: authSvc},
		ServiceHandler: &ServiceHandler{Catalog: catalogSvc},
		BookingHandler: &BookingHandler{Bookings: bookingSvc},
		AdminHandler:   &AdminHandler{Users: userSvc, Bookings: bookingSvc},
		WorkerHandler:  &WorkerHandler{Bookings: bookingSvc},
	}
}
