package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"workersdeck/internal/config"
	"workersdeck/internal/domain"
	applog "workersdeck/internal/log"
)

// Access is who may call a route.
type Access struct {
	Authenticated bool
	Roles         []domain.Role // implies Authenticated
}

var (
	Public        = Access{}
	Authenticated = Access{Authenticated: true}
)

func Only(roles ...domain.Role) Access {
	return Access{Authenticated: true, Roles: roles}
}

// Route is one entry of the API table.
type Route struct {
	Method   string
	Path     string
	Access   Access
	Throttle bool
	Handler  fiber.Handler
}

// Routes is the full API surface.
func (d *Deps) Routes() []Route {
	admin := Only(domain.RoleAdmin)
	worker := Only(domain.RoleWorker)

	return []Route{
		{fiber.MethodGet, "/", Public, false, home},
		{fiber.MethodGet, "/healthz", Public, false, healthz},

		{fiber.MethodPost, "/api/auth/register", Public, true, d.AuthHandler.Register},
		{fiber.MethodPost, "/api/auth/login", Public, true, d.AuthHandler.Login},
		{fiber.MethodPost, "/api/auth/forgot-password", Public, true, d.AuthHandler.ForgotPassword},
		{fiber.MethodPost, "/api/auth/reset-password", Public, true, d.AuthHandler.ResetPassword},
		{fiber.MethodGet, "/api/auth/me", Authenticated, false, d.AuthHandler.Me},

		{fiber.MethodGet, "/api/services", Public, false, d.ServiceHandler.List},
		{fiber.MethodGet, "/api/services/:id", Public, false, d.ServiceHandler.Get},

		{fiber.MethodPost, "/api/book", Authenticated, false, d.BookingHandler.Create},
		{fiber.MethodDelete, "/api/bookings/:id", Authenticated, false, d.BookingHandler.Cancel},

		{fiber.MethodGet, "/api/bookings/admin/users", admin, false, d.AdminHandler.ListUsers},
		{fiber.MethodDelete, "/api/bookings/admin/users/:id", admin, false, d.AdminHandler.DeleteUser},
		{fiber.MethodGet, "/api/bookings/admin/bookings", admin, false, d.AdminHandler.AllBookings},
		{fiber.MethodGet, "/api/bookings/admin/services", admin, false, d.ServiceHandler.List},
		{fiber.MethodPost, "/api/bookings/admin/services", admin, false, d.ServiceHandler.Create},
		{fiber.MethodPut, "/api/bookings/admin/services/:id", admin, false, d.ServiceHandler.Update},
		{fiber.MethodDelete, "/api/bookings/admin/services/:id", admin, false, d.ServiceHandler.Delete},
		{fiber.MethodPut, "/api/bookings/admin/assign-worker/:bookingId", admin, false, d.AdminHandler.AssignWorker},

		{fiber.MethodGet, "/api/bookings/worker/my-bookings", worker, false, d.WorkerHandler.MyBookings},
		{fiber.MethodPut, "/api/bookings/worker/update-status/:id", worker, false, d.WorkerHandler.UpdateStatus},
	}
}

// Mount registers routes on app, putting the throttle and access checks in
// front of each handler.
func Mount(app *fiber.App, d *Deps, routes []Route, throttle fiber.Handler) {
	authn := Authenticate(d.Tokens)
	for _, r := range routes {
		chain := make([]fiber.Handler, 0, 4)
		if r.Throttle && throttle != nil {
			chain = append(chain, throttle)
		}
		if r.Access.Authenticated || len(r.Access.Roles) > 0 {
			chain = append(chain, authn)
		}
		if len(r.Access.Roles) > 0 {
			chain = append(chain, RequireRole(r.Access.Roles...))
		}
		chain = append(chain, r.Handler)
		app.Add(r.Method, r.Path, chain...)
	}
}

// NewApp builds the fiber app with the middleware stack and every route.
func NewApp(cfg config.Config, d *Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "workersdeck",
		ErrorHandler: ErrorHandler,
		BodyLimit:    1 << 20, // 1 MiB
	})

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendOrigin,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: cfg.FrontendOrigin != "" && !strings.Contains(cfg.FrontendOrigin, "*"),
	}))

	Mount(app, d, d.Routes(), authLimiter(cfg.AuthRateLimit))
	return app
}

// authLimiter throttles credential endpoints per client IP. perMinute <= 0
// turns it off.
func authLimiter(perMinute int) fiber.Handler {
	if perMinute <= 0 {
		return nil
	}
	return limiter.New(limiter.Config{
		Max:        perMinute,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|auth"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.auth.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many attempts. Please try again later."})
		},
	})
}

func home(c *fiber.Ctx) error {
	return c.SendString("Workers Deck API is running")
}

func healthz(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
