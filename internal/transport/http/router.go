package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mc-parking-api/internal/application/auth"
	"github.com/mc-parking-api/internal/application/demo"
	"github.com/mc-parking-api/internal/application/finechecker"
	"github.com/mc-parking-api/internal/application/officer"
	"github.com/mc-parking-api/internal/application/otp"
	"github.com/mc-parking-api/internal/application/vehicleowner"
	"github.com/mc-parking-api/internal/application/zone"
	"github.com/mc-parking-api/internal/config"
	"github.com/mc-parking-api/internal/domain"
	"github.com/mc-parking-api/internal/infrastructure/gateway"
	"github.com/mc-parking-api/internal/transport/http/handler"
	appmiddleware "github.com/mc-parking-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "x-api-key"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		slog.Warn("JWT keys not loaded; bearer auth disabled and role-gated routes answer 401")
		authMw = func(next http.Handler) http.Handler { return next }
	}

	// 5 requests/second, burst of 10, per client on login and OTP endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10, cfg.TrustedProxyHops)

	tables := cfg.DynamoTables
	zoneSvc := zone.NewService(deps.Store, tables.ParkingZones)
	checkerSvc := finechecker.NewService(deps.Store, tables.FineCheckers)
	officerSvc := officer.NewService(deps.Store, tables.MCOfficers)
	ownerSvc := vehicleowner.NewService(deps.Store, tables.VehicleOwners)
	otpSvc := otp.NewService(deps.OTPStore, deps.SMSSender, cfg.OTPFixedCode, cfg.OTPTTL)

	demoDeps := demo.ServiceDeps{Store: deps.Store, Table: tables.DemoUsers, OTP: otpSvc}
	if deps.Documents != nil {
		demoDeps.Documents = deps.Documents
	}
	demoSvc := demo.NewService(demoDeps)

	authDeps := auth.ServiceDeps{
		FineCheckers:      checkerSvc,
		Officers:          officerSvc,
		VehicleOwners:     ownerSvc,
		AdminUsername:     cfg.AdminUsername,
		AdminPasswordHash: cfg.AdminPasswordHash,
	}
	if deps.JWTProvider != nil {
		authDeps.Signer = deps.JWTProvider
	}
	if deps.Google != nil {
		authDeps.Google = deps.Google
	}
	authSvc := auth.NewService(authDeps)

	healthH := handler.NewHealthHandler(deps.Store, tables.ParkingZones)
	authH := handler.NewAuthHandler(authSvc)
	zoneH := handler.NewZoneHandler(zoneSvc)
	checkerH := handler.NewFineCheckerHandler(checkerSvc)
	officerH := handler.NewOfficerHandler(officerSvc)
	ownerH := handler.NewVehicleOwnerHandler(ownerSvc)
	demoH := handler.NewDemoHandler(demoSvc)
	proxyH := handler.NewProxyHandler(deps.Store, deps.KeySchema)

	staff := appmiddleware.RequireRole(domain.RoleAdmin, domain.RoleMCOfficer)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.With(sensitiveRL.Limit).Post("/auth/login", authH.Login)
		r.With(sensitiveRL.Limit).Post("/auth/google", authH.Google)
		r.Get("/demo/nic/{nic}", demoH.LookupNIC)
		r.With(sensitiveRL.Limit).Post("/demo/otp/request", demoH.RequestOTP)
		r.With(sensitiveRL.Limit).Post("/demo/otp/verify", demoH.VerifyOTP)
		r.With(sensitiveRL.Limit).Post("/vehicle-owners", ownerH.Register)

		// ── Generic item proxy: admin JWT or the gateway's API key ───────────
		r.Route("/proxy", func(r chi.Router) {
			r.Use(appmiddleware.APIKeyOr(cfg.APIGatewayAPIKey, authMw))
			r.Use(appmiddleware.RequireRole(domain.RoleAdmin))

			r.Post(gateway.PathQuery, proxyH.Query)
			r.Post(gateway.PathGetItem, proxyH.GetItem)
			r.Post(gateway.PathPutItem, proxyH.PutItem)
			r.Post(gateway.PathUpdateItem, proxyH.UpdateItem)
			r.Post(gateway.PathScan, proxyH.Scan)
			r.Delete(gateway.PathDeleteItem, proxyH.DeleteItem)
		})

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/zones", zoneH.List)
			r.Get("/zones/{id}", zoneH.Get)
			r.Get("/vehicle-owners/nic/{nic}", ownerH.GetByNIC)
			r.Get("/vehicle-owners/{id}", ownerH.Get)

			r.With(appmiddleware.RequireSelfOrRole("id", domain.RoleAdmin, domain.RoleMCOfficer)).
				Put("/fine-checkers/{id}/duty", checkerH.SetDuty)
			r.With(appmiddleware.RequireSelfOrRole("id", domain.RoleAdmin)).
				Put("/mc-officers/{id}/duty", officerH.SetDuty)
			r.With(appmiddleware.RequireSelfOrRole("id", domain.RoleAdmin, domain.RoleMCOfficer)).
				Put("/vehicle-owners/{id}/duty", ownerH.SetDuty)

			// Admin and council officers
			r.Group(func(r chi.Router) {
				r.Use(staff)

				r.Post("/zones", zoneH.Create)
				r.Put("/zones/{id}", zoneH.Update)
				r.Put("/zones/{id}/status", zoneH.SetStatus)
				r.Delete("/zones/{id}", zoneH.Delete)

				r.Get("/fine-checkers", checkerH.List)
				r.Post("/fine-checkers", checkerH.Create)
				r.Get("/fine-checkers/{id}", checkerH.Get)
				r.Put("/fine-checkers/{id}", checkerH.Update)
				r.Delete("/fine-checkers/{id}", checkerH.Delete)

				r.Get("/vehicle-owners", ownerH.List)
				r.Put("/vehicle-owners/{id}", ownerH.Update)
				r.Delete("/vehicle-owners/{id}", ownerH.Delete)

				r.Get("/demo/users", demoH.ListVerified)
				r.Delete("/demo/users/{nic}", demoH.DeleteVerified)
				r.Post("/demo/users/{nic}/document", demoH.UploadDocument)
				r.Get("/demo/users/{nic}/document", demoH.DocumentURL)
			})

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleAdmin))

				r.Get("/mc-officers", officerH.List)
				r.Post("/mc-officers", officerH.Create)
				r.Get("/mc-officers/{id}", officerH.Get)
				r.Put("/mc-officers/{id}", officerH.Update)
				r.Put("/mc-officers/{id}/zone", officerH.AssignZone)
				r.Delete("/mc-officers/{id}", officerH.Delete)
			})
		})
	})

	return r
}
