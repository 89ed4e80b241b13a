package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Themiya19/Quotation-System-sub001/internal/api/handler"
	"github.com/Themiya19/Quotation-System-sub001/internal/api/middleware"
	"github.com/Themiya19/Quotation-System-sub001/internal/core/domain"
	"github.com/Themiya19/Quotation-System-sub001/internal/core/service"
	"github.com/Themiya19/Quotation-System-sub001/internal/infrastructure/config"
	mongodb "github.com/Themiya19/Quotation-System-sub001/internal/infrastructure/db/mongo"
	redisdb "github.com/Themiya19/Quotation-System-sub001/internal/infrastructure/db/redis"
	"github.com/Themiya19/Quotation-System-sub001/internal/infrastructure/storage"
)

// Services bundles the use-case layer so main can share it with the drift
// watcher without rebuilding anything.
type Services struct {
	Auth      *service.AuthService
	Sessions  *service.SessionService
	Perms     *service.PermissionService
	Roles     *service.RoleService
	Features  *service.FeatureService
	Users     *service.UserService
	Companies *service.CompanyService
	Quotes    *service.QuotationService
}

// NewServices wires repositories and services over the given connections.
func NewServices(cfg *config.Config, db *mongo.Database, rdb *goredis.Client, log zerolog.Logger) *Services {
	userRepo := mongodb.NewUserRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)
	featureRepo := mongodb.NewFeatureRepository(db)
	companyRepo := mongodb.NewCompanyRepository(db)
	quotationRepo := mongodb.NewQuotationRepository(db)

	registry := redisdb.NewSessionRegistry(rdb, cfg.Session.TTL)
	idem := redisdb.NewIdempotencyChecker(rdb)

	perms := service.NewPermissionService(featureRepo, log)

	return &Services{
		Auth:      service.NewAuthService(userRepo, registry, cfg.JWTSecret, cfg.Session.TTL, log),
		Sessions:  service.NewSessionService(registry, userRepo, cfg.Session.IdleTimeout, log),
		Perms:     perms,
		Roles:     service.NewRoleService(roleRepo, log),
		Features:  service.NewFeatureService(featureRepo, log),
		Users:     service.NewUserService(userRepo, companyRepo, log),
		Companies: service.NewCompanyService(companyRepo, userRepo, log),
		Quotes:    service.NewQuotationService(quotationRepo, companyRepo, perms, idem, log),
	}
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, svc *Services, db *mongo.Database, rdb *goredis.Client, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("quotation"))

	// --- Handlers ---
	store, err := storage.NewDiskStore(cfg.Upload.Dir)
	if err != nil {
		return nil, err
	}

	authHandler := handler.NewAuthHandler(svc.Auth, cfg.Session.TTL)
	sessionHandler := handler.NewSessionHandler(svc.Sessions, svc.Auth)
	permissionHandler := handler.NewPermissionHandler(svc.Perms)
	roleHandler := handler.NewRoleHandler(svc.Roles)
	featureHandler := handler.NewFeatureHandler(svc.Features)
	userHandler := handler.NewUserHandler(svc.Users)
	companyHandler := handler.NewCompanyHandler(svc.Companies)
	quotationHandler := handler.NewQuotationHandler(svc.Quotes)
	fileHandler := handler.NewFileHandler(store, svc.Quotes, svc.Companies, cfg.Upload.MaxSizeMB)
	healthHandler := handler.NewHealthHandler(db, rdb)

	session := middleware.Session(cfg.JWTSecret)
	authed := middleware.Authenticated(svc.Sessions)
	rolesView := middleware.RequireRolesView(svc.Perms)

	gate := func(internalFeature, externalFeature string) echo.MiddlewareFunc {
		return middleware.RequireFeature(svc.Perms, internalFeature, externalFeature)
	}

	// --- Public ---
	e.POST("/auth/login", authHandler.Login)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Session surface: cookie required, registry state surfaced as data
	// rather than rejected, so invalidated sessions can still poll and
	// acknowledge. ---
	sess := e.Group("/v1/session", session)
	sess.GET("", sessionHandler.Status)
	sess.POST("/refresh", sessionHandler.Refresh)

	// --- Authenticated ---
	v1 := e.Group("/v1", session, authed)
	auth := e.Group("/auth", session, authed)

	auth.POST("/logout", authHandler.Logout)
	auth.POST("/password", authHandler.ChangePassword)

	v1.GET("/permissions/:feature", permissionHandler.Check)

	v1.GET("/roles/:namespace", roleHandler.List, rolesView)
	v1.POST("/roles/:namespace", roleHandler.Create, gate(domain.FeatureManageRoles, ""))
	v1.PUT("/roles/:namespace/:id", roleHandler.Update, gate(domain.FeatureManageRoles, ""))
	v1.DELETE("/roles/:namespace/:id", roleHandler.Delete, gate(domain.FeatureManageRoles, ""))

	v1.GET("/features/:namespace", featureHandler.List, rolesView)
	v1.PUT("/features/:namespace", featureHandler.Replace, gate(domain.FeatureManageFeatures, ""))

	v1.POST("/users", userHandler.Create, gate(domain.FeatureManageUsers, ""))
	v1.GET("/users", userHandler.List, gate(domain.FeatureManageUsers, ""))
	v1.GET("/users/:email", userHandler.Get, gate(domain.FeatureManageUsers, ""))
	v1.PUT("/users/:email", userHandler.Update, gate(domain.FeatureManageUsers, ""))
	v1.DELETE("/users/:email", userHandler.Delete, gate(domain.FeatureManageUsers, ""))

	v1.POST("/companies", companyHandler.Create, gate(domain.FeatureManageCompanies, ""))
	v1.GET("/companies", companyHandler.List, gate(domain.FeatureViewQuotations, domain.FeatureExtViewQuotations))
	v1.GET("/companies/:id", companyHandler.Get, gate(domain.FeatureViewQuotations, domain.FeatureExtViewQuotations))
	v1.PUT("/companies/:id", companyHandler.Update, gate(domain.FeatureManageCompanies, ""))
	v1.DELETE("/companies/:id", companyHandler.Delete, gate(domain.FeatureManageCompanies, ""))
	v1.POST("/companies/:id/logo", fileHandler.UploadCompanyLogo, gate(domain.FeatureManageCompanies, ""))
	v1.GET("/companies/:id/logo", fileHandler.DownloadCompanyLogo, gate(domain.FeatureViewQuotations, domain.FeatureExtViewQuotations))

	v1.POST("/quotations", quotationHandler.Create, gate(domain.FeatureCreateQuotation, domain.FeatureExtRequestQuotation))
	v1.GET("/quotations", quotationHandler.List, gate(domain.FeatureViewQuotations, domain.FeatureExtViewQuotations))
	v1.GET("/quotations/:folio", quotationHandler.Get, gate(domain.FeatureViewQuotations, domain.FeatureExtViewQuotations))
	// The feature gating a transition depends on the target status, so the
	// check happens inside the service.
	v1.POST("/quotations/:folio/status", quotationHandler.Transition)
	v1.POST("/quotations/:folio/pdf", fileHandler.UploadQuotationPDF, gate(domain.FeatureCreateQuotation, ""))
	v1.GET("/quotations/:folio/pdf", fileHandler.DownloadQuotationPDF, gate(domain.FeatureViewQuotations, domain.FeatureExtViewQuotations))

	return e, nil
}
