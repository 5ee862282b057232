package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/sessions"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/ratemycafe/internal/audit"
	"github.com/BruksfildServices01/ratemycafe/internal/auth"
	"github.com/BruksfildServices01/ratemycafe/internal/config"
	"github.com/BruksfildServices01/ratemycafe/internal/handlers"
	infraRepo "github.com/BruksfildServices01/ratemycafe/internal/infra/repository"
	"github.com/BruksfildServices01/ratemycafe/internal/locale"
	"github.com/BruksfildServices01/ratemycafe/internal/metrics"
	"github.com/BruksfildServices01/ratemycafe/internal/middleware"
	"github.com/BruksfildServices01/ratemycafe/internal/storage"
	"github.com/BruksfildServices01/ratemycafe/internal/timezone"
	ucCafe "github.com/BruksfildServices01/ratemycafe/internal/usecase/cafe"
	"github.com/BruksfildServices01/ratemycafe/internal/usecase/gallery"
	"github.com/BruksfildServices01/ratemycafe/internal/usecase/profile"
	ucReview "github.com/BruksfildServices01/ratemycafe/internal/usecase/review"
	"github.com/BruksfildServices01/ratemycafe/internal/web"
)

// Infra is what main opens and owns: connections, stores and workers.
type Infra struct {
	DB      *gorm.DB
	Redis   *redis.Client // nil when redis is not configured
	Buckets storage.Buckets
	// Memory lists the in-memory buckets to serve under /storage.
	Memory []*storage.MemoryBucket

	Store   sessions.Store
	Nonces  auth.NonceStore
	Mailer  auth.Mailer
	Audit   *audit.Dispatcher
	Metrics *metrics.Metrics
}

// App exposes the services main drives outside of requests.
type App struct {
	Gallery *gallery.Service
}

func RegisterRoutes(r *gin.Engine, cfg *config.Config, infra Infra) (*App, error) {

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	cafeRepo := infraRepo.NewCafeGormRepository(infra.DB)
	reviewRepo := infraRepo.NewReviewGormRepository(infra.DB)
	userRepo := infraRepo.NewUserGormRepository(infra.DB)

	auditLogger := audit.New(infra.DB)
	lr := locale.NewRouter(cfg.DefaultLocale)

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	logos := ucCafe.NewLogoUploader(infra.Buckets.CafeImages, cfg.WebPLogos, infra.Metrics)

	listCafesUC := ucCafe.NewListCafes(cafeRepo)
	getCafeUC := ucCafe.NewGetCafe(cafeRepo, cfg.SiteURL)
	listAdminCafesUC := ucCafe.NewListAdminCafes(cafeRepo)
	createCafeUC := ucCafe.NewCreateCafe(cafeRepo, logos, infra.Audit)
	updateCafeUC := ucCafe.NewUpdateCafe(cafeRepo, logos, infra.Audit)
	deleteCafeUC := ucCafe.NewDeleteCafe(cafeRepo, infra.Buckets.CafeImages, infra.Audit)

	galleryService := gallery.NewService(cafeRepo, infra.Buckets.CafeImages, infra.Audit, infra.Metrics)

	listReviewsUC := ucReview.NewListReviews(reviewRepo)
	submitReviewUC := ucReview.NewSubmitReview(reviewRepo, infra.Metrics)
	editReviewUC := ucReview.NewEditReview(reviewRepo, infra.Metrics)
	deleteReviewUC := ucReview.NewDeleteReview(reviewRepo, infra.Metrics)

	profileService := profile.NewService(userRepo, infra.Buckets.Avatars, infra.Audit, infra.Metrics)

	// ======================================================
	// 🔐 AUTH
	// ======================================================
	providers := auth.SetupProviders(cfg, infra.Store)
	sessionStore := auth.NewSessions(infra.Store)

	authEvents := auth.NewEvents()
	authEvents.Subscribe(auth.AuditSubscriber(infra.Audit))
	authEvents.Subscribe(auth.MetricsSubscriber(infra.Metrics))

	authService := auth.NewService(
		userRepo,
		auth.NewMagicLinks(cfg.JWTSecret, cfg.MagicLinkTTL, infra.Nonces),
		infra.Mailer,
		authEvents,
		cfg.SiteURL,
	)
	authService.ResolveImagesWith(profileService.ImageURL)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	pages := handlers.NewPages(lr, cfg.AdminEmail, timezone.Location(cfg.Timezone))
	tmpl, err := web.Templates(pages.Funcs())
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)

	cafeHandler := handlers.NewCafeHandler(listCafesUC, getCafeUC, lr)
	adminCafeHandler := handlers.NewAdminCafeHandler(listAdminCafesUC, createCafeUC, updateCafeUC, deleteCafeUC)
	galleryHandler := handlers.NewGalleryHandler(galleryService)
	reviewHandler := handlers.NewReviewHandler(listReviewsUC, submitReviewUC, editReviewUC, deleteReviewUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(auditLogger)
	meHandler := handlers.NewMeHandler(profileService, sessionStore)
	authHandler := handlers.NewAuthHandler(authService, sessionStore, lr, providers, cfg.AdminEmail, cfg.IsProd())
	healthHandler := handlers.NewHealthHandler(infra.DB, infra.Redis)

	publicWebHandler := handlers.NewPublicWebHandler(
		pages,
		listCafesUC,
		getCafeUC,
		listReviewsUC,
		submitReviewUC,
		editReviewUC,
		deleteReviewUC,
		providers,
	)
	appWebHandler := handlers.NewAppWebHandler(
		pages,
		profileService,
		sessionStore,
		listAdminCafesUC,
		getCafeUC,
		createCafeUC,
		updateCafeUC,
		deleteCafeUC,
		galleryService,
	)

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(infra.Metrics.Middleware())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins...))
	r.Use(middleware.LoadSession(sessionStore))

	requireSession := middleware.RequireSession(lr)
	adminOnly := middleware.AdminOnly(cfg.AdminEmail, lr)

	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(infra.Metrics.Handler()))
	r.NoRoute(publicWebHandler.NoRoute)

	if len(infra.Memory) > 0 {
		r.GET("/storage/:bucket/*path", handlers.NewStorageHandler(infra.Memory...).Serve)
	}

	// ======================================================
	// 🔑 AUTH ROUTES
	// ======================================================
	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/magic-link", authHandler.RequestMagicLink)
		authRoutes.GET("/magic-link/verify", authHandler.VerifyMagicLink)
		authRoutes.POST("/sign-out", authHandler.SignOut)
		authRoutes.GET("/:provider", authHandler.BeginOAuth)
		authRoutes.GET("/:provider/callback", authHandler.OAuthCallback)
	}

	// ======================================================
	// 🌍 WEB ROUTES (HTML), one group per locale
	// ======================================================
	for _, l := range locale.Supported {
		site := r.Group(lr.Prefix(l), middleware.Locale(l))

		home := "/"
		if lr.Prefix(l) != "" {
			home = ""
		}
		site.GET(home, publicWebHandler.Home)
		site.GET("/cafes", publicWebHandler.Home)
		site.GET("/cafes/:id", publicWebHandler.Cafe)
		site.GET("/sign-in", publicWebHandler.SignIn)
		site.GET("/about", publicWebHandler.Static("about", "About"))
		site.GET("/terms", publicWebHandler.Static("terms", "Terms"))
		site.GET("/privacy", publicWebHandler.Static("privacy", "Privacy"))

		signedIn := site.Group("", requireSession)
		{
			signedIn.POST("/cafes/:id/reviews", publicWebHandler.SubmitReview)
			signedIn.POST("/cafes/:id/reviews/:reviewID/edit", publicWebHandler.EditReview)
			signedIn.POST("/cafes/:id/reviews/:reviewID/delete", publicWebHandler.DeleteReview)

			signedIn.GET("/profile", appWebHandler.Profile)
			signedIn.POST("/profile", appWebHandler.UpdateProfile)
			signedIn.POST("/profile/avatar", appWebHandler.UploadAvatar)
		}

		admin := site.Group("/admin", adminOnly)
		{
			admin.GET("", appWebHandler.Admin)
			admin.POST("/cafes", appWebHandler.CreateCafe)
			admin.GET("/cafes/:id", appWebHandler.AdminCafe)
			admin.POST("/cafes/:id", appWebHandler.UpdateCafe)
			admin.POST("/cafes/:id/delete", appWebHandler.DeleteCafe)
			admin.POST("/cafes/:id/gallery", appWebHandler.UploadGallery)
			admin.POST("/cafes/:id/gallery/reconcile", appWebHandler.ReconcileGallery)
			admin.POST("/cafes/:id/gallery/:file/delete", appWebHandler.DeleteGalleryImage)
		}
	}

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api/v1")
	{
		// ------------------------------
		// 🌐 PUBLIC
		// ------------------------------
		api.GET("/session", authHandler.Session)
		api.GET("/cafes", cafeHandler.List)
		api.GET("/cafes/:id", cafeHandler.Get)
		api.GET("/cafes/:id/reviews", reviewHandler.List)
		api.POST("/cafes/:id/reviews", reviewHandler.Submit)

		// ------------------------------
		// 🔐 SIGNED IN
		// ------------------------------
		secured := api.Group("", requireSession)
		{
			secured.PATCH("/reviews/:id", reviewHandler.Edit)
			secured.DELETE("/reviews/:id", reviewHandler.Delete)

			secured.GET("/me", meHandler.GetMe)
			secured.PATCH("/me", meHandler.UpdateMe)
			secured.POST("/me/avatar", meHandler.UploadAvatar)
		}

		// ------------------------------
		// 🛠 ADMIN
		// ------------------------------
		admin := api.Group("/admin", adminOnly)
		{
			admin.GET("/cafes", adminCafeHandler.List)
			admin.POST("/cafes", adminCafeHandler.Create)
			admin.PUT("/cafes/:id", adminCafeHandler.Update)
			admin.DELETE("/cafes/:id", adminCafeHandler.Delete)

			admin.GET("/cafes/:id/gallery", galleryHandler.Open)
			admin.POST("/cafes/:id/gallery", galleryHandler.Upload)
			admin.POST("/cafes/:id/gallery/reconcile", galleryHandler.Reconcile)
			admin.DELETE("/cafes/:id/gallery/:file", galleryHandler.Delete)
			admin.POST("/gallery/reconcile", galleryHandler.ReconcileAll)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}

	return &App{Gallery: galleryService}, nil
}
