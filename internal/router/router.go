package router

import (
	"time"

	"refood/internal/config"
	"refood/internal/handler"
	"refood/internal/infra"
	"refood/internal/middleware"
	"refood/internal/repository"
	"refood/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, caps infra.SchemaCapabilities) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	lottoRepo := repository.NewLottoRepository(db)
	centroRepo := repository.NewCentroRepository(db)
	attoreRepo := repository.NewAttoreRepository(db)
	prenRepo := repository.NewPrenotazioneRepository(db)
	logRepo := repository.NewLogCambioStatoRepository(db)
	notificaRepo := repository.NewNotificaRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)
	archivioRepo := repository.NewArchivioRepository(db)
	statsRepo := repository.NewStatisticheRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(attoreRepo, cfg)
	notificaSvc := service.NewNotificaService(notificaRepo, attoreRepo, prenRepo, rdb)
	lottoSvc := service.NewLottoService(lottoRepo, centroRepo, attoreRepo, prenRepo, logRepo, categoriaRepo, notificaSvc, caps)
	prenSvc := service.NewPrenotazioneService(prenRepo, lottoRepo, centroRepo, notificaSvc)
	centroSvc := service.NewCentroService(centroRepo, attoreRepo)
	statsSvc := service.NewStatisticheService(statsRepo, lottoRepo, archivioRepo, attoreRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	lottiH := handler.NewLottiHandler(lottoSvc)
	centriH := handler.NewCentriHandler(centroSvc)
	prenH := handler.NewPrenotazioniHandler(prenSvc)
	notificheH := handler.NewNotificheHandler(notificaSvc)
	statsH := handler.NewStatisticheHandler(statsSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
		auth.POST("/registrazione", authH.Registra)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/api/v1", jwtMW)
	{
		lotti := v1.Group("/lotti")
		{
			// /disponibili registered before /:id so Gin matches it first
			lotti.GET("/disponibili", lottiH.Disponibili)
			lotti.POST("", lottiH.Crea)
			lotti.GET("", lottiH.Lista)
			lotti.GET("/:id", lottiH.Ottieni)
			lotti.GET("/:id/storico", lottiH.Storico)
			lotti.PUT("/:id", lottiH.Aggiorna)
			lotti.DELETE("/:id", lottiH.Elimina)
		}

		centri := v1.Group("/centri")
		{
			centri.POST("", centriH.Crea)
			centri.GET("", centriH.Lista)
			centri.GET("/:id", centriH.Ottieni)
			centri.POST("/:id/attori", centriH.AssociaAttore)
		}

		pren := v1.Group("/prenotazioni")
		{
			pren.POST("", prenH.Crea)
			pren.GET("", prenH.Lista)
			pren.PATCH("/:id/stato", prenH.CambiaStato)
		}

		notifiche := v1.Group("/notifiche")
		{
			notifiche.GET("", notificheH.Lista)
			notifiche.PATCH("/lette", notificheH.MarcaTutteLette)
			notifiche.PATCH("/:id/letta", notificheH.MarcaLetta)
		}

		stats := v1.Group("/statistiche")
		{
			stats.GET("", statsH.Recenti)
			// /correnti registered before /:data so Gin matches it first
			stats.GET("/correnti", statsH.Correnti)
			stats.GET("/:data", statsH.PerData)
		}
	}

	return r
}
