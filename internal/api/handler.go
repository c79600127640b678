package api

import (
	"net/http"
	"time"

	"ledger-core/internal/events"
	"ledger-core/internal/journal"
	"ledger-core/internal/monitor"
	"ledger-core/pkg/db"

	"github.com/gin-gonic/gin"
)

// Server wires HTTP endpoints around the journal manager and the DB.
type Server struct {
	Router       *gin.Engine
	Bus          *events.Bus
	DB           *db.Database
	Queries      *db.UserQueries
	Journal      *journal.Manager
	Metrics      *monitor.SystemMetrics
	JWTSecret    string
	TokenTTL     time.Duration
	ResetCodeTTL time.Duration
	Meta         SystemMeta
}

// SystemMeta describes runtime status exposed to the UI.
type SystemMeta struct {
	Version  string
	Language string
}

// Options bundles the knobs NewServer needs beyond its collaborators.
type Options struct {
	JWTSecret      string
	TokenTTL       time.Duration
	ResetCodeTTL   time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
	Meta           SystemMeta
}

func NewServer(bus *events.Bus, database *db.Database, jm *journal.Manager, metrics *monitor.SystemMetrics, opts Options) *Server {
	r := gin.New()

	// Middleware stack (order matters!)
	r.Use(gin.Recovery())        // Panic recovery (first)
	r.Use(RequestIDMiddleware()) // Request ID tracking
	r.Use(RequestLogger(metrics))
	r.Use(RateLimitMiddleware(opts.RateLimitRPS, opts.RateLimitBurst))
	r.Use(TimeoutMiddleware(30 * time.Second)) // Request timeout (30s)
	r.Use(CORSMiddleware())                    // CORS (last before routes)

	s := &Server{
		Router:       r,
		Bus:          bus,
		DB:           database,
		Queries:      db.NewUserQueries(database.DB),
		Journal:      jm,
		Metrics:      metrics,
		JWTSecret:    opts.JWTSecret,
		TokenTTL:     opts.TokenTTL,
		ResetCodeTTL: opts.ResetCodeTTL,
		Meta:         opts.Meta,
	}
	if s.TokenTTL <= 0 {
		s.TokenTTL = 72 * time.Hour
	}
	if s.ResetCodeTTL <= 0 {
		s.ResetCodeTTL = 15 * time.Minute
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.Router.GET("/health", s.health)
	s.Router.GET("/ws", s.websocket)

	api := s.Router.Group("/api")
	{
		api.GET("/system/status", s.getSystemStatus)

		// Auth endpoints (no auth required)
		auth := api.Group("/auth")
		{
			auth.POST("/register", s.registerUser)
			auth.POST("/login", s.loginUser)
			auth.POST("/forgot", s.forgotPassword)
			auth.POST("/forgot/verify", s.verifyResetCode)
			auth.POST("/forgot/reset", s.resetPassword)
		}

		// Protected API
		protected := api.Group("")
		protected.Use(AuthMiddleware(s.JWTSecret))
		{
			// Trading rules
			protected.GET("/rules", s.listRules)
			protected.GET("/rules/:category/:subcategory", s.getRule)
			protected.PUT("/rules/:category/:subcategory", s.upsertRule)
			protected.DELETE("/rules/:id", s.deleteRule)

			// Trade journal
			protected.POST("/trades", s.createTrade)
			protected.POST("/trades/evaluate", s.evaluateTrade)
			protected.GET("/trades/day", s.getDaySummary)
			protected.GET("/trades/month", s.getMonthSummary)
			protected.DELETE("/trades/:id", s.deleteTrade)

			// Monthly financial summaries
			protected.GET("/summaries", s.listSummaries)
			protected.PUT("/summaries/:month", s.upsertSummary)
			protected.DELETE("/summaries/:id", s.deleteSummary)

			// Loans
			protected.GET("/loans", s.listLoans)
			protected.POST("/loans", s.createLoan)
			protected.PUT("/loans/:id", s.updateLoan)
			protected.DELETE("/loans/:id", s.deleteLoan)

			// Site expenses (kharch)
			protected.GET("/expenses", s.listExpenses)
			protected.POST("/expenses", s.createExpense)
			protected.DELETE("/expenses/:id", s.deleteExpense)

			// Media catalog
			protected.GET("/actresses", s.listActresses)
			protected.POST("/actresses", s.createActress)
			protected.PUT("/actresses/:id", s.updateActress)
			protected.DELETE("/actresses/:id", s.deleteActress)
			protected.GET("/actresses/:id/images", s.listActressImages)
			protected.POST("/actresses/:id/images", s.createActressImage)
			protected.DELETE("/actresses/:id/images/:imageID", s.deleteActressImage)
		}
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) getSystemStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":  s.Meta.Version,
		"language": s.Meta.Language,
		"metrics":  s.Metrics.GetSnapshot(),
	})
}

func (s *Server) Start(addr string) error {
	return s.Router.Run(addr)
}
