package server

import (
	"context"
	"net/http"

	"lokatiket/internal/auth"
	"lokatiket/internal/balance"
	"lokatiket/internal/config"
	"lokatiket/internal/ledger"
	"lokatiket/internal/notifier"
	"lokatiket/internal/order"
	"lokatiket/internal/ticket"
	"lokatiket/internal/user"
	"lokatiket/internal/withdrawal"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router   *gin.Engine
	httpSrv  *http.Server
	db       *sqlx.DB
	config   *config.Config
	notifier *notifier.Service
}

func New(db *sqlx.DB, cfg *config.Config, notifierService *notifier.Service) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())

	ledgerRepo := ledger.NewRepository(db, cfg.PlatformFeePercent)
	withdrawalRepo := withdrawal.NewRepository(db)
	ticketRepo := ticket.NewRepository(db)
	orderRepo := order.NewRepository(db)

	balanceService := balance.NewService(ledgerRepo, withdrawalRepo)
	withdrawalService := withdrawal.NewService(withdrawalRepo, balanceService, notifierService, cfg.MinWithdrawalIDR)
	orderService := order.NewService(orderRepo, ticketRepo, ledgerRepo)

	userHandler := user.NewHandler(db, cfg.JWTSecret)
	ticketHandler := ticket.NewHandler(db)
	orderHandler := order.NewHandler(orderService)
	ledgerHandler := ledger.NewHandler(db, cfg.PlatformFeePercent)
	balanceHandler := balance.NewHandler(balanceService)
	withdrawalHandler := withdrawal.NewHandler(withdrawalService)

	public := router.Group("/auth")
	public.Use(RateLimitMiddleware(5, 10))
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.Refresh)
	}

	// Payment gateway callback. Not behind user auth; the gateway is
	// trusted at the network boundary.
	router.POST("/payments/confirm", orderHandler.ConfirmPayment)

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)
		protected.GET("/tickets", ticketHandler.ListTickets)
		protected.GET("/tickets/:ticketID", ticketHandler.GetTicket)
		protected.POST("/orders", orderHandler.PlaceOrder)
		protected.GET("/orders", orderHandler.ListMyOrders)
		protected.GET("/orders/:orderID", orderHandler.GetOrder)
	}

	seller := router.Group("/seller")
	seller.Use(authMiddleware, auth.RequireRole(auth.RoleSeller))
	{
		seller.POST("/tickets", ticketHandler.CreateTicket)
		seller.GET("/tickets", ticketHandler.ListMyTickets)
		seller.GET("/balance", balanceHandler.GetMyBalance)
		seller.GET("/earnings", ledgerHandler.ListMyEarnings)
		seller.POST("/withdrawals", withdrawalHandler.CreateWithdrawal)
		seller.GET("/withdrawals", withdrawalHandler.ListMyWithdrawals)
		seller.GET("/withdrawals/:requestID", withdrawalHandler.GetMyWithdrawal)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, auth.RequireRole(auth.RoleAdmin))
	{
		admin.GET("/withdrawals", withdrawalHandler.ListWithdrawals)
		admin.POST("/withdrawals/:requestID/approve", withdrawalHandler.ApproveWithdrawal)
		admin.POST("/withdrawals/:requestID/reject", withdrawalHandler.RejectWithdrawal)
		admin.POST("/withdrawals/:requestID/complete", withdrawalHandler.CompleteWithdrawal)
		admin.POST("/ledger/entries/:entryID/release", ledgerHandler.ReleaseEntry)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	router.GET("/test-email", TestEmail(notifierService))
	SetupSwagger(router)

	return &Server{
		router:   router,
		db:       db,
		config:   cfg,
		notifier: notifierService,
	}
}

func (s *Server) Start(port string) error {
	s.httpSrv = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.httpSrv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) Router() *gin.Engine {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
