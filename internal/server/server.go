// Package server exposes the terminal over HTTP: a gin engine in front
// of the session manager, the catalogs and the read-side services.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	authdomain "github.com/thirdpole/pos/internal/auth/domain"
	backupdomain "github.com/thirdpole/pos/internal/backup/domain"
	"github.com/thirdpole/pos/internal/config"
	dashboarddomain "github.com/thirdpole/pos/internal/dashboard/domain"
	menudomain "github.com/thirdpole/pos/internal/menu/domain"
	orderdomain "github.com/thirdpole/pos/internal/order/domain"
	"github.com/thirdpole/pos/internal/providers/pdf"
	sessiondomain "github.com/thirdpole/pos/internal/session/domain"
	settingsdomain "github.com/thirdpole/pos/internal/settings/domain"
	tabledomain "github.com/thirdpole/pos/internal/table/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, log *zap.Logger) *gin.Engine {
	if cfg.GinReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(log.Named("http")))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	authSvc      authdomain.Service
	tableSvc     tabledomain.Service
	menuSvc      menudomain.Service
	settingsSvc  settingsdomain.Service
	sessionSvc   sessiondomain.Service
	orderSvc     orderdomain.Service
	dashboardSvc dashboarddomain.Service
	backupSvc    backupdomain.Service
	receipts     pdf.ReceiptRenderer
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	AuthSvc      authdomain.Service
	TableSvc     tabledomain.Service
	MenuSvc      menudomain.Service
	SettingsSvc  settingsdomain.Service
	SessionSvc   sessiondomain.Service
	OrderSvc     orderdomain.Service
	DashboardSvc dashboarddomain.Service
	BackupSvc    backupdomain.Service
	Receipts     pdf.ReceiptRenderer
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		authSvc:      p.AuthSvc,
		tableSvc:     p.TableSvc,
		menuSvc:      p.MenuSvc,
		settingsSvc:  p.SettingsSvc,
		sessionSvc:   p.SessionSvc,
		orderSvc:     p.OrderSvc,
		dashboardSvc: p.DashboardSvc,
		backupSvc:    p.BackupSvc,
		receipts:     p.Receipts,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Auth --------
	api.POST("/auth/login", s.Login)
	api.PUT("/auth/pin", s.ChangePin)

	// -------- Tables --------
	api.GET("/tables", s.ListTables)
	api.POST("/tables", s.CreateTable)
	api.DELETE("/tables/:id", s.DeleteTable)

	// -------- Session --------
	api.GET("/session", s.ViewSession)
	api.POST("/session/table/:id", s.SelectTable)
	api.POST("/session/items", s.AddSessionItem)
	api.PUT("/session/items/:id", s.SetSessionItemQuantity)
	api.DELETE("/session/items/:id", s.RemoveSessionItem)
	api.POST("/session/clear", s.ClearSessionTable)
	api.POST("/session/checkout", s.Checkout)

	// -------- Menu --------
	api.GET("/menu/items", s.ListMenuItems)
	api.POST("/menu/items", s.CreateMenuItem)
	api.PUT("/menu/items/:id", s.UpdateMenuItem)
	api.DELETE("/menu/items/:id", s.DeleteMenuItem)
	api.GET("/menu/categories", s.ListCategories)
	api.POST("/menu/categories", s.CreateCategory)
	api.PUT("/menu/categories/:id", s.RenameCategory)
	api.DELETE("/menu/categories/:id", s.DeleteCategory)

	// -------- Settings --------
	api.GET("/settings", s.GetSettings)
	api.PUT("/settings", s.UpdateSettings)

	// -------- Orders --------
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:id", s.GetOrderByID)
	api.GET("/orders/:id/receipt", s.OrderReceipt)

	// -------- Dashboard --------
	api.GET("/dashboard", s.DashboardStats)

	// -------- Backup --------
	api.GET("/backup", s.ExportBackup)
	api.POST("/backup/restore", s.RestoreBackup)
}
