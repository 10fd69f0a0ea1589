package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/invoiceflow/invoiceflow/internal/config"
	"github.com/invoiceflow/invoiceflow/internal/contact"
	contactdomain "github.com/invoiceflow/invoiceflow/internal/contact/domain"
	"github.com/invoiceflow/invoiceflow/internal/invoice"
	invoicedomain "github.com/invoiceflow/invoiceflow/internal/invoice/domain"
	"github.com/invoiceflow/invoiceflow/internal/observability"
	obsmiddleware "github.com/invoiceflow/invoiceflow/internal/observability/logger"
	obsmetrics "github.com/invoiceflow/invoiceflow/internal/observability/metrics"
	"github.com/invoiceflow/invoiceflow/internal/setting"
	settingdomain "github.com/invoiceflow/invoiceflow/internal/setting/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	invoice.Module,
	contact.Module,
	setting.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
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
	engine     *gin.Engine
	cfg        config.Config
	db         *gorm.DB
	genID      *snowflake.Node
	invoiceSvc invoicedomain.Service
	contactSvc contactdomain.Service
	settingSvc settingdomain.Service
}

type ServerParams struct {
	fx.In

	Gin        *gin.Engine
	Cfg        config.Config
	DB         *gorm.DB
	GenID      *snowflake.Node
	InvoiceSvc invoicedomain.Service
	ContactSvc contactdomain.Service
	SettingSvc settingdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:     p.Gin,
		cfg:        p.Cfg,
		db:         p.DB,
		genID:      p.GenID,
		invoiceSvc: p.InvoiceSvc,
		contactSvc: p.ContactSvc,
		settingSvc: p.SettingSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api", s.AuthRequired())

	// -------- Invoices --------
	api.GET("/invoices", s.ListInvoices)
	api.POST("/invoices", s.CreateInvoice)
	api.GET("/invoices/:id", s.GetInvoiceByID)
	api.PUT("/invoices/:id", s.UpdateInvoice)
	api.PATCH("/invoices/:id/status", s.UpdateInvoiceStatus)
	api.DELETE("/invoices/:id", s.DeleteInvoice)

	// -------- Contacts --------
	api.GET("/contacts", s.ListContacts)
	api.POST("/contacts", s.CreateContact)
	api.GET("/contacts/:id", s.GetContactByID)
	api.PUT("/contacts/:id", s.UpdateContact)
	api.DELETE("/contacts/:id", s.DeleteContact)

	// -------- Settings --------
	api.GET("/settings", s.GetSettings)
	api.PUT("/settings", s.ReplaceSettings)
	api.PATCH("/settings/:key", s.PatchSetting)
}
