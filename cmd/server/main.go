package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	labelapp "github.com/shipdesk/backend/internal/application/label"
	"github.com/shipdesk/backend/internal/domain/label"
	"github.com/shipdesk/backend/internal/infrastructure/barcode"
	"github.com/shipdesk/backend/internal/infrastructure/config"
	"github.com/shipdesk/backend/internal/infrastructure/logger"
	"github.com/shipdesk/backend/internal/infrastructure/printing"
	"github.com/shipdesk/backend/internal/infrastructure/rendering"
	"github.com/shipdesk/backend/internal/interfaces/http/handler"
	"github.com/shipdesk/backend/internal/interfaces/http/middleware"
	"github.com/shipdesk/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Shipdesk Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port))

	labelService, err := buildLabelService(cfg, log)
	if err != nil {
		log.Fatal("Failed to build label service", zap.Error(err))
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	engine.Use(middleware.CORSWithConfig(corsCfg))

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.GET("/healthz", handler.Healthz)

	router.NewRouter(engine).
		Register(handler.NewLabelHandler(labelService)).
		Register(handler.NewSystemHandler()).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

func buildLabelService(cfg *config.Config, log *zap.Logger) (*labelapp.LabelService, error) {
	htmlRenderer, err := rendering.NewHTMLRenderer(
		rendering.WithSettleDelay(cfg.Label.SettleDelay),
	)
	if err != nil {
		return nil, err
	}

	encoder := barcode.NewCode128Encoder()
	pdfRenderer := rendering.NewPDFRenderer(encoder, log,
		rendering.WithCompression(cfg.Label.CompressPDF))

	downloader, err := printing.NewFileDownloader(cfg.Label.DownloadDir, log)
	if err != nil {
		return nil, err
	}
	orchestrator := printing.NewOrchestrator(printing.NewLogSink(log), downloader, log,
		printing.WithSettleDelay(cfg.Label.SettleDelay),
		printing.WithCloseDelay(cfg.Label.CloseDelay))

	from := label.FromAddress{
		Name:    cfg.Label.From.Name,
		Street:  cfg.Label.From.Street,
		City:    cfg.Label.From.City,
		State:   cfg.Label.From.State,
		ZipCode: cfg.Label.From.ZipCode,
		Phone:   cfg.Label.From.Phone,
	}

	return labelapp.NewLabelService(encoder, htmlRenderer, pdfRenderer, orchestrator, from, log), nil
}
