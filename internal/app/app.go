package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fuzumoe/siteinsight-backend/configs"
	"github.com/fuzumoe/siteinsight-backend/internal/analyzer"
	"github.com/fuzumoe/siteinsight-backend/internal/crawler"
	"github.com/fuzumoe/siteinsight-backend/internal/handler"
	"github.com/fuzumoe/siteinsight-backend/internal/logging"
	"github.com/fuzumoe/siteinsight-backend/internal/repository"
	"github.com/fuzumoe/siteinsight-backend/internal/server"
	"github.com/fuzumoe/siteinsight-backend/internal/service"
)

const serviceName = "siteinsight"

// hookable functions for dependency injection
var (
	LoadConfig = configs.Load
	NewDB      = repository.NewDB
	MigrateDB  = repository.Migrate
	Serve      = serve
)

// BuildCrawler assembles the crawl pipeline from configuration.
func BuildCrawler(cfg *configs.Config, logger *slog.Logger) (*crawler.Crawler, error) {
	topic := crawler.DefaultTopic()
	if cfg.TopicFile != "" {
		t, err := crawler.LoadTopic(cfg.TopicFile)
		if err != nil {
			return nil, err
		}
		topic = t
	}

	pages := analyzer.New(
		analyzer.NewHTTPFetcher(cfg.FetchTimeout, cfg.UserAgent),
		analyzer.NewLanguageFilter(analyzer.NewWhatlangClassifier(cfg.LanguageConfidence), cfg.TargetLanguage),
		analyzer.NewSignalDetector(nil),
	)
	opts := crawler.Options{
		MaxPages: cfg.CrawlMaxPages,
		Timeout:  cfg.CrawlTimeout,
		Delay:    cfg.CrawlDelay,
	}
	return crawler.New(pages, crawler.NewScorer(topic), opts, crawler.WithLogger(logger)), nil
}

// Run loads config, opens the DB, runs migrations, starts the crawl workers
// and serves the API until SIGINT or SIGTERM.
func Run() error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("config load error: %w", err)
	}
	logger := logging.Setup(serviceName, cfg.LogLevel, cfg.LogFile)

	db, err := NewDB(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}

	if err := MigrateDB(db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	c, err := BuildCrawler(cfg, logger)
	if err != nil {
		return fmt.Errorf("crawler init error: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo := repository.NewCrawlRepo(db)
	pool := crawler.NewPool(repo, c, cfg.MaxConcurrentCrawls, cfg.CrawlQueueSize)
	poolDone := make(chan struct{})
	go func() {
		defer close(poolDone)
		pool.Start(ctx)
	}()

	crawlSvc := service.NewCrawlService(repo, pool, c, cfg.CrawlMaxPages)
	healthSvc := service.NewHealthService(db, serviceName)

	gin.SetMode(cfg.ServerMode)
	engine := gin.New()
	server.RegisterRoutes(engine,
		[]server.RouteRegistrar{handler.NewHealthHandler(healthSvc)},
		[]server.RouteRegistrar{handler.NewCrawlHandler(crawlSvc)},
	)

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.ServerHost, cfg.ServerPort),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	err = Serve(ctx, srv)
	stop()
	<-poolDone
	return err
}

// serve runs srv until ctx is done, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown error: %w", err)
	}
	slog.Info("http server stopped")
	return nil
}
